package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structure and the semantics of cfg. All problems are reported at once.
func Validate(cfg *model.ScanConfig) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return goerr.Wrap(types.ErrInvalidConfig, "failed to validate configuration", goerr.V("cause", err.Error()))
		}
		for _, e := range fieldErrors {
			problems = append(problems, fmt.Sprintf("%s: failed on '%s'", e.Namespace(), e.Tag()))
		}
	}

	if cfg.Global.SeverityThreshold != "" {
		if _, err := types.ParseThreshold(cfg.Global.SeverityThreshold); err != nil {
			problems = append(problems, fmt.Sprintf("global.severity_threshold: unknown threshold %q", cfg.Global.SeverityThreshold))
		}
	}

	for i, s := range cfg.Global.Suppressions {
		if s.RuleID == "" && s.Path == "" {
			problems = append(problems, fmt.Sprintf("global.suppressions[%d]: rule_id or path is required", i))
		}
		if s.LineStart != nil && s.LineEnd != nil && *s.LineEnd < *s.LineStart {
			problems = append(problems, fmt.Sprintf("global.suppressions[%d]: line_end is before line_start", i))
		}
		if _, _, err := s.ExpiresAt(); err != nil {
			problems = append(problems, fmt.Sprintf("global.suppressions[%d]: expiration %q is not YYYY-MM-DD", i, s.Expiration))
		}
	}

	for name, sc := range cfg.Scanners {
		if sc.Options.SeverityThreshold != "" {
			if _, err := types.ParseThreshold(sc.Options.SeverityThreshold); err != nil {
				problems = append(problems, fmt.Sprintf("scanners.%s.options.severity_threshold: unknown threshold %q", name, sc.Options.SeverityThreshold))
			}
		}
		if sc.Type == "command" && len(sc.Command) == 0 {
			problems = append(problems, fmt.Sprintf("scanners.%s.command: required for command scanners", name))
		}
	}

	if len(problems) > 0 {
		return goerr.Wrap(types.ErrInvalidConfig, strings.Join(problems, "; "),
			goerr.V("problems", problems),
		)
	}
	return nil
}
