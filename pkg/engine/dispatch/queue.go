package dispatch

import (
	"cmp"
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/plugin"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
)

// ScanJob is one (scanner, target) pair. Jobs are not modified after BuildJobs returns.
type ScanJob struct {
	ScannerName string
	Scanner     interfaces.Scanner
	Target      model.ScanTarget
	SkipReason  types.SkipReason
}

// JobConfig selects scanners for a scan.
type JobConfig struct {
	// Enabled restricts the scan to the named scanners. An entry here overrides "enabled: false" in the configuration.
	Enabled []string
	// Excluded scanners never run, even if also listed in Enabled.
	Excluded []string
	// NativeOnly turns scanners that need an external runtime into skipped jobs.
	NativeOnly bool
	Scanners   map[string]model.ScannerConfig
}

// BuildJobs creates jobs for every selected scanner and target, ordered by scanner name
// and then source before converted.
func BuildJobs(ctx context.Context, reg *plugin.Registry, cfg JobConfig, targets []model.ScanTarget) ([]*ScanJob, error) {
	logger := logging.From(ctx)

	excluded := make(map[string]struct{}, len(cfg.Excluded))
	for _, name := range cfg.Excluded {
		if !reg.HasScanner(name) {
			logger.Warn("excluded scanner is not registered", "scanner", name)
		}
		excluded[name] = struct{}{}
	}

	enabled := make(map[string]struct{}, len(cfg.Enabled))
	for _, name := range cfg.Enabled {
		if !reg.HasScanner(name) {
			return nil, goerr.Wrap(types.ErrInvalidConfig, "enabled scanner is not registered",
				goerr.V("scanner", name),
				goerr.V("registered", reg.ScannerNames()),
			)
		}
		enabled[name] = struct{}{}
	}

	ordered := slices.Clone(targets)
	slices.SortStableFunc(ordered, func(a, b model.ScanTarget) int {
		return cmp.Compare(a.Kind.Order(), b.Kind.Order())
	})

	var jobs []*ScanJob
	for _, name := range reg.ScannerNames() {
		if _, ok := excluded[name]; ok {
			logger.Debug("scanner excluded", "scanner", name)
			continue
		}
		_, explicit := enabled[name]
		if len(enabled) > 0 && !explicit {
			continue
		}

		scannerCfg := cfg.Scanners[name]
		if !explicit && !scannerCfg.IsEnabled() {
			logger.Debug("scanner disabled by configuration", "scanner", name)
			continue
		}

		scanner, err := reg.NewScanner(name, scannerCfg)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidConfig, "scanner cannot be created",
				goerr.V("scanner", name),
				goerr.V("cause", err.Error()),
			)
		}
		if !explicit && !scanner.IsEnabled() {
			logger.Debug("scanner disabled by itself", "scanner", name)
			continue
		}

		var reason types.SkipReason
		if cfg.NativeOnly && !scanner.Info().Native {
			reason = types.SkipReasonNativeOnly
		}

		for _, target := range ordered {
			jobs = append(jobs, &ScanJob{
				ScannerName: name,
				Scanner:     scanner,
				Target:      target,
				SkipReason:  reason,
			})
		}
	}

	return jobs, nil
}
