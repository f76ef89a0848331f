package model

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// ExpirationLayout is the date format of suppression expirations.
const ExpirationLayout = "2006-01-02"

// IgnorePath excludes every finding under Path. Path may be a file, a directory or a glob.
type IgnorePath struct {
	Path   string `yaml:"path" json:"path" validate:"required"`
	Reason string `yaml:"reason" json:"reason" validate:"required"`
}

// Suppression accepts findings matching all of its set criteria.
type Suppression struct {
	RuleID     string `yaml:"rule_id" json:"ruleId,omitempty"`
	Path       string `yaml:"path" json:"path,omitempty"`
	LineStart  *int   `yaml:"line_start" json:"lineStart,omitempty" validate:"omitempty,gte=1"`
	LineEnd    *int   `yaml:"line_end" json:"lineEnd,omitempty" validate:"omitempty,gte=1"`
	Reason     string `yaml:"reason" json:"reason" validate:"required"`
	Expiration string `yaml:"expiration" json:"expiration,omitempty"`
}

// ExpiresAt parses Expiration. ok is false when no expiration is set.
func (x *Suppression) ExpiresAt() (t time.Time, ok bool, err error) {
	if x.Expiration == "" {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(ExpirationLayout, x.Expiration)
	if err != nil {
		return time.Time{}, false, goerr.Wrap(types.ErrInvalidConfig, "invalid suppression expiration",
			goerr.V("expiration", x.Expiration),
			goerr.V("layout", "YYYY-MM-DD"),
		)
	}
	return t, true, nil
}

// LineRange returns the suppressed line range. ok is false when no line is set.
// A range with only a start covers that single line; one with only an end starts at line 1.
func (x *Suppression) LineRange() (start, end int, ok bool) {
	switch {
	case x.LineStart == nil && x.LineEnd == nil:
		return 0, 0, false
	case x.LineEnd == nil:
		return *x.LineStart, *x.LineStart, true
	case x.LineStart == nil:
		return 1, *x.LineEnd, true
	default:
		return *x.LineStart, *x.LineEnd, true
	}
}

func (x *Suppression) String() string {
	s := "suppression"
	if x.RuleID != "" {
		s += " rule=" + x.RuleID
	}
	if x.Path != "" {
		s += " path=" + x.Path
	}
	if start, end, ok := x.LineRange(); ok {
		s += fmt.Sprintf(" lines=%d-%d", start, end)
	}
	return s
}

// ExpirationWarning reports a suppression that expired or expires soon.
type ExpirationWarning struct {
	Suppression Suppression `json:"suppression"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	DaysLeft    int         `json:"daysLeft"`
	Expired     bool        `json:"expired"`
}

func (x ExpirationWarning) Message() string {
	if x.Expired {
		return fmt.Sprintf("%s expired on %s and was not applied", x.Suppression.String(), x.ExpiresAt.Format(ExpirationLayout))
	}
	return fmt.Sprintf("%s expires in %d days (%s)", x.Suppression.String(), x.DaysLeft, x.ExpiresAt.Format(ExpirationLayout))
}
