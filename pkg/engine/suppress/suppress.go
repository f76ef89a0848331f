// Package suppress applies ignore paths and suppression rules to an aggregate report.
package suppress

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/engine/aggregate"
	"github.com/secmon-lab/barrage/pkg/engine/threshold"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
)

// DefaultWarningWindow is how long before expiration a suppression is reported.
const DefaultWarningWindow = 30 * 24 * time.Hour

const justificationPrefix = "(barrage)"

type Engine struct {
	warningWindow time.Duration
}

type Option func(*Engine)

func WithWarningWindow(d time.Duration) Option {
	return func(x *Engine) {
		x.warningWindow = d
	}
}

func New(opts ...Option) *Engine {
	x := &Engine{warningWindow: DefaultWarningWindow}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

type rule struct {
	suppression model.Suppression
	path        *pathMatcher
}

type ignoreRule struct {
	ignore model.IgnorePath
	path   *pathMatcher
}

// Apply attaches external suppressions to matching findings of report and updates its
// counters. It modifies and returns report. Findings that already carry a suppression are
// left untouched, so applying the same policy twice changes nothing.
// A suppression is valid through its expiration date. Expired ones are reported in the
// returned warnings and not applied.
// The current date is taken from logging.CtxTime.
func (x *Engine) Apply(ctx context.Context, report *model.AggregateReport, ignorePaths []model.IgnorePath, suppressions []model.Suppression, ignoreAll bool) (*model.AggregateReport, []model.ExpirationWarning) {
	if report == nil || ignoreAll {
		return report, nil
	}

	root := aggregate.NormalizeRoot(report.Metadata.SourceDir)
	rules, warnings := x.audit(ctx, suppressions, root)

	ignores := make([]ignoreRule, 0, len(ignorePaths))
	for _, ig := range ignorePaths {
		ignores = append(ignores, ignoreRule{ignore: ig, path: newPathMatcher(ig.Path, root)})
	}

	logger := logging.From(ctx)
	var applied int
	for _, r := range report.Results() {
		if r.IsSuppressed() {
			continue
		}

		justification, ok := matchIgnore(r, ignores)
		if !ok {
			justification, ok = matchRule(r, rules)
		}
		if !ok {
			continue
		}

		r.Suppressions = append(r.Suppressions, sarif.Suppression{
			Kind:          sarif.SuppressionKindExternal,
			Status:        sarif.SuppressionStatusAccepted,
			Justification: justification,
		})
		discount(report, r)
		applied++
	}

	report.Metadata.Summary.Status = threshold.Status(report.Metadata.Summary.ActionableBySeverity)
	for _, w := range warnings {
		if msg := w.Message(); !slices.Contains(report.Metadata.Warnings, msg) {
			report.Metadata.Warnings = append(report.Metadata.Warnings, msg)
		}
	}

	logger.Debug("suppression applied",
		"ignore_paths", len(ignorePaths),
		"suppressions", len(rules),
		"suppressed", applied,
		"warnings", len(warnings),
	)
	return report, warnings
}

// audit splits suppressions into applicable rules and expiration warnings.
// Rule paths are resolved against root.
func (x *Engine) audit(ctx context.Context, suppressions []model.Suppression, root string) ([]rule, []model.ExpirationWarning) {
	logger := logging.From(ctx)
	now := logging.CtxTime(ctx)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var rules []rule
	var warnings []model.ExpirationWarning
	for _, s := range suppressions {
		expiresAt, hasExpiration, err := s.ExpiresAt()
		if err != nil {
			// validated at load time; an unparsable date is treated as expired
			logger.Warn("suppression has invalid expiration, not applied", "suppression", s.String(), "error", err)
			warnings = append(warnings, model.ExpirationWarning{Suppression: s, Expired: true})
			continue
		}

		if hasExpiration {
			left := expiresAt.Sub(today)
			days := int(math.Ceil(left.Hours() / 24))
			switch {
			case left < 0:
				logger.Warn("suppression expired, not applied", "suppression", s.String(), "expiration", s.Expiration)
				warnings = append(warnings, model.ExpirationWarning{Suppression: s, ExpiresAt: expiresAt, DaysLeft: days, Expired: true})
				continue
			case left <= x.warningWindow:
				logger.Warn("suppression expires soon", "suppression", s.String(), "days_left", days)
				warnings = append(warnings, model.ExpirationWarning{Suppression: s, ExpiresAt: expiresAt, DaysLeft: days})
			}
		}

		r := rule{suppression: s}
		if s.Path != "" {
			r.path = newPathMatcher(s.Path, root)
		}
		rules = append(rules, r)
	}
	return rules, warnings
}

func matchIgnore(r *sarif.Result, ignores []ignoreRule) (string, bool) {
	p := r.Path()
	for _, ig := range ignores {
		if ig.path.Match(p) {
			return fmt.Sprintf("%s Excluded by ignore_path rule: %s. Reason: %s", justificationPrefix, ig.ignore.Path, ig.ignore.Reason), true
		}
	}
	return "", false
}

func matchRule(r *sarif.Result, rules []rule) (string, bool) {
	for _, rl := range rules {
		s := rl.suppression
		if s.RuleID != "" && s.RuleID != r.RuleID {
			continue
		}
		if rl.path != nil && !rl.path.Match(r.Path()) {
			continue
		}
		if start, end, ok := s.LineRange(); ok {
			fStart, fEnd := r.Lines()
			if fStart == 0 || fStart > end || start > fEnd {
				continue
			}
		}
		return fmt.Sprintf("%s Suppressed by rule: %s", justificationPrefix, s.Reason), true
	}
	return "", false
}

// discount moves a newly suppressed finding out of its scanner's histogram and the summary.
func discount(report *model.AggregateReport, r *sarif.Result) {
	origin, ok := model.OriginOf(r)
	if !ok {
		return
	}
	summary := &report.Metadata.Summary

	th := report.Metadata.GlobalThreshold
	if m := report.Metrics(origin.Scanner, origin.Kind); m != nil {
		m.Histogram.Add(origin.Severity, -1)
		m.FindingCount--
		m.Suppressed++
		th = m.Threshold
		if th.Includes(origin.Severity) {
			m.Actionable--
		}
	}

	summary.BySeverity.Add(origin.Severity, -1)
	summary.Total--
	summary.Suppressed++
	if th.Includes(origin.Severity) {
		summary.ActionableBySeverity.Add(origin.Severity, -1)
		summary.Actionable--
	}
}
