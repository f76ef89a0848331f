package reporter

import (
	"bytes"
	"fmt"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// Summary renders a plain text table of scanner results.
type Summary struct{}

func NewSummary() *Summary { return &Summary{} }

func (x *Summary) Name() string      { return "summary" }
func (x *Summary) Extension() string { return "txt" }

func (x *Summary) Report(report *model.AggregateReport) ([]byte, error) {
	var buf bytes.Buffer
	meta := report.Metadata
	stats := meta.Summary

	fmt.Fprintf(&buf, "barrage scan %s\n", meta.ScanID)
	if meta.Project != "" {
		fmt.Fprintf(&buf, "project:   %s\n", meta.Project)
	}
	if meta.Git != nil && meta.Git.CommitID != "" {
		fmt.Fprintf(&buf, "commit:    %s (%s)\n", meta.Git.CommitID, meta.Git.Branch)
	}
	fmt.Fprintf(&buf, "source:    %s\n", meta.SourceDir)
	fmt.Fprintf(&buf, "generated: %s\n\n", meta.GeneratedAt.UTC().Format(time.RFC3339))

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SCANNER\tTARGET\tSTATUS\tTHRESHOLD\tCRITICAL\tHIGH\tMEDIUM\tLOW\tINFO\tACTIONABLE\tSUPPRESSED\tDURATION\n")
	for _, name := range report.ScannerNames() {
		byKind := meta.ScannerResults[name]
		kinds := make([]types.TargetKind, 0, len(byKind))
		for kind := range byKind {
			kinds = append(kinds, kind)
		}
		slices.SortFunc(kinds, func(a, b types.TargetKind) int { return a.Order() - b.Order() })

		for _, kind := range kinds {
			m := byKind[kind]
			h := m.Histogram
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
				name, kind, m.Status, m.Threshold,
				h.Critical, h.High, h.Medium, h.Low, h.Info,
				m.Actionable, m.Suppressed,
				(time.Duration(m.DurationMS) * time.Millisecond).String(),
			)
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	h := stats.BySeverity
	fmt.Fprintf(&buf, "\nfindings:   %d (critical %d, high %d, medium %d, low %d, info %d)\n",
		stats.Total, h.Critical, h.High, h.Medium, h.Low, h.Info)
	fmt.Fprintf(&buf, "actionable: %d\n", stats.Actionable)
	fmt.Fprintf(&buf, "suppressed: %d\n", stats.Suppressed)
	if stats.New > 0 || stats.Absent > 0 {
		fmt.Fprintf(&buf, "baseline:   %d new, %d absent\n", stats.New, stats.Absent)
	}
	s := stats.Scanners
	fmt.Fprintf(&buf, "scanners:   %d passed, %d warning, %d failed, %d missing, %d skipped\n",
		s.Passed, s.Warning, s.Failed, s.Missing, s.Skipped)
	fmt.Fprintf(&buf, "status:     %s\n", stats.Status)

	for _, w := range meta.Warnings {
		fmt.Fprintf(&buf, "warning: %s\n", w)
	}

	return buf.Bytes(), nil
}
