package model

import (
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// ScanRecord is the persisted history entry of one scan. Finding IDs are kept for baseline comparison.
type ScanRecord struct {
	ID         types.ScanID     `json:"id" firestore:"id"`
	Project    string           `json:"project" firestore:"project"`
	Timestamp  time.Time        `json:"timestamp" firestore:"timestamp"`
	Git        *GitMetadata     `json:"git,omitempty" firestore:"git"`
	Status     types.ScanStatus `json:"status" firestore:"status"`
	Summary    SummaryStats     `json:"summary" firestore:"summary"`
	Scanners   []ScannerRecord  `json:"scanners" firestore:"scanners"`
	FindingIDs []string         `json:"findingIds" firestore:"finding_ids"`
}

type ScannerRecord struct {
	Name         string                  `json:"name" firestore:"name" bigquery:"name"`
	Kind         types.TargetKind        `json:"kind" firestore:"kind" bigquery:"kind"`
	Status       types.ScanStatus        `json:"status" firestore:"status" bigquery:"status"`
	Threshold    string                  `json:"threshold" firestore:"threshold" bigquery:"threshold"`
	Histogram    types.SeverityHistogram `json:"severityCounts" firestore:"severity_counts" bigquery:"severity_counts"`
	FindingCount int                     `json:"findingCount" firestore:"finding_count" bigquery:"finding_count"`
	Actionable   int                     `json:"actionable" firestore:"actionable" bigquery:"actionable"`
	Suppressed   int                     `json:"suppressed" firestore:"suppressed" bigquery:"suppressed"`
	ExitCode     int                     `json:"exitCode" firestore:"exit_code" bigquery:"exit_code"`
	DurationMS   int64                   `json:"durationMs" firestore:"duration_ms" bigquery:"duration_ms"`
	Error        string                  `json:"error,omitempty" firestore:"error" bigquery:"error"`
}

// ScanSummaryRow is one BigQuery row per scan.
type ScanSummaryRow struct {
	ScanID     string                  `json:"scan_id" bigquery:"scan_id"`
	Project    string                  `json:"project" bigquery:"project"`
	Timestamp  time.Time               `json:"timestamp" bigquery:"timestamp"`
	Git        GitMetadata             `json:"git" bigquery:"git"`
	Status     string                  `json:"status" bigquery:"status"`
	Total      int                     `json:"total" bigquery:"total"`
	Actionable int                     `json:"actionable" bigquery:"actionable"`
	Suppressed int                     `json:"suppressed" bigquery:"suppressed"`
	New        int                     `json:"new" bigquery:"new"`
	BySeverity types.SeverityHistogram `json:"by_severity" bigquery:"by_severity"`
	Scanners   []ScannerRecord         `json:"scanners" bigquery:"scanners"`
}

// ScanSummaryRawRow replaces the timestamp with epoch microseconds for the Storage Write API.
type ScanSummaryRawRow struct {
	ScanSummaryRow
	Timestamp int64 `json:"timestamp"`
}

// NewScanRecord builds the history entry of a finished report.
func NewScanRecord(report *AggregateReport) *ScanRecord {
	rec := &ScanRecord{
		ID:        report.Metadata.ScanID,
		Project:   report.Metadata.Project,
		Timestamp: report.Metadata.GeneratedAt,
		Git:       report.Metadata.Git,
		Status:    report.Metadata.Summary.Status,
		Summary:   report.Metadata.Summary,
		Scanners:  ScannerRecords(report),
	}
	for _, r := range report.Results() {
		if id := r.Property(PropFindingID); id != "" {
			rec.FindingIDs = append(rec.FindingIDs, id)
		}
	}
	return rec
}

// ScannerRecords flattens the side table in scanner and kind order.
func ScannerRecords(report *AggregateReport) []ScannerRecord {
	var out []ScannerRecord
	for _, name := range report.ScannerNames() {
		byKind := report.Metadata.ScannerResults[name]
		for _, kind := range []types.TargetKind{types.TargetKindSource, types.TargetKindConverted} {
			m, ok := byKind[kind]
			if !ok {
				continue
			}
			out = append(out, ScannerRecord{
				Name:         name,
				Kind:         kind,
				Status:       m.Status,
				Threshold:    m.Threshold.String(),
				Histogram:    m.Histogram,
				FindingCount: m.FindingCount,
				Actionable:   m.Actionable,
				Suppressed:   m.Suppressed,
				ExitCode:     m.ExitCode,
				DurationMS:   m.DurationMS,
				Error:        m.Error,
			})
		}
	}
	return out
}

// NewScanSummaryRow converts a report into its BigQuery row.
func NewScanSummaryRow(report *AggregateReport) *ScanSummaryRow {
	row := &ScanSummaryRow{
		ScanID:     report.Metadata.ScanID.String(),
		Project:    report.Metadata.Project,
		Timestamp:  report.Metadata.GeneratedAt,
		Status:     string(report.Metadata.Summary.Status),
		Total:      report.Metadata.Summary.Total,
		Actionable: report.Metadata.Summary.Actionable,
		Suppressed: report.Metadata.Summary.Suppressed,
		New:        report.Metadata.Summary.New,
		BySeverity: report.Metadata.Summary.BySeverity,
		Scanners:   ScannerRecords(report),
	}
	if report.Metadata.Git != nil {
		row.Git = *report.Metadata.Git
	}
	return row
}
