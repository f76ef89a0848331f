package model

import (
	"maps"
	"slices"
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// AggregateReportFileName is the file name of the persisted aggregate report in the output directory.
const AggregateReportFileName = "barrage_aggregated_results.json"

type AggregateReport struct {
	Sarif             *sarif.Log                                    `json:"sarif"`
	AdditionalReports map[string]map[types.TargetKind]OpaquePayload `json:"additionalReports"`
	Metadata          ReportMetadata                                `json:"metadata"`
}

type ReportMetadata struct {
	ScanID          types.ScanID                                    `json:"scanId"`
	Project         string                                          `json:"project,omitempty"`
	GeneratedAt     time.Time                                       `json:"generatedAt"`
	SourceDir       string                                          `json:"sourceDir"`
	OutputDir       string                                          `json:"outputDir"`
	Mode            types.ExecutionMode                             `json:"mode,omitempty"`
	Git             *GitMetadata                                    `json:"git,omitempty"`
	GlobalThreshold types.Threshold                                 `json:"globalThreshold"`
	Summary         SummaryStats                                    `json:"summaryStats"`
	ScannerResults  map[string]map[types.TargetKind]*ScannerMetrics `json:"scannerResults"`
	Warnings        []string                                        `json:"warnings,omitempty"`
}

type GitMetadata struct {
	RepoURL  string `json:"repoUrl,omitempty" bigquery:"repo_url" firestore:"repo_url"`
	Branch   string `json:"branch,omitempty" bigquery:"branch" firestore:"branch"`
	CommitID string `json:"commitId,omitempty" bigquery:"commit_id" firestore:"commit_id"`
}

// SummaryStats holds the running totals over all scanner results.
type SummaryStats struct {
	Status               types.ScanStatus        `json:"status"`
	BySeverity           types.SeverityHistogram `json:"bySeverity"`
	ActionableBySeverity types.SeverityHistogram `json:"actionableBySeverity"`
	Total                int                     `json:"total"`
	Actionable           int                     `json:"totalActionable"`
	Suppressed           int                     `json:"suppressed"`
	SelfExcluded         int                     `json:"selfExcluded"`
	Scanners             ScannerStatusCounts     `json:"scanners"`
	New                  int                     `json:"new"`
	Absent               int                     `json:"absent"`
}

type ScannerStatusCounts struct {
	Passed  int `json:"passed"`
	Warning int `json:"warning"`
	Failed  int `json:"failed"`
	Missing int `json:"missing"`
	Skipped int `json:"skipped"`
}

func (x *ScannerStatusCounts) Add(status types.ScanStatus, n int) {
	switch status {
	case types.ScanStatusPassed:
		x.Passed += n
	case types.ScanStatusWarning:
		x.Warning += n
	case types.ScanStatusFailed:
		x.Failed += n
	case types.ScanStatusMissing:
		x.Missing += n
	case types.ScanStatusSkipped:
		x.Skipped += n
	}
}

// ScannerMetrics is the side-table entry of one (scanner, target kind) pair.
type ScannerMetrics struct {
	Status          types.ScanStatus        `json:"status"`
	Threshold       types.Threshold         `json:"threshold"`
	ThresholdSource string                  `json:"thresholdSource"`
	Histogram       types.SeverityHistogram `json:"severityCounts"`
	FindingCount    int                     `json:"findingCount"`
	Actionable      int                     `json:"actionable"`
	Suppressed      int                     `json:"suppressed"`
	SelfExcluded    int                     `json:"selfExcluded,omitempty"`
	ExitCode        int                     `json:"exitCode"`
	StartTime       time.Time               `json:"startTime"`
	EndTime         time.Time               `json:"endTime"`
	DurationMS      int64                   `json:"durationMs"`
	Error           string                  `json:"error,omitempty"`
	Errors          []string                `json:"errors,omitempty"`
	SkipReason      types.SkipReason        `json:"skipReason,omitempty"`
}

// Metrics returns the side-table entry, or nil if the pair was never merged.
func (x *AggregateReport) Metrics(scanner string, kind types.TargetKind) *ScannerMetrics {
	if byKind, ok := x.Metadata.ScannerResults[scanner]; ok {
		return byKind[kind]
	}
	return nil
}

// Results returns pointers to every finding of the merged run-set.
func (x *AggregateReport) Results() []*sarif.Result {
	if x.Sarif == nil {
		return nil
	}
	var out []*sarif.Result
	for i := range x.Sarif.Runs {
		for j := range x.Sarif.Runs[i].Results {
			out = append(out, &x.Sarif.Runs[i].Results[j])
		}
	}
	return out
}

// ScannerNames returns scanner names of the side table in sorted order.
func (x *AggregateReport) ScannerNames() []string {
	return slices.Sorted(maps.Keys(x.Metadata.ScannerResults))
}

// Clone returns a deep copy of the report.
func (x *AggregateReport) Clone() *AggregateReport {
	if x == nil {
		return nil
	}
	out := &AggregateReport{
		Sarif:             x.Sarif.Clone(),
		AdditionalReports: make(map[string]map[types.TargetKind]OpaquePayload, len(x.AdditionalReports)),
		Metadata:          x.Metadata,
	}
	for name, byKind := range x.AdditionalReports {
		out.AdditionalReports[name] = maps.Clone(byKind)
	}

	if x.Metadata.Git != nil {
		git := *x.Metadata.Git
		out.Metadata.Git = &git
	}
	out.Metadata.Warnings = slices.Clone(x.Metadata.Warnings)
	out.Metadata.ScannerResults = make(map[string]map[types.TargetKind]*ScannerMetrics, len(x.Metadata.ScannerResults))
	for name, byKind := range x.Metadata.ScannerResults {
		copied := make(map[types.TargetKind]*ScannerMetrics, len(byKind))
		for kind, m := range byKind {
			v := *m
			v.Errors = slices.Clone(m.Errors)
			copied[kind] = &v
		}
		out.Metadata.ScannerResults[name] = copied
	}
	return out
}
