package model

import (
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// ScanResult is the outcome of exactly one dispatched scan job.
type ScanResult struct {
	ScannerName  string                  `json:"scannerName"`
	Target       string                  `json:"target"`
	Kind         types.TargetKind        `json:"kind"`
	StartTime    time.Time               `json:"startTime"`
	EndTime      time.Time               `json:"endTime"`
	Histogram    types.SeverityHistogram `json:"severityCounts"`
	FindingCount int                     `json:"findingCount"`
	ExitCode     int                     `json:"exitCode"`
	Status       types.ScanStatus        `json:"status"`
	Payload      Payload                 `json:"-"`
	Error        string                  `json:"error,omitempty"`
	Errors       []string                `json:"errors,omitempty"`

	DependencyMissing bool             `json:"dependencyMissing,omitempty"`
	TargetMissing     bool             `json:"targetMissing,omitempty"`
	SkipReason        types.SkipReason `json:"skipReason,omitempty"`
}

func (x *ScanResult) Duration() time.Duration {
	if x.EndTime.Before(x.StartTime) {
		return 0
	}
	return x.EndTime.Sub(x.StartTime)
}
