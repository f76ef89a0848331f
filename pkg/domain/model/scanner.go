package model

import (
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// ScannerInfo describes static properties of a scanner instance.
type ScannerInfo struct {
	Type types.ScannerType
	// Native is true when the scanner needs no external runtime or binary.
	Native bool
	// DefaultThreshold is the scanner's own severity threshold. Nil means the configuration decides.
	DefaultThreshold *types.Threshold
}

type ScanRequest struct {
	Target      string
	Kind        types.TargetKind
	OutputDir   string
	IgnorePaths []IgnorePath
}

type ScanOutput struct {
	Payload   Payload
	ExitCode  int
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
}

// Payload is the raw output of a scanner. It is either *FindingSetPayload or OpaquePayload.
type Payload interface {
	payload()
}

// FindingSetPayload is a SARIF log produced by a scanner.
type FindingSetPayload struct {
	Log *sarif.Log
}

// OpaquePayload is a scanner-specific JSON document. Severity counts are read from its "severityCounts" or "findings" keys.
type OpaquePayload map[string]any

func (*FindingSetPayload) payload() {}
func (OpaquePayload) payload()      {}
