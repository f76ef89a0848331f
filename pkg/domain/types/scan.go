package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	ScanID        string
	FindingID     string
	ScannerName   string
	ScanStatus    string
	TargetKind    string
	ExecutionMode string
	SkipReason    string
	ScannerType   string
)

func NewScanID() ScanID {
	return ScanID(uuid.NewString())
}

func (x ScanID) String() string { return string(x) }

const (
	ScanStatusPassed  ScanStatus = "passed"
	ScanStatusWarning ScanStatus = "warning"
	ScanStatusFailed  ScanStatus = "failed"
	ScanStatusMissing ScanStatus = "missing"
	ScanStatusSkipped ScanStatus = "skipped"
)

const (
	TargetKindSource    TargetKind = "source"
	TargetKindConverted TargetKind = "converted"
)

// Order returns the dispatch order of the kind. Source targets run before converted ones.
func (x TargetKind) Order() int {
	if x == TargetKindSource {
		return 0
	}
	return 1
}

const (
	ExecutionModeSequential ExecutionMode = "sequential"
	ExecutionModeParallel   ExecutionMode = "parallel"
)

const (
	SkipReasonNone       SkipReason = ""
	SkipReasonNativeOnly SkipReason = "native-only"
)

const (
	ScannerTypeSAST    ScannerType = "SAST"
	ScannerTypeSBOM    ScannerType = "SBOM"
	ScannerTypeSecrets ScannerType = "SECRETS"
	ScannerTypeIaC     ScannerType = "IAC"
	ScannerTypeCustom  ScannerType = "CUSTOM"
)

// SecretString holds credentials such as DSNs or access keys. It never appears in logs.
type SecretString string

func (x SecretString) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x SecretString) String() string {
	return "***********"
}

func (x SecretString) Reveal() string {
	return string(x)
}
