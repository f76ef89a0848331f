package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

type ScanInput struct {
	SourceDir    string
	OutputDir    string
	ConvertedDir string
	Config       *ScanConfig

	Mode       types.ExecutionMode
	MaxWorkers int
	JobTimeout time.Duration

	Enabled    []string
	Excluded   []string
	NativeOnly bool

	IgnoreSuppressions bool
	FailOnFindings     *bool
	Reporters          []string

	Project     string
	Git         *GitMetadata
	MetricsFile string
}

func (x *ScanInput) Validate() error {
	if x.SourceDir == "" {
		return goerr.Wrap(types.ErrInvalidOption, "source directory is empty")
	}
	if x.OutputDir == "" {
		return goerr.Wrap(types.ErrInvalidOption, "output directory is empty")
	}
	switch x.Mode {
	case types.ExecutionModeSequential, types.ExecutionModeParallel, "":
	default:
		return goerr.Wrap(types.ErrInvalidOption, "invalid execution mode", goerr.V("mode", x.Mode))
	}
	if x.MaxWorkers < 0 {
		return goerr.Wrap(types.ErrInvalidOption, "max workers must not be negative", goerr.V("max_workers", x.MaxWorkers))
	}
	return nil
}

// ShouldFailOnFindings prefers the explicit input over the configuration file.
func (x *ScanInput) ShouldFailOnFindings() bool {
	if x.FailOnFindings != nil {
		return *x.FailOnFindings
	}
	return x.Config.ShouldFailOnFindings()
}

type ScanOutcome struct {
	Report             *AggregateReport
	ReportPath         string
	ReporterOutputs    []string
	ExpirationWarnings []ExpirationWarning
	ExitCode           int
}

// RenderInput re-renders a persisted aggregate report.
type RenderInput struct {
	ReportPath string
	OutputDir  string
	Reporters  []string
}
