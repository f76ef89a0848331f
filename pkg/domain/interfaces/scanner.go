package interfaces

//go:generate moq -out ../mock/scanner.go -pkg mock . Scanner Reporter

import (
	"context"

	"github.com/secmon-lab/barrage/pkg/domain/model"
)

// Scanner is a pluggable security scanner. One instance may serve several targets concurrently.
type Scanner interface {
	Name() string
	Info() model.ScannerInfo
	IsEnabled() bool
	IsDependencySatisfied() bool
	Scan(ctx context.Context, req *model.ScanRequest) (*model.ScanOutput, error)
}

// Reporter renders an aggregate report into one output file.
type Reporter interface {
	Name() string
	Extension() string
	Report(report *model.AggregateReport) ([]byte, error)
}
