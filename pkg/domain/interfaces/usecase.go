package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/secmon-lab/barrage/pkg/domain/model"
)

type UseCase interface {
	RunScan(ctx context.Context, input *model.ScanInput) (*model.ScanOutcome, error)
	RenderReport(ctx context.Context, input *model.RenderInput) ([]string, error)
	InsertScanSummary(ctx context.Context, report *model.AggregateReport) error
}
