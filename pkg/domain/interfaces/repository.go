package interfaces

import (
	"context"

	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

//go:generate moq -out ../mock/scan_repository_mock.go -pkg mock . ScanRepository

// ScanRepository keeps the scan history of projects
type ScanRepository interface {
	PutScan(ctx context.Context, record *model.ScanRecord) error
	GetScan(ctx context.Context, project string, id types.ScanID) (*model.ScanRecord, error)
	// GetLatestScan returns the newest record of project, or repository.ErrNotFound.
	GetLatestScan(ctx context.Context, project string) (*model.ScanRecord, error)
	ListScans(ctx context.Context, project string, limit int) ([]*model.ScanRecord, error)
}
