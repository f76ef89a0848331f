package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/repository"
)

type scanRepository struct {
	mu       sync.RWMutex
	projects map[string]map[string]*model.ScanRecord
}

func (r *scanRepository) PutScan(ctx context.Context, record *model.ScanRecord) error {
	if record == nil || record.Project == "" || record.ID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "scan record requires project and ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	scans, exists := r.projects[record.Project]
	if !exists {
		scans = make(map[string]*model.ScanRecord)
		r.projects[record.Project] = scans
	}
	scans[record.ID.String()] = copyScanRecord(record)

	return nil
}

func (r *scanRepository) GetScan(ctx context.Context, project string, id types.ScanID) (*model.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.projects[project][id.String()]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "scan not found",
			goerr.V("project", project),
			goerr.V("scanID", id),
		)
	}

	return copyScanRecord(record), nil
}

func (r *scanRepository) GetLatestScan(ctx context.Context, project string) (*model.ScanRecord, error) {
	scans, err := r.ListScans(ctx, project, 1)
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		return nil, goerr.Wrap(repository.ErrNotFound, "no scan of project",
			goerr.V("project", project),
		)
	}
	return scans[0], nil
}

// ListScans returns the scans of project newest first. A non-positive limit returns all of them.
func (r *scanRepository) ListScans(ctx context.Context, project string, limit int) ([]*model.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var scans []*model.ScanRecord
	for _, record := range r.projects[project] {
		scans = append(scans, copyScanRecord(record))
	}

	sort.Slice(scans, func(i, j int) bool {
		if !scans[i].Timestamp.Equal(scans[j].Timestamp) {
			return scans[i].Timestamp.After(scans[j].Timestamp)
		}
		return scans[i].ID > scans[j].ID
	})

	if limit > 0 && len(scans) > limit {
		scans = scans[:limit]
	}

	return scans, nil
}

func copyScanRecord(record *model.ScanRecord) *model.ScanRecord {
	if record == nil {
		return nil
	}
	cpy := *record

	// Deep copy slices and pointers
	if record.Git != nil {
		git := *record.Git
		cpy.Git = &git
	}

	if record.Scanners != nil {
		cpy.Scanners = make([]model.ScannerRecord, len(record.Scanners))
		copy(cpy.Scanners, record.Scanners)
	}

	if record.FindingIDs != nil {
		cpy.FindingIDs = make([]string, len(record.FindingIDs))
		copy(cpy.FindingIDs, record.FindingIDs)
	}

	return &cpy
}
