package testhelper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/repository"
)

// TestAll runs all test cases for ScanRepository
// This is the main entry point for testing any ScanRepository implementation
func TestAll(t *testing.T, repo interfaces.ScanRepository) {
	t.Run("ScanCRUD", func(t *testing.T) {
		TestScanCRUD(t, repo)
	})
	t.Run("LatestScan", func(t *testing.T) {
		TestLatestScan(t, repo)
	})
	t.Run("ProjectWithSlash", func(t *testing.T) {
		TestProjectWithSlash(t, repo)
	})
	t.Run("ManyFindingIDs", func(t *testing.T) {
		TestManyFindingIDs(t, repo)
	})
	t.Run("InvalidInput", func(t *testing.T) {
		TestInvalidInput(t, repo)
	})
}

func newProject() string {
	return fmt.Sprintf("project-%s", uuid.New().String()[:8])
}

func newScanRecord(project string, ts time.Time, findingIDs ...string) *model.ScanRecord {
	return &model.ScanRecord{
		ID:        types.NewScanID(),
		Project:   project,
		Timestamp: ts,
		Git: &model.GitMetadata{
			Branch:   "main",
			CommitID: uuid.New().String(),
		},
		Status: types.ScanStatusWarning,
		Summary: model.SummaryStats{
			Status:     types.ScanStatusWarning,
			Total:      len(findingIDs),
			Actionable: len(findingIDs),
		},
		Scanners: []model.ScannerRecord{
			{
				Name:         "semgrep",
				Kind:         types.TargetKindSource,
				Status:       types.ScanStatusWarning,
				Threshold:    "MEDIUM",
				Histogram:    types.SeverityHistogram{Medium: len(findingIDs)},
				FindingCount: len(findingIDs),
				Actionable:   len(findingIDs),
			},
		},
		FindingIDs: findingIDs,
	}
}

func sorted(ids []string) []string {
	out := append([]string{}, ids...)
	sort.Strings(out)
	return out
}

// TestScanCRUD tests put and get of a scan record
func TestScanCRUD(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()
	project := newProject()

	// Timestamps are truncated because some stores keep microseconds only
	now := time.Now().UTC().Truncate(time.Millisecond)
	record := newScanRecord(project, now, uuid.New().String(), uuid.New().String())
	gt.NoError(t, repo.PutScan(ctx, record))

	retrieved, err := repo.GetScan(ctx, project, record.ID)
	gt.NoError(t, err)
	gt.V(t, retrieved.ID).Equal(record.ID)
	gt.V(t, retrieved.Project).Equal(project)
	gt.True(t, retrieved.Timestamp.Equal(now))
	gt.V(t, retrieved.Status).Equal(types.ScanStatusWarning)
	gt.V(t, retrieved.Git.CommitID).Equal(record.Git.CommitID)
	gt.V(t, retrieved.Summary.Actionable).Equal(2)
	gt.V(t, len(retrieved.Scanners)).Equal(1)
	gt.V(t, retrieved.Scanners[0].Histogram.Medium).Equal(2)
	gt.V(t, sorted(retrieved.FindingIDs)).Equal(sorted(record.FindingIDs))

	// Returned records are detached from the store
	retrieved.FindingIDs[0] = "modified"
	again, err := repo.GetScan(ctx, project, record.ID)
	gt.NoError(t, err)
	gt.V(t, sorted(again.FindingIDs)).Equal(sorted(record.FindingIDs))

	// Overwrite keeps one record per ID
	record.Status = types.ScanStatusPassed
	record.FindingIDs = nil
	gt.NoError(t, repo.PutScan(ctx, record))
	scans, err := repo.ListScans(ctx, project, 0)
	gt.NoError(t, err)
	gt.V(t, len(scans)).Equal(1)
	gt.V(t, scans[0].Status).Equal(types.ScanStatusPassed)

	// Test not found
	_, err = repo.GetScan(ctx, project, types.NewScanID())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestLatestScan tests ordering of scan history
func TestLatestScan(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()
	project := newProject()

	_, err := repo.GetLatestScan(ctx, project)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	base := time.Now().UTC().Truncate(time.Millisecond)
	first := newScanRecord(project, base.Add(-2*time.Hour), "a")
	second := newScanRecord(project, base.Add(-1*time.Hour), "b")
	third := newScanRecord(project, base, "c")

	// Insert out of order
	gt.NoError(t, repo.PutScan(ctx, second))
	gt.NoError(t, repo.PutScan(ctx, third))
	gt.NoError(t, repo.PutScan(ctx, first))

	latest, err := repo.GetLatestScan(ctx, project)
	gt.NoError(t, err)
	gt.V(t, latest.ID).Equal(third.ID)
	gt.V(t, latest.FindingIDs).Equal([]string{"c"})

	scans, err := repo.ListScans(ctx, project, 0)
	gt.NoError(t, err)
	gt.V(t, len(scans)).Equal(3)
	gt.V(t, scans[0].ID).Equal(third.ID)
	gt.V(t, scans[1].ID).Equal(second.ID)
	gt.V(t, scans[2].ID).Equal(first.ID)

	limited, err := repo.ListScans(ctx, project, 2)
	gt.NoError(t, err)
	gt.V(t, len(limited)).Equal(2)
	gt.V(t, limited[1].ID).Equal(second.ID)

	// Other projects are not visible
	other, err := repo.ListScans(ctx, newProject(), 0)
	gt.NoError(t, err)
	gt.V(t, len(other)).Equal(0)
}

// TestProjectWithSlash tests project names in owner/repo form
func TestProjectWithSlash(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()
	project := fmt.Sprintf("org-%s/%s", uuid.New().String()[:8], newProject())

	record := newScanRecord(project, time.Now().UTC().Truncate(time.Millisecond), "x")
	gt.NoError(t, repo.PutScan(ctx, record))

	retrieved, err := repo.GetLatestScan(ctx, project)
	gt.NoError(t, err)
	gt.V(t, retrieved.ID).Equal(record.ID)
	gt.V(t, retrieved.Project).Equal(project)
}

// TestManyFindingIDs tests records larger than one write batch
func TestManyFindingIDs(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()
	project := newProject()

	ids := make([]string, 1200)
	for i := range ids {
		ids[i] = uuid.New().String()
	}

	record := newScanRecord(project, time.Now().UTC().Truncate(time.Millisecond), ids...)
	gt.NoError(t, repo.PutScan(ctx, record))

	retrieved, err := repo.GetScan(ctx, project, record.ID)
	gt.NoError(t, err)
	gt.V(t, len(retrieved.FindingIDs)).Equal(1200)
	gt.V(t, sorted(retrieved.FindingIDs)).Equal(sorted(ids))
}

// TestInvalidInput tests rejection of records without identity
func TestInvalidInput(t *testing.T, repo interfaces.ScanRepository) {
	ctx := context.Background()

	noProject := newScanRecord("", time.Now())
	err := repo.PutScan(ctx, noProject)
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))

	noID := newScanRecord(newProject(), time.Now())
	noID.ID = ""
	err = repo.PutScan(ctx, noID)
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}
