package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/repository"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
)

// applyBaseline compares findings with the latest stored scan of the same project.
// Without a scan repository or a previous scan the report is left unchanged.
func (x *UseCase) applyBaseline(ctx context.Context, report *model.AggregateReport) error {
	repo := x.clients.ScanRepository()
	if repo == nil || report.Metadata.Project == "" {
		return nil
	}

	prev, err := repo.GetLatestScan(ctx, report.Metadata.Project)
	if errors.Is(err, repository.ErrNotFound) {
		logging.From(ctx).Debug("no baseline scan", "project", report.Metadata.Project)
		return nil
	}
	if err != nil {
		return goerr.Wrap(err, "failed to get baseline scan",
			goerr.V("project", report.Metadata.Project),
		)
	}

	compareBaseline(report, prev.FindingIDs)
	logging.From(ctx).Info("baseline compared",
		"baseline_scan_id", prev.ID,
		"new", report.Metadata.Summary.New,
		"absent", report.Metadata.Summary.Absent,
	)
	return nil
}

// compareBaseline sets baselineState of every finding and the new and absent counts.
// Suppressed findings are marked but not counted as new.
func compareBaseline(report *model.AggregateReport, baseline []string) {
	known := make(map[string]struct{}, len(baseline))
	for _, id := range baseline {
		known[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	var added int
	for _, r := range report.Results() {
		id := r.Property(model.PropFindingID)
		if id == "" {
			continue
		}
		seen[id] = struct{}{}

		if _, ok := known[id]; ok {
			r.BaselineState = sarif.BaselineStateUnchanged
			continue
		}
		r.BaselineState = sarif.BaselineStateNew
		if !r.IsSuppressed() {
			added++
		}
	}

	var absent int
	for id := range known {
		if _, ok := seen[id]; !ok {
			absent++
		}
	}

	report.Metadata.Summary.New = added
	report.Metadata.Summary.Absent = absent
}
