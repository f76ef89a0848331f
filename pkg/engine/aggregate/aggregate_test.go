package aggregate_test

import (
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/engine/aggregate"
	"github.com/secmon-lab/barrage/pkg/engine/threshold"
)

func finding(rule, uri string, line int, level sarif.Level) sarif.Result {
	return sarif.Result{
		RuleID:  rule,
		Level:   level,
		Message: sarif.Message{Text: rule + " found"},
		Locations: []sarif.Location{{
			PhysicalLocation: &sarif.PhysicalLocation{
				ArtifactLocation: &sarif.ArtifactLocation{URI: uri},
				Region:           &sarif.Region{StartLine: line},
			},
		}},
	}
}

func sarifResult(scanner string, kind types.TargetKind, findings ...sarif.Result) *model.ScanResult {
	log := sarif.NewLog()
	log.Runs = append(log.Runs, sarif.Run{
		Tool:    sarif.Tool{Driver: sarif.ToolComponent{Name: scanner, Version: "1.0"}},
		Results: findings,
	})
	return &model.ScanResult{
		ScannerName: scanner,
		Kind:        kind,
		Status:      types.ScanStatusPassed,
		Payload:     &model.FindingSetPayload{Log: log},
	}
}

func TestFindingID(t *testing.T) {
	a := aggregate.FindingID("rule", "src/a.py", 3, 5)
	b := aggregate.FindingID("rule", "src/a.py", 3, 5)
	gt.V(t, a).Equal(b)
	gt.V(t, aggregate.FindingID("rule", "src/a.py", 3, 6)).NotEqual(a)
	gt.V(t, aggregate.FindingID("other", "src/a.py", 3, 5)).NotEqual(a)
	gt.V(t, len(string(a))).Equal(36)
}

func TestMerge(t *testing.T) {
	t.Run("counts and tags findings", func(t *testing.T) {
		agg := aggregate.New("/work/repo")
		agg.Merge(sarifResult("semgrep", types.TargetKindSource,
			finding("r1", "file:///work/repo/src/a.py", 1, sarif.LevelError),
			finding("r2", "src/b.py", 2, sarif.LevelWarning),
			finding("r3", "src/c.py", 3, sarif.LevelNote),
		))

		report := agg.Snapshot()
		m := report.Metrics("semgrep", types.TargetKindSource)
		gt.V(t, m.Histogram).Equal(types.SeverityHistogram{High: 1, Medium: 1, Low: 1})
		gt.V(t, m.FindingCount).Equal(3)
		gt.V(t, m.Actionable).Equal(2)
		gt.V(t, m.Threshold).Equal(types.ThresholdMedium)
		gt.V(t, report.Metadata.Summary.Total).Equal(3)
		gt.V(t, report.Metadata.Summary.Actionable).Equal(2)
		gt.V(t, report.Metadata.Summary.Status).Equal(types.ScanStatusFailed)

		results := report.Results()
		gt.V(t, len(results)).Equal(3)
		first := results[0]
		gt.V(t, first.Path()).Equal("src/a.py")
		gt.V(t, first.Property(model.PropScanner)).Equal("semgrep")
		gt.V(t, first.Property(model.PropTargetKind)).Equal("source")
		gt.V(t, first.Property(model.PropSeverity)).Equal("high")
		gt.V(t, first.GUID).Equal(string(aggregate.FindingID("r1", "src/a.py", 1, 1)))
	})

	t.Run("duplicates within one job collapse", func(t *testing.T) {
		agg := aggregate.New("/work/repo")
		agg.Merge(sarifResult("semgrep", types.TargetKindSource,
			finding("r1", "src/a.py", 1, sarif.LevelError),
			finding("r1", "./src/a.py", 1, sarif.LevelError),
		))
		gt.V(t, agg.Snapshot().Metadata.Summary.Total).Equal(1)
	})

	t.Run("same finding from two scanners is kept twice", func(t *testing.T) {
		agg := aggregate.New("/work/repo")
		agg.Merge(sarifResult("semgrep", types.TargetKindSource, finding("r1", "src/a.py", 1, sarif.LevelError)))
		agg.Merge(sarifResult("bandit", types.TargetKindSource, finding("r1", "src/a.py", 1, sarif.LevelError)))
		gt.V(t, agg.Snapshot().Metadata.Summary.Total).Equal(2)
	})

	t.Run("duplicate key replaces previous entry", func(t *testing.T) {
		agg := aggregate.New("/work/repo")
		first := sarifResult("semgrep", types.TargetKindSource,
			finding("r1", "src/a.py", 1, sarif.LevelError),
			finding("r2", "src/a.py", 2, sarif.LevelError),
		)
		first.Status = types.ScanStatusFailed
		agg.Merge(first)
		agg.Merge(sarifResult("semgrep", types.TargetKindSource, finding("r3", "src/a.py", 3, sarif.LevelNote)))

		report := agg.Snapshot()
		gt.V(t, agg.Len()).Equal(1)
		gt.V(t, report.Metadata.Summary.BySeverity).Equal(types.SeverityHistogram{Low: 1})
		gt.V(t, report.Metadata.Summary.Actionable).Equal(0)
		gt.V(t, report.Metadata.Summary.Scanners).Equal(model.ScannerStatusCounts{Passed: 1})
		gt.V(t, len(report.Results())).Equal(1)
	})

	t.Run("scanner side suppressions count as suppressed", func(t *testing.T) {
		agg := aggregate.New("/work/repo")
		f := finding("r1", "src/a.py", 1, sarif.LevelError)
		f.Suppressions = []sarif.Suppression{{Kind: sarif.SuppressionKindInSource}}
		agg.Merge(sarifResult("semgrep", types.TargetKindSource, f))

		report := agg.Snapshot()
		gt.V(t, report.Metadata.Summary.Total).Equal(0)
		gt.V(t, report.Metadata.Summary.Suppressed).Equal(1)
		gt.V(t, len(report.Results())).Equal(1)
	})

	t.Run("opaque payload goes to additional reports", func(t *testing.T) {
		agg := aggregate.New("/work/repo")
		agg.Merge(&model.ScanResult{
			ScannerName: "custom",
			Kind:        types.TargetKindSource,
			Status:      types.ScanStatusFailed,
			Payload:     model.OpaquePayload{"severityCounts": map[string]any{"critical": 2}},
		})

		report := agg.Snapshot()
		gt.V(t, report.Metrics("custom", types.TargetKindSource).Histogram.Critical).Equal(2)
		_, ok := report.AdditionalReports["custom"][types.TargetKindSource]
		gt.True(t, ok)
		gt.V(t, len(report.Sarif.Runs)).Equal(0)
	})

	t.Run("failed job without payload has zero histogram", func(t *testing.T) {
		agg := aggregate.New("/work/repo")
		agg.Merge(&model.ScanResult{
			ScannerName: "broken",
			Kind:        types.TargetKindSource,
			Status:      types.ScanStatusFailed,
			Error:       "exit status 3",
		})
		report := agg.Snapshot()
		m := report.Metrics("broken", types.TargetKindSource)
		gt.V(t, m.FindingCount).Equal(0)
		gt.V(t, m.Error).Equal("exit status 3")
		gt.V(t, report.Metadata.Summary.Scanners.Failed).Equal(1)
	})

	t.Run("resolved threshold applies per scanner", func(t *testing.T) {
		global := types.ThresholdCritical
		resolver := threshold.NewResolver(&global, map[string]types.Threshold{"gitleaks": types.ThresholdAll})
		agg := aggregate.New("/work/repo", aggregate.WithResolver(resolver))
		agg.Merge(sarifResult("gitleaks", types.TargetKindSource, finding("secret", "a.env", 1, sarif.LevelNote)))
		agg.Merge(sarifResult("semgrep", types.TargetKindSource, finding("r1", "a.py", 1, sarif.LevelError)))

		report := agg.Snapshot()
		gt.V(t, report.Metrics("gitleaks", types.TargetKindSource).Actionable).Equal(1)
		gt.V(t, report.Metrics("semgrep", types.TargetKindSource).Actionable).Equal(0)
		gt.V(t, report.Metadata.Summary.Actionable).Equal(1)
		gt.V(t, report.Metadata.GlobalThreshold).Equal(types.ThresholdCritical)
	})
}

func TestSelfExclusion(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, ".barrage")

	agg := aggregate.New(root, aggregate.WithOutputDir(out))
	agg.Merge(sarifResult("semgrep", types.TargetKindSource,
		finding("r1", ".barrage/scanners/semgrep/source/results.sarif", 1, sarif.LevelError),
		finding("r2", filepath.Join(out, "barrage_aggregated_results.json"), 1, sarif.LevelError),
		finding("r3", ".barrage/converted/notebook.py", 4, sarif.LevelError),
		finding("r4", "src/app.py", 9, sarif.LevelError),
	))

	report := agg.Snapshot()
	m := report.Metrics("semgrep", types.TargetKindSource)
	gt.V(t, m.FindingCount).Equal(2)
	gt.V(t, m.SelfExcluded).Equal(2)
	gt.V(t, report.Metadata.Summary.SelfExcluded).Equal(2)

	var paths []string
	for _, r := range report.Results() {
		paths = append(paths, r.Path())
	}
	gt.V(t, paths).Equal([]string{".barrage/converted/notebook.py", "src/app.py"})
}

func TestMergeOrderIndependent(t *testing.T) {
	build := func() []*model.ScanResult {
		return []*model.ScanResult{
			sarifResult("semgrep", types.TargetKindSource,
				finding("r1", "a.py", 1, sarif.LevelError),
				finding("r2", "b.py", 2, sarif.LevelWarning),
			),
			sarifResult("semgrep", types.TargetKindConverted, finding("r1", "nb.py", 1, sarif.LevelNote)),
			sarifResult("gitleaks", types.TargetKindSource, finding("aws", ".env", 3, sarif.LevelError)),
			{ScannerName: "custom", Kind: types.TargetKindSource, Payload: model.OpaquePayload{"findings": []any{map[string]any{"severity": "low"}}}},
			{ScannerName: "missing", Kind: types.TargetKindSource, Status: types.ScanStatusMissing},
		}
	}

	clock := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	snapshot := func(results []*model.ScanResult, concurrent bool) *model.AggregateReport {
		agg := aggregate.New("/work/repo", aggregate.WithClock(clock))
		if !concurrent {
			for _, r := range results {
				agg.Merge(r)
			}
			return agg.Snapshot()
		}
		var wg sync.WaitGroup
		for _, r := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				agg.Merge(r)
			}()
		}
		wg.Wait()
		return agg.Snapshot()
	}

	expected := snapshot(build(), false)
	for i := 0; i < 20; i++ {
		results := build()
		rand.Shuffle(len(results), func(a, b int) { results[a], results[b] = results[b], results[a] })
		got := snapshot(results, i%2 == 1)
		gt.V(t, got.Metadata.Summary).Equal(expected.Metadata.Summary)
		gt.V(t, got.Metadata.ScannerResults).Equal(expected.Metadata.ScannerResults)
		gt.V(t, got.Sarif).Equal(expected.Sarif)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	agg := aggregate.New("/work/repo")
	agg.Merge(sarifResult("semgrep", types.TargetKindSource, finding("r1", "a.py", 1, sarif.LevelError)))

	first := agg.Snapshot()
	first.Results()[0].SetPath("changed.py")
	first.Metrics("semgrep", types.TargetKindSource).FindingCount = 42

	second := agg.Snapshot()
	gt.V(t, second.Results()[0].Path()).Equal("a.py")
	gt.V(t, second.Metrics("semgrep", types.TargetKindSource).FindingCount).Equal(1)
}

func TestExcluder(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, ".barrage")
	ex := aggregate.NewExcluder(root, out, "")

	gt.True(t, ex.IsExcluded(".barrage/scanners/semgrep/source/x.py"))
	gt.False(t, ex.IsExcluded(".barrage/converted/x.py"))
	gt.False(t, ex.IsExcluded("src/app.py"))

	t.Run("filter keeps the given payload intact", func(t *testing.T) {
		input := sarifResult("semgrep", types.TargetKindSource,
			finding("r1", filepath.Join(out, "scanners", "semgrep", "source", "x.py"), 1, sarif.LevelError),
			finding("r2", "src/app.py", 2, sarif.LevelError),
		).Payload.(*model.FindingSetPayload)

		filtered, ok := ex.Filter(input).(*model.FindingSetPayload)
		gt.True(t, ok)
		gt.V(t, len(filtered.Log.Runs[0].Results)).Equal(1)
		gt.V(t, filtered.Log.Runs[0].Results[0].RuleID).Equal("r2")
		gt.V(t, len(input.Log.Runs[0].Results)).Equal(2)
	})

	t.Run("opaque payload is returned as is", func(t *testing.T) {
		p := model.OpaquePayload{"findings": []any{}}
		gt.V(t, ex.Filter(p)).Equal(model.Payload(p))
	})

	t.Run("nil excluder excludes nothing", func(t *testing.T) {
		var none *aggregate.Excluder
		gt.False(t, none.IsExcluded(".barrage/x.py"))
		p := &model.FindingSetPayload{Log: sarif.NewLog()}
		gt.V(t, none.Filter(p)).Equal(model.Payload(p))
	})

	t.Run("no output directory", func(t *testing.T) {
		gt.False(t, aggregate.NewExcluder(root, "", "").IsExcluded(".barrage/x.py"))
	})
}
