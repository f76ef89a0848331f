package reporter_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/engine/aggregate"
	"github.com/secmon-lab/barrage/pkg/plugin"
	"github.com/secmon-lab/barrage/pkg/reporter"
)

func newReport(t *testing.T) *model.AggregateReport {
	t.Helper()
	log := sarif.NewLog()
	log.Runs = append(log.Runs, sarif.Run{
		Tool: sarif.Tool{Driver: sarif.ToolComponent{Name: "semgrep"}},
		Results: []sarif.Result{{
			RuleID:  "python.eval",
			Level:   sarif.LevelError,
			Message: sarif.Message{Text: "eval is dangerous"},
			Locations: []sarif.Location{{
				PhysicalLocation: &sarif.PhysicalLocation{
					ArtifactLocation: &sarif.ArtifactLocation{URI: "app.py"},
					Region:           &sarif.Region{StartLine: 4},
				},
			}},
		}},
	})

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	agg := aggregate.New("/repo", aggregate.WithClock(func() time.Time { return start }))
	agg.Merge(&model.ScanResult{
		ScannerName: "semgrep",
		Target:      "/repo",
		Kind:        types.TargetKindSource,
		StartTime:   start,
		EndTime:     start.Add(1500 * time.Millisecond),
		Status:      types.ScanStatusFailed,
		Payload:     &model.FindingSetPayload{Log: log},
	})
	agg.Merge(&model.ScanResult{
		ScannerName: "licenses",
		Target:      "/repo",
		Kind:        types.TargetKindSource,
		Status:      types.ScanStatusPassed,
		Payload:     model.OpaquePayload{"severityCounts": map[string]any{"low": 2}},
	})
	report := agg.Snapshot()
	report.Metadata.ScanID = "3f0e2b7c-0000-4000-8000-000000000001"
	report.Metadata.Project = "web-api"
	report.Metadata.Warnings = []string{"suppression rule=X expires in 3 days (2026-03-04)"}
	return report
}

func TestRegister(t *testing.T) {
	reg := plugin.New()
	gt.NoError(t, reporter.Register(reg))
	gt.V(t, reg.ReporterNames()).Equal([]string{"json", "sarif", "summary"})
	gt.Error(t, reporter.Register(reg))
}

func TestJSON(t *testing.T) {
	report := newReport(t)
	data := gt.R1(reporter.NewJSON().Report(report)).NoError(t)

	var doc map[string]any
	gt.NoError(t, json.Unmarshal(data, &doc))
	gt.True(t, doc["sarif"] != nil)
	gt.True(t, doc["additionalReports"] != nil)

	meta, ok := doc["metadata"].(map[string]any)
	gt.True(t, ok)
	stats, ok := meta["summaryStats"].(map[string]any)
	gt.True(t, ok)
	gt.V(t, stats["total"]).Equal(float64(3))
}

func TestSARIF(t *testing.T) {
	data := gt.R1(reporter.NewSARIF().Report(newReport(t))).NoError(t)
	log := gt.R1(sarif.Decode(bytes.NewReader(data))).NoError(t)
	gt.V(t, log.Version).Equal(sarif.Version)
	gt.V(t, len(log.Runs)).Equal(1)
	gt.V(t, log.Runs[0].Results[0].RuleID).Equal("python.eval")

	empty := gt.R1(reporter.NewSARIF().Report(&model.AggregateReport{})).NoError(t)
	log = gt.R1(sarif.Decode(bytes.NewReader(empty))).NoError(t)
	gt.V(t, len(log.Runs)).Equal(0)
}

func TestSummary(t *testing.T) {
	data := gt.R1(reporter.NewSummary().Report(newReport(t))).NoError(t)
	text := string(data)
	gt.S(t, text).Contains("project:   web-api")
	gt.S(t, text).Contains("SCANNER")
	gt.S(t, text).Contains("semgrep")
	gt.S(t, text).Contains("licenses")
	gt.S(t, text).Contains("1.5s")
	gt.S(t, text).Contains("actionable: 1")
	gt.S(t, text).Contains("warning: suppression rule=X")
}

func TestSaveLoad(t *testing.T) {
	report := newReport(t)
	dir := t.TempDir()

	for _, name := range []string{"report.json", "report.json.gz", "report.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			gt.NoError(t, reporter.Save(path, report))

			loaded := gt.R1(reporter.Load(path)).NoError(t)
			gt.V(t, loaded.Metadata.ScanID).Equal(report.Metadata.ScanID)
			gt.V(t, loaded.Metadata.Summary).Equal(report.Metadata.Summary)
			gt.V(t, len(loaded.Results())).Equal(1)
			gt.V(t, loaded.Metrics("semgrep", types.TargetKindSource).Status).Equal(types.ScanStatusFailed)
		})
	}

	t.Run("invalid reports", func(t *testing.T) {
		broken := filepath.Join(dir, "broken.json")
		gt.NoError(t, os.WriteFile(broken, []byte(`{"metadata": {}}`), 0600))
		_, err := reporter.Load(broken)
		gt.True(t, errors.Is(err, types.ErrInvalidReport))

		notGzip := filepath.Join(dir, "plain.json.gz")
		gt.NoError(t, os.WriteFile(notGzip, []byte(`{}`), 0600))
		_, err = reporter.Load(notGzip)
		gt.True(t, errors.Is(err, types.ErrInvalidReport))

		_, err = reporter.Load(filepath.Join(dir, "missing.json"))
		gt.True(t, errors.Is(err, types.ErrInvalidReport))
	})
}
