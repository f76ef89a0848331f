package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/infra/metrics"
)

func TestRecorder(t *testing.T) {
	rec := metrics.New()
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	rec.ObserveJob(&model.ScanResult{
		ScannerName: "semgrep",
		Kind:        types.TargetKindSource,
		Status:      types.ScanStatusFailed,
		StartTime:   started,
		EndTime:     started.Add(3 * time.Second),
		Histogram:   types.SeverityHistogram{High: 2},
	})
	rec.ObserveReport(&model.AggregateReport{
		Metadata: model.ReportMetadata{
			GeneratedAt: started,
			Summary:     model.SummaryStats{BySeverity: types.SeverityHistogram{High: 1}, Suppressed: 1},
			ScannerResults: map[string]map[types.TargetKind]*model.ScannerMetrics{
				"semgrep": {types.TargetKindSource: {Actionable: 1}},
			},
		},
	})

	count := gt.R1(testutil.GatherAndCount(rec.Gatherer(), "barrage_scan_jobs_total")).NoError(t)
	gt.V(t, count).Equal(1)

	path := filepath.Join(t.TempDir(), "barrage.prom")
	gt.NoError(t, rec.WriteTextfile(path))
	body := gt.R1(os.ReadFile(path)).NoError(t)
	gt.S(t, string(body)).Contains(`barrage_actionable_findings{scanner="semgrep"} 1`)
	gt.S(t, string(body)).Contains(`barrage_findings{severity="high"} 1`)
}

func TestNilRecorder(t *testing.T) {
	var rec *metrics.Recorder
	rec.ObserveJob(&model.ScanResult{})
	rec.ObserveReport(&model.AggregateReport{})
	gt.NoError(t, rec.WriteTextfile("unused"))
}
