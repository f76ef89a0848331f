// Package metrics records scan execution metrics in a Prometheus registry that can be exported as a textfile.
package metrics

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

const namespace = "barrage"

// Recorder is safe for concurrent use. A nil Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	jobsTotal    *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
	jobFindings  *prometheus.CounterVec
	findings     *prometheus.GaugeVec
	actionable   *prometheus.GaugeVec
	suppressed   prometheus.Gauge
	selfExcluded prometheus.Gauge
	lastScan     prometheus.Gauge
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		// jobsTotal tracks scan jobs by scanner, target kind and status
		jobsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scan_jobs_total",
				Help:      "Total number of scan jobs by scanner, target kind and status",
			},
			[]string{"scanner", "kind", "status"},
		),

		jobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scan_job_duration_seconds",
				Help:      "Scan job duration in seconds",
				Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"scanner", "kind"},
		),

		jobFindings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scan_job_findings_total",
				Help:      "Findings reported by scanners before aggregation",
			},
			[]string{"scanner", "severity"},
		),

		findings: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "findings",
				Help:      "Unsuppressed findings of the last scan by severity",
			},
			[]string{"severity"},
		),

		actionable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "actionable_findings",
				Help:      "Findings at or above the resolved threshold of each scanner",
			},
			[]string{"scanner"},
		),

		suppressed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "suppressed_findings",
			Help:      "Findings suppressed by scanners or policy in the last scan",
		}),

		selfExcluded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "self_excluded_findings",
			Help:      "Findings dropped because they point into the output directory",
		}),

		lastScan: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_scan_timestamp_seconds",
			Help:      "Unix time of the last finished scan",
		}),
	}
}

// ObserveJob records one finished scan job.
func (x *Recorder) ObserveJob(result *model.ScanResult) {
	if x == nil || result == nil {
		return
	}
	x.jobsTotal.WithLabelValues(result.ScannerName, string(result.Kind), string(result.Status)).Inc()
	x.jobDuration.WithLabelValues(result.ScannerName, string(result.Kind)).Observe(result.Duration().Seconds())
	for _, sev := range types.Severities {
		if n := result.Histogram.Get(sev); n > 0 {
			x.jobFindings.WithLabelValues(result.ScannerName, sev.String()).Add(float64(n))
		}
	}
}

// ObserveReport records the final state of a scan after suppression.
func (x *Recorder) ObserveReport(report *model.AggregateReport) {
	if x == nil || report == nil {
		return
	}
	summary := report.Metadata.Summary
	for _, sev := range types.Severities {
		x.findings.WithLabelValues(sev.String()).Set(float64(summary.BySeverity.Get(sev)))
	}
	for _, name := range report.ScannerNames() {
		var n int
		for _, m := range report.Metadata.ScannerResults[name] {
			n += m.Actionable
		}
		x.actionable.WithLabelValues(name).Set(float64(n))
	}
	x.suppressed.Set(float64(summary.Suppressed))
	x.selfExcluded.Set(float64(summary.SelfExcluded))
	x.lastScan.Set(float64(report.Metadata.GeneratedAt.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (x *Recorder) Gatherer() prometheus.Gatherer {
	return x.registry
}

// WriteTextfile writes all metrics in the node_exporter textfile format.
func (x *Recorder) WriteTextfile(path string) error {
	if x == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, x.registry); err != nil {
		return goerr.Wrap(err, "failed to write metrics textfile", goerr.V("path", path))
	}
	return nil
}
