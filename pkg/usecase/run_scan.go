package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/config"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/engine/aggregate"
	"github.com/secmon-lab/barrage/pkg/engine/dispatch"
	"github.com/secmon-lab/barrage/pkg/engine/threshold"
	"github.com/secmon-lab/barrage/pkg/infra/metrics"
	"github.com/secmon-lab/barrage/pkg/infra/storage"
	"github.com/secmon-lab/barrage/pkg/reporter"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
	"go.opentelemetry.io/otel/attribute"
)

// Exit codes of a finished scan.
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeActionable = 2
)

// RunScan executes every selected scanner against the targets and writes the aggregate
// report to the output directory. Configuration problems abort the scan before any
// scanner runs. Failures of single scanners are recorded in the report instead.
func (x *UseCase) RunScan(ctx context.Context, input *model.ScanInput) (*model.ScanOutcome, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(x.registry.ScannerNames()) == 0 {
		return nil, goerr.Wrap(types.ErrNoScanner, "scan requires at least one scanner plugin")
	}

	cfg := input.Config
	if cfg == nil {
		cfg = &model.ScanConfig{}
	}
	global, overrides, err := config.Thresholds(cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(input.OutputDir, 0750); err != nil {
		return nil, goerr.Wrap(types.ErrOutputDir, "failed to create output directory",
			goerr.V("dir", input.OutputDir),
			goerr.V("cause", err.Error()),
		)
	}

	scanID := types.NewScanID()
	ctx = logging.CtxWithScanID(ctx, scanID)
	ctx = logging.CtxWithTime(ctx, x.now)
	logger := logging.From(ctx).With("scan_id", scanID)
	ctx = logging.With(ctx, logger)

	ctx, span := x.tracer.Start(ctx, "barrage.scan")
	defer span.End()

	targets := dispatch.EnumerateTargets(input.SourceDir, input.ConvertedDir)
	jobs, err := dispatch.BuildJobs(ctx, x.registry, dispatch.JobConfig{
		Enabled:    input.Enabled,
		Excluded:   input.Excluded,
		NativeOnly: input.NativeOnly,
		Scanners:   cfg.Scanners,
	}, targets)
	if err != nil {
		return nil, err
	}

	resolver := threshold.NewResolver(global, overrides)
	for _, job := range jobs {
		if t := job.Scanner.Info().DefaultThreshold; t != nil {
			resolver.SetScannerDefault(job.ScannerName, *t)
		}
	}

	recorder := x.clients.Metrics()
	if recorder == nil && input.MetricsFile != "" {
		recorder = metrics.New()
	}

	aggOpts := []aggregate.Option{
		aggregate.WithExtractor(x.extractor),
		aggregate.WithResolver(resolver),
		aggregate.WithOutputDir(input.OutputDir),
		aggregate.WithClock(x.now),
	}
	if input.ConvertedDir != "" {
		aggOpts = append(aggOpts, aggregate.WithConvertedDir(input.ConvertedDir))
	}
	agg := aggregate.New(input.SourceDir, aggOpts...)

	mode := input.Mode
	if mode == "" {
		mode = types.ExecutionModeParallel
	}
	maxWorkers := input.MaxWorkers
	if maxWorkers == 0 {
		maxWorkers = cfg.Global.MaxWorkers
	}
	dispatcher := dispatch.New(
		dispatch.WithMode(mode),
		dispatch.WithMaxWorkers(maxWorkers),
		dispatch.WithJobTimeout(input.JobTimeout),
		dispatch.WithOutputDir(input.OutputDir),
		dispatch.WithIgnorePaths(cfg.Global.IgnorePaths),
		dispatch.WithExtractor(x.extractor),
		dispatch.WithExcluder(agg.Excluder()),
		dispatch.WithRecorder(recorder),
		dispatch.WithTracer(x.tracer),
		dispatch.WithClock(x.now),
	)

	logger.Info("scan started",
		"source", input.SourceDir,
		"converted", input.ConvertedDir,
		"output", input.OutputDir,
		"mode", mode,
		"jobs", len(jobs),
	)
	dispatcher.RunWith(ctx, jobs, agg.Merge)

	report := agg.Snapshot()
	report.Metadata.ScanID = scanID
	report.Metadata.Project = projectName(input)
	report.Metadata.Mode = mode
	report.Metadata.Git = input.Git

	report, warnings := x.suppressor.Apply(ctx, report, cfg.Global.IgnorePaths, cfg.Global.Suppressions, input.IgnoreSuppressions)
	for _, w := range warnings {
		logger.Warn("suppression expiration", "warning", w.Message())
	}

	if err := x.applyBaseline(ctx, report); err != nil {
		return nil, err
	}

	reportPath := filepath.Join(input.OutputDir, model.AggregateReportFileName)
	if err := reporter.Save(reportPath, report); err != nil {
		return nil, err
	}

	outputs, err := x.writeReports(ctx, report, input.OutputDir, input.Reporters)
	if err != nil {
		return nil, err
	}

	if err := x.publish(ctx, report, append([]string{reportPath}, outputs...)); err != nil {
		return nil, err
	}

	recorder.ObserveReport(report)
	if input.MetricsFile != "" {
		if err := recorder.WriteTextfile(input.MetricsFile); err != nil {
			return nil, err
		}
	}

	summary := report.Metadata.Summary
	exitCode := ExitCodeSuccess
	if summary.Actionable > 0 && input.ShouldFailOnFindings() {
		exitCode = ExitCodeActionable
	}

	span.SetAttributes(
		attribute.String("barrage.status", string(summary.Status)),
		attribute.Int("barrage.actionable", summary.Actionable),
		attribute.Int("barrage.jobs", len(jobs)),
	)
	logger.Info("scan finished",
		"status", summary.Status,
		"total", summary.Total,
		"actionable", summary.Actionable,
		"suppressed", summary.Suppressed,
		"new", summary.New,
		"exit_code", exitCode,
	)

	return &model.ScanOutcome{
		Report:             report,
		ReportPath:         reportPath,
		ReporterOutputs:    outputs,
		ExpirationWarnings: warnings,
		ExitCode:           exitCode,
	}, nil
}

func projectName(input *model.ScanInput) string {
	if input.Project != "" {
		return input.Project
	}
	if input.Config != nil && input.Config.ProjectName != "" {
		return input.Config.ProjectName
	}
	if abs, err := filepath.Abs(input.SourceDir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(input.SourceDir)
}

// publish sends the finished report to the configured sinks. Unconfigured sinks are skipped.
func (x *UseCase) publish(ctx context.Context, report *model.AggregateReport, files []string) error {
	if store := x.clients.ObjectStore(); store != nil {
		if _, err := storage.UploadFiles(ctx, store, report.Metadata.ScanID.String(), files); err != nil {
			return goerr.Wrap(err, "failed to upload scan artifacts")
		}
	}

	if x.clients.BigQuery() != nil {
		if err := x.InsertScanSummary(ctx, report); err != nil {
			return err
		}
	}

	if repo := x.clients.ScanRepository(); repo != nil {
		if err := repo.PutScan(ctx, model.NewScanRecord(report)); err != nil {
			return goerr.Wrap(err, "failed to save scan history",
				goerr.V("project", report.Metadata.Project),
			)
		}
	}

	return nil
}
