package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/engine/aggregate"
	"github.com/secmon-lab/barrage/pkg/engine/extract"
	"github.com/secmon-lab/barrage/pkg/engine/threshold"
	"github.com/secmon-lab/barrage/pkg/infra/metrics"
	"github.com/secmon-lab/barrage/pkg/utils/errutil"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxWorkers returns min(32, NumCPU+4).
func DefaultMaxWorkers() int {
	return min(32, runtime.NumCPU()+4)
}

// Dispatcher runs scan jobs and produces exactly one ScanResult per job.
type Dispatcher struct {
	mode       types.ExecutionMode
	maxWorkers int
	jobTimeout time.Duration
	outputDir  string
	ignores    []model.IgnorePath

	extractor *extract.Extractor
	excluder  *aggregate.Excluder
	recorder  *metrics.Recorder
	tracer    trace.Tracer
	now       func() time.Time
}

type Option func(*Dispatcher)

func WithMode(mode types.ExecutionMode) Option {
	return func(x *Dispatcher) {
		x.mode = mode
	}
}

// WithMaxWorkers bounds the number of concurrently running jobs in parallel mode. Zero keeps the default.
func WithMaxWorkers(n int) Option {
	return func(x *Dispatcher) {
		if n > 0 {
			x.maxWorkers = n
		}
	}
}

// WithJobTimeout cancels the context of a job that runs longer than d.
func WithJobTimeout(d time.Duration) Option {
	return func(x *Dispatcher) {
		x.jobTimeout = d
	}
}

// WithOutputDir sets the root of per-job scanner output directories.
func WithOutputDir(dir string) Option {
	return func(x *Dispatcher) {
		x.outputDir = dir
	}
}

// WithIgnorePaths passes ignore paths to scanners that can skip them natively.
func WithIgnorePaths(ignores []model.IgnorePath) Option {
	return func(x *Dispatcher) {
		x.ignores = ignores
	}
}

func WithExtractor(extractor *extract.Extractor) Option {
	return func(x *Dispatcher) {
		x.extractor = extractor
	}
}

// WithExcluder leaves findings in the output directory out of the histogram a job status is
// derived from. The raw payload is kept.
func WithExcluder(excluder *aggregate.Excluder) Option {
	return func(x *Dispatcher) {
		x.excluder = excluder
	}
}

func WithRecorder(recorder *metrics.Recorder) Option {
	return func(x *Dispatcher) {
		x.recorder = recorder
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(x *Dispatcher) {
		x.tracer = tracer
	}
}

func WithClock(now func() time.Time) Option {
	return func(x *Dispatcher) {
		x.now = now
	}
}

func New(opts ...Option) *Dispatcher {
	x := &Dispatcher{
		mode:       types.ExecutionModeParallel,
		maxWorkers: DefaultMaxWorkers(),
		extractor:  extract.New(),
		tracer:     noop.NewTracerProvider().Tracer(""),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Run executes all jobs and returns their results in completion order.
func (x *Dispatcher) Run(ctx context.Context, jobs []*ScanJob) []*model.ScanResult {
	results := make([]*model.ScanResult, 0, len(jobs))
	x.RunWith(ctx, jobs, func(r *model.ScanResult) {
		results = append(results, r)
	})
	return results
}

// RunWith executes all jobs and calls onResult once per job. onResult is never called
// concurrently: in parallel mode a single collector goroutine drains the results.
func (x *Dispatcher) RunWith(ctx context.Context, jobs []*ScanJob, onResult func(*model.ScanResult)) {
	logger := logging.From(ctx)
	logger.Info("dispatching scan jobs",
		"jobs", len(jobs),
		"mode", x.mode,
		"max_workers", x.maxWorkers,
	)

	if x.mode == types.ExecutionModeSequential || len(jobs) <= 1 {
		for _, job := range jobs {
			onResult(x.execute(ctx, job))
		}
		return
	}

	ch := make(chan *model.ScanResult)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range ch {
			onResult(r)
		}
	}()

	var eg errgroup.Group
	eg.SetLimit(x.maxWorkers)
	for _, job := range jobs {
		eg.Go(func() error {
			ch <- x.execute(ctx, job)
			return nil
		})
	}
	_ = eg.Wait()
	close(ch)
	<-done
}

func (x *Dispatcher) execute(ctx context.Context, job *ScanJob) *model.ScanResult {
	ctx, span := x.tracer.Start(ctx, "barrage.scan_job", trace.WithAttributes(
		attribute.String("barrage.scanner", job.ScannerName),
		attribute.String("barrage.target_kind", string(job.Target.Kind)),
	))
	defer span.End()

	ctx = logging.With(ctx, logging.From(ctx).With("scanner", job.ScannerName, "kind", job.Target.Kind))
	result := x.invoke(ctx, job)
	result.Status = deriveStatus(result)

	span.SetAttributes(
		attribute.String("barrage.status", string(result.Status)),
		attribute.Int("barrage.findings", result.FindingCount),
	)
	if result.Error != "" {
		span.SetStatus(codes.Error, result.Error)
	}
	x.recorder.ObserveJob(result)

	logging.From(ctx).Info("scan job finished",
		"status", result.Status,
		"findings", result.FindingCount,
		"duration", result.Duration(),
	)
	return result
}

// invoke runs the scanner. Errors and panics become part of the result and never escape.
func (x *Dispatcher) invoke(ctx context.Context, job *ScanJob) (result *model.ScanResult) {
	result = &model.ScanResult{
		ScannerName: job.ScannerName,
		Target:      job.Target.Path,
		Kind:        job.Target.Kind,
		StartTime:   x.now(),
		SkipReason:  job.SkipReason,
	}

	defer func() {
		if r := recover(); r != nil {
			err := goerr.New("scanner panicked", goerr.V("panic", fmt.Sprint(r)), goerr.V("scanner", job.ScannerName))
			errutil.HandleError(ctx, "scanner panicked", err)
			result.Payload = nil
			result.Histogram = types.SeverityHistogram{}
			result.FindingCount = 0
			result.Error = fmt.Sprintf("scanner panicked: %v", r)
		}
		if result.EndTime.IsZero() {
			result.EndTime = x.now()
		}
	}()

	if job.SkipReason == types.SkipReasonNativeOnly {
		result.DependencyMissing = true
		return result
	}
	if _, err := os.Stat(job.Target.Path); err != nil {
		result.TargetMissing = true
		return result
	}
	if !job.Scanner.IsDependencySatisfied() {
		result.DependencyMissing = true
		return result
	}

	scanCtx := ctx
	if x.jobTimeout > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, x.jobTimeout)
		defer cancel()
	}

	req := &model.ScanRequest{
		Target:      job.Target.Path,
		Kind:        job.Target.Kind,
		IgnorePaths: x.ignores,
	}
	if x.outputDir != "" {
		req.OutputDir = filepath.Join(x.outputDir, "scanners", job.ScannerName, string(job.Target.Kind))
	}

	out, err := job.Scanner.Scan(scanCtx, req)
	if out != nil {
		result.Payload = out.Payload
		result.ExitCode = out.ExitCode
		result.Errors = out.Errors
		if !out.StartedAt.IsZero() {
			result.StartTime = out.StartedAt
		}
		if !out.EndedAt.IsZero() {
			result.EndTime = out.EndedAt
		}
	}
	if err != nil {
		errutil.HandleError(ctx, "scanner failed", err)
		result.Error = err.Error()
		result.Payload = nil
		return result
	}

	result.Histogram, result.FindingCount = x.extractor.Extract(x.excluder.Filter(result.Payload))
	return result
}

// deriveStatus is the only place where a job status is decided.
func deriveStatus(r *model.ScanResult) types.ScanStatus {
	switch {
	case r.DependencyMissing:
		return types.ScanStatusMissing
	case r.TargetMissing:
		return types.ScanStatusSkipped
	case r.Error != "":
		return types.ScanStatusFailed
	default:
		return threshold.Status(r.Histogram)
	}
}
