package usecase

import (
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/engine/extract"
	"github.com/secmon-lab/barrage/pkg/engine/suppress"
	"github.com/secmon-lab/barrage/pkg/infra"
	"github.com/secmon-lab/barrage/pkg/plugin"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ReportFilePrefix is the base name of files written by reporters, followed by the reporter's extension.
const ReportFilePrefix = "barrage_report"

type UseCase struct {
	registry   *plugin.Registry
	clients    *infra.Clients
	extractor  *extract.Extractor
	suppressor *suppress.Engine
	tracer     trace.Tracer
	now        func() time.Time
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

func WithExtractor(extractor *extract.Extractor) Option {
	return func(x *UseCase) {
		x.extractor = extractor
	}
}

func WithSuppressor(engine *suppress.Engine) Option {
	return func(x *UseCase) {
		x.suppressor = engine
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(x *UseCase) {
		x.tracer = tracer
	}
}

// WithClock replaces the clock used for report and job timestamps.
func WithClock(now func() time.Time) Option {
	return func(x *UseCase) {
		x.now = now
	}
}

func New(registry *plugin.Registry, clients *infra.Clients, opts ...Option) *UseCase {
	x := &UseCase{
		registry:   registry,
		clients:    clients,
		extractor:  extract.New(),
		suppressor: suppress.New(),
		tracer:     noop.NewTracerProvider().Tracer(""),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}
