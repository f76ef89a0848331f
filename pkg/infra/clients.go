package infra

import (
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/infra/command"
	"github.com/secmon-lab/barrage/pkg/infra/metrics"
)

// Clients holds the external services a scan talks to. Every client except the command
// runner is optional and a nil value disables the feature using it.
type Clients struct {
	commandRunner  interfaces.CommandRunner
	bqClient       interfaces.BigQuery
	scanRepository interfaces.ScanRepository
	objectStore    interfaces.ObjectStore
	metrics        *metrics.Recorder
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		commandRunner: command.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) CommandRunner() interfaces.CommandRunner {
	return x.commandRunner
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) ScanRepository() interfaces.ScanRepository {
	return x.scanRepository
}
func (x *Clients) ObjectStore() interfaces.ObjectStore {
	return x.objectStore
}
func (x *Clients) Metrics() *metrics.Recorder {
	return x.metrics
}

func WithCommandRunner(runner interfaces.CommandRunner) Option {
	return func(x *Clients) {
		x.commandRunner = runner
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithScanRepository(repo interfaces.ScanRepository) Option {
	return func(x *Clients) {
		x.scanRepository = repo
	}
}

func WithObjectStore(store interfaces.ObjectStore) Option {
	return func(x *Clients) {
		x.objectStore = store
	}
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(x *Clients) {
		x.metrics = recorder
	}
}
