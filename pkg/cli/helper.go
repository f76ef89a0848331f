package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/cli/config"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/infra"
	"github.com/secmon-lab/barrage/pkg/plugin"
	"github.com/secmon-lab/barrage/pkg/reporter"
	"github.com/secmon-lab/barrage/pkg/scanner/command"
)

// newRegistry registers the built-in reporters, the command scanner presets and the
// command scanners declared in cfg.
func newRegistry(runner interfaces.CommandRunner, cfg *model.ScanConfig) (*plugin.Registry, error) {
	reg := plugin.New()
	if err := command.Register(reg, runner, cfg); err != nil {
		return nil, err
	}
	if err := reporter.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// newClients creates the optional external clients. Groups without settings stay disabled.
func newClients(ctx context.Context, bigQuery *config.BigQuery, firestore *config.Firestore, storage *config.Storage) (*infra.Clients, error) {
	var opts []infra.Option

	bqClient, err := bigQuery.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client")
	}
	if bqClient != nil {
		opts = append(opts, infra.WithBigQuery(bqClient))
	}

	repo, err := firestore.NewRepository(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore repository")
	}
	if repo != nil {
		opts = append(opts, infra.WithScanRepository(repo))
	}

	store, err := storage.NewObjectStore(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create object store")
	}
	if store != nil {
		opts = append(opts, infra.WithObjectStore(store))
	}

	return infra.New(opts...), nil
}
