package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/repository/firestore"
	"github.com/urfave/cli/v3"
)

// Firestore configures the scan history store used for baseline comparison.
type Firestore struct {
	projectID  string
	databaseID string
}

func (x *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID to keep scan history (optional)",
			Category:    "Firestore",
			Sources:     cli.EnvVars("BARRAGE_FIRESTORE_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Firestore",
			Sources:     cli.EnvVars("BARRAGE_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
			Destination: &x.databaseID,
		},
	}
}

func (x *Firestore) Enabled() bool {
	return x.projectID != ""
}

func (x *Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("databaseID", x.databaseID),
	)
}

// NewRepository returns nil without a project ID.
func (x *Firestore) NewRepository(ctx context.Context) (interfaces.ScanRepository, error) {
	if !x.Enabled() {
		return nil, nil
	}
	return firestore.New(ctx, x.projectID, x.databaseID)
}
