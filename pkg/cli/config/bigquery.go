package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/infra/bq"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

// BigQuery configures the warehouse receiving scan summaries.
type BigQuery struct {
	projectID             string
	datasetID             string
	tableID               string
	impersonateServiceAcc string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("BARRAGE_BIGQUERY_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("BARRAGE_BIGQUERY_DATASET_ID"),
			Destination: &x.datasetID,
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID of scan summaries",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("BARRAGE_BIGQUERY_TABLE_ID"),
			Value:       types.DefaultBQTableID.String(),
			Destination: &x.tableID,
		},
		&cli.StringFlag{
			Name:        "bigquery-impersonate-service-account",
			Usage:       "Service account to impersonate when writing to BigQuery",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("BARRAGE_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT"),
			Destination: &x.impersonateServiceAcc,
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != "" && x.datasetID != ""
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
		slog.Any("impersonateServiceAccount", x.impersonateServiceAcc),
	)
}

// NewClient returns nil unless both the project and the dataset are set.
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if !x.Enabled() {
		return nil, nil
	}

	var opts []option.ClientOption
	if x.impersonateServiceAcc != "" {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: x.impersonateServiceAcc,
			Scopes: []string{
				"https://www.googleapis.com/auth/bigquery",
				"https://www.googleapis.com/auth/cloud-platform",
			},
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create token source for impersonation",
				goerr.V("service_account", x.impersonateServiceAcc))
		}
		opts = append(opts, option.WithTokenSource(ts))
	}

	tableID := types.BQTableID(x.tableID)
	if tableID == "" {
		tableID = types.DefaultBQTableID
	}

	client, err := bq.New(ctx, types.GoogleProjectID(x.projectID), types.BQDatasetID(x.datasetID), tableID, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
