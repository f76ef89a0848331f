package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
)

// InsertScanSummary writes one summary row of report to BigQuery. The table is created or
// its schema extended when the row does not fit.
func (x *UseCase) InsertScanSummary(ctx context.Context, report *model.AggregateReport) error {
	if x.clients.BigQuery() == nil {
		return nil
	}

	row := model.NewScanSummaryRow(report)
	schema, schemaUpdated, err := createOrUpdateBigQueryTable(ctx, x.clients.BigQuery(), row)
	if err != nil {
		return err
	}

	rawRecord := &model.ScanSummaryRawRow{
		ScanSummaryRow: *row,
		Timestamp:      row.Timestamp.UnixMicro(),
	}

	// A schema change takes a while to reach the write stream
	if err := x.clients.BigQuery().Insert(ctx, schema, rawRecord, interfaces.WithRetry(schemaUpdated)); err != nil {
		return goerr.Wrap(err, "failed to insert scan summary to BigQuery",
			goerr.V("scanID", row.ScanID),
		)
	}

	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, row *model.ScanSummaryRow) (schema bigquery.Schema, schemaUpdated bool, err error) {
	schema, err = bqs.Infer(row)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to infer scan summary schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, false, goerr.Wrap(err, "failed to create BigQuery table")
		}

		return schema, false, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, false, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, false, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, true, nil
}
