package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery ObjectStore CommandRunner

import (
	"context"
	"io"

	"cloud.google.com/go/bigquery"
)

type BigQueryInsertOption func(*BigQueryInsertConfig)

type BigQueryInsertConfig struct {
	EnableRetry bool
}

func WithRetry(retry bool) BigQueryInsertOption {
	return func(c *BigQueryInsertConfig) {
		c.EnableRetry = retry
	}
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any, opts ...BigQueryInsertOption) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// ObjectStore uploads scan artifacts to a bucket.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	// URL returns the location of key for logging.
	URL(key string) string
}

// CommandRunner executes an external scanner binary.
type CommandRunner interface {
	Run(ctx context.Context, input *CommandInput) (*CommandOutput, error)
	LookPath(name string) (string, error)
}

type CommandInput struct {
	Name string
	Args []string
	Dir  string
}

type CommandOutput struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}
