package storage

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"google.golang.org/api/option"
)

// GCS stores objects in a Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	loc    Location
}

var _ interfaces.ObjectStore = (*GCS)(nil)

func NewGCS(ctx context.Context, loc Location, options ...option.ClientOption) (*GCS, error) {
	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("bucket", loc.Bucket))
	}
	return &GCS{client: client, loc: loc}, nil
}

func (x *GCS) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	obj := x.client.Bucket(x.loc.Bucket).Object(x.loc.Key(key))
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("bucket", x.loc.Bucket), goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to close object writer", goerr.V("bucket", x.loc.Bucket), goerr.V("key", key))
	}
	return nil
}

func (x *GCS) URL(key string) string {
	return "gs://" + x.loc.Bucket + "/" + x.loc.Key(key)
}

func (x *GCS) Close() error {
	return x.client.Close()
}
