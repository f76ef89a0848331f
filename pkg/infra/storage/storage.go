// Package storage uploads scan artifacts to object storage.
package storage

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
	"github.com/secmon-lab/barrage/pkg/utils/safe"
)

const (
	SchemeGCS = "gs"
	SchemeS3  = "s3"
)

// Location is a parsed upload URL such as gs://bucket/prefix or s3://bucket/prefix.
type Location struct {
	Scheme string
	Bucket string
	Prefix string
}

func ParseURL(raw string) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid upload URL", goerr.V("url", raw))
	}
	if u.Scheme != SchemeGCS && u.Scheme != SchemeS3 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "upload URL must start with gs:// or s3://", goerr.V("url", raw))
	}
	if u.Host == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "upload URL has no bucket", goerr.V("url", raw))
	}
	return &Location{
		Scheme: u.Scheme,
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}, nil
}

// Key joins the prefix and name into an object key.
func (x *Location) Key(name string) string {
	if x.Prefix == "" {
		return name
	}
	return path.Join(x.Prefix, name)
}

func (x *Location) String() string {
	return x.Scheme + "://" + x.Bucket + "/" + x.Prefix
}

// UploadFiles uploads files under the key prefix dir. Keys use the base name of each file.
func UploadFiles(ctx context.Context, store interfaces.ObjectStore, dir string, files []string) ([]string, error) {
	var keys []string
	for _, file := range files {
		key := path.Join(dir, filepath.Base(file))
		if err := uploadFile(ctx, store, key, file); err != nil {
			return keys, err
		}
		logging.From(ctx).Info("uploaded artifact", "file", file, "url", store.URL(key))
		keys = append(keys, key)
	}
	return keys, nil
}

func uploadFile(ctx context.Context, store interfaces.ObjectStore, key, file string) error {
	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return goerr.Wrap(err, "failed to open artifact", goerr.V("file", file))
	}
	defer safe.Close(f)

	if err := store.Put(ctx, key, f, contentType(file)); err != nil {
		return goerr.Wrap(err, "failed to upload artifact", goerr.V("file", file), goerr.V("key", key))
	}
	return nil
}

func contentType(file string) string {
	switch {
	case strings.HasSuffix(file, ".gz"):
		return "application/gzip"
	case strings.HasSuffix(file, ".zst"):
		return "application/zstd"
	case strings.HasSuffix(file, ".json"), strings.HasSuffix(file, ".sarif"):
		return "application/json"
	case strings.HasSuffix(file, ".txt"), strings.HasSuffix(file, ".prom"):
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
