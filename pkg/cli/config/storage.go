package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/infra/storage"
	"github.com/urfave/cli/v3"
)

// Storage configures where scan artifacts are uploaded.
type Storage struct {
	uploadURL   string
	s3Region    string
	s3Endpoint  string
	s3AccessKey string
	s3SecretKey types.SecretString
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "upload-url",
			Usage:       "Upload scan artifacts to gs://bucket/prefix or s3://bucket/prefix",
			Category:    "Storage",
			Sources:     cli.EnvVars("BARRAGE_UPLOAD_URL"),
			Destination: &x.uploadURL,
		},
		&cli.StringFlag{
			Name:        "s3-region",
			Usage:       "AWS region of the S3 bucket",
			Category:    "Storage",
			Sources:     cli.EnvVars("BARRAGE_S3_REGION"),
			Destination: &x.s3Region,
		},
		&cli.StringFlag{
			Name:        "s3-endpoint",
			Usage:       "Endpoint of an S3 compatible service",
			Category:    "Storage",
			Sources:     cli.EnvVars("BARRAGE_S3_ENDPOINT"),
			Destination: &x.s3Endpoint,
		},
		&cli.StringFlag{
			Name:        "s3-access-key",
			Usage:       "AWS access key ID",
			Category:    "Storage",
			Sources:     cli.EnvVars("BARRAGE_S3_ACCESS_KEY"),
			Destination: &x.s3AccessKey,
		},
		&cli.StringFlag{
			Name:        "s3-secret-key",
			Usage:       "AWS secret access key",
			Category:    "Storage",
			Sources:     cli.EnvVars("BARRAGE_S3_SECRET_KEY"),
			Destination: (*string)(&x.s3SecretKey),
		},
	}
}

func (x *Storage) Enabled() bool {
	return x.uploadURL != ""
}

func (x *Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("uploadURL", x.uploadURL),
		slog.Any("s3Region", x.s3Region),
		slog.Any("s3Endpoint", x.s3Endpoint),
		slog.Any("s3AccessKey", x.s3AccessKey),
		slog.Any("s3SecretKey", x.s3SecretKey),
	)
}

// NewObjectStore returns nil without an upload URL.
func (x *Storage) NewObjectStore(ctx context.Context) (interfaces.ObjectStore, error) {
	if !x.Enabled() {
		return nil, nil
	}

	loc, err := storage.ParseURL(x.uploadURL)
	if err != nil {
		return nil, err
	}

	if loc.Scheme == storage.SchemeS3 {
		store, err := storage.NewS3(ctx, *loc, storage.S3Config{
			Region:    x.s3Region,
			Endpoint:  x.s3Endpoint,
			AccessKey: x.s3AccessKey,
			SecretKey: x.s3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := storage.NewGCS(ctx, *loc)
	if err != nil {
		return nil, err
	}
	return store, nil
}
