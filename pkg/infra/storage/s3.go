package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// S3Config holds optional settings of the S3 client. Empty fields fall back to the AWS default chain.
type S3Config struct {
	Region string
	// Endpoint is set for S3 compatible services such as MinIO.
	Endpoint  string
	AccessKey string
	SecretKey types.SecretString
}

// S3API is the subset of the S3 client used for uploads.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores objects in an Amazon S3 bucket.
type S3 struct {
	client S3API
	loc    Location
}

var _ interfaces.ObjectStore = (*S3)(nil)

func NewS3(ctx context.Context, loc Location, cfg S3Config) (*S3, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey.Reveal(), ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load AWS config")
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return NewS3WithClient(s3.NewFromConfig(awsCfg, s3Opts...), loc), nil
}

func NewS3WithClient(client S3API, loc Location) *S3 {
	return &S3{client: client, loc: loc}
}

// Put buffers body so that the request has a known content length.
func (x *S3) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return goerr.Wrap(err, "failed to read object body", goerr.V("key", key))
	}

	if _, err := x.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(x.loc.Bucket),
		Key:           aws.String(x.loc.Key(key)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	}); err != nil {
		return goerr.Wrap(err, "failed to put object", goerr.V("bucket", x.loc.Bucket), goerr.V("key", key))
	}
	return nil
}

func (x *S3) URL(key string) string {
	return "s3://" + x.loc.Bucket + "/" + x.loc.Key(key)
}
