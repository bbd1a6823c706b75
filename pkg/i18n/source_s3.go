package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// maxResourceSize caps how much of a remote locale resource is read.
const maxResourceSize = 4 << 20

// S3Config configures an S3Source.
type S3Config struct {
	Bucket    string `mapstructure:"bucket" env:"ARCHIVIST_LOCALES_S3_BUCKET"`
	Prefix    string `mapstructure:"prefix" env:"ARCHIVIST_LOCALES_S3_PREFIX" envDefault:"locales"`
	Region    string `mapstructure:"region" env:"ARCHIVIST_LOCALES_S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `mapstructure:"endpoint" env:"ARCHIVIST_LOCALES_S3_ENDPOINT"`
	AccessKey string `mapstructure:"access_key" env:"ARCHIVIST_LOCALES_S3_ACCESS_KEY"`
	SecretKey string `mapstructure:"secret_key" env:"ARCHIVIST_LOCALES_S3_SECRET_KEY"`
	PathStyle bool   `mapstructure:"path_style" env:"ARCHIVIST_LOCALES_S3_PATH_STYLE"`
}

// S3GetObjectAPI is the subset of the S3 client used by S3Source.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads "<prefix>/<tag>.<ext>" objects from an S3-compatible bucket.
type S3Source struct {
	client S3GetObjectAPI
	bucket string
	prefix string
	exts   []string
}

// NewS3Source creates an S3Source with static credentials.
func NewS3Source(cfg S3Config) (*S3Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidResource)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		if cfg.AccessKey != "" {
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return NewS3SourceWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3SourceWithClient creates an S3Source over an existing client.
func NewS3SourceWithClient(client S3GetObjectAPI, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
		exts:   DefaultExtensions,
	}
}

// Load fetches the first object found for tag.
func (s *S3Source) Load(ctx context.Context, tag string) (map[string]any, error) {
	if !validResourceName(tag) {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, tag)
	}

	for _, ext := range s.exts {
		key := path.Join(s.prefix, tag+ext)

		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isNoSuchKey(err) {
				continue
			}
			return nil, fmt.Errorf("fetching s3://%s/%s: %w", s.bucket, key, err)
		}

		data, err := readAll(out.Body)
		if err != nil {
			return nil, fmt.Errorf("reading s3://%s/%s: %w", s.bucket, key, err)
		}
		return decodeResource(key, data)
	}

	return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, tag)
}

func readAll(body io.ReadCloser) ([]byte, error) {
	defer body.Close()
	return io.ReadAll(io.LimitReader(body, maxResourceSize))
}

func isNoSuchKey(err error) bool {
	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
