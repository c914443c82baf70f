package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
)

// S3Store хранит объекты в S3-совместимом бакете (AWS S3, Cloudflare R2, MinIO).
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
	log       *slog.Logger
}

func NewS3Store(_ context.Context, cfg config.ObjectStorage, log *slog.Logger) (*S3Store, error) {
	const op = "objectstore.NewS3Store"
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s: bucket is required", op)
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg := aws.Config{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		RetryMaxAttempts:           1,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" && cfg.Endpoint != "" {
		publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	log.Info("initialized s3 object storage",
		slog.String("bucket", cfg.Bucket),
		slog.String("endpoint", cfg.Endpoint),
	)
	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		log:       log,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", &Error{Op: "Put", Key: key, Err: err}
	}

	result, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &Error{Op: "Put", Key: key, Err: wrapS3Error(err)}
	}

	s.log.Debug("stored object in s3",
		slog.String("key", key),
		slog.String("etag", aws.ToString(result.ETag)),
	)
	return s.url(key), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return &Error{Op: "Delete", Key: key, Err: err}
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &Error{Op: "Delete", Key: key, Err: wrapS3Error(err)}
	}
	return nil
}

func (s *S3Store) url(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

func wrapS3Error(err error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return ErrNotFound
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return ErrNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return ErrNotFound
		case "AccessDenied", "Forbidden":
			return ErrAccessDenied
		case "EntityTooLarge":
			return ErrTooLarge
		}
	}
	return fmt.Errorf("s3 operation failed: %w", err)
}
