package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/wishwall/core/internal/config"
	"go.uber.org/zap"
)

// s3Backend stores uploads in an S3 (or S3-compatible) bucket with a
// public-read ACL, so stored objects are directly linkable.
type s3Backend struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

func newS3(cfg config.S3Config, logger *zap.Logger) *s3Backend {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}

	return &s3Backend{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (b *s3Backend) Upload(ctx context.Context, data []byte, fileName, mimeType, folder string) (UploadResult, error) {
	key := objectKey(folder, fileName, mimeType)

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("s3 storage: put %s: %w", key, err)
	}

	return UploadResult{URL: b.URL(key), Key: key}, nil
}

func (b *s3Backend) Delete(ctx context.Context, key string) bool {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		b.logger.Warn("s3 storage: delete failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (b *s3Backend) URL(key string) string {
	return b.baseURL + "/" + strings.TrimPrefix(key, "/")
}
