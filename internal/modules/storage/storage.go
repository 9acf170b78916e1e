// Package storage abstracts where uploaded files live: local disk during
// development, S3-compatible object storage or a Cloudinary account in
// production. Callers receive a Backend and never branch on the type.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wishwall/core/internal/config"
	"go.uber.org/zap"
)

// ErrConfig marks a backend selected without its required settings. The
// factory fails fast so a misconfigured deployment dies at startup instead
// of on the first upload.
var ErrConfig = errors.New("storage configuration missing")

// UploadResult carries the public URL and the backend-specific key of a
// stored file. The key is what Delete expects later.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Backend interface {
	Upload(ctx context.Context, data []byte, fileName, mimeType, folder string) (UploadResult, error)
	// Delete is best-effort: it reports success, never errors.
	Delete(ctx context.Context, key string) bool
	URL(key string) string
}

// New selects a backend from the configuration. Selecting local storage in
// a production or hosted environment is allowed but logged loudly, since
// those filesystems do not survive redeploys.
func New(cfg *config.AppConfig, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Storage.Type == config.StorageLocal && (cfg.IsProd() || cfg.Hosted.Platform() != "") {
		logger.Warn("local storage selected in a hosted/production environment, uploads will not persist",
			zap.String("platform", cfg.Hosted.Platform()))
	}

	switch cfg.Storage.Type {
	case config.StorageS3:
		if cfg.Storage.S3.Bucket == "" {
			return nil, fmt.Errorf("%w: AWS_S3_BUCKET_NAME is required for s3 storage", ErrConfig)
		}
		return newS3(cfg.Storage.S3, logger), nil
	case config.StorageCloudinary:
		if cfg.Storage.Cloudinary.CloudName == "" {
			return nil, fmt.Errorf("%w: CLOUDINARY_CLOUD_NAME is required for cloudinary storage", ErrConfig)
		}
		return newCloudinary(cfg.Storage.Cloudinary, logger), nil
	default:
		return newLocal(cfg.BaseURL, cfg.UploadsDir(), logger), nil
	}
}

// objectKey builds "<folder>/<uuid>.<ext>", keeping the original extension
// when present and falling back based on the MIME type.
func objectKey(folder, fileName, mimeType string) string {
	ext := extensionOf(fileName, mimeType)
	return folder + "/" + uuid.NewString() + "." + ext
}

func extensionOf(fileName, mimeType string) string {
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 && i < len(fileName)-1 {
		return strings.ToLower(fileName[i+1:])
	}
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "jpg"
	case strings.HasPrefix(mimeType, "video/"):
		return "mp4"
	}
	return "bin"
}
