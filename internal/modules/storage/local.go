package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// localBackend writes uploads straight into the public uploads directory
// and serves them from {baseURL}/uploads/{name}.
type localBackend struct {
	baseURL    string
	uploadsDir string
	logger     *zap.Logger
}

func newLocal(baseURL, uploadsDir string, logger *zap.Logger) *localBackend {
	return &localBackend{baseURL: baseURL, uploadsDir: uploadsDir, logger: logger}
}

func (b *localBackend) Upload(_ context.Context, data []byte, fileName, mimeType, folder string) (UploadResult, error) {
	key := objectKey(folder, fileName, mimeType)
	name := filepath.Base(key)

	if err := os.MkdirAll(b.uploadsDir, 0o755); err != nil {
		return UploadResult{}, fmt.Errorf("local storage: create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.uploadsDir, name), data, 0o644); err != nil {
		return UploadResult{}, fmt.Errorf("local storage: write %s: %w", name, err)
	}

	return UploadResult{URL: b.baseURL + "/uploads/" + name, Key: key}, nil
}

func (b *localBackend) Delete(_ context.Context, key string) bool {
	name := filepath.Base(strings.TrimSpace(key))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return false
	}
	if err := os.Remove(filepath.Join(b.uploadsDir, name)); err != nil {
		b.logger.Warn("local storage: delete failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (b *localBackend) URL(key string) string {
	return b.baseURL + "/" + strings.TrimPrefix(key, "/")
}
