// Package migration moves legacy local uploads into the configured storage
// backend and handles data file backup and restore.
package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
	"github.com/wishwall/core/internal/modules/storage"
	"go.uber.org/zap"
)

// Result summarizes one migration run. Per-file failures do not stop the
// batch; they are counted and reported.
type Result struct {
	Success  bool     `json:"success"`
	Migrated int      `json:"migrated"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

type Service struct {
	store      *database.Store
	backend    storage.Backend
	uploadsDir string
	backupsDir string
	logger     *zap.Logger
}

func NewService(store *database.Store, backend storage.Backend, uploadsDir, backupsDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		backend:    backend,
		uploadsDir: uploadsDir,
		backupsDir: backupsDir,
		logger:     logger,
	}
}

// Backup writes a timestamped snapshot of the data file and returns its
// path. Colons and dots in the timestamp become hyphens so the name is safe
// on every filesystem.
func (s *Service) Backup() (string, error) {
	doc, err := s.store.Read()
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	backupPath := filepath.Join(s.backupsDir, "db-backup-"+stamp+".json")

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	if err := os.MkdirAll(s.backupsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	if err := os.WriteFile(backupPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}

// Restore overwrites the live document with a backup file, verbatim.
func (s *Service) Restore(backupPath string) error {
	raw, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	doc := models.EmptyDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	if err := s.store.Write(doc); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}

// Migrate uploads every file in the uploads directory to the backend under
// the "migrated" folder, rewriting matching media and wish image URLs. The
// updated document is persisted once at the end.
func (s *Service) Migrate(ctx context.Context) Result {
	result := Result{Errors: []string{}}

	doc, err := s.store.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Migration failed: %v", err))
		return result
	}

	entries, err := os.ReadDir(s.uploadsDir)
	if err != nil {
		result.Errors = append(result.Errors, "Uploads directory does not exist")
		return result
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()

		data, err := os.ReadFile(filepath.Join(s.uploadsDir, fileName))
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to migrate %s: %v", fileName, err))
			continue
		}

		uploaded, err := s.backend.Upload(ctx, data, fileName, mimeTypeFor(fileName), "migrated")
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to migrate %s: %v", fileName, err))
			continue
		}

		rewriteURLs(doc, "/uploads/"+fileName, uploaded.URL)
		result.Migrated++
		s.logger.Info("migrated upload", zap.String("file", fileName), zap.String("url", uploaded.URL))
	}

	if err := s.store.Write(doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Migration failed: %v", err))
		return result
	}

	result.Success = true
	return result
}

// rewriteURLs swaps every media URL and wish image URL equal to oldURL.
func rewriteURLs(doc *models.Document, oldURL, newURL string) {
	for yi := range doc.Years {
		for ei := range doc.Years[yi].Events {
			event := &doc.Years[yi].Events[ei]
			for mi := range event.Media {
				if event.Media[mi].URL == oldURL {
					event.Media[mi].URL = newURL
				}
			}
			for wi := range event.Wishes {
				if event.Wishes[wi].ImageURL == oldURL {
					event.Wishes[wi].ImageURL = newURL
				}
			}
		}
	}
}

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
}

func mimeTypeFor(fileName string) string {
	if mime, ok := mimeTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return mime
	}
	return "application/octet-stream"
}
