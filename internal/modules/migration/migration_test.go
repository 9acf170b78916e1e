package migration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
	"github.com/wishwall/core/internal/modules/storage"
	"go.uber.org/zap"
)

// recordingBackend stands in for cloud storage and yields predictable URLs.
type recordingBackend struct{}

func newRecordingBackend() *recordingBackend { return &recordingBackend{} }

func (b *recordingBackend) Upload(_ context.Context, _ []byte, fileName, _, folder string) (storage.UploadResult, error) {
	key := folder + "/" + fileName
	return storage.UploadResult{URL: "https://cloud.example.com/" + key, Key: key}, nil
}

func (b *recordingBackend) Delete(_ context.Context, _ string) bool { return true }

func (b *recordingBackend) URL(key string) string { return "https://cloud.example.com/" + key }

func newTestService(t *testing.T) (*Service, *database.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := database.New(filepath.Join(dir, "db.json"), zap.NewNop())
	uploadsDir := filepath.Join(dir, "uploads")
	backupsDir := filepath.Join(dir, "backups")
	require.NoError(t, os.MkdirAll(uploadsDir, 0o755))

	backend := newRecordingBackend()
	svc := NewService(store, backend, uploadsDir, backupsDir, zap.NewNop())
	return svc, store, uploadsDir
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	svc, store, _ := newTestService(t)

	require.NoError(t, store.Update(func(doc *models.Document) error {
		doc.Years = append(doc.Years, models.Year{Year: 2024, Events: []models.Event{}})
		doc.Admins = append(doc.Admins, models.AdminUser{Username: "root", Password: "pw"})
		return nil
	}))
	original, err := store.Read()
	require.NoError(t, err)

	backupPath, err := svc.Backup()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(backupPath), "db-backup-"))
	assert.NotContains(t, filepath.Base(backupPath), ":")

	// Wreck the live document, then restore.
	require.NoError(t, store.Write(models.EmptyDocument()))
	require.NoError(t, svc.Restore(backupPath))

	restored, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestRestoreMissingFileFails(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.Error(t, svc.Restore("/nope/backup.json"))
}

func TestMigrateRewritesURLs(t *testing.T) {
	svc, store, uploadsDir := newTestService(t)

	require.NoError(t, os.WriteFile(filepath.Join(uploadsDir, "a.jpg"), []byte("img"), 0o644))
	require.NoError(t, store.Update(func(doc *models.Document) error {
		doc.Years = append(doc.Years, models.Year{
			Year: 2024,
			Events: []models.Event{{
				Slug:  "party",
				Media: []models.MediaItem{{ID: "m1", Type: models.MediaTypeImage, URL: "/uploads/a.jpg"}},
				Wishes: []models.Wish{
					{ID: "w1", ImageURL: "/uploads/a.jpg"},
					{ID: "w2", ImageURL: "/uploads/other.jpg"},
				},
			}},
		})
		return nil
	}))

	result := svc.Migrate(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Migrated)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)

	doc, err := store.Read()
	require.NoError(t, err)
	event := doc.FindYear(2024).FindEvent("party")
	assert.Equal(t, "https://cloud.example.com/migrated/a.jpg", event.Media[0].URL)
	assert.Equal(t, "https://cloud.example.com/migrated/a.jpg", event.Wishes[0].ImageURL)
	assert.Equal(t, "/uploads/other.jpg", event.Wishes[1].ImageURL)
}

func TestMigrateMissingUploadsDir(t *testing.T) {
	svc, _, uploadsDir := newTestService(t)
	require.NoError(t, os.RemoveAll(uploadsDir))

	result := svc.Migrate(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "Uploads directory does not exist")
}

func TestMimeTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", mimeTypeFor("a.JPG"))
	assert.Equal(t, "video/quicktime", mimeTypeFor("clip.mov"))
	assert.Equal(t, "application/octet-stream", mimeTypeFor("unknown.xyz"))
}
