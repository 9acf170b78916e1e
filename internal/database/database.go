package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wishwall/core/internal/models"
	"go.uber.org/zap"
)

// Store persists the whole dataset as one pretty-printed JSON file. Every
// mutation goes through Update, which serializes read-mutate-write cycles
// behind a single mutex so concurrent requests cannot interleave partial
// writes.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// Read loads the document. A missing or unparsable file yields an empty
// document so a fresh deployment works without seeding.
func (s *Store) Read() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() (*models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("data file unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return models.EmptyDocument(), nil
	}

	doc := models.EmptyDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.logger.Warn("data file corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return models.EmptyDocument(), nil
	}
	if doc.Years == nil {
		doc.Years = []models.Year{}
	}
	if doc.Admins == nil {
		doc.Admins = []models.AdminUser{}
	}
	if doc.SocialPosts == nil {
		doc.SocialPosts = []models.SocialPost{}
	}
	return doc, nil
}

// Write replaces the document on disk.
func (s *Store) Write(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(doc)
}

func (s *Store) writeLocked(doc *models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("database: marshal document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("database: create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("database: write %s: %w", s.path, err)
	}
	return nil
}

// Update runs fn on the current document and persists the result. The write
// is skipped when fn returns an error, and the error is passed through so
// services can surface domain failures unchanged.
func (s *Store) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readLocked()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.writeLocked(doc)
}
