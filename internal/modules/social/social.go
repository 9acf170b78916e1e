// Package social manages highlighted social-network posts shown on the
// landing page.
package social

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
)

var ErrNotFound = errors.New("post not found")

type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// ListActive returns active posts, newest first. Timestamps are RFC 3339
// strings, so a lexicographic sort orders them chronologically.
func (s *Service) ListActive() ([]models.SocialPost, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	out := make([]models.SocialPost, 0, len(doc.SocialPosts))
	for _, p := range doc.SocialPosts {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

// Add stores a new active post.
func (s *Service) Add(platform, title, description, url, imageURL string) (models.SocialPost, error) {
	post := models.SocialPost{
		ID:          uuid.NewString(),
		Platform:    platform,
		Title:       title,
		Description: description,
		URL:         url,
		ImageURL:    imageURL,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		IsActive:    true,
	}
	err := s.store.Update(func(doc *models.Document) error {
		doc.SocialPosts = append(doc.SocialPosts, post)
		return nil
	})
	if err != nil {
		return models.SocialPost{}, err
	}
	return post, nil
}

// Delete removes a post by id.
func (s *Service) Delete(id string) error {
	return s.store.Update(func(doc *models.Document) error {
		kept := doc.SocialPosts[:0]
		for _, p := range doc.SocialPosts {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(doc.SocialPosts) {
			return ErrNotFound
		}
		doc.SocialPosts = kept
		return nil
	})
}
