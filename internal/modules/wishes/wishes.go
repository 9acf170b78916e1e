// Package wishes handles visitor-submitted wishes on an event: moderated
// text, an optional image, newest shown first.
package wishes

import (
	"errors"

	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
)

var (
	ErrYearNotFound  = errors.New("year not found")
	ErrEventNotFound = errors.New("event not found")
	ErrWishNotFound  = errors.New("wish not found")
)

type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// Add appends a wish to an event. Whatever the caller set, a persisted wish
// is always marked appropriate: moderation happens before this point and
// flagged wishes never reach the store.
func (s *Service) Add(year int, eventSlug string, wish models.Wish) (models.Wish, error) {
	wish.IsAppropriate = true
	err := s.store.Update(func(doc *models.Document) error {
		y := doc.FindYear(year)
		if y == nil {
			return ErrYearNotFound
		}
		event := y.FindEvent(eventSlug)
		if event == nil {
			return ErrEventNotFound
		}
		event.Wishes = append(event.Wishes, wish)
		return nil
	})
	if err != nil {
		return models.Wish{}, err
	}
	return wish, nil
}

// Delete removes a wish by id.
func (s *Service) Delete(year int, eventSlug, wishID string) error {
	return s.store.Update(func(doc *models.Document) error {
		y := doc.FindYear(year)
		if y == nil {
			return ErrYearNotFound
		}
		event := y.FindEvent(eventSlug)
		if event == nil {
			return ErrEventNotFound
		}
		kept := event.Wishes[:0]
		for _, w := range event.Wishes {
			if w.ID != wishID {
				kept = append(kept, w)
			}
		}
		if len(kept) == len(event.Wishes) {
			return ErrWishNotFound
		}
		event.Wishes = kept
		return nil
	})
}
