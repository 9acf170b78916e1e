// Package events manages the events inside a year, their media galleries
// and the slug namespace that identifies them in URLs.
package events

import (
	"errors"
	"strings"

	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
	"github.com/wishwall/core/internal/pkg/slug"
)

var (
	ErrYearNotFound  = errors.New("year not found")
	ErrEventNotFound = errors.New("event not found")
	ErrSlugTaken     = errors.New("event slug already taken")
	ErrRenameTaken   = errors.New("renamed slug collides with another event")
)

type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// List returns the events of a year without media and wishes. A missing
// year yields an empty list, matching the public browse behavior.
func (s *Service) List(year int) ([]models.EventSummary, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	y := doc.FindYear(year)
	if y == nil {
		return []models.EventSummary{}, nil
	}
	out := make([]models.EventSummary, 0, len(y.Events))
	for i := range y.Events {
		out = append(out, y.Events[i].Summary())
	}
	return out, nil
}

// Get returns one event ready for display: media URLs resolved (placeholder
// substitution included) and wishes newest-first.
func (s *Service) Get(year int, eventSlug string) (*models.Event, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	y := doc.FindYear(year)
	if y == nil {
		return nil, ErrYearNotFound
	}
	event := y.FindEvent(eventSlug)
	if event == nil {
		return nil, ErrEventNotFound
	}

	view := *event
	view.Media = PopulateMedia(event.Media)
	view.Wishes = reverseWishes(event.Wishes)
	return &view, nil
}

// Add creates an event; the slug is derived from the name and must be
// unique inside the year.
func (s *Service) Add(year int, name, date, eventType string) (string, error) {
	newSlug := slug.From(name)
	err := s.store.Update(func(doc *models.Document) error {
		y := doc.FindYear(year)
		if y == nil {
			return ErrYearNotFound
		}
		if y.FindEvent(newSlug) != nil {
			return ErrSlugTaken
		}
		y.Events = append(y.Events, models.Event{
			Slug:   newSlug,
			Name:   name,
			Date:   date,
			Type:   eventType,
			Media:  []models.MediaItem{},
			Wishes: []models.Wish{},
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return newSlug, nil
}

// Update renames or retypes an event. The slug is regenerated from the new
// name; colliding with a different event is rejected.
func (s *Service) Update(year int, originalSlug, name, date, eventType string) (string, error) {
	newSlug := slug.From(name)
	err := s.store.Update(func(doc *models.Document) error {
		y := doc.FindYear(year)
		if y == nil {
			return ErrYearNotFound
		}
		event := y.FindEvent(originalSlug)
		if event == nil {
			return ErrEventNotFound
		}
		if other := y.FindEvent(newSlug); other != nil && other.Slug != originalSlug {
			return ErrRenameTaken
		}
		event.Slug = newSlug
		event.Name = name
		event.Date = date
		event.Type = eventType
		return nil
	})
	if err != nil {
		return "", err
	}
	return newSlug, nil
}

// Delete removes an event with its media references and wishes.
func (s *Service) Delete(year int, eventSlug string) error {
	return s.store.Update(func(doc *models.Document) error {
		y := doc.FindYear(year)
		if y == nil {
			return ErrYearNotFound
		}
		kept := y.Events[:0]
		for _, e := range y.Events {
			if e.Slug != eventSlug {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(y.Events) {
			return ErrEventNotFound
		}
		y.Events = kept
		return nil
	})
}

// ReplaceMedia sets the event's media to the kept existing items (by id)
// followed by the new items.
func (s *Service) ReplaceMedia(year int, eventSlug string, newItems []models.MediaItem, existingIDs []string) error {
	keep := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		keep[id] = true
	}

	return s.store.Update(func(doc *models.Document) error {
		y := doc.FindYear(year)
		if y == nil {
			return ErrYearNotFound
		}
		event := y.FindEvent(eventSlug)
		if event == nil {
			return ErrEventNotFound
		}

		updated := make([]models.MediaItem, 0, len(existingIDs)+len(newItems))
		for _, m := range event.Media {
			if keep[m.ID] {
				updated = append(updated, m)
			}
		}
		event.Media = append(updated, newItems...)
		return nil
	})
}

// PopulateMedia resolves media URLs for display. Remote URLs, data URIs and
// local uploads pass through; anything else falls back to the placeholder
// table by id and is dropped when no placeholder matches.
func PopulateMedia(media []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(media))
	for _, item := range media {
		switch {
		case strings.HasPrefix(item.URL, "http://"), strings.HasPrefix(item.URL, "https://"):
			out = append(out, item)
		case strings.HasPrefix(item.URL, "data:"), strings.HasPrefix(item.URL, "/uploads/"):
			out = append(out, item)
		default:
			placeholder, ok := models.FindPlaceholder(item.ID)
			if !ok {
				continue
			}
			item.URL = placeholder.ImageURL
			item.Hint = placeholder.Hint
			out = append(out, item)
		}
	}
	return out
}

func reverseWishes(wishes []models.Wish) []models.Wish {
	out := make([]models.Wish, len(wishes))
	for i, w := range wishes {
		out[len(wishes)-1-i] = w
	}
	return out
}
