// Package years manages the top level of the celebration archive: one
// entry per year, each holding its events.
package years

import (
	"errors"
	"sort"

	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
)

var (
	ErrExists   = errors.New("year already exists")
	ErrNotFound = errors.New("year not found")
)

type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// List returns all years, newest first.
func (s *Service) List() ([]int, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(doc.Years))
	for _, y := range doc.Years {
		out = append(out, y.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}

// Add creates an empty year entry. Stored ascending so the file stays
// stable regardless of insertion order.
func (s *Service) Add(year int) error {
	return s.store.Update(func(doc *models.Document) error {
		if doc.FindYear(year) != nil {
			return ErrExists
		}
		doc.Years = append(doc.Years, models.Year{Year: year, Events: []models.Event{}})
		sort.Slice(doc.Years, func(i, j int) bool {
			return doc.Years[i].Year < doc.Years[j].Year
		})
		return nil
	})
}

// Delete removes a year and everything under it.
func (s *Service) Delete(year int) error {
	return s.store.Update(func(doc *models.Document) error {
		kept := doc.Years[:0]
		for _, y := range doc.Years {
			if y.Year != year {
				kept = append(kept, y)
			}
		}
		if len(kept) == len(doc.Years) {
			return ErrNotFound
		}
		doc.Years = kept
		return nil
	})
}
