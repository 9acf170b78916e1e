package wishes

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *database.Store) {
	t.Helper()
	store := database.New(filepath.Join(t.TempDir(), "db.json"), zap.NewNop())
	require.NoError(t, store.Update(func(doc *models.Document) error {
		doc.Years = append(doc.Years, models.Year{
			Year: 2024,
			Events: []models.Event{{
				Slug:   "party",
				Name:   "Party",
				Media:  []models.MediaItem{},
				Wishes: []models.Wish{},
			}},
		})
		return nil
	}))
	return NewService(store), store
}

func TestAddWishMarksAppropriate(t *testing.T) {
	svc, store := newTestService(t)

	saved, err := svc.Add(2024, "party", models.Wish{ID: "w1", Author: "Ana", Message: "Congrats!"})
	require.NoError(t, err)
	assert.True(t, saved.IsAppropriate)

	doc, err := store.Read()
	require.NoError(t, err)
	wishes := doc.FindYear(2024).FindEvent("party").Wishes
	require.Len(t, wishes, 1)
	assert.True(t, wishes[0].IsAppropriate)
}

func TestAddWishMissingEvent(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(2024, "nope", models.Wish{ID: "w1"})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.Add(1999, "party", models.Wish{ID: "w1"})
	assert.ErrorIs(t, err, ErrYearNotFound)
}

func TestDeleteWish(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Add(2024, "party", models.Wish{ID: "w1", Message: "hi"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(2024, "party", "w1"))

	doc, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, doc.FindYear(2024).FindEvent("party").Wishes)
}

func TestDeleteMissingWishKeepsLength(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Add(2024, "party", models.Wish{ID: "w1", Message: "hi"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(2024, "party", "ghost"), ErrWishNotFound)

	doc, err := store.Read()
	require.NoError(t, err)
	assert.Len(t, doc.FindYear(2024).FindEvent("party").Wishes, 1)
}
