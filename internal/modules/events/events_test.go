package events

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
		doc.Years = append(doc.Years, models.Year{Year: 2024, Events: []models.Event{}})
		return nil
	}))
	return NewService(store), store
}

func TestAddEventGeneratesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	slug, err := svc.Add(2024, "João's Birthday", "2024-06-01", models.EventTypeBirthday)
	require.NoError(t, err)
	assert.Equal(t, "joaos-birthday", slug)

	list, err := svc.List(2024)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "João's Birthday", list[0].Name)
}

func TestAddEventSlugConflictRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(2024, "Summer Party", "2024-07-01", models.EventTypeEvent)
	require.NoError(t, err)

	_, err = svc.Add(2024, "Summer  Party", "2024-08-01", models.EventTypeEvent)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestAddEventMissingYear(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Add(1999, "Party", "1999-01-01", models.EventTypeEvent)
	assert.ErrorIs(t, err, ErrYearNotFound)
}

func TestUpdateEventRenameCollisionRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(2024, "Alpha", "2024-01-01", models.EventTypeEvent)
	require.NoError(t, err)
	_, err = svc.Add(2024, "Beta", "2024-02-01", models.EventTypeEvent)
	require.NoError(t, err)

	_, err = svc.Update(2024, "beta", "Alpha", "2024-02-01", models.EventTypeEvent)
	assert.ErrorIs(t, err, ErrRenameTaken)
}

func TestUpdateEventSameNameKeepsSlug(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(2024, "Alpha", "2024-01-01", models.EventTypeEvent)
	require.NoError(t, err)

	updated, err := svc.Update(2024, "alpha", "Alpha", "2024-03-01", models.EventTypeBirthday)
	require.NoError(t, err)
	assert.Equal(t, "alpha", updated)

	event, err := svc.Get(2024, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", event.Date)
	assert.Equal(t, models.EventTypeBirthday, event.Type)
}

func TestListMissingYearIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	list, err := svc.List(1999)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListOmitsMediaAndWishes(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Add(2024, "Alpha", "2024-01-01", models.EventTypeEvent)
	require.NoError(t, err)
	require.NoError(t, store.Update(func(doc *models.Document) error {
		event := doc.FindYear(2024).FindEvent("alpha")
		event.Wishes = append(event.Wishes, models.Wish{ID: "w1", Message: "hi"})
		return nil
	}))

	list, err := svc.List(2024)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alpha", list[0].Slug)
}

func TestGetReversesWishes(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Add(2024, "Alpha", "2024-01-01", models.EventTypeEvent)
	require.NoError(t, err)
	require.NoError(t, store.Update(func(doc *models.Document) error {
		event := doc.FindYear(2024).FindEvent("alpha")
		event.Wishes = append(event.Wishes,
			models.Wish{ID: "first"},
			models.Wish{ID: "second"},
			models.Wish{ID: "third"},
		)
		return nil
	}))

	event, err := svc.Get(2024, "alpha")
	require.NoError(t, err)
	require.Len(t, event.Wishes, 3)
	assert.Equal(t, "third", event.Wishes[0].ID)
	assert.Equal(t, "first", event.Wishes[2].ID)
}

func TestDeleteEvent(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(2024, "Alpha", "2024-01-01", models.EventTypeEvent)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(2024, "alpha"))
	assert.ErrorIs(t, svc.Delete(2024, "alpha"), ErrEventNotFound)
}

func TestReplaceMediaKeepsOnlyListedExisting(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Add(2024, "Alpha", "2024-01-01", models.EventTypeEvent)
	require.NoError(t, err)
	require.NoError(t, store.Update(func(doc *models.Document) error {
		event := doc.FindYear(2024).FindEvent("alpha")
		event.Media = []models.MediaItem{
			{ID: "keep", Type: models.MediaTypeImage, URL: "/uploads/a.jpg"},
			{ID: "drop", Type: models.MediaTypeImage, URL: "/uploads/b.jpg"},
		}
		return nil
	}))

	newItems := []models.MediaItem{{ID: "new", Type: models.MediaTypeVideo, URL: "/uploads/c.mp4", Hint: "video"}}
	require.NoError(t, svc.ReplaceMedia(2024, "alpha", newItems, []string{"keep"}))

	doc, err := store.Read()
	require.NoError(t, err)
	media := doc.FindYear(2024).FindEvent("alpha").Media
	require.Len(t, media, 2)
	assert.Equal(t, "keep", media[0].ID)
	assert.Equal(t, "new", media[1].ID)
}

func TestReplaceMediaEmptyExistingReplacesAll(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Add(2024, "Alpha", "2024-01-01", models.EventTypeEvent)
	require.NoError(t, err)
	require.NoError(t, store.Update(func(doc *models.Document) error {
		event := doc.FindYear(2024).FindEvent("alpha")
		event.Media = []models.MediaItem{{ID: "old", URL: "/uploads/a.jpg"}}
		return nil
	}))

	newItems := []models.MediaItem{
		{ID: "n1", URL: "/uploads/1.jpg"},
		{ID: "n2", URL: "/uploads/2.jpg"},
		{ID: "n3", URL: "/uploads/3.jpg"},
	}
	require.NoError(t, svc.ReplaceMedia(2024, "alpha", newItems, nil))

	doc, err := store.Read()
	require.NoError(t, err)
	assert.Len(t, doc.FindYear(2024).FindEvent("alpha").Media, 3)
}

func TestPopulateMedia(t *testing.T) {
	media := []models.MediaItem{
		{ID: "m1", URL: "https://cdn.example.com/a.jpg"},
		{ID: "m2", URL: "/uploads/b.jpg"},
		{ID: "m3", URL: "data:image/png;base64,xyz"},
		{ID: "gallery-1", URL: "stale-reference"},
		{ID: "unknown-id", URL: "stale-reference"},
	}

	out := PopulateMedia(media)
	require.Len(t, out, 4)
	assert.Equal(t, "https://cdn.example.com/a.jpg", out[0].URL)
	assert.Equal(t, "/uploads/b.jpg", out[1].URL)

	placeholder, ok := models.FindPlaceholder("gallery-1")
	require.True(t, ok)
	assert.Equal(t, placeholder.ImageURL, out[3].URL)
	assert.Equal(t, placeholder.Hint, out[3].Hint)
}
