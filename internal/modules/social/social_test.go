package social

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
	return NewService(store), store
}

func TestAddAndList(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.Add("instagram", "Highlights", "Best moments", "https://instagram.com/p/1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.True(t, post.IsActive)

	list, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, post.ID, list[0].ID)
}

func TestListFiltersInactiveAndSortsNewestFirst(t *testing.T) {
	svc, store := newTestService(t)

	require.NoError(t, store.Update(func(doc *models.Document) error {
		doc.SocialPosts = append(doc.SocialPosts,
			models.SocialPost{ID: "old", CreatedAt: "2024-01-01T00:00:00Z", IsActive: true},
			models.SocialPost{ID: "hidden", CreatedAt: "2024-02-01T00:00:00Z", IsActive: false},
			models.SocialPost{ID: "new", CreatedAt: "2024-03-01T00:00:00Z", IsActive: true},
		)
		return nil
	}))

	list, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestDeletePost(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.Add("youtube", "Video", "Watch", "https://youtube.com/watch?v=1", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(post.ID))
	assert.ErrorIs(t, svc.Delete(post.ID), ErrNotFound)
}
