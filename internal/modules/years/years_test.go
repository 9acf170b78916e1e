package years

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishwall/core/internal/database"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := database.New(filepath.Join(t.TempDir(), "db.json"), zap.NewNop())
	return NewService(store)
}

func TestAddAndListDescending(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add(2022))
	require.NoError(t, svc.Add(2024))
	require.NoError(t, svc.Add(2023))

	list, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023, 2022}, list)
}

func TestAddDuplicateYearRejected(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add(2024))
	assert.ErrorIs(t, svc.Add(2024), ErrExists)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteYear(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add(2024))
	require.NoError(t, svc.Delete(2024))

	list, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteMissingYear(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.Delete(1999), ErrNotFound)
}
