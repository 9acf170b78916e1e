package admins

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

func TestAddAndAuthenticate(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add("root", "hunter2"))

	ok, err := svc.Authenticate("root", "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Authenticate("root", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Authenticate("ghost", "hunter2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddDuplicateUsernameRejected(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add("root", "hunter2"))
	assert.ErrorIs(t, svc.Add("root", "other"), ErrExists)
}

func TestListStripsPasswords(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add("root", "hunter2"))

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "root", list[0].Username)
	assert.Empty(t, list[0].Password)
}

func TestDeleteAdmin(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add("root", "hunter2"))
	require.NoError(t, svc.Delete("root"))
	assert.ErrorIs(t, svc.Delete("root"), ErrNotFound)
}
