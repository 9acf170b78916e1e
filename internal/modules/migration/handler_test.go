package migration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishwall/core/internal/middleware"
	"github.com/wishwall/core/internal/models"
	"go.uber.org/zap"
)

// newTestRouter wires the migration handler behind the view cache together
// with a years listing stub, so tests can observe whether a mutation
// refreshed the cached view.
func newTestRouter(t *testing.T) (*gin.Engine, *Service, string, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, uploadsDir := newTestService(t)
	cache := middleware.NewViewCache(time.Minute)
	yearsHits := 0

	r := gin.New()
	api := r.Group("/api")
	api.Use(cache.Middleware())
	api.GET("/years", func(c *gin.Context) {
		yearsHits++
		c.JSON(http.StatusOK, gin.H{"data": []int{2024}})
	})
	NewHandler(svc, cache, zap.NewNop()).RegisterRoutes(api)
	return r, svc, uploadsDir, &yearsHits
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRestoreRefreshesCachedViews(t *testing.T) {
	r, svc, _, yearsHits := newTestRouter(t)

	require.NoError(t, svc.store.Update(func(doc *models.Document) error {
		doc.Years = append(doc.Years, models.Year{Year: 2024, Events: []models.Event{}})
		return nil
	}))
	backupPath, err := svc.Backup()
	require.NoError(t, err)

	doJSON(r, http.MethodGet, "/api/years", "")
	doJSON(r, http.MethodGet, "/api/years", "")
	require.Equal(t, 1, *yearsHits)

	restored := doJSON(r, http.MethodPost, "/api/migration/restore", fmt.Sprintf(`{"path":%q}`, backupPath))
	require.Equal(t, http.StatusOK, restored.Code)

	doJSON(r, http.MethodGet, "/api/years", "")
	assert.Equal(t, 2, *yearsHits)
}

func TestMigrateRefreshesCachedViews(t *testing.T) {
	r, _, uploadsDir, yearsHits := newTestRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(uploadsDir, "a.jpg"), []byte("img"), 0o644))

	doJSON(r, http.MethodGet, "/api/years", "")
	doJSON(r, http.MethodGet, "/api/years", "")
	require.Equal(t, 1, *yearsHits)

	migrated := doJSON(r, http.MethodPost, "/api/migration", `{"action":"migrate"}`)
	require.Equal(t, http.StatusOK, migrated.Code)
	assert.Contains(t, migrated.Body.String(), "Migration completed.")

	doJSON(r, http.MethodGet, "/api/years", "")
	assert.Equal(t, 2, *yearsHits)
}

func TestInvalidActionRejected(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/migration", `{"action":"explode"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid action")
}
