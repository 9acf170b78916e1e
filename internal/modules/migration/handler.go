package migration

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wishwall/core/internal/middleware"
	"github.com/wishwall/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	cache  *middleware.ViewCache
	logger *zap.Logger
}

func NewHandler(svc *Service, cache *middleware.ViewCache, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, cache: cache, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/migration")
	group.POST("", h.run)
	group.POST("/restore", h.restore)
}

type migrationRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *Handler) run(c *gin.Context) {
	var req migrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid action")
		return
	}

	switch req.Action {
	case "backup":
		backupPath, err := h.svc.Backup()
		if err != nil {
			h.logger.Error("backup failed", zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, err.Error())
			return
		}
		response.Success(c, gin.H{
			"message":    "Backup created successfully",
			"backupPath": backupPath,
		})

	case "migrate":
		// Snapshot first so a half-finished migration is recoverable.
		backupPath, err := h.svc.Backup()
		if err != nil {
			h.logger.Error("pre-migration backup failed", zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, err.Error())
			return
		}

		result := h.svc.Migrate(c.Request.Context())
		message := "Migration failed."
		if result.Success {
			message = fmt.Sprintf("Migration completed. Migrated %d files, %d failed.", result.Migrated, result.Failed)
			// Rewritten URLs must show up in event views immediately.
			h.cache.Invalidate("/api/years")
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    result.Success,
			"message":    message,
			"details":    result,
			"backupPath": backupPath,
		})

	default:
		response.BadRequest(c, "Invalid action")
	}
}

type restoreRequest struct {
	Path string `json:"path" binding:"required"`
}

func (h *Handler) restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Backup path is required")
		return
	}

	if err := h.svc.Restore(req.Path); err != nil {
		h.logger.Error("restore failed", zap.String("path", req.Path), zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	// A restore swaps the entire document, so every cached view is stale.
	h.cache.Invalidate("/api/years", "/api/social", "/api/admin")
	response.Success(c, gin.H{"message": "Backup restored successfully"})
}
