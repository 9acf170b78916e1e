package social

import (
	"errors"

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
	group := rg.Group("/social")
	group.GET("", h.list)
	group.POST("", h.add)
	group.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.ListActive()
	if err != nil {
		h.logger.Error("list social posts failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

type addPostRequest struct {
	Platform    string `json:"platform" binding:"required,oneof=instagram facebook twitter youtube tiktok"`
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
	URL         string `json:"url" binding:"required,url"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
}

func (h *Handler) add(c *gin.Context) {
	var req addPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid form data. Please check your inputs.")
		return
	}

	post, err := h.svc.Add(req.Platform, req.Title, req.Description, req.URL, req.ImageURL)
	if err != nil {
		h.logger.Error("add social post failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.cache.Invalidate("/api/social")
	response.Success(c, gin.H{
		"message": "Social post added successfully!",
		"newPost": post,
	})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Post not found.")
			return
		}
		h.logger.Error("delete social post failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	h.cache.Invalidate("/api/social")
	response.Success(c, gin.H{})
}
