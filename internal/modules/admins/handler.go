package admins

import (
	"errors"
	"fmt"

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
	group := rg.Group("/admin")
	group.POST("/login", h.login)
	group.GET("/users", h.list)
	group.POST("/users", h.add)
	group.DELETE("/users/:username", h.remove)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Both username and password are required.")
		return
	}

	ok, err := h.svc.Authenticate(req.Username, req.Password)
	if err != nil {
		h.logger.Error("login check failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !ok {
		response.Unauthorized(c, "Invalid username or password.")
		return
	}

	response.Success(c, gin.H{
		"message":  "Login successful!",
		"username": req.Username,
	})
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		h.logger.Error("list admins failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

type addAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) add(c *gin.Context) {
	var req addAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Password must be at least 6 characters")
		return
	}

	if err := h.svc.Add(req.Username, req.Password); err != nil {
		if errors.Is(err, ErrExists) {
			response.Conflict(c, "Admin username already exists.")
			return
		}
		h.logger.Error("add admin failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.cache.Invalidate("/api/admin/users")
	response.Success(c, gin.H{"message": fmt.Sprintf("Admin %s added.", req.Username)})
}

func (h *Handler) remove(c *gin.Context) {
	username := c.Param("username")
	if err := h.svc.Delete(username); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Admin not found.")
			return
		}
		h.logger.Error("delete admin failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	h.cache.Invalidate("/api/admin/users")
	response.Success(c, gin.H{})
}
