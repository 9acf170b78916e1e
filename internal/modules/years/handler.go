package years

import (
	"errors"
	"fmt"
	"strconv"

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
	group := rg.Group("/years")
	group.GET("", h.list)
	group.POST("", h.add)
	group.DELETE("/:year", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		h.logger.Error("list years failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

type addYearRequest struct {
	Year int `json:"year" binding:"required,min=1900"`
}

func (h *Handler) add(c *gin.Context) {
	var req addYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Year must be a valid year.")
		return
	}

	if err := h.svc.Add(req.Year); err != nil {
		if errors.Is(err, ErrExists) {
			response.Conflict(c, "Year already exists.")
			return
		}
		h.logger.Error("add year failed", zap.Int("year", req.Year), zap.Error(err))
		response.InternalError(c)
		return
	}

	h.cache.Invalidate("/api/years")
	response.Success(c, gin.H{"message": fmt.Sprintf("Year %d added successfully.", req.Year)})
}

func (h *Handler) remove(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year provided.")
		return
	}

	if err := h.svc.Delete(year); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, fmt.Sprintf("Year %d not found.", year))
			return
		}
		h.logger.Error("delete year failed", zap.Int("year", year), zap.Error(err))
		response.InternalError(c)
		return
	}

	h.cache.Invalidate("/api/years")
	response.Success(c, gin.H{"message": fmt.Sprintf("Year %d deleted successfully.", year)})
}
