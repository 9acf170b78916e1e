package wishes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wishwall/core/internal/middleware"
	"github.com/wishwall/core/internal/models"
	"github.com/wishwall/core/internal/modules/ai"
	"github.com/wishwall/core/internal/modules/storage"
	"github.com/wishwall/core/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	maxAuthorLen  = 50
	maxMessageLen = 500
)

type Handler struct {
	svc     *Service
	backend storage.Backend
	ai      *ai.Service
	cache   *middleware.ViewCache
	logger  *zap.Logger
}

func NewHandler(svc *Service, backend storage.Backend, aiSvc *ai.Service, cache *middleware.ViewCache, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, backend: backend, ai: aiSvc, cache: cache, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/years/:year/events/:slug/wishes")
	group.POST("", middleware.RateLimit(), h.submit)
	group.DELETE("/:id", h.remove)
}

// submit runs the full pipeline: validate, moderate, upload the optional
// image, persist. A flagged or failed wish never touches the store.
func (h *Handler) submit(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year provided.")
		return
	}
	eventSlug := c.Param("slug")

	author := strings.TrimSpace(c.PostForm("author"))
	if author == "" {
		author = "Anonymous"
	}
	message := c.PostForm("message")

	if strings.TrimSpace(message) == "" || len(message) > maxMessageLen || len(author) > maxAuthorLen {
		response.BadRequest(c, "Invalid form data. Please check your inputs.")
		return
	}

	moderation, err := h.ai.ModerateWish(c.Request.Context(), message)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		return
	}
	if !moderation.IsAppropriate {
		reason := moderation.Reason
		if reason == "" {
			reason = "Content policy violation"
		}
		response.BadRequest(c, "Your message was flagged as inappropriate. Reason: "+reason+". Please revise.")
		return
	}

	var imageURL string
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader.Size > 0 {
		file, err := fileHeader.Open()
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to upload image. Please try again.")
			return
		}
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to upload image. Please try again.")
			return
		}

		result, upErr := h.backend.Upload(
			c.Request.Context(),
			data,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
			"uploads",
		)
		if upErr != nil {
			h.logger.Error("wish image upload failed", zap.Error(upErr))
			response.Fail(c, http.StatusInternalServerError, "Failed to upload image. Please try again.")
			return
		}
		imageURL = result.URL
	}

	wish := models.Wish{
		ID:        uuid.NewString(),
		Author:    author,
		Message:   message,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	saved, err := h.svc.Add(year, eventSlug, wish)
	if err != nil {
		h.respondError(c, err, "add wish")
		return
	}

	h.cache.Invalidate("/api/years/" + strconv.Itoa(year))
	response.Success(c, gin.H{
		"message": "Your wish has been posted!",
		"newWish": saved,
	})
}

func (h *Handler) remove(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year provided.")
		return
	}

	if err := h.svc.Delete(year, c.Param("slug"), c.Param("id")); err != nil {
		h.respondError(c, err, "delete wish")
		return
	}

	h.cache.Invalidate("/api/years/" + strconv.Itoa(year))
	response.Success(c, gin.H{})
}

func (h *Handler) respondError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, ErrYearNotFound):
		response.NotFound(c, "Year not found.")
	case errors.Is(err, ErrEventNotFound):
		response.NotFound(c, "Event not found.")
	case errors.Is(err, ErrWishNotFound):
		response.NotFound(c, "Wish not found.")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		response.InternalError(c)
	}
}
