package events

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wishwall/core/internal/middleware"
	"github.com/wishwall/core/internal/models"
	"github.com/wishwall/core/internal/modules/ai"
	"github.com/wishwall/core/internal/modules/storage"
	"github.com/wishwall/core/internal/pkg/response"
	"go.uber.org/zap"
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
	group := rg.Group("/years/:year/events")
	group.GET("", h.list)
	group.POST("", h.add)
	group.GET("/:slug", h.get)
	group.PUT("/:slug", h.update)
	group.DELETE("/:slug", h.remove)
	group.PUT("/:slug/media", h.replaceMedia)
}

func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year provided.")
		return 0, false
	}
	return year, true
}

func (h *Handler) list(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	list, err := h.svc.List(year)
	if err != nil {
		h.logger.Error("list events failed", zap.Int("year", year), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

func (h *Handler) get(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	event, err := h.svc.Get(year, c.Param("slug"))
	if err != nil {
		h.respondError(c, err, "get event")
		return
	}
	response.OK(c, event)
}

type eventRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
	Type string `json:"type" binding:"required,oneof=birthday event"`
}

func (h *Handler) add(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid form data. Please check your inputs.")
		return
	}

	newSlug, err := h.svc.Add(year, req.Name, req.Date, req.Type)
	if err != nil {
		h.respondError(c, err, "add event")
		return
	}

	h.invalidateYear(year)
	response.Success(c, gin.H{"message": "Event added!", "newSlug": newSlug})
}

func (h *Handler) update(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid form data. Please check your inputs.")
		return
	}

	updatedSlug, err := h.svc.Update(year, c.Param("slug"), req.Name, req.Date, req.Type)
	if err != nil {
		h.respondError(c, err, "update event")
		return
	}

	h.invalidateYear(year)
	response.Success(c, gin.H{"message": "Event updated!", "updatedSlug": updatedSlug})
}

func (h *Handler) remove(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(year, c.Param("slug")); err != nil {
		h.respondError(c, err, "delete event")
		return
	}

	h.invalidateYear(year)
	response.Success(c, gin.H{})
}

// replaceMedia uploads the submitted files, captions images, and swaps the
// event's media set for kept-existing + new.
func (h *Handler) replaceMedia(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	eventSlug := c.Param("slug")

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid data.")
		return
	}

	files := form.File["media[]"]
	mediaTypes := form.Value["mediaTypes[]"]
	existingIDs := form.Value["existingMediaIds[]"]

	if len(files) != len(mediaTypes) {
		response.BadRequest(c, "Invalid data.")
		return
	}
	for _, t := range mediaTypes {
		if t != models.MediaTypeImage && t != models.MediaTypeVideo {
			response.BadRequest(c, "Invalid data.")
			return
		}
	}

	newItems := make([]models.MediaItem, 0, len(files))
	for i, fileHeader := range files {
		item, err := h.uploadMediaFile(c, fileHeader, mediaTypes[i])
		if err != nil {
			h.logger.Error("media upload failed",
				zap.Int("year", year),
				zap.String("event", eventSlug),
				zap.String("file", fileHeader.Filename),
				zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, "An error occurred while processing media.")
			return
		}
		newItems = append(newItems, item)
	}

	if err := h.svc.ReplaceMedia(year, eventSlug, newItems, existingIDs); err != nil {
		h.respondError(c, err, "replace media")
		return
	}

	h.invalidateYear(year)
	response.Success(c, gin.H{"message": "Media updated successfully."})
}

func (h *Handler) uploadMediaFile(c *gin.Context, fileHeader *multipart.FileHeader, mediaType string) (models.MediaItem, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return models.MediaItem{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.MediaItem{}, err
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	result, err := h.backend.Upload(c.Request.Context(), data, fileHeader.Filename, mimeType, "uploads")
	if err != nil {
		return models.MediaItem{}, err
	}

	hint := "video"
	if mediaType == models.MediaTypeImage {
		dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
		hint = h.ai.CaptionImage(c.Request.Context(), dataURI)
	}

	base := path.Base(result.Key)
	return models.MediaItem{
		ID:   strings.TrimSuffix(base, path.Ext(base)),
		Type: mediaType,
		URL:  result.URL,
		Hint: hint,
	}, nil
}

func (h *Handler) respondError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, ErrYearNotFound):
		response.NotFound(c, "Year not found.")
	case errors.Is(err, ErrEventNotFound):
		response.NotFound(c, "Event not found.")
	case errors.Is(err, ErrSlugTaken):
		response.Conflict(c, "An event with this name already exists for this year. Please choose a different name.")
	case errors.Is(err, ErrRenameTaken):
		response.Conflict(c, "Another event with this name already exists. Please choose a different name.")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		response.InternalError(c)
	}
}

func (h *Handler) invalidateYear(year int) {
	h.cache.Invalidate("/api/years/" + strconv.Itoa(year))
}
