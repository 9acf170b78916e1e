package storage

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wishwall/core/internal/config"
	"github.com/wishwall/core/internal/pkg/response"
	"go.uber.org/zap"
)

// Handler exposes storage diagnostics: a config check and a live test
// upload against the active backend.
type Handler struct {
	cfg     *config.AppConfig
	backend Backend
	logger  *zap.Logger
}

func NewHandler(cfg *config.AppConfig, backend Backend, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, backend: backend, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/storage")
	group.GET("/status", h.status)
	group.POST("/test", h.testUpload)
}

func (h *Handler) status(c *gin.Context) {
	response.OK(c, Check(h.cfg))
}

func (h *Handler) testUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Unable to read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Unable to read file")
		return
	}

	result, err := h.backend.Upload(
		c.Request.Context(),
		data,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		"test",
	)
	if err != nil {
		h.logger.Error("storage test upload failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, gin.H{
		"message": "File uploaded successfully",
		"url":     result.URL,
		"key":     result.Key,
	})
}
