package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wishwall/core/internal/middleware"
	"github.com/wishwall/core/internal/modules/admins"
	"github.com/wishwall/core/internal/modules/ai"
	"github.com/wishwall/core/internal/modules/events"
	"github.com/wishwall/core/internal/modules/migration"
	"github.com/wishwall/core/internal/modules/social"
	"github.com/wishwall/core/internal/modules/storage"
	"github.com/wishwall/core/internal/modules/wishes"
	"github.com/wishwall/core/internal/modules/years"
	"github.com/wishwall/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not Found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "wishwall-core",
			"version": "1.0.0",
		})
	})

	viewCache := middleware.NewViewCache(0)

	// Shared services
	aiSvc := ai.NewService(a.cfg.AI, a.logger)
	yearsSvc := years.NewService(a.store)
	eventsSvc := events.NewService(a.store)
	wishesSvc := wishes.NewService(a.store)
	adminsSvc := admins.NewService(a.store)
	socialSvc := social.NewService(a.store)
	migrationSvc := migration.NewService(a.store, a.backend, a.cfg.UploadsDir(), a.cfg.BackupsDir(), a.logger)

	api := r.Group("/api")
	api.Use(viewCache.Middleware())

	years.NewHandler(yearsSvc, viewCache, a.logger).RegisterRoutes(api)
	events.NewHandler(eventsSvc, a.backend, aiSvc, viewCache, a.logger).RegisterRoutes(api)
	wishes.NewHandler(wishesSvc, a.backend, aiSvc, viewCache, a.logger).RegisterRoutes(api)
	admins.NewHandler(adminsSvc, viewCache, a.logger).RegisterRoutes(api)
	social.NewHandler(socialSvc, viewCache, a.logger).RegisterRoutes(api)
	migration.NewHandler(migrationSvc, viewCache, a.logger).RegisterRoutes(api)
	storage.NewHandler(a.cfg, a.backend, a.logger).RegisterRoutes(api)
}
