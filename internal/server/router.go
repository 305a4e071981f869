package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/velmark/marketops-backend/internal/handlers"
	"github.com/velmark/marketops-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins []string

	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	AssetHandler       *handlers.AssetHandler
	AssetStatusHandler *handlers.AssetStatusHandler
	AssetLinkHandler   *handlers.AssetLinkHandler
	CatalogHandler     *handlers.CatalogHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("marketops-backend"))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Assets
	api.POST("/assets", cfg.AssetHandler.Create)
	api.GET("/assets", cfg.AssetHandler.List)
	api.GET("/assets/:id", cfg.AssetHandler.Get)

	// Status lifecycle
	api.GET("/assets/:id/status", cfg.AssetStatusHandler.GetStatus)
	api.PATCH("/assets/:id/qc-status", cfg.AssetStatusHandler.UpdateQCStatus)
	api.PATCH("/assets/:id/workflow-stage", cfg.AssetStatusHandler.UpdateWorkflowStage)
	api.PATCH("/assets/:id/linking-status", cfg.AssetStatusHandler.UpdateLinkingStatus)
	api.GET("/assets/:id/status-history", cfg.AssetStatusHandler.GetStatusHistory)

	// Linking registry
	api.POST("/assets/:id/links/static", cfg.AssetLinkHandler.LinkStatic)
	api.POST("/assets/:id/links", cfg.AssetLinkHandler.LinkDynamic)
	api.DELETE("/assets/:id/links", cfg.AssetLinkHandler.Unlink)
	api.GET("/assets/:id/links/static", cfg.AssetLinkHandler.GetAssetStaticLinks)
	api.GET("/assets/:id/links/is-static", cfg.AssetLinkHandler.IsStatic)
	api.GET("/services/:id/assets", cfg.AssetLinkHandler.GetLinkedAssets)
	api.GET("/services/:id/assets/count", cfg.AssetLinkHandler.CountLinkedAssets)

	// Catalog
	api.GET("/services", cfg.CatalogHandler.ListServices)
	api.POST("/services", cfg.CatalogHandler.UpsertService)
	api.GET("/services/:id/sub-services", cfg.CatalogHandler.ListSubServices)
	api.POST("/services/:id/sub-services", cfg.CatalogHandler.UpsertSubService)

	return router
}
