package app

import (
	"github.com/gin-gonic/gin"

	"github.com/velmark/marketops-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:       cfg.AllowOrigins,
		AuthHandler:        h.Auth,
		AuthMiddleware:     m.Auth,
		AssetHandler:       h.Asset,
		AssetStatusHandler: h.AssetStatus,
		AssetLinkHandler:   h.AssetLink,
		CatalogHandler:     h.Catalog,
	})
}
