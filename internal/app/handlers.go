package app

import (
	"github.com/velmark/marketops-backend/internal/handlers"
	"github.com/velmark/marketops-backend/internal/platform/logger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Asset       *handlers.AssetHandler
	AssetStatus *handlers.AssetStatusHandler
	AssetLink   *handlers.AssetLinkHandler
	Catalog     *handlers.CatalogHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        handlers.NewAuthHandler(s.Auth),
		Asset:       handlers.NewAssetHandler(s.Asset),
		AssetStatus: handlers.NewAssetStatusHandler(s.AssetStatus),
		AssetLink:   handlers.NewAssetLinkHandler(s.AssetLinking),
		Catalog:     handlers.NewCatalogHandler(s.Catalog),
	}
}
