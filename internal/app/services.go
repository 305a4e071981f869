package app

import (
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Asset        services.AssetService
	AssetStatus  services.AssetStatusService
	AssetLinking services.AssetLinkingService
	Catalog      services.CatalogService
	Audit        services.AuditService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	auditService := services.NewAuditService(db, log, r.AssetStatusLog)
	return Services{
		Auth:         services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Asset:        services.NewAssetService(db, log, r.Asset),
		AssetStatus:  services.NewAssetStatusService(db, log, r.Asset, r.ServiceLink, r.SubServiceLink, auditService),
		AssetLinking: services.NewAssetLinkingService(db, log, r.Asset, r.Service, r.SubService, r.ServiceLink, r.SubServiceLink),
		Catalog:      services.NewCatalogService(db, log, r.Service, r.SubService),
		Audit:        auditService,
	}
}
