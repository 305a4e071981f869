package app

import (
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	Asset          repos.AssetRepo
	Service        repos.ServiceRepo
	SubService     repos.SubServiceRepo
	ServiceLink    repos.ServiceAssetLinkRepo
	SubServiceLink repos.SubServiceAssetLinkRepo
	AssetStatusLog repos.AssetStatusLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Asset:          repos.NewAssetRepo(db, log),
		Service:        repos.NewServiceRepo(db, log),
		SubService:     repos.NewSubServiceRepo(db, log),
		ServiceLink:    repos.NewServiceAssetLinkRepo(db, log),
		SubServiceLink: repos.NewSubServiceAssetLinkRepo(db, log),
		AssetStatusLog: repos.NewAssetStatusLogRepo(db, log),
	}
}
