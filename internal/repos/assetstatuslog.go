package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/types"
)

// AssetStatusLogRepo is append-only; there is deliberately no update or
// delete operation.
type AssetStatusLogRepo interface {
	Append(ctx context.Context, tx *gorm.DB, record *types.AssetStatusLog) error
	ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, limit int) ([]*types.AssetStatusLog, error)
}

type assetStatusLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetStatusLogRepo(db *gorm.DB, baseLog *logger.Logger) AssetStatusLogRepo {
	return &assetStatusLogRepo{db: db, log: baseLog.With("repo", "AssetStatusLogRepo")}
}

func (r *assetStatusLogRepo) Append(ctx context.Context, tx *gorm.DB, record *types.AssetStatusLog) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return MapError("AssetStatusLogRepo.Append", err)
	}
	return nil
}

func (r *assetStatusLogRepo) ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, limit int) ([]*types.AssetStatusLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 50
	}

	var results []*types.AssetStatusLog
	if err := transaction.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("changed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, MapError("AssetStatusLogRepo.ListByAsset", err)
	}
	return results, nil
}
