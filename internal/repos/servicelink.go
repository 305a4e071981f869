package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/types"
)

type ServiceAssetLinkRepo interface {
	// Get fetches the exact (asset, service, sub-service) tuple row.
	// subServiceID is uuid.Nil for a service-wide link.
	Get(ctx context.Context, tx *gorm.DB, assetID, serviceID, subServiceID uuid.UUID) (*types.ServiceAssetLink, error)
	// UpsertStatic creates the tuple row as static, or upgrades an existing
	// row to static. It never downgrades.
	UpsertStatic(ctx context.Context, tx *gorm.DB, link *types.ServiceAssetLink) error
	// CreateDynamic inserts a removable row; an existing tuple is left
	// untouched so a static row is never weakened.
	CreateDynamic(ctx context.Context, tx *gorm.DB, link *types.ServiceAssetLink) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.ServiceAssetLink, error)
	ListAssetIDsByService(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) ([]uuid.UUID, error)
	CountDistinctAssets(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) (int64, error)
}

type serviceAssetLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceAssetLinkRepo(db *gorm.DB, baseLog *logger.Logger) ServiceAssetLinkRepo {
	return &serviceAssetLinkRepo{db: db, log: baseLog.With("repo", "ServiceAssetLinkRepo")}
}

func (r *serviceAssetLinkRepo) Get(ctx context.Context, tx *gorm.DB, assetID, serviceID, subServiceID uuid.UUID) (*types.ServiceAssetLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var link types.ServiceAssetLink
	if err := transaction.WithContext(ctx).
		Where("asset_id = ? AND service_id = ? AND sub_service_id = ?", assetID, serviceID, subServiceID).
		First(&link).Error; err != nil {
		return nil, MapError("ServiceAssetLinkRepo.Get", err)
	}
	return &link, nil
}

func (r *serviceAssetLinkRepo) UpsertStatic(ctx context.Context, tx *gorm.DB, link *types.ServiceAssetLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	link.IsStatic = true
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "asset_id"}, {Name: "service_id"}, {Name: "sub_service_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"is_static": true,
			}),
		}).
		Create(link).Error; err != nil {
		return MapError("ServiceAssetLinkRepo.UpsertStatic", err)
	}
	return nil
}

func (r *serviceAssetLinkRepo) CreateDynamic(ctx context.Context, tx *gorm.DB, link *types.ServiceAssetLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	link.IsStatic = false
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}, {Name: "service_id"}, {Name: "sub_service_id"}},
			DoNothing: true,
		}).
		Create(link).Error; err != nil {
		return MapError("ServiceAssetLinkRepo.CreateDynamic", err)
	}
	return nil
}

func (r *serviceAssetLinkRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.ServiceAssetLink{}).Error; err != nil {
		return MapError("ServiceAssetLinkRepo.DeleteByID", err)
	}
	return nil
}

func (r *serviceAssetLinkRepo) ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.ServiceAssetLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ServiceAssetLink
	if err := transaction.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, MapError("ServiceAssetLinkRepo.ListByAsset", err)
	}
	return results, nil
}

func (r *serviceAssetLinkRepo) ListAssetIDsByService(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.ServiceAssetLink{}).
		Distinct("asset_id").
		Where("service_id = ?", serviceID).
		Pluck("asset_id", &ids).Error; err != nil {
		return nil, MapError("ServiceAssetLinkRepo.ListAssetIDsByService", err)
	}
	return ids, nil
}

func (r *serviceAssetLinkRepo) CountDistinctAssets(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ServiceAssetLink{}).
		Distinct("asset_id").
		Where("service_id = ?", serviceID).
		Count(&count).Error; err != nil {
		return 0, MapError("ServiceAssetLinkRepo.CountDistinctAssets", err)
	}
	return count, nil
}
