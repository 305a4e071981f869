package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/types"
)

type SubServiceAssetLinkRepo interface {
	Get(ctx context.Context, tx *gorm.DB, assetID, subServiceID uuid.UUID) (*types.SubServiceAssetLink, error)
	UpsertStatic(ctx context.Context, tx *gorm.DB, link *types.SubServiceAssetLink) error
	CreateDynamic(ctx context.Context, tx *gorm.DB, link *types.SubServiceAssetLink) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.SubServiceAssetLink, error)
	ListAssetIDsBySubService(ctx context.Context, tx *gorm.DB, subServiceID uuid.UUID) ([]uuid.UUID, error)
}

type subServiceAssetLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubServiceAssetLinkRepo(db *gorm.DB, baseLog *logger.Logger) SubServiceAssetLinkRepo {
	return &subServiceAssetLinkRepo{db: db, log: baseLog.With("repo", "SubServiceAssetLinkRepo")}
}

func (r *subServiceAssetLinkRepo) Get(ctx context.Context, tx *gorm.DB, assetID, subServiceID uuid.UUID) (*types.SubServiceAssetLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var link types.SubServiceAssetLink
	if err := transaction.WithContext(ctx).
		Where("asset_id = ? AND sub_service_id = ?", assetID, subServiceID).
		First(&link).Error; err != nil {
		return nil, MapError("SubServiceAssetLinkRepo.Get", err)
	}
	return &link, nil
}

func (r *subServiceAssetLinkRepo) UpsertStatic(ctx context.Context, tx *gorm.DB, link *types.SubServiceAssetLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	link.IsStatic = true
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "asset_id"}, {Name: "sub_service_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"is_static": true,
			}),
		}).
		Create(link).Error; err != nil {
		return MapError("SubServiceAssetLinkRepo.UpsertStatic", err)
	}
	return nil
}

func (r *subServiceAssetLinkRepo) CreateDynamic(ctx context.Context, tx *gorm.DB, link *types.SubServiceAssetLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	link.IsStatic = false
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}, {Name: "sub_service_id"}},
			DoNothing: true,
		}).
		Create(link).Error; err != nil {
		return MapError("SubServiceAssetLinkRepo.CreateDynamic", err)
	}
	return nil
}

func (r *subServiceAssetLinkRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.SubServiceAssetLink{}).Error; err != nil {
		return MapError("SubServiceAssetLinkRepo.DeleteByID", err)
	}
	return nil
}

func (r *subServiceAssetLinkRepo) ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.SubServiceAssetLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SubServiceAssetLink
	if err := transaction.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, MapError("SubServiceAssetLinkRepo.ListByAsset", err)
	}
	return results, nil
}

func (r *subServiceAssetLinkRepo) ListAssetIDsBySubService(ctx context.Context, tx *gorm.DB, subServiceID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.SubServiceAssetLink{}).
		Distinct("asset_id").
		Where("sub_service_id = ?", subServiceID).
		Pluck("asset_id", &ids).Error; err != nil {
		return nil, MapError("SubServiceAssetLinkRepo.ListAssetIDsBySubService", err)
	}
	return ids, nil
}
