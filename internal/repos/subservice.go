package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/types"
)

type SubServiceRepo interface {
	UpsertByServiceAndName(ctx context.Context, tx *gorm.DB, sub *types.SubService) (*types.SubService, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubService, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SubService, error)
	ListByService(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) ([]*types.SubService, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type subServiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubServiceRepo(db *gorm.DB, baseLog *logger.Logger) SubServiceRepo {
	return &subServiceRepo{db: db, log: baseLog.With("repo", "SubServiceRepo")}
}

func (r *subServiceRepo) UpsertByServiceAndName(ctx context.Context, tx *gorm.DB, sub *types.SubService) (*types.SubService, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(sub).Error; err != nil {
		return nil, MapError("SubServiceRepo.UpsertByServiceAndName", err)
	}
	return sub, nil
}

func (r *subServiceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubService, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var sub types.SubService
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&sub).Error; err != nil {
		return nil, MapError("SubServiceRepo.GetByID", err)
	}
	return &sub, nil
}

func (r *subServiceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SubService, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SubService
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, MapError("SubServiceRepo.GetByIDs", err)
	}
	return results, nil
}

func (r *subServiceRepo) ListByService(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) ([]*types.SubService, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SubService
	if err := transaction.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, MapError("SubServiceRepo.ListByService", err)
	}
	return results, nil
}

func (r *subServiceRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.SubService{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, MapError("SubServiceRepo.Exists", err)
	}
	return count > 0, nil
}
