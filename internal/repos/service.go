package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/types"
)

type ServiceRepo interface {
	UpsertByName(ctx context.Context, tx *gorm.DB, service *types.Service) (*types.Service, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Service, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Service, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Service, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Service, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	return &serviceRepo{db: db, log: baseLog.With("repo", "ServiceRepo")}
}

func (r *serviceRepo) UpsertByName(ctx context.Context, tx *gorm.DB, service *types.Service) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "updated_at"}),
		}).
		Create(service).Error; err != nil {
		return nil, MapError("ServiceRepo.UpsertByName", err)
	}
	return service, nil
}

func (r *serviceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var service types.Service
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&service).Error; err != nil {
		return nil, MapError("ServiceRepo.GetByID", err)
	}
	return &service, nil
}

func (r *serviceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Service
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, MapError("ServiceRepo.GetByIDs", err)
	}
	return results, nil
}

func (r *serviceRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var service types.Service
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&service).Error; err != nil {
		return nil, MapError("ServiceRepo.GetByName", err)
	}
	return &service, nil
}

func (r *serviceRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Service
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, MapError("ServiceRepo.List", err)
	}
	return results, nil
}

func (r *serviceRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Service{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, MapError("ServiceRepo.Exists", err)
	}
	return count > 0, nil
}
