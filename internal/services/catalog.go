package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/domain"
	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/repos"
	"github.com/velmark/marketops-backend/internal/types"
)

// CatalogService maintains the service / sub-service catalog assets link
// against. Upserts are idempotent by name so the seed command can be re-run.
type CatalogService interface {
	UpsertService(ctx context.Context, name, description string) (*types.Service, error)
	UpsertSubService(ctx context.Context, serviceID uuid.UUID, name string) (*types.SubService, error)
	ListServices(ctx context.Context) ([]*types.Service, error)
	ListSubServices(ctx context.Context, serviceID uuid.UUID) ([]*types.SubService, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	services    repos.ServiceRepo
	subServices repos.SubServiceRepo
}

func NewCatalogService(db *gorm.DB, baseLog *logger.Logger, services repos.ServiceRepo, subServices repos.SubServiceRepo) CatalogService {
	return &catalogService{
		db:          db,
		log:         baseLog.With("service", "CatalogService"),
		services:    services,
		subServices: subServices,
	}
}

func (s *catalogService) UpsertService(ctx context.Context, name, description string) (*types.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "CatalogService.UpsertService", "service name is required", nil)
	}
	return s.services.UpsertByName(ctx, nil, &types.Service{Name: name, Description: strings.TrimSpace(description)})
}

func (s *catalogService) UpsertSubService(ctx context.Context, serviceID uuid.UUID, name string) (*types.SubService, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "CatalogService.UpsertSubService", "sub-service name is required", nil)
	}
	ok, err := s.services.Exists(ctx, nil, serviceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.CodeNotFound, "CatalogService.UpsertSubService", "service "+serviceID.String()+" not found", nil)
	}
	return s.subServices.UpsertByServiceAndName(ctx, nil, &types.SubService{ServiceID: serviceID, Name: name})
}

func (s *catalogService) ListServices(ctx context.Context) ([]*types.Service, error) {
	return s.services.List(ctx, nil)
}

func (s *catalogService) ListSubServices(ctx context.Context, serviceID uuid.UUID) ([]*types.SubService, error) {
	ok, err := s.services.Exists(ctx, nil, serviceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.CodeNotFound, "CatalogService.ListSubServices", "service "+serviceID.String()+" not found", nil)
	}
	return s.subServices.ListByService(ctx, nil, serviceID)
}
