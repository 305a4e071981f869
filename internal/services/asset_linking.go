package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/domain"
	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/repos"
	"github.com/velmark/marketops-backend/internal/requestdata"
	"github.com/velmark/marketops-backend/internal/types"
)

// StaticLinkDetail is one static link descriptor joined with catalog names.
type StaticLinkDetail struct {
	ServiceID      uuid.UUID  `json:"serviceId"`
	ServiceName    string     `json:"serviceName"`
	SubServiceID   *uuid.UUID `json:"subServiceId,omitempty"`
	SubServiceName string     `json:"subServiceName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// AssetLinkingService is the linking registry. Static links are permanent
// once created; that is a hard invariant, not a default.
type AssetLinkingService interface {
	LinkStatic(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) (*types.ServiceAssetLink, error)
	LinkDynamic(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) (*types.ServiceAssetLink, error)
	Unlink(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) error
	IsStatic(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) (bool, error)
	GetLinkedAssets(ctx context.Context, serviceID uuid.UUID, subServiceID *uuid.UUID) ([]*types.Asset, error)
	GetAssetStaticLinks(ctx context.Context, assetID uuid.UUID) ([]StaticLinkDetail, error)
	CountLinkedAssets(ctx context.Context, serviceID uuid.UUID) (int64, error)
}

type assetLinkingService struct {
	db          *gorm.DB
	log         *logger.Logger
	assets      repos.AssetRepo
	services    repos.ServiceRepo
	subServices repos.SubServiceRepo
	links       repos.ServiceAssetLinkRepo
	subLinks    repos.SubServiceAssetLinkRepo
}

func NewAssetLinkingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assets repos.AssetRepo,
	services repos.ServiceRepo,
	subServices repos.SubServiceRepo,
	links repos.ServiceAssetLinkRepo,
	subLinks repos.SubServiceAssetLinkRepo,
) AssetLinkingService {
	return &assetLinkingService{
		db:          db,
		log:         baseLog.With("service", "AssetLinkingService"),
		assets:      assets,
		services:    services,
		subServices: subServices,
		links:       links,
		subLinks:    subLinks,
	}
}

// checkEntities verifies the asset, service, and optional sub-service all
// exist, failing with a not-found naming the missing entity.
func (s *assetLinkingService) checkEntities(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) error {
	ok, err := s.assets.Exists(ctx, nil, assetID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.CodeNotFound, "AssetLinkingService", fmt.Sprintf("asset %s not found", assetID), nil)
	}

	ok, err = s.services.Exists(ctx, nil, serviceID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.CodeNotFound, "AssetLinkingService", fmt.Sprintf("service %s not found", serviceID), nil)
	}

	if subServiceID != nil {
		sub, err := s.subServices.GetByID(ctx, nil, *subServiceID)
		if domain.IsCode(err, domain.CodeNotFound) {
			return domain.NewError(domain.CodeNotFound, "AssetLinkingService", fmt.Sprintf("sub-service %s not found", *subServiceID), nil)
		}
		if err != nil {
			return err
		}
		if sub.ServiceID != serviceID {
			return domain.NewError(domain.CodeInvalidArgument, "AssetLinkingService",
				fmt.Sprintf("sub-service %s does not belong to service %s", *subServiceID, serviceID), nil)
		}
	}
	return nil
}

func (s *assetLinkingService) LinkStatic(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) (*types.ServiceAssetLink, error) {
	if err := s.checkEntities(ctx, assetID, serviceID, subServiceID); err != nil {
		return nil, err
	}

	createdBy := requestdata.ActorID(ctx)
	tupleSub := uuid.Nil
	if subServiceID != nil {
		tupleSub = *subServiceID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the asset row: the static_service_links array is rewritten
		// whole, so concurrent links to the same asset must serialize.
		asset, err := s.assets.GetByIDForUpdate(ctx, tx, assetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		link := &types.ServiceAssetLink{
			AssetID:      assetID,
			ServiceID:    serviceID,
			SubServiceID: tupleSub,
			CreatedBy:    derefOrNil(createdBy),
			CreatedAt:    now,
		}
		if err := s.links.UpsertStatic(ctx, tx, link); err != nil {
			// A racing insert of the same tuple resolves as idempotent
			// success; the surviving row is already static or about to be.
			if !domain.IsCode(err, domain.CodeConflict) {
				return err
			}
		}

		if subServiceID != nil {
			subLink := &types.SubServiceAssetLink{
				AssetID:      assetID,
				SubServiceID: *subServiceID,
				CreatedBy:    derefOrNil(createdBy),
				CreatedAt:    now,
			}
			if err := s.subLinks.UpsertStatic(ctx, tx, subLink); err != nil {
				if !domain.IsCode(err, domain.CodeConflict) {
					return err
				}
			}
		}

		staticLinks, err := domain.DecodeStaticLinks(asset.StaticServiceLinks)
		if err != nil {
			return err
		}
		updated := domain.AppendStaticLink(staticLinks, serviceID, subServiceID, now)
		if len(updated) == len(staticLinks) {
			return nil
		}
		encoded, err := domain.EncodeStaticLinks(updated)
		if err != nil {
			return err
		}
		return s.assets.UpdateFields(ctx, tx, assetID, map[string]interface{}{
			"static_service_links": encoded,
			"updated_at":           now,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.links.Get(ctx, nil, assetID, serviceID, tupleSub)
}

func (s *assetLinkingService) LinkDynamic(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) (*types.ServiceAssetLink, error) {
	if err := s.checkEntities(ctx, assetID, serviceID, subServiceID); err != nil {
		return nil, err
	}

	createdBy := requestdata.ActorID(ctx)
	tupleSub := uuid.Nil
	if subServiceID != nil {
		tupleSub = *subServiceID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		link := &types.ServiceAssetLink{
			AssetID:      assetID,
			ServiceID:    serviceID,
			SubServiceID: tupleSub,
			CreatedBy:    derefOrNil(createdBy),
			CreatedAt:    now,
		}
		if err := s.links.CreateDynamic(ctx, tx, link); err != nil {
			if !domain.IsCode(err, domain.CodeConflict) {
				return err
			}
		}
		if subServiceID != nil {
			subLink := &types.SubServiceAssetLink{
				AssetID:      assetID,
				SubServiceID: *subServiceID,
				CreatedBy:    derefOrNil(createdBy),
				CreatedAt:    now,
			}
			if err := s.subLinks.CreateDynamic(ctx, tx, subLink); err != nil {
				if !domain.IsCode(err, domain.CodeConflict) {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.links.Get(ctx, nil, assetID, serviceID, tupleSub)
}

func (s *assetLinkingService) Unlink(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) error {
	tupleSub := uuid.Nil
	if subServiceID != nil {
		tupleSub = *subServiceID
	}

	// The static check and the delete share one transaction so a link
	// upgraded to static mid-flight cannot slip through.
	return s.db.Transaction(func(tx *gorm.DB) error {
		link, err := s.links.Get(ctx, tx, assetID, serviceID, tupleSub)
		if err != nil {
			return err
		}
		if link.IsStatic {
			return domain.NewError(domain.CodeForbidden, "AssetLinkingService.Unlink",
				fmt.Sprintf("link between asset %s and service %s is static and cannot be removed", assetID, serviceID), nil)
		}

		if subServiceID != nil {
			subLink, err := s.subLinks.Get(ctx, tx, assetID, *subServiceID)
			if err != nil && !domain.IsCode(err, domain.CodeNotFound) {
				return err
			}
			if subLink != nil {
				if subLink.IsStatic {
					return domain.NewError(domain.CodeForbidden, "AssetLinkingService.Unlink",
						fmt.Sprintf("link between asset %s and sub-service %s is static and cannot be removed", assetID, *subServiceID), nil)
				}
				if err := s.subLinks.DeleteByID(ctx, tx, subLink.ID); err != nil {
					return err
				}
			}
		}

		return s.links.DeleteByID(ctx, tx, link.ID)
	})
}

func (s *assetLinkingService) IsStatic(ctx context.Context, assetID, serviceID uuid.UUID, subServiceID *uuid.UUID) (bool, error) {
	tupleSub := uuid.Nil
	if subServiceID != nil {
		tupleSub = *subServiceID
	}

	link, err := s.links.Get(ctx, nil, assetID, serviceID, tupleSub)
	if domain.IsCode(err, domain.CodeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return link.IsStatic, nil
}

func (s *assetLinkingService) GetLinkedAssets(ctx context.Context, serviceID uuid.UUID, subServiceID *uuid.UUID) ([]*types.Asset, error) {
	var (
		ids []uuid.UUID
		err error
	)
	if subServiceID != nil {
		ids, err = s.subLinks.ListAssetIDsBySubService(ctx, nil, *subServiceID)
	} else {
		ids, err = s.links.ListAssetIDsByService(ctx, nil, serviceID)
	}
	if err != nil {
		return nil, err
	}
	return s.assets.GetByIDs(ctx, nil, ids)
}

func (s *assetLinkingService) GetAssetStaticLinks(ctx context.Context, assetID uuid.UUID) ([]StaticLinkDetail, error) {
	var rows []*types.ServiceAssetLink
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.assets.GetByID(gctx, nil, assetID)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.links.ListByAsset(gctx, nil, assetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	staticRows := make([]*types.ServiceAssetLink, 0, len(rows))
	serviceIDs := make([]uuid.UUID, 0, len(rows))
	subServiceIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if !row.IsStatic {
			continue
		}
		staticRows = append(staticRows, row)
		serviceIDs = append(serviceIDs, row.ServiceID)
		if row.SubServiceID != uuid.Nil {
			subServiceIDs = append(subServiceIDs, row.SubServiceID)
		}
	}

	serviceRows, err := s.services.GetByIDs(ctx, nil, serviceIDs)
	if err != nil {
		return nil, err
	}
	subRows, err := s.subServices.GetByIDs(ctx, nil, subServiceIDs)
	if err != nil {
		return nil, err
	}
	serviceNames := make(map[uuid.UUID]string, len(serviceRows))
	for _, row := range serviceRows {
		serviceNames[row.ID] = row.Name
	}
	subNames := make(map[uuid.UUID]string, len(subRows))
	for _, row := range subRows {
		subNames[row.ID] = row.Name
	}

	details := make([]StaticLinkDetail, 0, len(staticRows))
	for _, row := range staticRows {
		detail := StaticLinkDetail{
			ServiceID:   row.ServiceID,
			ServiceName: serviceNames[row.ServiceID],
			CreatedAt:   row.CreatedAt,
		}
		if row.SubServiceID != uuid.Nil {
			sub := row.SubServiceID
			detail.SubServiceID = &sub
			detail.SubServiceName = subNames[sub]
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *assetLinkingService) CountLinkedAssets(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	return s.links.CountDistinctAssets(ctx, nil, serviceID)
}

func derefOrNil(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
