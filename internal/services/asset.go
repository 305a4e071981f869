package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/domain"
	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/repos"
	"github.com/velmark/marketops-backend/internal/requestdata"
	"github.com/velmark/marketops-backend/internal/types"
)

type CreateAssetInput struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	URL  string `json:"url,omitempty"`
}

// AssetService creates and reads assets. New assets always start as
// {Pending, Add, linking inactive}; the transition engine owns every later
// status change, and nothing in the system deletes an asset.
type AssetService interface {
	Create(ctx context.Context, input CreateAssetInput) (*types.Asset, error)
	Get(ctx context.Context, assetID uuid.UUID) (*types.Asset, error)
	List(ctx context.Context, limit int) ([]*types.Asset, error)
}

type assetService struct {
	db     *gorm.DB
	log    *logger.Logger
	assets repos.AssetRepo
}

func NewAssetService(db *gorm.DB, baseLog *logger.Logger, assets repos.AssetRepo) AssetService {
	return &assetService{
		db:     db,
		log:    baseLog.With("service", "AssetService"),
		assets: assets,
	}
}

func (s *assetService) Create(ctx context.Context, input CreateAssetInput) (*types.Asset, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "AssetService.Create", "asset name is required", nil)
	}
	kind := strings.TrimSpace(strings.ToLower(input.Kind))
	if kind == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "AssetService.Create", "asset kind is required", nil)
	}

	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, domain.NewError(domain.CodeInvalidArgument, "AssetService.Create", "not authenticated", nil)
	}

	emptyLinks, err := domain.EncodeStaticLinks(nil)
	if err != nil {
		return nil, err
	}

	asset := &types.Asset{
		Name:               name,
		Kind:               kind,
		URL:                strings.TrimSpace(input.URL),
		QCStatus:           string(domain.QCPending),
		WorkflowStage:      string(domain.StageAdd),
		LinkingActive:      false,
		StaticServiceLinks: emptyLinks,
		CreatedBy:          rd.UserID,
	}
	created, err := s.assets.Create(ctx, nil, asset)
	if err != nil {
		return nil, err
	}
	s.log.Info("asset created", "asset_id", created.ID, "kind", created.Kind, "created_by", created.CreatedBy)
	return created, nil
}

func (s *assetService) Get(ctx context.Context, assetID uuid.UUID) (*types.Asset, error) {
	return s.assets.GetByID(ctx, nil, assetID)
}

func (s *assetService) List(ctx context.Context, limit int) ([]*types.Asset, error) {
	return s.assets.List(ctx, nil, limit)
}
