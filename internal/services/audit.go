package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/repos"
	"github.com/velmark/marketops-backend/internal/types"
)

// AuditService records status mutations. Append is best-effort: a failed
// write is logged and swallowed so it never masks the mutation that
// triggered it.
type AuditService interface {
	Append(ctx context.Context, tx *gorm.DB, record *types.AssetStatusLog)
	History(ctx context.Context, assetID uuid.UUID, limit int) ([]*types.AssetStatusLog, error)
}

type auditService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.AssetStatusLogRepo
}

func NewAuditService(db *gorm.DB, baseLog *logger.Logger, repo repos.AssetStatusLogRepo) AuditService {
	return &auditService{
		db:   db,
		log:  baseLog.With("service", "AuditService"),
		repo: repo,
	}
}

func (s *auditService) Append(ctx context.Context, tx *gorm.DB, record *types.AssetStatusLog) {
	if record == nil {
		return
	}
	if err := s.repo.Append(ctx, tx, record); err != nil {
		s.log.Warn("status log append failed",
			"asset_id", record.AssetID,
			"field_name", record.FieldName,
			"new_value", record.NewValue,
			"error", err,
		)
	}
}

func (s *auditService) History(ctx context.Context, assetID uuid.UUID, limit int) ([]*types.AssetStatusLog, error) {
	return s.repo.ListByAsset(ctx, nil, assetID, limit)
}
