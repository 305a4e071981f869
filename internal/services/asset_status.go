package services

import (
	"context"
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

// QCStatusSection is the quality-review slice of the status view.
type QCStatusSection struct {
	domain.Presentation
	Remarks    *string    `json:"remarks,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// StatusView assembles the three status axes, their presentation metadata,
// and the derived readiness. Readiness is computed fresh on every call and
// never stored.
type StatusView struct {
	AssetID             uuid.UUID            `json:"assetId"`
	QCStatus            QCStatusSection      `json:"qcStatus"`
	WorkflowStatus      domain.Presentation  `json:"workflowStatus"`
	LinkingStatus       domain.Presentation  `json:"linkingStatus"`
	OverallStatus       domain.Readiness     `json:"overallStatus"`
	StaticServiceLinks  []domain.StaticLink  `json:"staticServiceLinks"`
	LinkedServiceIDs    []uuid.UUID          `json:"linkedServiceIds"`
	LinkedSubServiceIDs []uuid.UUID          `json:"linkedSubServiceIds"`
	SubmittedAt         *time.Time           `json:"submittedAt,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
}

// AssetStatusService is the transition engine: it owns every mutation of the
// three status axes and the audit trail they produce.
type AssetStatusService interface {
	GetStatus(ctx context.Context, assetID uuid.UUID) (*StatusView, error)
	UpdateQCStatus(ctx context.Context, assetID uuid.UUID, qcStatus string, qcRemarks *string) (*StatusView, error)
	UpdateWorkflowStage(ctx context.Context, assetID uuid.UUID, workflowStage string) (*StatusView, error)
	UpdateLinkingStatus(ctx context.Context, assetID uuid.UUID, linkingActive bool) (*StatusView, error)
	GetStatusHistory(ctx context.Context, assetID uuid.UUID, limit int) ([]*types.AssetStatusLog, error)
}

type assetStatusService struct {
	db       *gorm.DB
	log      *logger.Logger
	assets   repos.AssetRepo
	links    repos.ServiceAssetLinkRepo
	subLinks repos.SubServiceAssetLinkRepo
	audit    AuditService
}

func NewAssetStatusService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assets repos.AssetRepo,
	links repos.ServiceAssetLinkRepo,
	subLinks repos.SubServiceAssetLinkRepo,
	audit AuditService,
) AssetStatusService {
	return &assetStatusService{
		db:       db,
		log:      baseLog.With("service", "AssetStatusService"),
		assets:   assets,
		links:    links,
		subLinks: subLinks,
		audit:    audit,
	}
}

func (s *assetStatusService) GetStatus(ctx context.Context, assetID uuid.UUID) (*StatusView, error) {
	var (
		asset    *types.Asset
		links    []*types.ServiceAssetLink
		subLinks []*types.SubServiceAssetLink
	)

	// Independent reads, so fan them out.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		asset, err = s.assets.GetByID(gctx, nil, assetID)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = s.links.ListByAsset(gctx, nil, assetID)
		return err
	})
	g.Go(func() error {
		var err error
		subLinks, err = s.subLinks.ListByAsset(gctx, nil, assetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.buildStatusView(asset, links, subLinks)
}

func (s *assetStatusService) buildStatusView(asset *types.Asset, links []*types.ServiceAssetLink, subLinks []*types.SubServiceAssetLink) (*StatusView, error) {
	staticLinks, err := domain.DecodeStaticLinks(asset.StaticServiceLinks)
	if err != nil {
		return nil, err
	}

	hasStatic := len(staticLinks) > 0
	linkedServices := make([]uuid.UUID, 0, len(links))
	seenServices := map[uuid.UUID]bool{}
	for _, l := range links {
		if l.IsStatic {
			hasStatic = true
		}
		if !seenServices[l.ServiceID] {
			seenServices[l.ServiceID] = true
			linkedServices = append(linkedServices, l.ServiceID)
		}
	}
	linkedSubServices := make([]uuid.UUID, 0, len(subLinks))
	seenSubs := map[uuid.UUID]bool{}
	for _, l := range subLinks {
		if !seenSubs[l.SubServiceID] {
			seenSubs[l.SubServiceID] = true
			linkedSubServices = append(linkedSubServices, l.SubServiceID)
		}
	}

	qc := domain.QCStatus(asset.QCStatus)
	stage := domain.WorkflowStage(asset.WorkflowStage)
	readiness := domain.ComputeReadiness(domain.ReadinessInput{
		QCStatus:       qc,
		WorkflowStage:  stage,
		LinkingActive:  asset.LinkingActive,
		HasStaticLinks: hasStatic,
	})

	return &StatusView{
		AssetID: asset.ID,
		QCStatus: QCStatusSection{
			Presentation: domain.QCPresentation(qc),
			Remarks:      asset.QCRemarks,
			ReviewedAt:   asset.QCReviewedAt,
		},
		WorkflowStatus:      domain.StagePresentation(stage),
		LinkingStatus:       domain.LinkingPresentation(asset.LinkingActive),
		OverallStatus:       readiness,
		StaticServiceLinks:  staticLinks,
		LinkedServiceIDs:    linkedServices,
		LinkedSubServiceIDs: linkedSubServices,
		SubmittedAt:         asset.SubmittedAt,
		CreatedAt:           asset.CreatedAt,
	}, nil
}

func (s *assetStatusService) UpdateQCStatus(ctx context.Context, assetID uuid.UUID, qcStatus string, qcRemarks *string) (*StatusView, error) {
	status, err := domain.ParseQCStatus(qcStatus)
	if err != nil {
		return nil, err
	}

	changedBy := requestdata.ActorID(ctx)
	var auditRows []*types.AssetStatusLog

	err = s.db.Transaction(func(tx *gorm.DB) error {
		asset, err := s.assets.GetByIDForUpdate(ctx, tx, assetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"qc_status":      string(status),
			"qc_reviewed_at": now,
			"updated_at":     now,
		}
		if qcRemarks != nil {
			updates["qc_remarks"] = *qcRemarks
		}
		auditRows = append(auditRows, &types.AssetStatusLog{
			AssetID:   asset.ID,
			FieldName: domain.FieldQCStatus,
			NewValue:  string(status),
			ChangedBy: changedBy,
			ChangedAt: now,
		})

		// A QC pass is the precondition for becoming linkable; no other
		// status change activates linking implicitly.
		if status == domain.QCPass {
			updates["linking_active"] = true
			auditRows = append(auditRows, &types.AssetStatusLog{
				AssetID:   asset.ID,
				FieldName: domain.FieldLinkingActive,
				NewValue:  "true",
				ChangedBy: changedBy,
				ChangedAt: now,
			})
		}

		return s.assets.UpdateFields(ctx, tx, asset.ID, updates)
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, auditRows)
	return s.GetStatus(ctx, assetID)
}

func (s *assetStatusService) UpdateWorkflowStage(ctx context.Context, assetID uuid.UUID, workflowStage string) (*StatusView, error) {
	stage, err := domain.ParseWorkflowStage(workflowStage)
	if err != nil {
		return nil, err
	}

	changedBy := requestdata.ActorID(ctx)
	var auditRows []*types.AssetStatusLog

	// Stages are accepted in any order; the pipeline has never enforced
	// monotonic movement and callers rely on being able to pull an asset
	// back.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		asset, err := s.assets.GetByIDForUpdate(ctx, tx, assetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"workflow_stage": string(stage),
			"updated_at":     now,
		}
		if stage == domain.StageSubmit && asset.SubmittedAt == nil {
			updates["submitted_at"] = now
		}
		auditRows = append(auditRows, &types.AssetStatusLog{
			AssetID:   asset.ID,
			FieldName: domain.FieldWorkflowStage,
			NewValue:  string(stage),
			ChangedBy: changedBy,
			ChangedAt: now,
		})

		return s.assets.UpdateFields(ctx, tx, asset.ID, updates)
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, auditRows)
	return s.GetStatus(ctx, assetID)
}

func (s *assetStatusService) UpdateLinkingStatus(ctx context.Context, assetID uuid.UUID, linkingActive bool) (*StatusView, error) {
	changedBy := requestdata.ActorID(ctx)
	var auditRows []*types.AssetStatusLog

	err := s.db.Transaction(func(tx *gorm.DB) error {
		asset, err := s.assets.GetByIDForUpdate(ctx, tx, assetID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		newValue := "false"
		if linkingActive {
			newValue = "true"
		}
		auditRows = append(auditRows, &types.AssetStatusLog{
			AssetID:   asset.ID,
			FieldName: domain.FieldLinkingActive,
			NewValue:  newValue,
			ChangedBy: changedBy,
			ChangedAt: now,
		})

		return s.assets.UpdateFields(ctx, tx, asset.ID, map[string]interface{}{
			"linking_active": linkingActive,
			"updated_at":     now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, auditRows)
	return s.GetStatus(ctx, assetID)
}

func (s *assetStatusService) GetStatusHistory(ctx context.Context, assetID uuid.UUID, limit int) ([]*types.AssetStatusLog, error) {
	if _, err := s.assets.GetByID(ctx, nil, assetID); err != nil {
		return nil, err
	}
	return s.audit.History(ctx, assetID, limit)
}

// appendAudit runs after the mutation transaction commits: a rolled-back
// mutation leaves no trail, and a failed append never undoes a committed
// mutation. ChangedAt is captured under the asset row lock, so history order
// matches mutation order.
func (s *assetStatusService) appendAudit(ctx context.Context, rows []*types.AssetStatusLog) {
	for _, row := range rows {
		s.audit.Append(ctx, nil, row)
	}
}
