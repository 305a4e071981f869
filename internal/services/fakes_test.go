package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/domain"
	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/requestdata"
	"github.com/velmark/marketops-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

// newTestDB only provides transaction plumbing; all reads and writes go
// through the fakes below.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func authedContext(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func notFound(op string) error {
	return domain.NewError(domain.CodeNotFound, op, "record not found", nil)
}

type fakeAssetRepo struct {
	assets      map[uuid.UUID]*types.Asset
	updateCalls int
	lockCalls   int
}

func newFakeAssetRepo(assets ...*types.Asset) *fakeAssetRepo {
	m := map[uuid.UUID]*types.Asset{}
	for _, a := range assets {
		m[a.ID] = a
	}
	return &fakeAssetRepo{assets: m}
}

func (f *fakeAssetRepo) Create(ctx context.Context, tx *gorm.DB, asset *types.Asset) (*types.Asset, error) {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	f.assets[asset.ID] = asset
	return asset, nil
}

func (f *fakeAssetRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Asset, error) {
	if a, ok := f.assets[id]; ok {
		return a, nil
	}
	return nil, notFound("fakeAssetRepo.GetByID")
}

func (f *fakeAssetRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Asset, error) {
	f.lockCalls++
	return f.GetByID(ctx, tx, id)
}

func (f *fakeAssetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Asset, error) {
	out := make([]*types.Asset, 0, len(ids))
	for _, id := range ids {
		if a, ok := f.assets[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssetRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Asset, error) {
	out := make([]*types.Asset, 0, len(f.assets))
	for _, a := range f.assets {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAssetRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	asset, ok := f.assets[id]
	if !ok {
		return notFound("fakeAssetRepo.UpdateFields")
	}
	f.updateCalls++
	for field, value := range updates {
		switch field {
		case "qc_status":
			asset.QCStatus = value.(string)
		case "qc_remarks":
			v := value.(string)
			asset.QCRemarks = &v
		case "qc_reviewed_at":
			v := value.(time.Time)
			asset.QCReviewedAt = &v
		case "workflow_stage":
			asset.WorkflowStage = value.(string)
		case "submitted_at":
			v := value.(time.Time)
			asset.SubmittedAt = &v
		case "linking_active":
			asset.LinkingActive = value.(bool)
		case "static_service_links":
			asset.StaticServiceLinks = value.(datatypes.JSON)
		case "updated_at":
			asset.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func (f *fakeAssetRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	_, ok := f.assets[id]
	return ok, nil
}

type linkKey struct {
	assetID      uuid.UUID
	serviceID    uuid.UUID
	subServiceID uuid.UUID
}

type fakeServiceLinkRepo struct {
	rows        map[linkKey]*types.ServiceAssetLink
	upsertErr   error
	upsertCalls int
}

func newFakeServiceLinkRepo() *fakeServiceLinkRepo {
	return &fakeServiceLinkRepo{rows: map[linkKey]*types.ServiceAssetLink{}}
}

func (f *fakeServiceLinkRepo) Get(ctx context.Context, tx *gorm.DB, assetID, serviceID, subServiceID uuid.UUID) (*types.ServiceAssetLink, error) {
	if row, ok := f.rows[linkKey{assetID, serviceID, subServiceID}]; ok {
		return row, nil
	}
	return nil, notFound("fakeServiceLinkRepo.Get")
}

func (f *fakeServiceLinkRepo) UpsertStatic(ctx context.Context, tx *gorm.DB, link *types.ServiceAssetLink) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := linkKey{link.AssetID, link.ServiceID, link.SubServiceID}
	if existing, ok := f.rows[key]; ok {
		existing.IsStatic = true
		return nil
	}
	link.ID = uuid.New()
	link.IsStatic = true
	f.rows[key] = link
	return nil
}

func (f *fakeServiceLinkRepo) CreateDynamic(ctx context.Context, tx *gorm.DB, link *types.ServiceAssetLink) error {
	key := linkKey{link.AssetID, link.ServiceID, link.SubServiceID}
	if _, ok := f.rows[key]; ok {
		return nil
	}
	link.ID = uuid.New()
	f.rows[key] = link
	return nil
}

func (f *fakeServiceLinkRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	for key, row := range f.rows {
		if row.ID == id {
			delete(f.rows, key)
			return nil
		}
	}
	return notFound("fakeServiceLinkRepo.DeleteByID")
}

func (f *fakeServiceLinkRepo) ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.ServiceAssetLink, error) {
	var out []*types.ServiceAssetLink
	for _, row := range f.rows {
		if row.AssetID == assetID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeServiceLinkRepo) ListAssetIDsByService(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, row := range f.rows {
		if row.ServiceID == serviceID && !seen[row.AssetID] {
			seen[row.AssetID] = true
			out = append(out, row.AssetID)
		}
	}
	return out, nil
}

func (f *fakeServiceLinkRepo) CountDistinctAssets(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) (int64, error) {
	ids, _ := f.ListAssetIDsByService(ctx, tx, serviceID)
	return int64(len(ids)), nil
}

type subLinkKey struct {
	assetID      uuid.UUID
	subServiceID uuid.UUID
}

type fakeSubServiceLinkRepo struct {
	rows map[subLinkKey]*types.SubServiceAssetLink
}

func newFakeSubServiceLinkRepo() *fakeSubServiceLinkRepo {
	return &fakeSubServiceLinkRepo{rows: map[subLinkKey]*types.SubServiceAssetLink{}}
}

func (f *fakeSubServiceLinkRepo) Get(ctx context.Context, tx *gorm.DB, assetID, subServiceID uuid.UUID) (*types.SubServiceAssetLink, error) {
	if row, ok := f.rows[subLinkKey{assetID, subServiceID}]; ok {
		return row, nil
	}
	return nil, notFound("fakeSubServiceLinkRepo.Get")
}

func (f *fakeSubServiceLinkRepo) UpsertStatic(ctx context.Context, tx *gorm.DB, link *types.SubServiceAssetLink) error {
	key := subLinkKey{link.AssetID, link.SubServiceID}
	if existing, ok := f.rows[key]; ok {
		existing.IsStatic = true
		return nil
	}
	link.ID = uuid.New()
	link.IsStatic = true
	f.rows[key] = link
	return nil
}

func (f *fakeSubServiceLinkRepo) CreateDynamic(ctx context.Context, tx *gorm.DB, link *types.SubServiceAssetLink) error {
	key := subLinkKey{link.AssetID, link.SubServiceID}
	if _, ok := f.rows[key]; ok {
		return nil
	}
	link.ID = uuid.New()
	f.rows[key] = link
	return nil
}

func (f *fakeSubServiceLinkRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	for key, row := range f.rows {
		if row.ID == id {
			delete(f.rows, key)
			return nil
		}
	}
	return notFound("fakeSubServiceLinkRepo.DeleteByID")
}

func (f *fakeSubServiceLinkRepo) ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID) ([]*types.SubServiceAssetLink, error) {
	var out []*types.SubServiceAssetLink
	for _, row := range f.rows {
		if row.AssetID == assetID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSubServiceLinkRepo) ListAssetIDsBySubService(ctx context.Context, tx *gorm.DB, subServiceID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, row := range f.rows {
		if row.SubServiceID == subServiceID && !seen[row.AssetID] {
			seen[row.AssetID] = true
			out = append(out, row.AssetID)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*types.Service
}

func newFakeServiceRepo(services ...*types.Service) *fakeServiceRepo {
	m := map[uuid.UUID]*types.Service{}
	for _, s := range services {
		m[s.ID] = s
	}
	return &fakeServiceRepo{services: m}
}

func (f *fakeServiceRepo) UpsertByName(ctx context.Context, tx *gorm.DB, service *types.Service) (*types.Service, error) {
	for _, existing := range f.services {
		if existing.Name == service.Name {
			existing.Description = service.Description
			return existing, nil
		}
	}
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	f.services[service.ID] = service
	return service, nil
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, notFound("fakeServiceRepo.GetByID")
}

func (f *fakeServiceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Service, error) {
	out := make([]*types.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Service, error) {
	for _, s := range f.services {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, notFound("fakeServiceRepo.GetByName")
}

func (f *fakeServiceRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Service, error) {
	out := make([]*types.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServiceRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	_, ok := f.services[id]
	return ok, nil
}

type fakeSubServiceRepo struct {
	subs map[uuid.UUID]*types.SubService
}

func newFakeSubServiceRepo(subs ...*types.SubService) *fakeSubServiceRepo {
	m := map[uuid.UUID]*types.SubService{}
	for _, s := range subs {
		m[s.ID] = s
	}
	return &fakeSubServiceRepo{subs: m}
}

func (f *fakeSubServiceRepo) UpsertByServiceAndName(ctx context.Context, tx *gorm.DB, sub *types.SubService) (*types.SubService, error) {
	for _, existing := range f.subs {
		if existing.ServiceID == sub.ServiceID && existing.Name == sub.Name {
			return existing, nil
		}
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	f.subs[sub.ID] = sub
	return sub, nil
}

func (f *fakeSubServiceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SubService, error) {
	if s, ok := f.subs[id]; ok {
		return s, nil
	}
	return nil, notFound("fakeSubServiceRepo.GetByID")
}

func (f *fakeSubServiceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SubService, error) {
	out := make([]*types.SubService, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.subs[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubServiceRepo) ListByService(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) ([]*types.SubService, error) {
	var out []*types.SubService
	for _, s := range f.subs {
		if s.ServiceID == serviceID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubServiceRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	_, ok := f.subs[id]
	return ok, nil
}

type fakeStatusLogRepo struct {
	rows      []*types.AssetStatusLog
	appendErr error
}

func (f *fakeStatusLogRepo) Append(ctx context.Context, tx *gorm.DB, record *types.AssetStatusLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, record)
	return nil
}

func (f *fakeStatusLogRepo) ListByAsset(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, limit int) ([]*types.AssetStatusLog, error) {
	var out []*types.AssetStatusLog
	for _, row := range f.rows {
		if row.AssetID == assetID {
			out = append(out, row)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, notFound("fakeUserRepo.GetByID")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, notFound("fakeUserRepo.GetByEmail")
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, tx, email)
	if err == nil {
		return true, nil
	}
	if domain.IsCode(err, domain.CodeNotFound) {
		return false, nil
	}
	return false, err
}

func newPendingAsset(createdBy uuid.UUID) *types.Asset {
	links, err := domain.EncodeStaticLinks(nil)
	if err != nil {
		panic(fmt.Sprintf("encode empty links: %v", err))
	}
	return &types.Asset{
		ID:                 uuid.New(),
		Name:               "spring banner",
		Kind:               "banner",
		QCStatus:           string(domain.QCPending),
		WorkflowStage:      string(domain.StageAdd),
		LinkingActive:      false,
		StaticServiceLinks: links,
		CreatedBy:          createdBy,
	}
}
