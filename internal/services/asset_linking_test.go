package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/velmark/marketops-backend/internal/domain"
	"github.com/velmark/marketops-backend/internal/types"
)

type linkingFixture struct {
	svc      AssetLinkingService
	assets   *fakeAssetRepo
	services *fakeServiceRepo
	subs     *fakeSubServiceRepo
	links    *fakeServiceLinkRepo
	subLinks *fakeSubServiceLinkRepo

	asset   *types.Asset
	service *types.Service
	sub     *types.SubService
}

func newLinkingFixture(t *testing.T) *linkingFixture {
	t.Helper()
	log := newTestLogger(t)
	db := newTestDB(t)

	asset := newPendingAsset(uuid.New())
	service := &types.Service{ID: uuid.New(), Name: "Email Campaigns"}
	sub := &types.SubService{ID: uuid.New(), ServiceID: service.ID, Name: "Newsletters"}

	assets := newFakeAssetRepo(asset)
	services := newFakeServiceRepo(service)
	subs := newFakeSubServiceRepo(sub)
	links := newFakeServiceLinkRepo()
	subLinks := newFakeSubServiceLinkRepo()

	return &linkingFixture{
		svc:      NewAssetLinkingService(db, log, assets, services, subs, links, subLinks),
		assets:   assets,
		services: services,
		subs:     subs,
		links:    links,
		subLinks: subLinks,
		asset:    asset,
		service:  service,
		sub:      sub,
	}
}

func TestLinkStaticCreatesPermanentLink(t *testing.T) {
	fx := newLinkingFixture(t)

	link, err := fx.svc.LinkStatic(context.Background(), fx.asset.ID, fx.service.ID, nil)
	if err != nil {
		t.Fatalf("LinkStatic: %v", err)
	}
	if !link.IsStatic {
		t.Fatalf("link must be static")
	}

	staticLinks, err := domain.DecodeStaticLinks(fx.asset.StaticServiceLinks)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(staticLinks) != 1 || staticLinks[0].ServiceID != fx.service.ID {
		t.Fatalf("asset descriptor list: got %+v", staticLinks)
	}
}

func TestLinkStaticIsIdempotent(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("first LinkStatic: %v", err)
	}
	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("second LinkStatic: %v", err)
	}

	if len(fx.links.rows) != 1 {
		t.Fatalf("link rows: want=1 got=%d", len(fx.links.rows))
	}
	staticLinks, _ := domain.DecodeStaticLinks(fx.asset.StaticServiceLinks)
	if len(staticLinks) != 1 {
		t.Fatalf("descriptor list must not grow on repeat, got %d", len(staticLinks))
	}
}

func TestLinkStaticAbsorbsTupleConflict(t *testing.T) {
	fx := newLinkingFixture(t)
	fx.links.rows[linkKey{fx.asset.ID, fx.service.ID, uuid.Nil}] = &types.ServiceAssetLink{
		ID:        uuid.New(),
		AssetID:   fx.asset.ID,
		ServiceID: fx.service.ID,
		IsStatic:  true,
	}
	fx.links.upsertErr = domain.NewError(domain.CodeConflict, "fake", "duplicate tuple", nil)

	link, err := fx.svc.LinkStatic(context.Background(), fx.asset.ID, fx.service.ID, nil)
	if err != nil {
		t.Fatalf("conflict must resolve as idempotent success: %v", err)
	}
	if !link.IsStatic {
		t.Fatalf("surviving row must be static")
	}
}

func TestLinkStaticWithSubServiceWritesBothTables(t *testing.T) {
	fx := newLinkingFixture(t)

	link, err := fx.svc.LinkStatic(context.Background(), fx.asset.ID, fx.service.ID, &fx.sub.ID)
	if err != nil {
		t.Fatalf("LinkStatic: %v", err)
	}
	if link.SubServiceID != fx.sub.ID {
		t.Fatalf("tuple sub-service: want=%s got=%s", fx.sub.ID, link.SubServiceID)
	}

	subLink, err := fx.subLinks.Get(context.Background(), nil, fx.asset.ID, fx.sub.ID)
	if err != nil {
		t.Fatalf("sub link missing: %v", err)
	}
	if !subLink.IsStatic {
		t.Fatalf("sub link must be static")
	}
}

func TestLinkStaticUnknownEntities(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.LinkStatic(ctx, uuid.New(), fx.service.ID, nil); !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("unknown asset: want not_found, got %v", err)
	}
	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, uuid.New(), nil); !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("unknown service: want not_found, got %v", err)
	}
	unknownSub := uuid.New()
	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, fx.service.ID, &unknownSub); !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("unknown sub-service: want not_found, got %v", err)
	}
}

func TestLinkStaticSubServiceOfOtherService(t *testing.T) {
	fx := newLinkingFixture(t)
	other := &types.SubService{ID: uuid.New(), ServiceID: uuid.New(), Name: "Stray"}
	fx.subs.subs[other.ID] = other

	_, err := fx.svc.LinkStatic(context.Background(), fx.asset.ID, fx.service.ID, &other.ID)
	if !domain.IsCode(err, domain.CodeInvalidArgument) {
		t.Fatalf("want invalid_argument, got %v", err)
	}
}

func TestLinkDynamicLeavesDescriptorListAlone(t *testing.T) {
	fx := newLinkingFixture(t)

	link, err := fx.svc.LinkDynamic(context.Background(), fx.asset.ID, fx.service.ID, nil)
	if err != nil {
		t.Fatalf("LinkDynamic: %v", err)
	}
	if link.IsStatic {
		t.Fatalf("dynamic link must not be static")
	}
	staticLinks, _ := domain.DecodeStaticLinks(fx.asset.StaticServiceLinks)
	if len(staticLinks) != 0 {
		t.Fatalf("dynamic link must not touch the static descriptor list")
	}
}

func TestUnlinkStaticForbidden(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()
	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("LinkStatic: %v", err)
	}

	err := fx.svc.Unlink(ctx, fx.asset.ID, fx.service.ID, nil)
	if !domain.IsCode(err, domain.CodeForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}
	if len(fx.links.rows) != 1 {
		t.Fatalf("static row must survive, got %d rows", len(fx.links.rows))
	}
}

func TestUnlinkDynamicDeletesBothTables(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()
	if _, err := fx.svc.LinkDynamic(ctx, fx.asset.ID, fx.service.ID, &fx.sub.ID); err != nil {
		t.Fatalf("LinkDynamic: %v", err)
	}

	if err := fx.svc.Unlink(ctx, fx.asset.ID, fx.service.ID, &fx.sub.ID); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if len(fx.links.rows) != 0 {
		t.Fatalf("service link rows remain: %d", len(fx.links.rows))
	}
	if len(fx.subLinks.rows) != 0 {
		t.Fatalf("sub-service link rows remain: %d", len(fx.subLinks.rows))
	}
}

func TestUnlinkMissingLink(t *testing.T) {
	fx := newLinkingFixture(t)
	err := fx.svc.Unlink(context.Background(), fx.asset.ID, fx.service.ID, nil)
	if !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
}

func TestIsStaticAbsentLinkIsFalse(t *testing.T) {
	fx := newLinkingFixture(t)
	isStatic, err := fx.svc.IsStatic(context.Background(), fx.asset.ID, fx.service.ID, nil)
	if err != nil {
		t.Fatalf("IsStatic: %v", err)
	}
	if isStatic {
		t.Fatalf("absent link must report false")
	}
}

func TestIsStaticDistinguishesKinds(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()
	if _, err := fx.svc.LinkDynamic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("LinkDynamic: %v", err)
	}

	isStatic, err := fx.svc.IsStatic(ctx, fx.asset.ID, fx.service.ID, nil)
	if err != nil {
		t.Fatalf("IsStatic: %v", err)
	}
	if isStatic {
		t.Fatalf("dynamic link reported static")
	}

	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("LinkStatic: %v", err)
	}
	isStatic, err = fx.svc.IsStatic(ctx, fx.asset.ID, fx.service.ID, nil)
	if err != nil {
		t.Fatalf("IsStatic: %v", err)
	}
	if !isStatic {
		t.Fatalf("upgraded link must report static")
	}
}

func TestGetLinkedAssetsByServiceAndSubService(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()
	second := newPendingAsset(uuid.New())
	fx.assets.assets[second.ID] = second

	if _, err := fx.svc.LinkDynamic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("LinkDynamic: %v", err)
	}
	if _, err := fx.svc.LinkStatic(ctx, second.ID, fx.service.ID, &fx.sub.ID); err != nil {
		t.Fatalf("LinkStatic: %v", err)
	}

	all, err := fx.svc.GetLinkedAssets(ctx, fx.service.ID, nil)
	if err != nil {
		t.Fatalf("GetLinkedAssets: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("service-wide listing: want=2 got=%d", len(all))
	}

	scoped, err := fx.svc.GetLinkedAssets(ctx, fx.service.ID, &fx.sub.ID)
	if err != nil {
		t.Fatalf("GetLinkedAssets: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != second.ID {
		t.Fatalf("sub-service listing: got %d rows", len(scoped))
	}
}

func TestCountLinkedAssetsIsDistinct(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()
	if _, err := fx.svc.LinkDynamic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("LinkDynamic: %v", err)
	}
	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, fx.service.ID, &fx.sub.ID); err != nil {
		t.Fatalf("LinkStatic: %v", err)
	}

	count, err := fx.svc.CountLinkedAssets(ctx, fx.service.ID)
	if err != nil {
		t.Fatalf("CountLinkedAssets: %v", err)
	}
	if count != 1 {
		t.Fatalf("count: want=1 got=%d", count)
	}
}

func TestGetAssetStaticLinksJoinsCatalogNames(t *testing.T) {
	fx := newLinkingFixture(t)
	ctx := context.Background()
	if _, err := fx.svc.LinkStatic(ctx, fx.asset.ID, fx.service.ID, &fx.sub.ID); err != nil {
		t.Fatalf("LinkStatic: %v", err)
	}
	if _, err := fx.svc.LinkDynamic(ctx, fx.asset.ID, fx.service.ID, nil); err != nil {
		t.Fatalf("LinkDynamic: %v", err)
	}

	details, err := fx.svc.GetAssetStaticLinks(ctx, fx.asset.ID)
	if err != nil {
		t.Fatalf("GetAssetStaticLinks: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("static details: want=1 got=%d", len(details))
	}
	if details[0].ServiceName != "Email Campaigns" {
		t.Fatalf("service name: got %q", details[0].ServiceName)
	}
	if details[0].SubServiceName != "Newsletters" {
		t.Fatalf("sub-service name: got %q", details[0].SubServiceName)
	}
}

func TestGetAssetStaticLinksUnknownAsset(t *testing.T) {
	fx := newLinkingFixture(t)
	if _, err := fx.svc.GetAssetStaticLinks(context.Background(), uuid.New()); !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
}
