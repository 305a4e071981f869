package types

import (
	"time"

	"github.com/google/uuid"
)

// ServiceAssetLink associates an asset with a service. A static row can
// never be deleted; upserts may upgrade is_static but never downgrade it.
//
// SubServiceID is uuid.Nil for a service-wide link. It stays non-null so the
// tuple unique index covers it without NULL-distinct surprises.
type ServiceAssetLink struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssetID      uuid.UUID `gorm:"type:uuid;column:asset_id;not null;uniqueIndex:idx_service_asset_link_tuple,priority:1;index" json:"asset_id"`
	Asset        *Asset    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	ServiceID    uuid.UUID `gorm:"type:uuid;column:service_id;not null;uniqueIndex:idx_service_asset_link_tuple,priority:2;index" json:"service_id"`
	Service      *Service  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ServiceID;references:ID" json:"service,omitempty"`
	SubServiceID uuid.UUID `gorm:"type:uuid;column:sub_service_id;not null;default:'00000000-0000-0000-0000-000000000000';uniqueIndex:idx_service_asset_link_tuple,priority:3" json:"sub_service_id"`
	IsStatic     bool      `gorm:"column:is_static;not null;default:false;index" json:"is_static"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ServiceAssetLink) TableName() string { return "service_asset_link" }
