package types

import (
	"time"

	"github.com/google/uuid"
)

// SubServiceAssetLink mirrors the sub-service half of a link created with a
// sub-service id. Same static invariant as ServiceAssetLink.
type SubServiceAssetLink struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssetID      uuid.UUID   `gorm:"type:uuid;column:asset_id;not null;uniqueIndex:idx_subservice_asset_link_tuple,priority:1;index" json:"asset_id"`
	Asset        *Asset      `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	SubServiceID uuid.UUID   `gorm:"type:uuid;column:sub_service_id;not null;uniqueIndex:idx_subservice_asset_link_tuple,priority:2;index" json:"sub_service_id"`
	SubService   *SubService `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubServiceID;references:ID" json:"sub_service,omitempty"`
	IsStatic     bool        `gorm:"column:is_static;not null;default:false;index" json:"is_static"`
	CreatedBy    uuid.UUID   `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (SubServiceAssetLink) TableName() string { return "subservice_asset_link" }
