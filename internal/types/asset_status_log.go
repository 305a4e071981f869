package types

import (
	"time"

	"github.com/google/uuid"
)

// AssetStatusLog is one append-only audit row; rows are never updated or
// deleted.
type AssetStatusLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssetID   uuid.UUID  `gorm:"type:uuid;column:asset_id;not null;index:idx_asset_status_log_asset" json:"asset_id"`
	Asset     *Asset     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	FieldName string     `gorm:"column:field_name;not null" json:"field_name"` // qc_status|workflow_stage|linking_active
	NewValue  string     `gorm:"column:new_value;not null" json:"new_value"`
	ChangedBy *uuid.UUID `gorm:"type:uuid;column:changed_by" json:"changed_by,omitempty"`
	ChangedAt time.Time  `gorm:"column:changed_at;not null;default:now();index" json:"changed_at"`
}

func (AssetStatusLog) TableName() string { return "asset_status_log" }
