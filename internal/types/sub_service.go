package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubService struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ServiceID uuid.UUID      `gorm:"type:uuid;column:service_id;not null;uniqueIndex:idx_sub_service_name,priority:1;index" json:"service_id"`
	Service   *Service       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ServiceID;references:ID" json:"service,omitempty"`
	Name      string         `gorm:"column:name;not null;uniqueIndex:idx_sub_service_name,priority:2" json:"name"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SubService) TableName() string { return "sub_service" }
