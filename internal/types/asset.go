package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Asset is a piece of marketing content moving through the review pipeline.
// Status fields are only ever mutated by the transition engine; the core
// never deletes an asset.
type Asset struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null" json:"name"`
	Kind string    `gorm:"column:kind;not null;index" json:"kind"` // image|video|copy|banner|document
	URL  string    `gorm:"column:url" json:"url,omitempty"`

	QCStatus     string     `gorm:"column:qc_status;not null;default:'Pending';index" json:"qc_status"`
	QCRemarks    *string    `gorm:"column:qc_remarks" json:"qc_remarks,omitempty"`
	QCReviewedAt *time.Time `gorm:"column:qc_reviewed_at" json:"qc_reviewed_at,omitempty"`

	WorkflowStage string     `gorm:"column:workflow_stage;not null;default:'Add';index" json:"workflow_stage"`
	SubmittedAt   *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`

	LinkingActive bool `gorm:"column:linking_active;not null;default:false;index" json:"linking_active"`

	// Serialized array of static link descriptors, append-only. Decoded only
	// through domain.DecodeStaticLinks at the storage edge.
	StaticServiceLinks datatypes.JSON `gorm:"column:static_service_links;type:jsonb" json:"static_service_links,omitempty"`

	CreatedBy uuid.UUID      `gorm:"type:uuid;column:created_by;not null;index" json:"created_by"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "asset" }
