package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaterialTypeDocument   = "document"
	MaterialTypeVideo      = "video"
	MaterialTypeLink       = "link"
	MaterialTypeAssignment = "assignment"
)

func ValidType(t string) bool {
	switch t {
	case MaterialTypeDocument, MaterialTypeVideo, MaterialTypeLink, MaterialTypeAssignment:
		return true
	default:
		return false
	}
}

type MaterialModel struct {
	MaterialID      uuid.UUID `gorm:"column:material_id;type:uuid;primaryKey" json:"material_id"`
	MaterialClassID uuid.UUID `gorm:"column:material_class_id;type:uuid;not null;index" json:"material_class_id"`
	MaterialSubject string    `gorm:"column:material_subject;type:varchar(60);not null" json:"material_subject"`

	MaterialTitle       string `gorm:"column:material_title;type:varchar(200);not null" json:"material_title"`
	MaterialDescription string `gorm:"column:material_description;type:text" json:"material_description,omitempty"`
	MaterialType        string `gorm:"column:material_type;type:varchar(20);not null" json:"material_type"`

	MaterialFileURL  *string `gorm:"column:material_file_url;type:text" json:"material_file_url,omitempty"`
	MaterialFileName *string `gorm:"column:material_file_name;type:varchar(255)" json:"material_file_name,omitempty"`
	MaterialFileSize *int64  `gorm:"column:material_file_size" json:"material_file_size,omitempty"`
	MaterialLinkURL  *string `gorm:"column:material_link_url;type:text" json:"material_link_url,omitempty"`

	// only meaningful for assignment type
	MaterialDueDate *time.Time `gorm:"column:material_due_date" json:"material_due_date,omitempty"`

	MaterialCreatedBy uuid.UUID `gorm:"column:material_created_by;type:uuid" json:"material_created_by"`

	MaterialCreatedAt time.Time `gorm:"column:material_created_at;not null;autoCreateTime" json:"material_created_at"`
	MaterialUpdatedAt time.Time `gorm:"column:material_updated_at;not null;autoUpdateTime" json:"material_updated_at"`
}

func (MaterialModel) TableName() string { return "materials" }

func (m *MaterialModel) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialID == uuid.Nil {
		m.MaterialID = uuid.New()
	}
	return nil
}
