package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VisibilityStudents = "students"
	VisibilityStaff    = "staff"
	VisibilityAll      = "all"

	PriorityNormal    = "normal"
	PriorityImportant = "important"
	PriorityUrgent    = "urgent"
)

func ValidVisibility(v string) bool {
	switch v {
	case VisibilityStudents, VisibilityStaff, VisibilityAll:
		return true
	default:
		return false
	}
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityNormal, PriorityImportant, PriorityUrgent:
		return true
	default:
		return false
	}
}

type AnnouncementModel struct {
	AnnouncementID      uuid.UUID `gorm:"column:announcement_id;type:uuid;primaryKey" json:"announcement_id"`
	AnnouncementTitle   string    `gorm:"column:announcement_title;type:varchar(200);not null" json:"announcement_title"`
	AnnouncementContent string    `gorm:"column:announcement_content;type:text;not null" json:"announcement_content"`

	AnnouncementVisibility string `gorm:"column:announcement_visibility;type:varchar(10);not null;default:all" json:"announcement_visibility"`

	// NULL = global (all classes)
	AnnouncementClassID  *uuid.UUID `gorm:"column:announcement_class_id;type:uuid;index" json:"announcement_class_id,omitempty"`
	AnnouncementPriority string     `gorm:"column:announcement_priority;type:varchar(10);not null;default:normal" json:"announcement_priority"`

	AnnouncementCreatedBy uuid.UUID `gorm:"column:announcement_created_by;type:uuid" json:"announcement_created_by"`

	AnnouncementCreatedAt time.Time `gorm:"column:announcement_created_at;not null;autoCreateTime" json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time `gorm:"column:announcement_updated_at;not null;autoUpdateTime" json:"announcement_updated_at"`
}

func (AnnouncementModel) TableName() string { return "announcements" }

func (m *AnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnnouncementID == uuid.Nil {
		m.AnnouncementID = uuid.New()
	}
	return nil
}
