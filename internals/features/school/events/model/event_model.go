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
)

type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventTitle       string    `gorm:"column:event_title;type:varchar(200);not null" json:"event_title"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description,omitempty"`

	EventDate      time.Time `gorm:"column:event_date;not null;index" json:"event_date"`
	EventStartTime string    `gorm:"column:event_start_time;type:varchar(10)" json:"event_start_time,omitempty"`
	EventEndTime   string    `gorm:"column:event_end_time;type:varchar(10)" json:"event_end_time,omitempty"`
	EventLocation  string    `gorm:"column:event_location;type:varchar(200)" json:"event_location,omitempty"`

	EventVisibility string    `gorm:"column:event_visibility;type:varchar(10);not null;default:all" json:"event_visibility"`
	EventCreatedBy  uuid.UUID `gorm:"column:event_created_by;type:uuid" json:"event_created_by"`

	EventCreatedAt time.Time `gorm:"column:event_created_at;not null;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;not null;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string { return "events" }

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	return nil
}
