package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

// ValidStatus reports whether s is one of the supported attendance values.
func ValidStatus(s string) bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// One row per (student, day, subject); writes are upserts on that key so a
// re-mark replaces the earlier status instead of stacking a second record.
// Subject is normalized to "" for day-level marks so the unique index applies.
type AttendanceModel struct {
	AttendanceID        uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`
	AttendanceStudentID uuid.UUID `gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendance_day" json:"attendance_student_id"`
	AttendanceDate      time.Time `gorm:"column:attendance_date;not null;uniqueIndex:uq_attendance_day" json:"attendance_date"`
	AttendanceSubject   string    `gorm:"column:attendance_subject;type:varchar(60);not null;default:'';uniqueIndex:uq_attendance_day" json:"attendance_subject,omitempty"`

	AttendanceStatus   string    `gorm:"column:attendance_status;type:varchar(10);not null" json:"attendance_status"`
	AttendanceRemarks  string    `gorm:"column:attendance_remarks;type:text" json:"attendance_remarks,omitempty"`
	AttendanceMarkedBy uuid.UUID `gorm:"column:attendance_marked_by;type:uuid" json:"attendance_marked_by"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;not null;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;not null;autoUpdateTime" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
