package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusLate      = "late"
	SubmissionStatusGraded    = "graded"
)

// One submission per (material, student); resubmission updates the same row.
type SubmissionModel struct {
	SubmissionID         uuid.UUID `gorm:"column:submission_id;type:uuid;primaryKey" json:"submission_id"`
	SubmissionMaterialID uuid.UUID `gorm:"column:submission_material_id;type:uuid;not null;uniqueIndex:uq_submissions" json:"submission_material_id"`
	SubmissionStudentID  uuid.UUID `gorm:"column:submission_student_id;type:uuid;not null;uniqueIndex:uq_submissions" json:"submission_student_id"`

	SubmissionFileURL  string `gorm:"column:submission_file_url;type:text;not null" json:"submission_file_url"`
	SubmissionFileName string `gorm:"column:submission_file_name;type:varchar(255)" json:"submission_file_name,omitempty"`
	SubmissionFileSize int64  `gorm:"column:submission_file_size" json:"submission_file_size,omitempty"`
	SubmissionComments string `gorm:"column:submission_comments;type:text" json:"submission_comments,omitempty"`

	// late is decided once, at creation, against the material due date
	SubmissionStatus      string    `gorm:"column:submission_status;type:varchar(10);not null" json:"submission_status"`
	SubmissionSubmittedAt time.Time `gorm:"column:submission_submitted_at;not null" json:"submission_submitted_at"`

	SubmissionScore    *float64   `gorm:"column:submission_score" json:"submission_score,omitempty"`
	SubmissionFeedback string     `gorm:"column:submission_feedback;type:text" json:"submission_feedback,omitempty"`
	SubmissionGradedBy *uuid.UUID `gorm:"column:submission_graded_by;type:uuid" json:"submission_graded_by,omitempty"`
	SubmissionGradedAt *time.Time `gorm:"column:submission_graded_at" json:"submission_graded_at,omitempty"`

	SubmissionCreatedAt time.Time `gorm:"column:submission_created_at;not null;autoCreateTime" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"column:submission_updated_at;not null;autoUpdateTime" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string { return "submissions" }

func (m *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	return nil
}
