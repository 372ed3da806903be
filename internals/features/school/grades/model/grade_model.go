package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeModel struct {
	GradeID         uuid.UUID `gorm:"column:grade_id;type:uuid;primaryKey" json:"grade_id"`
	GradeStudentID  uuid.UUID `gorm:"column:grade_student_id;type:uuid;not null;uniqueIndex:uq_grades_tuple" json:"grade_student_id"`
	GradeSubject    string    `gorm:"column:grade_subject;type:varchar(60);not null;uniqueIndex:uq_grades_tuple" json:"grade_subject"`
	GradeSchoolYear string    `gorm:"column:grade_school_year;type:varchar(20);not null;uniqueIndex:uq_grades_tuple" json:"grade_school_year"`

	GradeQuarter1 *float64 `gorm:"column:grade_quarter1" json:"grade_quarter1,omitempty"`
	GradeQuarter2 *float64 `gorm:"column:grade_quarter2" json:"grade_quarter2,omitempty"`
	GradeQuarter3 *float64 `gorm:"column:grade_quarter3" json:"grade_quarter3,omitempty"`
	GradeQuarter4 *float64 `gorm:"column:grade_quarter4" json:"grade_quarter4,omitempty"`
	GradeFinal    *float64 `gorm:"column:grade_final" json:"grade_final,omitempty"`

	GradeCreatedBy uuid.UUID `gorm:"column:grade_created_by;type:uuid" json:"grade_created_by"`

	GradeCreatedAt time.Time `gorm:"column:grade_created_at;not null;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt time.Time `gorm:"column:grade_updated_at;not null;autoUpdateTime" json:"grade_updated_at"`
}

func (GradeModel) TableName() string { return "grades" }

func (m *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeID == uuid.Nil {
		m.GradeID = uuid.New()
	}
	return nil
}
