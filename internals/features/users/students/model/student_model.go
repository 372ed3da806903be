package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID         uuid.UUID  `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentName       string     `gorm:"column:student_name;type:varchar(100);not null" json:"student_name"`
	StudentEmail      string     `gorm:"column:student_email;type:varchar(120);not null;uniqueIndex" json:"student_email"`
	StudentIDNumber   string     `gorm:"column:student_id_number;type:varchar(40);not null;uniqueIndex" json:"student_id_number"`
	StudentPassword   string     `gorm:"column:student_password;type:varchar(100);not null" json:"-"`
	StudentGradeLevel string     `gorm:"column:student_grade_level;type:varchar(20);not null" json:"student_grade_level"`
	StudentSection    string     `gorm:"column:student_section;type:varchar(20);not null" json:"student_section"`
	StudentClassID    *uuid.UUID `gorm:"column:student_class_id;type:uuid" json:"student_class_id,omitempty"`
	StudentContact    string     `gorm:"column:student_contact;type:varchar(40)" json:"student_contact,omitempty"`
	StudentAddress    string     `gorm:"column:student_address;type:text" json:"student_address,omitempty"`
	StudentAvatarURL  *string    `gorm:"column:student_avatar_url;type:text" json:"student_avatar_url,omitempty"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
