package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID         uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey" json:"class_id"`
	ClassGradeLevel string    `gorm:"column:class_grade_level;type:varchar(20);not null;uniqueIndex:uq_classes_tuple" json:"class_grade_level"`
	ClassSection    string    `gorm:"column:class_section;type:varchar(20);not null;uniqueIndex:uq_classes_tuple" json:"class_section"`
	ClassSchoolYear string    `gorm:"column:class_school_year;type:varchar(20);not null;uniqueIndex:uq_classes_tuple" json:"class_school_year"`

	ClassCreatedAt time.Time `gorm:"column:class_created_at;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;not null;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

// ClassName is the derived display name (grade level + section).
func (m *ClassModel) ClassName() string {
	return m.ClassGradeLevel + m.ClassSection
}

// ClassTeacherModel is one {teacher, subject} assignment on a class.
type ClassTeacherModel struct {
	ClassTeacherID      uuid.UUID `gorm:"column:class_teacher_id;type:uuid;primaryKey" json:"class_teacher_id"`
	ClassTeacherClassID uuid.UUID `gorm:"column:class_teacher_class_id;type:uuid;not null;uniqueIndex:uq_class_teachers" json:"class_teacher_class_id"`
	ClassTeacherStaffID uuid.UUID `gorm:"column:class_teacher_staff_id;type:uuid;not null;uniqueIndex:uq_class_teachers" json:"class_teacher_staff_id"`
	ClassTeacherSubject string    `gorm:"column:class_teacher_subject;type:varchar(60);not null;uniqueIndex:uq_class_teachers" json:"class_teacher_subject"`

	ClassTeacherCreatedAt time.Time `gorm:"column:class_teacher_created_at;not null;autoCreateTime" json:"class_teacher_created_at"`
}

func (ClassTeacherModel) TableName() string { return "class_teachers" }

func (m *ClassTeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassTeacherID == uuid.Nil {
		m.ClassTeacherID = uuid.New()
	}
	return nil
}
