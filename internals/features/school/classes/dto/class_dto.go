package dto

import (
	"time"

	"github.com/google/uuid"

	classModel "schoolsync_backend/internals/features/school/classes/model"
	"schoolsync_backend/internals/features/school/classes/service"
)

/* ===================== REQUESTS ===================== */

type TeacherAssignmentRequest struct {
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
	Subject   string    `json:"subject" validate:"required,min=1,max=60"`
}

type CreateClassRequest struct {
	ClassGradeLevel string                     `json:"class_grade_level" validate:"required,min=1,max=20"`
	ClassSection    string                     `json:"class_section" validate:"required,min=1,max=20"`
	ClassSchoolYear string                     `json:"class_school_year" validate:"required,min=4,max=20"`
	Teachers        []TeacherAssignmentRequest `json:"teachers" validate:"omitempty,dive"`
	StudentIDs      []uuid.UUID                `json:"student_ids" validate:"omitempty"`
}

func (r CreateClassRequest) ToModel() *classModel.ClassModel {
	return &classModel.ClassModel{
		ClassGradeLevel: r.ClassGradeLevel,
		ClassSection:    r.ClassSection,
		ClassSchoolYear: r.ClassSchoolYear,
	}
}

// Update: nil slice = leave as-is, empty slice = clear.
type UpdateClassRequest struct {
	ClassGradeLevel *string                     `json:"class_grade_level" validate:"omitempty,min=1,max=20"`
	ClassSection    *string                     `json:"class_section" validate:"omitempty,min=1,max=20"`
	ClassSchoolYear *string                     `json:"class_school_year" validate:"omitempty,min=4,max=20"`
	Teachers        *[]TeacherAssignmentRequest `json:"teachers" validate:"omitempty,dive"`
	StudentIDs      *[]uuid.UUID                `json:"student_ids" validate:"omitempty"`
}

func (r *UpdateClassRequest) ApplyToModel(m *classModel.ClassModel) {
	if r.ClassGradeLevel != nil {
		m.ClassGradeLevel = *r.ClassGradeLevel
	}
	if r.ClassSection != nil {
		m.ClassSection = *r.ClassSection
	}
	if r.ClassSchoolYear != nil {
		m.ClassSchoolYear = *r.ClassSchoolYear
	}
}

func ToAssignments(in []TeacherAssignmentRequest) []service.TeacherAssignment {
	out := make([]service.TeacherAssignment, 0, len(in))
	for _, a := range in {
		out = append(out, service.TeacherAssignment{TeacherID: a.TeacherID, Subject: a.Subject})
	}
	return out
}

/* ===================== RESPONSES ===================== */

type TeacherAssignmentResponse struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	Subject   string    `json:"subject"`
}

type ClassResponse struct {
	ClassID         uuid.UUID                   `json:"class_id"`
	ClassName       string                      `json:"class_name"`
	ClassGradeLevel string                      `json:"class_grade_level"`
	ClassSection    string                      `json:"class_section"`
	ClassSchoolYear string                      `json:"class_school_year"`
	Teachers        []TeacherAssignmentResponse `json:"teachers"`
	StudentIDs      []uuid.UUID                 `json:"student_ids"`
	StudentCount    int                         `json:"student_count"`
	ClassCreatedAt  time.Time                   `json:"class_created_at"`
	ClassUpdatedAt  time.Time                   `json:"class_updated_at"`
}

func FromModel(m *classModel.ClassModel, teacherRows []classModel.ClassTeacherModel, studentIDs []uuid.UUID) ClassResponse {
	teachers := make([]TeacherAssignmentResponse, 0, len(teacherRows))
	for _, t := range teacherRows {
		teachers = append(teachers, TeacherAssignmentResponse{
			TeacherID: t.ClassTeacherStaffID,
			Subject:   t.ClassTeacherSubject,
		})
	}
	if studentIDs == nil {
		studentIDs = []uuid.UUID{}
	}
	return ClassResponse{
		ClassID:         m.ClassID,
		ClassName:       m.ClassName(),
		ClassGradeLevel: m.ClassGradeLevel,
		ClassSection:    m.ClassSection,
		ClassSchoolYear: m.ClassSchoolYear,
		Teachers:        teachers,
		StudentIDs:      studentIDs,
		StudentCount:    len(studentIDs),
		ClassCreatedAt:  m.ClassCreatedAt,
		ClassUpdatedAt:  m.ClassUpdatedAt,
	}
}
