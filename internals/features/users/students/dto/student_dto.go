package dto

import (
	"strings"

	studentModel "schoolsync_backend/internals/features/users/students/model"
)

/* ===================== REQUESTS ===================== */

// Create: admin-created student (self-registration goes through /auth/register)
type CreateStudentRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email,max=120"`
	IDNumber   string `json:"id_number" validate:"required,min=3,max=40"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	GradeLevel string `json:"grade_level" validate:"required,min=1,max=20"`
	Section    string `json:"section" validate:"required,min=1,max=20"`
	Contact    string `json:"contact" validate:"omitempty,max=40"`
	Address    string `json:"address" validate:"omitempty"`
}

func (r CreateStudentRequest) ToModel(passwordHash string) *studentModel.StudentModel {
	return &studentModel.StudentModel{
		StudentName:       strings.TrimSpace(r.Name),
		StudentEmail:      strings.ToLower(strings.TrimSpace(r.Email)),
		StudentIDNumber:   strings.TrimSpace(r.IDNumber),
		StudentPassword:   passwordHash,
		StudentGradeLevel: strings.TrimSpace(r.GradeLevel),
		StudentSection:    strings.TrimSpace(r.Section),
		StudentContact:    strings.TrimSpace(r.Contact),
		StudentAddress:    strings.TrimSpace(r.Address),
	}
}

/* ===================== UPDATE (partial) ===================== */

type UpdateStudentRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email      *string `json:"email" validate:"omitempty,email,max=120"`
	IDNumber   *string `json:"id_number" validate:"omitempty,min=3,max=40"`
	GradeLevel *string `json:"grade_level" validate:"omitempty,min=1,max=20"`
	Section    *string `json:"section" validate:"omitempty,min=1,max=20"`
	Contact    *string `json:"contact" validate:"omitempty,max=40"`
	Address    *string `json:"address" validate:"omitempty"`
}

// ApplyToModel applies only the provided fields; reports whether grade level
// or section changed so the caller can re-derive the class.
func (r *UpdateStudentRequest) ApplyToModel(m *studentModel.StudentModel) (placementChanged bool) {
	if r.Name != nil {
		m.StudentName = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		m.StudentEmail = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.IDNumber != nil {
		m.StudentIDNumber = strings.TrimSpace(*r.IDNumber)
	}
	if r.GradeLevel != nil && strings.TrimSpace(*r.GradeLevel) != m.StudentGradeLevel {
		m.StudentGradeLevel = strings.TrimSpace(*r.GradeLevel)
		placementChanged = true
	}
	if r.Section != nil && strings.TrimSpace(*r.Section) != m.StudentSection {
		m.StudentSection = strings.TrimSpace(*r.Section)
		placementChanged = true
	}
	if r.Contact != nil {
		m.StudentContact = strings.TrimSpace(*r.Contact)
	}
	if r.Address != nil {
		m.StudentAddress = strings.TrimSpace(*r.Address)
	}
	return placementChanged
}

/* ===================== PASSWORDS ===================== */

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}
