package dto

import (
	"strings"

	staffModel "schoolsync_backend/internals/features/users/staff/model"
)

/* ===================== REQUESTS ===================== */

type CreateStaffRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=100"`
	Email    string   `json:"email" validate:"required,email,max=120"`
	IDNumber string   `json:"id_number" validate:"required,min=3,max=40"`
	Password string   `json:"password" validate:"required,min=6,max=72"`
	Role     string   `json:"role" validate:"required,oneof=teacher admin"`
	Subjects []string `json:"subjects" validate:"omitempty,dive,min=1,max=60"`
}

func (r CreateStaffRequest) ToModel(passwordHash string) *staffModel.StaffModel {
	m := &staffModel.StaffModel{
		StaffName:     strings.TrimSpace(r.Name),
		StaffEmail:    strings.ToLower(strings.TrimSpace(r.Email)),
		StaffIDNumber: strings.TrimSpace(r.IDNumber),
		StaffPassword: passwordHash,
		StaffRole:     r.Role,
	}
	m.SetSubjects(r.Subjects)
	return m
}

/* ===================== UPDATE (partial) ===================== */

type UpdateStaffRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string   `json:"email" validate:"omitempty,email,max=120"`
	IDNumber *string   `json:"id_number" validate:"omitempty,min=3,max=40"`
	Role     *string   `json:"role" validate:"omitempty,oneof=teacher admin"`
	Subjects *[]string `json:"subjects" validate:"omitempty,dive,min=1,max=60"`
}

func (r *UpdateStaffRequest) ApplyToModel(m *staffModel.StaffModel) {
	if r.Name != nil {
		m.StaffName = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		m.StaffEmail = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.IDNumber != nil {
		m.StaffIDNumber = strings.TrimSpace(*r.IDNumber)
	}
	if r.Role != nil {
		m.StaffRole = *r.Role
	}
	if r.Subjects != nil {
		m.SetSubjects(*r.Subjects)
	}
}
