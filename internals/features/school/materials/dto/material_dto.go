package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	materialModel "schoolsync_backend/internals/features/school/materials/model"
)

/* ===================== REQUESTS ===================== */

// ClassID stays a string so the same struct binds from both JSON and
// multipart form fields.
type CreateMaterialRequest struct {
	ClassID     string `json:"class_id" form:"class_id" validate:"required,uuid"`
	Subject     string `json:"subject" form:"subject" validate:"required,min=1,max=60"`
	Title       string `json:"title" form:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" form:"description" validate:"omitempty"`
	Type        string `json:"type" form:"type" validate:"required,oneof=document video link assignment"`
	LinkURL     string `json:"link_url" form:"link_url" validate:"omitempty,url"`
	DueDate     string `json:"due_date" form:"due_date" validate:"omitempty"`
}

func (r CreateMaterialRequest) ToModel(classID, createdBy uuid.UUID) (*materialModel.MaterialModel, error) {
	m := &materialModel.MaterialModel{
		MaterialClassID:     classID,
		MaterialSubject:     strings.TrimSpace(r.Subject),
		MaterialTitle:       strings.TrimSpace(r.Title),
		MaterialDescription: strings.TrimSpace(r.Description),
		MaterialType:        r.Type,
		MaterialCreatedBy:   createdBy,
	}
	if link := strings.TrimSpace(r.LinkURL); link != "" {
		m.MaterialLinkURL = &link
	}
	if r.DueDate != "" {
		due, err := ParseDueDate(r.DueDate)
		if err != nil {
			return nil, err
		}
		m.MaterialDueDate = &due
	}
	return m, nil
}

type UpdateMaterialRequest struct {
	Subject     *string `json:"subject" form:"subject" validate:"omitempty,min=1,max=60"`
	Title       *string `json:"title" form:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" form:"description" validate:"omitempty"`
	Type        *string `json:"type" form:"type" validate:"omitempty,oneof=document video link assignment"`
	LinkURL     *string `json:"link_url" form:"link_url" validate:"omitempty,url"`
	DueDate     *string `json:"due_date" form:"due_date" validate:"omitempty"`
}

func (r *UpdateMaterialRequest) ApplyToModel(m *materialModel.MaterialModel) error {
	if r.Subject != nil {
		m.MaterialSubject = strings.TrimSpace(*r.Subject)
	}
	if r.Title != nil {
		m.MaterialTitle = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.MaterialDescription = strings.TrimSpace(*r.Description)
	}
	if r.Type != nil {
		m.MaterialType = *r.Type
	}
	if r.LinkURL != nil {
		link := strings.TrimSpace(*r.LinkURL)
		if link == "" {
			m.MaterialLinkURL = nil
		} else {
			m.MaterialLinkURL = &link
		}
	}
	if r.DueDate != nil {
		if strings.TrimSpace(*r.DueDate) == "" {
			m.MaterialDueDate = nil
		} else {
			due, err := ParseDueDate(*r.DueDate)
			if err != nil {
				return err
			}
			m.MaterialDueDate = &due
		}
	}
	return nil
}

/* ===================== HELPERS ===================== */

// ParseDueDate accepts RFC3339 or a bare date; bare dates mean end of that day.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC), nil
}
