package dto

import (
	"strings"

	"github.com/google/uuid"

	announcementModel "schoolsync_backend/internals/features/school/announcements/model"
)

/* ===================== REQUESTS ===================== */

type CreateAnnouncementRequest struct {
	Title      string     `json:"title" validate:"required,min=1,max=200"`
	Content    string     `json:"content" validate:"required,min=1"`
	Visibility string     `json:"visibility" validate:"omitempty,oneof=students staff all"`
	ClassID    *uuid.UUID `json:"class_id" validate:"omitempty"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=normal important urgent"`
}

func (r CreateAnnouncementRequest) ToModel(createdBy uuid.UUID) *announcementModel.AnnouncementModel {
	visibility := r.Visibility
	if visibility == "" {
		visibility = announcementModel.VisibilityAll
	}
	priority := r.Priority
	if priority == "" {
		priority = announcementModel.PriorityNormal
	}
	return &announcementModel.AnnouncementModel{
		AnnouncementTitle:      strings.TrimSpace(r.Title),
		AnnouncementContent:    r.Content,
		AnnouncementVisibility: visibility,
		AnnouncementClassID:    r.ClassID,
		AnnouncementPriority:   priority,
		AnnouncementCreatedBy:  createdBy,
	}
}

type UpdateAnnouncementRequest struct {
	Title      *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string    `json:"content" validate:"omitempty,min=1"`
	Visibility *string    `json:"visibility" validate:"omitempty,oneof=students staff all"`
	ClassID    *uuid.UUID `json:"class_id" validate:"omitempty"`
	Priority   *string    `json:"priority" validate:"omitempty,oneof=normal important urgent"`
}

func (r *UpdateAnnouncementRequest) ApplyToModel(m *announcementModel.AnnouncementModel) {
	if r.Title != nil {
		m.AnnouncementTitle = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		m.AnnouncementContent = *r.Content
	}
	if r.Visibility != nil {
		m.AnnouncementVisibility = *r.Visibility
	}
	if r.ClassID != nil {
		if *r.ClassID == uuid.Nil {
			m.AnnouncementClassID = nil
		} else {
			m.AnnouncementClassID = r.ClassID
		}
	}
	if r.Priority != nil {
		m.AnnouncementPriority = *r.Priority
	}
}
