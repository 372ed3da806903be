package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	eventModel "schoolsync_backend/internals/features/school/events/model"
)

/* ===================== REQUESTS ===================== */

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"omitempty,datetime=15:04"`
	Location    string `json:"location" validate:"omitempty,max=200"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=students staff all"`
}

func (r CreateEventRequest) ToModel(createdBy uuid.UUID) *eventModel.EventModel {
	day, _ := time.Parse("2006-01-02", r.Date)
	visibility := r.Visibility
	if visibility == "" {
		visibility = eventModel.VisibilityAll
	}
	return &eventModel.EventModel{
		EventTitle:       strings.TrimSpace(r.Title),
		EventDescription: strings.TrimSpace(r.Description),
		EventDate:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		EventStartTime:   r.StartTime,
		EventEndTime:     r.EndTime,
		EventLocation:    strings.TrimSpace(r.Location),
		EventVisibility:  visibility,
		EventCreatedBy:   createdBy,
	}
}

type UpdateEventRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time" validate:"omitempty,datetime=15:04"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	Visibility  *string `json:"visibility" validate:"omitempty,oneof=students staff all"`
}

func (r *UpdateEventRequest) ApplyToModel(m *eventModel.EventModel) {
	if r.Title != nil {
		m.EventTitle = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.EventDescription = strings.TrimSpace(*r.Description)
	}
	if r.Date != nil {
		if day, err := time.Parse("2006-01-02", *r.Date); err == nil {
			m.EventDate = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	if r.StartTime != nil {
		m.EventStartTime = *r.StartTime
	}
	if r.EndTime != nil {
		m.EventEndTime = *r.EndTime
	}
	if r.Location != nil {
		m.EventLocation = strings.TrimSpace(*r.Location)
	}
	if r.Visibility != nil {
		m.EventVisibility = *r.Visibility
	}
}
