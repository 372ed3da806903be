package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	eventDTO "schoolsync_backend/internals/features/school/events/dto"
	eventModel "schoolsync_backend/internals/features/school/events/model"
	helper "schoolsync_backend/internals/helpers"
)

type EventController struct{ DB *gorm.DB }

func NewEventController(db *gorm.DB) *EventController { return &EventController{DB: db} }

var validateEvent = validator.New()

// ===================== LIST =====================
// GET /api/events
// Role scoping mirrors announcements; upcoming=true drops past events.
func (h *EventController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	role, _ := helper.GetRoleFromToken(c)

	tx := h.DB.Model(&eventModel.EventModel{})

	if vis := strings.TrimSpace(c.Query("visibility")); vis != "" {
		switch vis {
		case eventModel.VisibilityStudents, eventModel.VisibilityStaff, eventModel.VisibilityAll:
			tx = tx.Where("event_visibility = ?", vis)
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visibility filter")
		}
	} else {
		switch role {
		case constants.RoleStudent:
			tx = tx.Where("event_visibility IN ?",
				[]string{eventModel.VisibilityStudents, eventModel.VisibilityAll})
		case constants.RoleTeacher:
			tx = tx.Where("event_visibility IN ?",
				[]string{eventModel.VisibilityStaff, eventModel.VisibilityAll})
		}
	}

	if c.Query("upcoming") == "true" {
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		tx = tx.Where("event_date >= ?", today)
	}
	if start := strings.TrimSpace(c.Query("start_date")); start != "" {
		day, err := time.Parse("2006-01-02", start)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start_date filter")
		}
		tx = tx.Where("event_date >= ?", time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	}
	if end := strings.TrimSpace(c.Query("end_date")); end != "" {
		day, err := time.Parse("2006-01-02", end)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end_date filter")
		}
		tx = tx.Where("event_date <= ?", time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count events")
	}

	var rows []eventModel.EventModel
	if err := tx.Order("event_date ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== DETAIL =====================
// GET /api/events/:id
func (h *EventController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	var event eventModel.EventModel
	if err := h.DB.First(&event, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}
	return helper.JsonOK(c, "", event)
}

// ===================== CREATE =====================
// POST /api/events (teacher/admin)
func (h *EventController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req eventDTO.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateEvent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	event := req.ToModel(actorID)
	if err := h.DB.Create(event).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}

	return helper.JsonCreated(c, "Event created", event)
}

// ===================== UPDATE =====================
// PUT /api/events/:id (teacher/admin)
func (h *EventController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	var req eventDTO.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateEvent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var event eventModel.EventModel
	if err := h.DB.First(&event, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	req.ApplyToModel(&event)
	if err := h.DB.Save(&event).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}

	return helper.JsonUpdated(c, "Event updated", event)
}

// ===================== DELETE =====================
// DELETE /api/events/:id (teacher/admin)
func (h *EventController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event id")
	}

	var event eventModel.EventModel
	if err := h.DB.First(&event, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}

	if err := h.DB.Delete(&event).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}

	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": event.EventID})
}
