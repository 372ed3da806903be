package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	announcementDTO "schoolsync_backend/internals/features/school/announcements/dto"
	announcementModel "schoolsync_backend/internals/features/school/announcements/model"
	classModel "schoolsync_backend/internals/features/school/classes/model"
	helper "schoolsync_backend/internals/helpers"
)

type AnnouncementController struct{ DB *gorm.DB }

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{DB: db}
}

var validateAnnouncement = validator.New()

// ===================== LIST =====================
// GET /api/announcements
// Without an explicit visibility filter the caller's role decides what shows:
// students get students+all, teachers get staff+all, admins get everything.
// A class_id filter returns that class's posts plus the global ones.
func (h *AnnouncementController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	role, _ := helper.GetRoleFromToken(c)

	tx := h.DB.Model(&announcementModel.AnnouncementModel{})

	if vis := strings.TrimSpace(c.Query("visibility")); vis != "" {
		if !announcementModel.ValidVisibility(vis) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visibility filter")
		}
		tx = tx.Where("announcement_visibility = ?", vis)
	} else {
		switch role {
		case constants.RoleStudent:
			tx = tx.Where("announcement_visibility IN ?",
				[]string{announcementModel.VisibilityStudents, announcementModel.VisibilityAll})
		case constants.RoleTeacher:
			tx = tx.Where("announcement_visibility IN ?",
				[]string{announcementModel.VisibilityStaff, announcementModel.VisibilityAll})
		}
	}

	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id filter")
		}
		tx = tx.Where("announcement_class_id = ? OR announcement_class_id IS NULL", id)
	}
	if prio := strings.TrimSpace(c.Query("priority")); prio != "" {
		if !announcementModel.ValidPriority(prio) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid priority filter")
		}
		tx = tx.Where("announcement_priority = ?", prio)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count announcements")
	}

	var rows []announcementModel.AnnouncementModel
	if err := tx.Order("announcement_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcements")
	}

	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== DETAIL =====================
// GET /api/announcements/:id
func (h *AnnouncementController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}

	var announcement announcementModel.AnnouncementModel
	if err := h.DB.First(&announcement, "announcement_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcement")
	}
	return helper.JsonOK(c, "", announcement)
}

// ===================== CREATE =====================
// POST /api/announcements (teacher/admin)
func (h *AnnouncementController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req announcementDTO.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAnnouncement.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.ClassID != nil {
		var classCount int64
		if err := h.DB.Model(&classModel.ClassModel{}).
			Where("class_id = ?", *req.ClassID).
			Count(&classCount).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class")
		}
		if classCount == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
	}

	announcement := req.ToModel(actorID)
	if err := h.DB.Create(announcement).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create announcement")
	}

	return helper.JsonCreated(c, "Announcement created", announcement)
}

// ===================== UPDATE =====================
// PUT /api/announcements/:id (teacher/admin)
func (h *AnnouncementController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}

	var req announcementDTO.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAnnouncement.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var announcement announcementModel.AnnouncementModel
	if err := h.DB.First(&announcement, "announcement_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcement")
	}

	req.ApplyToModel(&announcement)
	if err := h.DB.Save(&announcement).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update announcement")
	}

	return helper.JsonUpdated(c, "Announcement updated", announcement)
}

// ===================== DELETE =====================
// DELETE /api/announcements/:id (teacher/admin)
func (h *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}

	var announcement announcementModel.AnnouncementModel
	if err := h.DB.First(&announcement, "announcement_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcement")
	}

	if err := h.DB.Delete(&announcement).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete announcement")
	}

	return helper.JsonDeleted(c, "Announcement deleted", fiber.Map{"announcement_id": announcement.AnnouncementID})
}
