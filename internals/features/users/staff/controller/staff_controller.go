package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	staffDTO "schoolsync_backend/internals/features/users/staff/dto"
	staffModel "schoolsync_backend/internals/features/users/staff/model"
	helper "schoolsync_backend/internals/helpers"
)

type StaffController struct{ DB *gorm.DB }

func NewStaffController(db *gorm.DB) *StaffController { return &StaffController{DB: db} }

var validateStaff = validator.New()

// ===================== LIST =====================
// GET /api/staff (admin)
func (h *StaffController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&staffModel.StaffModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		tx = tx.Where("staff_role = ?", role)
	}
	if q := strings.TrimSpace(c.Query("search")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(staff_name) LIKE ? OR LOWER(staff_email) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count staff")
	}

	var rows []staffModel.StaffModel
	if err := tx.Order("staff_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff")
	}

	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== DETAIL =====================
// GET /api/staff/:id (admin)
func (h *StaffController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff id")
	}

	var staff staffModel.StaffModel
	if err := h.DB.First(&staff, "staff_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff")
	}
	return helper.JsonOK(c, "", staff)
}

// ===================== CREATE =====================
// POST /api/staff (admin)
func (h *StaffController) Create(c *fiber.Ctx) error {
	var req staffDTO.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStaff.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var count int64
	if err := h.DB.Model(&staffModel.StaffModel{}).
		Where("staff_email = ? OR staff_id_number = ?",
			strings.ToLower(strings.TrimSpace(req.Email)), strings.TrimSpace(req.IDNumber)).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing staff")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	staff := req.ToModel(string(hashed))
	if err := h.DB.Create(staff).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create staff")
	}

	return helper.JsonCreated(c, "Staff created", staff)
}

// ===================== UPDATE =====================
// PUT /api/staff/:id (admin)
func (h *StaffController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff id")
	}

	var req staffDTO.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStaff.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var staff staffModel.StaffModel
	if err := h.DB.First(&staff, "staff_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff")
	}

	req.ApplyToModel(&staff)

	if req.Email != nil || req.IDNumber != nil {
		var count int64
		if err := h.DB.Model(&staffModel.StaffModel{}).
			Where("(staff_email = ? OR staff_id_number = ?) AND staff_id <> ?",
				staff.StaffEmail, staff.StaffIDNumber, staff.StaffID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing staff")
		}
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
		}
	}

	if err := h.DB.Save(&staff).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update staff")
	}

	return helper.JsonUpdated(c, "Staff updated", staff)
}

// ===================== DELETE =====================
// DELETE /api/staff/:id (admin)
func (h *StaffController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff id")
	}

	var staff staffModel.StaffModel
	if err := h.DB.First(&staff, "staff_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff")
	}

	if err := h.DB.Delete(&staff).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete staff")
	}

	return helper.JsonDeleted(c, "Staff deleted", fiber.Map{"staff_id": staff.StaffID})
}
