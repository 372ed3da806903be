package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolsync_backend/internals/features/school/classes/model"
	materialDTO "schoolsync_backend/internals/features/school/materials/dto"
	materialModel "schoolsync_backend/internals/features/school/materials/model"
	submissionModel "schoolsync_backend/internals/features/school/submissions/model"
	helper "schoolsync_backend/internals/helpers"
)

type MaterialController struct{ DB *gorm.DB }

func NewMaterialController(db *gorm.DB) *MaterialController {
	return &MaterialController{DB: db}
}

var validateMaterial = validator.New()

// ===================== LIST =====================
// GET /api/materials
func (h *MaterialController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	tx := h.DB.Model(&materialModel.MaterialModel{})
	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id filter")
		}
		tx = tx.Where("material_class_id = ?", id)
	}
	if subj := strings.TrimSpace(c.Query("subject")); subj != "" {
		tx = tx.Where("material_subject = ?", subj)
	}
	if mt := strings.TrimSpace(c.Query("type")); mt != "" {
		if !materialModel.ValidType(mt) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid type filter")
		}
		tx = tx.Where("material_type = ?", mt)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count materials")
	}

	var rows []materialModel.MaterialModel
	if err := tx.Order("material_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch materials")
	}

	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== DETAIL =====================
// GET /api/materials/:id
func (h *MaterialController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}

	var material materialModel.MaterialModel
	if err := h.DB.First(&material, "material_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch material")
	}
	return helper.JsonOK(c, "", material)
}

// ===================== CREATE =====================
// POST /api/materials (teacher/admin)
// Multipart with an optional "file" part; link type needs link_url instead.
func (h *MaterialController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req materialDTO.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateMaterial.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Type == materialModel.MaterialTypeLink && strings.TrimSpace(req.LinkURL) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "link_url is required for link materials")
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
	}

	var classCount int64
	if err := h.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		Count(&classCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class")
	}
	if classCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	}

	material, err := req.ToModel(classID, actorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid due_date")
	}

	if fh, ferr := c.FormFile("file"); ferr == nil && fh != nil {
		saved, uerr := helper.SaveUpload(c, fh, helper.UploadMaterial)
		if uerr != nil {
			return helper.FromFiberError(c, uerr)
		}
		material.MaterialFileURL = &saved.URL
		material.MaterialFileName = &saved.Name
		material.MaterialFileSize = &saved.Size
	}

	if err := h.DB.Create(material).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create material")
	}

	return helper.JsonCreated(c, "Material created", material)
}

// ===================== UPDATE =====================
// PUT /api/materials/:id (teacher/admin)
func (h *MaterialController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}

	var req materialDTO.UpdateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateMaterial.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var material materialModel.MaterialModel
	if err := h.DB.First(&material, "material_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch material")
	}

	if err := req.ApplyToModel(&material); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid due_date")
	}

	if fh, ferr := c.FormFile("file"); ferr == nil && fh != nil {
		saved, uerr := helper.SaveUpload(c, fh, helper.UploadMaterial)
		if uerr != nil {
			return helper.FromFiberError(c, uerr)
		}
		material.MaterialFileURL = &saved.URL
		material.MaterialFileName = &saved.Name
		material.MaterialFileSize = &saved.Size
	}

	if err := h.DB.Save(&material).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update material")
	}

	return helper.JsonUpdated(c, "Material updated", material)
}

// ===================== DELETE =====================
// DELETE /api/materials/:id (teacher/admin)
// Submissions attached to the material go with it.
func (h *MaterialController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}

	var material materialModel.MaterialModel
	if err := h.DB.First(&material, "material_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch material")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_material_id = ?", material.MaterialID).
			Delete(&submissionModel.SubmissionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&material).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete material")
	}

	return helper.JsonDeleted(c, "Material deleted", fiber.Map{"material_id": material.MaterialID})
}

// ===================== SUBMISSIONS =====================
// GET /api/materials/:id/submissions (teacher/admin)
func (h *MaterialController) Submissions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}

	var materialCount int64
	if err := h.DB.Model(&materialModel.MaterialModel{}).
		Where("material_id = ?", id).
		Count(&materialCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check material")
	}
	if materialCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
	}

	var rows []submissionModel.SubmissionModel
	if err := h.DB.
		Where("submission_material_id = ?", id).
		Order("submission_submitted_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	return helper.JsonOK(c, "", rows)
}
