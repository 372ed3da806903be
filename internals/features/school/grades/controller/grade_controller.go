package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeDTO "schoolsync_backend/internals/features/school/grades/dto"
	gradeModel "schoolsync_backend/internals/features/school/grades/model"
	studentModel "schoolsync_backend/internals/features/users/students/model"
	helper "schoolsync_backend/internals/helpers"
)

type GradeController struct{ DB *gorm.DB }

func NewGradeController(db *gorm.DB) *GradeController { return &GradeController{DB: db} }

var validateGrade = validator.New()

// ===================== LIST =====================
// GET /api/grades
func (h *GradeController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	tx := h.DB.Model(&gradeModel.GradeModel{})
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id filter")
		}
		tx = tx.Where("grade_student_id = ?", id)
	}
	if subj := strings.TrimSpace(c.Query("subject")); subj != "" {
		tx = tx.Where("grade_subject = ?", subj)
	}
	if sy := strings.TrimSpace(c.Query("school_year")); sy != "" {
		tx = tx.Where("grade_school_year = ?", sy)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count grades")
	}

	var rows []gradeModel.GradeModel
	if err := tx.Order("grade_subject ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch grades")
	}

	return helper.JsonList(c, "", gradeDTO.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== DETAIL =====================
// GET /api/grades/:id
func (h *GradeController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	var grade gradeModel.GradeModel
	if err := h.DB.First(&grade, "grade_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch grade")
	}
	return helper.JsonOK(c, "", gradeDTO.FromModel(grade))
}

// ===================== CREATE =====================
// POST /api/grades (teacher/admin)
func (h *GradeController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req gradeDTO.CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateGrade.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var studentCount int64
	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", req.StudentID).
		Count(&studentCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check student")
	}
	if studentCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	var dup int64
	if err := h.DB.Model(&gradeModel.GradeModel{}).
		Where("grade_student_id = ? AND grade_subject = ? AND grade_school_year = ?",
			req.StudentID, req.Subject, req.SchoolYear).
		Count(&dup).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing grade")
	}
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict,
			"A grade for this student, subject and school year already exists")
	}

	grade := req.ToModel(actorID)
	if err := h.DB.Create(grade).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict,
				"A grade for this student, subject and school year already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create grade")
	}

	return helper.JsonCreated(c, "Grade created", gradeDTO.FromModel(*grade))
}

// ===================== UPDATE =====================
// PUT /api/grades/:id (teacher/admin)
func (h *GradeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	var req gradeDTO.UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateGrade.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var grade gradeModel.GradeModel
	if err := h.DB.First(&grade, "grade_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch grade")
	}

	req.ApplyToModel(&grade)
	if err := h.DB.Save(&grade).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update grade")
	}

	return helper.JsonUpdated(c, "Grade updated", gradeDTO.FromModel(grade))
}

// ===================== BULK UPDATE =====================
// PUT /api/grades/bulk (teacher/admin)
// Best-effort: items whose grade id does not resolve are skipped, the rest
// still go through.
func (h *GradeController) BulkUpdate(c *fiber.Ctx) error {
	var req gradeDTO.BulkUpdateGradesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateGrade.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updated := 0
	skipped := 0
	for i := range req.Grades {
		item := &req.Grades[i]

		var grade gradeModel.GradeModel
		if err := h.DB.First(&grade, "grade_id = ?", item.GradeID).Error; err != nil {
			skipped++
			continue
		}
		item.ApplyToModel(&grade)
		if err := h.DB.Save(&grade).Error; err != nil {
			skipped++
			continue
		}
		updated++
	}

	return helper.JsonUpdated(c, "Grades updated", fiber.Map{
		"updated": updated,
		"skipped": skipped,
	})
}

// ===================== DELETE =====================
// DELETE /api/grades/:id (admin)
func (h *GradeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	var grade gradeModel.GradeModel
	if err := h.DB.First(&grade, "grade_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch grade")
	}

	if err := h.DB.Delete(&grade).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete grade")
	}

	return helper.JsonDeleted(c, "Grade deleted", fiber.Map{"grade_id": grade.GradeID})
}
