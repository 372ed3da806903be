package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	materialModel "schoolsync_backend/internals/features/school/materials/model"
	submissionDTO "schoolsync_backend/internals/features/school/submissions/dto"
	submissionModel "schoolsync_backend/internals/features/school/submissions/model"
	helper "schoolsync_backend/internals/helpers"
)

type SubmissionController struct{ DB *gorm.DB }

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{DB: db}
}

var validateSubmission = validator.New()

// ===================== CREATE =====================
// POST /api/submissions (student)
// One per (material, student); late is stamped here, against the due date.
func (h *SubmissionController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req submissionDTO.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateSubmission.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material_id")
	}

	var material materialModel.MaterialModel
	if err := h.DB.First(&material, "material_id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch material")
	}

	var dup int64
	if err := h.DB.Model(&submissionModel.SubmissionModel{}).
		Where("submission_material_id = ? AND submission_student_id = ?", materialID, actorID).
		Count(&dup).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing submission")
	}
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict,
			"A submission for this material already exists, update it instead")
	}

	fh, ferr := c.FormFile("file")
	if ferr != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "A file is required")
	}
	saved, uerr := helper.SaveUpload(c, fh, helper.UploadSubmission)
	if uerr != nil {
		return helper.FromFiberError(c, uerr)
	}

	now := time.Now().UTC()
	status := submissionModel.SubmissionStatusSubmitted
	if material.MaterialDueDate != nil && now.After(*material.MaterialDueDate) {
		status = submissionModel.SubmissionStatusLate
	}

	submission := &submissionModel.SubmissionModel{
		SubmissionMaterialID:  materialID,
		SubmissionStudentID:   actorID,
		SubmissionFileURL:     saved.URL,
		SubmissionFileName:    saved.Name,
		SubmissionFileSize:    saved.Size,
		SubmissionComments:    req.Comments,
		SubmissionStatus:      status,
		SubmissionSubmittedAt: now,
	}
	if err := h.DB.Create(submission).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict,
				"A submission for this material already exists, update it instead")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create submission")
	}

	return helper.JsonCreated(c, "Submission received", submission)
}

// ===================== DETAIL =====================
// GET /api/submissions/:id (owner or staff)
func (h *SubmissionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	submission, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}

	actorID, _ := helper.GetUserIDFromToken(c)
	role, _ := helper.GetRoleFromToken(c)
	if !constants.IsStaffRole(role) && actorID != submission.SubmissionStudentID {
		return helper.JsonError(c, fiber.StatusForbidden, "You may only view your own submissions")
	}

	return helper.JsonOK(c, "", submission)
}

// ===================== UPDATE =====================
// PUT /api/submissions/:id (owner)
// Resubmission: replaces file/comments and refreshes the submitted time. The
// late flag stays whatever creation decided.
func (h *SubmissionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req submissionDTO.UpdateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateSubmission.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	submission, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}
	if submission.SubmissionStudentID != actorID {
		return helper.JsonError(c, fiber.StatusForbidden, "You may only update your own submissions")
	}

	if fh, fileErr := c.FormFile("file"); fileErr == nil && fh != nil {
		saved, uerr := helper.SaveUpload(c, fh, helper.UploadSubmission)
		if uerr != nil {
			return helper.FromFiberError(c, uerr)
		}
		submission.SubmissionFileURL = saved.URL
		submission.SubmissionFileName = saved.Name
		submission.SubmissionFileSize = saved.Size
	}
	if req.Comments != nil {
		submission.SubmissionComments = *req.Comments
	}
	submission.SubmissionSubmittedAt = time.Now().UTC()

	if err := h.DB.Save(submission).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update submission")
	}

	return helper.JsonUpdated(c, "Submission updated", submission)
}

// ===================== GRADE =====================
// PUT /api/submissions/:id/grade (teacher/admin)
// Re-grading overwrites the earlier score and feedback.
func (h *SubmissionController) Grade(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req submissionDTO.GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateSubmission.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	submission, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}

	now := time.Now().UTC()
	submission.SubmissionScore = req.Score
	submission.SubmissionFeedback = req.Feedback
	submission.SubmissionStatus = submissionModel.SubmissionStatusGraded
	submission.SubmissionGradedBy = &actorID
	submission.SubmissionGradedAt = &now

	if err := h.DB.Save(submission).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grade submission")
	}

	return helper.JsonUpdated(c, "Submission graded", submission)
}

// ===================== DELETE =====================
// DELETE /api/submissions/:id (owner or admin)
func (h *SubmissionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, _ := helper.GetRoleFromToken(c)

	submission, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}
	if role != constants.RoleAdmin && submission.SubmissionStudentID != actorID {
		return helper.JsonError(c, fiber.StatusForbidden, "You may only delete your own submissions")
	}

	if err := h.DB.Delete(submission).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete submission")
	}

	return helper.JsonDeleted(c, "Submission deleted", fiber.Map{"submission_id": submission.SubmissionID})
}

// ===================== BY STUDENT =====================
// GET /api/submissions/student/:studentId (self or staff)
func (h *SubmissionController) ByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	actorID, _ := helper.GetUserIDFromToken(c)
	role, _ := helper.GetRoleFromToken(c)
	if !constants.IsStaffRole(role) && actorID != studentID {
		return helper.JsonError(c, fiber.StatusForbidden, "You may only view your own submissions")
	}

	var rows []submissionModel.SubmissionModel
	if err := h.DB.
		Where("submission_student_id = ?", studentID).
		Order("submission_submitted_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	return helper.JsonOK(c, "", rows)
}

func (h *SubmissionController) fetch(id uuid.UUID) (*submissionModel.SubmissionModel, error) {
	var submission submissionModel.SubmissionModel
	if err := h.DB.First(&submission, "submission_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}
