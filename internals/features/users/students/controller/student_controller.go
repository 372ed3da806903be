package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolsync_backend/internals/configs"
	"schoolsync_backend/internals/constants"
	attendanceModel "schoolsync_backend/internals/features/school/attendance/model"
	rosterService "schoolsync_backend/internals/features/school/classes/service"
	gradeModel "schoolsync_backend/internals/features/school/grades/model"
	studentDTO "schoolsync_backend/internals/features/users/students/dto"
	studentModel "schoolsync_backend/internals/features/users/students/model"
	helper "schoolsync_backend/internals/helpers"
)

type StudentController struct{ DB *gorm.DB }

func NewStudentController(db *gorm.DB) *StudentController { return &StudentController{DB: db} }

var validateStudent = validator.New()

// selfOrStaff admits the student themself or any staff member.
func selfOrStaff(c *fiber.Ctx, studentID uuid.UUID) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	if actorID == studentID || constants.IsStaffRole(role) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "You may only access your own record")
}

// selfOrAdmin admits the student themself or an admin.
func selfOrAdmin(c *fiber.Ctx, studentID uuid.UUID) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	if actorID == studentID || role == constants.RoleAdmin {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "You may only modify your own record")
}

func (h *StudentController) fetch(id uuid.UUID) (*studentModel.StudentModel, error) {
	var student studentModel.StudentModel
	if err := h.DB.First(&student, "student_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// ===================== LIST =====================
// GET /api/students (teacher/admin)
func (h *StudentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&studentModel.StudentModel{})
	if gl := strings.TrimSpace(c.Query("grade_level")); gl != "" {
		tx = tx.Where("student_grade_level = ?", gl)
	}
	if sec := strings.TrimSpace(c.Query("section")); sec != "" {
		tx = tx.Where("student_section = ?", sec)
	}
	if classID := strings.TrimSpace(c.Query("class_id")); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id filter")
		}
		tx = tx.Where("student_class_id = ?", id)
	}
	if q := strings.TrimSpace(c.Query("search")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(student_name) LIKE ? OR LOWER(student_email) LIKE ? OR LOWER(student_id_number) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var rows []studentModel.StudentModel
	if err := tx.Order("student_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== DETAIL =====================
// GET /api/students/:id (self or staff)
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := selfOrStaff(c, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	student, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return helper.JsonOK(c, "", student)
}

// ===================== CREATE =====================
// POST /api/students (admin)
// Admin-created students are matched against an existing class for their
// (grade level, section) in the current school year; with no match the
// student simply has no class yet.
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req studentDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var count int64
	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_email = ? OR student_id_number = ?",
			strings.ToLower(strings.TrimSpace(req.Email)), strings.TrimSpace(req.IDNumber)).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing students")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	student := req.ToModel(string(hashed))
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Email or ID number already in use")
			}
			return err
		}
		return rosterService.ReassignStudentClass(tx, student, configs.CurrentSchoolYear())
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Student created", student)
}

// ===================== UPDATE =====================
// PUT /api/students/:id (self or admin)
func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := selfOrAdmin(c, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req studentDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	placementChanged := req.ApplyToModel(student)

	if req.Email != nil || req.IDNumber != nil {
		var count int64
		if err := h.DB.Model(&studentModel.StudentModel{}).
			Where("(student_email = ? OR student_id_number = ?) AND student_id <> ?",
				student.StudentEmail, student.StudentIDNumber, student.StudentID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing students")
		}
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
		}
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(student).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Email or ID number already in use")
			}
			return err
		}
		if placementChanged {
			return rosterService.ReassignStudentClass(tx, student, configs.CurrentSchoolYear())
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Student updated", student)
}

// ===================== DELETE =====================
// DELETE /api/students/:id (admin)
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	student, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if err := h.DB.Delete(student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}

	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"student_id": student.StudentID})
}

// ===================== GRADES SUB-READ =====================
// GET /api/students/:id/grades (self or staff)
func (h *StudentController) Grades(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := selfOrStaff(c, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	tx := h.DB.Where("grade_student_id = ?", id)
	if sy := strings.TrimSpace(c.Query("school_year")); sy != "" {
		tx = tx.Where("grade_school_year = ?", sy)
	}

	var rows []gradeModel.GradeModel
	if err := tx.Order("grade_subject ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch grades")
	}
	return helper.JsonOK(c, "", rows)
}

// ===================== ATTENDANCE SUB-READ =====================
// GET /api/students/:id/attendance (self or staff)
func (h *StudentController) Attendance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := selfOrStaff(c, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []attendanceModel.AttendanceModel
	if err := h.DB.Where("attendance_student_id = ?", id).
		Order("attendance_date DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}
	return helper.JsonOK(c, "", rows)
}

// ===================== CHANGE PASSWORD =====================
// PUT /api/students/:id/change-password (self or admin)
func (h *StudentController) ChangePassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := selfOrAdmin(c, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req studentDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if bcrypt.CompareHashAndPassword([]byte(student.StudentPassword), []byte(req.CurrentPassword)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", student.StudentID).
		Update("student_password", string(hashed)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed", nil)
}

// ===================== RESET PASSWORD =====================
// PUT /api/students/:id/reset-password (admin, unconditional)
func (h *StudentController) ResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentDTO.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", student.StudentID).
		Update("student_password", string(hashed)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password reset", nil)
}

// ===================== AVATAR =====================
// POST /api/students/:id/avatar (self or admin)
func (h *StudentController) UploadAvatar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := selfOrAdmin(c, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	student, err := h.fetch(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No avatar file provided")
	}
	if err := helper.ValidateUpload(fh, helper.UploadAvatar); err != nil {
		return helper.FromFiberError(c, err)
	}

	webpData, err := helper.ConvertAvatarToWebP(fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	stored := helper.RandomFilename("avatar.webp")
	url, err := helper.SaveBytes(webpData, helper.UploadAvatar, stored)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", student.StudentID).
		Update("student_avatar_url", url).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save avatar")
	}

	return helper.JsonUpdated(c, "Avatar uploaded", fiber.Map{"avatar_url": url})
}
