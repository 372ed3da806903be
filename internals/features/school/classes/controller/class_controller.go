package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "schoolsync_backend/internals/features/school/classes/dto"
	classModel "schoolsync_backend/internals/features/school/classes/model"
	"schoolsync_backend/internals/features/school/classes/service"
	studentModel "schoolsync_backend/internals/features/users/students/model"
	helper "schoolsync_backend/internals/helpers"
)

type ClassController struct{ DB *gorm.DB }

func NewClassController(db *gorm.DB) *ClassController { return &ClassController{DB: db} }

var validateClass = validator.New()

func (h *ClassController) respond(db *gorm.DB, m *classModel.ClassModel) (classDTO.ClassResponse, error) {
	teacherRows, err := service.ClassTeacherRows(db, m.ClassID)
	if err != nil {
		return classDTO.ClassResponse{}, err
	}
	studentIDs, err := service.ClassStudentIDs(db, m.ClassID)
	if err != nil {
		return classDTO.ClassResponse{}, err
	}
	return classDTO.FromModel(m, teacherRows, studentIDs), nil
}

// ===================== LIST =====================
// GET /api/classes
func (h *ClassController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&classModel.ClassModel{})
	if sy := strings.TrimSpace(c.Query("school_year")); sy != "" {
		tx = tx.Where("class_school_year = ?", sy)
	}
	if gl := strings.TrimSpace(c.Query("grade_level")); gl != "" {
		tx = tx.Where("class_grade_level = ?", gl)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count classes")
	}

	var rows []classModel.ClassModel
	if err := tx.Order("class_school_year DESC, class_grade_level ASC, class_section ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	out := make([]classDTO.ClassResponse, 0, len(rows))
	for i := range rows {
		resp, err := h.respond(h.DB, &rows[i])
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load class roster")
		}
		out = append(out, resp)
	}

	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== DETAIL =====================
// GET /api/classes/:id
func (h *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var class classModel.ClassModel
	if err := h.DB.First(&class, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	resp, err := h.respond(h.DB, &class)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load class roster")
	}
	return helper.JsonOK(c, "", resp)
}

// ===================== CREATE =====================
// POST /api/classes (admin)
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if _, err := service.FindClassByTuple(h.DB, req.ClassGradeLevel, req.ClassSection, req.ClassSchoolYear); err == nil {
		return helper.JsonError(c, fiber.StatusConflict,
			"A class for this grade level, section and school year already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class uniqueness")
	}

	class := req.ToModel()
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(class).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict,
					"A class for this grade level, section and school year already exists")
			}
			return err
		}
		if err := service.SetTeacherAssignments(tx, class.ClassID, classDTO.ToAssignments(req.Teachers)); err != nil {
			return err
		}
		return service.EnrollStudents(tx, class.ClassID, req.StudentIDs)
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := h.respond(h.DB, class)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load class roster")
	}
	return helper.JsonCreated(c, "Class created", resp)
}

// ===================== UPDATE =====================
// PUT /api/classes/:id (admin)
func (h *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var class classModel.ClassModel
	if err := h.DB.First(&class, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	req.ApplyToModel(&class)

	// tuple change must not collide with another class
	if req.ClassGradeLevel != nil || req.ClassSection != nil || req.ClassSchoolYear != nil {
		if existing, err := service.FindClassByTuple(h.DB, class.ClassGradeLevel, class.ClassSection, class.ClassSchoolYear); err == nil && existing.ClassID != class.ClassID {
			return helper.JsonError(c, fiber.StatusConflict,
				"A class for this grade level, section and school year already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class uniqueness")
		}
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&class).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict,
					"A class for this grade level, section and school year already exists")
			}
			return err
		}
		if req.Teachers != nil {
			if err := service.SetTeacherAssignments(tx, class.ClassID, classDTO.ToAssignments(*req.Teachers)); err != nil {
				return err
			}
		}
		if req.StudentIDs != nil {
			if err := service.ReplaceStudentMembership(tx, class.ClassID, *req.StudentIDs); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := h.respond(h.DB, &class)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load class roster")
	}
	return helper.JsonUpdated(c, "Class updated", resp)
}

// ===================== DELETE =====================
// DELETE /api/classes/:id (admin)
func (h *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var class classModel.ClassModel
	if err := h.DB.First(&class, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := service.CleanupClass(tx, class.ClassID); err != nil {
			return err
		}
		return tx.Delete(&class).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"class_id": class.ClassID})
}

// ===================== BY TEACHER =====================
// GET /api/classes/teacher/:teacherId
func (h *ClassController) ByTeacher(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	var classIDs []uuid.UUID
	if err := h.DB.Model(&classModel.ClassTeacherModel{}).
		Distinct("class_teacher_class_id").
		Where("class_teacher_staff_id = ?", teacherID).
		Pluck("class_teacher_class_id", &classIDs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	out := make([]classDTO.ClassResponse, 0, len(classIDs))
	if len(classIDs) > 0 {
		var rows []classModel.ClassModel
		if err := h.DB.Where("class_id IN ?", classIDs).
			Order("class_grade_level ASC, class_section ASC").
			Find(&rows).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
		}
		for i := range rows {
			resp, err := h.respond(h.DB, &rows[i])
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load class roster")
			}
			out = append(out, resp)
		}
	}

	return helper.JsonOK(c, "", out)
}

// ===================== ADD STUDENT =====================
// POST /api/classes/:id/students/:studentId (admin)
func (h *ClassController) AddStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var class classModel.ClassModel
	if err := h.DB.First(&class, "class_id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	var student studentModel.StudentModel
	if err := h.DB.First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if student.StudentClassID != nil && *student.StudentClassID == classID {
		return helper.JsonError(c, fiber.StatusConflict, "Student already enrolled in this class")
	}

	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", studentID).
		Update("student_class_id", classID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll student")
	}

	return helper.JsonUpdated(c, "Student enrolled", fiber.Map{
		"class_id":   classID,
		"student_id": studentID,
	})
}

// ===================== REMOVE STUDENT =====================
// DELETE /api/classes/:id/students/:studentId (admin)
// Removing a student who is not in the roster is a no-op success.
func (h *ClassController) RemoveStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_id = ? AND student_class_id = ?", studentID, classID).
		Update("student_class_id", nil).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove student")
	}

	return helper.JsonDeleted(c, "Student removed from class", fiber.Map{
		"class_id":   classID,
		"student_id": studentID,
	})
}
