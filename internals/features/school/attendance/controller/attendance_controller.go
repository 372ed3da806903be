package controller

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceDTO "schoolsync_backend/internals/features/school/attendance/dto"
	attendanceModel "schoolsync_backend/internals/features/school/attendance/model"
	studentModel "schoolsync_backend/internals/features/users/students/model"
	helper "schoolsync_backend/internals/helpers"
)

type AttendanceController struct{ DB *gorm.DB }

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

var validateAttendance = validator.New()

// Conflict target of the per-day unique index; upserts replace the earlier
// mark instead of stacking a second row.
var attendanceConflict = clause.OnConflict{
	Columns: []clause.Column{
		{Name: "attendance_student_id"},
		{Name: "attendance_date"},
		{Name: "attendance_subject"},
	},
	DoUpdates: clause.AssignmentColumns([]string{
		"attendance_status",
		"attendance_remarks",
		"attendance_marked_by",
		"attendance_updated_at",
	}),
}

// ===================== LIST =====================
// GET /api/attendance
// Exact-date and range filters are mutually exclusive.
func (h *AttendanceController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	tx := h.DB.Model(&attendanceModel.AttendanceModel{})
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id filter")
		}
		tx = tx.Where("attendance_student_id = ?", id)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !attendanceModel.ValidStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status filter")
		}
		tx = tx.Where("attendance_status = ?", status)
	}

	exact := strings.TrimSpace(c.Query("date"))
	start := strings.TrimSpace(c.Query("start_date"))
	end := strings.TrimSpace(c.Query("end_date"))
	if exact != "" && (start != "" || end != "") {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Use either date or start_date/end_date, not both")
	}
	if exact != "" {
		day, err := attendanceDTO.ParseDay(exact)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date filter")
		}
		tx = tx.Where("attendance_date = ?", day)
	}
	if start != "" {
		day, err := attendanceDTO.ParseDay(start)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start_date filter")
		}
		tx = tx.Where("attendance_date >= ?", day)
	}
	if end != "" {
		day, err := attendanceDTO.ParseDay(end)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end_date filter")
		}
		tx = tx.Where("attendance_date <= ?", day)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count attendance")
	}

	var rows []attendanceModel.AttendanceModel
	if err := tx.Order("attendance_date DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== MARK =====================
// POST /api/attendance (teacher/admin)
// Upsert on (student, day, subject): marking twice overwrites the earlier row.
func (h *AttendanceController) Mark(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req attendanceDTO.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAttendance.Struct(req); err != nil {
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

	record := req.ToModel(actorID)
	if err := h.DB.Clauses(attendanceConflict).Create(record).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark attendance")
	}

	// Re-read by key: on conflict the generated id belongs to the existing row.
	var saved attendanceModel.AttendanceModel
	if err := h.DB.
		Where("attendance_student_id = ? AND attendance_date = ? AND attendance_subject = ?",
			record.AttendanceStudentID, record.AttendanceDate, record.AttendanceSubject).
		First(&saved).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return helper.JsonCreated(c, "Attendance marked", saved)
}

// ===================== BULK MARK =====================
// POST /api/attendance/bulk (teacher/admin)
// Best-effort per student: unknown ids are skipped, the rest still land.
func (h *AttendanceController) BulkMark(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req attendanceDTO.BulkMarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	day, err := attendanceDTO.ParseDay(req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date")
	}
	subject := strings.TrimSpace(req.Subject)

	marked := 0
	skipped := 0
	for _, studentID := range req.StudentIDs {
		var count int64
		if err := h.DB.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", studentID).
			Count(&count).Error; err != nil || count == 0 {
			skipped++
			continue
		}

		record := &attendanceModel.AttendanceModel{
			AttendanceStudentID: studentID,
			AttendanceDate:      day,
			AttendanceSubject:   subject,
			AttendanceStatus:    req.Status,
			AttendanceMarkedBy:  actorID,
		}
		if err := h.DB.Clauses(attendanceConflict).Create(record).Error; err != nil {
			skipped++
			continue
		}
		marked++
	}

	return helper.JsonCreated(c, "Attendance marked", fiber.Map{
		"marked":  marked,
		"skipped": skipped,
	})
}

// ===================== STATS =====================
// GET /api/attendance/stats/:studentId
// Rate = (present + late) / total * 100, two decimals, 0 when no records.
func (h *AttendanceController) Stats(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var studentCount int64
	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", studentID).
		Count(&studentCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check student")
	}
	if studentCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}

	tx := h.DB.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_student_id = ?", studentID)
	if start := strings.TrimSpace(c.Query("start_date")); start != "" {
		day, err := attendanceDTO.ParseDay(start)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start_date filter")
		}
		tx = tx.Where("attendance_date >= ?", day)
	}
	if end := strings.TrimSpace(c.Query("end_date")); end != "" {
		day, err := attendanceDTO.ParseDay(end)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end_date filter")
		}
		tx = tx.Where("attendance_date <= ?", day)
	}

	var rows []attendanceModel.AttendanceModel
	if err := tx.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	stats := attendanceDTO.AttendanceStats{Total: len(rows)}
	for _, row := range rows {
		switch row.AttendanceStatus {
		case attendanceModel.AttendanceStatusPresent:
			stats.Present++
		case attendanceModel.AttendanceStatusAbsent:
			stats.Absent++
		case attendanceModel.AttendanceStatusLate:
			stats.Late++
		case attendanceModel.AttendanceStatusExcused:
			stats.Excused++
		}
	}
	if stats.Total > 0 {
		rate := float64(stats.Present+stats.Late) / float64(stats.Total) * 100
		stats.Rate = math.Round(rate*100) / 100
	}

	return helper.JsonOK(c, "", stats)
}

// ===================== UPDATE =====================
// PUT /api/attendance/:id (teacher/admin)
func (h *AttendanceController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	var req attendanceDTO.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var record attendanceModel.AttendanceModel
	if err := h.DB.First(&record, "attendance_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	req.ApplyToModel(&record)
	record.AttendanceUpdatedAt = time.Now()
	if err := h.DB.Save(&record).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update attendance")
	}

	return helper.JsonUpdated(c, "Attendance updated", record)
}

// ===================== DELETE =====================
// DELETE /api/attendance/:id (admin)
func (h *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	var record attendanceModel.AttendanceModel
	if err := h.DB.First(&record, "attendance_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	if err := h.DB.Delete(&record).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete attendance")
	}

	return helper.JsonDeleted(c, "Attendance deleted", fiber.Map{"attendance_id": record.AttendanceID})
}
