package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	attendanceModel "schoolsync_backend/internals/features/school/attendance/model"
)

/* ===================== REQUESTS ===================== */

type MarkAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Subject   string    `json:"subject" validate:"omitempty,max=60"`
	Remarks   string    `json:"remarks" validate:"omitempty"`
}

func (r MarkAttendanceRequest) ToModel(markedBy uuid.UUID) *attendanceModel.AttendanceModel {
	day, _ := ParseDay(r.Date)
	return &attendanceModel.AttendanceModel{
		AttendanceStudentID: r.StudentID,
		AttendanceDate:      day,
		AttendanceSubject:   strings.TrimSpace(r.Subject),
		AttendanceStatus:    r.Status,
		AttendanceRemarks:   strings.TrimSpace(r.Remarks),
		AttendanceMarkedBy:  markedBy,
	}
}

type BulkMarkAttendanceRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1"`
	Date       string      `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string      `json:"status" validate:"required,oneof=present absent late excused"`
	Subject    string      `json:"subject" validate:"omitempty,max=60"`
}

type UpdateAttendanceRequest struct {
	Status  *string `json:"status" validate:"omitempty,oneof=present absent late excused"`
	Remarks *string `json:"remarks" validate:"omitempty"`
}

func (r *UpdateAttendanceRequest) ApplyToModel(m *attendanceModel.AttendanceModel) {
	if r.Status != nil {
		m.AttendanceStatus = *r.Status
	}
	if r.Remarks != nil {
		m.AttendanceRemarks = strings.TrimSpace(*r.Remarks)
	}
}

/* ===================== RESPONSES ===================== */

type AttendanceStats struct {
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Excused int     `json:"excused"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

/* ===================== HELPERS ===================== */

// ParseDay normalizes a YYYY-MM-DD string to UTC midnight so the upsert key
// compares equal across writes for the same day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
