package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"schoolsync_backend/internals/configs"
	"schoolsync_backend/internals/constants"
	attendanceModel "schoolsync_backend/internals/features/school/attendance/model"
	authService "schoolsync_backend/internals/features/users/auth/service"
	studentModel "schoolsync_backend/internals/features/users/students/model"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

func newAttendanceTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&studentModel.StudentModel{}, &attendanceModel.AttendanceModel{}))

	app := fiber.New()
	AttendanceRoutes(app.Group("/api", authMw.AuthMiddleware()), db)
	return app, db
}

func attendanceBearer(t *testing.T) string {
	t.Helper()
	tok, _, err := authService.IssueAccessToken(uuid.New(), constants.RoleTeacher, "Homeroom")
	require.NoError(t, err)
	return "Bearer " + tok
}

func attendanceRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func attendanceBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func seedAttendanceStudent(t *testing.T, db *gorm.DB, idNumber string) studentModel.StudentModel {
	t.Helper()
	s := studentModel.StudentModel{
		StudentName:       "Student " + idNumber,
		StudentEmail:      idNumber + "@example.com",
		StudentIDNumber:   idNumber,
		StudentPassword:   "x",
		StudentGradeLevel: "10",
		StudentSection:    "A",
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

// Marking the same (student, day, subject) twice keeps one row, last status wins.
func TestMarkTwiceOverwrites(t *testing.T) {
	app, db := newAttendanceTestApp(t)
	token := attendanceBearer(t)
	s := seedAttendanceStudent(t, db, "S-401")

	resp := attendanceRequest(t, app, fiber.MethodPost, "/api/attendance", token, fiber.Map{
		"student_id": s.StudentID,
		"date":       "2026-02-10",
		"status":     "present",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = attendanceRequest(t, app, fiber.MethodPost, "/api/attendance", token, fiber.Map{
		"student_id": s.StudentID,
		"date":       "2026-02-10",
		"status":     "late",
		"remarks":    "arrived 08:20",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := attendanceBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "late", data["attendance_status"])

	var count int64
	require.NoError(t, db.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_student_id = ?", s.StudentID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

// Subject-level and day-level marks on the same date are distinct rows.
func TestSubjectMarkDoesNotCollideWithDayMark(t *testing.T) {
	app, db := newAttendanceTestApp(t)
	token := attendanceBearer(t)
	s := seedAttendanceStudent(t, db, "S-402")

	for _, payload := range []fiber.Map{
		{"student_id": s.StudentID, "date": "2026-02-11", "status": "present"},
		{"student_id": s.StudentID, "date": "2026-02-11", "status": "absent", "subject": "Mathematics"},
	} {
		resp := attendanceRequest(t, app, fiber.MethodPost, "/api/attendance", token, payload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var count int64
	require.NoError(t, db.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_student_id = ?", s.StudentID).
		Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestMarkUnknownStudent(t *testing.T) {
	app, _ := newAttendanceTestApp(t)
	resp := attendanceRequest(t, app, fiber.MethodPost, "/api/attendance", attendanceBearer(t), fiber.Map{
		"student_id": uuid.New(),
		"date":       "2026-02-10",
		"status":     "present",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBulkMarkSkipsUnknownStudents(t *testing.T) {
	app, db := newAttendanceTestApp(t)
	token := attendanceBearer(t)
	s1 := seedAttendanceStudent(t, db, "S-403")
	s2 := seedAttendanceStudent(t, db, "S-404")

	resp := attendanceRequest(t, app, fiber.MethodPost, "/api/attendance/bulk", token, fiber.Map{
		"student_ids": []uuid.UUID{s1.StudentID, s2.StudentID, uuid.New()},
		"date":        "2026-02-12",
		"status":      "present",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := attendanceBody(t, resp)["data"].(map[string]any)
	require.Equal(t, float64(2), data["marked"])
	require.Equal(t, float64(1), data["skipped"])
}

func TestStatsRate(t *testing.T) {
	app, db := newAttendanceTestApp(t)
	token := attendanceBearer(t)
	s := seedAttendanceStudent(t, db, "S-405")

	marks := []struct {
		date   string
		status string
	}{
		{"2026-03-02", "present"},
		{"2026-03-03", "present"},
		{"2026-03-04", "late"},
		{"2026-03-05", "absent"},
	}
	for _, m := range marks {
		resp := attendanceRequest(t, app, fiber.MethodPost, "/api/attendance", token, fiber.Map{
			"student_id": s.StudentID,
			"date":       m.date,
			"status":     m.status,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := attendanceRequest(t, app, fiber.MethodGet,
		"/api/attendance/stats/"+s.StudentID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := attendanceBody(t, resp)["data"].(map[string]any)
	require.Equal(t, float64(2), data["present"])
	require.Equal(t, float64(1), data["late"])
	require.Equal(t, float64(1), data["absent"])
	require.Equal(t, float64(4), data["total"])
	require.Equal(t, 75.0, data["rate"])
}

func TestStatsNoRecords(t *testing.T) {
	app, db := newAttendanceTestApp(t)
	token := attendanceBearer(t)
	s := seedAttendanceStudent(t, db, "S-406")

	resp := attendanceRequest(t, app, fiber.MethodGet,
		"/api/attendance/stats/"+s.StudentID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := attendanceBody(t, resp)["data"].(map[string]any)
	require.Equal(t, float64(0), data["total"])
	require.Equal(t, float64(0), data["rate"])
}

func TestListRejectsMixedDateFilters(t *testing.T) {
	app, _ := newAttendanceTestApp(t)
	resp := attendanceRequest(t, app, fiber.MethodGet,
		"/api/attendance?date=2026-02-10&start_date=2026-02-01", attendanceBearer(t), nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListFiltersByRange(t *testing.T) {
	app, db := newAttendanceTestApp(t)
	token := attendanceBearer(t)
	s := seedAttendanceStudent(t, db, "S-407")

	for _, date := range []string{"2026-03-02", "2026-03-09", "2026-03-16"} {
		resp := attendanceRequest(t, app, fiber.MethodPost, "/api/attendance", token, fiber.Map{
			"student_id": s.StudentID,
			"date":       date,
			"status":     "present",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := attendanceRequest(t, app, fiber.MethodGet,
		"/api/attendance?start_date=2026-03-05&end_date=2026-03-12", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := attendanceBody(t, resp)["data"].([]any)
	require.Len(t, rows, 1)
}

func TestAttendanceDeleteRequiresAdmin(t *testing.T) {
	app, db := newAttendanceTestApp(t)
	token := attendanceBearer(t)
	s := seedAttendanceStudent(t, db, "S-408")

	resp := attendanceRequest(t, app, fiber.MethodPost, "/api/attendance", token, fiber.Map{
		"student_id": s.StudentID,
		"date":       "2026-04-01",
		"status":     "excused",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := attendanceBody(t, resp)["data"].(map[string]any)["attendance_id"].(string)

	resp = attendanceRequest(t, app, fiber.MethodDelete, "/api/attendance/"+id, token, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
