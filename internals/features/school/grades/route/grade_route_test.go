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
	gradeModel "schoolsync_backend/internals/features/school/grades/model"
	authService "schoolsync_backend/internals/features/users/auth/service"
	studentModel "schoolsync_backend/internals/features/users/students/model"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

func newGradeTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&studentModel.StudentModel{}, &gradeModel.GradeModel{}))

	app := fiber.New()
	GradeRoutes(app.Group("/api", authMw.AuthMiddleware()), db)
	return app, db
}

func teacherBearer(t *testing.T) string {
	t.Helper()
	tok, _, err := authService.IssueAccessToken(uuid.New(), constants.RoleTeacher, "Grade Teacher")
	require.NoError(t, err)
	return "Bearer " + tok
}

func gradeRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
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

func gradeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func seedGradeStudent(t *testing.T, db *gorm.DB, idNumber string) studentModel.StudentModel {
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

func TestCreateGradeDerivesFinal(t *testing.T) {
	app, db := newGradeTestApp(t)
	token := teacherBearer(t)
	s := seedGradeStudent(t, db, "S-301")

	resp := gradeRequest(t, app, fiber.MethodPost, "/api/grades", token, fiber.Map{
		"student_id":  s.StudentID,
		"subject":     "Mathematics",
		"school_year": "2025-2026",
		"quarter1":    80, "quarter2": 85, "quarter3": 90, "quarter4": 78,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := gradeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, 83.25, data["grade_final"])
	require.Equal(t, "Passed", data["grade_remark"])
}

func TestCreateGradeUnknownStudent(t *testing.T) {
	app, _ := newGradeTestApp(t)
	resp := gradeRequest(t, app, fiber.MethodPost, "/api/grades", teacherBearer(t), fiber.Map{
		"student_id":  uuid.New(),
		"subject":     "History",
		"school_year": "2025-2026",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateGradeDuplicateTuple(t *testing.T) {
	app, db := newGradeTestApp(t)
	token := teacherBearer(t)
	s := seedGradeStudent(t, db, "S-302")

	payload := fiber.Map{
		"student_id":  s.StudentID,
		"subject":     "Science",
		"school_year": "2025-2026",
	}
	resp := gradeRequest(t, app, fiber.MethodPost, "/api/grades", token, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = gradeRequest(t, app, fiber.MethodPost, "/api/grades", token, payload)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUpdateGradeReDerivesFinal(t *testing.T) {
	app, db := newGradeTestApp(t)
	token := teacherBearer(t)
	s := seedGradeStudent(t, db, "S-303")

	resp := gradeRequest(t, app, fiber.MethodPost, "/api/grades", token, fiber.Map{
		"student_id":  s.StudentID,
		"subject":     "English",
		"school_year": "2025-2026",
		"quarter1":    70, "quarter2": 70, "quarter3": 70,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := gradeBody(t, resp)["data"].(map[string]any)
	require.Nil(t, created["grade_final"])
	gradeID := created["grade_id"].(string)

	resp = gradeRequest(t, app, fiber.MethodPut, "/api/grades/"+gradeID, token, fiber.Map{
		"quarter4": 90,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := gradeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, 75.0, updated["grade_final"])
	require.Equal(t, "Passed", updated["grade_remark"])
}

// A bad id in a bulk payload must not sink the whole batch.
func TestBulkUpdateSkipsUnknownIDs(t *testing.T) {
	app, db := newGradeTestApp(t)
	token := teacherBearer(t)
	s := seedGradeStudent(t, db, "S-304")

	resp := gradeRequest(t, app, fiber.MethodPost, "/api/grades", token, fiber.Map{
		"student_id":  s.StudentID,
		"subject":     "Biology",
		"school_year": "2025-2026",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	gradeID := gradeBody(t, resp)["data"].(map[string]any)["grade_id"].(string)

	resp = gradeRequest(t, app, fiber.MethodPut, "/api/grades/bulk", token, fiber.Map{
		"grades": []fiber.Map{
			{"grade_id": gradeID, "quarter1": 88},
			{"grade_id": uuid.New(), "quarter1": 90},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := gradeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, float64(1), data["updated"])
	require.Equal(t, float64(1), data["skipped"])

	var got gradeModel.GradeModel
	require.NoError(t, db.First(&got, "grade_id = ?", gradeID).Error)
	require.NotNil(t, got.GradeQuarter1)
	require.Equal(t, 88.0, *got.GradeQuarter1)
}

func TestGradeRoundTrip(t *testing.T) {
	app, db := newGradeTestApp(t)
	token := teacherBearer(t)
	s := seedGradeStudent(t, db, "S-305")

	resp := gradeRequest(t, app, fiber.MethodPost, "/api/grades", token, fiber.Map{
		"student_id":  s.StudentID,
		"subject":     "Chemistry",
		"school_year": "2025-2026",
		"quarter2":    64.5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	gradeID := gradeBody(t, resp)["data"].(map[string]any)["grade_id"].(string)

	resp = gradeRequest(t, app, fiber.MethodGet, "/api/grades/"+gradeID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := gradeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, 64.5, data["grade_quarter2"])
	require.Equal(t, "Chemistry", data["grade_subject"])
	require.Equal(t, s.StudentID.String(), data["grade_student_id"])
	require.Equal(t, "Pending", data["grade_remark"])
}

func TestGradeDeleteRequiresAdmin(t *testing.T) {
	app, db := newGradeTestApp(t)
	token := teacherBearer(t)
	s := seedGradeStudent(t, db, "S-306")

	resp := gradeRequest(t, app, fiber.MethodPost, "/api/grades", token, fiber.Map{
		"student_id":  s.StudentID,
		"subject":     "Physics",
		"school_year": "2025-2026",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	gradeID := gradeBody(t, resp)["data"].(map[string]any)["grade_id"].(string)

	resp = gradeRequest(t, app, fiber.MethodDelete, "/api/grades/"+gradeID, token, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	adminTok, _, err := authService.IssueAccessToken(uuid.New(), constants.RoleAdmin, "Admin")
	require.NoError(t, err)
	resp = gradeRequest(t, app, fiber.MethodDelete, "/api/grades/"+gradeID, "Bearer "+adminTok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
