package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
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
	materialModel "schoolsync_backend/internals/features/school/materials/model"
	submissionModel "schoolsync_backend/internals/features/school/submissions/model"
	authService "schoolsync_backend/internals/features/users/auth/service"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

func newSubmissionTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour
	configs.UploadDir = t.TempDir()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&materialModel.MaterialModel{}, &submissionModel.SubmissionModel{}))

	app := fiber.New()
	SubmissionRoutes(app.Group("/api", authMw.AuthMiddleware()), db)
	return app, db
}

func bearer(t *testing.T, id uuid.UUID, role string) string {
	t.Helper()
	tok, _, err := authService.IssueAccessToken(id, role, "Test User")
	require.NoError(t, err)
	return "Bearer " + tok
}

func seedAssignment(t *testing.T, db *gorm.DB, due *time.Time) materialModel.MaterialModel {
	t.Helper()
	m := materialModel.MaterialModel{
		MaterialClassID: uuid.New(),
		MaterialSubject: "Mathematics",
		MaterialTitle:   "Worksheet 3",
		MaterialType:    materialModel.MaterialTypeAssignment,
		MaterialDueDate: due,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func submitFile(t *testing.T, app *fiber.App, token string, materialID uuid.UUID, comments string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("material_id", materialID.String()))
	if comments != "" {
		require.NoError(t, w.WriteField("comments", comments))
	}
	fw, err := w.CreateFormFile("file", "answers.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 answers"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/submissions", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func submissionJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
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

func submissionBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestSubmitOnTime(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	due := time.Now().UTC().Add(48 * time.Hour)
	material := seedAssignment(t, db, &due)
	studentID := uuid.New()

	resp := submitFile(t, app, bearer(t, studentID, constants.RoleStudent), material.MaterialID, "done")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := submissionBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "submitted", data["submission_status"])
	require.Equal(t, "answers.pdf", data["submission_file_name"])
	require.NotEmpty(t, data["submission_file_url"])
}

func TestSubmitAfterDueDateIsLate(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	due := time.Now().UTC().Add(-24 * time.Hour)
	material := seedAssignment(t, db, &due)

	resp := submitFile(t, app, bearer(t, uuid.New(), constants.RoleStudent), material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := submissionBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "late", data["submission_status"])
}

func TestSubmitWithoutDueDateIsNeverLate(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)

	resp := submitFile(t, app, bearer(t, uuid.New(), constants.RoleStudent), material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := submissionBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "submitted", data["submission_status"])
}

func TestSecondSubmitConflicts(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)
	studentID := uuid.New()
	token := bearer(t, studentID, constants.RoleStudent)

	resp := submitFile(t, app, token, material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = submitFile(t, app, token, material.MaterialID, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSubmitUnknownMaterial(t *testing.T) {
	app, _ := newSubmissionTestApp(t)
	resp := submitFile(t, app, bearer(t, uuid.New(), constants.RoleStudent), uuid.New(), "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResubmitUpdatesOwnRow(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)
	studentID := uuid.New()
	token := bearer(t, studentID, constants.RoleStudent)

	resp := submitFile(t, app, token, material.MaterialID, "first pass")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := submissionBody(t, resp)["data"].(map[string]any)["submission_id"].(string)

	resp = submissionJSON(t, app, fiber.MethodPut, "/api/submissions/"+id, token, fiber.Map{
		"comments": "second pass",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := submissionBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "second pass", data["submission_comments"])

	// still one row for the pair
	var count int64
	require.NoError(t, db.Model(&submissionModel.SubmissionModel{}).
		Where("submission_material_id = ? AND submission_student_id = ?", material.MaterialID, studentID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUpdateSomeoneElsesSubmissionForbidden(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)
	owner := bearer(t, uuid.New(), constants.RoleStudent)

	resp := submitFile(t, app, owner, material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := submissionBody(t, resp)["data"].(map[string]any)["submission_id"].(string)

	other := bearer(t, uuid.New(), constants.RoleStudent)
	resp = submissionJSON(t, app, fiber.MethodPut, "/api/submissions/"+id, other, fiber.Map{
		"comments": "hijack",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGradeSubmission(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)
	student := bearer(t, uuid.New(), constants.RoleStudent)

	resp := submitFile(t, app, student, material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := submissionBody(t, resp)["data"].(map[string]any)["submission_id"].(string)

	teacherID := uuid.New()
	teacher := bearer(t, teacherID, constants.RoleTeacher)
	resp = submissionJSON(t, app, fiber.MethodPut, "/api/submissions/"+id+"/grade", teacher, fiber.Map{
		"score":    87.5,
		"feedback": "Good work",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := submissionBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "graded", data["submission_status"])
	require.Equal(t, 87.5, data["submission_score"])
	require.Equal(t, teacherID.String(), data["submission_graded_by"])
	require.NotEmpty(t, data["submission_graded_at"])

	// re-grading replaces the earlier score
	resp = submissionJSON(t, app, fiber.MethodPut, "/api/submissions/"+id+"/grade", teacher, fiber.Map{
		"score": 91.0,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = submissionBody(t, resp)["data"].(map[string]any)
	require.Equal(t, 91.0, data["submission_score"])
}

func TestGradeRequiresStaff(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)
	student := bearer(t, uuid.New(), constants.RoleStudent)

	resp := submitFile(t, app, student, material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := submissionBody(t, resp)["data"].(map[string]any)["submission_id"].(string)

	resp = submissionJSON(t, app, fiber.MethodPut, "/api/submissions/"+id+"/grade", student, fiber.Map{
		"score": 100,
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteOwnerOrAdmin(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)
	ownerID := uuid.New()
	owner := bearer(t, ownerID, constants.RoleStudent)

	resp := submitFile(t, app, owner, material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := submissionBody(t, resp)["data"].(map[string]any)["submission_id"].(string)

	stranger := bearer(t, uuid.New(), constants.RoleStudent)
	resp = submissionJSON(t, app, fiber.MethodDelete, "/api/submissions/"+id, stranger, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := bearer(t, uuid.New(), constants.RoleAdmin)
	resp = submissionJSON(t, app, fiber.MethodDelete, "/api/submissions/"+id, admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestByStudentSelfOrStaff(t *testing.T) {
	app, db := newSubmissionTestApp(t)
	material := seedAssignment(t, db, nil)
	ownerID := uuid.New()
	owner := bearer(t, ownerID, constants.RoleStudent)

	resp := submitFile(t, app, owner, material.MaterialID, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = submissionJSON(t, app, fiber.MethodGet, "/api/submissions/student/"+ownerID.String(), owner, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := submissionBody(t, resp)["data"].([]any)
	require.Len(t, rows, 1)

	other := bearer(t, uuid.New(), constants.RoleStudent)
	resp = submissionJSON(t, app, fiber.MethodGet, "/api/submissions/student/"+ownerID.String(), other, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	teacher := bearer(t, uuid.New(), constants.RoleTeacher)
	resp = submissionJSON(t, app, fiber.MethodGet, "/api/submissions/student/"+ownerID.String(), teacher, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Every per-id operation answers 404 for an id that does not exist.
func TestUnknownSubmissionIDReturnsNotFound(t *testing.T) {
	app, _ := newSubmissionTestApp(t)
	missing := uuid.NewString()

	student := bearer(t, uuid.New(), constants.RoleStudent)
	staff := bearer(t, uuid.New(), constants.RoleTeacher)

	resp := submissionJSON(t, app, fiber.MethodGet, "/api/submissions/"+missing, student, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = submissionJSON(t, app, fiber.MethodPut, "/api/submissions/"+missing, student, fiber.Map{
		"comments": "resubmitting",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = submissionJSON(t, app, fiber.MethodPut, "/api/submissions/"+missing+"/grade", staff, fiber.Map{
		"score": 80.0,
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = submissionJSON(t, app, fiber.MethodDelete, "/api/submissions/"+missing, student, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
