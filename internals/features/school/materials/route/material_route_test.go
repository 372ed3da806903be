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
	classModel "schoolsync_backend/internals/features/school/classes/model"
	materialModel "schoolsync_backend/internals/features/school/materials/model"
	submissionModel "schoolsync_backend/internals/features/school/submissions/model"
	authService "schoolsync_backend/internals/features/users/auth/service"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

func newMaterialTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour
	configs.UploadDir = t.TempDir()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&classModel.ClassModel{},
		&materialModel.MaterialModel{},
		&submissionModel.SubmissionModel{},
	))

	app := fiber.New()
	MaterialRoutes(app.Group("/api", authMw.AuthMiddleware()), db)
	return app, db
}

func materialBearer(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := authService.IssueAccessToken(uuid.New(), role, "Test User")
	require.NoError(t, err)
	return "Bearer " + tok
}

func seedClass(t *testing.T, db *gorm.DB, section string) classModel.ClassModel {
	t.Helper()
	cls := classModel.ClassModel{
		ClassGradeLevel: "10",
		ClassSection:    section,
		ClassSchoolYear: "2025-2026",
	}
	require.NoError(t, db.Create(&cls).Error)
	return cls
}

func materialJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
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

func materialBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestCreateDocumentMaterialWithFile(t *testing.T) {
	app, db := newMaterialTestApp(t)
	cls := seedClass(t, db, "A")
	token := materialBearer(t, constants.RoleTeacher)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("class_id", cls.ClassID.String()))
	require.NoError(t, w.WriteField("subject", "Mathematics"))
	require.NoError(t, w.WriteField("title", "Chapter 4 notes"))
	require.NoError(t, w.WriteField("type", "document"))
	fw, err := w.CreateFormFile("file", "chapter4.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 notes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/materials", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := materialBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "document", data["material_type"])
	require.Equal(t, "chapter4.pdf", data["material_file_name"])
	require.NotEmpty(t, data["material_file_url"])
}

func TestCreateLinkMaterialNeedsURL(t *testing.T) {
	app, db := newMaterialTestApp(t)
	cls := seedClass(t, db, "B")
	token := materialBearer(t, constants.RoleTeacher)

	resp := materialJSON(t, app, fiber.MethodPost, "/api/materials", token, fiber.Map{
		"class_id": cls.ClassID,
		"subject":  "Science",
		"title":    "Cell video",
		"type":     "link",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = materialJSON(t, app, fiber.MethodPost, "/api/materials", token, fiber.Map{
		"class_id": cls.ClassID,
		"subject":  "Science",
		"title":    "Cell video",
		"type":     "link",
		"link_url": "https://example.com/cells",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := materialBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "https://example.com/cells", data["material_link_url"])
}

func TestCreateMaterialUnknownClass(t *testing.T) {
	app, _ := newMaterialTestApp(t)
	resp := materialJSON(t, app, fiber.MethodPost, "/api/materials", materialBearer(t, constants.RoleTeacher), fiber.Map{
		"class_id": uuid.New(),
		"subject":  "History",
		"title":    "Timeline",
		"type":     "document",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListMaterialsByType(t *testing.T) {
	app, db := newMaterialTestApp(t)
	cls := seedClass(t, db, "C")
	token := materialBearer(t, constants.RoleTeacher)

	for _, payload := range []fiber.Map{
		{"class_id": cls.ClassID, "subject": "English", "title": "Essay brief", "type": "assignment", "due_date": "2026-05-01"},
		{"class_id": cls.ClassID, "subject": "English", "title": "Grammar link", "type": "link", "link_url": "https://example.com/g"},
	} {
		resp := materialJSON(t, app, fiber.MethodPost, "/api/materials", token, payload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := materialJSON(t, app, fiber.MethodGet,
		"/api/materials?class_id="+cls.ClassID.String()+"&type=assignment", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := materialBody(t, resp)["data"].([]any)
	require.Len(t, rows, 1)
	first := rows[0].(map[string]any)
	require.Equal(t, "Essay brief", first["material_title"])
	require.NotEmpty(t, first["material_due_date"])
}

func TestStudentCannotCreateMaterial(t *testing.T) {
	app, db := newMaterialTestApp(t)
	cls := seedClass(t, db, "D")

	resp := materialJSON(t, app, fiber.MethodPost, "/api/materials", materialBearer(t, constants.RoleStudent), fiber.Map{
		"class_id": cls.ClassID,
		"subject":  "Art",
		"title":    "Sketching",
		"type":     "document",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteMaterialRemovesSubmissions(t *testing.T) {
	app, db := newMaterialTestApp(t)
	cls := seedClass(t, db, "E")
	token := materialBearer(t, constants.RoleTeacher)

	resp := materialJSON(t, app, fiber.MethodPost, "/api/materials", token, fiber.Map{
		"class_id": cls.ClassID,
		"subject":  "Physics",
		"title":    "Lab report",
		"type":     "assignment",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	materialID := materialBody(t, resp)["data"].(map[string]any)["material_id"].(string)

	sub := submissionModel.SubmissionModel{
		SubmissionMaterialID:  uuid.MustParse(materialID),
		SubmissionStudentID:   uuid.New(),
		SubmissionFileURL:     "/uploads/submissions/x.pdf",
		SubmissionStatus:      submissionModel.SubmissionStatusSubmitted,
		SubmissionSubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&sub).Error)

	resp = materialJSON(t, app, fiber.MethodDelete, "/api/materials/"+materialID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&submissionModel.SubmissionModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMaterialSubmissionsListingIsStaffOnly(t *testing.T) {
	app, db := newMaterialTestApp(t)
	cls := seedClass(t, db, "F")
	token := materialBearer(t, constants.RoleTeacher)

	resp := materialJSON(t, app, fiber.MethodPost, "/api/materials", token, fiber.Map{
		"class_id": cls.ClassID,
		"subject":  "Biology",
		"title":    "Worksheet",
		"type":     "assignment",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	materialID := materialBody(t, resp)["data"].(map[string]any)["material_id"].(string)

	student := materialBearer(t, constants.RoleStudent)
	resp = materialJSON(t, app, fiber.MethodGet, "/api/materials/"+materialID+"/submissions", student, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = materialJSON(t, app, fiber.MethodGet, "/api/materials/"+materialID+"/submissions", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := materialBody(t, resp)["data"].([]any)
	require.Empty(t, rows)
}
