package helper

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolsync_backend/internals/configs"
)

// UploadKind carries the per-kind size cap and extension allowlist.
type UploadKind struct {
	Folder  string
	MaxSize int64
	Exts    map[string]struct{}
}

func exts(list ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, e := range list {
		m[e] = struct{}{}
	}
	return m
}

var (
	UploadAvatar = UploadKind{
		Folder:  "avatars",
		MaxSize: 5 << 20,
		Exts:    exts(".jpg", ".jpeg", ".png", ".gif", ".webp"),
	}
	UploadMaterial = UploadKind{
		Folder:  "materials",
		MaxSize: 50 << 20,
		Exts: exts(".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx",
			".jpg", ".jpeg", ".png", ".gif", ".mp4", ".mp3", ".zip", ".txt"),
	}
	UploadSubmission = UploadKind{
		Folder:  "submissions",
		MaxSize: 10 << 20,
		Exts: exts(".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx",
			".jpg", ".jpeg", ".png", ".zip", ".txt"),
	}
)

// UploadedFile is what gets persisted on the owning record.
type UploadedFile struct {
	URL  string
	Name string
	Size int64
}

// ValidateUpload rejects oversized or disallowed files before anything is written.
func ValidateUpload(fh *multipart.FileHeader, kind UploadKind) error {
	if fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}
	if fh.Size > kind.MaxSize {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("File exceeds maximum size of %dMB", kind.MaxSize>>20))
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := kind.Exts[ext]; !ok {
		return fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}
	return nil
}

// RandomFilename builds a collision-safe stored name, original name is kept
// as metadata on the record.
func RandomFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
}

// SaveUpload validates then stores the file under the upload dir and returns
// the public URL path plus original metadata.
func SaveUpload(c *fiber.Ctx, fh *multipart.FileHeader, kind UploadKind) (*UploadedFile, error) {
	if err := ValidateUpload(fh, kind); err != nil {
		return nil, err
	}

	dir := filepath.Join(configs.UploadDir, kind.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to prepare upload directory")
	}

	stored := RandomFilename(fh.Filename)
	if err := c.SaveFile(fh, filepath.Join(dir, stored)); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to store file")
	}

	return &UploadedFile{
		URL:  "/uploads/" + kind.Folder + "/" + stored,
		Name: fh.Filename,
		Size: fh.Size,
	}, nil
}

// SaveBytes stores an already-processed payload (e.g. re-encoded avatar).
func SaveBytes(data []byte, kind UploadKind, storedName string) (string, error) {
	dir := filepath.Join(configs.UploadDir, kind.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to prepare upload directory")
	}
	if err := os.WriteFile(filepath.Join(dir, storedName), data, 0o644); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store file")
	}
	return "/uploads/" + kind.Folder + "/" + storedName, nil
}
