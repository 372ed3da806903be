package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
)

const (
	avatarMaxW    = 512
	avatarMaxH    = 512
	avatarQuality = 80
)

// ConvertAvatarToWebP decodes an uploaded image, bounds it to the avatar box
// and re-encodes it as webp. Keeps storage small and strips whatever the
// original container carried.
func ConvertAvatarToWebP(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to open uploaded image")
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded image")
	}

	img, err := decodeImage(buf.Bytes(), fh.Filename)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unsupported image format")
	}

	img = imaging.Fit(img, avatarMaxW, avatarMaxH, imaging.Lanczos)

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Lossless: false, Quality: avatarQuality}); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to encode avatar")
	}
	return out.Bytes(), nil
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	// fallback by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}

	img, _, err := image.Decode(bytes.NewReader(all))
	return img, err
}
