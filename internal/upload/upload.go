package upload

import (
	"errors"
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go-procure/internal/config"
	"go-procure/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// MaxImageSize caps uploaded images at 5MB, matching the historical limit.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrUnsupportedType = errors.New("only JPEG, JPG, PNG, and GIF images are allowed")
	ErrTooLarge        = errors.New("image exceeds the 5MB size limit")
)

// ImageStore saves uploaded images under a subdirectory of the configured
// image root and builds public URLs for them.
type ImageStore struct {
	BaseDir string
	BaseURL string
}

func NewImageStore(cfg *config.Config) *ImageStore {
	if _, err := os.Stat(cfg.ImagePath); os.IsNotExist(err) {
		os.MkdirAll(cfg.ImagePath, 0755)
	}
	return &ImageStore{
		BaseDir: cfg.ImagePath,
		BaseURL: cfg.BaseURL,
	}
}

// ValidateImage checks extension, MIME type and size before anything touches disk.
func ValidateImage(file *multipart.FileHeader, allowGIF bool) error {
	if file.Size > MaxImageSize {
		return ErrTooLarge
	}
	if !allowedExt(file.Filename, allowGIF) {
		return ErrUnsupportedType
	}
	mime := strings.ToLower(file.Header.Get("Content-Type"))
	switch mime {
	case "image/jpeg", "image/jpg", "image/png":
	case "image/gif":
		if !allowGIF {
			return ErrUnsupportedType
		}
	case "":
		// Some clients omit the part Content-Type; the extension check above
		// already gated the name.
	default:
		return ErrUnsupportedType
	}
	return nil
}

func allowedExt(filename string, allowGIF bool) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpeg", ".jpg", ".png":
		return true
	case ".gif":
		return allowGIF
	default:
		return false
	}
}

// UniqueName builds a collision-resistant filename keeping a slug of the
// original base name and its extension.
func UniqueName(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := utils.Slugify(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	if base == "" {
		return fmt.Sprintf("%s-%s%s", prefix, suffix, ext)
	}
	return fmt.Sprintf("%s-%s-%s%s", prefix, base, suffix, ext)
}

// Save validates the image and writes it under BaseDir/subdir, returning the
// public URL clients will see.
func (s *ImageStore) Save(c *fiber.Ctx, file *multipart.FileHeader, subdir, prefix string, allowGIF bool) (string, error) {
	if err := ValidateImage(file, allowGIF); err != nil {
		return "", err
	}

	dir := filepath.Join(s.BaseDir, subdir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	name := UniqueName(prefix, file.Filename)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/images/%s/%s", s.BaseURL, subdir, name), nil
}

// Delete removes a previously saved image given its public URL. Unknown or
// external URLs are ignored.
func (s *ImageStore) Delete(url string) {
	rel, ok := strings.CutPrefix(url, s.BaseURL+"/images/")
	if !ok {
		return
	}
	// path.Clean guards against ../ escapes baked into stored URLs
	rel = path.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return
	}
	local := filepath.Join(s.BaseDir, filepath.FromSlash(rel))
	if _, err := os.Stat(local); err == nil {
		os.Remove(local)
	}
}
