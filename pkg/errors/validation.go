package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxWorkers bounds the size of the candidate evaluation pool.
const MaxWorkers = 256

// ValidatePath validates an input or output file path supplied on the
// command line or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateImagePath validates a path and checks that its extension names an
// image format the decoder understands.
func ValidateImagePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp":
		return nil
	case "":
		return New(ErrCodeInvalidImage, "image path has no extension: %q", path)
	}
	return New(ErrCodeInvalidImage, "unsupported image extension: %q", ext)
}

// ValidateWorkers checks a worker count. Zero means "use the default".
func ValidateWorkers(n int) error {
	if n < 0 || n > MaxWorkers {
		return New(ErrCodeInvalidInput, "workers must be between 0 and %d, got %d", MaxWorkers, n)
	}
	return nil
}
