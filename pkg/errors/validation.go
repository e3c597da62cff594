package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputFormat validates a raster output format selector.
// Only formats the image encoder can write are accepted.
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "png", "jpg", "jpeg", "gif", "bmp", "tiff", "tif":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported output format: %q", format)
}

// ValidatePath validates a user-supplied file path.
// Paths are local filesystem arguments, so relative segments such as ".."
// are legitimate; only paths that cannot name a real file are rejected.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}

	for _, r := range path {
		if r == 0 || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}
