package media

import (
	"errors"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the hard ceiling for a single uploaded image.
const MaxUploadBytes = 10 << 20 // 10 MiB

// Validation errors.  These are user-facing messages surfaced inline by the
// upload endpoint; they are never logged as system errors.
var (
	ErrTooLarge        = errors.New("file is too large (max 10 MB)")
	ErrHEICUnsupported = errors.New("HEIC images are not supported: please convert the photo to JPEG or PNG before uploading")
	ErrInvalidType     = errors.New("invalid file type: only JPEG, PNG and WebP images are accepted")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Validate checks an upload by metadata alone (name, declared content type,
// byte size); it never reads the file contents.  HEIC is rejected here even
// though the optimize path can sometimes convert it, because conversion is a
// platform capability that may be absent; the validator keeps the contract
// predictable for the admin form.
func Validate(name, contentType string, size int64) error {
	if size > MaxUploadBytes {
		return ErrTooLarge
	}
	if IsHEIC(name, contentType) {
		return ErrHEICUnsupported
	}
	if allowedTypes[strings.ToLower(contentType)] {
		return nil
	}
	// Some file pickers report a generic or empty content type; fall back
	// to the filename extension.
	if allowedExts[strings.ToLower(filepath.Ext(name))] {
		return nil
	}
	return ErrInvalidType
}

// IsHEIC reports whether the file looks like Apple's HEIC/HEIF photo format,
// by declared media type or filename extension (case-insensitive).
func IsHEIC(name, contentType string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "heic") || strings.Contains(ct, "heif") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".heic" || ext == ".heif"
}
