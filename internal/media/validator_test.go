package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Run("accepts the three web formats", func(t *testing.T) {
		assert.NoError(t, Validate("photo.jpg", "image/jpeg", 1024))
		assert.NoError(t, Validate("photo.png", "image/png", 1024))
		assert.NoError(t, Validate("photo.webp", "image/webp", 1024))
	})

	t.Run("extension fallback for generic content type", func(t *testing.T) {
		assert.NoError(t, Validate("photo.jpeg", "application/octet-stream", 1024))
		assert.NoError(t, Validate("PHOTO.PNG", "", 1024))
	})

	t.Run("size ceiling", func(t *testing.T) {
		assert.NoError(t, Validate("photo.jpg", "image/jpeg", MaxUploadBytes))
		assert.ErrorIs(t, Validate("photo.jpg", "image/jpeg", MaxUploadBytes+1), ErrTooLarge)
	})

	t.Run("HEIC rejected with remediation message", func(t *testing.T) {
		assert.ErrorIs(t, Validate("photo.heic", "image/heic", 1024), ErrHEICUnsupported)
		assert.ErrorIs(t, Validate("photo.HEIF", "", 1024), ErrHEICUnsupported)
		// Declared type wins even with an innocent extension.
		assert.ErrorIs(t, Validate("photo.jpg", "image/heif", 1024), ErrHEICUnsupported)
		assert.Contains(t, ErrHEICUnsupported.Error(), "convert the photo")
	})

	t.Run("unknown types rejected", func(t *testing.T) {
		assert.ErrorIs(t, Validate("doc.pdf", "application/pdf", 1024), ErrInvalidType)
		assert.ErrorIs(t, Validate("clip.gif", "image/gif", 1024), ErrInvalidType)
		assert.ErrorIs(t, Validate("noext", "", 1024), ErrInvalidType)
	})

	t.Run("oversize reported before type", func(t *testing.T) {
		assert.ErrorIs(t, Validate("doc.pdf", "application/pdf", MaxUploadBytes+1), ErrTooLarge)
	})
}

func TestIsHEIC(t *testing.T) {
	assert.True(t, IsHEIC("a.heic", ""))
	assert.True(t, IsHEIC("a.HEIF", ""))
	assert.True(t, IsHEIC("a.jpg", "image/heic"))
	assert.True(t, IsHEIC("a.jpg", "image/heif-sequence"))
	assert.False(t, IsHEIC("a.jpg", "image/jpeg"))
	assert.False(t, IsHEIC("a.heical", "image/png")) // extension must match exactly
}
