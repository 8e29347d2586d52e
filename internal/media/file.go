// Package media implements the upload-side image pipeline: metadata
// validation, HEIC/HEIF conversion and best-effort size optimization.
// All functions operate on in-memory files and never touch the network;
// storing the result is the caller's concern.
package media

import (
	"path/filepath"
	"strings"
)

// File is an in-memory upload: the original filename, the declared content
// type from the multipart part, and the raw bytes.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the byte length of the file contents.
func (f *File) Size() int64 { return int64(len(f.Data)) }

// jpegName swaps the extension of a filename for .jpg, keeping the base.
func jpegName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".jpg"
}
