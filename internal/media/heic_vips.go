//go:build heic

package media

import "github.com/h2non/bimg"

// decodeHEIC re-encodes a HEIC/HEIF photo as JPEG using libvips.  Built only
// with the `heic` tag because bimg needs cgo and a libvips with libheif
// support on the host.
func decodeHEIC(data []byte) ([]byte, error) {
	return bimg.NewImage(data).Process(bimg.Options{
		Type:    bimg.JPEG,
		Quality: heicQuality,
	})
}
