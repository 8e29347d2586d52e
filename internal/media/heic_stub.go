//go:build !heic

package media

import "errors"

// decodeHEIC is the default stub used when the binary is built without the
// `heic` tag.  Convert maps this to ErrHEICUnsupported.
func decodeHEIC([]byte) ([]byte, error) {
	return nil, errors.New("heic decoder not built in")
}
