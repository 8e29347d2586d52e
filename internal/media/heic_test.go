//go:build !heic

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertPassesThroughNonHEIC(t *testing.T) {
	f := &File{Name: "photo.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}
	out, err := Convert(f)
	assert.NoError(t, err)
	assert.Same(t, f, out)
}

func TestConvertWithoutDecoderFailsClosed(t *testing.T) {
	f := &File{Name: "photo.heic", ContentType: "image/heic", Data: []byte("not really heic")}
	out, err := Convert(f)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrHEICUnsupported)
}
