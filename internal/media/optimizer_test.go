package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFile(t *testing.T, name string, w, h int) *File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	// A little variation keeps encoders honest; a flat image compresses to
	// almost nothing.
	for y := 0; y < h; y += 16 {
		for x := 0; x < w; x += 16 {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &File{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}

func decodeJPEG(t *testing.T, f *File) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(f.Data))
	require.NoError(t, err)
	return img
}

func TestOptimizeShortCircuitsUnderBudget(t *testing.T) {
	f := pngFile(t, "small.png", 64, 64)
	out, err := Optimize(f, f.Size())
	assert.NoError(t, err)
	assert.Same(t, f, out) // untouched, not re-encoded
}

func TestOptimizeResizesLongestSideTo2048(t *testing.T) {
	f := pngFile(t, "wide.png", 4096, 1024)
	out, err := Optimize(f, 16) // force the re-encode path
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "image/jpeg", out.ContentType)
	assert.Equal(t, "wide.jpg", out.Name)

	b := decodeJPEG(t, out).Bounds()
	assert.Equal(t, 2048, b.Dx())
	assert.Equal(t, 512, b.Dy())
}

func TestOptimizeKeepsSmallDimensions(t *testing.T) {
	f := pngFile(t, "tiny.png", 120, 80)
	out, err := Optimize(f, 1) // impossible budget, last quality step kept
	require.NoError(t, err)
	require.NotNil(t, out)

	b := decodeJPEG(t, out).Bounds()
	assert.Equal(t, 120, b.Dx())
	assert.Equal(t, 80, b.Dy())
	// Budget was missed but the file is still usable.
	assert.Greater(t, out.Size(), int64(1))
}

func TestOptimizeReducesOversizedFile(t *testing.T) {
	f := pngFile(t, "big.png", 3000, 2000)
	budget := f.Size() - 1
	out, err := Optimize(f, budget)
	require.NoError(t, err)

	b := decodeJPEG(t, out).Bounds()
	assert.Equal(t, 2048, maxInt(b.Dx(), b.Dy()))
	assert.Equal(t, 1365, minInt(b.Dx(), b.Dy()))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestOptimizeFailsOnlyOnHEIC(t *testing.T) {
	f := &File{Name: "x.heic", ContentType: "image/heic", Data: bytes.Repeat([]byte{1}, 64)}
	out, err := Optimize(f, 1)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrHEICUnsupported)
}

func TestOptimizeDegradesOnUndecodableInput(t *testing.T) {
	f := &File{Name: "corrupt.jpg", ContentType: "image/jpeg", Data: bytes.Repeat([]byte{7}, 128)}
	out, err := Optimize(f, 1)
	assert.NoError(t, err)
	assert.Same(t, f, out) // uploaded as-is rather than rejected
}
