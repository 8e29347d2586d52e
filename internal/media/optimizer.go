package media

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"log"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// maxDimension is the longest side allowed after optimization.  Anything
// larger is scaled down proportionally.
const maxDimension = 2048

// qualitySteps is the descending sequence of JPEG qualities the encoder
// loop walks through until the byte budget is met.
var qualitySteps = [...]int{90, 75, 60, 45}

// Optimize produces a web-safe JPEG at or under maxBytes.  The contract is
// best-effort: a file already under budget is returned unchanged (same
// pointer, no decode cost), and any decode/encode failure degrades to
// returning the HEIC-converted but unoptimized file so a valid image stays
// uploadable.  Only HEIC conversion failure is fatal, since there is no
// renderable fallback in that case.
//
// The quality-to-size mapping belongs to the JPEG encoder; the guarantee is
// "try monotonically lower qualities until budget met or attempts exhausted",
// not a final size.
func Optimize(f *File, maxBytes int64) (*File, error) {
	if f.Size() <= maxBytes {
		return f, nil
	}
	converted, err := Convert(f)
	if err != nil {
		return nil, err
	}
	out, err := reencode(converted, maxBytes)
	if err != nil {
		log.Printf("media: optimize failed for %s, uploading unoptimized: %v", f.Name, err)
		return converted, nil
	}
	return out, nil
}

// reencode decodes, downscales if oversized and re-encodes at descending
// qualities.  The last attempt is kept even when it misses the budget.
func reencode(f *File, maxBytes int64) (*File, error) {
	src, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if longest := maxInt(w, h); longest > maxDimension {
		scale := float64(maxDimension) / float64(longest)
		nw := int(math.Round(float64(w) * scale))
		nh := int(math.Round(float64(h) * scale))
		src = imaging.Resize(src, nw, nh, imaging.Lanczos)
	}

	var last []byte
	for _, q := range qualitySteps {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: q}); err != nil {
			return nil, err
		}
		last = buf.Bytes()
		if int64(len(last)) <= maxBytes {
			break
		}
	}

	return &File{
		Name:        jpegName(f.Name),
		ContentType: "image/jpeg",
		Data:        last,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
