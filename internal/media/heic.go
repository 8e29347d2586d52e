package media

// heicQuality is the fixed JPEG quality used when re-encoding a decoded
// HEIC photo.
const heicQuality = 92

// Convert turns a HEIC/HEIF photo into a JPEG.  Non-HEIC input is returned
// unchanged (same pointer), so the call is an idempotent no-op on the normal
// path.  Conversion is one-shot and gated entirely by build-time decoder
// support: every failure mode (no decoder compiled in, decode error, empty
// encoder output) maps to the single ErrHEICUnsupported remediation message.
func Convert(f *File) (*File, error) {
	if !IsHEIC(f.Name, f.ContentType) {
		return f, nil
	}
	out, err := decodeHEIC(f.Data)
	if err != nil || len(out) == 0 {
		return nil, ErrHEICUnsupported
	}
	return &File{
		Name:        jpegName(f.Name),
		ContentType: "image/jpeg",
		Data:        out,
	}, nil
}
