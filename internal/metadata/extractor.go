package metadata

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ErrUnreadable indicates that a source file's metadata could not be
// decoded. Errors returned by Extract wrap this sentinel.
var ErrUnreadable = errors.New("unreadable image metadata")

// Extractor produces a metadata Record for a source file.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Record, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string) (*Record, error)

func (f ExtractorFunc) Extract(ctx context.Context, path string) (*Record, error) {
	return f(ctx, path)
}

// ExifExtractor reads EXIF metadata from RAW files. Most RAW formats
// are TIFF containers, so the standard EXIF IFD layout applies.
type ExifExtractor struct{}

// NewExifExtractor creates a new ExifExtractor.
func NewExifExtractor() *ExifExtractor {
	return &ExifExtractor{}
}

// Extract decodes the EXIF block of the file at path into a Record.
//
// A file whose EXIF block cannot be decoded at all fails with an error
// wrapping ErrUnreadable. Individual missing tags are not errors; the
// corresponding Record fields stay at their zero value.
func (e *ExifExtractor) Extract(ctx context.Context, path string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	base := filepath.Base(path)
	rec := &Record{
		OriginalName: strings.TrimSuffix(base, filepath.Ext(base)),
		OriginalExt:  filepath.Ext(base),
	}

	rec.CameraMake = stringTag(x, exif.Make)
	rec.CameraModel = stringTag(x, exif.Model)
	rec.LensMake = stringTag(x, exif.LensMake)
	rec.LensModel = stringTag(x, exif.LensModel)

	rec.ISO = intTag(x, exif.ISOSpeedRatings)
	rec.Width = intTag(x, exif.PixelXDimension)
	rec.Height = intTag(x, exif.PixelYDimension)
	rec.BitDepth = intTag(x, exif.BitsPerSample)
	rec.ColorSpace = colorSpaceName(intTag(x, exif.ColorSpace))

	// A Flash value of zero means "did not fire", so absence has to be
	// told apart from the zero value.
	if tag, err := x.Get(exif.Flash); err == nil {
		if v, err := tag.Int(0); err == nil {
			rec.Flash = flashState(v)
		}
	}

	if num, den, ok := ratTag(x, exif.ExposureTime); ok {
		rec.ShutterSpeed = formatExposure(num, den)
	}
	if r, ok := bigRatTag(x, exif.FNumber); ok {
		v, _ := r.Float64()
		rec.FStop = trimFloat(v, 1)
	}
	if r, ok := bigRatTag(x, exif.FocalLength); ok {
		v, _ := r.Float64()
		rec.FocalLength = trimFloat(v, 1) + "mm"
	}
	if r, ok := bigRatTag(x, exif.SubjectDistance); ok {
		v, _ := r.Float64()
		if v > 0 {
			rec.FocusDistance = trimFloat(v, 1) + "m"
		}
	}
	if r, ok := bigRatTag(x, exif.ExposureBiasValue); ok {
		v, _ := r.Float64()
		if v != 0 {
			rec.ExposureComp = signedFloat(v)
		}
	}

	if ts, err := x.DateTime(); err == nil {
		rec.Timestamp = ts
	}

	if thumb, err := x.JpegThumbnail(); err == nil {
		rec.PreviewJPEG = thumb
	}

	return rec, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func intTag(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

func ratTag(x *exif.Exif, name exif.FieldName) (num, den int64, ok bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, 0, false
	}
	num, den, err = tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, 0, false
	}
	return num, den, true
}

func bigRatTag(x *exif.Exif, name exif.FieldName) (*big.Rat, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return nil, false
	}
	if tag.Format() != tiff.RatVal {
		return nil, false
	}
	r, err := tag.Rat(0)
	if err != nil || r.Denom().Sign() == 0 {
		return nil, false
	}
	return r, true
}

// formatExposure renders an exposure time the way photographers write
// it: fractional below one second ("1/250"), decimal otherwise ("2.5").
func formatExposure(num, den int64) string {
	if num <= 0 || den <= 0 {
		return ""
	}
	if g := gcd(num, den); g > 1 {
		num, den = num/g, den/g
	}
	if num < den {
		if den%num == 0 {
			return fmt.Sprintf("1/%d", den/num)
		}
		// Non-unit fractions like 2/3s keep a fractional denominator
		// rather than truncating to 1/1.
		return "1/" + trimFloat(float64(den)/float64(num), 1)
	}
	return trimFloat(float64(num)/float64(den), 1)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// flashState decodes the EXIF Flash bitmask; bit 0 records whether the
// flash fired.
func flashState(v int) string {
	if v&1 == 1 {
		return "on"
	}
	return "off"
}

// colorSpaceName maps the EXIF ColorSpace code to a label.
func colorSpaceName(v int) string {
	switch v {
	case 1:
		return "sRGB"
	case 2:
		return "AdobeRGB"
	case 65535:
		return "uncalibrated"
	default:
		return ""
	}
}

func trimFloat(f float64, prec int) string {
	s := fmt.Sprintf("%.*f", prec, f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func signedFloat(f float64) string {
	if f > 0 {
		return "+" + trimFloat(f, 1)
	}
	return trimFloat(f, 1)
}
