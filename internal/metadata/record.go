package metadata

import "time"

// Record holds the per-image metadata used for filename rendering and
// DNG tagging.
//
// A Record is produced once per source file by an Extractor and is never
// mutated afterwards. Fields that are absent from the source EXIF data
// are left at their zero value; filename rendering substitutes an empty
// string for them rather than failing.
type Record struct {
	// CameraMake is the camera manufacturer, e.g. "FUJIFILM".
	CameraMake string

	// CameraModel is the camera model name, e.g. "X100V".
	CameraModel string

	// ShutterSpeed is the exposure time as recorded, e.g. "1/250".
	ShutterSpeed string

	// ISO is the ISO speed rating. Zero if not recorded.
	ISO int

	// ExposureComp is the exposure bias, e.g. "+0.7" or "-1.3".
	// Empty if not recorded.
	ExposureComp string

	// Flash is "on" if the flash fired, "off" if it did not.
	// Empty if not recorded.
	Flash string

	// LensMake is the lens manufacturer.
	LensMake string

	// LensModel is the lens model name.
	LensModel string

	// FocalLength is the focal length in millimeters, e.g. "35mm".
	FocalLength string

	// FStop is the aperture f-number, e.g. "2.8".
	FStop string

	// FocusDistance is the subject distance in meters, e.g. "1.2m".
	// Empty if not recorded.
	FocusDistance string

	// Width and Height are the image dimensions in pixels.
	// Zero if not recorded.
	Width  int
	Height int

	// BitDepth is the bits per sample. Zero if not recorded.
	BitDepth int

	// ColorSpace names the EXIF color space, e.g. "sRGB".
	// Empty if not recorded.
	ColorSpace string

	// OriginalName is the source filename without directory or
	// extension, e.g. "DSCF0042".
	OriginalName string

	// OriginalExt is the source file extension including the dot,
	// e.g. ".RAF". Converters that stage files on disk use it to
	// keep the format recognizable.
	OriginalExt string

	// Timestamp is the capture time (EXIF DateTimeOriginal).
	// Zero if the source carries no usable timestamp.
	Timestamp time.Time

	// PreviewJPEG holds the embedded JPEG preview, if the source has
	// one. Used to derive the thumbnail embedded in the output DNG.
	PreviewJPEG []byte
}

// HasTimestamp returns true if the record carries a capture time.
func (r *Record) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// HasPreview returns true if an embedded JPEG preview was found.
func (r *Record) HasPreview() bool {
	return len(r.PreviewJPEG) > 0
}
