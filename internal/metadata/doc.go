// Package metadata extracts per-image EXIF metadata from camera RAW
// files.
//
// The package defines:
//
//   - Record: a flat, immutable snapshot of the metadata a single image
//     carries (camera, lens, exposure, capture time, embedded preview)
//   - Extractor: the interface the conversion pipeline consumes
//   - ExifExtractor: the default implementation built on goexif
//
// # Usage
//
//	ext := metadata.NewExifExtractor()
//	rec, err := ext.Extract(ctx, "/photos/DSCF0042.RAF")
//	if err != nil {
//	    // source is unreadable; the job fails, the batch continues
//	}
//	fmt.Println(rec.CameraModel, rec.Timestamp)
//
// # Missing tags
//
// RAW files vary wildly in which EXIF tags they populate. A missing tag
// is never an error: the Record field stays at its zero value and the
// filename renderer substitutes an empty string. Only a file whose EXIF
// block cannot be decoded at all fails, with an error wrapping
// ErrUnreadable.
package metadata
