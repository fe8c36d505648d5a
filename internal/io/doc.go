// Package ioutils provides file system and image helpers shared by the
// conversion pipeline.
//
// # Atomic writes
//
// Output DNGs must never appear half-written, so all result bytes go
// through WriteFileAtomic: a temp file in the destination directory,
// renamed into place only once complete.
//
//	err := ioutils.WriteFileAtomic("/out/2024-03-05_X100V_DSCF0042.dng", data)
//
// # Directories
//
// EnsureDir wraps MkdirAll and is safe for concurrent workers creating
// the same nested output directory:
//
//	err := ioutils.EnsureDir("/out/sub/deeper")
//
// # Preview resizing
//
// ResizeJPEG scales an embedded RAW preview down to thumbnail size
// before it is handed to the DNG encoder:
//
//	thumb, err := ioutils.ResizeJPEG(rec.PreviewJPEG, 256, 256)
package ioutils
