// Package ingest enumerates the RAW files that make up a conversion
// batch.
//
// Work can come from an explicit file list or from a directory scan:
//
//	sources, skipped := ingest.Files(args)
//
//	sources, skipped, err := ingest.Dir("/photos/card", true)
//
// Only files with a recognized RAW extension enter the batch; anything
// else is silently excluded and reported back to the caller for
// verbose logging. Recursive scans tag each Source with its relative
// subdirectory so the converter can mirror the input tree under the
// output root. Enumeration order is sorted and therefore stable.
package ingest
