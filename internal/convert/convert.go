// Package convert defines the seam between the import pipeline and the
// RAW decoding / DNG encoding machinery.
//
// The pipeline treats conversion as a black box: bytes in, DNG bytes
// out. The default implementation shells out to the dnglab tool; tests
// substitute a Func.
package convert

import (
	"context"

	"github.com/handiism/rawimport/internal/metadata"
)

// Options is the per-batch conversion configuration. It is immutable
// and shared read-only across all workers.
type Options struct {
	// EmbedOriginal embeds the untouched source RAW inside the DNG.
	// Conversion takes considerably longer with this enabled.
	EmbedOriginal bool

	// EmbedPreview embeds a full-size rendered preview.
	EmbedPreview bool

	// EmbedThumbnail embeds a small thumbnail derived from the
	// source's preview image.
	EmbedThumbnail bool

	// Thumbnail holds the pre-rendered thumbnail bytes to embed,
	// prepared by the pipeline when EmbedThumbnail is set and the
	// source carries a preview.
	Thumbnail []byte

	// Artist is written into the DNG artist tag. Empty leaves the
	// tag unset.
	Artist string

	// Software is written into the DNG software tag.
	Software string
}

// Converter turns source RAW bytes into DNG bytes.
//
// A Converter must be safe for concurrent use; one call is made per
// job and any error is terminal for that job only.
type Converter interface {
	Convert(ctx context.Context, src []byte, rec *metadata.Record, opts Options) ([]byte, error)
}

// Func adapts a function to the Converter interface.
type Func func(ctx context.Context, src []byte, rec *metadata.Record, opts Options) ([]byte, error)

func (f Func) Convert(ctx context.Context, src []byte, rec *metadata.Record, opts Options) ([]byte, error) {
	return f(ctx, src, rec, opts)
}
