package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/handiism/rawimport/internal/metadata"
)

// DNGLabConverter converts RAW files by invoking the dnglab command
// line tool. dnglab works on files, so each call stages the source in
// a private temp directory and reads the result back.
//
// dnglab renders the preview and thumbnail itself from the decoded RAW
// and writes its own software tag; it has no flags for caller-supplied
// thumbnail bytes or Options.Software, so those fields only take effect
// with converters that accept them.
type DNGLabConverter struct {
	// Binary is the dnglab executable to run. Defaults to "dnglab"
	// resolved via PATH.
	Binary string
}

// NewDNGLabConverter creates a converter backed by the dnglab binary.
func NewDNGLabConverter(binary string) *DNGLabConverter {
	if binary == "" {
		binary = "dnglab"
	}
	return &DNGLabConverter{Binary: binary}
}

// Convert runs dnglab convert on src and returns the resulting DNG
// bytes. The temp staging directory is removed regardless of outcome,
// so a failed conversion leaves nothing behind.
func (c *DNGLabConverter) Convert(ctx context.Context, src []byte, rec *metadata.Record, opts Options) ([]byte, error) {
	dir, err := os.MkdirTemp("", "rawimport-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	// dnglab picks its decoder from the input extension, so keep the
	// original name and extension for the staged copy.
	ext := rec.OriginalExt
	if ext == "" {
		ext = ".raw"
	}
	in := filepath.Join(dir, rec.OriginalName+ext)
	out := filepath.Join(dir, rec.OriginalName+".dng")
	if err := os.WriteFile(in, src, 0644); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, c.Binary, convertArgs(opts, in, out)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("dnglab: %s", msg)
	}

	return os.ReadFile(out)
}

// convertArgs builds the dnglab convert argument list for opts.
func convertArgs(opts Options, in, out string) []string {
	args := []string{"convert"}
	if opts.EmbedOriginal {
		args = append(args, "--embed-raw", "true")
	} else {
		args = append(args, "--embed-raw", "false")
	}
	if !opts.EmbedPreview {
		args = append(args, "--image-preview", "false")
	}
	if !opts.EmbedThumbnail {
		args = append(args, "--image-thumbnail", "false")
	}
	if opts.Artist != "" {
		args = append(args, "--artist", opts.Artist)
	}
	return append(args, in, out)
}
