package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// rawExtensions is the whitelist of recognized RAW file extensions,
// lowercase without the leading dot.
var rawExtensions = map[string]bool{
	"3fr": true, "arw": true, "cr2": true, "cr3": true, "crw": true,
	"dng": true, "erf": true, "iiq": true, "kdc": true, "mef": true,
	"mos": true, "mrw": true, "nef": true, "nrw": true, "orf": true,
	"pef": true, "raf": true, "raw": true, "rw2": true, "sr2": true,
	"srw": true, "x3f": true,
}

// Source is one file selected for conversion.
type Source struct {
	// Path is the location of the RAW file.
	Path string

	// RelDir is the subdirectory of the source relative to the
	// enumeration root. Empty for explicit file lists and flat
	// directory scans; used to mirror the input tree under the
	// output root when recursing.
	RelDir string
}

// IsRAWFile reports whether path has a recognized RAW extension.
// The check is case-insensitive.
func IsRAWFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return rawExtensions[ext]
}

// Files builds the work set from an explicit file list. Files with
// unrecognized extensions are excluded from the returned sources and
// reported in skipped; they are not errors.
func Files(paths []string) (sources []Source, skipped []string) {
	for _, path := range paths {
		if IsRAWFile(path) {
			sources = append(sources, Source{Path: path})
		} else {
			skipped = append(skipped, path)
		}
	}
	return sources, skipped
}

// Dir enumerates RAW files under root. With recurse set it descends
// into subdirectories and records each file's relative subdirectory so
// the output tree can mirror the input tree.
//
// The result is sorted by path so that enumeration order is stable
// across runs.
func Dir(root string, recurse bool) (sources []Source, skipped []string, err error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("source path is not a directory: %s", root)
	}

	sources, skipped, err = scanDir(root, "", recurse)
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	sort.Strings(skipped)

	return sources, skipped, nil
}

func scanDir(dir, rel string, recurse bool) (sources []Source, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if !recurse {
				continue
			}
			sub, subSkipped, err := scanDir(path, filepath.Join(rel, entry.Name()), true)
			if err != nil {
				return nil, nil, err
			}
			sources = append(sources, sub...)
			skipped = append(skipped, subSkipped...)
			continue
		}

		if IsRAWFile(path) {
			sources = append(sources, Source{Path: path, RelDir: rel})
		} else {
			skipped = append(skipped, path)
		}
	}

	return sources, skipped, nil
}
