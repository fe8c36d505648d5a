package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/handiism/rawimport/internal/convert"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir      string `json:"output_dir"`
	FileNameFormat string `json:"file_name_format"`
	Force          bool   `json:"force"`
	Recurse        bool   `json:"recurse"`

	// Conversion settings
	Artist           string `json:"artist"`
	EmbedOriginal    bool   `json:"embed_original"`
	EmbedPreview     bool   `json:"embed_preview"`
	EmbedThumbnail   bool   `json:"embed_thumbnail"`
	ThumbnailMaxSize int    `json:"thumbnail_max_size"`
	ConverterBinary  string `json:"converter_binary"`

	// Scheduling
	Workers int `json:"workers"`
}

// DefaultSettings returns settings with default values.
//
// The default filename format is just the original filename, so a run
// with no -format flag renames nothing.
func DefaultSettings() *Settings {
	return &Settings{
		FileNameFormat:   "{image.original_filename}",
		EmbedPreview:     true,
		EmbedThumbnail:   true,
		ThumbnailMaxSize: 256,
		ConverterBinary:  "dnglab",
		Workers:          runtime.NumCPU(),
	}
}

// Load reads settings from a JSON file. A missing file yields the
// defaults, not an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if settings.Workers <= 0 {
		settings.Workers = runtime.NumCPU()
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToOptions converts settings to the converter Options snapshot shared
// by all workers.
func (s *Settings) ToOptions() convert.Options {
	return convert.Options{
		EmbedOriginal:  s.EmbedOriginal,
		EmbedPreview:   s.EmbedPreview,
		EmbedThumbnail: s.EmbedThumbnail,
		Artist:         s.Artist,
		Software:       "rawimport",
	}
}
