// Package config provides configuration management for rawimport.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to the Options snapshot the converter consumes
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Filenames keep the original name
//	// Preview and thumbnail embedding enabled
//	// One worker per CPU
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.FileNameFormat = "%Y-%m-%d_{camera.model}"
//	err := settings.Save("/path/to/config.json")
//
// Settings are process-lifetime configuration: they are resolved once
// in main, passed into the batch runner as an immutable snapshot, and
// never consulted as global state.
package config
