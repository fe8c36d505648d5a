package ioutils

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path without ever exposing a partial
// file. The bytes go to a hidden temp file in the destination
// directory first and are renamed into place once fully written, so a
// crash or error mid-write leaves no artifact at path.
//
// Any existing file at path is replaced; callers enforce overwrite
// policy before writing.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".rawimport-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// EnsureDir creates a directory and all parents if they don't exist.
//
// Safe to call concurrently for the same path: MkdirAll treats an
// already-existing directory as success, so racing workers cannot
// fail each other.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
