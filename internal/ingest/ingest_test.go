package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIsRAWFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.arw", true},
		{"photo.ARW", true},
		{"photo.Raf", true},
		{"photo.cr3", true},
		{"photo.dng", true},
		{"photo.jpg", false},
		{"photo.mp3", false},
		{"noextension", false},
		{"dir/photo.nef", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsRAWFile(tt.path); got != tt.want {
				t.Errorf("IsRAWFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFiles_FiltersUnsupported(t *testing.T) {
	sources, skipped := Files([]string{"a.arw", "b.txt", "c.NEF"})

	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[0].Path != "a.arw" || sources[1].Path != "c.NEF" {
		t.Errorf("unexpected sources: %+v", sources)
	}
	if !reflect.DeepEqual(skipped, []string{"b.txt"}) {
		t.Errorf("skipped = %v, want [b.txt]", skipped)
	}
}

func TestDir_Flat(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.raf"))
	touch(t, filepath.Join(root, "b.arw"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "c.nef"))

	sources, skipped, err := Dir(root, false)
	if err != nil {
		t.Fatal(err)
	}

	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2 (non-recursive scan must not descend)", len(sources))
	}
	for _, src := range sources {
		if src.RelDir != "" {
			t.Errorf("flat scan RelDir = %q, want empty", src.RelDir)
		}
	}
	if len(skipped) != 1 || filepath.Base(skipped[0]) != "notes.txt" {
		t.Errorf("skipped = %v, want notes.txt only", skipped)
	}
}

func TestDir_Recursive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.raw"))
	touch(t, filepath.Join(root, "sub", "b.raw"))
	touch(t, filepath.Join(root, "sub", "deeper", "c.raw"))

	sources, _, err := Dir(root, true)
	if err != nil {
		t.Fatal(err)
	}

	if len(sources) != 3 {
		t.Fatalf("got %d sources, want 3", len(sources))
	}

	rels := make(map[string]string)
	for _, src := range sources {
		rels[filepath.Base(src.Path)] = src.RelDir
	}

	if rels["a.raw"] != "" {
		t.Errorf("a.raw RelDir = %q, want empty", rels["a.raw"])
	}
	if rels["b.raw"] != "sub" {
		t.Errorf("b.raw RelDir = %q, want %q", rels["b.raw"], "sub")
	}
	if rels["c.raw"] != filepath.Join("sub", "deeper") {
		t.Errorf("c.raw RelDir = %q, want %q", rels["c.raw"], filepath.Join("sub", "deeper"))
	}
}

func TestDir_StableOrdering(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"z.arw", "a.arw", "m.arw"} {
		touch(t, filepath.Join(root, name))
	}

	first, _, err := Dir(root, false)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := Dir(root, false)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("enumeration order is not stable across runs")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Path > first[i].Path {
			t.Error("sources are not sorted by path")
		}
	}
}

func TestDir_MissingRoot(t *testing.T) {
	if _, _, err := Dir(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Error("Dir on a missing root should fail")
	}
}

func TestDir_RootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.arw")
	touch(t, file)

	if _, _, err := Dir(file, false); err == nil {
		t.Error("Dir on a non-directory root should fail")
	}
}
