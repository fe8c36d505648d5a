package metadata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFormatExposure(t *testing.T) {
	tests := []struct {
		num, den int64
		want     string
	}{
		{1, 250, "1/250"},
		{1, 4000, "1/4000"},
		{10, 2500, "1/250"},
		{2, 3, "1/1.5"},
		{3, 4, "1/1.3"},
		{2, 6, "1/3"},
		{1, 1, "1"},
		{5, 2, "2.5"},
		{30, 1, "30"},
		{0, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatExposure(tt.num, tt.den); got != tt.want {
				t.Errorf("formatExposure(%d, %d) = %q, want %q", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestTrimFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.8, "2.8"},
		{4.0, "4"},
		{1.4, "1.4"},
		{35.0, "35"},
	}

	for _, tt := range tests {
		if got := trimFloat(tt.in, 1); got != tt.want {
			t.Errorf("trimFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignedFloat(t *testing.T) {
	if got := signedFloat(0.7); got != "+0.7" {
		t.Errorf("signedFloat(0.7) = %q, want %q", got, "+0.7")
	}
	if got := signedFloat(-1.3); got != "-1.3" {
		t.Errorf("signedFloat(-1.3) = %q, want %q", got, "-1.3")
	}
}

func TestFlashState(t *testing.T) {
	// Bit 0 of the EXIF Flash bitmask records firing; higher bits
	// carry mode and return-light detail.
	if got := flashState(0x19); got != "on" {
		t.Errorf("flashState(0x19) = %q, want %q", got, "on")
	}
	if got := flashState(0x10); got != "off" {
		t.Errorf("flashState(0x10) = %q, want %q", got, "off")
	}
	if got := flashState(0); got != "off" {
		t.Errorf("flashState(0) = %q, want %q", got, "off")
	}
}

func TestColorSpaceName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{1, "sRGB"},
		{2, "AdobeRGB"},
		{65535, "uncalibrated"},
		{0, ""},
		{7, ""},
	}

	for _, tt := range tests {
		if got := colorSpaceName(tt.code); got != tt.want {
			t.Errorf("colorSpaceName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestExifExtractor_UnreadableSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.arw")
	if err := os.WriteFile(path, []byte("not a raw file"), 0644); err != nil {
		t.Fatal(err)
	}

	ext := NewExifExtractor()
	_, err := ext.Extract(context.Background(), path)
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("Extract on garbage = %v, want ErrUnreadable", err)
	}
}

func TestExifExtractor_MissingFile(t *testing.T) {
	ext := NewExifExtractor()
	_, err := ext.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.nef"))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("Extract on missing file = %v, want ErrUnreadable", err)
	}
}

func TestExtractorFunc(t *testing.T) {
	want := &Record{CameraModel: "X100V", Timestamp: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}
	fn := ExtractorFunc(func(ctx context.Context, path string) (*Record, error) {
		return want, nil
	})

	got, err := fn.Extract(context.Background(), "whatever.raf")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("ExtractorFunc should pass through the record")
	}
	if !got.HasTimestamp() {
		t.Error("HasTimestamp() should be true for a set timestamp")
	}
	if got.HasPreview() {
		t.Error("HasPreview() should be false without preview bytes")
	}
}
