package format

import (
	"errors"
	"testing"
	"time"

	"github.com/handiism/rawimport/internal/metadata"
)

func testRecord() *metadata.Record {
	return &metadata.Record{
		CameraMake:   "FUJIFILM",
		CameraModel:  "X100",
		ShutterSpeed: "1/250",
		ISO:          800,
		LensMake:     "FUJIFILM",
		LensModel:    "XF23mmF2",
		FocalLength:  "23mm",
		FStop:        "2",
		OriginalName: "IMG_001",
		Timestamp:    time.Date(2024, 3, 5, 14, 30, 9, 0, time.UTC),
	}
}

func TestCompile_ValidTemplates(t *testing.T) {
	valid := []string{
		"%Y-%m-%d_{camera.make}",
		"{camera.model}/{image.original_filename}",
		"{lens.fstop}_{camera.iso}",
		"{camera.flash}_{lens.focus_distance}",
		"{image.bit_depth}bit_{image.color_space}",
		"plain literal",
		"%H%M%S",
	}

	for _, format := range valid {
		t.Run(format, func(t *testing.T) {
			if _, err := Compile(format); err != nil {
				t.Errorf("Compile(%q) failed: %v", format, err)
			}
		})
	}
}

func TestCompile_UnknownField(t *testing.T) {
	_, err := Compile("{camera.megapixels}")

	var unknownErr *UnknownFieldError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Compile = %v, want UnknownFieldError", err)
	}
	if unknownErr.Name != "camera.megapixels" {
		t.Errorf("UnknownFieldError.Name = %q, want %q", unknownErr.Name, "camera.megapixels")
	}
}

func TestCompile_UnterminatedField(t *testing.T) {
	_, err := Compile("%Y_{camera.make")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Compile = %v, want ParseError", err)
	}
	if parseErr.Pos != 3 {
		t.Errorf("ParseError.Pos = %d, want 3", parseErr.Pos)
	}
}

func TestCompile_InvalidDateDirective(t *testing.T) {
	_, err := Compile("%Q_{camera.make}")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Compile = %v, want ParseError", err)
	}
	if parseErr.Seq != "%Q" {
		t.Errorf("ParseError.Seq = %q, want %q", parseErr.Seq, "%Q")
	}
}

func TestCompile_DanglingPercent(t *testing.T) {
	var parseErr *ParseError
	if _, err := Compile("name%"); !errors.As(err, &parseErr) {
		t.Errorf("Compile(\"name%%\") = %v, want ParseError", err)
	}
}

func TestCompile_EmptyTemplate(t *testing.T) {
	if _, err := Compile(""); !errors.Is(err, ErrEmptyTemplate) {
		t.Errorf("Compile(\"\") = %v, want ErrEmptyTemplate", err)
	}
}

func TestCompile_AppendsOriginalFilename(t *testing.T) {
	tmpl, err := Compile("%Y")
	if err != nil {
		t.Fatal(err)
	}

	got := tmpl.Render(testRecord())
	if got != "2024IMG_001" {
		t.Errorf("Render = %q, want %q", got, "2024IMG_001")
	}
}

func TestCompile_EscapedBrace(t *testing.T) {
	tmpl, err := Compile("{{%Y{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	got := tmpl.Render(testRecord())
	if got != "{2024IMG_001" {
		t.Errorf("Render = %q, want %q", got, "{2024IMG_001")
	}
}

func TestCompile_EscapedPercent(t *testing.T) {
	tmpl, err := Compile("100%%_{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	got := tmpl.Render(testRecord())
	if got != "100%_IMG_001" {
		t.Errorf("Render = %q, want %q", got, "100%_IMG_001")
	}
}

func TestRender_Example(t *testing.T) {
	tmpl, err := Compile("%Y-%m-%d_{camera.model}_{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	got := tmpl.Render(testRecord())
	if got != "2024-03-05_X100_IMG_001" {
		t.Errorf("Render = %q, want %q", got, "2024-03-05_X100_IMG_001")
	}
}

func TestRender_ExtendedSchemaFields(t *testing.T) {
	tmpl, err := Compile("{camera.flash}_{lens.focus_distance}_{image.bit_depth}_{image.color_space}_{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	rec := &metadata.Record{
		Flash:         "off",
		FocusDistance: "1.2m",
		BitDepth:      14,
		ColorSpace:    "sRGB",
		OriginalName:  "IMG_004",
	}
	if got := tmpl.Render(rec); got != "off_1.2m_14_sRGB_IMG_004" {
		t.Errorf("Render = %q, want %q", got, "off_1.2m_14_sRGB_IMG_004")
	}
}

func TestRender_Deterministic(t *testing.T) {
	tmpl, err := Compile("%Y%m%d-%H%M%S_{camera.make}_{camera.shutter_speed}")
	if err != nil {
		t.Fatal(err)
	}

	rec := testRecord()
	first := tmpl.Render(rec)
	for i := 0; i < 10; i++ {
		if got := tmpl.Render(rec); got != first {
			t.Fatalf("Render is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRender_MissingFieldsRenderEmpty(t *testing.T) {
	tmpl, err := Compile("{lens.model}_{camera.iso}_{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	rec := &metadata.Record{OriginalName: "IMG_002"}
	if got := tmpl.Render(rec); got != "__IMG_002" {
		t.Errorf("Render = %q, want %q", got, "__IMG_002")
	}
}

func TestRender_NoTimestampRendersEmptyDates(t *testing.T) {
	tmpl, err := Compile("%Y-%m-%d_{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	rec := &metadata.Record{OriginalName: "IMG_003"}
	if got := tmpl.Render(rec); got != "--_IMG_003" {
		t.Errorf("Render = %q, want %q", got, "--_IMG_003")
	}
}

func TestRender_SanitizesFieldValues(t *testing.T) {
	tmpl, err := Compile("{camera.shutter_speed}_{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	rec := &metadata.Record{ShutterSpeed: "1/250", OriginalName: "a:b"}
	if got := tmpl.Render(rec); got != "1_250_a_b" {
		t.Errorf("Render = %q, want %q", got, "1_250_a_b")
	}
}

func TestRender_LiteralSeparatorsSurvive(t *testing.T) {
	tmpl, err := Compile("{camera.model}/{image.original_filename}")
	if err != nil {
		t.Fatal(err)
	}

	rec := testRecord()
	if got := tmpl.Render(rec); got != "X100/IMG_001" {
		t.Errorf("Render = %q, want %q", got, "X100/IMG_001")
	}
}

func TestRender_DistinctForDistinctOriginals(t *testing.T) {
	// A template with no explicit filename field still distinguishes
	// two records that differ only in original filename.
	tmpl, err := Compile("%Y-%m-%d")
	if err != nil {
		t.Fatal(err)
	}

	a := testRecord()
	b := testRecord()
	b.OriginalName = "IMG_002"

	if tmpl.Render(a) == tmpl.Render(b) {
		t.Error("records differing only in original filename rendered identically")
	}
}

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-name", "normal-name"},
		{"with:colon", "with_colon"},
		{"a/b\\c", "a_b_c"},
		{"pipe|star*quest?", "pipe_star_quest_"},
		{"trailing...", "trailing"},
		{"double   space", "double space"},
		{"trailing space ", "trailing space"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeSegment(tt.input); got != tt.want {
				t.Errorf("sanitizeSegment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
