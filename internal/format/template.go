package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/rawimport/internal/metadata"
)

// ErrEmptyTemplate is returned by Compile for a format string that
// produces no tokens at all.
var ErrEmptyTemplate = errors.New("empty filename template")

// UnknownFieldError is returned by Compile when a {category.field}
// expansion names a key outside the metadata schema.
type UnknownFieldError struct {
	Name string
	Pos  int
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown metadata field %q at position %d", e.Name, e.Pos)
}

// ParseError is returned by Compile for malformed template syntax:
// an unterminated {field} expansion or an unrecognized date directive.
type ParseError struct {
	Msg string
	Seq string
	Pos int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q at position %d", e.Msg, e.Seq, e.Pos)
}

// fieldKey identifies one entry of the metadata schema.
type fieldKey string

const (
	fieldCameraMake    fieldKey = "camera.make"
	fieldCameraModel   fieldKey = "camera.model"
	fieldShutterSpeed  fieldKey = "camera.shutter_speed"
	fieldISO           fieldKey = "camera.iso"
	fieldExposureComp  fieldKey = "camera.exposure_compensation"
	fieldCameraFlash   fieldKey = "camera.flash"
	fieldLensMake      fieldKey = "lens.make"
	fieldLensModel     fieldKey = "lens.model"
	fieldFocalLength   fieldKey = "lens.focal_length"
	fieldFStop         fieldKey = "lens.fstop"
	fieldFocusDistance fieldKey = "lens.focus_distance"
	fieldImageWidth    fieldKey = "image.width"
	fieldImageHeight   fieldKey = "image.height"
	fieldBitDepth      fieldKey = "image.bit_depth"
	fieldColorSpace    fieldKey = "image.color_space"
	fieldOriginalName  fieldKey = "image.original_filename"
)

// schema maps each field key to its accessor on a metadata Record.
var schema = map[fieldKey]func(*metadata.Record) string{
	fieldCameraMake:   func(r *metadata.Record) string { return r.CameraMake },
	fieldCameraModel:  func(r *metadata.Record) string { return r.CameraModel },
	fieldShutterSpeed: func(r *metadata.Record) string { return r.ShutterSpeed },
	fieldISO: func(r *metadata.Record) string {
		if r.ISO == 0 {
			return ""
		}
		return fmt.Sprintf("%d", r.ISO)
	},
	fieldExposureComp:  func(r *metadata.Record) string { return r.ExposureComp },
	fieldCameraFlash:   func(r *metadata.Record) string { return r.Flash },
	fieldLensMake:      func(r *metadata.Record) string { return r.LensMake },
	fieldLensModel:     func(r *metadata.Record) string { return r.LensModel },
	fieldFocalLength:   func(r *metadata.Record) string { return r.FocalLength },
	fieldFStop:         func(r *metadata.Record) string { return r.FStop },
	fieldFocusDistance: func(r *metadata.Record) string { return r.FocusDistance },
	fieldImageWidth: func(r *metadata.Record) string {
		if r.Width == 0 {
			return ""
		}
		return fmt.Sprintf("%d", r.Width)
	},
	fieldImageHeight: func(r *metadata.Record) string {
		if r.Height == 0 {
			return ""
		}
		return fmt.Sprintf("%d", r.Height)
	},
	fieldBitDepth: func(r *metadata.Record) string {
		if r.BitDepth == 0 {
			return ""
		}
		return fmt.Sprintf("%d", r.BitDepth)
	},
	fieldColorSpace:   func(r *metadata.Record) string { return r.ColorSpace },
	fieldOriginalName: func(r *metadata.Record) string { return r.OriginalName },
}

// dateLayouts maps strftime-style directives to Go time layouts.
var dateLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'M': "04",
	'S': "05",
	'j': "002",
}

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenField
	tokenDate
)

// token is one atom of a compiled template: a literal run, a metadata
// field expansion, or a date directive (stored as a Go time layout).
type token struct {
	kind   tokenKind
	text   string
	field  fieldKey
	layout string
}

// Template is a compiled filename format string. Templates are
// immutable and safe for concurrent use by any number of workers.
type Template struct {
	source string
	tokens []token
}

// Source returns the format string the template was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Compile parses a filename format string into a Template.
//
// The syntax is:
//
//   - {category.field}  metadata expansion, validated against the schema
//   - %Y %y %m %d %e %H %M %S %j  capture-time directives
//   - {{  a literal "{"
//   - %%  a literal "%"
//   - anything else is literal text
//
// If the format never references {image.original_filename}, Compile
// appends that field so that two inputs differing only in source
// filename can never render to the same output path.
func Compile(format string) (*Template, error) {
	var tokens []token
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(format); {
		switch format[i] {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, &ParseError{Msg: "unterminated field expansion", Seq: format[i:], Pos: i}
			}
			name := format[i+1 : i+end]
			key := fieldKey(name)
			if _, ok := schema[key]; !ok {
				return nil, &UnknownFieldError{Name: name, Pos: i}
			}
			flushLiteral()
			tokens = append(tokens, token{kind: tokenField, field: key})
			i += end + 1

		case '%':
			if i+1 >= len(format) {
				return nil, &ParseError{Msg: "dangling date directive", Seq: format[i:], Pos: i}
			}
			if format[i+1] == '%' {
				literal.WriteByte('%')
				i += 2
				continue
			}
			layout, ok := dateLayouts[format[i+1]]
			if !ok {
				return nil, &ParseError{Msg: "invalid date directive", Seq: format[i : i+2], Pos: i}
			}
			flushLiteral()
			tokens = append(tokens, token{kind: tokenDate, layout: layout})
			i += 2

		default:
			literal.WriteByte(format[i])
			i++
		}
	}
	flushLiteral()

	if len(tokens) == 0 {
		return nil, ErrEmptyTemplate
	}

	if !hasField(tokens, fieldOriginalName) {
		tokens = append(tokens, token{kind: tokenField, field: fieldOriginalName})
	}

	return &Template{source: format, tokens: tokens}, nil
}

func hasField(tokens []token, key fieldKey) bool {
	for _, tok := range tokens {
		if tok.kind == tokenField && tok.field == key {
			return true
		}
	}
	return false
}
