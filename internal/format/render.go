package format

import (
	"regexp"
	"strings"

	"github.com/handiism/rawimport/internal/metadata"
)

// Render produces the output filename (without extension) for one
// metadata record.
//
// Literal text passes through verbatim, so a template may contain path
// separators to spread output across subdirectories. Field and date
// expansions are sanitized so that no metadata value can escape its
// path segment or produce a name invalid on common filesystems.
//
// Missing metadata degrades gracefully: an absent field renders as an
// empty string, and date directives render empty when the record has
// no capture timestamp. Rendering is deterministic; identical
// (template, record) pairs always produce identical names.
func (t *Template) Render(rec *metadata.Record) string {
	var name strings.Builder

	for _, tok := range t.tokens {
		switch tok.kind {
		case tokenLiteral:
			name.WriteString(tok.text)
		case tokenField:
			name.WriteString(sanitizeSegment(schema[tok.field](rec)))
		case tokenDate:
			if rec.HasTimestamp() {
				name.WriteString(sanitizeSegment(rec.Timestamp.Format(tok.layout)))
			}
		}
	}

	return name.String()
}

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots = regexp.MustCompile(`\.+$`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// sanitizeSegment replaces characters that are invalid in file names
// with underscores, strips trailing dots, and collapses whitespace.
func sanitizeSegment(s string) string {
	s = invalidChars.ReplaceAllString(s, "_")
	s = trailingDots.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimRight(s, " ")
}
