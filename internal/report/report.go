// Package report collects line scoped diagnostics produced while extracting,
// encoding and decoding dialogue scripts.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Kind classifies a diagnostic.
type Kind int

// Diagnostic kinds.
const (
	UnmappableGlyph Kind = iota + 1
	UnmappableCode
	MalformedHeader
	LineOverflow
	UnrecognizedEscapeDirection
	LegacyEscape
	MissingLine
	UnterminatedLine
)

var kindNames = map[Kind]string{
	UnmappableGlyph:             "unmappable glyph",
	UnmappableCode:              "unmappable code",
	MalformedHeader:             "malformed header",
	LineOverflow:                "line overflow",
	UnrecognizedEscapeDirection: "unrecognized escape direction",
	LegacyEscape:                "legacy escape",
	MissingLine:                 "missing line",
	UnterminatedLine:            "unterminated line",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Diagnostic describes a single problem found in a line.
type Diagnostic struct {
	Line    int    // 1-based line ordinal, 0 for file level problems
	Kind    Kind   // classification
	Offset  int    // byte offset inside the raw line text or unit offset when decoding
	Char    rune   // offending source character, if any
	Code    uint16 // offending glyph code, if any
	Message string // optional detail
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", d.Line)
	}
	sb.WriteString(d.Kind.String())

	switch d.Kind {
	case UnmappableGlyph:
		fmt.Fprintf(&sb, " %q (U+%04X) at byte %d", d.Char, d.Char, d.Offset)
	case UnmappableCode:
		fmt.Fprintf(&sb, " 0x%04X at unit %d", d.Code, d.Offset)
	}

	if d.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Message)
	}
	return sb.String()
}

// Report is an ordered collection of diagnostics.
// The zero value is ready to use.
type Report struct {
	Diagnostics []Diagnostic
}

// Add appends a diagnostic.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Merge appends all diagnostics of other, nil reports are ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Len returns the number of diagnostics.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Diagnostics)
}

// Filter returns all diagnostics of the given kind.
func (r *Report) Filter(kind Kind) []Diagnostic {
	if r == nil {
		return nil
	}
	var result []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			result = append(result, d)
		}
	}
	return result
}

// Sort orders the diagnostics by line ordinal, keeping insertion order for
// diagnostics of the same line.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		return r.Diagnostics[i].Line < r.Diagnostics[j].Line
	})
}

// Log writes every diagnostic as a warning.
func (r *Report) Log(logger *log.Logger) {
	if r == nil {
		return
	}
	for _, d := range r.Diagnostics {
		logger.Warn("Script diagnostic",
			log.Int("line", d.Line),
			log.String("kind", d.Kind.String()),
			log.String("detail", d.String()))
	}
}

// Error is returned when one or more lines failed to encode.
type Error struct {
	Failures []Diagnostic
}

func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, d := range e.Failures {
		lines = append(lines, d.String())
	}
	return fmt.Sprintf("%d line(s) failed to encode:\n%s", len(e.Failures), strings.Join(lines, "\n"))
}
