// Package decoder converts a line/pointer container back into script lines.
package decoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/escape"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
	"github.com/retroenv/retrogolib/log"
)

// Placeholder is written for codes without a character.
const Placeholder = utf8.RuneError

// Options configures the decoder.
type Options struct {
	// Mask is applied to every pointer to get the offset inside the source,
	// it strips the bus address of the ROM.
	Mask     uint32
	MaxUnits int // maximum units read per line
}

// NewOptions returns the default decoder options.
func NewOptions() Options {
	return Options{
		Mask:     0x00FFFFFF,
		MaxUnits: 2048,
	}
}

// Decoder converts glyph codes to text.
type Decoder struct {
	logger  *log.Logger
	table   *glyph.Table
	escapes *escape.Set
	opts    Options
}

// New returns a new decoder.
func New(logger *log.Logger, table *glyph.Table, escapes *escape.Set, opts Options) *Decoder {
	return &Decoder{
		logger:  logger,
		table:   table,
		escapes: escapes,
		opts:    opts,
	}
}

// Decode reads one line per pointer from src. Problems are reported per line
// and never stop the decoding of other lines.
func (d *Decoder) Decode(src io.ReaderAt, pointers []uint32, lang script.Language) ([]script.SourceLine, *report.Report) {
	rep := &report.Report{}
	lines := make([]script.SourceLine, 0, len(pointers))

	for i, ptr := range pointers {
		index := i + 1
		line := script.SourceLine{
			Index:    index,
			Language: lang,
		}

		if ptr == 0 {
			rep.Add(report.Diagnostic{
				Line:    index,
				Kind:    report.MissingLine,
				Message: "zero pointer",
			})
			lines = append(lines, line)
			continue
		}

		offset := d.Offset(ptr)
		text, diagnostics := d.DecodeLine(src, offset, index)
		for _, diag := range diagnostics {
			rep.Add(diag)
		}
		line.Text = text
		lines = append(lines, line)

		d.logger.Debug("Decoded line",
			log.Int("line", index),
			log.Hex("offset", offset))
	}
	return lines, rep
}

// Offset converts a pointer to an offset inside the source.
func (d *Decoder) Offset(ptr uint32) int64 {
	return int64(ptr & d.opts.Mask)
}

// DecodeLine reads units starting at offset until the zero terminator.
// Control codes of escape commands are written as commands, codes without a
// character as placeholder.
func (d *Decoder) DecodeLine(src io.ReaderAt, offset int64, index int) (string, []report.Diagnostic) {
	maxUnits := d.opts.MaxUnits
	if maxUnits <= 0 {
		maxUnits = NewOptions().MaxUnits
	}

	reader := bufio.NewReader(io.NewSectionReader(src, offset, int64(maxUnits)*2))
	var sb strings.Builder
	var diagnostics []report.Diagnostic
	var unit [2]byte

	for i := range maxUnits {
		if _, err := io.ReadFull(reader, unit[:]); err != nil {
			msg := fmt.Sprintf("no terminator found after %d units", i)
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				msg = fmt.Sprintf("reading unit %d: %s", i, err)
			}
			diagnostics = append(diagnostics, report.Diagnostic{
				Line:    index,
				Kind:    report.UnterminatedLine,
				Offset:  i,
				Message: msg,
			})
			return sb.String(), diagnostics
		}

		code := glyph.CodeFromBytes(unit[0], unit[1])
		if code == 0 {
			return sb.String(), diagnostics
		}

		if token, ok := d.escapes.Token(code); ok {
			sb.WriteRune(escape.Prefix)
			sb.WriteString(token)
			continue
		}

		r, err := d.table.Decode(code)
		if err != nil {
			diagnostics = append(diagnostics, report.Diagnostic{
				Line:   index,
				Kind:   report.UnmappableCode,
				Offset: i,
				Code:   uint16(code),
			})
			r = Placeholder
		}
		sb.WriteRune(r)
	}

	diagnostics = append(diagnostics, report.Diagnostic{
		Line:    index,
		Kind:    report.LineOverflow,
		Offset:  maxUnits,
		Message: fmt.Sprintf("line truncated after %d units", maxUnits),
	})
	return sb.String(), diagnostics
}
