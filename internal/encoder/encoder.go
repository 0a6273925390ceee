// Package encoder converts script lines into a line/pointer container.
package encoder

import (
	"context"
	"fmt"
	"runtime"
	"unicode/utf8"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/container"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/escape"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// DefaultBase is the load address of the script blob in the game ROM.
const DefaultBase = 0x08FC1590

// Options configures the encoder.
type Options struct {
	Base uint32 // load address the line offsets are rebased by
	// Strict fails the run when any line contains an unmappable glyph.
	// Otherwise the line is kept truncated before the glyph.
	Strict  bool
	Workers int // parallel line transforms, 0 uses the CPU count
}

// NewOptions returns the default encoder options.
func NewOptions() Options {
	return Options{
		Base:   DefaultBase,
		Strict: true,
	}
}

// Encoder converts lines to glyph codes.
type Encoder struct {
	logger  *log.Logger
	table   *glyph.Table
	escapes *escape.Set
	opts    Options
}

// New returns a new encoder.
func New(logger *log.Logger, table *glyph.Table, escapes *escape.Set, opts Options) *Encoder {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Encoder{
		logger:  logger,
		table:   table,
		escapes: escapes,
		opts:    opts,
	}
}

// Line is the result of encoding a single line.
type Line struct {
	Index       int
	Units       []byte // encoded units without terminator
	Diagnostics []report.Diagnostic
	Failed      bool // an unmappable glyph stopped the line
}

// EncodeLine converts the text of a line to glyph code units. Encoding stops
// at the first unmappable glyph, the units before it are returned.
func (e *Encoder) EncodeLine(line script.SourceLine) Line {
	text := line.Text
	result := Line{
		Index: line.Index,
		Units: make([]byte, 0, 2*len(text)),
	}
	cursor := glyph.NewCursor()

	for i := 0; i < len(text); {
		if text[i] == escape.Prefix {
			if res, ok := e.escapes.Match([]byte(text), i); ok {
				result.Units = appendCode(result.Units, res.Code)
				if res.Warning != 0 {
					result.Diagnostics = append(result.Diagnostics, report.Diagnostic{
						Line:    line.Index,
						Kind:    res.Warning,
						Offset:  i,
						Message: fmt.Sprintf("escape '%s'", text[i:i+res.Consumed]),
					})
				}
				i += res.Consumed
				continue
			}
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		var code glyph.Code
		var err error
		if r == utf8.RuneError && size == 1 {
			err = fmt.Errorf("%w: invalid UTF-8 byte 0x%02X", glyph.ErrUnmappableGlyph, text[i])
		} else {
			code, err = e.table.Encode(r)
		}
		if err != nil {
			result.Failed = true
			result.Diagnostics = append(result.Diagnostics, report.Diagnostic{
				Line:    line.Index,
				Kind:    report.UnmappableGlyph,
				Offset:  i,
				Char:    r,
				Message: err.Error(),
			})
			return result
		}

		var next byte
		if i+size < len(text) {
			next = text[i+size]
		}
		code = cursor.Apply(r, code, next)
		result.Units = appendCode(result.Units, code)
		i += size
	}
	return result
}

// Encode converts all lines and assembles the container. Lines are
// transformed in parallel and placed in the blob in order. The declared
// count sets the pointer table size, lines that are not passed keep a zero
// pointer.
func (e *Encoder) Encode(ctx context.Context, lines []script.SourceLine, declared int) (*container.Container, *report.Report, error) {
	results := make([]Line, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("encoding line %d: %w", line.Index, err)
			}
			results[i] = e.EncodeLine(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	rep := &report.Report{}
	builder := container.NewBuilder(e.opts.Base, declared)
	var failures []report.Diagnostic

	for _, res := range results {
		for _, d := range res.Diagnostics {
			rep.Add(d)
		}
		if res.Failed {
			failures = append(failures, res.Diagnostics[len(res.Diagnostics)-1])
			if e.opts.Strict {
				continue
			}
		}

		encoded, err := builder.Append(res.Index, res.Units)
		if err != nil {
			return nil, rep, fmt.Errorf("placing line %d: %w", res.Index, err)
		}
		e.logger.Debug("Encoded line",
			log.Int("line", encoded.Index),
			log.Hex("offset", encoded.Offset),
			log.Int("length", encoded.Length))
	}

	if len(failures) > 0 && e.opts.Strict {
		return nil, rep, &report.Error{Failures: failures}
	}

	c := builder.Build()
	for _, index := range c.Missing() {
		rep.Add(report.Diagnostic{
			Line:    index,
			Kind:    report.MissingLine,
			Message: "no record found, pointer left zero",
		})
	}
	return c, rep, nil
}

func appendCode(b []byte, code glyph.Code) []byte {
	return append(b, code.High(), code.Low())
}
