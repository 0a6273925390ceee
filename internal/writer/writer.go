// Package writer implements the output file formats of decoded scripts and
// glyph tables.
package writer

import (
	"fmt"
	"io"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/escape"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
)

// Script writes decoded lines in the given format.
func Script(w io.Writer, format string, lines []script.SourceLine, lang script.Language) error {
	switch format {
	case options.FormatText, "":
		if err := script.Write(w, lines); err != nil {
			return fmt.Errorf("writing text script: %w", err)
		}
	case options.FormatYAML:
		if err := script.WriteYAML(w, lines, lang); err != nil {
			return fmt.Errorf("writing YAML script: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format '%s'", format)
	}
	return nil
}

// Table writes the decode direction of a glyph table and the escape control
// codes as table file. A code that is both a glyph and a control code is
// written as control code, matching the decoder.
func Table(w io.Writer, table *glyph.Table, escapes *escape.Set) error {
	controls := escapes.Controls()
	tokens := make(map[glyph.Code]string, len(controls))
	for _, c := range controls {
		tokens[c.Code] = c.Token
	}

	var glyphs []glyph.Entry
	for _, e := range table.Entries() {
		if _, ok := tokens[e.Code]; !ok {
			glyphs = append(glyphs, e)
		}
	}

	for _, c := range controls {
		if err := glyph.WriteTBLControl(w, c.Code, c.Token); err != nil {
			return err
		}
	}
	if err := glyph.WriteTBL(w, glyphs); err != nil {
		return err
	}
	return nil
}
