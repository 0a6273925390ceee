// Package verification verifies that an encoded container recreates the input script.
package verification

import (
	"context"
	"fmt"
	"io"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/container"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/decoder"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/encoder"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
	"github.com/retroenv/retrogolib/log"
)

// maxLoggedDiffs limits the logged mismatches per line.
const maxLoggedDiffs = 10

// VerifyOutput decodes the container and encodes the decoded lines again.
// Aliases and other spellings of the same glyph decode to one canonical
// form, so the comparison is done on the encoded units and not on the text.
func VerifyOutput(ctx context.Context, logger *log.Logger, enc *encoder.Encoder, dec *decoder.Decoder,
	c *container.Container, lang script.Language) error {

	src := &blobReader{
		blob:  c.Blob,
		start: dec.Offset(c.Base),
	}

	decoded, rep := dec.Decode(src, c.Pointers, lang)
	if codes := rep.Filter(report.UnmappableCode); len(codes) > 0 {
		return fmt.Errorf("%d code(s) can not be decoded, first in line %d", len(codes), codes[0].Line)
	}
	if unterminated := rep.Filter(report.UnterminatedLine); len(unterminated) > 0 {
		return fmt.Errorf("%d line(s) are not terminated, first is line %d", len(unterminated), unterminated[0].Line)
	}

	lines := make([]script.SourceLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, decoded[l.Index-1])
	}

	reencoded, _, err := enc.Encode(ctx, lines, len(c.Pointers))
	if err != nil {
		return fmt.Errorf("encoding decoded lines: %w", err)
	}

	if err := compareContainers(logger, c, reencoded); err != nil {
		return err
	}
	return nil
}

func compareContainers(logger *log.Logger, expected, got *container.Container) error {
	if len(expected.Pointers) != len(got.Pointers) {
		return fmt.Errorf("mismatched pointer counts, %d != %d", len(expected.Pointers), len(got.Pointers))
	}

	gotLines := make(map[int]container.EncodedLine, len(got.Lines))
	for _, l := range got.Lines {
		gotLines[l.Index] = l
	}

	var mismatches int
	for _, l := range expected.Lines {
		other, ok := gotLines[l.Index]
		if !ok {
			mismatches++
			logger.Error("Line missing after decoding", log.Int("line", l.Index))
			continue
		}

		input := expected.Blob[l.Offset : l.Offset+l.Length]
		output := got.Blob[other.Offset : other.Offset+other.Length]
		if err := checkBufferEqual(logger, input, output); err != nil {
			mismatches++
			logger.Error("Line mismatch", log.Int("line", l.Index), log.Err(err))
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d line mismatches", mismatches)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < maxLoggedDiffs {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}

// blobReader reads a blob as if it was loaded at start.
type blobReader struct {
	blob  []byte
	start int64
}

func (r *blobReader) ReadAt(p []byte, off int64) (int, error) {
	off -= r.start
	if off < 0 || off >= int64(len(r.blob)) {
		return 0, io.EOF
	}
	n := copy(p, r.blob[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
