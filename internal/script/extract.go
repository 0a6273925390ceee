package script

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
)

// MaxLineBytes caps the raw text of a single line record.
const MaxLineBytes = 1024

// RecordTag returns the marker that starts a line record of the language.
func RecordTag(lang Language) string {
	return lang.Tag + ": "
}

// ExtractLines scans the script for line records of the given language and
// returns at most limit of them in file order. Records of other languages are
// ignored. Overlong lines are truncated and reported.
func ExtractLines(src []byte, lang Language, limit int) ([]SourceLine, *report.Report) {
	rep := &report.Report{}
	if limit <= 0 {
		return nil, rep
	}

	tag := []byte(RecordTag(lang))
	lines := make([]SourceLine, 0, limit)
	pos := 0

	for len(lines) < limit {
		idx := bytes.Index(src[pos:], tag)
		if idx < 0 {
			break
		}
		start := pos + idx + len(tag)
		end := recordEnd(src, start)
		index := len(lines) + 1

		text := src[start:end]
		if len(text) > MaxLineBytes {
			rep.Add(report.Diagnostic{
				Line:    index,
				Kind:    report.LineOverflow,
				Offset:  MaxLineBytes,
				Message: fmt.Sprintf("line has %d bytes, truncated to %d", len(text), MaxLineBytes),
			})
			text = truncateRunes(text, MaxLineBytes)
		}

		lines = append(lines, SourceLine{
			Index:    index,
			Language: lang,
			Text:     string(text),
		})
		pos = end
	}

	return lines, rep
}

// recordEnd returns the position of the first CR, LF or NUL after start, or
// the end of the input.
func recordEnd(src []byte, start int) int {
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '\r', '\n', 0:
			return i
		}
	}
	return len(src)
}

// truncateRunes cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	b = b[:n]
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if r, size := utf8.DecodeLastRune(b); r != utf8.RuneError || size != 1 {
			break
		}
		b = b[:len(b)-1]
	}
	return b
}
