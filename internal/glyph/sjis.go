package glyph

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// encodePassthrough maps a character through the Shift-JIS charset. The
// result is only accepted if it is a double byte code inside a passthrough
// range that the table does not already use for another character, otherwise
// decoding would not return the same character.
func (t *Table) encodePassthrough(r rune) (Code, bool) {
	if len(t.Passthrough) == 0 || r < utf8.RuneSelf {
		return 0, false
	}

	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(string(r)))
	if err != nil || len(b) != 2 {
		return 0, false
	}

	code := CodeFromBytes(b[0], b[1])
	if !t.InPassthrough(code) {
		return 0, false
	}
	if _, claimed := t.decodeOwn(code); claimed {
		return 0, false
	}
	return code, true
}

// decodePassthrough maps a code inside a passthrough range through the
// Shift-JIS charset.
func (t *Table) decodePassthrough(c Code) (rune, bool) {
	if !t.InPassthrough(c) {
		return 0, false
	}

	b := c.Bytes()
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b[:])
	if err != nil {
		return 0, false
	}

	r, size := utf8.DecodeRune(out)
	if r == utf8.RuneError || size != len(out) {
		return 0, false
	}
	return r, true
}
