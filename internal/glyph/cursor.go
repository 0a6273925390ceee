package glyph

// Cursor holds the line local state of the context sensitive glyphs.
// A new cursor, or a reset one, must be used for every line.
type Cursor struct {
	quoteOpen bool
}

// NewCursor returns a cursor positioned at the start of a line.
func NewCursor() *Cursor {
	return &Cursor{}
}

// Reset prepares the cursor for a new line.
func (c *Cursor) Reset() {
	c.quoteOpen = false
}

// Apply adjusts the base code of a character. next is the raw source byte
// following the character, or 0 at the end of the line.
//
// A straight double quote alternates between the opening and closing glyph,
// starting with the opening one. Curly quotes keep their glyph and set the
// parity, so a following straight quote pairs with them. The accented i is switched to its glyph
// shifted by one pixel when followed by a letter.
func (c *Cursor) Apply(r rune, code Code, next byte) Code {
	switch {
	case r == '"' && code == QuoteClose:
		c.quoteOpen = !c.quoteOpen
		if c.quoteOpen {
			return QuoteOpen
		}
		return QuoteClose

	case r == '“':
		c.quoteOpen = true

	case r == '”':
		c.quoteOpen = false

	case r == 'í' && code == AccentI:
		if next > 0x40 && next < 0x7A {
			return AccentIShifted
		}
	}
	return code
}
