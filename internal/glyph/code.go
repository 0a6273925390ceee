// Package glyph implements the bidirectional mapping between source characters
// and the 2-byte glyph codes used by the game font.
package glyph

import "fmt"

// Code is a glyph code. It is stored in the script blob high byte first.
type Code uint16

// CodeFromBytes builds a code from its high and low byte.
func CodeFromBytes(high, low byte) Code {
	return Code(uint16(high)<<8 | uint16(low))
}

// High returns the first byte of the code as written to the blob.
func (c Code) High() byte {
	return byte(c >> 8)
}

// Low returns the second byte of the code as written to the blob.
func (c Code) Low() byte {
	return byte(c)
}

// Bytes returns the code in blob byte order.
func (c Code) Bytes() [2]byte {
	return [2]byte{c.High(), c.Low()}
}

func (c Code) String() string {
	return fmt.Sprintf("0x%04X", uint16(c))
}
