// Package container implements the line/pointer container: a blob of
// encoded lines and a table of absolute pointers to each line.
package container

import (
	"encoding/binary"
	"fmt"
)

const (
	// Alignment is the byte alignment of every line end relative to the blob start.
	Alignment = 4
	// PointerSize is the size of a pointer table entry.
	PointerSize = 4
	// TerminatorSize is the size of the zero unit ending every line.
	TerminatorSize = 2
)

// EncodedLine describes the location of a line inside the blob.
type EncodedLine struct {
	Index  int // 1-based ordinal
	Offset int // blob relative start offset
	Length int // encoded length including terminator and padding
}

// Container holds the pointer table and blob of an encoded script.
type Container struct {
	Base     uint32   // load address of the blob
	Pointers []uint32 // absolute line addresses, 0 for missing lines
	Blob     []byte
	Lines    []EncodedLine
}

// Padding returns the number of zero bytes needed after length blob bytes so
// that the next line starts aligned relative to the blob start.
func Padding(length int) int {
	rem := length % Alignment
	if rem == 0 {
		return 0
	}
	return Alignment - rem
}

// PointerTableBytes returns the pointer table as little endian words.
func (c *Container) PointerTableBytes() []byte {
	b := make([]byte, len(c.Pointers)*PointerSize)
	for i, ptr := range c.Pointers {
		binary.LittleEndian.PutUint32(b[i*PointerSize:], ptr)
	}
	return b
}

// Builder assembles a container in line order. It is the sequential fold of
// the encoding: every line offset depends on the padded length of all
// previous lines.
type Builder struct {
	base     uint32
	declared int
	blob     []byte
	lines    []EncodedLine
	offsets  map[int]int
}

// NewBuilder returns a builder for a container with the given load base and
// declared line count.
func NewBuilder(base uint32, declared int) *Builder {
	return &Builder{
		base:     base,
		declared: declared,
		offsets:  make(map[int]int, declared),
	}
}

// Append adds the encoded units of a line. A zero terminator unit and the
// alignment padding are added after the units.
func (b *Builder) Append(index int, units []byte) (EncodedLine, error) {
	if index < 1 || index > b.declared {
		return EncodedLine{}, fmt.Errorf("line index %d outside of declared range 1-%d", index, b.declared)
	}
	if _, ok := b.offsets[index]; ok {
		return EncodedLine{}, fmt.Errorf("line %d appended twice", index)
	}
	if len(units)%2 != 0 {
		return EncodedLine{}, fmt.Errorf("line %d has an odd unit length %d", index, len(units))
	}

	offset := len(b.blob)
	b.blob = append(b.blob, units...)
	b.blob = append(b.blob, make([]byte, TerminatorSize)...)
	pad := Padding(len(b.blob))
	for range pad {
		b.blob = append(b.blob, 0)
	}

	line := EncodedLine{
		Index:  index,
		Offset: offset,
		Length: len(b.blob) - offset,
	}
	b.lines = append(b.lines, line)
	b.offsets[index] = offset
	return line, nil
}

// Build rebases all line offsets by the base address and returns the
// container. The pointer table has one entry per declared line, lines that
// were never appended get a zero pointer.
func (b *Builder) Build() *Container {
	pointers := make([]uint32, b.declared)
	for index, offset := range b.offsets {
		pointers[index-1] = b.base + uint32(offset)
	}

	return &Container{
		Base:     b.base,
		Pointers: pointers,
		Blob:     b.blob,
		Lines:    b.lines,
	}
}

// Missing returns the ordinals of declared lines that were never appended.
func (c *Container) Missing() []int {
	present := make([]bool, len(c.Pointers))
	for _, line := range c.Lines {
		if line.Index >= 1 && line.Index <= len(present) {
			present[line.Index-1] = true
		}
	}

	var missing []int
	for i, ok := range present {
		if !ok {
			missing = append(missing, i+1)
		}
	}
	return missing
}
