package glyph

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnmappableGlyph is returned when a source character has no glyph code.
	ErrUnmappableGlyph = errors.New("unmappable glyph")
	// ErrUnmappableCode is returned when a glyph code has no character.
	ErrUnmappableCode = errors.New("unmappable code")
)

// UnmappableGlyphError carries the character that could not be encoded.
type UnmappableGlyphError struct {
	Char rune
}

func (e *UnmappableGlyphError) Error() string {
	return fmt.Sprintf("%s %q (U+%04X)", ErrUnmappableGlyph, e.Char, e.Char)
}

// Unwrap allows errors.Is checks against ErrUnmappableGlyph.
func (e *UnmappableGlyphError) Unwrap() error {
	return ErrUnmappableGlyph
}

// Bank maps the character range [First, Last] to codes starting at Base.
type Bank struct {
	Name  string
	First rune
	Last  rune
	Base  Code
}

// Contains returns whether the character is covered by the bank.
func (b Bank) Contains(r rune) bool {
	return r >= b.First && r <= b.Last
}

// Code returns the glyph code of a character covered by the bank.
func (b Bank) Code(r rune) Code {
	return b.Base + Code(r-b.First)
}

// CodeBank maps the code range [First, Last] to characters starting at Base.
type CodeBank struct {
	Name  string
	First Code
	Last  Code
	Base  rune
}

// Contains returns whether the code is covered by the bank.
func (b CodeBank) Contains(c Code) bool {
	return c >= b.First && c <= b.Last
}

// Rune returns the character of a code covered by the bank.
func (b CodeBank) Rune(c Code) rune {
	return b.Base + rune(c-b.First)
}

// Range is an inclusive range of glyph codes.
type Range struct {
	First Code
	Last  Code
}

// Contains returns whether the code is inside the range.
func (r Range) Contains(c Code) bool {
	return c >= r.First && c <= r.Last
}

// Table is a font specific glyph table. The two directions are kept
// separately as decoding is lossy: several codes can decode to the same
// character while encoding always picks one canonical code.
type Table struct {
	Name string

	EncodeExceptions map[rune]Code
	EncodeBanks      []Bank

	DecodeExceptions map[Code]rune
	DecodeBanks      []CodeBank

	// Passthrough lists the Shift-JIS code ranges that are looked up in the
	// Shift-JIS charset when neither exceptions nor banks match.
	Passthrough []Range
}

// Encode returns the glyph code for a source character.
// Exceptions are checked first, then the banks in order, then the
// Shift-JIS passthrough ranges.
func (t *Table) Encode(r rune) (Code, error) {
	if code, ok := t.EncodeExceptions[r]; ok {
		return code, nil
	}
	for _, bank := range t.EncodeBanks {
		if bank.Contains(r) {
			return bank.Code(r), nil
		}
	}

	if code, ok := t.encodePassthrough(r); ok {
		return code, nil
	}
	return 0, &UnmappableGlyphError{Char: r}
}

// Decode returns the source character for a glyph code.
func (t *Table) Decode(c Code) (rune, error) {
	if r, ok := t.decodeOwn(c); ok {
		return r, nil
	}
	if r, ok := t.decodePassthrough(c); ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnmappableCode, c)
}

// decodeOwn resolves a code using only the exceptions and banks.
func (t *Table) decodeOwn(c Code) (rune, bool) {
	if r, ok := t.DecodeExceptions[c]; ok {
		return r, true
	}
	for _, bank := range t.DecodeBanks {
		if bank.Contains(c) {
			return bank.Rune(c), true
		}
	}
	return 0, false
}

// InPassthrough returns whether the code lies in one of the passthrough ranges.
func (t *Table) InPassthrough(c Code) bool {
	for _, rng := range t.Passthrough {
		if rng.Contains(c) {
			return true
		}
	}
	return false
}

// Validate checks that the banks of each direction do not overlap.
func (t *Table) Validate() error {
	for i := range t.EncodeBanks {
		a := t.EncodeBanks[i]
		if a.Last < a.First {
			return fmt.Errorf("encode bank '%s' has an empty range", a.Name)
		}
		for _, b := range t.EncodeBanks[i+1:] {
			if a.First <= b.Last && b.First <= a.Last {
				return fmt.Errorf("encode banks '%s' and '%s' overlap", a.Name, b.Name)
			}
		}
	}

	for i := range t.DecodeBanks {
		a := t.DecodeBanks[i]
		if a.Last < a.First {
			return fmt.Errorf("decode bank '%s' has an empty range", a.Name)
		}
		for _, b := range t.DecodeBanks[i+1:] {
			if a.First <= b.Last && b.First <= a.Last {
				return fmt.Errorf("decode banks '%s' and '%s' overlap", a.Name, b.Name)
			}
		}
	}
	return nil
}

// Entry is a single decode direction mapping.
type Entry struct {
	Code Code
	Char rune
}

// Entries returns all decode direction mappings of the exceptions and banks,
// sorted by code.
func (t *Table) Entries() []Entry {
	seen := make(map[Code]struct{})
	var entries []Entry
	for code, r := range t.DecodeExceptions {
		seen[code] = struct{}{}
		entries = append(entries, Entry{Code: code, Char: r})
	}
	for _, bank := range t.DecodeBanks {
		for code := bank.First; code <= bank.Last; code++ {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			entries = append(entries, Entry{Code: code, Char: bank.Rune(code)})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries
}
