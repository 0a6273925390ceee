package script

import (
	"bytes"
	"errors"
	"strconv"
)

// ErrMalformedHeader is returned when the line count header is missing.
var ErrMalformedHeader = errors.New("malformed header: missing 'ln: <count>' token")

// HeaderToken starts the line count header.
const HeaderToken = "ln: "

// Limits bounds the declared line count. A count above Ceiling is replaced
// by Fallback, which matches the line count of the original game script.
type Limits struct {
	Ceiling  int
	Fallback int
}

// DefaultLimits returns the limits used by the game script.
func DefaultLimits() Limits {
	return Limits{
		Ceiling:  700,
		Fallback: 617,
	}
}

// Header is the parsed line count header.
type Header struct {
	Declared int  // count as written in the file
	Lines    int  // count to process
	Clamped  bool // Declared exceeded the ceiling
}

// ParseHeader finds the first line count header in the script.
func ParseHeader(src []byte, limits Limits) (Header, error) {
	idx := bytes.Index(src, []byte(HeaderToken))
	if idx < 0 {
		return Header{}, ErrMalformedHeader
	}

	digits := src[idx+len(HeaderToken):]
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		return Header{}, ErrMalformedHeader
	}

	declared, err := strconv.Atoi(string(digits[:end]))
	if err != nil {
		return Header{}, ErrMalformedHeader
	}

	return limits.Header(declared), nil
}

// Header returns the header for a declared line count.
func (l Limits) Header(declared int) Header {
	header := Header{
		Declared: declared,
		Lines:    declared,
	}
	if l.Ceiling > 0 && declared > l.Ceiling {
		header.Lines = l.Fallback
		header.Clamped = true
	}
	return header
}
