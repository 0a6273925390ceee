package script

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset is the encoding of a script file.
type Charset int

// Supported charsets.
const (
	UTF8 Charset = iota
	ShiftJIS
)

func (c Charset) String() string {
	switch c {
	case ShiftJIS:
		return "Shift_JIS"
	default:
		return "UTF-8"
	}
}

// ParseCharset returns the charset for a name.
func ParseCharset(name string) (Charset, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF8", "UTF-8":
		return UTF8, nil
	case "SJIS", "SHIFTJIS", "SHIFT_JIS", "SHIFT-JIS", "CP932":
		return ShiftJIS, nil
	default:
		return UTF8, fmt.Errorf("unsupported input encoding '%s'", name)
	}
}

// ToUTF8 converts script data to UTF-8. A leading UTF-8 byte order mark is
// removed.
func ToUTF8(data []byte, charset Charset) ([]byte, error) {
	var t transform.Transformer
	switch charset {
	case ShiftJIS:
		t = japanese.ShiftJIS.NewDecoder()
	default:
		t = unicode.UTF8BOM.NewDecoder()
	}

	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return nil, fmt.Errorf("converting %s script: %w", charset, err)
	}
	return out, nil
}
