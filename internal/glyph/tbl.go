package glyph

import (
	"bufio"
	"fmt"
	"io"
)

// WriteTBL writes entries in the table file format used by ROM hacking
// tools, one "XXXX=c" line per code.
func WriteTBL(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%04X=%c\n", uint16(e.Code), e.Char); err != nil {
			return fmt.Errorf("writing table entry %s: %w", e.Code, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// WriteTBLControl writes a control code line, used for escape commands.
func WriteTBLControl(w io.Writer, code Code, token string) error {
	if _, err := fmt.Fprintf(w, "%04X=\\%s\n", uint16(code), token); err != nil {
		return fmt.Errorf("writing control code %s: %w", code, err)
	}
	return nil
}
