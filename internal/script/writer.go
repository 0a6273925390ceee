package script

import (
	"bufio"
	"fmt"
	"io"
)

const intro = `# Dream Tag Tournament Dialogue Layout v1.0
# This is a text format for editing the DTT script.
# By using \ you can specify special commands.
# Here's a list of all commands:
# \N        = Linebreak, \BR and \LF are aliases
# \LEFT     = Creates a new textbox for dialogues.
# \MULT     = Multiplication sign.
# \DEG      = Degree sign.
# \MUSIC    = 8th note.
# \HEART    = Heart icon, \LOVE is an alias.
# \ARROW    = Arrow icon, UP, DOWN, LEFT, RIGHT.
# \END      = Terminates line, \ED is an alias.`

// Write writes lines in the script text layout: the commented intro, the
// line count header and one numbered record per line.
func Write(w io.Writer, lines []SourceLine) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\n\n%s%d\n\n", intro, HeaderToken, len(lines)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(bw, "%d\n%s%s\n\n", line.Index, RecordTag(line.Language), line.Text); err != nil {
			return fmt.Errorf("writing line %d: %w", line.Index, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing script: %w", err)
	}
	return nil
}
