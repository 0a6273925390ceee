// Package escape implements the backslash command language of script lines.
package escape

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
)

// Control codes emitted by escape commands.
const (
	LineBreak  glyph.Code = 0x4252
	NewTextbox glyph.Code = 0x4C46
	End        glyph.Code = 0x4544
	Restore    glyph.Code = 0x2549

	ArrowRight glyph.Code = 0x81A8
	ArrowLeft  glyph.Code = 0x81A9
	ArrowUp    glyph.Code = 0x81AA
	ArrowDown  glyph.Code = 0x81AB

	Mult   glyph.Code = 0x817E
	Degree glyph.Code = 0x8142
	Heart  glyph.Code = 0x8740
	Music  glyph.Code = 0x81F4
)

// Prefix starts every command.
const Prefix = '\\'

// Command is a single escape command. Aliases are matched as separate
// entries of the command list.
type Command struct {
	Token string     // canonical name, written when decoding
	Alias string     // matched spelling, empty if identical to Token
	Code  glyph.Code // emitted control code
	// Decode marks commands whose code is written back as the token when
	// decoding. Codes shared with a regular glyph decode as the glyph.
	Decode bool
	// Warning is reported every time the command is used.
	Warning report.Kind
}

func (c Command) spelling() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Token
}

type direction struct {
	name string
	code glyph.Code
}

var arrowDirections = []direction{
	{"RIGHT", ArrowRight},
	{"LEFT", ArrowLeft},
	{"UP", ArrowUp},
	{"DOWN", ArrowDown},
}

const arrowToken = "ARROW"

// Result is a matched command.
type Result struct {
	Token    string     // canonical token, ARROW results include the direction
	Code     glyph.Code // control code to emit
	Consumed int        // bytes consumed including the backslash
	Warning  report.Kind
}

// Set is an ordered command list. The first matching command wins.
type Set struct {
	commands []Command
	tokens   map[glyph.Code]string
}

// NewSet returns the command set. With legacyLF the LF alias emits the new
// textbox code like LEFT, otherwise it is a line break alias of N and BR.
func NewSet(legacyLF bool) *Set {
	lf := Command{Token: "N", Alias: "LF", Code: LineBreak}
	if legacyLF {
		lf = Command{Token: "LF", Code: NewTextbox, Decode: true}
	}

	commands := []Command{
		{Token: "RESTORE", Code: Restore, Decode: true, Warning: report.LegacyEscape},
		{Token: "N", Code: LineBreak, Decode: true},
		{Token: "N", Alias: "BR", Code: LineBreak},
		{Token: "LEFT", Code: NewTextbox, Decode: !legacyLF},
		lf,
		{Token: "END", Code: End, Decode: true},
		{Token: "END", Alias: "ED", Code: End},
		{Token: arrowToken},
		{Token: "MULT", Code: Mult},
		{Token: "DEG", Code: Degree},
		{Token: "HEART", Code: Heart, Decode: true},
		{Token: "HEART", Alias: "LOVE", Code: Heart},
		{Token: "MUSIC", Code: Music, Decode: true},
	}

	s := &Set{
		commands: commands,
		tokens:   make(map[glyph.Code]string),
	}
	for _, cmd := range commands {
		if cmd.Decode {
			s.tokens[cmd.Code] = cmd.Token
		}
	}
	for _, dir := range arrowDirections {
		s.tokens[dir.code] = arrowToken + dir.name
	}
	return s
}

// Default returns the command set with LF as line break alias.
func Default() *Set {
	return NewSet(false)
}

// Match tries to match a command at pos, which has to point at a backslash.
// Unknown sequences do not match and are encoded as literal text.
func (s *Set) Match(text []byte, pos int) (Result, bool) {
	if pos >= len(text) || text[pos] != Prefix {
		return Result{}, false
	}
	rest := text[pos+1:]

	for _, cmd := range s.commands {
		spelling := cmd.spelling()
		if !bytes.HasPrefix(rest, []byte(spelling)) {
			continue
		}

		if cmd.Token == arrowToken {
			return matchArrow(rest[len(spelling):]), true
		}
		return Result{
			Token:    cmd.Token,
			Code:     cmd.Code,
			Consumed: 1 + len(spelling),
			Warning:  cmd.Warning,
		}, true
	}
	return Result{}, false
}

// matchArrow reads the direction suffix. Without a known suffix the arrow
// points right.
func matchArrow(suffix []byte) Result {
	consumed := 1 + len(arrowToken)
	for _, dir := range arrowDirections {
		if bytes.HasPrefix(suffix, []byte(dir.name)) {
			return Result{
				Token:    arrowToken + dir.name,
				Code:     dir.code,
				Consumed: consumed + len(dir.name),
			}
		}
	}
	return Result{
		Token:    arrowToken + "RIGHT",
		Code:     ArrowRight,
		Consumed: consumed,
		Warning:  report.UnrecognizedEscapeDirection,
	}
}

// Token returns the command token written for a control code when decoding.
func (s *Set) Token(code glyph.Code) (string, bool) {
	token, ok := s.tokens[code]
	return token, ok
}

// Control is a code that decodes to a command token.
type Control struct {
	Code  glyph.Code
	Token string
}

// Controls returns the control codes written back as tokens, sorted by code.
func (s *Set) Controls() []Control {
	controls := make([]Control, 0, len(s.tokens))
	for code, token := range s.tokens {
		controls = append(controls, Control{Code: code, Token: token})
	}
	slices.SortFunc(controls, func(a, b Control) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return controls
}
