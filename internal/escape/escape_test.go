package escape

import (
	"testing"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestMatch(t *testing.T) {
	set := Default()

	tests := []struct {
		name     string
		text     string
		token    string
		code     glyph.Code
		consumed int
		warning  report.Kind
	}{
		{name: "line break", text: `\N`, token: "N", code: LineBreak, consumed: 2},
		{name: "BR alias", text: `\BRtext`, token: "N", code: LineBreak, consumed: 3},
		{name: "LF alias", text: `\LF`, token: "N", code: LineBreak, consumed: 3},
		{name: "new textbox", text: `\LEFT`, token: "LEFT", code: NewTextbox, consumed: 5},
		{name: "end", text: `\END`, token: "END", code: End, consumed: 4},
		{name: "ED alias", text: `\ED`, token: "END", code: End, consumed: 3},
		{name: "arrow right", text: `\ARROWRIGHT`, token: "ARROWRIGHT", code: ArrowRight, consumed: 11},
		{name: "arrow left", text: `\ARROWLEFT`, token: "ARROWLEFT", code: ArrowLeft, consumed: 10},
		{name: "arrow up", text: `\ARROWUP`, token: "ARROWUP", code: ArrowUp, consumed: 8},
		{name: "arrow down", text: `\ARROWDOWN!`, token: "ARROWDOWN", code: ArrowDown, consumed: 10},
		{
			name:     "arrow without direction",
			text:     `\ARROW up`,
			token:    "ARROWRIGHT",
			code:     ArrowRight,
			consumed: 6,
			warning:  report.UnrecognizedEscapeDirection,
		},
		{name: "multiplication", text: `\MULT`, token: "MULT", code: Mult, consumed: 5},
		{name: "degree", text: `\DEG`, token: "DEG", code: Degree, consumed: 4},
		{name: "heart", text: `\HEART`, token: "HEART", code: Heart, consumed: 6},
		{name: "LOVE alias", text: `\LOVE`, token: "HEART", code: Heart, consumed: 5},
		{name: "music", text: `\MUSIC`, token: "MUSIC", code: Music, consumed: 6},
		{
			name:     "legacy restore",
			text:     `\RESTORE`,
			token:    "RESTORE",
			code:     Restore,
			consumed: 8,
			warning:  report.LegacyEscape,
		},
		{name: "N wins over longer words", text: `\NEXT`, token: "N", code: LineBreak, consumed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := set.Match([]byte(tt.text), 0)
			assert.True(t, ok)
			assert.Equal(t, tt.token, res.Token)
			assert.Equal(t, tt.code, res.Code)
			assert.Equal(t, tt.consumed, res.Consumed)
			assert.Equal(t, tt.warning, res.Warning)
		})
	}
}

func TestMatchNoCommand(t *testing.T) {
	set := Default()

	tests := []struct {
		name string
		text string
		pos  int
	}{
		{name: "unknown command", text: `\Q`},
		{name: "lowercase command", text: `\n`},
		{name: "trailing backslash", text: `\`},
		{name: "not at backslash", text: `A\N`},
		{name: "position out of range", text: `\N`, pos: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := set.Match([]byte(tt.text), tt.pos)
			assert.False(t, ok)
		})
	}
}

func TestMatchInsideLine(t *testing.T) {
	set := Default()
	text := []byte(`Hello\N World`)

	res, ok := set.Match(text, 5)
	assert.True(t, ok)
	assert.Equal(t, LineBreak, res.Code)
	assert.Equal(t, 2, res.Consumed)
}

func TestLegacyLF(t *testing.T) {
	set := NewSet(true)

	res, ok := set.Match([]byte(`\LF`), 0)
	assert.True(t, ok)
	assert.Equal(t, NewTextbox, res.Code)
	assert.Equal(t, "LF", res.Token)

	token, ok := set.Token(NewTextbox)
	assert.True(t, ok)
	assert.Equal(t, "LF", token)
}

func TestToken(t *testing.T) {
	set := Default()

	tests := []struct {
		code  glyph.Code
		token string
		found bool
	}{
		{code: LineBreak, token: "N", found: true},
		{code: NewTextbox, token: "LEFT", found: true},
		{code: End, token: "END", found: true},
		{code: ArrowUp, token: "ARROWUP", found: true},
		{code: Heart, token: "HEART", found: true},
		{code: Music, token: "MUSIC", found: true},
		{code: Restore, token: "RESTORE", found: true},
		{code: Mult, found: false},
		{code: Degree, found: false},
		{code: 0x8267, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			token, ok := set.Token(tt.code)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestControls(t *testing.T) {
	controls := Default().Controls()
	assert.Len(t, controls, 10)
	assert.Equal(t, Control{Code: Restore, Token: "RESTORE"}, controls[0])
	assert.Equal(t, Control{Code: LineBreak, Token: "N"}, controls[1])
	assert.Equal(t, Control{Code: ArrowRight, Token: "ARROWRIGHT"}, controls[4])
	assert.Equal(t, Control{Code: Heart, Token: "HEART"}, controls[9])

	legacy := NewSet(true).Controls()
	assert.Equal(t, Control{Code: NewTextbox, Token: "LF"}, legacy[3])
}
