package glyph

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCodeBytes(t *testing.T) {
	code := Code(0x824F)
	b := code.Bytes()
	assert.Equal(t, byte(0x82), b[0])
	assert.Equal(t, byte(0x4F), b[1])
	assert.Equal(t, code, CodeFromBytes(0x82, 0x4F))
	assert.Equal(t, "0x824F", code.String())
}

func TestDigitBank(t *testing.T) {
	for _, table := range []*Table{Patched(), Native()} {
		for k := range 10 {
			code, err := table.Encode('0' + rune(k))
			assert.NoError(t, err)
			assert.Equal(t, Code(0x824F)+Code(k), code)
		}
	}
}

func TestPatchedEncode(t *testing.T) {
	table := Patched()

	tests := []struct {
		name string
		char rune
		want Code
	}{
		{name: "uppercase", char: 'H', want: 0x8267},
		{name: "lowercase", char: 'e', want: 0x82A3},
		{name: "last lowercase", char: 'z', want: 0x82B8},
		{name: "space", char: ' ', want: 0x8140},
		{name: "exclamation", char: '!', want: 0x8149},
		{name: "ellipsis", char: '…', want: 0x8163},
		{name: "underscore as ellipsis", char: '_', want: 0x8163},
		{name: "backslash as solidus", char: '\\', want: 0x815E},
		{name: "n tilde", char: 'ñ', want: 0x82B9},
		{name: "accented i", char: 'í', want: AccentI},
		{name: "inverted exclamation", char: '¡', want: 0x82C2},
		{name: "fullwidth digit", char: '７', want: 0x8256},
		{name: "fullwidth uppercase", char: 'Ｂ', want: 0x8261},
		{name: "fullwidth lowercase", char: 'ｂ', want: 0x82A0},
		{name: "hiragana after overlay", char: 'づ', want: 0x82C3},
		{name: "last hiragana", char: 'ん', want: 0x82F1},
		{name: "katakana low", char: 'ア', want: 0x8341},
		{name: "katakana high", char: 'ン', want: 0x8393},
		{name: "small ka", char: 'ヵ', want: 0x8395},
		{name: "kanji exception", char: '清', want: 0x90B4},
		{name: "kanji passthrough", char: '漢', want: 0x8ABF},
		{name: "ideographic space", char: '\u3000', want: 0x8140},
		{name: "arrow passthrough", char: '→', want: 0x81A8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := table.Encode(tt.char)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestPatchedEncodeUnmappable(t *testing.T) {
	table := Patched()

	tests := []struct {
		name string
		char rune
	}{
		{name: "overlaid hiragana", char: 'ぁ'},
		{name: "vu overlaid by shifted i", char: 'ヴ'},
		{name: "equals sign", char: '='},
		{name: "emoji", char: '😀'},
		{name: "control character", char: '\t'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Encode(tt.char)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnmappableGlyph))

			var glyphErr *UnmappableGlyphError
			assert.True(t, errors.As(err, &glyphErr))
			assert.Equal(t, tt.char, glyphErr.Char)
		})
	}
}

func TestPatchedDecode(t *testing.T) {
	table := Patched()

	tests := []struct {
		name string
		code Code
		want rune
	}{
		{name: "digit", code: 0x8258, want: '9'},
		{name: "lowercase", code: 0x829F, want: 'a'},
		{name: "opening quote", code: QuoteOpen, want: '"'},
		{name: "closing quote", code: QuoteClose, want: '"'},
		{name: "shifted i", code: AccentIShifted, want: 'í'},
		{name: "halfwidth space", code: 0xE000, want: ' '},
		{name: "halfwidth digit", code: 0xE001, want: '0'},
		{name: "halfwidth letter", code: 0xE02E, want: 'd'},
		{name: "halfwidth accent", code: 0xE047, want: 'á'},
		{name: "multiplication sign", code: 0x817E, want: '×'},
		{name: "kanji passthrough", code: 0x8ABF, want: '漢'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := table.Decode(tt.code)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestDecodeUnmappable(t *testing.T) {
	table := Patched()

	for _, code := range []Code{0x0001, 0x4141, 0xE052, 0xFFFF} {
		_, err := table.Decode(code)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnmappableCode))
	}
}

func TestNativeTable(t *testing.T) {
	table := Native()

	code, err := table.Encode('a')
	assert.NoError(t, err)
	assert.Equal(t, Code(0x8281), code)

	code, err = table.Encode('ぁ')
	assert.NoError(t, err)
	assert.Equal(t, Code(0x829F), code)

	code, err = table.Encode('ヴ')
	assert.NoError(t, err)
	assert.Equal(t, Code(0x8394), code)

	_, err = table.Encode('ñ')
	assert.Error(t, err)

	r, err := table.Decode(0xE04D)
	assert.NoError(t, err)
	assert.Equal(t, ' ', r)

	r, err = table.Decode(0xE00C)
	assert.NoError(t, err)
	assert.Equal(t, 'ひ', r)
}

func TestRoundTrip(t *testing.T) {
	source := "Hello World! 0123456789 ABCXYZ abcxyz ñáéíóúüç¿¡ ,.:;?/~'()[]+-<>%#&*@… ×。ー づんアンヵヶ 清麿恵博 漢字"

	table := Patched()
	for _, r := range source {
		code, err := table.Encode(r)
		assert.NoError(t, err)

		decoded, err := table.Decode(code)
		assert.NoError(t, err)
		assert.Equal(t, r, decoded)
	}

	native := Native()
	for _, r := range "Hello World 0123 ぁあいうえおん ァヴヶ 漢字" {
		code, err := native.Encode(r)
		assert.NoError(t, err)

		decoded, err := native.Decode(code)
		assert.NoError(t, err)
		assert.Equal(t, r, decoded)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Patched().Validate())
	assert.NoError(t, Native().Validate())

	table := Patched()
	table.EncodeBanks = append(table.EncodeBanks, Bank{Name: "overlap", First: '5', Last: 'B', Base: 0x9000})
	err := table.Validate()
	assert.ErrorContains(t, err, "overlap")

	table = Native()
	table.DecodeBanks = append(table.DecodeBanks, CodeBank{Name: "reversed", First: 0x9001, Last: 0x9000, Base: 'a'})
	assert.Error(t, table.Validate())
}

func TestByName(t *testing.T) {
	table, ok := ByName(NativeName)
	assert.True(t, ok)
	assert.Equal(t, NativeName, table.Name)

	_, ok = ByName("unknown")
	assert.False(t, ok)
}

func TestWriteTBL(t *testing.T) {
	entries := []Entry{
		{Code: 0x824F, Char: '0'},
		{Code: 0x82B9, Char: 'ñ'},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteTBL(&buf, entries))
	assert.NoError(t, WriteTBLControl(&buf, 0x4252, "N"))
	assert.Equal(t, "824F=0\n82B9=ñ\n4252=\\N\n", buf.String())

	all := Patched().Entries()
	assert.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Code < all[i].Code)
	}

	buf.Reset()
	assert.NoError(t, WriteTBL(&buf, all))
	assert.True(t, strings.HasPrefix(buf.String(), "8140= \n"))
}
