// Package options contains the program options.
package options

import (
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/rom"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
)

// Mode selects the conversion direction.
type Mode string

// Supported modes.
const (
	ModeEncode Mode = "encode"
	ModeDecode Mode = "decode"
)

// Output formats of decoded scripts.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input script or ROM file"`
	Output  string `flag:"o" usage:"output file (default: derived from input)"`
	ROM     string `flag:"rom" usage:"ROM image to patch with the encoded script"`
	Profile string `flag:"profile" usage:"TOML profile overriding the codec constants"`
	Batch   string `flag:"batch" usage:"batch process files matching pattern (e.g. *.txt)"`
}

// Flags contains behavior options.
type Flags struct {
	Mode          string `flag:"m" usage:"mode: encode, decode (default: auto-detect)"`
	Language      string `flag:"l" usage:"script language tag or name"`
	Format        string `flag:"format" usage:"decoded script format: text, yaml" default:"text"`
	InputEncoding string `flag:"input-encoding" usage:"script file encoding: utf8, sjis" default:"utf8"`
	NotPatched    bool   `flag:"not-patched" usage:"use the native font table"`
	Permissive    bool   `flag:"permissive" usage:"keep lines with unmappable glyphs truncated"`
	Verify        bool   `flag:"verify" usage:"verify the encoded script by decoding it"`
	Debug         bool   `flag:"debug" usage:"enable debug logging"`
	Quiet         bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the script tool.
type Program struct {
	Parameters
	Flags
}

// Codec defines options to control the encoder and decoder.
type Codec struct {
	Language script.Language
	Charset  script.Charset
	Format   string
	Limits   script.Limits // line count header bounds
	Layout   rom.Layout    // script location in the ROM

	Patched  bool // use the patched font table
	LegacyLF bool // \LF opens a new textbox instead of breaking the line
	Strict   bool
	Workers  int
	MaxUnits int // decoder read limit per line
}

// NewCodec returns a new options instance with the game defaults.
func NewCodec() Codec {
	return Codec{
		Language: script.Japanese,
		Charset:  script.UTF8,
		Format:   FormatText,
		Limits:   script.DefaultLimits(),
		Layout:   rom.DefaultLayout(),
		Patched:  true,
		Strict:   true,
		MaxUnits: 2048,
	}
}
