package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/rom"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
)

// Profile contains the codec constants of a game build. Values not set in a
// profile file keep their defaults.
type Profile struct {
	Base         uint32 `toml:"base"`          // load address of the script blob
	Mask         uint32 `toml:"mask"`          // bus address to file offset mask
	PointerTable uint32 `toml:"pointer_table"` // file offset of the pointer table
	Lines        int    `toml:"lines"`         // pointer table entries read when decoding

	Ceiling  int `toml:"ceiling"`  // highest accepted header line count
	Fallback int `toml:"fallback"` // line count used above the ceiling

	Language string `toml:"language"`
	Patched  bool   `toml:"patched"`
	Strict   bool   `toml:"strict"`
	LegacyLF bool   `toml:"legacy_lf"`
	Workers  int    `toml:"workers"`
	MaxUnits int    `toml:"max_units"`
}

// DefaultProfile returns the profile of the Dream Tag Tournament ROM.
func DefaultProfile() Profile {
	codec := options.NewCodec()
	return Profile{
		Base:         codec.Layout.Base,
		Mask:         codec.Layout.Mask,
		PointerTable: codec.Layout.PointerTable,
		Lines:        codec.Layout.Lines,
		Ceiling:      codec.Limits.Ceiling,
		Fallback:     codec.Limits.Fallback,
		Language:     codec.Language.Tag,
		Patched:      codec.Patched,
		Strict:       codec.Strict,
		MaxUnits:     codec.MaxUnits,
	}
}

// LoadProfile reads a TOML profile file on top of the default profile.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	md, err := toml.DecodeFile(path, &profile)
	if err != nil {
		return Profile{}, fmt.Errorf("decoding profile '%s': %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Profile{}, fmt.Errorf("profile '%s' contains unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := profile.validate(); err != nil {
		return Profile{}, fmt.Errorf("validating profile '%s': %w", path, err)
	}
	return profile, nil
}

func (p Profile) validate() error {
	switch {
	case p.Lines < 0:
		return errors.New("lines must not be negative")
	case p.Ceiling < 0 || p.Fallback < 0:
		return errors.New("ceiling and fallback must not be negative")
	case p.Ceiling > 0 && p.Fallback > p.Ceiling:
		return fmt.Errorf("fallback %d exceeds ceiling %d", p.Fallback, p.Ceiling)
	case p.Workers < 0:
		return errors.New("workers must not be negative")
	case p.MaxUnits <= 0:
		return errors.New("max_units must be positive")
	case p.Mask == 0:
		return errors.New("mask must not be zero")
	}
	return nil
}

// Codec returns the codec options of the profile.
func (p Profile) Codec() (options.Codec, error) {
	lang, err := script.ParseLanguage(p.Language)
	if err != nil {
		return options.Codec{}, fmt.Errorf("parsing profile language: %w", err)
	}

	codec := options.NewCodec()
	codec.Language = lang
	codec.Limits = script.Limits{
		Ceiling:  p.Ceiling,
		Fallback: p.Fallback,
	}
	codec.Layout = rom.Layout{
		PointerTable: p.PointerTable,
		Lines:        p.Lines,
		Base:         p.Base,
		Mask:         p.Mask,
	}
	codec.Patched = p.Patched
	codec.Strict = p.Strict
	codec.LegacyLF = p.LegacyLF
	codec.Workers = p.Workers
	codec.MaxUnits = p.MaxUnits
	return codec, nil
}
