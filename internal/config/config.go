// Package config handles application configuration and setup
package config

import (
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/escape"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateTables returns the glyph table and escape set selected by the codec options.
func CreateTables(codec options.Codec) (*glyph.Table, *escape.Set) {
	table := glyph.Native()
	if codec.Patched {
		table = glyph.Patched()
	}
	return table, escape.NewSet(codec.LegacyLF)
}
