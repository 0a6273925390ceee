// Package loader handles script and ROM file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"os"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/container"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/detector"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/rom"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
)

// Script is a loaded dialogue script.
type Script struct {
	Lines  []script.SourceLine
	Header script.Header
	Report *report.Report // extraction diagnostics
}

// Loader handles loading script and ROM files from disk.
type Loader struct{}

// New creates a new file loader.
func New() *Loader {
	return &Loader{}
}

// LoadScript loads a script file and extracts the lines of the codec language.
// Text scripts need a line count header, YAML scripts carry the count in the
// document.
func (l *Loader) LoadScript(path string, codec options.Codec) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	data, err = script.ToUTF8(data, codec.Charset)
	if err != nil {
		return nil, fmt.Errorf("converting %s to UTF-8: %w", codec.Charset, err)
	}

	if detector.IsYAML(path) {
		lines, header, err := script.ReadYAML(bytes.NewReader(data), codec.Limits, codec.Language)
		if err != nil {
			return nil, fmt.Errorf("reading YAML script: %w", err)
		}
		return &Script{
			Lines:  lines,
			Header: header,
			Report: &report.Report{},
		}, nil
	}

	header, err := script.ParseHeader(data, codec.Limits)
	if err != nil {
		return nil, fmt.Errorf("parsing header of %s: %w", path, err)
	}

	lines, rep := script.ExtractLines(data, codec.Language, header.Lines)
	return &Script{
		Lines:  lines,
		Header: header,
		Report: rep,
	}, nil
}

// LoadROM loads a GBA ROM image and checks that the pointer table of the
// layout is inside of it.
func (l *Loader) LoadROM(path string, layout rom.Layout) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if err := rom.CheckHeader(bytes.NewReader(image)); err != nil {
		return nil, fmt.Errorf("checking ROM header: %w", err)
	}

	end := uint64(layout.PointerTable) + uint64(layout.Lines)*container.PointerSize
	if end > uint64(len(image)) {
		return nil, fmt.Errorf("%w: pointer table 0x%X-0x%X, image size 0x%X",
			rom.ErrOutOfRange, layout.PointerTable, end, len(image))
	}
	return image, nil
}
