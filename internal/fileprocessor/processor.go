// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/pipeline"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline,
	opts options.Program, codec options.Codec) error {

	switch mode := p.Mode(opts); mode {
	case options.ModeEncode:
		return encodeFile(ctx, logger, p, opts, codec)
	case options.ModeDecode:
		return decodeFile(ctx, logger, p, opts, codec)
	default:
		return fmt.Errorf("unsupported mode '%s'", mode)
	}
}

func encodeFile(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline,
	opts options.Program, codec options.Codec) error {

	result, err := p.Encode(ctx, opts, codec)
	if err != nil {
		return err
	}

	if err := p.Store(opts, codec, result.Container); err != nil {
		return fmt.Errorf("storing encoded script: %w", err)
	}

	logger.Info("Wrote encoded script", log.String("file", opts.Output))
	return nil
}

func decodeFile(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline,
	opts options.Program, codec options.Codec) (err error) {

	result, err := p.Decode(ctx, opts, codec)
	if err != nil {
		return err
	}

	w, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closeErr := closeWriter(w); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := writer.Script(w, codec.Format, result.Lines, codec.Language); err != nil {
		return fmt.Errorf("writing decoded script: %w", err)
	}

	if opts.Output != "" {
		logger.Info("Wrote decoded script", log.String("file", opts.Output))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file.
// Decoded scripts get the extension of the format, patched ROMs a _patched
// suffix and encoded scripts the blob extension.
func GenerateOutputFilename(inputFile string, mode options.Mode, opts options.Program) string {
	ext := filepath.Ext(inputFile)
	base := inputFile[:len(inputFile)-len(ext)]

	switch {
	case mode == options.ModeDecode && opts.Format == options.FormatYAML:
		return base + ".yaml"
	case mode == options.ModeDecode:
		return base + ".txt"
	case opts.ROM != "":
		romExt := filepath.Ext(opts.ROM)
		if romExt == "" {
			romExt = ".gba"
		}
		return base + "_patched" + romExt
	default:
		return base + ".bin"
	}
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	if dir := filepath.Dir(opts.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// closeWriter closes an output file writer, stdout is left open.
func closeWriter(w io.Writer) error {
	closer, ok := w.(io.Closer)
	if !ok || w == os.Stdout {
		return nil
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("dttscript", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
