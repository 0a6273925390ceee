// Package pipeline orchestrates the encode and decode workflow stages.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/config"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/container"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/decoder"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/detector"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/encoder"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/loader"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/report"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/rom"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Result is the outcome of a pipeline run.
type Result struct {
	Container *container.Container // encoded script, set when encoding
	Lines     []script.SourceLine  // decoded script, set when decoding
	Report    *report.Report
}

// Pipeline orchestrates the complete conversion workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new conversion pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Mode returns the conversion mode for the input of the options.
func (p *Pipeline) Mode(opts options.Program) options.Mode {
	return p.detector.Detect(opts)
}

// Encode loads the input script and encodes it into a container.
func (p *Pipeline) Encode(ctx context.Context, opts options.Program, codec options.Codec) (*Result, error) {
	s, err := p.loader.LoadScript(opts.Input, codec)
	if err != nil {
		return nil, fmt.Errorf("loading script: %w", err)
	}

	p.printInfo(opts, codec, s.Header)

	return p.EncodeLines(ctx, opts, codec, s.Lines, s.Header.Lines, s.Report)
}

// EncodeLines encodes already loaded lines. This is useful for testing and
// programmatic usage where the script is already in memory.
func (p *Pipeline) EncodeLines(ctx context.Context, opts options.Program, codec options.Codec,
	lines []script.SourceLine, declared int, extraction *report.Report) (*Result, error) {

	table, escapes := config.CreateTables(codec)
	enc := encoder.New(p.logger, table, escapes, encoder.Options{
		Base:    codec.Layout.Base,
		Strict:  codec.Strict,
		Workers: codec.Workers,
	})

	rep := &report.Report{}
	rep.Merge(extraction)

	c, encodeReport, err := enc.Encode(ctx, lines, declared)
	rep.Merge(encodeReport)
	rep.Sort()
	rep.Log(p.logger)
	if err != nil {
		return nil, fmt.Errorf("encoding script: %w", err)
	}

	if opts.Verify {
		dec := decoder.New(p.logger, table, escapes, decoder.Options{
			Mask:     codec.Layout.Mask,
			MaxUnits: codec.MaxUnits,
		})
		if err := verification.VerifyOutput(ctx, p.logger, enc, dec, c, codec.Language); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	p.logger.Info("Encoded script",
		log.Int("lines", len(c.Lines)),
		log.Int("pointers", len(c.Pointers)),
		log.Int("blob_size", len(c.Blob)),
		log.Int("diagnostics", rep.Len()))

	return &Result{
		Container: c,
		Report:    rep,
	}, nil
}

// Store writes the container to the output. With a ROM set in the options the
// ROM is patched and written to the output file, otherwise pointer table and
// blob files are written next to the output file name.
func (p *Pipeline) Store(opts options.Program, codec options.Codec, c *container.Container) error {
	var (
		sink    rom.Sink
		patcher *rom.ImagePatcher
	)

	if opts.ROM == "" {
		sink = rom.FileSink{
			Path: strings.TrimSuffix(opts.Output, filepath.Ext(opts.Output)),
		}
	} else {
		image, err := p.loader.LoadROM(opts.ROM, codec.Layout)
		if err != nil {
			return fmt.Errorf("loading ROM: %w", err)
		}
		if len(image) < rom.MinImageSize {
			p.logger.Warn("ROM image is smaller than the game ROM",
				log.String("file", opts.ROM),
				log.Int("size", len(image)))
		}
		if len(c.Pointers) > codec.Layout.Lines {
			p.logger.Warn("Pointer table is larger than the game pointer table",
				log.Int("pointers", len(c.Pointers)),
				log.Int("game_pointers", codec.Layout.Lines))
		}

		patcher = rom.NewImagePatcher(image, codec.Layout)
		sink = patcher
	}

	if err := sink.Accept(c.PointerTableBytes(), c.Blob, c.Base); err != nil {
		return fmt.Errorf("storing container: %w", err)
	}
	if patcher == nil {
		return nil
	}

	if err := os.WriteFile(opts.Output, patcher.Image(), 0o644); err != nil {
		return fmt.Errorf("writing file '%s': %w", opts.Output, err)
	}
	return nil
}

// Decode loads the input ROM and decodes the lines of the pointer table.
func (p *Pipeline) Decode(ctx context.Context, opts options.Program, codec options.Codec) (*Result, error) {
	image, err := p.loader.LoadROM(opts.Input, codec.Layout)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}
	if len(image) < rom.MinImageSize {
		p.logger.Warn("ROM image is smaller than the game ROM",
			log.String("file", opts.Input),
			log.Int("size", len(image)))
	}

	src := bytes.NewReader(image)
	pointers, err := rom.ReadPointerTable(src, int64(codec.Layout.PointerTable), codec.Layout.Lines)
	if err != nil {
		return nil, fmt.Errorf("reading pointer table: %w", err)
	}

	if !opts.Quiet {
		p.logger.Info("Decoding ROM",
			log.String("file", opts.Input),
			log.Hex("pointer_table", int(codec.Layout.PointerTable)),
			log.Int("lines", codec.Layout.Lines),
			log.Stringer("language", codec.Language))
	}

	table, escapes := config.CreateTables(codec)
	dec := decoder.New(p.logger, table, escapes, decoder.Options{
		Mask:     codec.Layout.Mask,
		MaxUnits: codec.MaxUnits,
	})

	lines, rep := dec.Decode(src, pointers, codec.Language)
	rep.Log(p.logger)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}

	return &Result{
		Lines:  lines,
		Report: rep,
	}, nil
}

// printInfo prints information about the script being processed.
func (p *Pipeline) printInfo(opts options.Program, codec options.Codec, header script.Header) {
	if header.Clamped {
		p.logger.Warn("Declared line count exceeds the limit, using fallback",
			log.Int("declared", header.Declared),
			log.Int("ceiling", codec.Limits.Ceiling),
			log.Int("lines", header.Lines))
	}

	if opts.Quiet {
		return
	}

	table := glyph.PatchedName
	if !codec.Patched {
		table = glyph.NativeName
	}
	p.logger.Info("Encoding script",
		log.String("file", opts.Input),
		log.Stringer("language", codec.Language),
		log.Int("lines", header.Lines),
		log.String("table", table))
}
