// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/config"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/options"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/script"
)

// ParseFlags parses command line flags and returns program and codec options
func ParseFlags() (options.Program, options.Codec, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "" && opts.Input == "") {
		return opts, options.Codec{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Codec{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Codec{}, err
	}
	if err := validateOptionCombinations(opts); err != nil {
		return opts, options.Codec{}, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	codec, err := createCodecOptions(opts)
	if err != nil {
		return opts, options.Codec{}, err
	}
	return opts, codec, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: dttscript [options] <script or ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after input file, please pass the input file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Mode = strings.ToLower(opts.Mode)
	switch options.Mode(opts.Mode) {
	case "", options.ModeEncode, options.ModeDecode:
	default:
		return fmt.Errorf("unsupported mode: %s. Valid options: %s, %s",
			opts.Mode, options.ModeEncode, options.ModeDecode)
	}

	opts.Format = strings.ToLower(opts.Format)
	switch opts.Format {
	case "", options.FormatText:
		opts.Format = options.FormatText
	case options.FormatYAML, "yml":
		opts.Format = options.FormatYAML
	default:
		return fmt.Errorf("unsupported format: %s. Valid options: %s, %s",
			opts.Format, options.FormatText, options.FormatYAML)
	}

	return nil
}

// validateOptionCombinations rejects encode only options in decode mode
func validateOptionCombinations(opts options.Program) error {
	if options.Mode(opts.Mode) != options.ModeDecode {
		return nil
	}
	if opts.Verify {
		return errors.New("-verify can only be used when encoding")
	}
	if opts.ROM != "" {
		return errors.New("-rom can only be used when encoding, pass the ROM as input file to decode it")
	}
	return nil
}

// createCodecOptions creates codec options from the profile and the command line overrides
func createCodecOptions(opts options.Program) (options.Codec, error) {
	profile, err := config.LoadProfile(opts.Profile)
	if err != nil {
		return options.Codec{}, fmt.Errorf("loading profile: %w", err)
	}

	codec, err := profile.Codec()
	if err != nil {
		return options.Codec{}, err
	}

	if opts.Language != "" {
		codec.Language, err = script.ParseLanguage(opts.Language)
		if err != nil {
			return options.Codec{}, err
		}
	}

	codec.Charset, err = script.ParseCharset(opts.InputEncoding)
	if err != nil {
		return options.Codec{}, err
	}

	codec.Format = opts.Format
	if opts.NotPatched {
		codec.Patched = false
	}
	if opts.Permissive {
		codec.Strict = false
	}
	return codec, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input script or ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, derived from the input file name if not given")
	flags.StringVar(&opts.ROM, "rom", "", "ROM image to patch with the encoded script, pointer table and blob files are written otherwise")
	flags.StringVar(&opts.Profile, "profile", "", "TOML profile file overriding addresses, line limits and codec switches")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.txt")
	flags.StringVar(&opts.Mode, "m", "", "conversion mode (encode/decode) - if not auto-detected from file extension")
	flags.StringVar(&opts.Language, "l", "", "script language tag or name (jp/en/es/fr/it/pt/de)")
	flags.StringVar(&opts.Format, "format", options.FormatText, "format of decoded scripts (text/yaml)")
	flags.StringVar(&opts.InputEncoding, "input-encoding", "utf8", "encoding of the input script file (utf8/sjis)")
	flags.BoolVar(&opts.NotPatched, "not-patched", false, "use the font table of the unpatched game")
	flags.BoolVar(&opts.Permissive, "permissive", false, "keep lines with unmappable characters truncated instead of failing")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the encoded script by decoding it and comparing it to the input")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
