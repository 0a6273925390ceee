// Package main implements a glyph table exporter writing the font mapping of
// Dream Tag Tournament as .tbl file for ROM hacking tools.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SuperrSonic/dreamtagtournament-tools/internal/escape"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/glyph"
	"github.com/SuperrSonic/dreamtagtournament-tools/internal/writer"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	output   string
	table    string
	legacyLF bool
	quiet    bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	if err := exportTable(options); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("exporting table failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.output, "o", "", "name of the output .tbl file, printed on console if no name given")
	flags.StringVar(&options.table, "t", glyph.PatchedName, "font table to export (patched/native)")
	flags.BoolVar(&options.legacyLF, "legacy-lf", false, "export \\LF as new textbox control code")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() > 0 {
		printBanner()
		fmt.Printf("usage: dtttable [options]\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return options
}

func printBanner() {
	fmt.Fprintln(os.Stderr, "[--------------------------------------------]")
	fmt.Fprintln(os.Stderr, "[ dtttable - Dream Tag Tournament table dump ]")
	fmt.Fprintf(os.Stderr, "[--------------------------------------------]\n\n")
	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}
	if date != "" {
		versionString += ", built " + date
	}
	fmt.Fprintf(os.Stderr, "version: %s\n\n", versionString)
}

func exportTable(options optionFlags) error {
	table, ok := glyph.ByName(options.table)
	if !ok {
		return fmt.Errorf("unsupported table '%s'", options.table)
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("validating table: %w", err)
	}

	var out io.Writer = os.Stdout
	if options.output != "" {
		file, err := os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", options.output, err)
		}
		defer func() {
			_ = file.Close()
		}()
		out = file
	}

	bw := bufio.NewWriter(out)
	if err := writer.Table(bw, table, escape.NewSet(options.legacyLF)); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}
