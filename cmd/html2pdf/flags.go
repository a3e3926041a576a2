package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag validation.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrUnknownCommand     = errors.New("unknown command")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// convertFlags holds all flags for conversion.
type convertFlags struct {
	common commonFlags

	// Single file
	file   string
	output string

	// Directory
	inputDir  string
	outputDir string
	recursive bool
	workers   int

	// Conversion
	policy    string
	engine    string
	timeout   string
	css       string
	assetPath string
	page      pageFlags

	// Output control
	bar bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// parseConvertFlags parses conversion flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("html2pdf", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.StringVarP(&f.file, "file", "f", "", "HTML file to convert")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (single file)")
	fs.StringVarP(&f.inputDir, "input-dir", "i", "", "directory of HTML files to convert")
	fs.StringVarP(&f.outputDir, "output-dir", "d", "", "output directory for PDFs")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "include subdirectories of --input-dir")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	fs.StringVar(&f.policy, "policy", "", "expansion policy: full, light")
	fs.StringVar(&f.engine, "engine", "", "rendering engine: chrome, text")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.css, "css", "", "extra stylesheet: file path, style name, or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory whose styles/ override built-in stylesheets")

	fs.BoolVar(&f.bar, "bar", false, "show a progress bar in batch mode")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := validateWorkers(f.workers); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// validateWorkers rejects negative worker counts. Zero means auto.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	return nil
}
