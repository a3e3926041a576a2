package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// runConvert parses flags and converts a file or a directory.
func runConvert(ctx context.Context, args []string, env *Environment) int {
	f, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, err, "")
	}

	s, err := loadSettings(f, positional, env)
	if err != nil {
		return reportError(env, err, s.configName)
	}
	setupLogging(env.Stderr, s.quiet, s.verbose)

	switch {
	case s.inputDir != "":
		return runBatch(ctx, s, env)
	case s.file != "":
		return runSingle(ctx, s, env)
	default:
		printUsage(env.Stderr)
		return reportError(env, ErrNoInput, s.configName)
	}
}

// runSingle converts one file.
func runSingle(ctx context.Context, s *settings, env *Environment) int {
	if !fileutil.FileExists(s.file) {
		fmt.Fprintf(env.Stderr, "Error: File not found: %s\n", s.file)
		return ExitIO
	}

	conv, err := env.NewConverter(s.options...)
	if err != nil {
		return reportError(env, err, s.configName)
	}
	defer closeLogged(conv)

	res := conv.ConvertFile(ctx, s.file, s.output)
	if !res.OK() {
		fmt.Fprintln(env.Stderr, "Conversion failed.")
		return reportError(env, res.Err, s.configName)
	}

	if !s.quiet {
		fmt.Fprintf(env.Stdout, "Conversion successful! PDF saved to: %s\n", res.Destination)
		fmt.Fprintf(env.Stdout, "Converted %s to %s in %.2f seconds\n",
			res.Source, res.Destination, res.Duration.Seconds())
	}
	return ExitSuccess
}

// runBatch converts every HTML file of a directory with a converter pool.
func runBatch(ctx context.Context, s *settings, env *Environment) int {
	if !fileutil.DirExists(s.inputDir) {
		fmt.Fprintf(env.Stderr, "Error: Directory not found: %s\n", s.inputDir)
		return ExitIO
	}
	start := env.Now()

	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, fileutil.DirPerm); err != nil {
			return reportError(env, fmt.Errorf("%w: %s: %v", html2pdf.ErrCreateOutputDir, s.outputDir, err), s.configName)
		}
	}

	tasks, err := html2pdf.DiscoverTasks(s.inputDir, s.outputDir, s.recursive)
	if err != nil {
		return reportError(env, err, s.configName)
	}
	if len(tasks) == 0 {
		fmt.Fprintf(env.Stdout, "No HTML files found in %s\n", s.inputDir)
		return ExitSuccess
	}

	// Options are checked once up front; a bad stylesheet fails here
	// instead of once per file. No browser starts until a render.
	check, err := env.NewConverter(s.options...)
	if err != nil {
		return reportError(env, err, s.configName)
	}
	closeLogged(check)

	if !s.quiet {
		fmt.Fprintf(env.Stdout, "Found %d HTML files to convert\n", len(tasks))
	}

	size := min(html2pdf.ResolvePoolSize(s.workers), len(tasks))
	pool := env.NewPool(size, s.options...)
	defer closeLogged(pool)

	progress := newProgressReporter(env.Stdout, env.Stderr, len(tasks), s.quiet, s.bar)
	report, err := html2pdf.ConvertAll(ctx, pool, html2pdf.BatchOptions{
		InputDir:   s.inputDir,
		OutputDir:  s.outputDir,
		Recursive:  s.recursive,
		OnProgress: progress.report,
	})
	progress.finish()
	if err != nil {
		return reportError(env, err, s.configName)
	}

	for _, res := range report.Failures() {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", res.Source, res.Err)
	}

	if !s.quiet {
		dest := s.outputDir
		if dest == "" {
			dest = s.inputDir
		}
		fmt.Fprintf(env.Stdout, "All conversions complete. PDFs saved to %s\n", filepath.Clean(dest))
		fmt.Fprintf(env.Stdout, "Total time: %.2f seconds\n", env.Now().Sub(start).Seconds())
		fmt.Fprintf(env.Stdout, "%d succeeded, %d failed\n", report.Succeeded, report.Failed)
	}

	if report.Failed > 0 {
		return ExitGeneral
	}
	return ExitSuccess
}

type closer interface{ Close() error }

// closeLogged closes c, logging failures instead of returning them.
func closeLogged(c closer) {
	if err := c.Close(); err != nil {
		html2pdf.Logger().Warn("close failed", "error", err)
	}
}

// exists reports whether path names anything on disk.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
