package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// errInputClosed is returned when stdin ends before a prompt is answered.
var errInputClosed = errors.New("input closed")

// prompter reads answers line by line from stdin.
type prompter struct {
	env     *Environment
	scanner *bufio.Scanner
}

// ask prints prompt and returns the trimmed answer.
func (p *prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.env.Stdout, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// askValid repeats prompt until valid accepts the answer.
func (p *prompter) askValid(prompt string, valid func(string) bool, retry string) (string, error) {
	for {
		answer, err := p.ask(prompt)
		if err != nil {
			return "", err
		}
		if valid(answer) {
			return answer, nil
		}
		fmt.Fprintln(p.env.Stdout, retry)
	}
}

// runInteractive walks the user through a single-file or directory
// conversion. Settings not asked for come from the config file and
// HTML2PDF_* variables.
func runInteractive(ctx context.Context, env *Environment) int {
	s, err := loadSettings(&convertFlags{}, nil, env)
	if err != nil {
		return reportError(env, err, s.configName)
	}
	setupLogging(env.Stderr, false, false)

	p := &prompter{env: env, scanner: bufio.NewScanner(env.Stdin)}

	fmt.Fprintln(env.Stdout, "HTML to PDF Converter")
	fmt.Fprintln(env.Stdout, "=====================")

	mode, err := p.askValid(
		"Would you like to convert a single file (1) or a directory of files (2)? ",
		func(s string) bool { return s == "1" || s == "2" },
		"Please enter 1 for single file or 2 for directory.",
	)
	if err != nil {
		return interactiveAbort(env, err)
	}

	if mode == "1" {
		return interactiveSingle(ctx, p, s)
	}
	return interactiveBatch(ctx, p, s)
}

func interactiveSingle(ctx context.Context, p *prompter, s *settings) int {
	file, err := p.askValid(
		"Enter the path to the HTML file: ",
		fileutil.FileExists,
		"File not found. Please enter a valid file path.",
	)
	if err != nil {
		return interactiveAbort(p.env, err)
	}

	def := fileutil.PDFPath(file)
	output, err := p.ask(fmt.Sprintf("Enter the output PDF path (press Enter for default: %s): ", def))
	if err != nil {
		return interactiveAbort(p.env, err)
	}
	if output == "" {
		output = def
	}

	s.file, s.output, s.inputDir = file, output, ""
	return runSingle(ctx, s, p.env)
}

func interactiveBatch(ctx context.Context, p *prompter, s *settings) int {
	inputDir, err := p.askValid(
		"Enter the input directory containing HTML files: ",
		fileutil.DirExists,
		"Directory not found. Please enter a valid directory path.",
	)
	if err != nil {
		return interactiveAbort(p.env, err)
	}

	outputDir, err := p.ask(fmt.Sprintf("Enter the output directory for PDFs (press Enter for default: %s): ", inputDir))
	if err != nil {
		return interactiveAbort(p.env, err)
	}
	if outputDir == "" {
		outputDir = inputDir
	}
	if err := os.MkdirAll(outputDir, fileutil.DirPerm); err != nil {
		fmt.Fprintf(p.env.Stdout, "Error creating directory: %v\n", err)
		fmt.Fprintln(p.env.Stdout, "Failed to create output directory. Exiting.")
		return ExitIO
	}

	workers, err := p.ask("Enter the number of parallel workers (press Enter for default): ")
	if err != nil {
		return interactiveAbort(p.env, err)
	}
	s.workers = parseWorkersAnswer(p.env, workers, s.workers)

	s.file, s.inputDir, s.outputDir = "", inputDir, outputDir
	return runBatch(ctx, s, p.env)
}

// parseWorkersAnswer returns the typed worker count, or def with a warning
// when the answer is not a positive integer.
func parseWorkersAnswer(env *Environment, answer string, def int) int {
	if answer == "" {
		return def
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintln(env.Stdout, "Invalid number. Using default.")
		return def
	}
	if n <= 0 {
		fmt.Fprintln(env.Stdout, "Number of workers must be positive. Using default.")
		return def
	}
	return n
}

func interactiveAbort(env *Environment, err error) int {
	fmt.Fprintln(env.Stdout)
	fmt.Fprintf(env.Stderr, "Error: %v\n", err)
	return ExitUsage
}
