package main

import (
	"context"
	"errors"
	"os"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// Exit codes for the html2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, or some batch files failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File or directory not found, unreadable, unwritable
	ExitBrowser = 4 // Browser or rendering errors
)

// exitCodeFor returns the exit code for an error. Callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, html2pdf.ErrBrowserConnect) ||
		errors.Is(err, html2pdf.ErrPageCreate) ||
		errors.Is(err, html2pdf.ErrPageLoad) ||
		errors.Is(err, html2pdf.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, html2pdf.ErrSourceNotFound) ||
		errors.Is(err, html2pdf.ErrInputNotFound) ||
		errors.Is(err, html2pdf.ErrDecode) ||
		errors.Is(err, html2pdf.ErrCreateOutputDir) ||
		errors.Is(err, html2pdf.ErrWritePDF) ||
		errors.Is(err, html2pdf.ErrReadCSS) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2pdf.ErrInvalidPolicy) ||
		errors.Is(err, html2pdf.ErrInvalidEngine) ||
		errors.Is(err, html2pdf.ErrInvalidPageSize) ||
		errors.Is(err, html2pdf.ErrInvalidOrientation) ||
		errors.Is(err, html2pdf.ErrInvalidMargin) ||
		errors.Is(err, html2pdf.ErrStyleNotFound) ||
		errors.Is(err, html2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
