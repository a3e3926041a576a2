package main

// Notes:
// - exitCodeFor: we test sentinel errors from the html2pdf and config
//   packages, plus wrapped errors to verify the errors.Is() chain.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", html2pdf.ErrBrowserConnect, ExitBrowser},
		{"page create", html2pdf.ErrPageCreate, ExitBrowser},
		{"page load", html2pdf.ErrPageLoad, ExitBrowser},
		{"pdf generation", html2pdf.ErrPDFGeneration, ExitBrowser},
		{"deadline", context.DeadlineExceeded, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", html2pdf.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"source not found", html2pdf.ErrSourceNotFound, ExitIO},
		{"input not found", html2pdf.ErrInputNotFound, ExitIO},
		{"decode", html2pdf.ErrDecode, ExitIO},
		{"create output dir", html2pdf.ErrCreateOutputDir, ExitIO},
		{"write pdf", html2pdf.ErrWritePDF, ExitIO},
		{"read css", html2pdf.ErrReadCSS, ExitIO},
		{"wrapped not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"invalid policy", html2pdf.ErrInvalidPolicy, ExitUsage},
		{"invalid engine", html2pdf.ErrInvalidEngine, ExitUsage},
		{"invalid page size", html2pdf.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", html2pdf.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", html2pdf.ErrInvalidMargin, ExitUsage},
		{"style not found", html2pdf.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", html2pdf.ErrInvalidAssetPath, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"timeout", ErrInvalidTimeout, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"unexpected args", ErrUnexpectedArgs, ExitUsage},

		// General (exit 1)
		{"unknown error", errors.New("something else"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0/1/2 must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d must be below 126", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"timeout", context.DeadlineExceeded, true},
		{"render", html2pdf.ErrPDFGeneration, true},
		{"output dir", html2pdf.ErrCreateOutputDir, true},
		{"input", html2pdf.ErrInputNotFound, true},
		{"decode", html2pdf.ErrDecode, true},
		{"style", html2pdf.ErrStyleNotFound, true},
		{"config", config.ErrConfigNotFound, true},
		{"other", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(fmt.Errorf("wrapped: %w", tt.err), "html2pdf")
			if tt.wantHint && got == "" {
				t.Errorf("hintFor(%v) is empty", tt.err)
			}
			if !tt.wantHint && got != "" {
				t.Errorf("hintFor(%v) = %q, want empty", tt.err, got)
			}
		})
	}
}
