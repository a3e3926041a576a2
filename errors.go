package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrSourceNotFound  = errors.New("source file not found")
	ErrInputNotFound   = errors.New("input directory not found")
	ErrDecode          = errors.New("cannot decode HTML source")
	ErrCreateOutputDir = errors.New("cannot create output directory")
	ErrWritePDF        = errors.New("cannot write PDF")
	ErrEmptyHTML       = errors.New("HTML content cannot be empty")

	// Rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Option validation errors.
	ErrInvalidPolicy      = errors.New("invalid expansion policy")
	ErrInvalidEngine      = errors.New("invalid rendering engine")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Stylesheet errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrReadCSS          = errors.New("cannot read stylesheet")
)
