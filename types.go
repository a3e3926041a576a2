package html2pdf

import (
	"fmt"
	"strings"
)

// Policy selects how aggressively hidden content is revealed.
type Policy string

// Expansion policies.
const (
	// PolicyFull rewrites inline display:none styles, injects an expand
	// style block and checks every checkbox.
	PolicyFull Policy = "full"

	// PolicyLight only injects a .content rule, and only when the document
	// appears to hide .content sections.
	PolicyLight Policy = "light"
)

// ParsePolicy converts a case-insensitive name to a Policy. Empty means full.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyFull:
		return PolicyFull, nil
	case PolicyLight:
		return PolicyLight, nil
	}
	return "", fmt.Errorf("%w: %q (must be full or light)", ErrInvalidPolicy, s)
}

// Engine selects the PDF rendering backend.
type Engine string

// Rendering engines.
const (
	// EngineChrome renders with headless Chrome. CSS, scripts and
	// presentational attributes are honoured.
	EngineChrome Engine = "chrome"

	// EngineText lays out extracted text without a browser. CSS is ignored.
	EngineText Engine = "text"
)

// ParseEngine converts a case-insensitive name to an Engine. Empty means chrome.
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case "", EngineChrome:
		return EngineChrome, nil
	case EngineText:
		return EngineText, nil
	}
	return "", fmt.Errorf("%w: %q (must be chrome or text)", ErrInvalidEngine, s)
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 portrait with DefaultMargin.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// dimensions returns the paper width and height in inches.
func (p *PageSettings) dimensions() (width, height float64) {
	switch strings.ToLower(p.Size) {
	case PageSizeLetter:
		width, height = 8.5, 11
	case PageSizeLegal:
		width, height = 8.5, 14
	default:
		width, height = 8.27, 11.69
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// Input is an in-memory conversion request.
type Input struct {
	HTML    string        // HTML content (required)
	BaseDir string        // directory relative URLs resolve against (optional)
	CSS     string        // extra CSS appended after the expand stylesheet (optional)
	Page    *PageSettings // nil = converter default
}

// ConvertResult holds the output of Convert.
type ConvertResult struct {
	HTML    []byte // document after pre-processing
	PDF     []byte
	Changed bool // whether pre-processing altered the document
}
