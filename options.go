package html2pdf

import "time"

// Option configures a Converter.
type Option func(*Converter)

// BinaryResolver maps a logical binary name ("chrome") to an executable path.
type BinaryResolver interface {
	Resolve(name string) (path string, ok bool)
}

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	policy     Policy
	engine     Engine
	page       *PageSettings
	css        string // style name, file path, or CSS content
	assetPath  string
	browserBin string
	resolver   BinaryResolver
	noSandbox  bool
}

// defaultTimeout bounds each page load and print.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithPolicy selects the expansion policy (default PolicyFull).
func WithPolicy(p Policy) Option {
	return func(c *Converter) {
		c.cfg.policy = p
	}
}

// WithEngine selects the rendering engine (default EngineChrome).
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithPage sets default page settings for every conversion.
func WithPage(p *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithCSS adds a user stylesheet applied after the expand stylesheet.
// The value may be a file path (contains a path separator), raw CSS
// (contains "{"), or the name of a style in the asset directory.
func WithCSS(cssOrPath string) Option {
	return func(c *Converter) {
		c.cfg.css = cssOrPath
	}
}

// WithAssetPath sets a directory whose styles/ override the built-in
// stylesheets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithBrowserBin pins the browser executable, bypassing the resolver.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithBrowserResolver sets how the browser executable is located when no
// explicit binary is configured. When nothing resolves, rod downloads its
// managed Chromium.
func WithBrowserResolver(r BinaryResolver) Option {
	return func(c *Converter) {
		c.cfg.resolver = r
	}
}

// WithNoSandbox disables the Chrome sandbox (required in most containers).
func WithNoSandbox(v bool) Option {
	return func(c *Converter) {
		c.cfg.noSandbox = v
	}
}

// withRenderer injects a renderer (tests).
func withRenderer(r pdfRenderer) Option {
	return func(c *Converter) {
		c.renderer = r
	}
}
