package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/locator"
)

// ErrUnexpectedArgs is returned when more than one positional argument is given.
var ErrUnexpectedArgs = errors.New("unexpected arguments")

// settings is the fully resolved run configuration.
type settings struct {
	configName string

	file   string
	output string

	inputDir  string
	outputDir string
	recursive bool
	workers   int

	quiet   bool
	verbose bool
	bar     bool

	guiAddr string

	options []html2pdf.Option
}

// loadSettings layers defaults, the config file, HTML2PDF_* variables and
// flags, then resolves the input mode. A lone positional argument is a
// file, or an input directory when it names one.
func loadSettings(f *convertFlags, positional []string, env *Environment) (*settings, error) {
	envCfg := loadEnvConfig()
	if !f.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	s := &settings{
		configName: f.common.config,
		quiet:      f.common.quiet,
		verbose:    f.common.verbose,
		bar:        f.bar,
	}
	if s.configName == "" {
		s.configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if s.configName != "" {
		loaded, err := config.LoadConfig(s.configName)
		if err != nil {
			return s, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(f, cfg); err != nil {
		return s, err
	}

	opts, err := conversionOptions(cfg)
	if err != nil {
		return s, err
	}
	s.options = opts

	s.file, s.output = f.file, f.output
	s.inputDir, s.outputDir = f.inputDir, f.outputDir

	if len(positional) > 1 {
		return s, fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(positional[1:], " "))
	}
	if len(positional) == 1 && s.file == "" && s.inputDir == "" {
		if fileutil.DirExists(positional[0]) {
			s.inputDir = positional[0]
		} else {
			s.file = positional[0]
		}
	}

	if s.file == "" && s.inputDir == "" {
		s.inputDir = cfg.Input.DefaultDir
	}
	if s.outputDir == "" {
		s.outputDir = cfg.Output.DefaultDir
	}
	if s.file != "" && s.output == "" && cfg.Output.DefaultDir != "" {
		s.output = filepath.Join(cfg.Output.DefaultDir, filepath.Base(fileutil.PDFPath(s.file)))
	}
	s.recursive = cfg.Input.Recursive
	s.guiAddr = cfg.GUI.Addr
	s.workers = cfg.Conversion.Workers

	return s, nil
}

// mergeFlags overlays explicitly set flags onto cfg.
func mergeFlags(f *convertFlags, cfg *config.Config) error {
	if f.policy != "" {
		cfg.Conversion.Policy = f.policy
	}
	if f.engine != "" {
		cfg.Conversion.Engine = f.engine
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q (use a positive duration like 30s or 2m)", ErrInvalidTimeout, f.timeout)
		}
		cfg.Conversion.Timeout = d.String()
	}
	if f.workers > 0 {
		cfg.Conversion.Workers = f.workers
	}
	if f.recursive {
		cfg.Input.Recursive = true
	}
	if f.css != "" {
		cfg.CSS.File = f.css
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Page.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.Page.Margin = f.page.margin
	}
	return nil
}

// conversionOptions turns the merged config into converter options.
// Enumerations and page settings are validated here so mistakes surface
// before any browser starts.
func conversionOptions(cfg *config.Config) ([]html2pdf.Option, error) {
	policy, err := html2pdf.ParsePolicy(cfg.Conversion.Policy)
	if err != nil {
		return nil, err
	}
	engine, err := html2pdf.ParseEngine(cfg.Conversion.Engine)
	if err != nil {
		return nil, err
	}

	opts := []html2pdf.Option{
		html2pdf.WithPolicy(policy),
		html2pdf.WithEngine(engine),
		html2pdf.WithBrowserResolver(browserLocator(cfg)),
		html2pdf.WithNoSandbox(cfg.Browser.NoSandbox),
	}

	timeout, err := cfg.Conversion.TimeoutDuration()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	if timeout > 0 {
		opts = append(opts, html2pdf.WithTimeout(timeout))
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}
	if page != nil {
		opts = append(opts, html2pdf.WithPage(page))
	}

	if cfg.CSS.File != "" {
		opts = append(opts, html2pdf.WithCSS(cfg.CSS.File))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, html2pdf.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}

// buildPageSettings returns nil when nothing is configured, so the library
// default applies. Partial settings are completed from the defaults.
func buildPageSettings(cfg *config.Config) (*html2pdf.PageSettings, error) {
	if cfg.Page.Size == "" && cfg.Page.Orientation == "" && cfg.Page.Margin == 0 {
		return nil, nil
	}

	page := html2pdf.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// browserLocator builds the binary lookup table once: platform defaults,
// then config entries ahead of them, then rod's own PATH search.
func browserLocator(cfg *config.Config) locator.Table {
	return locator.ForPlatform(runtime.GOOS, runtime.GOARCH).
		Merge(cfg.Browser.Names, cfg.Browser.SearchDirs).
		WithFallback(locator.ResolverFunc(func(name string) (string, bool) {
			if name != locator.Chrome {
				return "", false
			}
			return launcher.LookPath()
		}))
}

// setupLogging routes library logs to w: warnings by default, errors only
// with quiet, everything with verbose.
func setupLogging(w io.Writer, quiet, verbose bool) {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	html2pdf.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
