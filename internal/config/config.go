// Package config loads the optional YAML configuration file.
//
// Values are layered: CLI flags > HTML2PDF_* environment variables >
// config file > built-in defaults. This package owns the file layer; the
// command overlays the other two.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxInputSize limits the config file size (1MB).
var MaxInputSize = 1 << 20

// Field limits.
const (
	MaxPathLength        = 4096
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxAddrLength        = 255
	MaxWorkers           = 32
)

// Config holds all file-level configuration.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Conversion ConversionConfig `yaml:"conversion"`
	Page       PageConfig       `yaml:"page"`
	CSS        CSSConfig        `yaml:"css"`
	Assets     AssetsConfig     `yaml:"assets"`
	Browser    BrowserConfig    `yaml:"browser"`
	GUI        GUIConfig        `yaml:"gui"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // used by batch mode when --input-dir is absent
	Recursive  bool   `yaml:"recursive"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// ConversionConfig tunes the conversion itself.
type ConversionConfig struct {
	Policy  string `yaml:"policy"`  // "full" (default) or "light"
	Engine  string `yaml:"engine"`  // "chrome" (default) or "text"
	Workers int    `yaml:"workers"` // 0 = auto
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// CSSConfig names an extra user stylesheet appended after the expand styles.
type CSSConfig struct {
	File string `yaml:"file"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// BrowserConfig feeds the binary locator.
type BrowserConfig struct {
	Names      map[string]string `yaml:"names"`      // logical name -> path
	SearchDirs []string          `yaml:"searchDirs"` // probed before platform defaults
	NoSandbox  bool              `yaml:"noSandbox"`
}

// GUIConfig configures the local web interface.
type GUIConfig struct {
	Addr string `yaml:"addr"` // default 127.0.0.1:8340
}

// TimeoutDuration parses Conversion.Timeout. Empty yields zero.
func (c ConversionConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: conversion.timeout %q", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks enumerations, ranges and field lengths.
// Called by LoadConfig; exposed for callers that build a Config by hand.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Conversion.Policy) {
	case "", "full", "light":
	default:
		return fmt.Errorf("%w: conversion.policy %q (must be full or light)", ErrInvalidValue, c.Conversion.Policy)
	}
	switch strings.ToLower(c.Conversion.Engine) {
	case "", "chrome", "text":
	default:
		return fmt.Errorf("%w: conversion.engine %q (must be chrome or text)", ErrInvalidValue, c.Conversion.Engine)
	}
	if c.Conversion.Workers < 0 || c.Conversion.Workers > MaxWorkers {
		return fmt.Errorf("%w: conversion.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Conversion.Workers)
	}
	if _, err := c.Conversion.TimeoutDuration(); err != nil {
		return err
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"css.file", c.CSS.File, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"gui.addr", c.GUI.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for name, path := range c.Browser.Names {
		if err := validateFieldLength("browser.names."+name, path, MaxPathLength); err != nil {
			return err
		}
	}
	for i, dir := range c.Browser.SearchDirs {
		if err := validateFieldLength(fmt.Sprintf("browser.searchDirs[%d]", i), dir, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every value defers to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read directly; anything else is
// searched for in the current directory and then ~/.config/go-html2pdf/.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML strictly (unknown keys are errors) and validates it.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrConfigParse, MaxInputSize)
	}

	var cfg Config
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Encode renders cfg as YAML.
func Encode(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}

// SearchPaths lists where LoadConfig looks for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-html2pdf", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
