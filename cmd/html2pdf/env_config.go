package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/config"
)

// envConfig holds configuration from HTML2PDF_* environment variables.
type envConfig struct {
	ConfigPath string        // HTML2PDF_CONFIG
	Policy     string        // HTML2PDF_POLICY
	Engine     string        // HTML2PDF_ENGINE
	Timeout    time.Duration // HTML2PDF_TIMEOUT
	Workers    int           // HTML2PDF_WORKERS

	InputDir  string // HTML2PDF_INPUT_DIR
	OutputDir string // HTML2PDF_OUTPUT_DIR
	PageSize  string // HTML2PDF_PAGE_SIZE
	CSS       string // HTML2PDF_CSS
	AssetPath string // HTML2PDF_ASSET_PATH
	GUIAddr   string // HTML2PDF_GUI_ADDR
}

// knownEnvVars lists valid HTML2PDF_* variables, used to flag typos.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":     true,
	"HTML2PDF_POLICY":     true,
	"HTML2PDF_ENGINE":     true,
	"HTML2PDF_TIMEOUT":    true,
	"HTML2PDF_WORKERS":    true,
	"HTML2PDF_INPUT_DIR":  true,
	"HTML2PDF_OUTPUT_DIR": true,
	"HTML2PDF_PAGE_SIZE":  true,
	"HTML2PDF_CSS":        true,
	"HTML2PDF_ASSET_PATH": true,
	"HTML2PDF_GUI_ADDR":   true,
	"HTML2PDF_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads HTML2PDF_* variables. Unparseable durations and
// non-positive worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("HTML2PDF_CONFIG"),
		Policy:     os.Getenv("HTML2PDF_POLICY"),
		Engine:     os.Getenv("HTML2PDF_ENGINE"),
		InputDir:   os.Getenv("HTML2PDF_INPUT_DIR"),
		OutputDir:  os.Getenv("HTML2PDF_OUTPUT_DIR"),
		PageSize:   os.Getenv("HTML2PDF_PAGE_SIZE"),
		CSS:        os.Getenv("HTML2PDF_CSS"),
		AssetPath:  os.Getenv("HTML2PDF_ASSET_PATH"),
		GUIAddr:    os.Getenv("HTML2PDF_GUI_ADDR"),
	}

	if timeout := os.Getenv("HTML2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("HTML2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized HTML2PDF_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTML2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment values onto the file config.
// Flags are applied afterwards, so the order is flags > env > file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Policy != "" {
		cfg.Conversion.Policy = env.Policy
	}
	if env.Engine != "" {
		cfg.Conversion.Engine = env.Engine
	}
	if env.Timeout > 0 {
		cfg.Conversion.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Conversion.Workers = env.Workers
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.CSS != "" {
		cfg.CSS.File = env.CSS
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.GUIAddr != "" {
		cfg.GUI.Addr = env.GUIAddr
	}
}
