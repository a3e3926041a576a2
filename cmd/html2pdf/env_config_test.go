package main

// Notes:
// - loadEnvConfig: invalid or non-positive timeout and worker values are
//   ignored, not errors.
// - Tests use t.Setenv() which prevents t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("HTML2PDF_CONFIG", "/etc/html2pdf.yaml")
	t.Setenv("HTML2PDF_POLICY", "light")
	t.Setenv("HTML2PDF_ENGINE", "text")
	t.Setenv("HTML2PDF_TIMEOUT", "90s")
	t.Setenv("HTML2PDF_WORKERS", "3")
	t.Setenv("HTML2PDF_INPUT_DIR", "/in")
	t.Setenv("HTML2PDF_OUTPUT_DIR", "/out")
	t.Setenv("HTML2PDF_PAGE_SIZE", "legal")
	t.Setenv("HTML2PDF_CSS", "extra.css")
	t.Setenv("HTML2PDF_ASSET_PATH", "/assets")
	t.Setenv("HTML2PDF_GUI_ADDR", "0.0.0.0:9000")

	cfg := loadEnvConfig()

	checks := []struct {
		name, got, want string
	}{
		{"ConfigPath", cfg.ConfigPath, "/etc/html2pdf.yaml"},
		{"Policy", cfg.Policy, "light"},
		{"Engine", cfg.Engine, "text"},
		{"InputDir", cfg.InputDir, "/in"},
		{"OutputDir", cfg.OutputDir, "/out"},
		{"PageSize", cfg.PageSize, "legal"},
		{"CSS", cfg.CSS, "extra.css"},
		{"AssetPath", cfg.AssetPath, "/assets"},
		{"GUIAddr", cfg.GUIAddr, "0.0.0.0:9000"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
}

func TestLoadEnvConfig_InvalidValuesIgnored(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		workers string
	}{
		{"garbage", "soon", "many"},
		{"negative", "-1s", "-2"},
		{"zero", "0s", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HTML2PDF_TIMEOUT", tt.timeout)
			t.Setenv("HTML2PDF_WORKERS", tt.workers)

			cfg := loadEnvConfig()
			if cfg.Timeout != 0 || cfg.Workers != 0 {
				t.Errorf("Timeout/Workers = %v/%d, want zero", cfg.Timeout, cfg.Workers)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("HTML2PDF_WOKRERS", "2")
	t.Setenv("HTML2PDF_WORKERS", "2")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)
	out := buf.String()

	if !strings.Contains(out, "HTML2PDF_WOKRERS") {
		t.Errorf("expected warning for typo, got %q", out)
	}
	if strings.Contains(out, "HTML2PDF_WORKERS ") {
		t.Errorf("known variable should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overlay onto file config
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override file", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Conversion: config.ConversionConfig{Policy: "full", Workers: 1}}
		applyEnvConfig(&envConfig{
			Policy: "light", Engine: "text", Timeout: time.Minute, Workers: 4,
			InputDir: "/in", OutputDir: "/out", PageSize: "a4",
			CSS: "x.css", AssetPath: "/a", GUIAddr: ":1",
		}, cfg)

		if cfg.Conversion.Policy != "light" || cfg.Conversion.Engine != "text" {
			t.Errorf("policy/engine = %q/%q", cfg.Conversion.Policy, cfg.Conversion.Engine)
		}
		if cfg.Conversion.Timeout != "1m0s" || cfg.Conversion.Workers != 4 {
			t.Errorf("timeout/workers = %q/%d", cfg.Conversion.Timeout, cfg.Conversion.Workers)
		}
		if cfg.Input.DefaultDir != "/in" || cfg.Output.DefaultDir != "/out" || cfg.Page.Size != "a4" {
			t.Errorf("dirs/page = %q/%q/%q", cfg.Input.DefaultDir, cfg.Output.DefaultDir, cfg.Page.Size)
		}
		if cfg.CSS.File != "x.css" || cfg.Assets.BasePath != "/a" || cfg.GUI.Addr != ":1" {
			t.Errorf("css/assets/gui = %q/%q/%q", cfg.CSS.File, cfg.Assets.BasePath, cfg.GUI.Addr)
		}
	})

	t.Run("unset values keep file", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Conversion: config.ConversionConfig{Policy: "light", Workers: 2}}
		applyEnvConfig(&envConfig{}, cfg)
		if cfg.Conversion.Policy != "light" || cfg.Conversion.Workers != 2 {
			t.Errorf("config changed: %+v", cfg.Conversion)
		}
	})
}
