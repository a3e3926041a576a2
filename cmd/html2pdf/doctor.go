package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/locator"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Assets   assetsInfo `json:"assets"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Config   string     `json:"config,omitempty"` // effective YAML
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// assetsInfo reports where stylesheets come from.
type assetsInfo struct {
	Custom bool   `json:"custom"`
	Path   string `json:"path,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found      bool     `json:"found"`
	Path       string   `json:"path,omitempty"`
	Version    string   `json:"version,omitempty"`
	Sandbox    bool     `json:"sandbox"`
	Candidates []string `json:"candidates,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	configName := os.Getenv("HTML2PDF_CONFIG")
	assetPath := ""
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--json":
			jsonOutput = true
		case (args[i] == "--config" || args[i] == "-c") && i+1 < len(args):
			i++
			configName = args[i]
		case strings.HasPrefix(args[i], "--config="):
			configName = strings.TrimPrefix(args[i], "--config=")
		case args[i] == "--asset-path" && i+1 < len(args):
			i++
			assetPath = args[i]
		case strings.HasPrefix(args[i], "--asset-path="):
			assetPath = strings.TrimPrefix(args[i], "--asset-path=")
		}
	}

	result := runDoctor(configName, assetPath)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks. A non-empty assetPath
// overrides the configured style directory.
func runDoctor(configName, assetPath string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	cfg := checkConfig(result, configName)
	if assetPath != "" {
		cfg.Assets.BasePath = assetPath
	}
	checkChrome(result, cfg)
	checkAssets(result, cfg)
	checkEnvironment(result, cfg)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads and records the effective configuration.
func checkConfig(result *doctorResult, configName string) *config.Config {
	cfg := config.DefaultConfig()
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		} else {
			cfg = loaded
		}
	}
	applyEnvConfig(loadEnvConfig(), cfg)

	if out, err := config.Encode(cfg); err == nil {
		result.Config = string(out)
	}
	return cfg
}

// checkChrome detects Chrome/Chromium the same way conversions do:
// ROD_BROWSER_BIN, then the platform table, then rod's PATH search.
func checkChrome(result *doctorResult, cfg *config.Config) {
	table := browserLocator(cfg)
	result.Chrome.Candidates = table.Candidates(locator.Chrome)

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = table.Resolve(locator.Chrome)
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; rod will download Chromium on first use (or set ROD_BROWSER_BIN)")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1" && !cfg.Browser.NoSandbox
}

// checkAssets validates the style directory conversions would use.
func checkAssets(result *doctorResult, cfg *config.Config) {
	r, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", err))
		return
	}
	if r.HasCustomLoader() {
		result.Assets.Custom = true
		result.Assets.Path = cfg.Assets.BasePath
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, cfg *config.Config) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" && !cfg.Browser.NoSandbox {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but sandbox still enabled. Set ROD_NO_SANDBOX=1 or browser.noSandbox: true")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint names the detected signal.
func isContainer() (bool, string) {
	if os.Getenv("HTML2PDF_CONTAINER") == "1" {
		return true, "HTML2PDF_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "html2pdf-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// reportLine is one tagged line of the human-readable report.
type reportLine struct {
	tag  string // OK, WARN, ERROR, or "" for an indented detail
	text string
}

// printSection writes a titled block followed by a blank line.
func printSection(w io.Writer, title string, lines []reportLine) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, l := range lines {
		if l.tag == "" {
			fmt.Fprintf(w, "         %s\n", l.text)
			continue
		}
		fmt.Fprintf(w, "  [%s] %s\n", l.tag, l.text)
	}
	fmt.Fprintln(w)
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "html2pdf doctor")
	fmt.Fprintln(w)

	var chrome []reportLine
	if r.Chrome.Found {
		chrome = append(chrome, reportLine{"OK", "Found at " + r.Chrome.Path})
		if r.Chrome.Version != "" {
			chrome = append(chrome, reportLine{"OK", "Version: " + r.Chrome.Version})
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled"
		}
		chrome = append(chrome, reportLine{"OK", "Sandbox: " + sandbox})
	} else {
		chrome = append(chrome, reportLine{"WARN", "Not found"})
		for _, c := range r.Chrome.Candidates {
			chrome = append(chrome, reportLine{"", "searched " + c})
		}
	}
	printSection(w, "Chrome/Chromium", chrome)

	if r.Assets.Custom {
		printSection(w, "Styles", []reportLine{{"OK", "Custom directory: " + r.Assets.Path}})
	} else {
		printSection(w, "Styles", []reportLine{{"OK", "Embedded"}})
	}

	env := []reportLine{{"OK", fmt.Sprintf("Platform: %s/%s", r.Env.OS, r.Env.Arch)}}
	if r.Env.Container {
		env = append(env, reportLine{"OK", fmt.Sprintf("Container: detected (%s)", r.Env.ContainerHint)})
	}
	if r.Env.CI {
		env = append(env, reportLine{"OK", "CI: detected"})
	}
	printSection(w, "Environment", env)

	if r.System.TempWritable {
		printSection(w, "System", []reportLine{{"OK", "Temp directory: writable"}})
	} else {
		printSection(w, "System", []reportLine{{"ERROR", "Temp directory: not writable"}})
	}

	if r.Config != "" {
		var cfg []reportLine
		for _, line := range strings.Split(strings.TrimRight(r.Config, "\n"), "\n") {
			cfg = append(cfg, reportLine{"", line})
		}
		printSection(w, "Effective configuration", cfg)
	}

	var warnings, errs []reportLine
	for _, msg := range r.Warnings {
		warnings = append(warnings, reportLine{"WARN", msg})
	}
	for _, msg := range r.Errors {
		errs = append(errs, reportLine{"ERROR", msg})
	}
	printSection(w, "Warnings:", warnings)
	printSection(w, "Errors:", errs)

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
