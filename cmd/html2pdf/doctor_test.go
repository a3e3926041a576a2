package main

// Notes:
// - Tests use a black-box approach through runDoctorCmd() output.
// - Chrome detection depends on system state; only the report shape and
//   exit code consistency are asserted.
// - Container detection tests modify environment variables, so they cannot
//   use t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - JSON report structure
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	exitCode := runDoctorCmd([]string{"--json"}, te.Environment)

	var result doctorResult
	if err := json.Unmarshal([]byte(te.stdout.String()), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, te.stdout)
	}

	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", result.Env.OS, result.Env.Arch, runtime.GOOS, runtime.GOARCH)
	}

	valid := map[string]bool{"ready": true, "warnings": true, "errors": true}
	if !valid[result.Status] {
		t.Errorf("invalid status %q", result.Status)
	}
	if result.Status == "errors" && exitCode != ExitGeneral {
		t.Errorf("exit code = %d for errors status, want %d", exitCode, ExitGeneral)
	}
	if result.Status != "errors" && exitCode != ExitSuccess {
		t.Errorf("exit code = %d for %s status, want %d", exitCode, result.Status, ExitSuccess)
	}
	if result.Config == "" {
		t.Error("report should include the effective configuration")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_HumanOutput - Human-readable sections
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	runDoctorCmd(nil, te.Environment)

	out := te.stdout.String()
	for _, section := range []string{"html2pdf doctor", "Chrome/Chromium", "Styles", "Environment", "System", "Status:"} {
		assertContains(t, "doctor output", out, section)
	}
	if !strings.Contains(out, "Platform: "+runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("missing platform line:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Config - Config loading
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Config(t *testing.T) {
	t.Parallel()

	t.Run("loaded config is reported", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "c.yaml")
		writeTestFile(t, path, "conversion:\n  policy: light\n")

		te := newTestEnv(t, "")
		runDoctorCmd([]string{"--json", "--config", path}, te.Environment)

		var result doctorResult
		if err := json.Unmarshal([]byte(te.stdout.String()), &result); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		assertContains(t, "config", result.Config, "policy: light")
	})

	t.Run("missing config is an error", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, "")
		code := runDoctorCmd([]string{"--json", "--config=" + filepath.Join(t.TempDir(), "no.yaml")}, te.Environment)
		if code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}
		assertContains(t, "stdout", te.stdout.String(), "config file not found")
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Assets - Style directory reporting
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Assets(t *testing.T) {
	t.Parallel()

	styles := t.TempDir()
	missing := filepath.Join(t.TempDir(), "nope")

	tests := []struct {
		name       string
		args       []string
		wantCustom bool
		wantPath   string
		wantErr    string
	}{
		{name: "embedded by default", args: []string{"--json"}},
		{name: "custom directory", args: []string{"--json", "--asset-path", styles}, wantCustom: true, wantPath: styles},
		{name: "custom directory with equals", args: []string{"--json", "--asset-path=" + styles}, wantCustom: true, wantPath: styles},
		{name: "missing directory", args: []string{"--json", "--asset-path", missing}, wantErr: "Assets:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, "")
			code := runDoctorCmd(tt.args, te.Environment)

			var result doctorResult
			if err := json.Unmarshal([]byte(te.stdout.String()), &result); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if result.Assets.Custom != tt.wantCustom || result.Assets.Path != tt.wantPath {
				t.Errorf("assets = %+v, want custom=%v path=%q", result.Assets, tt.wantCustom, tt.wantPath)
			}
			if tt.wantErr != "" {
				if code != ExitGeneral {
					t.Errorf("exit code = %d, want %d", code, ExitGeneral)
				}
				assertContains(t, "errors", strings.Join(result.Errors, "\n"), tt.wantErr)
			}
		})
	}
}

func TestRunDoctorCmd_AssetsHuman(t *testing.T) {
	t.Parallel()

	styles := t.TempDir()
	te := newTestEnv(t, "")
	runDoctorCmd([]string{"--asset-path", styles}, te.Environment)

	assertContains(t, "stdout", te.stdout.String(), "Custom directory: "+styles)
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Container - Container detection and sandbox warning
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Container(t *testing.T) {
	t.Setenv("HTML2PDF_CONTAINER", "1")
	t.Setenv("ROD_NO_SANDBOX", "")

	te := newTestEnv(t, "")
	runDoctorCmd([]string{"--json"}, te.Environment)

	var result doctorResult
	if err := json.Unmarshal([]byte(te.stdout.String()), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !result.Env.Container || result.Env.ContainerHint != "HTML2PDF_CONTAINER=1" {
		t.Errorf("container = %v (%q)", result.Env.Container, result.Env.ContainerHint)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "sandbox") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected sandbox warning, got %v", result.Warnings)
	}
}
