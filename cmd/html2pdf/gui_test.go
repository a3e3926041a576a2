package main

// Notes:
// - runGUI is started on an ephemeral port and stopped through context
//   cancellation. HTTP handlers are tested in the webui package.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// ---------------------------------------------------------------------------
// TestRunGUI - Server lifecycle
// ---------------------------------------------------------------------------

func TestRunGUI_ServesUntilCanceled(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan int, 1)
	go func() { done <- runGUI(ctx, []string{"--addr", "127.0.0.1:0"}, te.Environment) }()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(te.stdout.String(), "http://127.0.0.1:") {
		if time.Now().After(deadline) {
			t.Fatalf("server did not start; stderr:\n%s", te.stderr)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case code := <-done:
		if code != ExitSuccess {
			t.Errorf("exit code = %d, want 0; stderr:\n%s", code, te.stderr)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("runGUI did not return after cancel")
	}
}

func TestRunGUI_Errors(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { busy.Close() })

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "address in use", args: []string{"--addr", busy.Addr().String()}, wantCode: ExitGeneral},
		{name: "invalid policy", args: []string{"--policy", "x"}, wantCode: ExitUsage},
		{name: "stray argument", args: []string{"extra"}, wantCode: ExitUsage},
		{name: "help", args: []string{"-h"}, wantCode: ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, "")
			if code := runGUI(context.Background(), tt.args, te.Environment); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d; stderr:\n%s", code, tt.wantCode, te.stderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGUIOptions - Constructor wiring
// ---------------------------------------------------------------------------

func TestGUIOptions(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	opts := guiOptions(te.Environment, nil)

	conv, err := opts.NewConverter()
	if err != nil || conv == nil {
		t.Fatalf("NewConverter() = %v, %v", conv, err)
	}
	if pool := opts.NewPool(3); pool.Size() != 3 {
		t.Errorf("pool size = %d, want 3", pool.Size())
	}

	te.convErr = html2pdf.ErrStyleNotFound
	if _, err := opts.NewConverter(); !errors.Is(err, html2pdf.ErrStyleNotFound) {
		t.Errorf("NewConverter() error = %v, want ErrStyleNotFound", err)
	}
}
