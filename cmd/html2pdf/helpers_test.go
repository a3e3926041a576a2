package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake converter, pool and environment
// ---------------------------------------------------------------------------

// syncBuffer is a goroutine-safe bytes.Buffer. The library logger is
// process-global, so parallel tests may write into each other's stderr.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeConverter writes a stub PDF, or fails for sources containing failFor.
type fakeConverter struct {
	mu      sync.Mutex
	calls   []string
	closed  int
	failFor string
	err     error
}

func (f *fakeConverter) ConvertFile(_ context.Context, src, dst string) html2pdf.Result {
	f.mu.Lock()
	f.calls = append(f.calls, src)
	f.mu.Unlock()

	if dst == "" {
		dst = fileutil.PDFPath(src)
	}
	res := html2pdf.Result{Source: src, Destination: dst, Duration: 1500 * time.Millisecond}
	if f.failFor != "" && strings.Contains(src, f.failFor) {
		res.Err = fmt.Errorf("%w: boom", f.err)
		res.Failure = html2pdf.FailureRender
		return res
	}
	if err := fileutil.EnsureParentDir(dst); err != nil {
		res.Err, res.Failure = err, html2pdf.FailureDirectory
		return res
	}
	if err := os.WriteFile(dst, []byte("%PDF-1.4 fake"), fileutil.FilePerm); err != nil {
		res.Err, res.Failure = err, html2pdf.FailureWrite
	}
	return res
}

func (f *fakeConverter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeConverter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakePool hands out one shared fakeConverter.
type fakePool struct {
	conv   *fakeConverter
	size   int
	closed bool
}

func (p *fakePool) Acquire() (html2pdf.FileConverter, error) { return p.conv, nil }
func (p *fakePool) Release(html2pdf.FileConverter)          {}
func (p *fakePool) Size() int                               { return p.size }
func (p *fakePool) Close() error                            { p.closed = true; return nil }

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout  *syncBuffer
	stderr  *syncBuffer
	conv    *fakeConverter
	convErr error

	mu    sync.Mutex
	pools []*fakePool
}

// newTestEnv returns an environment whose clock advances one second per
// call and whose converters are fakes.
func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &syncBuffer{},
		stderr: &syncBuffer{},
		conv:   &fakeConverter{err: html2pdf.ErrPDFGeneration},
	}
	var clockMu sync.Mutex
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	te.Environment = &Environment{
		Now: func() time.Time {
			clockMu.Lock()
			defer clockMu.Unlock()
			now = now.Add(time.Second)
			return now
		},
		Stdout: te.stdout,
		Stderr: te.stderr,
		Stdin:  strings.NewReader(stdin),
		NewConverter: func(...html2pdf.Option) (Converter, error) {
			if te.convErr != nil {
				return nil, te.convErr
			}
			return te.conv, nil
		},
		NewPool: func(size int, _ ...html2pdf.Option) Pool {
			te.mu.Lock()
			defer te.mu.Unlock()
			p := &fakePool{conv: te.conv, size: size}
			te.pools = append(te.pools, p)
			return p
		},
	}
	return te
}

func (te *testEnv) lastPool(t *testing.T) *fakePool {
	t.Helper()
	te.mu.Lock()
	defer te.mu.Unlock()
	if len(te.pools) == 0 {
		t.Fatal("no pool was created")
	}
	return te.pools[len(te.pools)-1]
}

// setupTestDir creates files under a temp directory and returns it.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("creating dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return dir
}

func assertContains(t *testing.T, label, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("%s should contain %q, got:\n%s", label, want, got)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
