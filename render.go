package html2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/locator"
	"github.com/alnah/go-html2pdf/internal/pipeline"
	"github.com/alnah/go-html2pdf/internal/process"
	"github.com/alnah/go-html2pdf/internal/textpdf"
)

// pdfRenderer abstracts the rendering engine so tests can run without a browser.
type pdfRenderer interface {
	Render(ctx context.Context, job *renderJob) ([]byte, error)
	Close() error
}

var (
	_ pdfRenderer = (*rodRenderer)(nil)
	_ pdfRenderer = (*textRenderer)(nil)
)

// renderJob describes one document to print.
type renderJob struct {
	// Content is the pre-processed document.
	Content string

	// SourcePath, when set, is an absolute path to a file whose bytes are
	// equivalent to Content and can be loaded directly.
	SourcePath string

	// BaseURL is where relative URLs in Content resolve from when Content
	// has to be written to a temporary file.
	BaseURL string

	Styles []string
	Page   *PageSettings
}

// rodRenderer prints pages with headless Chrome. The browser is launched
// lazily on first use and owned by this renderer until Close.
type rodRenderer struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	timeout   time.Duration
	bin       string
	resolver  BinaryResolver
	noSandbox bool
}

func newRodRenderer(cfg converterConfig) *rodRenderer {
	return &rodRenderer{
		timeout:   cfg.timeout,
		bin:       cfg.browserBin,
		resolver:  cfg.resolver,
		noSandbox: cfg.noSandbox,
	}
}

// browserBinary picks the executable: explicit bin, then ROD_BROWSER_BIN,
// then the resolver. Empty lets rod download its managed Chromium.
func (r *rodRenderer) browserBinary() string {
	if r.bin != "" {
		return r.bin
	}
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin
	}
	if r.resolver != nil {
		if p, ok := r.resolver.Resolve(locator.Chrome); ok {
			return p
		}
	}
	return ""
}

func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	bin := r.browserBinary()
	if bin != "" {
		l = l.Bin(bin)
	}

	if r.noSandbox || os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	Logger().Debug("launching browser", "bin", bin)
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close shuts the browser down and kills any helper processes it left.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.Terminate(r.launcher.PID())
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// Render loads the document in a fresh tab, applies the stylesheets and
// prints it.
func (r *rodRenderer) Render(ctx context.Context, job *renderJob) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := job.SourcePath
	if path == "" {
		// The BOM pins the charset; a stale <meta charset> in the content
		// must not win over the UTF-8 we write.
		doc := "\uFEFF" + pipeline.InjectBaseHref(job.Content, job.BaseURL)
		tmp, cleanup, err := fileutil.WriteTempFile(doc, "html")
		if err != nil {
			return nil, err
		}
		defer cleanup()
		Logger().Debug("rendering from temp file", "path", tmp)
		path = tmp
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileutil.FileURL(path)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()
	page = page.Context(ctx)

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	for _, css := range job.Styles {
		if strings.TrimSpace(css) == "" {
			continue
		}
		if err := page.AddStyleTag("", css); err != nil {
			return nil, fmt.Errorf("%w: adding stylesheet: %v", ErrPDFGeneration, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(job.Page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions converts page settings to Chrome print options.
func buildPDFOptions(page *PageSettings) *proto.PagePrintToPDF {
	if page == nil {
		page = DefaultPageSettings()
	}
	width, height := page.dimensions()

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// textRenderer prints documents with the browserless text engine.
type textRenderer struct{}

func (textRenderer) Render(ctx context.Context, job *renderJob) ([]byte, error) {
	page := job.Page
	if page == nil {
		page = DefaultPageSettings()
	}

	size := "A4"
	switch strings.ToLower(page.Size) {
	case PageSizeLetter:
		size = "Letter"
	case PageSizeLegal:
		size = "Legal"
	}

	r := textpdf.New(textpdf.Options{
		PageSize:  size,
		Landscape: strings.EqualFold(page.Orientation, OrientationLandscape),
		MarginMM:  page.Margin * 25.4,
		Creator:   "go-html2pdf",
	})

	out, err := r.Render(ctx, job.Content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return out, nil
}

func (textRenderer) Close() error { return nil }
