package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Converter turns HTML files into PDFs. Create with NewConverter and Close
// when done. A Converter is not safe for concurrent use; use a
// ConverterPool to convert in parallel.
type Converter struct {
	cfg      converterConfig
	styles   []string // expand stylesheet, then the optional user stylesheet
	renderer pdfRenderer
}

// NewConverter creates a Converter. Option values are validated here, and
// stylesheets are resolved once so each conversion only renders.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			policy:  PolicyFull,
			engine:  EngineChrome,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.cfg.policy, err = ParsePolicy(string(c.cfg.policy)); err != nil {
		return nil, err
	}
	if c.cfg.engine, err = ParseEngine(string(c.cfg.engine)); err != nil {
		return nil, err
	}
	if err := c.cfg.page.Validate(); err != nil {
		return nil, err
	}

	if err := c.resolveStyles(); err != nil {
		return nil, err
	}

	if c.renderer == nil {
		switch c.cfg.engine {
		case EngineText:
			c.renderer = textRenderer{}
		default:
			c.renderer = newRodRenderer(c.cfg)
		}
	}

	return c, nil
}

// resolveStyles loads the expand stylesheet for the policy and the user
// stylesheet, if any.
func (c *Converter) resolveStyles() error {
	resolver, err := assets.NewResolver(c.cfg.assetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	name := assets.StyleExpand
	if c.cfg.policy == PolicyLight {
		name = assets.StyleExpandLight
	}
	expand, err := resolver.LoadStyle(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	}
	c.styles = []string{expand}

	user := c.cfg.css
	switch {
	case user == "":
		return nil
	case fileutil.IsFilePath(user):
		content, err := os.ReadFile(user) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrReadCSS, user, err)
		}
		user = string(content)
	case !strings.Contains(user, "{"):
		content, err := resolver.LoadStyle(user)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		user = content
	}
	Logger().Debug("user stylesheet resolved", "bytes", len(user))
	c.styles = append(c.styles, user)
	return nil
}

// ConvertFile converts source to destination and always returns a Result.
// An empty destination writes next to the source with a .pdf extension.
// Missing destination directories are created.
func (c *Converter) ConvertFile(ctx context.Context, source, destination string) (res Result) {
	start := time.Now()
	if destination == "" {
		destination = fileutil.PDFPath(source)
	}
	res = Result{Source: source, Destination: destination}

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("internal error: %v", r)
		}
		res.Duration = time.Since(start)
		res.Failure = classify(res.Err)
		logResult(res)
	}()

	res.Err = c.convertFile(ctx, source, destination)
	return res
}

func (c *Converter) convertFile(ctx context.Context, source, destination string) error {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}

	info, err := os.Stat(absSource)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		return fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, source)
	}

	raw, err := os.ReadFile(absSource) // #nosec G304 -- caller-provided path
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrDecode, source, err)
	}

	text, native, err := decodeHTML(raw)
	if err != nil {
		return err
	}

	out, changed := Preprocess(text, c.cfg.policy)

	job := &renderJob{
		Content: out,
		BaseURL: fileutil.FileURL(filepath.Dir(absSource)) + "/",
		Styles:  c.styles,
		Page:    c.cfg.page,
	}
	if !changed && native {
		job.SourcePath = absSource
	}

	pdf, err := c.renderer.Render(ctx, job)
	if err != nil {
		return err
	}

	if err := fileutil.EnsureParentDir(destination); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}
	if err := os.WriteFile(destination, pdf, fileutil.FilePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

func logResult(res Result) {
	if res.OK() {
		Logger().Info("converted",
			"source", res.Source,
			"destination", res.Destination,
			"seconds", res.Duration.Seconds())
		return
	}
	Logger().Error("conversion failed",
		"source", res.Source,
		"failure", res.Failure.String(),
		"error", res.Err)
}

// Convert pre-processes and renders in-memory HTML.
// Recovers from internal panics so they never reach the caller.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.HTML) == "" {
		return nil, ErrEmptyHTML
	}
	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	out, changed := Preprocess(input.HTML, c.cfg.policy)

	page := input.Page
	if page == nil {
		page = c.cfg.page
	}

	styles := c.styles
	if input.CSS != "" {
		styles = append(append([]string(nil), c.styles...), input.CSS)
	}

	job := &renderJob{Content: out, Styles: styles, Page: page}
	if input.BaseDir != "" {
		if abs, err := filepath.Abs(input.BaseDir); err == nil {
			job.BaseURL = fileutil.FileURL(abs) + "/"
		}
	}

	pdf, err := c.renderer.Render(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	return &ConvertResult{HTML: []byte(out), PDF: pdf, Changed: changed}, nil
}

// Close releases the rendering engine (headless Chrome, if started).
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
