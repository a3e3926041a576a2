// Package textpdf renders HTML to PDF without a browser.
//
// The document is parsed with golang.org/x/net/html and flattened into
// text blocks (headings, paragraphs, list items, preformatted text), which
// are laid out with fpdf using the built-in core fonts. Stylesheets and
// scripts are ignored, so content hidden with CSS is always printed.
package textpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrRender indicates fpdf failed to lay out or serialize the document.
var ErrRender = errors.New("text engine rendering failed")

// Options controls page geometry. Zero values select A4 portrait with
// 15mm margins.
type Options struct {
	PageSize   string // A3, A4, A5, Letter, Legal, Tabloid
	Landscape  bool
	MarginMM   float64
	FontSizePt float64
	Creator    string
}

const (
	defaultPageSize = "A4"
	defaultMarginMM = 15
	defaultFontSize = 11
)

// headingScale maps h1..h6 to a multiple of the body font size.
var headingScale = [...]float64{2.0, 1.6, 1.35, 1.2, 1.1, 1.0}

// Renderer converts HTML documents to PDF bytes.
type Renderer struct {
	opts Options
}

// New creates a Renderer, filling defaults for zero option values.
func New(opts Options) *Renderer {
	if opts.PageSize == "" {
		opts.PageSize = defaultPageSize
	}
	if opts.MarginMM <= 0 {
		opts.MarginMM = defaultMarginMM
	}
	if opts.FontSizePt <= 0 {
		opts.FontSizePt = defaultFontSize
	}
	return &Renderer{opts: opts}
}

// Render lays out doc and returns the PDF bytes.
func (r *Renderer) Render(ctx context.Context, doc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %v", ErrRender, err)
	}

	blocks, title := Extract(root)

	orientation := "P"
	if r.opts.Landscape {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "mm", r.opts.PageSize, "")
	pdf.SetMargins(r.opts.MarginMM, r.opts.MarginMM, r.opts.MarginMM)
	pdf.SetAutoPageBreak(true, r.opts.MarginMM)
	pdf.SetTitle(title, true)
	if r.opts.Creator != "" {
		pdf.SetCreator(r.opts.Creator, true)
	}
	pdf.AddPage()

	// Core fonts are cp1252; translate from UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.writeBlock(pdf, tr, b)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) writeBlock(pdf *fpdf.Fpdf, tr func(string) string, b Block) {
	size := r.opts.FontSizePt
	family, style := "Helvetica", ""

	switch b.Kind {
	case KindHeading:
		size *= headingScale[b.Level-1]
		style = "B"
	case KindPre:
		family = "Courier"
		size *= 0.9
	}

	pdf.SetFont(family, style, size)
	lineHeight := size * 0.3528 * 1.35 // pt to mm, plus leading

	text := b.Text
	if b.Kind == KindListItem {
		text = "• " + text
		pdf.SetX(r.opts.MarginMM + 5)
	}

	align := "L"
	if b.Kind == KindParagraph {
		align = "J"
	}
	pdf.MultiCell(0, lineHeight, tr(text), "", align, false)
	pdf.Ln(lineHeight * 0.4)
}

// BlockKind classifies extracted text blocks.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindListItem
	KindPre
)

// Block is one unit of text laid out as a single paragraph.
type Block struct {
	Kind  BlockKind
	Level int // heading level 1..6
	Text  string
}

var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
	atom.Noscript: true,
}

var blockLevel = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Nav: true,
	atom.Aside: true, atom.Blockquote: true, atom.Details: true, atom.Summary: true,
	atom.Table: true, atom.Tr: true, atom.Ul: true, atom.Ol: true, atom.Dl: true,
	atom.Dt: true, atom.Dd: true, atom.Form: true, atom.Fieldset: true,
	atom.Figure: true, atom.Figcaption: true, atom.Hr: true, atom.Body: true,
	atom.Button: true,
}

// Extract flattens a parsed document into text blocks and returns the
// document title.
func Extract(root *html.Node) ([]Block, string) {
	e := &extractor{}
	e.walk(root)
	e.flush()
	return e.blocks, strings.TrimSpace(e.title)
}

type extractor struct {
	blocks []Block
	cur    strings.Builder
	title  string
}

func (e *extractor) flush() {
	text := collapseSpace(e.cur.String())
	e.cur.Reset()
	if text != "" {
		e.blocks = append(e.blocks, Block{Kind: KindParagraph, Text: text})
	}
}

func (e *extractor) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		e.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		// handled below
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			e.walk(c)
		}
		return
	}

	switch {
	case n.DataAtom == atom.Head:
		if t := findFirst(n, atom.Title); t != nil {
			e.title = textOf(t)
		}
		return
	case skipped[n.DataAtom]:
		return
	case n.DataAtom == atom.Br:
		e.flush()
		return
	case n.DataAtom == atom.Input:
		if strings.EqualFold(attr(n, "type"), "checkbox") {
			e.cur.WriteString(checkboxMark(n))
		}
		return
	}

	if level := headingLevel(n.DataAtom); level > 0 {
		e.flush()
		if text := collapseSpace(textOf(n)); text != "" {
			e.blocks = append(e.blocks, Block{Kind: KindHeading, Level: level, Text: text})
		}
		return
	}

	switch n.DataAtom {
	case atom.Pre:
		e.flush()
		if text := strings.TrimRight(textOf(n), "\n"); text != "" {
			e.blocks = append(e.blocks, Block{Kind: KindPre, Text: text})
		}
		return
	case atom.Li:
		e.flush()
		e.walkChildren(n)
		text := collapseSpace(e.cur.String())
		e.cur.Reset()
		if text != "" {
			e.blocks = append(e.blocks, Block{Kind: KindListItem, Text: text})
		}
		return
	case atom.Td, atom.Th:
		e.walkChildren(n)
		e.cur.WriteString("  ")
		return
	}

	if blockLevel[n.DataAtom] {
		e.flush()
		e.walkChildren(n)
		e.flush()
		return
	}

	e.walkChildren(n)
}

func (e *extractor) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c)
	}
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func checkboxMark(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "checked" {
			return "[x] "
		}
	}
	return "[ ] "
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// textOf concatenates all descendant text, skipping scripts and styles.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[n.DataAtom] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
