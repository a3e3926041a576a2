package pipeline

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CheckAllBoxes rewrites every <input type="checkbox"> so that it carries
// exactly one checked="checked" attribute. All other bytes are copied from
// the tokenizer's raw view unchanged.
func CheckAllBoxes(doc string) string {
	if !strings.Contains(strings.ToLower(doc), "checkbox") {
		return doc
	}

	var b strings.Builder
	b.Grow(len(doc) + 64)

	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// Not reachable with a strings.Reader; keep the input intact.
				return doc
			}
			break
		}

		// Raw is only valid until the next call into the tokenizer.
		raw := string(z.Raw())

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			b.WriteString(raw)
			continue
		}

		tok := z.Token()
		if tok.DataAtom != atom.Input || !isCheckbox(tok.Attr) {
			b.WriteString(raw)
			continue
		}

		writeCheckedInput(&b, tok.Attr, tt == html.SelfClosingTagToken)
	}

	return b.String()
}

func isCheckbox(attrs []html.Attribute) bool {
	for _, a := range attrs {
		if a.Key == "type" {
			return strings.EqualFold(strings.TrimSpace(a.Val), "checkbox")
		}
	}
	return false
}

func writeCheckedInput(b *strings.Builder, attrs []html.Attribute, selfClosing bool) {
	b.WriteString("<input")
	for _, a := range attrs {
		if a.Key == "checked" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.Key)
		if a.Val != "" {
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Val))
			b.WriteByte('"')
		}
	}
	b.WriteString(` checked="checked"`)
	if selfClosing {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
}
