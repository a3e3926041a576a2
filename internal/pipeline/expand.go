package pipeline

import (
	"regexp"
	"strings"
)

// ExpandMarker identifies the style block injected by ExpandFull.
const ExpandMarker = `data-html2pdf="expand"`

const expandBlock = `<style ` + ExpandMarker + `>` +
	`.content,[style*="display:none"],[style*="display: none"],#hid{display:block !important;}` +
	`</style>`

const lightBlock = `<style>.content{display:block !important;}</style>`

const (
	hiddenLiteral  = `id="hid" style="display:none"`
	visibleLiteral = `id="hid" style="display:block"`
)

var (
	// styleAttrRe matches a quoted style attribute. Group 1 is the prefix up
	// to the opening quote; groups 2 and 3 hold a double or single quoted value.
	styleAttrRe   = regexp.MustCompile(`(?i)(\sstyle\s*=\s*)(?:"([^"]*)"|'([^']*)')`)
	displayNoneRe = regexp.MustCompile(`(?i)display\s*:\s*none`)
)

// ExpandFull applies the full expansion policy and reports whether the
// document changed. The steps run in a fixed order: inline styles, head
// style block, the #hid literal, then checkboxes. Running it twice yields
// the same output as running it once.
func ExpandFull(doc string) (string, bool) {
	out := RevealInlineStyles(doc)

	if !strings.Contains(out, ExpandMarker) {
		out = insertIntoHead(out, expandBlock, headEnd)
	}

	out = strings.ReplaceAll(out, hiddenLiteral, visibleLiteral)
	out = CheckAllBoxes(out)

	return out, out != doc
}

// ExpandLight injects a .content rule only when the document mentions
// .content and contains the literal "display: none". The rule goes before
// </head>, or at the very start when there is no </head>.
func ExpandLight(doc string) (string, bool) {
	if !strings.Contains(doc, ".content") || !strings.Contains(doc, "display: none") {
		return doc, false
	}

	if idx := strings.Index(doc, "</head>"); idx != -1 {
		return doc[:idx] + lightBlock + doc[idx:], true
	}
	return lightBlock + doc, true
}

// RevealInlineStyles rewrites display:none to display:block inside every
// quoted style attribute, keeping the original quote character.
func RevealInlineStyles(doc string) string {
	return styleAttrRe.ReplaceAllStringFunc(doc, func(attr string) string {
		m := styleAttrRe.FindStringSubmatch(attr)
		prefix, quote, value := m[1], `"`, m[2]
		if strings.HasPrefix(attr[len(prefix):], "'") {
			quote, value = "'", m[3]
		}
		if !displayNoneRe.MatchString(value) {
			return attr
		}
		return prefix + quote + displayNoneRe.ReplaceAllString(value, "display:block") + quote
	})
}
