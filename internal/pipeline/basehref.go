package pipeline

import (
	"html"
	"regexp"
)

var baseTagRe = regexp.MustCompile(`(?i)<base\s`)

// InjectBaseHref adds <base href="href"> at the start of the head so
// relative URLs resolve against href. Documents that already declare a
// base are returned unchanged.
func InjectBaseHref(doc, href string) string {
	if href == "" || baseTagRe.MatchString(doc) {
		return doc
	}
	return insertIntoHead(doc, `<base href="`+html.EscapeString(href)+`">`, headStart)
}
