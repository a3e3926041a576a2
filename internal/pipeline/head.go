package pipeline

import "regexp"

var (
	headOpenRe  = regexp.MustCompile(`(?i)<head(?:\s[^>]*)?>`)
	htmlOpenRe  = regexp.MustCompile(`(?i)<html(?:\s[^>]*)?>`)
	bodyOpenRe  = regexp.MustCompile(`(?i)<body(?:\s[^>]*)?>`)
	headCloseRe = regexp.MustCompile(`(?i)</head\s*>`)
)

// placement selects where a snippet goes when the document has a head.
type placement int

const (
	headEnd   placement = iota // before </head>, falling back to after <head>
	headStart                  // after <head>, falling back to before </head>
)

// insertIntoHead places snippet inside the document head. Documents without
// a head get one synthesized after <html>; fragments without <html> are
// wrapped in a complete document (reusing an existing <body> if present).
func insertIntoHead(doc, snippet string, where placement) string {
	// Offsets must come from doc itself: lowercasing can change byte length.
	closeIdx := -1
	if loc := headCloseRe.FindStringIndex(doc); loc != nil {
		closeIdx = loc[0]
	}
	openLoc := headOpenRe.FindStringIndex(doc)

	switch {
	case where == headEnd && closeIdx != -1:
		return doc[:closeIdx] + snippet + doc[closeIdx:]
	case openLoc != nil:
		return doc[:openLoc[1]] + snippet + doc[openLoc[1]:]
	case closeIdx != -1:
		return doc[:closeIdx] + snippet + doc[closeIdx:]
	}

	if loc := htmlOpenRe.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + "<head>" + snippet + "</head>" + doc[loc[1]:]
	}

	if bodyOpenRe.MatchString(doc) {
		return "<html><head>" + snippet + "</head>" + doc + "</html>"
	}
	return "<html><head>" + snippet + "</head><body>" + doc + "</body></html>"
}
