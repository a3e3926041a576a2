package html2pdf

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeHTML turns raw file bytes into a string. Binary content is
// rejected. UTF-8 is tried first (BOM stripped); anything else is read as
// Latin-1. native reports whether the bytes were already UTF-8, in which
// case the file can be handed to the engine as is.
func decodeHTML(raw []byte) (text string, native bool, err error) {
	if mt := mimetype.Detect(raw); !isText(mt) {
		return "", false, fmt.Errorf("%w: content is %s", ErrDecode, mt.String())
	}

	body := bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(body) {
		return string(body), true, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return "", false, fmt.Errorf("%w: latin-1: %v", ErrDecode, err)
	}
	return string(decoded), false, nil
}

// isText reports whether mt is text/plain or one of its descendants
// (text/html, text/xml, ...).
func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
