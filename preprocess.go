package html2pdf

import "github.com/alnah/go-html2pdf/internal/pipeline"

// Preprocess reveals hidden content according to policy and reports whether
// the document changed. Unknown policies are treated as PolicyFull.
func Preprocess(html string, policy Policy) (string, bool) {
	if policy == PolicyLight {
		return pipeline.ExpandLight(html)
	}
	return pipeline.ExpandFull(html)
}
