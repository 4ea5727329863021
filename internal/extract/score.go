package extract

import (
	"unicode/utf8"

	"github.com/gabrielcasottiIE/miningwebcourse/pkg/types"
)

// Weights tunes the relevance heuristic. The defaults favour pages with
// long body text, several headings, and a populated meta description; the
// combination is coarse on purpose and safe to retune per site.
type Weights struct {
	Heading         int
	MetaDescription int
}

// DefaultWeights are the weights used by the crawl engine unless overridden.
var DefaultWeights = Weights{Heading: 80, MetaDescription: 2}

// Score computes the relevance score for extracted content as
//
//	content length + heading count*Heading + meta description length*MetaDescription
//
// with all lengths counted in characters. The result is deterministic for
// a given input and weights.
func (w Weights) Score(ec types.ExtractedContent) int {
	return ec.ContentLength +
		ec.HeadingCount*w.Heading +
		utf8.RuneCountInString(ec.MetaDescription)*w.MetaDescription
}
