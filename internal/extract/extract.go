// Package extract derives textual signals from a parsed HTML document and
// scores pages by content richness.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/gabrielcasottiIE/miningwebcourse/pkg/types"
)

// boilerplateSelector matches subtrees that carry no content signal:
// scripts, styles, navigation, chrome, and noscript fallbacks.
const boilerplateSelector = "script, style, nav, footer, header, aside, noscript"

// snippetLength bounds the stored content preview, in characters.
const snippetLength = 240

const ellipsis = "..."

// Extractor computes ExtractedContent from a document. The zero value is
// ready to use.
type Extractor struct{}

// Extract strips boilerplate from doc and collects the title, meta
// description, first h1, main content text, and heading count. The document
// is modified in place (boilerplate subtrees are removed), so callers that
// still need the full tree should pass a dedicated parse.
func (Extractor) Extract(doc *goquery.Document) types.ExtractedContent {
	var ec types.ExtractedContent
	if doc == nil {
		return ec
	}

	doc.Find(boilerplateSelector).Remove()

	ec.Title = collapse(doc.Find("title").First().Text())
	ec.MetaDescription = metaDescription(doc)
	ec.H1 = collapse(doc.Find("h1").First().Text())

	ec.ContentText = collapse(contentRegion(doc).Text())
	ec.ContentLength = utf8.RuneCountInString(ec.ContentText)
	ec.ContentSnippet = snippet(ec.ContentText)

	ec.HeadingCount = doc.Find("h1, h2, h3").Length()

	return ec
}

// metaDescription prefers <meta name="description"> and falls back to the
// Open Graph description.
func metaDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
		return collapse(content)
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return collapse(content)
	}
	return ""
}

// contentRegion picks the first of main, article, or body that exists.
func contentRegion(doc *goquery.Document) *goquery.Selection {
	if sel := doc.Find("main").First(); sel.Length() > 0 {
		return sel
	}
	if sel := doc.Find("article").First(); sel.Length() > 0 {
		return sel
	}
	return doc.Find("body").First()
}

// collapse trims the text and folds any whitespace run (newlines and tabs
// included) into a single space.
func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength]) + ellipsis
}
