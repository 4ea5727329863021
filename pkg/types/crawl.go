package types

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Page represents a fetched HTTP response before any content analysis.
type Page struct {
	URL             *url.URL
	FinalURL        *url.URL
	Body            []byte
	ContentType     string
	StatusCode      int
	Headers         http.Header
	FetchedAt       time.Time
	ResponseLatency time.Duration
}

// IsHTML reports whether the response declared an HTML content type.
func (p *Page) IsHTML() bool {
	if p == nil {
		return false
	}
	return strings.Contains(strings.ToLower(p.ContentType), "text/html")
}

// ExtractedContent holds the textual signals derived from a parsed page.
type ExtractedContent struct {
	Title           string
	MetaDescription string
	H1              string
	ContentText     string
	ContentSnippet  string
	ContentLength   int
	HeadingCount    int
}

// PageRecord is the immutable per-page result appended by the crawl engine.
// Records stay in the order pages were successfully processed; ranking
// happens later in the reporting path.
type PageRecord struct {
	URL             string
	Title           string
	MetaDescription string
	H1              string
	ContentSnippet  string
	ContentLength   int
	Score           int
}

// Book is a single catalog listing extracted by the book scraper.
type Book struct {
	Title  string
	Price  string
	Rating int
}
