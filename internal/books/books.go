// Package books extracts a paginated book catalog (title, price, rating per
// listing) from a books.toscrape.com-style site. Unlike the crawler it does
// no link discovery: it follows only the catalog's "next" pagination link.
package books

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gabrielcasottiIE/miningwebcourse/internal/fetcher"
	"github.com/gabrielcasottiIE/miningwebcourse/pkg/types"
)

// ratingWords maps the star-rating CSS class suffix to a numeric rating.
var ratingWords = map[string]int{
	"One":   1,
	"Two":   2,
	"Three": 3,
	"Four":  4,
	"Five":  5,
}

// Scraper walks the catalog page by page.
type Scraper struct {
	fetcher fetcher.Fetcher
	logger  *slog.Logger
}

// NewScraper builds a catalog scraper on top of the shared fetcher.
func NewScraper(f fetcher.Fetcher, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{fetcher: f, logger: logger}
}

// Scrape paginates from baseURL until no "next" link remains and returns
// every listed book. A page that fetches with a non-200 status or fails to
// parse ends the pagination; books collected so far are still returned.
func (s *Scraper) Scrape(ctx context.Context, baseURL string) ([]types.Book, error) {
	current, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", baseURL, err)
	}
	if current.Scheme == "" || current.Host == "" {
		return nil, fmt.Errorf("catalog url %q must be absolute", baseURL)
	}

	var books []types.Book
	for current != nil {
		if err := ctx.Err(); err != nil {
			return books, err
		}
		s.logger.Info("scraping catalog page", "url", current.String())

		page, err := s.fetcher.Fetch(ctx, current)
		if err != nil {
			return books, fmt.Errorf("fetch %s: %w", current, err)
		}
		if page.StatusCode != 200 {
			return books, fmt.Errorf("fetch %s: unexpected status %d", current, page.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
		if err != nil {
			return books, fmt.Errorf("parse %s: %w", current, err)
		}

		found := parseListings(doc)
		if len(found) == 0 {
			s.logger.Info("no listings found, stopping", "url", current.String())
			break
		}
		books = append(books, found...)

		current = nextPage(doc, current)
	}
	return books, nil
}

// parseListings extracts one Book per product pod on the page.
func parseListings(doc *goquery.Document) []types.Book {
	var books []types.Book
	doc.Find("article.product_pod").Each(func(_ int, pod *goquery.Selection) {
		title, ok := pod.Find("h3 a").First().Attr("title")
		if !ok {
			return
		}

		price := strings.TrimSpace(pod.Find("p.price_color").First().Text())
		price = strings.TrimPrefix(price, "£")

		books = append(books, types.Book{
			Title:  title,
			Price:  price,
			Rating: parseRating(pod.Find("p.star-rating").First()),
		})
	})
	return books
}

// parseRating reads the rating word from the star-rating element's class
// list ("star-rating Three" -> 3). Zero means the rating was absent or
// unrecognised.
func parseRating(sel *goquery.Selection) int {
	class, ok := sel.Attr("class")
	if !ok {
		return 0
	}
	for _, word := range strings.Fields(class) {
		if rating, ok := ratingWords[word]; ok {
			return rating
		}
	}
	return 0
}

// nextPage resolves the catalog's pagination link, or nil when on the last
// page.
func nextPage(doc *goquery.Document, current *url.URL) *url.URL {
	href, ok := doc.Find("li.next a").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return nil
	}
	next, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return current.ResolveReference(next)
}
