// Package crawler implements a bounded breadth-first crawl of a single
// site, scoring each page's textual richness. The crawl is sequential on
// purpose: result records must come out in deterministic discovery order,
// and one in-flight request with an explicit pause is polite enough for
// the site sizes this tool targets.
package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gabrielcasottiIE/miningwebcourse/internal/config"
	"github.com/gabrielcasottiIE/miningwebcourse/internal/extract"
	"github.com/gabrielcasottiIE/miningwebcourse/internal/fetcher"
	robotsgate "github.com/gabrielcasottiIE/miningwebcourse/internal/robots"
	"github.com/gabrielcasottiIE/miningwebcourse/internal/urlnorm"
	"github.com/gabrielcasottiIE/miningwebcourse/pkg/types"
)

// Engine orchestrates the frontier, politeness gating, fetching, content
// extraction, and scoring. It owns the visited set and frontier exclusively;
// a single Run call drives the whole crawl.
type Engine struct {
	cfg       config.Config
	fetcher   fetcher.Fetcher
	robots    *robotsgate.Gate
	norm      *urlnorm.Normalizer
	extractor extract.Extractor
	weights   extract.Weights
	limiter   *HostLimiter
	logger    *slog.Logger

	base       *url.URL
	baseDomain string

	visited map[string]struct{}
}

// New builds a crawl engine from configuration. A nil logger falls back to
// one built from cfg.Logging.
func New(cfg config.Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		var err error
		logger, err = BuildLogger(cfg.Logging)
		if err != nil {
			return nil, err
		}
	}

	base, err := url.Parse(strings.TrimSpace(cfg.Crawl.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", cfg.Crawl.BaseURL, err)
	}
	if base.Scheme == "" {
		base.Scheme = "https"
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url %q missing host", cfg.Crawl.BaseURL)
	}

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.Options{
		UserAgent:    cfg.Crawl.UserAgent,
		Timeout:      cfg.Crawl.RequestTimeout.Duration,
		MaxBodyBytes: cfg.Crawl.MaxBodyBytes,
	})

	return &Engine{
		cfg:        cfg,
		fetcher:    httpFetcher,
		robots:     robotsgate.NewGate(cfg.Robots.UserAgent, cfg.Robots.Respect, httpFetcher.Client()),
		norm:       urlnorm.New(cfg.Crawl.SkipExtensions),
		weights:    extract.DefaultWeights,
		limiter:    NewHostLimiter(cfg.Crawl.Delay.Duration, cfg.Crawl.RateLimitPerHost.Requests, cfg.Crawl.RateLimitPerHost.Window.Duration),
		logger:     logger,
		base:       base,
		baseDomain: urlnorm.BaseDomain(base),
		visited:    make(map[string]struct{}),
	}, nil
}

// Run crawls breadth-first from the base URL until the frontier empties,
// the visited set reaches max_pages, or the context is cancelled. Per-URL
// failures are absorbed: a page that cannot be fetched or parsed is marked
// visited and the crawl moves on. Records are returned in the order pages
// were successfully processed.
func (e *Engine) Run(ctx context.Context) ([]types.PageRecord, error) {
	frontier := NewFrontier(e.base.String())
	var records []types.PageRecord

	for frontier.Len() > 0 && len(e.visited) < e.cfg.Crawl.MaxPages {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("crawl cancelled", "visited", len(e.visited), "records", len(records))
			return records, err
		}

		raw, ok := frontier.Pop()
		if !ok {
			break
		}

		// A candidate that fails normalisation was never legitimate and
		// does not count as visited.
		canonical, ok := e.norm.Normalize(raw, nil)
		if !ok {
			continue
		}
		if _, seen := e.visited[canonical]; seen {
			continue
		}
		target, err := url.Parse(canonical)
		if err != nil {
			continue
		}

		if !e.robots.Allowed(ctx, target) {
			e.logger.Debug("blocked by robots", "url", canonical)
			e.markVisited(canonical)
			continue
		}

		if err := e.limiter.Wait(ctx, target.Hostname()); err != nil {
			e.logger.Warn("politeness pause interrupted", "url", canonical, "error", err)
			return records, err
		}

		page, err := e.fetcher.Fetch(ctx, target)
		if err != nil {
			e.logger.Warn("fetch failed", "url", canonical, "error", err)
			e.markVisited(canonical)
			continue
		}
		if page.StatusCode != 200 {
			e.logger.Debug("skipping non-200 response", "url", canonical, "status", page.StatusCode)
			e.markVisited(canonical)
			continue
		}
		if !page.IsHTML() {
			e.logger.Debug("skipping non-HTML response", "url", canonical, "content_type", page.ContentType)
			e.markVisited(canonical)
			continue
		}

		doc, err := parseDocument(page.Body)
		if err != nil {
			e.logger.Debug("parse failed", "url", canonical, "error", err)
			e.markVisited(canonical)
			continue
		}

		content := e.extractor.Extract(doc)
		record := types.PageRecord{
			URL:             canonical,
			Title:           content.Title,
			MetaDescription: content.MetaDescription,
			H1:              content.H1,
			ContentSnippet:  content.ContentSnippet,
			ContentLength:   content.ContentLength,
			Score:           e.weights.Score(content),
		}
		records = append(records, record)
		e.logger.Info("page processed", "url", canonical, "score", record.Score, "content_length", record.ContentLength)

		for _, link := range e.discoverLinks(doc, target) {
			frontier.Push(link)
		}

		e.markVisited(canonical)
	}

	e.logger.Info("crawl finished", "visited", len(e.visited), "records", len(records))
	return records, nil
}

// Visited returns how many canonical URLs have been marked visited.
func (e *Engine) Visited() int {
	return len(e.visited)
}

func (e *Engine) markVisited(canonical string) {
	e.visited[canonical] = struct{}{}
}

// discoverLinks enumerates anchor hrefs, normalises them against the
// current page, and keeps only same-domain targets not yet visited. The
// document has already had boilerplate stripped by the extractor, so links
// buried in navigation chrome are not followed.
func (e *Engine) discoverLinks(doc *goquery.Document, page *url.URL) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		canonical, ok := e.norm.Normalize(href, page)
		if !ok {
			return
		}
		target, err := url.Parse(canonical)
		if err != nil {
			return
		}
		if !urlnorm.SameDomain(target, e.baseDomain) {
			return
		}
		if _, seen := e.visited[canonical]; seen {
			return
		}
		links = append(links, canonical)
	})
	return links
}

func parseDocument(body []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// BuildLogger creates a slog.Logger from logging configuration.
func BuildLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unsupported log level %q", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Structured {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler), nil
}
