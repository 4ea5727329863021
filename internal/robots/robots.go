// Package robots answers whether the crawler may fetch a URL, backed by the
// target host's robots.txt. An unreachable or unparseable robots.txt fails
// open: the crawl proceeds as if no restrictions exist. That is a documented
// policy choice for this tool, not an oversight.
package robots

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"
)

// Gate evaluates robots.txt rules, fetching and caching the ruleset once
// per host for the lifetime of a crawl run.
type Gate struct {
	client    *http.Client
	userAgent string
	respect   bool

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData // nil entry = fail-open for host
}

// NewGate constructs a gate that identifies as userAgent. A nil client
// falls back to a default one; passing the fetcher's client keeps robots
// lookups on the same transport as page fetches.
func NewGate(userAgent string, respect bool, client *http.Client) *Gate {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gate{
		client:    client,
		userAgent: userAgent,
		respect:   respect,
		cache:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the target URL may be fetched.
func (g *Gate) Allowed(ctx context.Context, target *url.URL) bool {
	if target == nil || !target.IsAbs() {
		return false
	}
	if !g.respect {
		return true
	}

	rules := g.rules(ctx, target)
	if rules == nil {
		return true
	}

	group := rules.FindGroup(g.userAgent)
	if group == nil {
		group = rules.FindGroup("*")
		if group == nil {
			return true
		}
	}
	path := target.EscapedPath()
	if path == "" {
		path = "/"
	}
	if target.RawQuery != "" {
		path += "?" + target.RawQuery
	}
	return group.Test(path)
}

// rules returns the cached ruleset for the target's host, fetching it on
// first use. Fetch or parse failures cache a nil ruleset so the host stays
// fail-open for the rest of the run without re-requesting robots.txt.
func (g *Gate) rules(ctx context.Context, target *url.URL) *robotstxt.RobotsData {
	host := strings.ToLower(target.Host)

	g.mu.Lock()
	defer g.mu.Unlock()

	if rules, ok := g.cache[host]; ok {
		return rules
	}

	rules, err := g.fetch(ctx, target.Scheme, target.Host)
	if err != nil {
		rules = nil
	}
	g.cache[host] = rules
	return rules
}

func (g *Gate) fetch(ctx context.Context, scheme, host string) (*robotstxt.RobotsData, error) {
	robotsURL := scheme + "://" + host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("robots returned status %d", resp.StatusCode)
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}
