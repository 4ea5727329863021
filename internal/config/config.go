// Package config loads and validates the crawler configuration from YAML,
// with defaults suitable for a small single-site content audit.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gabrielcasottiIE/miningwebcourse/internal/urlnorm"
)

// Config captures everything needed to initialise the crawl engine and the
// reporting path.
type Config struct {
	Crawl   CrawlConfig   `yaml:"crawl"`
	Robots  RobotsConfig  `yaml:"robots"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// CrawlConfig controls the frontier, limits, and throttling.
type CrawlConfig struct {
	BaseURL          string          `yaml:"base_url"`
	MaxPages         int             `yaml:"max_pages"`
	Delay            Duration        `yaml:"delay"`
	RateLimitPerHost RateLimitConfig `yaml:"rate_limit_per_host"`
	UserAgent        string          `yaml:"user_agent"`
	RequestTimeout   Duration        `yaml:"request_timeout"`
	MaxBodyBytes     int64           `yaml:"max_body_bytes"`
	SkipExtensions   []string        `yaml:"skip_extensions"`
}

// RateLimitConfig applies an optional token bucket per host on top of the
// fixed inter-request delay.
type RateLimitConfig struct {
	Requests int      `yaml:"requests"`
	Window   Duration `yaml:"window"`
}

// Enabled reports whether per-host rate limiting is active.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && !r.Window.IsZero()
}

// RobotsConfig configures robots.txt handling.
type RobotsConfig struct {
	Respect   bool   `yaml:"respect"`
	UserAgent string `yaml:"user_agent"`
}

// ReportConfig controls the ranked CSV output. A TopN of zero keeps every
// record.
type ReportConfig struct {
	TopN   int    `yaml:"top_n"`
	Output string `yaml:"output"`
}

// LoggingConfig selects log verbosity and format.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Structured bool   `yaml:"structured"`
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Crawl: CrawlConfig{
			MaxPages:       30,
			Delay:          DurationFrom(500 * time.Millisecond),
			UserAgent:      "miningwebcourse-crawler/1.0",
			RequestTimeout: DurationFrom(15 * time.Second),
			MaxBodyBytes:   5 * 1024 * 1024,
			SkipExtensions: append([]string(nil), urlnorm.DefaultSkipExtensions...),
		},
		Robots: RobotsConfig{
			Respect:   true,
			UserAgent: "miningwebcourse-crawler/1.0",
		},
		Report: ReportConfig{
			TopN:   20,
			Output: "relevant_content.csv",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Structured: false,
		},
	}
}

// Load reads, merges, and validates configuration from a YAML file.
func Load(path string) (*Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer fh.Close()
	return LoadFromReader(fh)
}

// LoadFromReader decodes configuration from an arbitrary reader on top of
// the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces required invariants for the crawler configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Crawl.BaseURL) == "" {
		return errors.New("crawl.base_url must be set")
	}
	if c.Crawl.MaxPages <= 0 {
		return fmt.Errorf("crawl.max_pages must be > 0 (got %d)", c.Crawl.MaxPages)
	}
	if c.Crawl.Delay.Duration < 0 {
		return fmt.Errorf("crawl.delay must be >= 0 (got %s)", c.Crawl.Delay)
	}
	if c.Crawl.MaxBodyBytes <= 0 {
		return fmt.Errorf("crawl.max_body_bytes must be > 0 (got %d)", c.Crawl.MaxBodyBytes)
	}
	if strings.TrimSpace(c.Crawl.UserAgent) == "" {
		return errors.New("crawl.user_agent must be set")
	}
	if strings.TrimSpace(c.Robots.UserAgent) == "" {
		return errors.New("robots.user_agent must be set")
	}
	if rl := c.Crawl.RateLimitPerHost; rl.Requests < 0 {
		return fmt.Errorf("crawl.rate_limit_per_host.requests must be >= 0 (got %d)", rl.Requests)
	}
	if c.Report.TopN < 0 {
		return fmt.Errorf("report.top_n must be >= 0 (got %d)", c.Report.TopN)
	}
	return nil
}

// Normalise trims and de-duplicates string-valued fields in place.
func (c *Config) Normalise() {
	c.Crawl.BaseURL = strings.TrimSpace(c.Crawl.BaseURL)
	c.Crawl.UserAgent = strings.TrimSpace(c.Crawl.UserAgent)
	c.Robots.UserAgent = strings.TrimSpace(c.Robots.UserAgent)
	c.Report.Output = strings.TrimSpace(c.Report.Output)
	if len(c.Crawl.SkipExtensions) > 0 {
		c.Crawl.SkipExtensions = dedupeLower(c.Crawl.SkipExtensions)
	}
}

func dedupeLower(values []string) []string {
	unique := make(map[string]struct{}, len(values))
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := unique[v]; ok {
			continue
		}
		unique[v] = struct{}{}
		cleaned = append(cleaned, v)
	}
	sort.Strings(cleaned)
	return cleaned
}
