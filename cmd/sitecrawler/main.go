// Command sitecrawler crawls a single site breadth-first, scores each page
// by textual richness, and writes the top pages to a ranked CSV report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabrielcasottiIE/miningwebcourse/internal/config"
	"github.com/gabrielcasottiIE/miningwebcourse/internal/crawler"
	"github.com/gabrielcasottiIE/miningwebcourse/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sitecrawler: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath  = flag.String("config", "", "Path to optional YAML configuration file")
		baseURL  = flag.String("url", "", "Base URL of the site to crawl")
		maxPages = flag.Int("max-pages", 0, "Maximum number of URLs to visit")
		delay    = flag.Duration("delay", -1, "Pause between requests (e.g. 500ms)")
		topN     = flag.Int("top", -1, "Number of top-scored pages to keep (0 keeps all)")
		output   = flag.String("output", "", "Path of the CSV report")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	// Flags take precedence over the config file.
	if *baseURL != "" {
		cfg.Crawl.BaseURL = *baseURL
	}
	if *maxPages > 0 {
		cfg.Crawl.MaxPages = *maxPages
	}
	if *delay >= 0 {
		cfg.Crawl.Delay = config.DurationFrom(*delay)
	}
	if *topN >= 0 {
		cfg.Report.TopN = *topN
	}
	if *output != "" {
		cfg.Report.Output = *output
	}

	cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := crawler.BuildLogger(cfg.Logging)
	if err != nil {
		return err
	}

	engine, err := crawler.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	records, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		logger.Info("no pages were processed, skipping report", "visited", engine.Visited())
		fmt.Println("No pages were processed.")
		return nil
	}

	if err := report.WriteFile(cfg.Report.Output, records, cfg.Report.TopN); err != nil {
		return err
	}

	kept := len(records)
	if cfg.Report.TopN > 0 && cfg.Report.TopN < kept {
		kept = cfg.Report.TopN
	}
	logger.Info("report written",
		"output", cfg.Report.Output,
		"pages", kept,
		"visited", engine.Visited(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	fmt.Printf("Report with %d pages written to %s\n", kept, cfg.Report.Output)
	return nil
}
