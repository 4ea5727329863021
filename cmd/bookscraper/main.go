// Command bookscraper extracts title, price, and rating from a paginated
// book catalog and saves them to CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabrielcasottiIE/miningwebcourse/internal/books"
	"github.com/gabrielcasottiIE/miningwebcourse/internal/fetcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookscraper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL = flag.String("url", "http://books.toscrape.com/", "Base URL of the book catalog")
		output  = flag.String("output", "books.csv", "Path of the CSV output file")
		timeout = flag.Duration("timeout", 10*time.Second, "Per-request timeout")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.Options{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		Timeout:   *timeout,
	})
	scraper := books.NewScraper(httpFetcher, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	found, err := scraper.Scrape(ctx, *baseURL)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("No books were extracted.")
		return nil
	}

	if err := books.WriteFile(*output, found); err != nil {
		return err
	}
	fmt.Printf("%d books saved to %s\n", len(found), *output)
	return nil
}
