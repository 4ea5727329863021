// Package report serialises crawl results into a ranked CSV table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/gabrielcasottiIE/miningwebcourse/pkg/types"
)

// Header is the CSV column layout, one row per retained page record.
var Header = []string{"url", "title", "meta_description", "h1", "content_snippet", "content_length", "score"}

// Rank returns the records sorted by score descending and truncated to the
// top N. A topN of zero keeps everything. The sort is stable, so records
// with equal scores stay in crawl discovery order. The input slice is not
// modified.
func Rank(records []types.PageRecord, topN int) []types.PageRecord {
	ranked := make([]types.PageRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}

// Write emits the ranked CSV table to w.
func Write(w io.Writer, records []types.PageRecord, topN int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range Rank(records, topN) {
		row := []string{
			rec.URL,
			rec.Title,
			rec.MetaDescription,
			rec.H1,
			rec.ContentSnippet,
			strconv.Itoa(rec.ContentLength),
			strconv.Itoa(rec.Score),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", rec.URL, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile writes the ranked CSV table to path, creating or truncating it.
func WriteFile(path string, records []types.PageRecord, topN int) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := Write(fh, records, topN); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	return nil
}
