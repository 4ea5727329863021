package books

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gabrielcasottiIE/miningwebcourse/pkg/types"
)

// Header is the CSV column layout for the catalog export.
var Header = []string{"title", "price", "rating"}

// Write emits the books as CSV to w, header row first.
func Write(w io.Writer, books []types.Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range books {
		if err := cw.Write([]string{b.Title, b.Price, strconv.Itoa(b.Rating)}); err != nil {
			return fmt.Errorf("write csv row for %q: %w", b.Title, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile writes the catalog CSV to path, creating or truncating it.
func WriteFile(path string, books []types.Book) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := Write(fh, books); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
