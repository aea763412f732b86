// Package export writes a filtered transaction set for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/transaction-analyzer/internal/source"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for formats without a writer, such as excel or pdf
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat converts a format name to a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnsupportedFormat)
}

// Options describe the export envelope
type Options struct {
	// Source names where the transactions came from.
	Source string
	// Now stamps the JSON envelope. Defaults to time.Now.
	Now func() time.Time
}

// Write encodes txs to w in the given format
func Write(w io.Writer, format Format, txs []transaction.Transaction, opts Options) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, txs)
	case FormatJSON:
		return writeJSON(w, txs, opts)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

func writeCSV(w io.Writer, txs []transaction.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(source.Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, t := range txs {
		record := []string{
			t.ID,
			t.Date.Format(time.RFC3339),
			t.Description,
			t.Category,
			t.Amount.String(),
			t.Account,
			string(t.Type),
			t.Merchant,
			strconv.FormatBool(t.Recurring),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, txs []transaction.Transaction, opts Options) error {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	tl := transaction.NewTransactionList(opts.Source, txs, now().UTC())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tl); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
