package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/transaction-analyzer/pkg/transaction"
)

// Columns is the CSV header written by the exporter and understood by ReadCSV
var Columns = []string{"id", "date", "description", "category", "amount", "account", "type", "merchant", "recurring"}

var requiredColumns = []string{"date", "amount", "type"}

// ReadCSV reads transactions from a CSV file with a header row.
// Columns may appear in any order; rows without an id get a generated one.
func ReadCSV(path string) ([]transaction.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv source: %w", err)
	}
	defer f.Close()

	txs, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txs, nil
}

// DecodeCSV parses CSV rows from r
func DecodeCSV(r io.Reader) ([]transaction.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []transaction.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header missing %q column", col)
		}
	}

	txs := []transaction.Transaction{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		t, err := parseRow(rec, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, t)
	}

	if err := validate(txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func parseRow(rec []string, index map[string]int) (transaction.Transaction, error) {
	field := func(name string) string {
		if i, ok := index[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	date, err := ParseDate(field("date"))
	if err != nil {
		return transaction.Transaction{}, err
	}
	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parsing amount %q: %w", field("amount"), err)
	}
	recurring := false
	if s := field("recurring"); s != "" {
		if recurring, err = strconv.ParseBool(s); err != nil {
			return transaction.Transaction{}, fmt.Errorf("parsing recurring %q: %w", s, err)
		}
	}

	id := field("id")
	if id == "" {
		id = uuid.NewString()
	}

	return transaction.Transaction{
		ID:          id,
		Date:        date,
		Description: field("description"),
		Category:    field("category"),
		Amount:      amount,
		Account:     field("account"),
		Type:        transaction.Type(strings.ToLower(field("type"))),
		Merchant:    field("merchant"),
		Recurring:   recurring,
	}, nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}
