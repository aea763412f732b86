// Package source loads transaction collections into an in-memory store.
package source

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/transaction-analyzer/internal/logger"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

//go:embed sample.json
var sampleJSON []byte

// SampleName is how the built-in data set is identified in logs and exports
const SampleName = "sample"

// ErrUnknownFormat is returned by Open for unrecognised file extensions
var ErrUnknownFormat = errors.New("unknown source format")

// Open loads path into a store, choosing the decoder by extension.
// An empty path loads the built-in sample. Progress is logged to the
// logger carried by ctx.
func Open(ctx context.Context, path string) (*transaction.Store, error) {
	var (
		txs []transaction.Transaction
		err error
	)

	name := path
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
		name = SampleName
		txs, err = decodeJSON(sampleJSON)
	case ext == ".json":
		txs, err = ReadJSON(path)
	case ext == ".csv":
		txs, err = ReadCSV(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Debug().Str("source", name).Int("count", len(txs)).Msg("loaded transactions")
	return transaction.NewStore(txs), nil
}

// Sample returns the built-in data set
func Sample() []transaction.Transaction {
	txs, err := decodeJSON(sampleJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded sample is invalid: %v", err))
	}
	return txs
}

// ReadJSON reads a TransactionList document or a bare array of transactions
func ReadJSON(path string) ([]transaction.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading json source: %w", err)
	}
	txs, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txs, nil
}

func decodeJSON(data []byte) ([]transaction.Transaction, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []transaction.Transaction{}, nil
	}

	var txs []transaction.Transaction
	if data[0] == '[' {
		if err := json.Unmarshal(data, &txs); err != nil {
			return nil, fmt.Errorf("decoding transactions: %w", err)
		}
	} else {
		var tl transaction.TransactionList
		if err := json.Unmarshal(data, &tl); err != nil {
			return nil, fmt.Errorf("decoding transaction list: %w", err)
		}
		txs = tl.Transactions
	}

	if err := validate(txs); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []transaction.Transaction{}
	}
	return txs, nil
}

func validate(txs []transaction.Transaction) error {
	seen := make(map[string]struct{}, len(txs))
	for i, t := range txs {
		if t.ID == "" {
			return fmt.Errorf("record %d: missing id", i+1)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("record %d: duplicate id %q", i+1, t.ID)
		}
		seen[t.ID] = struct{}{}
		if !t.Type.Valid() {
			return fmt.Errorf("record %d: unknown type %q", i+1, t.Type)
		}
	}
	return nil
}
