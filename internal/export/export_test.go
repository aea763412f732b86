package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/transaction-analyzer/internal/source"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	for _, name := range []string{"excel", "pdf", ""} {
		_, err := ParseFormat(name)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), name)
	}
}

func TestWrite_CSVRoundTrip(t *testing.T) {
	txs := source.Sample()
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatCSV, txs, Options{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 16)
	assert.Equal(t, "id,date,description,category,amount,account,type,merchant,recurring", lines[0])

	back, err := source.DecodeCSV(&buf)
	require.NoError(t, err)
	require.Len(t, back, len(txs))
	for i := range txs {
		assert.Equal(t, txs[i].ID, back[i].ID)
		assert.True(t, txs[i].Amount.Equal(back[i].Amount))
		assert.True(t, txs[i].Date.Equal(back[i].Date))
		assert.Equal(t, txs[i].Category, back[i].Category)
		assert.Equal(t, txs[i].Recurring, back[i].Recurring)
	}
}

func TestWrite_CSVKeepsFullPrecision(t *testing.T) {
	txs := []transaction.Transaction{{
		ID:     "fx-1",
		Date:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("-12.3456"),
		Type:   transaction.TypeExpense,
	}}
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatCSV, txs, Options{}))
	assert.Contains(t, buf.String(), ",-12.3456,")

	back, err := source.DecodeCSV(&buf)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.True(t, txs[0].Amount.Equal(back[0].Amount), "got %s", back[0].Amount)
}

func TestWrite_JSONEnvelope(t *testing.T) {
	spec := transaction.DefaultFilter()
	spec.Categories = []string{"Utilities"}
	txs := transaction.Filter(source.Sample(), spec)
	at := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer

	err := Write(&buf, FormatJSON, txs, Options{Source: "sample", Now: func() time.Time { return at }})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"total": 2`)
	assert.Contains(t, out, `"source": "sample"`)
	assert.Contains(t, out, `"processed_at": "2024-02-01T12:00:00Z"`)
	assert.Contains(t, out, "Electric Bill")
	assert.Contains(t, out, "Phone Bill")
}

func TestWrite_Unsupported(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), nil, Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
