package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type tags a transaction as income, expense or transfer
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

// AllTypes returns every known transaction type
func AllTypes() []Type {
	return []Type{TypeIncome, TypeExpense, TypeTransfer}
}

// Valid reports whether t is one of the known types
func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// Transaction represents a single financial transaction.
// Amount is signed: negative is an outflow, positive an inflow.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Account     string          `json:"account"`
	Type        Type            `json:"type"`
	Merchant    string          `json:"merchant"`
	Recurring   bool            `json:"recurring"`
}

// TransactionList is the document envelope for a collection of transactions
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Source       string        `json:"source"`
	ProcessedAt  time.Time     `json:"processed_at"`
}

// AddTransaction appends a transaction to the list
func (tl *TransactionList) AddTransaction(t Transaction) {
	tl.Transactions = append(tl.Transactions, t)
	tl.Total = len(tl.Transactions)
}

// NewTransactionList wraps txs in an envelope stamped with source and time
func NewTransactionList(source string, txs []Transaction, at time.Time) TransactionList {
	tl := TransactionList{
		Transactions: make([]Transaction, 0, len(txs)),
		Source:       source,
		ProcessedAt:  at,
	}
	for _, t := range txs {
		tl.AddTransaction(t)
	}
	return tl
}
