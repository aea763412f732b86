package transaction

import (
	"slices"

	"github.com/shopspring/decimal"
)

// CategoryAmount is an absolute expense total for one category
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Metrics summarises a filtered result, independent of sort and page
type Metrics struct {
	Count int `json:"count"`
	// Total is the sum of signed amounts.
	Total decimal.Decimal `json:"total"`
	// Income is the sum of income amounts.
	Income decimal.Decimal `json:"income"`
	// Expense is the sum of absolute expense amounts.
	Expense decimal.Decimal `json:"expense"`
	// AverageAbs is the mean absolute amount, 0 for an empty set.
	AverageAbs decimal.Decimal `json:"average_abs"`
	// ByCategory holds expense totals in first-seen order.
	ByCategory []CategoryAmount `json:"by_category"`
	// TopCategory is the highest expense category; the first seen wins a tie.
	TopCategory *CategoryAmount `json:"top_category,omitempty"`
}

// Clone returns a copy of m that shares no slices or pointers with it
func (m Metrics) Clone() Metrics {
	m.ByCategory = slices.Clone(m.ByCategory)
	if m.TopCategory != nil {
		top := *m.TopCategory
		m.TopCategory = &top
	}
	return m
}

// Aggregate computes Metrics over txs
func Aggregate(txs []Transaction) Metrics {
	m := Metrics{
		Count:      len(txs),
		Total:      decimal.Zero,
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		AverageAbs: decimal.Zero,
		ByCategory: []CategoryAmount{},
	}

	absSum := decimal.Zero
	index := make(map[string]int)
	for _, t := range txs {
		m.Total = m.Total.Add(t.Amount)
		absSum = absSum.Add(t.Amount.Abs())

		switch t.Type {
		case TypeIncome:
			m.Income = m.Income.Add(t.Amount)
		case TypeExpense:
			abs := t.Amount.Abs()
			m.Expense = m.Expense.Add(abs)
			if i, ok := index[t.Category]; ok {
				m.ByCategory[i].Amount = m.ByCategory[i].Amount.Add(abs)
			} else {
				index[t.Category] = len(m.ByCategory)
				m.ByCategory = append(m.ByCategory, CategoryAmount{Category: t.Category, Amount: abs})
			}
		}
	}

	if m.Count > 0 {
		m.AverageAbs = absSum.Div(decimal.NewFromInt(int64(m.Count)))
	}

	for i := range m.ByCategory {
		if m.TopCategory == nil || m.ByCategory[i].Amount.GreaterThan(m.TopCategory.Amount) {
			top := m.ByCategory[i]
			m.TopCategory = &top
		}
	}
	return m
}
