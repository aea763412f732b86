package transaction

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// WeekdayAmount is the absolute expense total for one weekday
type WeekdayAmount struct {
	Weekday time.Weekday    `json:"weekday"`
	Amount  decimal.Decimal `json:"amount"`
}

// MerchantCount is the number of expenses recorded against a merchant
type MerchantCount struct {
	Merchant string `json:"merchant"`
	Count    int    `json:"count"`
}

// RecurringSummary describes the recurring part of a result
type RecurringSummary struct {
	Count   int             `json:"count"`
	Expense decimal.Decimal `json:"expense"`
}

// Insights are the spending breakdowns shown next to the transaction table
type Insights struct {
	ByWeekday     []WeekdayAmount  `json:"by_weekday"`
	TopCategories []CategoryAmount `json:"top_categories"`
	TopMerchants  []MerchantCount  `json:"top_merchants"`
	Recurring     RecurringSummary `json:"recurring"`
}

const (
	insightCategories = 6
	insightMerchants  = 5
)

// Analyze builds the default Insights for txs
func Analyze(txs []Transaction) Insights {
	return Insights{
		ByWeekday:     SpendingByWeekday(txs),
		TopCategories: TopCategories(txs, insightCategories),
		TopMerchants:  TopMerchants(txs, insightMerchants),
		Recurring:     Recurring(txs),
	}
}

// SpendingByWeekday sums absolute expenses per weekday, Sunday first.
// Days without expenses are omitted.
func SpendingByWeekday(txs []Transaction) []WeekdayAmount {
	var totals [7]decimal.Decimal
	var seen [7]bool
	for _, t := range txs {
		if t.Type != TypeExpense {
			continue
		}
		d := t.Date.Weekday()
		totals[d] = totals[d].Add(t.Amount.Abs())
		seen[d] = true
	}

	out := []WeekdayAmount{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if seen[d] {
			out = append(out, WeekdayAmount{Weekday: d, Amount: totals[d]})
		}
	}
	return out
}

// TopCategories returns up to n expense categories by absolute total,
// largest first. Equal totals keep first-seen order.
func TopCategories(txs []Transaction, n int) []CategoryAmount {
	cats := Aggregate(txs).ByCategory
	slices.SortStableFunc(cats, func(a, b CategoryAmount) int {
		return b.Amount.Cmp(a.Amount)
	})
	return head(cats, n)
}

// TopMerchants returns up to n merchants by number of expenses, most
// frequent first. Equal counts keep first-seen order.
func TopMerchants(txs []Transaction, n int) []MerchantCount {
	index := make(map[string]int)
	merchants := []MerchantCount{}
	for _, t := range txs {
		if t.Type != TypeExpense {
			continue
		}
		if i, ok := index[t.Merchant]; ok {
			merchants[i].Count++
			continue
		}
		index[t.Merchant] = len(merchants)
		merchants = append(merchants, MerchantCount{Merchant: t.Merchant, Count: 1})
	}
	slices.SortStableFunc(merchants, func(a, b MerchantCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return head(merchants, n)
}

// Recurring counts recurring transactions and sums their absolute expenses
func Recurring(txs []Transaction) RecurringSummary {
	s := RecurringSummary{Expense: decimal.Zero}
	for _, t := range txs {
		if !t.Recurring {
			continue
		}
		s.Count++
		if t.Type == TypeExpense {
			s.Expense = s.Expense.Add(t.Amount.Abs())
		}
	}
	return s
}

func head[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
