package transaction

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds Date inclusively. A nil bound is open on that side.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// AmountRange bounds the absolute value of Amount inclusively.
// A nil bound is open on that side.
type AmountRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// FilterSpec selects transactions. Empty fields do not restrict, except
// TransactionTypes: an empty set matches nothing.
type FilterSpec struct {
	DateRange        DateRange   `json:"date_range"`
	AmountRange      AmountRange `json:"amount_range"`
	Categories       []string    `json:"categories,omitempty"`
	Accounts         []string    `json:"accounts,omitempty"`
	TransactionTypes []Type      `json:"transaction_types"`
	SearchQuery      string      `json:"search_query,omitempty"`
}

// DefaultFilter matches every transaction
func DefaultFilter() FilterSpec {
	return FilterSpec{TransactionTypes: AllTypes()}
}

// Validate reports ranges that can never match and unknown types.
// Filter itself accepts such specs and simply returns no matches.
func (f FilterSpec) Validate() error {
	if f.DateRange.Start != nil && f.DateRange.End != nil && f.DateRange.Start.After(*f.DateRange.End) {
		return fmt.Errorf("date range start %s after end %s: %w",
			f.DateRange.Start.Format(time.DateOnly), f.DateRange.End.Format(time.DateOnly), ErrInvalidArgument)
	}
	if f.AmountRange.Min != nil && f.AmountRange.Max != nil && f.AmountRange.Min.GreaterThan(*f.AmountRange.Max) {
		return fmt.Errorf("amount range min %s above max %s: %w",
			f.AmountRange.Min, f.AmountRange.Max, ErrInvalidArgument)
	}
	if f.AmountRange.Min != nil && f.AmountRange.Min.IsNegative() {
		return fmt.Errorf("amount range min %s is negative: %w", f.AmountRange.Min, ErrInvalidArgument)
	}
	for _, t := range f.TransactionTypes {
		if !t.Valid() {
			return fmt.Errorf("unknown transaction type %q: %w", t, ErrInvalidArgument)
		}
	}
	return nil
}

// Equal reports whether f and o select the same transactions for any input
func (f FilterSpec) Equal(o FilterSpec) bool {
	return timePtrEqual(f.DateRange.Start, o.DateRange.Start) &&
		timePtrEqual(f.DateRange.End, o.DateRange.End) &&
		decimalPtrEqual(f.AmountRange.Min, o.AmountRange.Min) &&
		decimalPtrEqual(f.AmountRange.Max, o.AmountRange.Max) &&
		slices.Equal(f.Categories, o.Categories) &&
		slices.Equal(f.Accounts, o.Accounts) &&
		slices.Equal(f.TransactionTypes, o.TransactionTypes) &&
		f.SearchQuery == o.SearchQuery
}

// Clone returns a deep copy of f
func (f FilterSpec) Clone() FilterSpec {
	c := f
	if f.DateRange.Start != nil {
		v := *f.DateRange.Start
		c.DateRange.Start = &v
	}
	if f.DateRange.End != nil {
		v := *f.DateRange.End
		c.DateRange.End = &v
	}
	if f.AmountRange.Min != nil {
		v := *f.AmountRange.Min
		c.AmountRange.Min = &v
	}
	if f.AmountRange.Max != nil {
		v := *f.AmountRange.Max
		c.AmountRange.Max = &v
	}
	c.Categories = slices.Clone(f.Categories)
	c.Accounts = slices.Clone(f.Accounts)
	c.TransactionTypes = slices.Clone(f.TransactionTypes)
	return c
}

// Filter returns the transactions matching every active predicate of spec,
// in input order. txs is not modified.
func Filter(txs []Transaction, spec FilterSpec) []Transaction {
	query := strings.ToLower(spec.SearchQuery)

	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if spec.matches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether t passes every active predicate of spec
func (f FilterSpec) Matches(t Transaction) bool {
	return f.matches(t, strings.ToLower(f.SearchQuery))
}

func (f FilterSpec) matches(t Transaction, query string) bool {
	if f.DateRange.Start != nil && t.Date.Before(*f.DateRange.Start) {
		return false
	}
	if f.DateRange.End != nil && t.Date.After(*f.DateRange.End) {
		return false
	}

	abs := t.Amount.Abs()
	if f.AmountRange.Min != nil && abs.LessThan(*f.AmountRange.Min) {
		return false
	}
	if f.AmountRange.Max != nil && abs.GreaterThan(*f.AmountRange.Max) {
		return false
	}

	if len(f.Categories) > 0 && !slices.Contains(f.Categories, t.Category) {
		return false
	}
	if len(f.Accounts) > 0 && !slices.Contains(f.Accounts, t.Account) {
		return false
	}
	if !slices.Contains(f.TransactionTypes, t.Type) {
		return false
	}

	if query != "" {
		return strings.Contains(strings.ToLower(t.Description), query) ||
			strings.Contains(strings.ToLower(t.Merchant), query) ||
			strings.Contains(strings.ToLower(t.Category), query)
	}
	return true
}

// FilterOptions returns the distinct categories and accounts present in txs,
// each sorted, for populating filter pickers.
func FilterOptions(txs []Transaction) (categories, accounts []string) {
	seenCat := make(map[string]struct{})
	seenAcc := make(map[string]struct{})
	for _, t := range txs {
		if _, ok := seenCat[t.Category]; !ok {
			seenCat[t.Category] = struct{}{}
			categories = append(categories, t.Category)
		}
		if _, ok := seenAcc[t.Account]; !ok {
			seenAcc[t.Account] = struct{}{}
			accounts = append(accounts, t.Account)
		}
	}
	sort.Strings(categories)
	sort.Strings(accounts)
	return categories, accounts
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
