package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/example/transaction-analyzer/internal/source"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

// filterFlags mirrors the dashboard's filter panel
type filterFlags struct {
	from       string
	to         string
	min        string
	max        string
	categories []string
	accounts   []string
	types      []string
	search     string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "earliest date, inclusive (YYYY-MM-DD or RFC3339)")
	fs.StringVar(&f.to, "to", "", "latest date, inclusive; a bare date covers the whole day")
	fs.StringVar(&f.min, "min", "", "minimum absolute amount")
	fs.StringVar(&f.max, "max", "", "maximum absolute amount")
	fs.StringSliceVar(&f.categories, "category", nil, "categories to include (repeatable)")
	fs.StringSliceVar(&f.accounts, "account", nil, "accounts to include (repeatable)")
	fs.StringSliceVar(&f.types, "type", typeNames(transaction.AllTypes()), "transaction types to include")
	fs.StringVar(&f.search, "search", "", "case-insensitive text in description, merchant or category")
}

func (f *filterFlags) spec() (transaction.FilterSpec, error) {
	spec := transaction.FilterSpec{
		Categories:  f.categories,
		Accounts:    f.accounts,
		SearchQuery: f.search,
	}

	if f.from != "" {
		d, err := source.ParseDate(f.from)
		if err != nil {
			return spec, fmt.Errorf("--from: %w", err)
		}
		spec.DateRange.Start = &d
	}
	if f.to != "" {
		d, err := source.ParseDate(f.to)
		if err != nil {
			return spec, fmt.Errorf("--to: %w", err)
		}
		if _, err := time.Parse(time.DateOnly, f.to); err == nil {
			d = d.Add(24*time.Hour - time.Nanosecond)
		}
		spec.DateRange.End = &d
	}

	var err error
	if spec.AmountRange.Min, err = parseAmount("--min", f.min); err != nil {
		return spec, err
	}
	if spec.AmountRange.Max, err = parseAmount("--max", f.max); err != nil {
		return spec, err
	}

	spec.TransactionTypes = make([]transaction.Type, 0, len(f.types))
	for _, name := range f.types {
		spec.TransactionTypes = append(spec.TransactionTypes, transaction.Type(strings.ToLower(strings.TrimSpace(name))))
	}
	return spec, nil
}

func parseAmount(flag, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid amount %q", flag, s)
	}
	return &d, nil
}

func typeNames(types []transaction.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// viewFlags selects ordering and paging
type viewFlags struct {
	sort     string
	order    string
	page     int
	pageSize int
}

func (v *viewFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&v.sort, "sort", "", "sort column: date, description, category, account, amount")
	fs.StringVar(&v.order, "order", "", "sort direction: asc or desc")
	fs.IntVar(&v.page, "page", 1, "page number, 1-based")
	fs.IntVar(&v.pageSize, "page-size", 0, "rows per page (default from config)")
}

// query builds the QueryState from flags, falling back to configured
// defaults. Unknown sort names are kept as given so strict mode can reject
// them; otherwise they leave rows in filter order.
func (a *app) query(f *filterFlags, v *viewFlags) (transaction.QueryState, error) {
	spec, err := f.spec()
	if err != nil {
		return transaction.QueryState{}, err
	}

	sortSpec, err := a.cfg.DefaultSort()
	if err != nil {
		return transaction.QueryState{}, err
	}
	if v != nil {
		if v.sort != "" {
			sortSpec.Field = transaction.SortField(v.sort)
			if field, err := transaction.ParseSortField(v.sort); err == nil {
				sortSpec.Field = field
			}
		}
		if v.order != "" {
			sortSpec.Direction = transaction.Direction(v.order)
			if dir, err := transaction.ParseDirection(v.order); err == nil {
				sortSpec.Direction = dir
			}
		}
	}

	size := a.cfg.PageSize
	page := 1
	if v != nil {
		if v.pageSize != 0 {
			size = v.pageSize
		}
		page = v.page
	}

	return transaction.QueryState{
		Filter: spec,
		Sort:   sortSpec,
		Page:   transaction.PageSpec{Number: page, Size: size},
	}, nil
}
