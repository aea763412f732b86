package transaction

import (
	"fmt"
	"slices"
	"strings"
)

// SortField names a sortable column
type SortField string

const (
	SortByDate        SortField = "date"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByAccount     SortField = "account"
	SortByAmount      SortField = "amount"
)

// Direction is the sort order
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec selects the ordering of a result
type SortSpec struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSort orders newest first
func DefaultSort() SortSpec {
	return SortSpec{Field: SortByDate, Direction: Desc}
}

// String returns s as "field:direction"
func (s SortSpec) String() string {
	return string(s.Field) + ":" + string(s.Direction)
}

// Toggle returns the ordering after a click on field: the active field flips
// from desc to asc, anything else starts at desc.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field && s.Direction == Desc {
		return SortSpec{Field: field, Direction: Asc}
	}
	return SortSpec{Field: field, Direction: Desc}
}

// Validate rejects unknown fields and directions
func (s SortSpec) Validate() error {
	if _, err := ParseSortField(string(s.Field)); err != nil {
		return err
	}
	if _, err := ParseDirection(string(s.Direction)); err != nil {
		return err
	}
	return nil
}

// ParseSortField converts a column name to a SortField
func ParseSortField(name string) (SortField, error) {
	switch f := SortField(strings.ToLower(name)); f {
	case SortByDate, SortByDescription, SortByCategory, SortByAccount, SortByAmount:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q: %w", name, ErrInvalidArgument)
}

// ParseDirection converts "asc" or "desc" to a Direction
func ParseDirection(name string) (Direction, error) {
	switch d := Direction(strings.ToLower(name)); d {
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q: %w", name, ErrInvalidArgument)
}

// Sort returns a stably ordered copy of txs. An unknown field keeps input order.
func Sort(txs []Transaction, spec SortSpec) []Transaction {
	out := slices.Clone(txs)
	cmp := comparator(spec.Field)
	if cmp == nil {
		return out
	}
	if spec.Direction == Desc {
		slices.SortStableFunc(out, func(a, b Transaction) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func comparator(field SortField) func(a, b Transaction) int {
	switch field {
	case SortByDate:
		return func(a, b Transaction) int { return a.Date.Compare(b.Date) }
	case SortByAmount:
		return func(a, b Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortByDescription:
		return textComparator(func(t Transaction) string { return t.Description })
	case SortByCategory:
		return textComparator(func(t Transaction) string { return t.Category })
	case SortByAccount:
		return textComparator(func(t Transaction) string { return t.Account })
	}
	return nil
}

func textComparator(key func(Transaction) string) func(a, b Transaction) int {
	return func(a, b Transaction) int {
		return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}
