package transaction

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort_ByField(t *testing.T) {
	tests := []struct {
		spec SortSpec
		want []string
	}{
		{SortSpec{SortByDate, Asc}, []string{"15", "14", "13", "12", "11", "10", "9", "8", "7", "6", "5", "4", "3", "2", "1"}},
		{SortSpec{SortByDate, Desc}, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15"}},
		{SortSpec{SortByAmount, Asc}, []string{"5", "1", "9", "7", "13", "10", "11", "4", "14", "3", "6", "12", "8", "15", "2"}},
		{SortSpec{SortByAccount, Asc}, []string{"1", "2", "4", "5", "8", "9", "11", "13", "15", "3", "6", "7", "10", "14", "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(dashboard(), tt.spec)))
		})
	}
}

func TestSort_TextIsCaseInsensitive(t *testing.T) {
	txs := []Transaction{
		tx("a", "2024-01-01", "banana", "x", "1", "acc", TypeExpense, "m", false),
		tx("b", "2024-01-01", "Apple", "x", "1", "acc", TypeExpense, "m", false),
		tx("c", "2024-01-01", "cherry", "x", "1", "acc", TypeExpense, "m", false),
	}

	assert.Equal(t, []string{"b", "a", "c"}, ids(Sort(txs, SortSpec{SortByDescription, Asc})))
	assert.Equal(t, []string{"c", "a", "b"}, ids(Sort(txs, SortSpec{SortByDescription, Desc})))
}

func TestSort_StableOnTiesInBothDirections(t *testing.T) {
	txs := dashboard()

	asc := Sort(txs, SortSpec{SortByCategory, Asc})
	desc := Sort(txs, SortSpec{SortByCategory, Desc})

	// "Food & Dining", "Transportation" and "Utilities" each appear twice.
	assert.Equal(t, []string{"6", "10"}, idsIn(asc, "Food & Dining"))
	assert.Equal(t, []string{"6", "10"}, idsIn(desc, "Food & Dining"))
	assert.Equal(t, []string{"9", "13"}, idsIn(desc, "Utilities"))
	assert.Equal(t, "Bonus", asc[0].Category)
	assert.Equal(t, "Utilities", desc[0].Category)
}

func TestSort_Idempotent(t *testing.T) {
	for _, field := range []SortField{SortByDate, SortByDescription, SortByCategory, SortByAccount, SortByAmount} {
		for _, dir := range []Direction{Asc, Desc} {
			spec := SortSpec{field, dir}
			once := Sort(dashboard(), spec)
			assert.Equal(t, ids(once), ids(Sort(once, spec)), spec.String())
		}
	}
}

func TestSort_ReverseWithoutTies(t *testing.T) {
	for _, field := range []SortField{SortByDate, SortByDescription} {
		asc := ids(Sort(dashboard(), SortSpec{field, Asc}))
		desc := ids(Sort(dashboard(), SortSpec{field, Desc}))
		slices.Reverse(desc)
		assert.Equal(t, asc, desc, field)
	}
}

func TestSort_PureAndUnknownField(t *testing.T) {
	txs := dashboard()
	before := ids(txs)

	_ = Sort(txs, SortSpec{SortByAmount, Asc})
	assert.Equal(t, before, ids(txs))

	assert.Equal(t, before, ids(Sort(txs, SortSpec{Field: "merchant", Direction: Asc})))
	assert.Empty(t, Sort(nil, DefaultSort()))
}

func TestSortSpec_Toggle(t *testing.T) {
	s := DefaultSort()

	s = s.Toggle(SortByDate)
	assert.Equal(t, SortSpec{SortByDate, Asc}, s)

	s = s.Toggle(SortByDate)
	assert.Equal(t, SortSpec{SortByDate, Desc}, s)

	s = s.Toggle(SortByAmount)
	assert.Equal(t, SortSpec{SortByAmount, Desc}, s)
}

func TestParseSortFieldAndDirection(t *testing.T) {
	f, err := ParseSortField("Amount")
	require.NoError(t, err)
	assert.Equal(t, SortByAmount, f)

	d, err := ParseDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)

	_, err = ParseSortField("merchant")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = ParseDirection("sideways")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.NoError(t, DefaultSort().Validate())
	assert.Error(t, SortSpec{Field: SortByDate}.Validate())
}

func idsIn(txs []Transaction, category string) []string {
	var out []string
	for _, t := range txs {
		if t.Category == category {
			out = append(out, t.ID)
		}
	}
	return out
}
