package transaction

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func many(n int) []Transaction {
	out := make([]Transaction, n)
	for i := range out {
		out[i] = tx(fmt.Sprint(i+1), "2024-01-01", "row", "c", "-1", "acc", TypeExpense, "m", false)
	}
	return out
}

func TestPaginate_ReconstructsInput(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20, 21, 45, 60} {
		txs := many(n)
		first := Paginate(txs, PageSpec{Number: 1, Size: 20})

		var all []Transaction
		for p := 1; p <= first.TotalPages; p++ {
			all = append(all, Paginate(txs, PageSpec{Number: p, Size: 20}).Items...)
		}

		assert.Equal(t, ids(txs), ids(all), "n=%d", n)
	}
}

func TestPaginate_TotalPages(t *testing.T) {
	assert.Equal(t, 1, Paginate(nil, FirstPage(20)).TotalPages)
	assert.Equal(t, 1, Paginate(many(20), FirstPage(20)).TotalPages)
	assert.Equal(t, 2, Paginate(many(21), FirstPage(20)).TotalPages)
	assert.Equal(t, 3, Paginate(many(45), FirstPage(20)).TotalPages)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	page := Paginate(many(45), PageSpec{Number: 3, Size: 20})

	require.Len(t, page.Items, 5)
	assert.Equal(t, "41", page.Items[0].ID)
	assert.Equal(t, "45", page.Items[4].ID)
}

func TestPaginate_OutOfRangeIsEmpty(t *testing.T) {
	txs := many(15)

	for _, spec := range []PageSpec{{Number: 2, Size: 20}, {Number: 0, Size: 20}, {Number: -3, Size: 20}, {Number: 1, Size: 0}, {Number: 1, Size: -5}} {
		page := Paginate(txs, spec)
		assert.Empty(t, page.Items, "%+v", spec)
		assert.NotNil(t, page.Items)
		assert.GreaterOrEqual(t, page.TotalPages, 1)
	}
}

func TestPaginate_ItemsAreACopy(t *testing.T) {
	txs := many(3)
	page := Paginate(txs, FirstPage(2))
	page.Items[0].Category = "changed"

	assert.Equal(t, "c", txs[0].Category)
}

func TestPaginateStrict(t *testing.T) {
	_, err := PaginateStrict(many(3), PageSpec{Number: 1, Size: -1})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = PaginateStrict(many(3), PageSpec{Number: 0, Size: 10})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	page, err := PaginateStrict(many(3), PageSpec{Number: 5, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(4, 0))
}

func TestWindow(t *testing.T) {
	from, to := Window(PageSpec{Number: 1, Size: 20}, 15)
	assert.Equal(t, 1, from)
	assert.Equal(t, 15, to)

	from, to = Window(PageSpec{Number: 2, Size: 20}, 45)
	assert.Equal(t, 21, from)
	assert.Equal(t, 40, to)

	from, to = Window(PageSpec{Number: 2, Size: 20}, 15)
	assert.Zero(t, from)
	assert.Zero(t, to)
}

func TestPaginate_HugePageNumbers(t *testing.T) {
	txs := many(3)

	for _, spec := range []PageSpec{
		{Number: 1<<62 + 1, Size: 3},
		{Number: 1<<62 + 1, Size: 4},
		{Number: math.MaxInt, Size: math.MaxInt},
		{Number: 2, Size: math.MaxInt},
	} {
		var page Page
		require.NotPanics(t, func() { page = Paginate(txs, spec) }, "%+v", spec)
		assert.Empty(t, page.Items, "%+v", spec)
		assert.Equal(t, 1, page.TotalPages, "%+v", spec)

		from, to := Window(spec, len(txs))
		assert.Zero(t, from, "%+v", spec)
		assert.Zero(t, to, "%+v", spec)
	}

	page := Paginate(txs, PageSpec{Number: 1, Size: math.MaxInt})
	assert.Equal(t, ids(txs), ids(page.Items))
	from, to := Window(PageSpec{Number: 1, Size: math.MaxInt}, len(txs))
	assert.Equal(t, 1, from)
	assert.Equal(t, 3, to)
}

func TestTotalPages_HugeSize(t *testing.T) {
	assert.Equal(t, 1, TotalPages(5, math.MaxInt))
	assert.Equal(t, 1, TotalPages(math.MaxInt, math.MaxInt))
	assert.Equal(t, 2, TotalPages(math.MaxInt, math.MaxInt-1))
	assert.Equal(t, 5, ClampPage(math.MaxInt, TotalPages(45, 10)))
}
