package transaction

import "fmt"

// DefaultPageSize is the number of rows shown per page
const DefaultPageSize = 20

// PageSpec selects one page of a result. Number is 1-based.
type PageSpec struct {
	Number int `json:"number"`
	Size   int `json:"size"`
}

// FirstPage returns page 1 of the given size
func FirstPage(size int) PageSpec {
	return PageSpec{Number: 1, Size: size}
}

// Validate rejects page numbers below 1 and non-positive sizes
func (p PageSpec) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("page size %d: %w", p.Size, ErrInvalidArgument)
	}
	if p.Number < 1 {
		return fmt.Errorf("page number %d: %w", p.Number, ErrInvalidArgument)
	}
	return nil
}

// Page is one slice of an ordered result
type Page struct {
	Items      []Transaction `json:"items"`
	TotalPages int           `json:"total_pages"`
}

// Paginate slices txs to [(Number-1)*Size, Number*Size). Out of range
// requests give an empty page rather than an error; TotalPages is at least 1.
func Paginate(txs []Transaction, spec PageSpec) Page {
	pages := TotalPages(len(txs), spec.Size)
	// compare against pages before computing offsets; the product may overflow
	if spec.Size <= 0 || spec.Number < 1 || len(txs) == 0 || spec.Number > pages {
		return Page{Items: []Transaction{}, TotalPages: pages}
	}
	start := (spec.Number - 1) * spec.Size
	end := start + min(spec.Size, len(txs)-start)

	items := make([]Transaction, end-start)
	copy(items, txs[start:end])
	return Page{Items: items, TotalPages: pages}
}

// PaginateStrict is Paginate with spec validation
func PaginateStrict(txs []Transaction, spec PageSpec) (Page, error) {
	if err := spec.Validate(); err != nil {
		return Page{}, err
	}
	return Paginate(txs, spec), nil
}

// TotalPages returns ceil(count/size), never less than 1
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	pages := count / size
	if count%size != 0 {
		pages++
	}
	return pages
}

// ClampPage forces number into [1, totalPages]
func ClampPage(number, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return max(1, min(number, totalPages))
}

// Window returns the 1-based positions of the first and last row of the
// requested page within total rows. Both are 0 when the page is empty.
func Window(spec PageSpec, total int) (from, to int) {
	if spec.Size <= 0 || spec.Number < 1 || total <= 0 || spec.Number > TotalPages(total, spec.Size) {
		return 0, 0
	}
	start := (spec.Number - 1) * spec.Size
	return start + 1, start + min(spec.Size, total-start)
}
