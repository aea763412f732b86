package transaction

import (
	"errors"
	"sync"
)

// QueryState is everything a view needs to derive its rows and metrics.
// It is a value; the With methods return modified copies.
type QueryState struct {
	Filter FilterSpec `json:"filter"`
	Sort   SortSpec   `json:"sort"`
	Page   PageSpec   `json:"page"`
}

// DefaultQuery matches everything, newest first, on the first page
func DefaultQuery(pageSize int) QueryState {
	return QueryState{
		Filter: DefaultFilter(),
		Sort:   DefaultSort(),
		Page:   FirstPage(pageSize),
	}
}

// WithFilter replaces the filter and returns to page 1
func (q QueryState) WithFilter(f FilterSpec) QueryState {
	q.Filter = f
	q.Page.Number = 1
	return q
}

// WithSort replaces the sort
func (q QueryState) WithSort(s SortSpec) QueryState {
	q.Sort = s
	return q
}

// WithPage moves to page number
func (q QueryState) WithPage(number int) QueryState {
	q.Page.Number = number
	return q
}

// Validate checks the filter, sort and page specs
func (q QueryState) Validate() error {
	return errors.Join(q.Filter.Validate(), q.Sort.Validate(), q.Page.Validate())
}

// Result is the output of one pipeline run
type Result struct {
	Items      []Transaction `json:"items"`
	TotalPages int           `json:"total_pages"`
	// TotalCount is the size of the filtered set, not the page.
	TotalCount int     `json:"total_count"`
	Metrics    Metrics `json:"metrics"`
}

// Run filters the repository contents, then sorts and pages the rows and
// aggregates metrics over the whole filtered set.
func Run(repo Repository, q QueryState) Result {
	return evaluate(Filter(repo.List(), q.Filter), nil, q)
}

// RunStrict is Run that rejects malformed specs with ErrInvalidArgument
func RunStrict(repo Repository, q QueryState) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}
	return Run(repo, q), nil
}

func evaluate(filtered []Transaction, metrics *Metrics, q QueryState) Result {
	page := Paginate(Sort(filtered, q.Sort), q.Page)
	r := Result{
		Items:      page.Items,
		TotalPages: page.TotalPages,
		TotalCount: len(filtered),
	}
	if metrics != nil {
		r.Metrics = metrics.Clone()
	} else {
		r.Metrics = Aggregate(filtered)
	}
	return r
}

type revisioner interface {
	Revision() uint64
}

// Memo runs the pipeline while reusing the filtered set and metrics as long
// as the filter and the repository revision are unchanged. Repositories
// without a Revision method are assumed never to change.
type Memo struct {
	repo Repository

	mu       sync.Mutex
	valid    bool
	filter   FilterSpec
	revision uint64
	filtered []Transaction
	metrics  Metrics
	filters  int
}

// NewMemo creates a Memo over repo
func NewMemo(repo Repository) *Memo {
	return &Memo{repo: repo}
}

// Run evaluates q, re-filtering only when needed
func (m *Memo) Run(q QueryState) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rev uint64
	if r, ok := m.repo.(revisioner); ok {
		rev = r.Revision()
	}
	if !m.valid || rev != m.revision || !m.filter.Equal(q.Filter) {
		m.filtered = Filter(m.repo.List(), q.Filter)
		m.metrics = Aggregate(m.filtered)
		m.filter = q.Filter.Clone()
		m.revision = rev
		m.valid = true
		m.filters++
	}
	return evaluate(m.filtered, &m.metrics, q)
}

// Filters returns how many times the filter stage has run
func (m *Memo) Filters() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filters
}
