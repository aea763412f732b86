package transaction

import "sync"

// Repository supplies the canonical transaction collection
type Repository interface {
	List() []Transaction
}

// Store is the in-memory source of truth for a session.
// List returns the current slice; callers must treat it as read-only.
type Store struct {
	mu       sync.RWMutex
	txs      []Transaction
	revision uint64
}

// NewStore creates a store holding txs
func NewStore(txs []Transaction) *Store {
	return &Store{txs: txs}
}

// List returns the current transactions
func (s *Store) List() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.txs
}

// Len returns the number of stored transactions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txs)
}

// Revision increases every time the stored collection is replaced
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Recategorize replaces the category of every transaction in ids and
// returns how many records changed. The slice previously returned by List
// is left untouched.
func (s *Store) Recategorize(ids []string, category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := UpdateCategory(s.txs, ids, category)
	changed := 0
	for i := range next {
		if next[i].Category != s.txs[i].Category {
			changed++
		}
	}
	s.txs = next
	s.revision++
	return changed
}
