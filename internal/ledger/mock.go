package ledger

import "sync"

// MockStore is an in-memory duplicate store for tests. It honors the same
// first-writer-wins contract as the bbolt ledger and can be primed to fail
// so callers' fail-closed handling can be exercised.
type MockStore struct {
	mu       sync.Mutex
	admitted map[string]bool

	// Err, when set, is returned by Admit instead of a decision.
	Err error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{admitted: make(map[string]bool)}
}

// Admit reserves the id in memory; exactly one caller gets true.
func (m *MockStore) Admit(txID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if m.admitted[txID] {
		return false, nil
	}
	m.admitted[txID] = true
	return true, nil
}

// Admitted reports whether an id has been reserved.
func (m *MockStore) Admitted(txID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admitted[txID]
}
