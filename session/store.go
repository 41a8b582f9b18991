package session

import "sync"

// Store is the single durable slot holding the active account id.
// Load returns "" when nothing has been saved yet.
type Store interface {
	Load() (string, error)
	Save(accountID string) error
}

// MemStore is an in-process Store, mainly for tests.
type MemStore struct {
	mu sync.Mutex
	id string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, nil
}

func (s *MemStore) Save(accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = accountID
	return nil
}
