package storage

import (
	"sync"

	"github.com/S4ntifdz/new-pwa/models"
)

// MemoryStore keeps session and cart in process memory. Used by tests and as
// a fallback when the sqlite file cannot be opened — the engine stays usable
// for the current run even when durability is lost.
type MemoryStore struct {
	mu      sync.Mutex
	session *models.SessionRecord
	cart    *models.CartSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadSession() (*models.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	rec := *s.session
	return &rec, nil
}

func (s *MemoryStore) SaveSession(rec models.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &rec
	return nil
}

func (s *MemoryStore) DeleteSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

func (s *MemoryStore) LoadCart() (*models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return nil, nil
	}
	snap := *s.cart
	return &snap, nil
}

func (s *MemoryStore) SaveCart(snap models.CartSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = &snap
	return nil
}

func (s *MemoryStore) DeleteCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	return nil
}
