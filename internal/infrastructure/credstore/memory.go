package credstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the credential for the life of the process only.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, nil
}

func (s *MemoryStore) Set(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = credential
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	return nil
}
