package flags

import (
	"context"
	"sync"
)

// MemoryStore keeps flags for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[Flag]bool
}

func NewMemoryStore(initial Snapshot) *MemoryStore {
	return &MemoryStore{
		values: map[Flag]bool{
			Photos: initial.AllowPhotos,
			Quiz:   initial.AllowQuiz,
		},
	}
}

func (s *MemoryStore) Get(_ context.Context, f Flag) (bool, error) {
	if !f.Valid() {
		return false, errUnknown(f)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[f], nil
}

func (s *MemoryStore) Set(_ context.Context, f Flag, value bool) error {
	if !f.Valid() {
		return errUnknown(f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[f] = value
	return nil
}
