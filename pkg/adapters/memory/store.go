package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/riggen/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.OutputSequence
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.OutputSequence),
	}
}

// Save keeps a copy of the sequence in memory.
func (s *Store) Save(ctx context.Context, name string, seq domain.OutputSequence) error {
	copied := slices.Clone(seq)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves a copy of the sequence so callers cannot mutate the stored slice.
func (s *Store) Load(ctx context.Context, name string) (domain.OutputSequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.data[name]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return slices.Clone(seq), nil
}

// Delete removes the sequence.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	return names, nil
}
