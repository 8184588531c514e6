package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.ListingStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Listing
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Listing),
	}
}

// Save persists a copy of the listing in memory.
func (s *Store) Save(ctx context.Context, key string, listing *domain.Listing) error {
	copied := clone(listing)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves a copy of the listing so callers cannot mutate the store.
func (s *Store) Load(ctx context.Context, key string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.data[key]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return clone(listing), nil
}

// Delete removes the listing.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func clone(l *domain.Listing) *domain.Listing {
	cp := *l
	cp.Strings = slices.Clone(l.Strings)
	return &cp
}
