package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/financeflow/financeflow/internal/errors"
)

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(ctx context.Context, item T) bool

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// InMemoryStore implements a generic in-memory store. FailWith makes every
// call return the given error, which is how tests simulate a store outage.
type InMemoryStore[T any] struct {
	mu      sync.RWMutex
	items   map[string]T
	entity  string
	failErr error
}

// NewInMemoryStore creates a new InMemoryStore
func NewInMemoryStore[T any](entity string) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items:  make(map[string]T),
		entity: entity,
	}
}

// FailWith makes subsequent calls fail with err; nil restores the store
func (s *InMemoryStore[T]) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *InMemoryStore[T]) failure() error {
	if s.failErr == nil {
		return nil
	}
	return ierr.WithError(s.failErr).
		WithHint("Ledger store is unavailable").
		Mark(ierr.ErrStoreUnavailable)
}

func (s *InMemoryStore[T]) notFound() error {
	return ierr.NewErrorf("%s not found", s.entity).
		WithHintf("%s not found", s.entity).
		Mark(ierr.ErrNotFound)
}

// Create adds a new item to the store
func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(); err != nil {
		return err
	}
	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("%s already exists", s.entity).
			WithHintf("%s already exists", s.entity).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = item
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	if err := s.failure(); err != nil {
		return zero, err
	}
	if item, exists := s.items[id]; exists {
		return item, nil
	}
	return zero, s.notFound()
}

// Find returns the first item matching filterFn
func (s *InMemoryStore[T]) Find(ctx context.Context, filterFn FilterFunc[T]) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	if err := s.failure(); err != nil {
		return zero, err
	}
	for _, item := range s.items {
		if filterFn(ctx, item) {
			return item, nil
		}
	}
	return zero, s.notFound()
}

// List retrieves items matching filterFn, ordered by sortFn
func (s *InMemoryStore[T]) List(ctx context.Context, filterFn FilterFunc[T], sortFn SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.failure(); err != nil {
		return nil, err
	}

	result := make([]T, 0)
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item) {
			result = append(result, item)
		}
	}

	if sortFn != nil {
		sort.Slice(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}
	return result, nil
}

// Update applies fn to the stored item atomically. fn reports whether the item
// should be replaced; a missing item is not found.
func (s *InMemoryStore[T]) Update(ctx context.Context, id string, fn func(item T) (T, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(); err != nil {
		return false, err
	}
	item, exists := s.items[id]
	if !exists {
		return false, s.notFound()
	}

	next, ok := fn(item)
	if ok {
		s.items[id] = next
	}
	return ok, nil
}

// Delete removes an item; when match is given the item must satisfy it
func (s *InMemoryStore[T]) Delete(ctx context.Context, id string, match FilterFunc[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(); err != nil {
		return err
	}
	item, exists := s.items[id]
	if !exists || (match != nil && !match(ctx, item)) {
		return s.notFound()
	}

	delete(s.items, id)
	return nil
}

// DeleteWhere removes every item matching filterFn and returns how many went
func (s *InMemoryStore[T]) DeleteWhere(ctx context.Context, filterFn FilterFunc[T]) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(); err != nil {
		return 0, err
	}
	var n int64
	for id, item := range s.items {
		if filterFn(ctx, item) {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}

// Clear removes all items from the store
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
	s.failErr = nil
}
