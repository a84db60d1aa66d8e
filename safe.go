package arena

import (
	"slices"
	"sync"
)

// Safe is a mutex-protected wrapper around Arena for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
type Safe[T any] struct {
	mu sync.Mutex
	a  *Arena[T]
}

// NewSafe reserves a thread-safe arena of capacity slots of T.
func NewSafe[T any](capacity int, opts ...Option) (*Safe[T], error) {
	a, err := newArena[T](Fixed(capacity, append(slices.Clone(opts), WithLocking())...))
	if err != nil {
		return nil, err
	}
	return &Safe[T]{a: a}, nil
}

// Allocate thread-safely returns n contiguous slots.
func (s *Safe[T]) Allocate(n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(n)
}

// Deallocate thread-safely records the release of p.
func (s *Safe[T]) Deallocate(p []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Deallocate(p)
}

// Construct thread-safely initializes the slot at p with v.
func (s *Safe[T]) Construct(p *T, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Construct(p, v)
}

// Destroy thread-safely finalizes the value at p.
func (s *Safe[T]) Destroy(p *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Destroy(p)
}

// MaxSize returns the slot capacity.
func (s *Safe[T]) MaxSize() int {
	return s.a.MaxSize()
}

// Strategy returns the strategy the arena was built from.
func (s *Safe[T]) Strategy() Strategy {
	return s.a.Strategy()
}

// Release thread-safely drops the backing block.
func (s *Safe[T]) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}
