package arena

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// Kind identifies an allocation strategy.
type Kind uint8

const (
	// KindHeap allocates every request from the Go heap without a budget.
	KindHeap Kind = iota
	// KindFixed serves requests from one pre-reserved block of Capacity slots.
	KindFixed
)

func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindFixed:
		return "fixed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Strategy describes how to build an allocator independently of its element
// type. Every allocator reports the Strategy it was built from, which is what
// lets Rebind produce a sibling allocator for another type.
type Strategy struct {
	kind         Kind
	capacity     int
	locked       bool
	name         string
	logger       log.Logger
	metrics      *Metrics
	reserveLimit int64
}

// Option configures a Strategy.
type Option func(*Strategy)

// WithLogger routes allocator diagnostics to l. Per-call messages are logged
// at debug level.
func WithLogger(l log.Logger) Option {
	return func(s *Strategy) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics reports allocator activity to m.
func WithMetrics(m *Metrics) Option {
	return func(s *Strategy) { s.metrics = m }
}

// WithReserveLimit caps the number of bytes a single arena may reserve.
// Zero means no limit.
func WithReserveLimit(bytes int64) Option {
	return func(s *Strategy) { s.reserveLimit = bytes }
}

// WithName sets the name used in logs and metric labels.
func WithName(name string) Option {
	return func(s *Strategy) { s.name = name }
}

// WithLocking makes fixed-capacity allocators built from the strategy safe
// for concurrent use.
func WithLocking() Option {
	return func(s *Strategy) { s.locked = true }
}

// Fixed returns a strategy for arenas of capacity slots each.
func Fixed(capacity int, opts ...Option) Strategy {
	return newStrategy(KindFixed, capacity, opts)
}

// HeapStrategy returns a strategy backed by the Go heap.
func HeapStrategy(opts ...Option) Strategy {
	return newStrategy(KindHeap, 0, opts)
}

func newStrategy(kind Kind, capacity int, opts []Option) Strategy {
	s := Strategy{
		kind:     kind,
		capacity: capacity,
		logger:   log.NewNopLogger(),
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// With returns a copy of s with opts applied.
func (s Strategy) With(opts ...Option) Strategy {
	for _, o := range opts {
		o(&s)
	}
	if s.logger == nil {
		s.logger = log.NewNopLogger()
	}
	return s
}

// Kind returns the strategy kind.
func (s Strategy) Kind() Kind { return s.kind }

// Capacity returns the slot budget of fixed strategies, 0 for the heap.
func (s Strategy) Capacity() int { return s.capacity }

// Locked reports whether allocators built from s are goroutine-safe.
func (s Strategy) Locked() bool { return s.locked }

// Name returns the configured name, if any.
func (s Strategy) Name() string { return s.name }

// Compatible reports whether allocators built from s and o are interchangeable:
// same kind and same capacity. Per-instance state is not considered.
func (s Strategy) Compatible(o Strategy) bool {
	return s.kind == o.kind && s.capacity == o.capacity
}

// Make builds an allocator for T from s.
func Make[T any](s Strategy) (Allocator[T], error) {
	if s.logger == nil {
		s.logger = log.NewNopLogger()
	}
	switch s.kind {
	case KindHeap:
		return newHeap[T](s), nil
	case KindFixed:
		a, err := newArena[T](s)
		if err != nil {
			return nil, err
		}
		if s.locked {
			return &Safe[T]{a: a}, nil
		}
		return a, nil
	default:
		return nil, errors.Errorf("arena: unknown strategy %s", s.kind)
	}
}
