package arena

import (
	"fmt"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Heap allocates every request with make. It has no budget and Deallocate
// leaves reclamation to the garbage collector.
type Heap[T any] struct {
	strategy Strategy
	logger   log.Logger
	inst     *instruments
	counts   counters
	used     int // slots handed out over the allocator's lifetime
}

// NewHeap returns a heap-backed allocator for T.
func NewHeap[T any](opts ...Option) *Heap[T] {
	return newHeap[T](HeapStrategy(opts...))
}

func newHeap[T any](s Strategy) *Heap[T] {
	typ := typeName[T]()
	return &Heap[T]{
		strategy: s,
		logger:   log.With(s.logger, "allocator", labelName(s, typ)),
		inst:     s.metrics.instrumentsFor(labelName(s, typ), typ),
	}
}

// Allocate returns n fresh zeroed slots.
func (h *Heap[T]) Allocate(n int) ([]T, error) {
	switch {
	case n == 0:
		return nil, nil
	case n < 0:
		return nil, errors.Wrapf(ErrInvalidSize, "allocate %d slots", n)
	}
	h.used += n
	h.counts.allocations++
	h.inst.allocated(n)
	level.Debug(h.logger).Log("msg", "allocated", "n", n, "used", h.used)
	return make([]T, n), nil
}

// Deallocate records the call; the garbage collector reclaims p.
func (h *Heap[T]) Deallocate(p []T) {
	h.counts.deallocations++
	h.inst.deallocated()
	level.Debug(h.logger).Log("msg", "deallocate called, left to the garbage collector", "n", len(p))
}

// Construct initializes the slot at p with v.
func (h *Heap[T]) Construct(p *T, v T) {
	construct(p, v)
	h.counts.constructions++
	h.inst.constructed()
	level.Debug(h.logger).Log("msg", "constructing object", "addr", fmt.Sprintf("%p", p))
}

// Destroy finalizes the value at p and zeroes it.
func (h *Heap[T]) Destroy(p *T) {
	level.Debug(h.logger).Log("msg", "destroying object", "addr", fmt.Sprintf("%p", p))
	destroy(p)
	h.counts.destructions++
	h.inst.destroyed()
}

// MaxSize returns the largest slice length of T the runtime could address.
func (h *Heap[T]) MaxSize() int {
	size := slotSize[T]()
	if size == 0 {
		return math.MaxInt
	}
	return int(uintptr(math.MaxInt) / size)
}

// Used returns the number of slots handed out so far.
func (h *Heap[T]) Used() int {
	return h.used
}

// Strategy returns the heap strategy h was built from.
func (h *Heap[T]) Strategy() Strategy {
	return h.strategy
}
