// Package arena implements a fixed-capacity bump allocator for typed slots.
// Typical usage: size one arena per container, let the container rebind it to
// its node type, and drop the whole block with Release when the container is done.
package arena

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Arena hands out slots from a single block reserved at construction.
// Slots are never reused: Deallocate only records the call. Not goroutine-safe;
// use Safe for concurrent access.
type Arena[T any] struct {
	storage  []T // backing block, len == capacity
	used     int // bump pointer, in slots
	released bool

	strategy Strategy
	logger   log.Logger
	inst     *instruments
	counts   counters
}

// New reserves an arena of capacity slots of T.
func New[T any](capacity int, opts ...Option) (*Arena[T], error) {
	return newArena[T](Fixed(capacity, opts...))
}

func newArena[T any](s Strategy) (*Arena[T], error) {
	s.kind = KindFixed
	typ := typeName[T]()
	logger := log.With(s.logger, "allocator", labelName(s, typ))

	storage, err := reserve[T](s.capacity, s.reserveLimit)
	if err != nil {
		level.Error(logger).Log("msg", "failed to reserve arena", "capacity", s.capacity, "err", err)
		return nil, err
	}
	a := &Arena[T]{
		storage:  storage,
		strategy: s,
		logger:   logger,
		inst:     s.metrics.instrumentsFor(labelName(s, typ), typ),
	}
	a.inst.reserved(s.capacity)
	level.Debug(logger).Log("msg", "reserved arena", "slots", s.capacity, "size", humanize.IBytes(uint64(a.reservedBytes())))
	return a, nil
}

// reserve allocates the backing block, converting every way the runtime can
// refuse it into ErrReserve.
func reserve[T any](capacity int, limit int64) (buf []T, err error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrReserve, "negative capacity %d", capacity)
	}
	size := int64(slotSize[T]())
	if size > 0 && int64(capacity) > math.MaxInt64/size {
		return nil, errors.Wrapf(ErrReserve, "%d slots of %d bytes overflows", capacity, size)
	}
	if total := size * int64(capacity); limit > 0 && total > limit {
		return nil, errors.Wrapf(ErrReserve, "%s exceeds reserve limit of %s",
			humanize.IBytes(uint64(total)), humanize.IBytes(uint64(limit)))
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(ErrReserve, "%v", r)
		}
	}()
	return make([]T, capacity), nil
}

// Allocate returns n contiguous slots starting at the bump pointer and
// advances it. A zero-length request returns nil without side effects.
// Requests that do not fit fail with ErrCapacityExhausted and leave the
// arena unchanged.
func (a *Arena[T]) Allocate(n int) ([]T, error) {
	switch {
	case n == 0:
		return nil, nil
	case n < 0:
		return nil, errors.Wrapf(ErrInvalidSize, "allocate %d slots", n)
	case a.released:
		return nil, ErrReleased
	}

	capacity := len(a.storage)
	if n > capacity-a.used {
		a.counts.exhausted++
		a.inst.exhausted()
		level.Warn(a.logger).Log("msg", "arena capacity exhausted", "requested", n, "used", a.used, "capacity", capacity)
		return nil, errors.Wrapf(ErrCapacityExhausted, "requested %d slots with %d/%d in use", n, a.used, capacity)
	}

	start := a.used
	a.used += n
	a.counts.allocations++
	a.inst.allocated(n)
	level.Debug(a.logger).Log("msg", "allocated", "n", n, "used", a.used, "capacity", capacity)
	return a.storage[start:a.used:a.used], nil
}

// Deallocate records the release of p. Storage is not reclaimed and the bump
// pointer does not move; the block is freed as a whole by Release.
func (a *Arena[T]) Deallocate(p []T) {
	a.counts.deallocations++
	a.inst.deallocated()
	level.Debug(a.logger).Log("msg", "deallocate called, no action taken", "n", len(p))
}

// Construct initializes the slot at p with v.
func (a *Arena[T]) Construct(p *T, v T) {
	construct(p, v)
	a.counts.constructions++
	a.inst.constructed()
	level.Debug(a.logger).Log("msg", "constructing object", "addr", fmt.Sprintf("%p", p))
}

// Destroy finalizes the value at p and zeroes the slot. The slot stays
// allocated.
func (a *Arena[T]) Destroy(p *T) {
	level.Debug(a.logger).Log("msg", "destroying object", "addr", fmt.Sprintf("%p", p))
	destroy(p)
	a.counts.destructions++
	a.inst.destroyed()
}

// MaxSize returns the slot capacity of the arena, not the remaining space.
func (a *Arena[T]) MaxSize() int {
	return a.strategy.capacity
}

// Strategy returns the strategy the arena was built from.
func (a *Arena[T]) Strategy() Strategy {
	return a.strategy
}

// Equal reports whether a and o are interchangeable. Arenas of the same
// element type and capacity are always equal, however many slots each used.
func (a *Arena[T]) Equal(o *Arena[T]) bool {
	return a.strategy.Compatible(o.strategy)
}

// Used returns the number of slots handed out so far.
func (a *Arena[T]) Used() int {
	return a.used
}

// Remaining returns the number of slots still available.
func (a *Arena[T]) Remaining() int {
	if a.released {
		return 0
	}
	return len(a.storage) - a.used
}

// Release drops the backing block whether or not the values in it were
// destroyed. Any subsequent allocation fails with ErrReleased.
func (a *Arena[T]) Release() {
	if a.released {
		return
	}
	a.inst.released(a.used, len(a.storage))
	a.storage = nil
	a.released = true
	level.Debug(a.logger).Log("msg", "released arena", "used", a.used, "capacity", a.strategy.capacity)
}

func (a *Arena[T]) reservedBytes() int {
	return len(a.storage) * int(slotSize[T]())
}

func slotSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}

func labelName(s Strategy, typ string) string {
	if s.name != "" {
		return s.name
	}
	return typ
}
