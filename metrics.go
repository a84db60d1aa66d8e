package arena

// counters holds bookkeeping for a single allocator.
type counters struct {
	allocations   uint64
	deallocations uint64
	constructions uint64
	destructions  uint64
	exhausted     uint64
}

// SizeInUse returns the number of bytes handed out by the arena.
func (a *Arena[T]) SizeInUse() int {
	return a.used * int(slotSize[T]())
}

// Capacity returns the number of bytes reserved by the arena, 0 after Release.
func (a *Arena[T]) Capacity() int {
	return a.reservedBytes()
}

// Utilization returns the ratio of used slots to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena[T]) Utilization() float64 {
	if a.released || len(a.storage) == 0 {
		return 0
	}
	return float64(a.used) / float64(len(a.storage))
}

// Stats returns a snapshot of arena statistics.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		Used:          a.used,
		Slots:         a.strategy.capacity,
		SlotSize:      int(slotSize[T]()),
		SizeInUse:     a.SizeInUse(),
		Reserved:      a.Capacity(),
		Utilization:   a.Utilization(),
		Released:      a.released,
		Allocations:   a.counts.allocations,
		Deallocations: a.counts.deallocations,
		Constructions: a.counts.constructions,
		Destructions:  a.counts.destructions,
		Exhausted:     a.counts.exhausted,
	}
}

// Stats returns a snapshot of heap allocator statistics. Slots and Reserved
// are always zero.
func (h *Heap[T]) Stats() Stats {
	return Stats{
		Used:          h.used,
		SlotSize:      int(slotSize[T]()),
		SizeInUse:     h.used * int(slotSize[T]()),
		Allocations:   h.counts.allocations,
		Deallocations: h.counts.deallocations,
		Constructions: h.counts.constructions,
		Destructions:  h.counts.destructions,
	}
}

// Stats contains statistical information about an allocator.
type Stats struct {
	Used        int     // Slots handed out
	Slots       int     // Slot capacity
	SlotSize    int     // Bytes per slot
	SizeInUse   int     // Bytes handed out
	Reserved    int     // Bytes reserved
	Utilization float64 // Ratio of used to capacity (0.0-1.0)
	Released    bool

	Allocations   uint64 // Successful Allocate calls
	Deallocations uint64
	Constructions uint64
	Destructions  uint64
	Exhausted     uint64 // Allocate calls refused for lack of capacity
}

// Thread-safe stats for Safe

// Used thread-safely returns the number of slots handed out.
func (s *Safe[T]) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Used()
}

// Remaining thread-safely returns the number of slots still available.
func (s *Safe[T]) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Remaining()
}

// Utilization thread-safely returns the ratio of used slots to capacity.
func (s *Safe[T]) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// Stats thread-safely returns a snapshot of arena statistics.
func (s *Safe[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}
