// Package arena implements a fixed-capacity bump allocator (memory arena)
// for typed slots, pluggable into generic containers.
//
// # Overview
//
// An Arena reserves one block of Capacity slots of its element type when it
// is created and serves requests by advancing a bump pointer through it.
// Slots are never reused: Deallocate only records the call, and the whole
// block is dropped at once by Release. Once the budget is spent every further
// request fails with ErrCapacityExhausted.
//
// # Basic Usage
//
//	a, err := arena.New[int](10) // reserve 10 slots of int
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	s, err := a.Allocate(1) // one uninitialized slot
//	if err != nil {
//		return err // errors.Is(err, arena.ErrCapacityExhausted)
//	}
//	a.Construct(&s[0], 42)
//	a.Destroy(&s[0])
//	a.Deallocate(s) // bookkeeping only
//
// # Rebinding
//
// Containers store nodes, not bare elements, so they need an allocator for
// a type the caller never sees. Every Allocator reports the Strategy it was
// built from, and Rebind builds a sibling for another type with the same
// capacity and its own storage:
//
//	elems, _ := arena.New[int](10)
//	nodes, err := arena.Rebind[node](elems) // 10 slots of node, independent block
//
// Two allocators with the same strategy kind and capacity are Equal no
// matter how many slots each has handed out.
//
// # Strategies
//
//   - Fixed(capacity, ...): an Arena, or a Safe arena when WithLocking is set
//   - HeapStrategy(...): a Heap allocator with no budget, the default for containers
//
// # Thread Safety
//
// Arena and Heap are not thread-safe. For concurrent access, use Safe:
//
//	s, err := arena.NewSafe[int](1024)
//
// # Errors
//
// Reservation failures match ErrReserve, exhaustion matches
// ErrCapacityExhausted, negative sizes match ErrInvalidSize and use after
// Release matches ErrReleased. Use errors.Is; returned errors carry context.
//
// # Metrics and Monitoring
//
// Stats returns a snapshot of slot usage and call counts:
//
//	st := a.Stats()
//	fmt.Printf("Utilization: %.2f%%\n", st.Utilization*100)
//
// WithMetrics exports the same activity to Prometheus and WithLogger routes
// per-call diagnostics to a go-kit logger at debug level.
package arena
