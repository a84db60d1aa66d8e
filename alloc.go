package arena

// Allocator is the capability generic containers build on. Implementations
// hand out typed slots, initialize and finalize values in them, and describe
// themselves through a Strategy so a container can Rebind them to its own
// node type.
type Allocator[T any] interface {
	// Allocate returns n contiguous uninitialized slots.
	Allocate(n int) ([]T, error)
	// Deallocate returns slots obtained from Allocate.
	Deallocate(p []T)
	// Construct initializes the slot at p with v.
	Construct(p *T, v T)
	// Destroy finalizes the value at p without releasing its slot.
	Destroy(p *T)
	// MaxSize returns the largest number of slots the allocator can serve.
	MaxSize() int
	// Strategy describes the allocator independently of T.
	Strategy() Strategy
}

// Releaser is implemented by allocators that own storage which can be
// dropped in bulk.
type Releaser interface {
	Release()
}

// Finalizer is implemented by values that need cleanup when destroyed
// through an Allocator.
type Finalizer interface {
	Finalize()
}

// Rebind builds an allocator for U from the strategy of a. The result has
// the same capacity policy as a but its own storage; nothing is shared.
func Rebind[U, T any](a Allocator[T]) (Allocator[U], error) {
	return Make[U](a.Strategy())
}

// Equal reports whether a and b are interchangeable. Allocators of the same
// strategy kind and capacity are always equal regardless of their usage.
func Equal[T any](a, b Allocator[T]) bool {
	return a.Strategy().Compatible(b.Strategy())
}

// ReleaseAll releases a if it owns releasable storage.
func ReleaseAll[T any](a Allocator[T]) {
	if r, ok := a.(Releaser); ok {
		r.Release()
	}
}

func construct[T any](p *T, v T) {
	*p = v
}

func destroy[T any](p *T) {
	if f, ok := any(p).(Finalizer); ok {
		f.Finalize()
	}
	var zero T
	*p = zero
}
