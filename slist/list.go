// Package slist is a minimal singly-linked list whose nodes live in slots
// obtained from an arena.Allocator.
package slist

import (
	"iter"
	"unsafe"

	arena "github.com/pavanmanishd/slotarena"
)

type node[T any] struct {
	value T
	next  *node[T]
}

// Finalize finalizes the held value when the node is destroyed.
func (n *node[T]) Finalize() {
	if f, ok := any(&n.value).(arena.Finalizer); ok {
		f.Finalize()
	}
}

// List is a singly-linked list of T. The zero value is not usable; create
// lists with New or NewDefault. Not goroutine-safe.
type List[T any] struct {
	head  *node[T]
	tail  *node[T]
	size  int
	alloc arena.Allocator[node[T]]
}

// New returns an empty list whose nodes are allocated by a sibling of a,
// rebound to the list's node type.
func New[T any](a arena.Allocator[T]) (*List[T], error) {
	na, err := arena.Rebind[node[T]](a)
	if err != nil {
		return nil, err
	}
	return &List[T]{alloc: na}, nil
}

// NewDefault returns an empty heap-backed list.
func NewDefault[T any]() *List[T] {
	return &List[T]{alloc: arena.NewHeap[node[T]]()}
}

// Append adds v at the end of the list. Allocation errors are returned
// unchanged and leave the list as it was.
func (l *List[T]) Append(v T) error {
	slots, err := l.alloc.Allocate(1)
	if err != nil {
		return err
	}
	n := &slots[0]
	l.alloc.Construct(n, node[T]{value: v})

	if l.head == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
	return nil
}

// Clear destroys every node and returns its slot to the allocator.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		l.alloc.Destroy(n)
		l.alloc.Deallocate(unsafe.Slice(n, 1))
		n = next
	}
	l.head, l.tail, l.size = nil, nil, 0
}

// Close clears the list and releases the node allocator's storage.
func (l *List[T]) Close() {
	l.Clear()
	arena.ReleaseAll(l.alloc)
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.size
}

// Stats reports usage of the node allocator, if it keeps statistics.
func (l *List[T]) Stats() (arena.Stats, bool) {
	if s, ok := l.alloc.(interface{ Stats() arena.Stats }); ok {
		return s.Stats(), true
	}
	return arena.Stats{}, false
}

// All returns a single-pass sequence of the list's values from head to tail.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := l.Begin(); c != l.End(); c = c.Next() {
			if !yield(*c.Value()) {
				return
			}
		}
	}
}

// Cursor is a forward position in a List. Cursors compare equal when they
// point at the same node; every past-the-end cursor equals End.
type Cursor[T any] struct {
	n *node[T]
}

// Begin returns a cursor at the first element, or End if the list is empty.
func (l *List[T]) Begin() Cursor[T] {
	return Cursor[T]{n: l.head}
}

// End returns the past-the-end cursor.
func (l *List[T]) End() Cursor[T] {
	return Cursor[T]{}
}

// Next returns the cursor after c. c must not be End.
func (c Cursor[T]) Next() Cursor[T] {
	return Cursor[T]{n: c.n.next}
}

// Value returns a reference to the element at c. c must not be End.
func (c Cursor[T]) Value() *T {
	return &c.n.value
}
