// Package ordmap is an ordered map backed by a left-leaning red-black tree.
// Tree nodes are allocated through an arena.Allocator, so the map can run
// on a fixed-capacity arena as well as on the heap.
package ordmap

import (
	"cmp"
	"iter"
	"unsafe"

	arena "github.com/pavanmanishd/slotarena"
)

// Pair is the element type the map's allocator is configured for.
type Pair[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

type node[K cmp.Ordered, V any] struct {
	pair        Pair[K, V]
	left, right *node[K, V]
	red         bool
}

// Finalize finalizes the held value when the node is destroyed.
func (n *node[K, V]) Finalize() {
	if f, ok := any(&n.pair.Value).(arena.Finalizer); ok {
		f.Finalize()
	}
}

// Map is an ordered map from K to V. Not goroutine-safe.
type Map[K cmp.Ordered, V any] struct {
	root  *node[K, V]
	size  int
	alloc arena.Allocator[node[K, V]]
}

// New returns an empty map whose nodes come from a sibling of a rebound to
// the tree's node type. Every new key costs exactly one node slot.
func New[K cmp.Ordered, V any](a arena.Allocator[Pair[K, V]]) (*Map[K, V], error) {
	na, err := arena.Rebind[node[K, V]](a)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{alloc: na}, nil
}

// NewDefault returns an empty heap-backed map.
func NewDefault[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{alloc: arena.NewHeap[node[K, V]]()}
}

// Put sets the value for k. Updating an existing key does not allocate.
// If a new node cannot be allocated the error is returned and the map is
// left unchanged.
func (m *Map[K, V]) Put(k K, v V) error {
	if n := m.find(k); n != nil {
		n.pair.Value = v
		return nil
	}
	slots, err := m.alloc.Allocate(1)
	if err != nil {
		return err
	}
	n := &slots[0]
	m.alloc.Construct(n, node[K, V]{pair: Pair[K, V]{Key: k, Value: v}, red: true})

	m.root = insert(m.root, n)
	m.root.red = false
	m.size++
	return nil
}

// Get returns the value stored for k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if n := m.find(k); n != nil {
		return n.pair.Value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	return m.size
}

// All returns the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		walk(m.root, yield)
	}
}

// Clear destroys every node and returns its slot to the allocator.
func (m *Map[K, V]) Clear() {
	stack := make([]*node[K, V], 0, 64)
	if m.root != nil {
		stack = append(stack, m.root)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		m.alloc.Destroy(n)
		m.alloc.Deallocate(unsafe.Slice(n, 1))
	}
	m.root, m.size = nil, 0
}

// Close clears the map and releases the node allocator's storage.
func (m *Map[K, V]) Close() {
	m.Clear()
	arena.ReleaseAll(m.alloc)
}

// Stats reports usage of the node allocator, if it keeps statistics.
func (m *Map[K, V]) Stats() (arena.Stats, bool) {
	if s, ok := m.alloc.(interface{ Stats() arena.Stats }); ok {
		return s.Stats(), true
	}
	return arena.Stats{}, false
}

func (m *Map[K, V]) find(k K) *node[K, V] {
	n := m.root
	for n != nil {
		switch c := cmp.Compare(k, n.pair.Key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func walk[K cmp.Ordered, V any](n *node[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.pair.Key, n.pair.Value) && walk(n.right, yield)
}
