package arena_test

import (
	"testing"

	arena "github.com/pavanmanishd/slotarena"
)

type benchNode struct {
	value int64
	next  *benchNode
}

// BenchmarkNodeAllocation compares building a chain of nodes on an arena
// with building it on the heap.
func BenchmarkNodeAllocation(b *testing.B) {
	const chain = 100

	strategies := map[string]arena.Strategy{
		"Arena": arena.Fixed(chain),
		"Heap":  arena.HeapStrategy(),
	}
	for name, s := range strategies {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				a, err := arena.Make[benchNode](s)
				if err != nil {
					b.Fatal(err)
				}
				var head *benchNode
				for j := 0; j < chain; j++ {
					slot, err := a.Allocate(1)
					if err != nil {
						b.Fatal(err)
					}
					a.Construct(&slot[0], benchNode{value: int64(j), next: head})
					head = &slot[0]
				}
				arena.ReleaseAll(a)
			}
		})
	}
}

func BenchmarkSafeAllocate(b *testing.B) {
	s, err := arena.NewSafe[int64](1 << 20)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := s.Allocate(1); err != nil {
				return
			}
		}
	})
}
