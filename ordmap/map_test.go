package ordmap

import (
	"cmp"
	"maps"
	"math/rand"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arena "github.com/pavanmanishd/slotarena"
)

func factorial(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return n * factorial(n-1)
}

// blackHeight checks the red-black invariants below n and returns the
// number of black nodes on every path to a leaf.
func blackHeight[K cmp.Ordered, V any](t *testing.T, n *node[K, V]) int {
	t.Helper()
	if n == nil {
		return 1
	}
	require.False(t, isRed(n.right), "right-leaning red link at %v", n.pair.Key)
	if n.red {
		require.False(t, isRed(n.left), "two red links in a row at %v", n.pair.Key)
	}
	if n.left != nil {
		require.Less(t, n.left.pair.Key, n.pair.Key)
	}
	if n.right != nil {
		require.Greater(t, n.right.pair.Key, n.pair.Key)
	}
	l, r := blackHeight(t, n.left), blackHeight(t, n.right)
	require.Equal(t, l, r, "unbalanced at %v", n.pair.Key)
	if n.red {
		return l
	}
	return l + 1
}

func TestFactorialsOnArena(t *testing.T) {
	a, err := arena.New[Pair[uint64, uint64]](10)
	require.NoError(t, err)
	m, err := New[uint64, uint64](a)
	require.NoError(t, err)
	defer m.Close()

	for k := uint64(0); k < 10; k++ {
		require.NoError(t, m.Put(k, factorial(k)))
	}
	assert.Equal(t, 10, m.Len())

	keys := slices.Collect(maps.Keys(maps.Collect(m.All())))
	slices.Sort(keys)
	assert.Equal(t, lo.Map(lo.Range(10), func(i, _ int) uint64 { return uint64(i) }), keys)

	var got []uint64
	for k, v := range m.All() {
		assert.Equal(t, factorial(k), v)
		got = append(got, k)
	}
	assert.True(t, slices.IsSorted(got))

	// The 11th distinct key does not fit.
	require.ErrorIs(t, m.Put(10, factorial(10)), arena.ErrCapacityExhausted)
	assert.Equal(t, 10, m.Len())
	_, ok := m.Get(10)
	assert.False(t, ok)
	blackHeight(t, m.root)

	// Overwriting an existing key needs no slot.
	require.NoError(t, m.Put(3, 42))
	v, ok := m.Get(3)
	require.True(t, ok)
	assert.EqualValues(t, 42, v)

	st, ok := m.Stats()
	require.True(t, ok)
	assert.Equal(t, 10, st.Used)
	assert.EqualValues(t, 1, st.Exhausted)
}

func TestBalancedUnderRandomInserts(t *testing.T) {
	const n = 2000
	m := NewDefault[int, int]()
	defer m.Close()

	rnd := rand.New(rand.NewSource(1))
	want := make(map[int]int, n)
	for i := 0; i < n; i++ {
		k := rnd.Intn(n)
		want[k] = i
		require.NoError(t, m.Put(k, i))
	}
	assert.Equal(t, len(want), m.Len())
	blackHeight(t, m.root)
	assert.False(t, m.root.red)

	assert.Equal(t, want, maps.Collect(m.All()))
	for k, v := range want {
		got, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}

func TestSequentialInserts(t *testing.T) {
	m := NewDefault[string, int]()
	defer m.Close()

	for i, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		require.NoError(t, m.Put(k, i))
		blackHeight(t, m.root)
	}
	for i, k := range []string{"z", "y", "x"} {
		require.NoError(t, m.Put(k, i))
		blackHeight(t, m.root)
	}

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "x", "y", "z"}, keys)
}

func TestClear(t *testing.T) {
	a, err := arena.New[Pair[int, string]](16)
	require.NoError(t, err)
	m, err := New[int, string](a)
	require.NoError(t, err)

	for i := range 12 {
		require.NoError(t, m.Put(i, "v"))
	}
	m.Clear()

	st, _ := m.Stats()
	assert.EqualValues(t, 12, st.Destructions)
	assert.EqualValues(t, 12, st.Deallocations)
	assert.Zero(t, m.Len())
	assert.Nil(t, m.root)

	// Only 4 slots are left after the clear.
	for i := range 4 {
		require.NoError(t, m.Put(i, "w"))
	}
	require.ErrorIs(t, m.Put(99, "w"), arena.ErrCapacityExhausted)

	m.Close()
	st, _ = m.Stats()
	assert.True(t, st.Released)
}

func TestAllStopsEarly(t *testing.T) {
	m := NewDefault[int, int]()
	for i := range 10 {
		require.NoError(t, m.Put(i, i))
	}

	var got []int
	for k := range m.All() {
		if k == 3 {
			break
		}
		got = append(got, k)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}
