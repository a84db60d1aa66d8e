package arena

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	a int64
	b int32
	c int16
	d int8
}

// tracked counts finalizations through a shared counter.
type tracked struct {
	id        int
	finalized *int
}

func (t *tracked) Finalize() {
	*t.finalized++
}

func TestConstructDestroy(t *testing.T) {
	a, err := New[testStruct](2)
	require.NoError(t, err)

	s, err := a.Allocate(1)
	require.NoError(t, err)
	a.Construct(&s[0], testStruct{a: 100, b: 2, c: 3, d: 4})
	assert.Equal(t, testStruct{a: 100, b: 2, c: 3, d: 4}, s[0])

	a.Destroy(&s[0])
	assert.Zero(t, s[0])
	assert.Equal(t, 1, a.Used(), "destroy must not release the slot")

	st := a.Stats()
	assert.EqualValues(t, 1, st.Constructions)
	assert.EqualValues(t, 1, st.Destructions)
}

func TestDestroyRunsFinalizer(t *testing.T) {
	var finalized int
	a, err := New[tracked](3)
	require.NoError(t, err)

	s, err := a.Allocate(3)
	require.NoError(t, err)
	for i := range s {
		a.Construct(&s[i], tracked{id: i, finalized: &finalized})
	}
	for i := range s {
		a.Destroy(&s[i])
	}
	assert.Equal(t, 3, finalized)
	assert.Nil(t, s[0].finalized, "destroyed slots drop their references")
}

func TestRebind(t *testing.T) {
	ints, err := New[int](10)
	require.NoError(t, err)
	_, err = ints.Allocate(4)
	require.NoError(t, err)

	pairs, err := Rebind[kvPair](Allocator[int](ints))
	require.NoError(t, err)
	assert.Equal(t, ints.MaxSize(), pairs.MaxSize())

	rebound, ok := pairs.(*Arena[kvPair])
	require.True(t, ok, "a fixed strategy rebinds to an Arena, got %T", pairs)
	assert.Equal(t, 0, rebound.Used(), "the rebound arena starts empty")
	assert.Equal(t, 10, rebound.Remaining())

	_, err = rebound.Allocate(10)
	require.NoError(t, err)
	rebound.Release()

	// The source arena keeps its own budget.
	assert.Equal(t, 6, ints.Remaining())
	_, err = ints.Allocate(6)
	require.NoError(t, err)
}

func TestRebindKeepsStrategy(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	a, err := New[int](4, WithLogger(logger), WithName("nodes"), WithLocking())
	require.NoError(t, err)

	b, err := Rebind[kvPair](Allocator[int](a))
	require.NoError(t, err)
	assert.IsType(t, &Safe[kvPair]{}, b)
	assert.Equal(t, "nodes", b.Strategy().Name())
	assert.True(t, b.Strategy().Locked())

	_, err = b.Allocate(1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "allocator=nodes")
}

func TestRebindPropagatesReserveFailure(t *testing.T) {
	a, err := New[byte](64, WithReserveLimit(64))
	require.NoError(t, err)

	// 64 slots of kvPair need 1 KiB, above the limit.
	_, err = Rebind[kvPair](Allocator[byte](a))
	require.ErrorIs(t, err, ErrReserve)
}

func TestEqual(t *testing.T) {
	a, err := Make[int](Fixed(10))
	require.NoError(t, err)
	b, err := Make[int](Fixed(10))
	require.NoError(t, err)
	c, err := Make[int](Fixed(5))
	require.NoError(t, err)
	h := NewHeap[int]()

	_, err = a.Allocate(9)
	require.NoError(t, err)

	assert.True(t, Equal(a, b), "usage does not affect equality")
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, Allocator[int](h)))
	assert.True(t, Equal(Allocator[int](h), Allocator[int](NewHeap[int]())))
}

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		want     any
	}{
		{"fixed", Fixed(4), &Arena[int]{}},
		{"fixed locked", Fixed(4, WithLocking()), &Safe[int]{}},
		{"heap", HeapStrategy(), &Heap[int]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Make[int](tt.strategy)
			require.NoError(t, err)
			assert.IsType(t, tt.want, a)
		})
	}

	_, err := Make[int](Strategy{kind: Kind(9)})
	require.Error(t, err)

	_, err = Make[int](Fixed(-3))
	require.ErrorIs(t, err, ErrReserve)
}

func TestHeap(t *testing.T) {
	h := NewHeap[int]()

	s, err := h.Allocate(0)
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = h.Allocate(-1)
	require.ErrorIs(t, err, ErrInvalidSize)

	for i := 0; i < 100; i++ {
		s, err := h.Allocate(1)
		require.NoError(t, err)
		h.Construct(&s[0], i)
		h.Destroy(&s[0])
		h.Deallocate(s)
	}
	assert.Equal(t, 100, h.Used())
	assert.Greater(t, h.MaxSize(), 1<<30)

	st := h.Stats()
	assert.EqualValues(t, 100, st.Allocations)
	assert.EqualValues(t, 100, st.Deallocations)

	rebound, err := Rebind[kvPair](Allocator[int](h))
	require.NoError(t, err)
	assert.IsType(t, &Heap[kvPair]{}, rebound)
}

func TestReleaseAll(t *testing.T) {
	a, err := New[int](2)
	require.NoError(t, err)
	ReleaseAll(Allocator[int](a))
	_, err = a.Allocate(1)
	require.ErrorIs(t, err, ErrReleased)

	// Heap allocators own nothing to release.
	ReleaseAll(Allocator[int](NewHeap[int]()))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "fixed", KindFixed.String())
	assert.Equal(t, "heap", KindHeap.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
