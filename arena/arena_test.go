package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferum-labs/ferumstd/arena"
)

func TestAllocGetDelete(t *testing.T) {
	t.Parallel()

	a := arena.NewArena[string]()

	h1 := a.Alloc("first")
	h2 := a.Alloc("second")

	require.NotEqual(t, h1, h2)
	assert.Equal(t, 2, a.Len())

	v, ok := a.Get(h1)
	require.True(t, ok)
	assert.Equal(t, "first", v)

	a.Delete(h1)
	assert.Equal(t, 1, a.Len())

	_, ok = a.Get(h1)
	assert.False(t, ok)

	v, ok = a.Get(h2)
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestMustGetPanicsOnMiss(t *testing.T) {
	t.Parallel()

	a := arena.NewArena[int]()
	h := a.Alloc(42)
	a.Delete(h)

	assert.Panics(t, func() {
		a.MustGet(h)
	})
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()

	a := arena.NewArena[int]()
	h := a.Alloc(1)

	a.Set(h, 2)

	assert.Equal(t, 2, a.MustGet(h))
}

func TestSetPanicsOnMiss(t *testing.T) {
	t.Parallel()

	a := arena.NewArena[int]()
	h := a.Alloc(1)
	a.Delete(h)

	assert.Panics(t, func() {
		a.Set(h, 2)
	})
}

func TestLinkRoundTrip(t *testing.T) {
	t.Parallel()

	a := arena.NewArena[string]()
	h := a.Alloc("node")

	link := arena.LinkTo(h)
	got, ok := link.Get()
	require.True(t, ok)
	assert.Equal(t, h, got)

	assert.True(t, arena.NoLink().Empty())
}

func TestHandlesAreDistinct(t *testing.T) {
	t.Parallel()

	a := arena.NewArena[int]()

	var handles []arena.Handle
	for i := range 10 {
		handles = append(handles, a.Alloc(i))
	}

	for i := 1; i < len(handles); i++ {
		assert.NotEqual(t, handles[i-1], handles[i])
	}
}
