package list_test

import (
	"hash"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/list"
)

// intValue adapts a plain int into list.Keyable[intValue] for tests.
type intValue int

func (v intValue) UpdateHash(h hash.Hash) error {
	_, err := h.Write([]byte(strconv.Itoa(int(v))))

	return err
}

func (v intValue) Equals(other intValue) bool {
	return v == other
}

func ints(values ...int) []intValue {
	out := make([]intValue, len(values))
	for i, v := range values {
		out[i] = intValue(v)
	}

	return out
}

func TestNewIsEmpty(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	assert.True(t, l.IsEmpty())
	assert.Equal(t, 0, l.Length())
}

func TestSingleton(t *testing.T) {
	t.Parallel()

	l := list.Singleton[intValue](42)
	require.Equal(t, 1, l.Length())

	v, err := l.BorrowFirst()
	require.NoError(t, err)
	assert.Equal(t, intValue(42), v)
}

// TestAddAndRemoveScenario exercises an end-to-end list
// scenario: append 100, 50, 20, 200, 100; RemoveLast then RemoveFirst
// leaves [50, 20, 200].
func TestAddAndRemoveScenario(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	for _, v := range ints(100, 50, 20, 200, 100) {
		l.Add(v)
	}

	require.Equal(t, 5, l.Length())
	assert.True(t, l.Contains(intValue(100)))
	assert.False(t, l.Contains(intValue(300)))

	_, err := l.RemoveLast()
	require.NoError(t, err)

	_, err = l.RemoveFirst()
	require.NoError(t, err)

	assert.Equal(t, ints(50, 20, 200), l.AsVector())
}

func TestInsertAt(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	for _, v := range ints(1, 2, 4) {
		l.Add(v)
	}

	require.NoError(t, l.InsertAt(3, 2))
	assert.Equal(t, ints(1, 2, 3, 4), l.AsVector())

	require.NoError(t, l.InsertAt(0, 0))
	assert.Equal(t, ints(0, 1, 2, 3, 4), l.AsVector())

	err := l.InsertAt(99, 100)
	assert.ErrorIs(t, err, errors.ErrIndexOutOfBounds)
}

func TestRemoveByValueRemovesOneOccurrence(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	for _, v := range ints(7, 7, 7) {
		l.Add(v)
	}

	require.NoError(t, l.RemoveByValue(intValue(7)))
	assert.Equal(t, 2, l.Length())
	assert.True(t, l.Contains(intValue(7)))

	require.NoError(t, l.RemoveByValue(intValue(7)))
	require.NoError(t, l.RemoveByValue(intValue(7)))
	assert.False(t, l.Contains(intValue(7)))

	err := l.RemoveByValue(intValue(7))
	require.Error(t, err)
}

func TestRemoveAtOutOfBounds(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	l.Add(intValue(1))

	_, err := l.RemoveAt(5)
	require.Error(t, err)
}

func TestBorrowFirstLastEmptyList(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()

	_, err := l.BorrowFirst()
	require.Error(t, err)

	_, err = l.BorrowLast()
	require.Error(t, err)
}

func TestIteratorWalksForwardAndExhausts(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	for _, v := range ints(1, 2, 3) {
		l.Add(v)
	}

	it := l.Iterator()

	var got []intValue

	for it.HasNext() {
		v, err := it.GetNext()
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, ints(1, 2, 3), got)

	_, err := it.GetNext()
	require.Error(t, err)
}

func TestIteratorPeekDoesNotAdvance(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	l.Add(intValue(1))
	l.Add(intValue(2))

	it := l.Iterator()

	first, err := it.PeekNext()
	require.NoError(t, err)
	assert.Equal(t, intValue(1), first)

	second, err := it.PeekNext()
	require.NoError(t, err)
	assert.Equal(t, intValue(1), second)

	require.NoError(t, it.SkipNext())

	third, err := it.PeekNext()
	require.NoError(t, err)
	assert.Equal(t, intValue(2), third)
}

func TestIteratorSingleElement(t *testing.T) {
	t.Parallel()

	l := list.Singleton[intValue](9)
	it := l.Iterator()

	assert.True(t, it.HasNext())

	v, err := it.GetNext()
	require.NoError(t, err)
	assert.Equal(t, intValue(9), v)

	assert.False(t, it.HasNext())
}

func TestDropEmptiesList(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	for _, v := range ints(1, 2, 3) {
		l.Add(v)
	}

	l.Drop()
	assert.True(t, l.IsEmpty())
	assert.False(t, l.Contains(intValue(1)))
}

// TestForwardEqualsReverseOfBackward checks the property that walking
// next from head (AsVector) yields the reverse of walking prev from
// tail (repeated RemoveLast).
func TestForwardEqualsReverseOfBackward(t *testing.T) {
	t.Parallel()

	l := list.New[intValue]()
	for _, v := range ints(5, 3, 8, 1, 9) {
		l.Add(v)
	}

	forward := l.AsVector()

	backward := make([]intValue, 0, len(forward))

	for !l.IsEmpty() {
		v, err := l.RemoveLast()
		require.NoError(t, err)
		backward = append(backward, v)
	}

	reversed := make([]intValue, len(backward))
	for i, v := range backward {
		reversed[len(backward)-1-i] = v
	}

	assert.Equal(t, forward, reversed)
}
