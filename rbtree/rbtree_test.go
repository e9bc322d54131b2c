package rbtree_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/rbtree"
	"github.com/ferum-labs/ferumstd/uint128"
)

func key(v uint64) rbtree.Key {
	return uint128.FromUint64(v)
}

func TestNewIsEmpty(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()
	assert.True(t, tr.IsEmpty())
	assert.Equal(t, 0, tr.KeyCount())
	assert.Equal(t, 0, tr.ValueCount())
	require.NoError(t, tr.Validate())
}

func TestInsertSingleRootStaysBlack(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()
	tr.Insert(key(1), "a")

	require.NoError(t, tr.Validate())
	assert.Equal(t, 1, tr.KeyCount())
	assert.Equal(t, 1, tr.ValueCount())

	v, err := tr.FirstValueAt(key(1))
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestInsertDuplicateKeyAppendsValue(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()
	tr.Insert(key(1), "a")
	tr.Insert(key(1), "b")
	tr.Insert(key(1), "c")

	require.NoError(t, tr.Validate())
	assert.Equal(t, 1, tr.KeyCount())
	assert.Equal(t, 3, tr.ValueCount())

	values, err := tr.ValuesAt(key(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, values)

	min, err := tr.MinKey()
	require.NoError(t, err)

	maxKey, err := tr.MaxKey()
	require.NoError(t, err)
	assert.True(t, min.Equals(maxKey))
}

// TestInsertBalancedSequenceKeepsRoot inserts a sequence that needs no
// rebalancing beyond recoloring and checks the resulting shape through
// the public surface: the original middle key stays at the root.
func TestInsertBalancedSequenceKeepsRoot(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[int]()
	for _, k := range []uint64{10, 5, 15, 3, 7, 13, 17} {
		tr.Insert(key(k), int(k))
	}

	require.NoError(t, tr.Validate())

	rootKey, rootValue, err := tr.Peek()
	require.NoError(t, err)
	assert.True(t, rootKey.Equals(key(10)))
	assert.Equal(t, 10, rootValue)

	var seen []uint64

	tr.Walk(func(k rbtree.Key, values []int) bool {
		seen = append(seen, k.Lo)

		return true
	})

	assert.Equal(t, []uint64{3, 5, 7, 10, 13, 15, 17}, seen)
}

// TestInsertAfterRecoloringStaysValid inserts a key under a red parent
// right after an uncle-recoloring pass, the smallest sequence that
// exercises both fixup styles back to back.
func TestInsertAfterRecoloringStaysValid(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[int]()
	for _, k := range []uint64{21, 15, 31, 10} {
		tr.Insert(key(k), int(k))
		require.NoError(t, tr.Validate())
	}

	tr.Insert(key(5), 5)
	require.NoError(t, tr.Validate())

	var seen []uint64

	tr.Walk(func(k rbtree.Key, values []int) bool {
		seen = append(seen, k.Lo)

		return true
	})

	assert.Equal(t, []uint64{5, 10, 15, 21, 31}, seen)
}

func TestInsertAscendingTriggersRotations(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[int]()

	for i := range uint64(100) {
		tr.Insert(key(i), int(i))
		require.NoErrorf(t, tr.Validate(), "after inserting %d", i)
	}

	assert.Equal(t, 100, tr.KeyCount())
	assert.Equal(t, 100, tr.ValueCount())

	min, err := tr.MinKey()
	require.NoError(t, err)
	assert.True(t, min.Equals(key(0)))

	maxKey, err := tr.MaxKey()
	require.NoError(t, err)
	assert.True(t, maxKey.Equals(key(99)))
}

func TestInsertDescendingTriggersRotations(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[int]()

	for i := uint64(100); i > 0; i-- {
		tr.Insert(key(i), int(i))
		require.NoError(t, tr.Validate())
	}

	assert.Equal(t, 100, tr.KeyCount())
}

func TestInsertRandomOrderMaintainsSortedWalk(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()

	order := []uint64{50, 20, 80, 10, 30, 70, 90, 5, 15, 25, 35, 60, 100}
	for _, k := range order {
		tr.Insert(key(k), fmt.Sprintf("v%d", k))
	}

	require.NoError(t, tr.Validate())

	var seen []uint64

	tr.Walk(func(k rbtree.Key, values []string) bool {
		seen = append(seen, k.Lo)

		return true
	})

	assert.Equal(t, []uint64{5, 10, 15, 20, 25, 30, 35, 50, 60, 70, 80, 90, 100}, seen)
}

func TestWalkStopsEarly(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[int]()
	for i := range uint64(10) {
		tr.Insert(key(i), int(i))
	}

	var visited int

	tr.Walk(func(k rbtree.Key, values []int) bool {
		visited++

		return visited < 3
	})

	assert.Equal(t, 3, visited)
}

func TestContainsKeyAndKeyValueCount(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()
	tr.Insert(key(1), "a")
	tr.Insert(key(1), "b")

	assert.True(t, tr.ContainsKey(key(1)))
	assert.False(t, tr.ContainsKey(key(2)))

	count, ok := tr.KeyValueCount(key(1))
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	_, ok = tr.KeyValueCount(key(2))
	assert.False(t, ok)
}

func TestFirstValueAtMissingKey(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()

	_, err := tr.FirstValueAt(key(1))
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestPeekOnEmptyTree(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()

	_, _, err := tr.Peek()
	assert.ErrorIs(t, err, errors.ErrTreeEmpty)
}

func TestMinMaxOnEmptyTree(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()

	_, err := tr.MinKey()
	assert.ErrorIs(t, err, errors.ErrTreeEmpty)

	_, err = tr.MaxKey()
	assert.ErrorIs(t, err, errors.ErrTreeEmpty)
}

func TestDeleteValueRemovesOneOccurrence(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()
	tr.Insert(key(1), "a")
	tr.Insert(key(1), "b")

	equals := func(a, b string) bool { return a == b }

	require.NoError(t, tr.DeleteValue(key(1), "a", equals))
	require.NoError(t, tr.Validate())

	values, err := tr.ValuesAt(key(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, values)
	assert.Equal(t, 1, tr.ValueCount())
}

func TestDeleteValueEmptiesKeyRemovesNode(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()
	tr.Insert(key(1), "a")

	equals := func(a, b string) bool { return a == b }

	require.NoError(t, tr.DeleteValue(key(1), "a", equals))
	require.NoError(t, tr.Validate())

	assert.True(t, tr.IsEmpty())
	assert.False(t, tr.ContainsKey(key(1)))
}

func TestDeleteValueNotFound(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()
	tr.Insert(key(1), "a")

	equals := func(a, b string) bool { return a == b }

	err := tr.DeleteValue(key(1), "missing", equals)
	assert.ErrorIs(t, err, errors.ErrValueNotFound)

	err = tr.DeleteValue(key(2), "a", equals)
	assert.ErrorIs(t, err, errors.ErrValueNotFound)
}

func TestDeleteKeyNotFound(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[string]()

	err := tr.DeleteKey(key(1))
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

// TestDeleteKeyTwoChildrenUsesSuccessorSwap exercises a node whose
// deletion requires swapping its payload with its in-order successor.
func TestDeleteKeyTwoChildrenUsesSuccessorSwap(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[int]()

	for _, k := range []uint64{50, 25, 75, 10, 30, 60, 90} {
		tr.Insert(key(k), int(k))
	}

	require.NoError(t, tr.DeleteKey(key(50)))
	require.NoError(t, tr.Validate())

	assert.False(t, tr.ContainsKey(key(50)))
	assert.Equal(t, 6, tr.KeyCount())

	var seen []uint64

	tr.Walk(func(k rbtree.Key, values []int) bool {
		seen = append(seen, k.Lo)

		return true
	})

	assert.Equal(t, []uint64{10, 25, 30, 60, 75, 90}, seen)
}

// TestDeleteAllNodesInRandomOrderStaysValid inserts and then fully
// drains a larger tree in a different order, validating after every
// single mutation so any rebalancing defect surfaces immediately.
func TestDeleteAllNodesInRandomOrderStaysValid(t *testing.T) {
	t.Parallel()

	insertOrder := []uint64{
		55, 12, 88, 3, 29, 47, 62, 99, 1, 8, 20, 34, 41, 53, 59, 71, 80, 93, 97, 15,
	}

	tr := rbtree.New[int]()
	for _, k := range insertOrder {
		tr.Insert(key(k), int(k))
		require.NoError(t, tr.Validate())
	}

	deleteOrder := []uint64{
		1, 97, 29, 55, 8, 93, 15, 41, 80, 3, 62, 53, 99, 12, 34, 88, 47, 59, 71, 20,
	}

	for _, k := range deleteOrder {
		require.NoError(t, tr.DeleteKey(key(k)))
		require.NoErrorf(t, tr.Validate(), "after deleting %d", k)
	}

	assert.True(t, tr.IsEmpty())
	assert.Equal(t, 0, tr.ValueCount())
}

func TestDeleteKeyRebalancesAcrossSiblingColors(t *testing.T) {
	t.Parallel()

	tr := rbtree.New[int]()

	for i := range uint64(31) {
		tr.Insert(key(i), int(i))
	}

	require.NoError(t, tr.Validate())

	// Delete every even key first, then every odd key, to exercise both
	// red- and black-sibling fix_double_black cases.
	for i := uint64(0); i < 31; i += 2 {
		require.NoError(t, tr.DeleteKey(key(i)))
		require.NoError(t, tr.Validate())
	}

	for i := uint64(1); i < 31; i += 2 {
		require.NoError(t, tr.DeleteKey(key(i)))
		require.NoError(t, tr.Validate())
	}

	assert.True(t, tr.IsEmpty())
}
