// Package rbtree provides Tree, a red-black tree ordered multimap keyed by
// 128-bit integers: a self-balancing binary search tree where each node
// holds a sequence of values for its key, preserving insertion order
// among duplicates.
//
// Nodes live in an arena.Arena and refer to each other by arena.Handle
// rather than by pointer, following the handle/arena pattern used
// throughout this module (see the arena package). The rebalancing
// algorithms themselves — fix_double_red on insert, fix_double_black on
// delete, payload-swap successor deletion — are the textbook CLRS
// red-black tree, generalized from a pointer-based
// implementation to operate on handles.
package rbtree

import (
	"github.com/ferum-labs/ferumstd/arena"
	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/internal/assert"
	"github.com/ferum-labs/ferumstd/uint128"
)

// Key is the 128-bit key type every Tree is ordered by.
type Key = uint128.Uint128

type color bool

const (
	black color = true
	red   color = false
)

type direction byte

const (
	left direction = iota
	right
	nodir
)

type node[V any] struct {
	key    Key
	values []V
	color  color
	left   arena.Link
	right  arena.Link
	parent arena.Link
}

// Tree is an ordered multimap from 128-bit keys to sequences of values,
// implemented as a red-black tree. The zero value is not usable;
// construct one with New.
type Tree[V any] struct {
	nodes      *arena.Arena[*node[V]]
	root       arena.Link
	keyCount   int
	valueCount int
}

// New returns an empty Tree.
func New[V any]() *Tree[V] {
	return &Tree[V]{
		nodes: arena.NewArena[*node[V]](),
		root:  arena.NoLink(),
	}
}

func (t *Tree[V]) at(h arena.Handle) *node[V] {
	return t.nodes.MustGet(h)
}

// isRed reports whether link refers to a red node. An empty link (a
// nil child, by red-black tree convention) counts as black.
func (t *Tree[V]) isRed(link arena.Link) bool {
	h, ok := link.Get()
	if !ok {
		return false
	}

	return t.at(h).color == red
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[V]) IsEmpty() bool {
	return t.keyCount == 0
}

// KeyCount returns the number of distinct keys in the tree.
func (t *Tree[V]) KeyCount() int {
	return t.keyCount
}

// ValueCount returns the total number of values across all keys,
// including duplicates.
func (t *Tree[V]) ValueCount() int {
	return t.valueCount
}

// KeyValueCount returns the number of values stored under key, and
// whether key is present.
func (t *Tree[V]) KeyValueCount(key Key) (int, bool) {
	h, ok := t.getNodeHandle(key)
	if !ok {
		return 0, false
	}

	return len(t.at(h).values), true
}

// ContainsKey reports whether key is present in the tree.
func (t *Tree[V]) ContainsKey(key Key) bool {
	_, ok := t.getNodeHandle(key)

	return ok
}

// FirstValueAt returns the first value inserted under key.
func (t *Tree[V]) FirstValueAt(key Key) (V, error) {
	h, ok := t.getNodeHandle(key)
	if !ok {
		var zero V

		return zero, errors.ErrKeyNotFound
	}

	return t.at(h).values[0], nil
}

// ValuesAt returns the full, insertion-ordered value sequence for key.
// The returned slice aliases the tree's internal storage and must not
// be mutated.
func (t *Tree[V]) ValuesAt(key Key) ([]V, error) {
	h, ok := t.getNodeHandle(key)
	if !ok {
		return nil, errors.ErrKeyNotFound
	}

	return t.at(h).values, nil
}

// MinKey returns the smallest key in the tree.
func (t *Tree[V]) MinKey() (Key, error) {
	rootHandle, ok := t.root.Get()
	if !ok {
		var zero Key

		return zero, errors.ErrTreeEmpty
	}

	return t.at(t.minimum(rootHandle)).key, nil
}

// MaxKey returns the largest key in the tree.
func (t *Tree[V]) MaxKey() (Key, error) {
	rootHandle, ok := t.root.Get()
	if !ok {
		var zero Key

		return zero, errors.ErrTreeEmpty
	}

	return t.at(t.maximum(rootHandle)).key, nil
}

// Peek returns the root key and the first value stored there.
func (t *Tree[V]) Peek() (Key, V, error) {
	rootHandle, ok := t.root.Get()
	if !ok {
		var zeroKey Key

		var zeroValue V

		return zeroKey, zeroValue, errors.ErrTreeEmpty
	}

	rootNode := t.at(rootHandle)

	return rootNode.key, rootNode.values[0], nil
}

// Walk calls visit for every key in ascending order with its full value
// sequence. visit returning false stops the traversal early.
func (t *Tree[V]) Walk(visit func(key Key, values []V) bool) {
	t.walk(t.root, visit)
}

func (t *Tree[V]) walk(link arena.Link, visit func(key Key, values []V) bool) bool {
	h, ok := link.Get()
	if !ok {
		return true
	}

	n := t.at(h)

	if !t.walk(n.left, visit) {
		return false
	}

	if !visit(n.key, n.values) {
		return false
	}

	return t.walk(n.right, visit)
}

// getParent locates the parent of key's node and the direction key
// would occupy relative to it. found is true iff key is already
// present, in which case parent/dir locate the existing node (unless
// that node is the root, in which case parent is empty and dir is
// nodir).
func (t *Tree[V]) getParent(key Key) (found bool, parent arena.Link, dir direction) {
	rootHandle, ok := t.root.Get()
	if !ok {
		return false, arena.NoLink(), nodir
	}

	return t.internalLookup(arena.NoLink(), rootHandle, key, nodir)
}

func (t *Tree[V]) internalLookup(
	parent arena.Link, this arena.Handle, key Key, dir direction,
) (bool, arena.Link, direction) {
	thisNode := t.at(this)

	switch {
	case key.Equals(thisNode.key):
		return true, parent, dir
	case key.LessThan(thisNode.key):
		childHandle, ok := thisNode.left.Get()
		if !ok {
			return false, arena.LinkTo(this), left
		}

		return t.internalLookup(arena.LinkTo(this), childHandle, key, left)
	default:
		childHandle, ok := thisNode.right.Get()
		if !ok {
			return false, arena.LinkTo(this), right
		}

		return t.internalLookup(arena.LinkTo(this), childHandle, key, right)
	}
}

// getNodeHandle returns the handle of the node holding key, if present.
func (t *Tree[V]) getNodeHandle(key Key) (arena.Handle, bool) {
	rootHandle, ok := t.root.Get()
	if !ok {
		return arena.Handle{}, false
	}

	found, parent, dir := t.internalLookup(arena.NoLink(), rootHandle, key, nodir)
	if !found {
		return arena.Handle{}, false
	}

	parentHandle, hasParent := parent.Get()
	if !hasParent {
		return rootHandle, true
	}

	parentNode := t.at(parentHandle)

	var childLink arena.Link

	switch dir {
	case left:
		childLink = parentNode.left
	case right:
		childLink = parentNode.right
	case nodir:
		assert.True(false, "rbtree: found node with nodir direction below the root")
	}

	h, ok := childLink.Get()
	assert.True(ok, "rbtree: getParent reported found but child link is empty")

	return h, ok
}

func (t *Tree[V]) minimum(h arena.Handle) arena.Handle {
	for {
		next, ok := t.at(h).left.Get()
		if !ok {
			return h
		}

		h = next
	}
}

func (t *Tree[V]) maximum(h arena.Handle) arena.Handle {
	for {
		next, ok := t.at(h).right.Get()
		if !ok {
			return h
		}

		h = next
	}
}
