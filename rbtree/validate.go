package rbtree

import (
	"fmt"

	"github.com/ferum-labs/ferumstd/arena"
	"github.com/ferum-labs/ferumstd/errors"
)

// Validate checks the tree against the red-black coloring rules, BST key
// ordering, parent back-reference integrity, and the keyCount/valueCount
// bookkeeping, returning every violation found rather than stopping at
// the first. Intended for tests and debugging, not the hot path.
func (t *Tree[V]) Validate() error {
	var errs errors.Collection

	rootHandle, ok := t.root.Get()
	if !ok {
		if t.keyCount != 0 || t.valueCount != 0 {
			errs.Add(fmt.Errorf("empty tree has nonzero counts: keys=%d values=%d", t.keyCount, t.valueCount))
		}

		return errs.GetError()
	}

	if t.isRed(t.root) {
		errs.Add(fmt.Errorf("root is red"))
	}

	if _, hasParent := t.at(rootHandle).parent.Get(); hasParent {
		errs.Add(fmt.Errorf("root has a parent link"))
	}

	var (
		keys    int
		values  int
		lastKey *Key
		visit   func(link arena.Link) int
	)

	visit = func(link arena.Link) int {
		h, ok := link.Get()
		if !ok {
			return 0
		}

		n := t.at(h)

		if n.color == red && (t.isRed(n.left) || t.isRed(n.right)) {
			errs.Add(fmt.Errorf("red node with a red child at key %v", n.key))
		}

		for _, child := range []arena.Link{n.left, n.right} {
			childHandle, ok := child.Get()
			if !ok {
				continue
			}

			parentHandle, hasParent := t.at(childHandle).parent.Get()
			if !hasParent || parentHandle != h {
				errs.Add(fmt.Errorf("child of key %v does not point back at its parent", n.key))
			}
		}

		leftHeight := visit(n.left)

		if lastKey != nil && !lastKey.LessThan(n.key) {
			errs.Add(fmt.Errorf("key ordering violated at key %v", n.key))
		}

		k := n.key
		lastKey = &k
		keys++
		values += len(n.values)

		if len(n.values) == 0 {
			errs.Add(fmt.Errorf("node at key %v has an empty value sequence", n.key))
		}

		rightHeight := visit(n.right)

		if leftHeight != rightHeight {
			errs.Add(fmt.Errorf("subtree rooted at key %v has mismatched black-heights %d vs %d", n.key, leftHeight, rightHeight))
		}

		height := leftHeight
		if n.color == black {
			height++
		}

		return height
	}

	visit(t.root)

	if keys != t.keyCount {
		errs.Add(fmt.Errorf("keyCount mismatch: tracked %d, counted %d", t.keyCount, keys))
	}

	if values != t.valueCount {
		errs.Add(fmt.Errorf("valueCount mismatch: tracked %d, counted %d", t.valueCount, values))
	}

	return errs.GetError()
}
