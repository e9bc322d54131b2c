package rbtree

import (
	"github.com/ferum-labs/ferumstd/arena"
	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/internal/assert"
	"github.com/ferum-labs/ferumstd/internal/obtrace"
)

// DeleteValue removes the first occurrence of value from key's value
// sequence. If the sequence becomes empty, the key itself is deleted.
func (t *Tree[V]) DeleteValue(key Key, value V, equals func(a, b V) bool) error {
	h, ok := t.getNodeHandle(key)
	if !ok {
		return errors.ErrValueNotFound
	}

	n := t.at(h)

	idx := -1

	for i, v := range n.values {
		if equals(v, value) {
			idx = i

			break
		}
	}

	if idx == -1 {
		return errors.ErrValueNotFound
	}

	n.values = append(n.values[:idx], n.values[idx+1:]...)
	t.valueCount--

	if len(n.values) == 0 {
		t.keyCount--
		t.deleteNode(h)
	}

	return nil
}

// DeleteKey removes key and its entire value sequence from the tree.
func (t *Tree[V]) DeleteKey(key Key) error {
	h, ok := t.getNodeHandle(key)
	if !ok {
		return errors.ErrKeyNotFound
	}

	t.valueCount -= len(t.at(h).values)
	t.keyCount--
	t.deleteNode(h)

	return nil
}

// deleteNode removes the node at z from the tree, rebalancing
// afterward. If z has two children, its payload (key, values) is
// swapped with its in-order successor's in place — the tree's shape
// and coloring are otherwise untouched — so the handle actually
// spliced out always has at most one child. This avoids rewiring
// edges around a node with two children, which is easy to get wrong.
func (t *Tree[V]) deleteNode(z arena.Handle) { //nolint:varnamelen
	zNode := t.at(z)

	_, hasLeft := zNode.left.Get()
	rightHandle, hasRight := zNode.right.Get()

	if hasLeft && hasRight {
		succ := t.minimum(rightHandle)
		t.swapPayload(z, succ)
		z = succ
		zNode = t.at(z)
	}

	var x arena.Link //nolint:varnamelen

	_, hasLeft = zNode.left.Get()
	_, hasRight = zNode.right.Get()

	switch {
	case !hasLeft:
		x = zNode.right
	case !hasRight:
		x = zNode.left
	default:
		assert.True(false, "rbtree: invalid internal state: node with two children survived successor swap")
	}

	parent := zNode.parent
	xIsLeftChild := false

	if parentHandle, ok := parent.Get(); ok {
		xIsLeftChild = t.at(parentHandle).left == arena.LinkTo(z)
	}

	originalColor := zNode.color

	t.transplant(z, x)
	t.nodes.Delete(z)

	if originalColor == black {
		t.fixDoubleBlack(x, parent, xIsLeftChild)
	}
}

// swapPayload exchanges the key and value sequence of the nodes at a
// and b, leaving their arena slots' structural links
// (parent/left/right) and colors untouched. Colors stay with their
// structural positions: moving a color along with the payload would
// change the black count on every path through exactly one of the two
// positions, so the fixup that follows could not account for it.
func (t *Tree[V]) swapPayload(a, b arena.Handle) {
	aNode := t.at(a)
	bNode := t.at(b)

	aNode.key, bNode.key = bNode.key, aNode.key
	aNode.values, bNode.values = bNode.values, aNode.values
}

// transplant replaces the subtree rooted at u with the subtree rooted
// at v (v may be empty), reparenting v and fixing up u's former
// parent's child link (or the tree root).
func (t *Tree[V]) transplant(u arena.Handle, v arena.Link) {
	uNode := t.at(u)

	if parentHandle, ok := uNode.parent.Get(); !ok {
		t.root = v
	} else {
		parentNode := t.at(parentHandle)
		if leftHandle, ok := parentNode.left.Get(); ok && leftHandle == u {
			parentNode.left = v
		} else {
			parentNode.right = v
		}
	}

	if vHandle, ok := v.Get(); ok {
		t.at(vHandle).parent = uNode.parent
	}
}

// fixDoubleBlack restores the red-black invariants after deleteNode
// removes a black node, possibly leaving a "double black" deficiency
// at x. Unlike a pointer-based implementation, x may legitimately be an
// empty link (the spliced node had no child at all) — parent and
// xIsLeftChild are threaded explicitly so the fixup can still locate
// x's sibling in that case, rather than relying on dereferencing x.
func (t *Tree[V]) fixDoubleBlack(x arena.Link, parent arena.Link, xIsLeftChild bool) { //nolint:varnamelen
	for {
		if xHandle, ok := x.Get(); ok {
			xNode := t.at(xHandle)
			parent = xNode.parent

			if parentHandle, ok := parent.Get(); ok {
				xIsLeftChild = t.at(parentHandle).left == x
			}
		}

		parentHandle, hasParent := parent.Get()
		if !hasParent {
			break
		}

		if t.isRed(x) {
			break
		}

		parentNode := t.at(parentHandle)

		if xIsLeftChild {
			t.fixDoubleBlackLeft(&x, parentHandle, parentNode)
		} else {
			t.fixDoubleBlackRight(&x, parentHandle, parentNode)
		}

		if xHandle, ok := x.Get(); ok && xHandle == parentHandle {
			// The black-sibling recolor case moved the deficiency up:
			// x is now its former parent; the next loop iteration
			// recomputes parent/xIsLeftChild from x's own fields.
			continue
		}

		break
	}

	if xHandle, ok := x.Get(); ok {
		t.at(xHandle).color = black
	}
}

// fixDoubleBlackLeft handles the case where x is (or would be) its
// parent's left child; s is x's sibling, parent.right.
func (t *Tree[V]) fixDoubleBlackLeft(x *arena.Link, parentHandle arena.Handle, parentNode *node[V]) { //nolint:varnamelen
	sHandle, ok := parentNode.right.Get() //nolint:varnamelen
	assert.True(ok, "rbtree: invalid fix_double_black state: missing sibling")

	sNode := t.at(sHandle) //nolint:varnamelen

	if sNode.color == red {
		sNode.color = black
		parentNode.color = red
		t.rotateLeft(parentHandle)

		sHandle, ok = parentNode.right.Get()
		assert.True(ok, "rbtree: invalid fix_double_black state: missing sibling after rotation")

		sNode = t.at(sHandle)
	}

	switch {
	case !t.isRed(sNode.left) && !t.isRed(sNode.right):
		sNode.color = red
		obtrace.Recolor("double-black-sibling-left", parentNode.key.String())
		*x = arena.LinkTo(parentHandle)

		return
	case t.isRed(sNode.right):
		sNode.color = parentNode.color
		parentNode.color = black
		t.at(sNode.right.GetOrPanic()).color = black
		t.rotateLeft(parentHandle)
	default: // sNode.left is red, sNode.right is black
		t.at(sNode.left.GetOrPanic()).color = black
		sNode.color = red
		t.rotateRight(sHandle)

		sHandle, ok = parentNode.right.Get()
		assert.True(ok, "rbtree: invalid fix_double_black state: missing sibling after inner rotation")

		sNode = t.at(sHandle)
		sNode.color = parentNode.color
		parentNode.color = black
		t.at(sNode.right.GetOrPanic()).color = black
		t.rotateLeft(parentHandle)
	}

	rootHandle, ok := t.root.Get()
	assert.True(ok, "rbtree: fix_double_black left the tree without a root")

	*x = arena.LinkTo(rootHandle)
}

// fixDoubleBlackRight mirrors fixDoubleBlackLeft for the case where x
// is (or would be) its parent's right child.
func (t *Tree[V]) fixDoubleBlackRight(x *arena.Link, parentHandle arena.Handle, parentNode *node[V]) { //nolint:varnamelen
	sHandle, ok := parentNode.left.Get() //nolint:varnamelen
	assert.True(ok, "rbtree: invalid fix_double_black state: missing sibling")

	sNode := t.at(sHandle) //nolint:varnamelen

	if sNode.color == red {
		sNode.color = black
		parentNode.color = red
		t.rotateRight(parentHandle)

		sHandle, ok = parentNode.left.Get()
		assert.True(ok, "rbtree: invalid fix_double_black state: missing sibling after rotation")

		sNode = t.at(sHandle)
	}

	switch {
	case !t.isRed(sNode.left) && !t.isRed(sNode.right):
		sNode.color = red
		obtrace.Recolor("double-black-sibling-right", parentNode.key.String())
		*x = arena.LinkTo(parentHandle)

		return
	case t.isRed(sNode.left):
		sNode.color = parentNode.color
		parentNode.color = black
		t.at(sNode.left.GetOrPanic()).color = black
		t.rotateRight(parentHandle)
	default: // sNode.right is red, sNode.left is black
		t.at(sNode.right.GetOrPanic()).color = black
		sNode.color = red
		t.rotateLeft(sHandle)

		sHandle, ok = parentNode.left.Get()
		assert.True(ok, "rbtree: invalid fix_double_black state: missing sibling after inner rotation")

		sNode = t.at(sHandle)
		sNode.color = parentNode.color
		parentNode.color = black
		t.at(sNode.left.GetOrPanic()).color = black
		t.rotateRight(parentHandle)
	}

	rootHandle, ok := t.root.Get()
	assert.True(ok, "rbtree: fix_double_black left the tree without a root")

	*x = arena.LinkTo(rootHandle)
}
