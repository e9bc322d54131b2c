package rbtree

import (
	"github.com/ferum-labs/ferumstd/arena"
	"github.com/ferum-labs/ferumstd/internal/assert"
	"github.com/ferum-labs/ferumstd/internal/obtrace"
)

// Insert adds value under key. If key is already present, value is
// appended to its existing value sequence (preserving insertion order,
// no rebalancing). Otherwise a new red leaf is attached and
// fixDoubleRed repairs any red-red violation.
func (t *Tree[V]) Insert(key Key, value V) {
	rootHandle, ok := t.root.Get()
	if !ok {
		h := t.nodes.Alloc(&node[V]{
			key:    key,
			values: []V{value},
			color:  black,
			left:   arena.NoLink(),
			right:  arena.NoLink(),
			parent: arena.NoLink(),
		})

		t.root = arena.LinkTo(h)
		t.keyCount = 1
		t.valueCount = 1

		return
	}

	found, parent, dir := t.internalLookup(arena.NoLink(), rootHandle, key, nodir)
	if found {
		h := t.resolveChild(parent, dir, rootHandle)
		n := t.at(h)
		n.values = append(n.values, value)
		t.valueCount++

		return
	}

	newNode := &node[V]{
		key:    key,
		values: []V{value},
		color:  red,
		left:   arena.NoLink(),
		right:  arena.NoLink(),
		parent: parent,
	}
	h := t.nodes.Alloc(newNode)

	parentHandle, ok := parent.Get()
	assert.True(ok, "rbtree: insert produced an unfound key with no parent")

	parentNode := t.at(parentHandle)

	switch dir {
	case left:
		parentNode.left = arena.LinkTo(h)
	case right:
		parentNode.right = arena.LinkTo(h)
	case nodir:
		assert.True(false, "rbtree: insert direction was nodir below the root")
	}

	t.keyCount++
	t.valueCount++

	t.fixDoubleRed(h)
}

// resolveChild returns the handle located at dir under parent, or
// rootHandle if parent is empty (the located node is the root).
func (t *Tree[V]) resolveChild(parent arena.Link, dir direction, rootHandle arena.Handle) arena.Handle {
	parentHandle, ok := parent.Get()
	if !ok {
		return rootHandle
	}

	parentNode := t.at(parentHandle)

	var childLink arena.Link

	switch dir {
	case left:
		childLink = parentNode.left
	case right:
		childLink = parentNode.right
	case nodir:
		assert.True(false, "rbtree: resolveChild direction was nodir below the root")
	}

	h, ok := childLink.Get()
	assert.True(ok, "rbtree: resolveChild found no child at the reported direction")

	return h
}

// fixDoubleRed repairs the red-red violation that may exist at the
// newly inserted red node c, walking up the tree one rotation or
// recolor at a time until no violation remains or the root is reached.
func (t *Tree[V]) fixDoubleRed(c arena.Handle) { //nolint:varnamelen
	for {
		cNode := t.at(c)

		parentHandle, hasParent := cNode.parent.Get()
		if !hasParent {
			break
		}

		parentNode := t.at(parentHandle)
		if parentNode.color == black {
			break
		}

		grandparentHandle, hasGrandparent := parentNode.parent.Get()
		assert.True(hasGrandparent, "rbtree: invalid fix_double_red state: red node with no grandparent")

		grandparentNode := t.at(grandparentHandle)

		if leftHandle, ok := grandparentNode.left.Get(); ok && leftHandle == parentHandle {
			uncle := grandparentNode.right
			if t.isRed(uncle) {
				parentNode.color = black
				t.at(uncle.GetOrPanic()).color = black
				grandparentNode.color = red
				obtrace.Recolor("uncle-red-left", grandparentNode.key.String())
				c = grandparentHandle

				continue
			}

			if rightHandle, ok := parentNode.right.Get(); ok && rightHandle == c {
				c = parentHandle
				t.rotateLeft(c)
				parentHandle, _ = t.at(c).parent.Get()
				parentNode = t.at(parentHandle)
				grandparentHandle, _ = parentNode.parent.Get()
				grandparentNode = t.at(grandparentHandle)
			}

			parentNode.color = black
			grandparentNode.color = red
			obtrace.Recolor("rotate-left-case", grandparentNode.key.String())
			t.rotateRight(grandparentHandle)
		} else {
			uncle := grandparentNode.left
			if t.isRed(uncle) {
				parentNode.color = black
				t.at(uncle.GetOrPanic()).color = black
				grandparentNode.color = red
				obtrace.Recolor("uncle-red-right", grandparentNode.key.String())
				c = grandparentHandle

				continue
			}

			if leftHandle, ok := parentNode.left.Get(); ok && leftHandle == c {
				c = parentHandle
				t.rotateRight(c)
				parentHandle, _ = t.at(c).parent.Get()
				parentNode = t.at(parentHandle)
				grandparentHandle, _ = parentNode.parent.Get()
				grandparentNode = t.at(grandparentHandle)
			}

			parentNode.color = black
			grandparentNode.color = red
			obtrace.Recolor("rotate-right-case", grandparentNode.key.String())
			t.rotateLeft(grandparentHandle)
		}

		break
	}

	rootHandle, ok := t.root.Get()
	assert.True(ok, "rbtree: fix_double_red left the tree without a root")

	t.at(rootHandle).color = black
}

// rotateLeft performs a left rotation around x:
//
//	  x                y
//	 / \              / \
//	A   y      =>    x   C
//	   / \          / \
//	  B   C        A   B
func (t *Tree[V]) rotateLeft(x arena.Handle) { //nolint:varnamelen
	xNode := t.at(x)

	obtrace.Rotation("left", xNode.key.String())

	yHandle, ok := xNode.right.Get()
	assert.True(ok, "rbtree: invalid rotation: rotateLeft requires a right child")

	yNode := t.at(yHandle) //nolint:varnamelen

	xNode.right = yNode.left

	if bHandle, ok := yNode.left.Get(); ok {
		t.at(bHandle).parent = arena.LinkTo(x)
	}

	yNode.parent = xNode.parent

	if parentHandle, ok := xNode.parent.Get(); !ok {
		t.root = arena.LinkTo(yHandle)
	} else {
		parentNode := t.at(parentHandle)
		if leftHandle, ok := parentNode.left.Get(); ok && leftHandle == x {
			parentNode.left = arena.LinkTo(yHandle)
		} else {
			parentNode.right = arena.LinkTo(yHandle)
		}
	}

	yNode.left = arena.LinkTo(x)
	xNode.parent = arena.LinkTo(yHandle)
}

// rotateRight performs a right rotation around y:
//
//	    y              x
//	   / \            / \
//	  x   C   =>     A   y
//	 / \                / \
//	A   B              B   C
func (t *Tree[V]) rotateRight(y arena.Handle) { //nolint:varnamelen
	yNode := t.at(y)

	obtrace.Rotation("right", yNode.key.String())

	xHandle, ok := yNode.left.Get()
	assert.True(ok, "rbtree: invalid rotation: rotateRight requires a left child")

	xNode := t.at(xHandle) //nolint:varnamelen

	yNode.left = xNode.right

	if bHandle, ok := xNode.right.Get(); ok {
		t.at(bHandle).parent = arena.LinkTo(y)
	}

	xNode.parent = yNode.parent

	if parentHandle, ok := yNode.parent.Get(); !ok {
		t.root = arena.LinkTo(xHandle)
	} else {
		parentNode := t.at(parentHandle)
		if leftHandle, ok := parentNode.left.Get(); ok && leftHandle == y {
			parentNode.left = arena.LinkTo(xHandle)
		} else {
			parentNode.right = arena.LinkTo(xHandle)
		}
	}

	xNode.right = arena.LinkTo(y)
	yNode.parent = arena.LinkTo(xHandle)
}
