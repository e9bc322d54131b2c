package list

import (
	"github.com/ferum-labs/ferumstd/arena"
	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/internal/assert"
	"github.com/ferum-labs/ferumstd/internal/obtrace"
)

type moveNode[V any] struct {
	value V
	next  arena.Link
	prev  arena.Link
}

// MoveList is the move-only variant of LinkedList: it drops the
// hashable-value constraint and the secondary index entirely, so
// Contains and RemoveByValue degrade to O(n) scans. The
// zero value is not usable; construct one with NewMoveList or
// SingletonMove.
type MoveList[V any] struct {
	nodes  *arena.Arena[*moveNode[V]]
	head   arena.Link
	tail   arena.Link
	length int
}

// NewMoveList returns an empty MoveList.
func NewMoveList[V any]() *MoveList[V] {
	return &MoveList[V]{
		nodes: arena.NewArena[*moveNode[V]](),
		head:  arena.NoLink(),
		tail:  arena.NoLink(),
	}
}

// SingletonMove returns a MoveList holding exactly one node, value.
func SingletonMove[V any](value V) *MoveList[V] {
	l := NewMoveList[V]()
	l.Add(value)

	return l
}

func (l *MoveList[V]) at(h arena.Handle) *moveNode[V] {
	return l.nodes.MustGet(h)
}

// Length returns the number of nodes in the list.
func (l *MoveList[V]) Length() int {
	return l.length
}

// IsEmpty reports whether the list holds no nodes.
func (l *MoveList[V]) IsEmpty() bool {
	return l.length == 0
}

// Add appends value to the tail of the list.
func (l *MoveList[V]) Add(value V) {
	h := l.nodes.Alloc(&moveNode[V]{value: value, next: arena.NoLink(), prev: arena.NoLink()})

	if tailHandle, ok := l.tail.Get(); ok {
		l.at(tailHandle).next = arena.LinkTo(h)
		l.at(h).prev = arena.LinkTo(tailHandle)
	} else {
		l.head = arena.LinkTo(h)
	}

	l.tail = arena.LinkTo(h)
	l.length++

	obtrace.Splice("add", l.length)
}

// InsertAt splices value in before the node currently at idx. idx ==
// Length() is equivalent to Add.
func (l *MoveList[V]) InsertAt(value V, idx int) error {
	if idx < 0 || idx > l.length {
		return errors.ErrIndexOutOfBounds
	}

	if idx == l.length {
		l.Add(value)

		return nil
	}

	at := l.nthHandle(idx)
	atNode := l.at(at)

	h := l.nodes.Alloc(&moveNode[V]{value: value, next: arena.LinkTo(at), prev: atNode.prev})

	if prevHandle, ok := atNode.prev.Get(); ok {
		l.at(prevHandle).next = arena.LinkTo(h)
	} else {
		l.head = arena.LinkTo(h)
	}

	atNode.prev = arena.LinkTo(h)
	l.length++

	obtrace.Splice("insert_at", l.length)

	return nil
}

func (l *MoveList[V]) nthHandle(idx int) arena.Handle {
	h, ok := l.head.Get()
	assert.True(ok, "list: nthHandle called on an empty MoveList")

	for range idx {
		h, ok = l.at(h).next.Get()
		assert.True(ok, "list: nthHandle index out of range despite bounds check")
	}

	return h
}

// Contains reports whether value is held by any live node. Without a
// secondary index, this is an O(n) linear scan; the caller supplies the
// equality check since V need not implement any comparison capability.
func (l *MoveList[V]) Contains(value V, equals func(a, b V) bool) bool {
	h, ok := l.head.Get()
	for ok {
		n := l.at(h)
		if equals(n.value, value) {
			return true
		}

		h, ok = n.next.Get()
	}

	return false
}

// RemoveByValue removes the first occurrence of value found walking
// from the head, an O(n) scan in the absence of a secondary index.
func (l *MoveList[V]) RemoveByValue(value V, equals func(a, b V) bool) error {
	h, ok := l.head.Get()
	for ok {
		n := l.at(h)
		if equals(n.value, value) {
			l.removeHandle(h)

			return nil
		}

		h, ok = n.next.Get()
	}

	return errors.ErrValueNotFound
}

// RemoveAt removes and returns the value at idx.
func (l *MoveList[V]) RemoveAt(idx int) (V, error) {
	if idx < 0 || idx >= l.length {
		var zero V

		return zero, errors.ErrIndexOutOfBounds
	}

	h := l.nthHandle(idx)
	value := l.at(h).value
	l.removeHandle(h)

	return value, nil
}

// RemoveFirst removes and returns the value at the head of the list.
func (l *MoveList[V]) RemoveFirst() (V, error) {
	h, ok := l.head.Get()
	if !ok {
		var zero V

		return zero, errors.ErrEmptyList
	}

	value := l.at(h).value
	l.removeHandle(h)

	return value, nil
}

// RemoveLast removes and returns the value at the tail of the list.
func (l *MoveList[V]) RemoveLast() (V, error) {
	h, ok := l.tail.Get()
	if !ok {
		var zero V

		return zero, errors.ErrEmptyList
	}

	value := l.at(h).value
	l.removeHandle(h)

	return value, nil
}

// BorrowFirst returns a pointer to the value at the head of the list,
// without removing it. A pointer, rather than a value copy, mirrors
// the "borrow" semantics of a move-only element type that should not
// be copied incidentally.
func (l *MoveList[V]) BorrowFirst() (*V, error) {
	h, ok := l.head.Get()
	if !ok {
		return nil, errors.ErrEmptyList
	}

	return &l.at(h).value, nil
}

// BorrowLast returns a pointer to the value at the tail of the list,
// without removing it.
func (l *MoveList[V]) BorrowLast() (*V, error) {
	h, ok := l.tail.Get()
	if !ok {
		return nil, errors.ErrEmptyList
	}

	return &l.at(h).value, nil
}

// AsVector walks the list head to tail, moving every value out into
// the returned slice and emptying the list.
func (l *MoveList[V]) AsVector() []V {
	out := make([]V, 0, l.length)

	h, ok := l.head.Get()
	for ok {
		n := l.at(h)
		out = append(out, n.value)
		h, ok = n.next.Get()
	}

	l.reset()

	return out
}

// Drop empties the list. Unlike LinkedList.Drop, dropping a MoveList
// that still holds values is a caller error: a move-only payload may
// not be silently discarded, so the caller must consume it (AsVector,
// repeated RemoveFirst) first.
func (l *MoveList[V]) Drop() error {
	if l.length != 0 {
		return errors.ErrNonEmptyList
	}

	l.reset()

	return nil
}

func (l *MoveList[V]) reset() {
	l.nodes = arena.NewArena[*moveNode[V]]()
	l.head = arena.NoLink()
	l.tail = arena.NoLink()
	l.length = 0
}

func (l *MoveList[V]) removeHandle(h arena.Handle) {
	n := l.at(h)

	if prevHandle, ok := n.prev.Get(); ok {
		l.at(prevHandle).next = n.next
	} else {
		l.head = n.next
	}

	if nextHandle, ok := n.next.Get(); ok {
		l.at(nextHandle).prev = n.prev
	} else {
		l.tail = n.prev
	}

	l.nodes.Delete(h)
	l.length--

	obtrace.Splice("remove", l.length)
}

// MoveIterator is a leading cursor over a MoveList. Unlike Iterator's
// PeekNext/SkipNext, GetNext here removes the current node and moves
// its value out, consuming the list as it is walked.
type MoveIterator[V any] struct {
	list      *MoveList[V]
	current   arena.Link
	completed bool
}

// Iterator returns a leading cursor positioned at the head of l.
func (l *MoveList[V]) Iterator() *MoveIterator[V] {
	_, hasAny := l.head.Get()

	return &MoveIterator[V]{
		list:      l,
		current:   l.head,
		completed: !hasAny,
	}
}

// HasNext reports whether PeekNext/SkipNext/GetNext can still be
// called.
func (it *MoveIterator[V]) HasNext() bool {
	return !it.completed
}

// PeekNext returns a pointer to the value at the cursor's current
// position without advancing the cursor or removing the node.
func (it *MoveIterator[V]) PeekNext() (*V, error) {
	if it.completed {
		return nil, errors.ErrMustHaveNext
	}

	h, ok := it.current.Get()
	assert.True(ok, "list: iterator has next but current is unset")

	return &it.list.at(h).value, nil
}

// SkipNext advances the cursor without yielding or removing its
// current value.
func (it *MoveIterator[V]) SkipNext() error {
	if it.completed {
		return errors.ErrMustHaveNext
	}

	currentHandle, ok := it.current.Get()
	assert.True(ok, "list: iterator advance called with unset current")

	next := it.list.at(currentHandle).next
	_, hasNext := next.Get()

	it.current = next
	it.completed = !hasNext

	return nil
}

// GetNext advances the cursor, removes the current node from the
// list, and returns its value by move.
func (it *MoveIterator[V]) GetNext() (V, error) {
	if it.completed {
		var zero V

		return zero, errors.ErrMustHaveNext
	}

	currentHandle, ok := it.current.Get()
	assert.True(ok, "list: iterator advance called with unset current")

	value := it.list.at(currentHandle).value
	next := it.list.at(currentHandle).next
	_, hasNext := next.Get()

	it.list.removeHandle(currentHandle)

	it.current = next
	it.completed = !hasNext

	return value, nil
}
