// Package list provides LinkedList, a doubly linked multiset list with
// O(1) head/tail insertion, O(1) membership check, and O(1) deletion by
// value, and MoveList, its move-only variant.
//
// Nodes live in an arena.Arena and refer to their neighbors by
// arena.Handle, the same arena/handle pattern rbtree uses (see the
// arena package doc comment). LinkedList additionally maintains a
// secondary index from value to the set of handles currently holding
// that value, giving Contains and RemoveByValue O(1) behavior at the
// cost of requiring values to be hashable and comparable.
package list

import (
	"hash"

	"github.com/ferum-labs/ferumstd/arena"
	"github.com/ferum-labs/ferumstd/collectable"
	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/hashing"
	"github.com/ferum-labs/ferumstd/internal/assert"
	"github.com/ferum-labs/ferumstd/internal/obtrace"
)

// Keyable is the capability LinkedList's value type must have so its
// secondary index can bucket values by digest and resolve collisions
// by equality: it is collectable.Collectable[T] under this package's
// own name.
type Keyable[T any] = collectable.Collectable[T]

type node[V any] struct {
	value V
	next  arena.Link
	prev  arena.Link
}

// LinkedList is a doubly linked multiset list over copyable, hashable
// values. The zero value is not usable; construct one with New or
// Singleton.
type LinkedList[V Keyable[V]] struct {
	nodes  *arena.Arena[*node[V]]
	head   arena.Link
	tail   arena.Link
	length int
	index  map[string][]arena.Handle
}

// New returns an empty LinkedList.
func New[V Keyable[V]]() *LinkedList[V] {
	return &LinkedList[V]{
		nodes: arena.NewArena[*node[V]](),
		head:  arena.NoLink(),
		tail:  arena.NoLink(),
		index: make(map[string][]arena.Handle),
	}
}

// Singleton returns a LinkedList holding exactly one node, value.
func Singleton[V Keyable[V]](value V) *LinkedList[V] {
	l := New[V]()
	l.Add(value)

	return l
}

func (l *LinkedList[V]) at(h arena.Handle) *node[V] {
	return l.nodes.MustGet(h)
}

// Length returns the number of nodes in the list.
func (l *LinkedList[V]) Length() int {
	return l.length
}

// IsEmpty reports whether the list holds no nodes.
func (l *LinkedList[V]) IsEmpty() bool {
	return l.length == 0
}

// digest returns the secondary-index bucket key for value: its Xxh3
// hex digest, following a hash-map bucketing idiom.
func digest[V Keyable[V]](value V) string {
	key, err := hashing.Xxh3(hashableAdapter[V]{value})
	assert.True(err == nil, "list: UpdateHash failed: %v", err)

	return key
}

// hashableAdapter wraps a Keyable[V] value as a hashing.Hashable by
// forwarding to the value's own UpdateHash.
type hashableAdapter[V Keyable[V]] struct {
	value V
}

func (h hashableAdapter[V]) UpdateHash(w hash.Hash) error {
	return h.value.UpdateHash(w)
}

// Add appends value to the tail of the list.
func (l *LinkedList[V]) Add(value V) {
	h := l.nodes.Alloc(&node[V]{value: value, next: arena.NoLink(), prev: arena.NoLink()})

	if tailHandle, ok := l.tail.Get(); ok {
		l.at(tailHandle).next = arena.LinkTo(h)
		l.at(h).prev = arena.LinkTo(tailHandle)
	} else {
		l.head = arena.LinkTo(h)
	}

	l.tail = arena.LinkTo(h)
	l.length++

	l.indexAdd(value, h)

	obtrace.Splice("add", l.length)
}

// InsertAt splices value in before the node currently at idx. idx ==
// Length() is equivalent to Add.
func (l *LinkedList[V]) InsertAt(value V, idx int) error {
	if idx < 0 || idx > l.length {
		return errors.ErrIndexOutOfBounds
	}

	if idx == l.length {
		l.Add(value)

		return nil
	}

	at := l.nthHandle(idx)
	atNode := l.at(at)

	h := l.nodes.Alloc(&node[V]{value: value, next: arena.LinkTo(at), prev: atNode.prev})

	if prevHandle, ok := atNode.prev.Get(); ok {
		l.at(prevHandle).next = arena.LinkTo(h)
	} else {
		l.head = arena.LinkTo(h)
	}

	atNode.prev = arena.LinkTo(h)
	l.length++

	l.indexAdd(value, h)

	obtrace.Splice("insert_at", l.length)

	return nil
}

func (l *LinkedList[V]) nthHandle(idx int) arena.Handle {
	h, ok := l.head.Get()
	assert.True(ok, "list: nthHandle called on an empty list")

	for range idx {
		h, ok = l.at(h).next.Get()
		assert.True(ok, "list: nthHandle index out of range despite bounds check")
	}

	return h
}

// Contains reports whether value is held by any live node, via the
// secondary index.
func (l *LinkedList[V]) Contains(value V) bool {
	_, ok := l.findIndexed(value)

	return ok
}

func (l *LinkedList[V]) findIndexed(value V) (arena.Handle, bool) {
	bucket := l.index[digest(value)]
	for _, h := range bucket {
		if l.at(h).value.Equals(value) {
			return h, true
		}
	}

	return arena.Handle{}, false
}

// RemoveByValue removes one occurrence of value — the one at the head
// of that value's handle list in the secondary index — in O(1).
func (l *LinkedList[V]) RemoveByValue(value V) error {
	h, ok := l.findIndexed(value)
	if !ok {
		return errors.ErrValueNotFound
	}

	l.removeHandle(h)

	return nil
}

// RemoveAt removes and returns the value at idx.
func (l *LinkedList[V]) RemoveAt(idx int) (V, error) {
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
func (l *LinkedList[V]) RemoveFirst() (V, error) {
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
func (l *LinkedList[V]) RemoveLast() (V, error) {
	h, ok := l.tail.Get()
	if !ok {
		var zero V

		return zero, errors.ErrEmptyList
	}

	value := l.at(h).value
	l.removeHandle(h)

	return value, nil
}

// BorrowFirst returns the value at the head of the list without
// removing it.
func (l *LinkedList[V]) BorrowFirst() (V, error) {
	h, ok := l.head.Get()
	if !ok {
		var zero V

		return zero, errors.ErrEmptyList
	}

	return l.at(h).value, nil
}

// BorrowLast returns the value at the tail of the list without
// removing it.
func (l *LinkedList[V]) BorrowLast() (V, error) {
	h, ok := l.tail.Get()
	if !ok {
		var zero V

		return zero, errors.ErrEmptyList
	}

	return l.at(h).value, nil
}

// AsVector walks the list head to tail and returns its values in
// order. The returned slice is a fresh copy; the list is unchanged.
func (l *LinkedList[V]) AsVector() []V {
	out := make([]V, 0, l.length)

	h, ok := l.head.Get()
	for ok {
		n := l.at(h)
		out = append(out, n.value)
		h, ok = n.next.Get()
	}

	return out
}

// Drop empties the list.
func (l *LinkedList[V]) Drop() {
	l.nodes = arena.NewArena[*node[V]]()
	l.head = arena.NoLink()
	l.tail = arena.NoLink()
	l.length = 0
	l.index = make(map[string][]arena.Handle)
}

func (l *LinkedList[V]) indexAdd(value V, h arena.Handle) {
	key := digest(value)
	l.index[key] = append(l.index[key], h)
}

func (l *LinkedList[V]) indexRemove(value V, h arena.Handle) {
	key := digest(value)
	bucket := l.index[key]

	for i, candidate := range bucket {
		if candidate == h {
			bucket = append(bucket[:i], bucket[i+1:]...)

			break
		}
	}

	if len(bucket) == 0 {
		delete(l.index, key)
	} else {
		l.index[key] = bucket
	}
}

// removeHandle unlinks the node at h, patches head/tail, removes it
// from the arena, and erases it from the secondary index.
func (l *LinkedList[V]) removeHandle(h arena.Handle) {
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

	l.indexRemove(n.value, h)
	l.nodes.Delete(h)
	l.length--

	obtrace.Splice("remove", l.length)
}

// Iterator is a leading cursor over a LinkedList: a snapshot position
// that does not survive concurrent mutation of the list it was created
// from. Per the leading-cursor contract, "do I have a next element" and
// "current" are always in sync because current, while unexhausted, is
// always resolvable in the arena — so completed is computed fresh from
// current's own next link rather than carried forward as a separate
// lookahead flag.
type Iterator[V Keyable[V]] struct {
	list      *LinkedList[V]
	current   arena.Link
	completed bool
}

// Iterator returns a leading cursor positioned at the head of l.
func (l *LinkedList[V]) Iterator() *Iterator[V] {
	_, hasAny := l.head.Get()

	return &Iterator[V]{
		list:      l,
		current:   l.head,
		completed: !hasAny,
	}
}

// HasNext reports whether GetNext/PeekNext can still be called.
func (it *Iterator[V]) HasNext() bool {
	return !it.completed
}

// GetNext returns the value at the cursor's current position and
// advances the cursor.
func (it *Iterator[V]) GetNext() (V, error) {
	value, err := it.PeekNext()
	if err != nil {
		return value, err
	}

	it.advance()

	return value, nil
}

// PeekNext returns the value at the cursor's current position without
// advancing it.
func (it *Iterator[V]) PeekNext() (V, error) {
	if it.completed {
		var zero V

		return zero, errors.ErrMustHaveNext
	}

	h, ok := it.current.Get()
	assert.True(ok, "list: iterator has next but current is unset")

	return it.list.at(h).value, nil
}

// SkipNext advances the cursor without returning its current value.
func (it *Iterator[V]) SkipNext() error {
	if it.completed {
		return errors.ErrMustHaveNext
	}

	it.advance()

	return nil
}

// advance moves the cursor to current.next, marking the cursor
// completed once that next is unset.
func (it *Iterator[V]) advance() {
	currentHandle, ok := it.current.Get()
	assert.True(ok, "list: iterator advance called with unset current")

	next := it.list.at(currentHandle).next
	_, hasNext := next.Get()

	it.current = next
	it.completed = !hasNext
}
