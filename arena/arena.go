// Package arena provides a handle-indexed object pool.
//
// The data structures in rbtree and list are built around integer
// handles instead of pointers: every node lives in an Arena[T] slot and
// refers to its neighbors by Handle, never by address. This mirrors
// what a cyclic, self-referential structure (a tree node pointing at
// its parent and children, a list node pointing at its neighbors) looks
// like in a language with no notion of shared mutable references —
// every "pointer" is really just a lookup key into a table the caller
// owns. Go itself doesn't need this to avoid cycles, but the shape is
// kept because rbtree and list's algorithms, and their test fixtures,
// are grounded on it directly.
package arena

import (
	"github.com/google/uuid"

	"github.com/ferum-labs/ferumstd/internal/assert"
	"github.com/ferum-labs/ferumstd/optional"
	"github.com/ferum-labs/ferumstd/uint128"
)

// Handle identifies a slot in an Arena. The zero Handle is never
// allocated by NewArena (its first call returns handle 1), so callers
// may use the zero value as a sentinel when that's more convenient than
// a Link.
type Handle struct {
	id uint128.Uint128
}

// Link is an optional Handle: the arena-based equivalent of a nullable
// pointer, used for a tree node's parent/children and a list node's
// neighbors.
type Link = optional.Value[Handle]

// NoLink is a Link referring to nothing.
func NoLink() Link {
	return optional.None[Handle]()
}

// LinkTo is a Link referring to h.
func LinkTo(h Handle) Link {
	return optional.Some(h)
}

// Arena is a handle-indexed pool of values of type T. The zero value is
// not usable; construct one with NewArena or NewRandomArena.
type Arena[T any] struct {
	slots map[Handle]T
	next  uint128.Uint128
}

// NewArena returns an empty Arena whose handles are allocated starting
// at 1 and incrementing monotonically.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		slots: make(map[Handle]T),
		next:  uint128.FromUint64(1),
	}
}

// NewRandomArena returns an empty Arena whose handle counter is seeded
// from a fresh UUID instead of starting at 1. Two arenas constructed
// this way in the same process will not allocate colliding handles even
// if their contents are later merged or compared; the monotonic
// increment contract of Alloc is otherwise unchanged.
func NewRandomArena[T any]() *Arena[T] {
	id := uuid.New()

	hi := beUint64(id[0:8])
	lo := beUint64(id[8:16])

	seed := uint128.New(hi, lo)
	if seed.IsZero() {
		seed = uint128.FromUint64(1)
	}

	return &Arena[T]{
		slots: make(map[Handle]T),
		next:  seed,
	}
}

func beUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}

	return v
}

// Alloc stores value in a fresh slot and returns its Handle.
func (a *Arena[T]) Alloc(value T) Handle {
	h := Handle{id: a.next}

	next, ok := a.next.Add(uint128.FromUint64(1))
	assert.True(ok, "arena: handle counter overflowed 128 bits")

	a.next = next
	a.slots[h] = value

	return h
}

// Get returns the value stored at h and whether h is currently
// allocated.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	v, ok := a.slots[h]

	return v, ok
}

// MustGet returns the value stored at h. It panics if h is not
// currently allocated — every caller inside rbtree and list holds
// handles it allocated itself, so a miss here means an internal
// consistency bug, not a user error.
func (a *Arena[T]) MustGet(h Handle) T {
	v, ok := a.slots[h]
	assert.True(ok, "arena: handle %+v not found", h)

	return v
}

// Set overwrites the value stored at h. It panics if h is not
// currently allocated, for the same reason MustGet does.
func (a *Arena[T]) Set(h Handle, value T) {
	_, ok := a.slots[h]
	assert.True(ok, "arena: handle %+v not found", h)

	a.slots[h] = value
}

// Delete frees the slot at h. It is a no-op if h is not allocated.
func (a *Arena[T]) Delete(h Handle) {
	delete(a.slots, h)
}

// Len returns the number of currently allocated slots.
func (a *Arena[T]) Len() int {
	return len(a.slots)
}
