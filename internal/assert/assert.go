// Package assert provides programmer-error assertions for the internal
// invariants of the arena, rbtree, and list packages (handle integrity,
// rotation preconditions, double-red/double-black fixup preconditions).
//
// These are not the public error taxonomy (see the errors package) —
// they guard conditions that are impossible to reach from the public
// API if the implementation is correct: a real panic in normal builds,
// a silent no-op when built with the assertions_disabled tag, so an
// embedding application can strip the checks from a hot path.
package assert
