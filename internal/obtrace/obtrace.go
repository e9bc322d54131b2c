// Package obtrace emits debug-level structured trace events for the
// rbtree, list, and fixedpoint packages: tree rotations, list splices,
// and fixed-point domain rejections. It is a deliberately thin slice
// of a request/response logging package — this module has no request scope,
// no context propagation, and no OpenTelemetry bridge to serve, so it
// keeps only what logger.go builds those things on top of: a
// package-level *slog.Logger, defaulting to slog.Default(), that an
// embedding application can swap out with SetLogger.
package obtrace

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger] //nolint:gochecknoglobals

// SetLogger replaces the logger used by this package's trace
// functions. Passing nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func current() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}

	return slog.Default()
}

// Rotation logs a red-black tree rotation.
func Rotation(kind string, pivotKey string) {
	current().Debug("rbtree: rotation", slog.String("kind", kind), slog.String("pivot", pivotKey))
}

// Recolor logs a red-black tree recoloring during fixup.
func Recolor(site string, key string) {
	current().Debug("rbtree: recolor", slog.String("site", site), slog.String("key", key))
}

// Splice logs a linked-list structural mutation (insert/remove).
func Splice(op string, length int) {
	current().Debug("list: splice", slog.String("op", op), slog.Int("length", length))
}

// Rejected logs a fixedpoint operation that failed a domain check.
func Rejected(op string, err error) {
	current().Debug("fixedpoint: rejected", slog.String("op", op), slog.Any("error", err))
}
