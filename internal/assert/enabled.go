//go:build !assertions_disabled

package assert

import "fmt"

// True panics if value is false. format/args follow fmt.Sprintf rules
// and are only rendered on failure.
func True(value bool, format string, args ...any) {
	if value {
		return
	}

	if format == "" {
		panic("assertion failed")
	}

	panic(fmt.Sprintf(format, args...))
}
