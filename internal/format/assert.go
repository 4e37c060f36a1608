//go:build debug

package format

import "fmt"

// AssertOffset panics if off is outside the arena.
// Only enabled with -tags debug.
func AssertOffset(method string, off int) {
	if off < 0 || off >= HeapSize {
		panic(fmt.Sprintf("%s: offset %d: %v", method, off, ErrOutOfRange))
	}
}
