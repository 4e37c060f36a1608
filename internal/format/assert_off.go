//go:build !debug

package format

// AssertOffset is a no-op in production.
// Enable with -tags debug for runtime checks.
func AssertOffset(string, int) {}
