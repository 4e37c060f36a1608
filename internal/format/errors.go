package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for an arena.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrOutOfRange indicates a computed offset fell outside the arena.
	ErrOutOfRange = errors.New("format: offset out of range")
	// ErrBadHeader indicates a block header whose chunk count cannot describe a
	// block at that position.
	ErrBadHeader = errors.New("format: bad block header")
)
