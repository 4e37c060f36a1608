package arena

import (
	"errors"
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("arena: no free block large enough")

	// ErrTooLarge indicates a request whose block length cannot be described
	// by an 8-bit chunk count. It wraps ErrNoSpace.
	ErrTooLarge = fmt.Errorf("arena: request exceeds %d-byte block limit: %w", format.MaxBlockBytes, ErrNoSpace)

	// ErrNegativeSize indicates a negative request size.
	ErrNegativeSize = errors.New("arena: negative size")

	// ErrBadAddress indicates an address that was not issued by this arena.
	ErrBadAddress = errors.New("arena: bad address")

	// ErrDoubleFree indicates a release of a block that is already free.
	ErrDoubleFree = errors.New("arena: block already free")

	// ErrCorrupt indicates the arena metadata violates an invariant.
	ErrCorrupt = errors.New("arena: corrupt metadata")

	// ErrNotInitialized indicates use of an arena before Init.
	ErrNotInitialized = errors.New("arena: not initialized")
)

func corruptf(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(msg, args...))
}
