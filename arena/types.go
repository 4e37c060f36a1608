package arena

import (
	"log/slog"

	"github.com/joshuapare/arenakit/internal/format"
)

// Block, BlockIndex, and State re-export the layout types so callers outside
// this module can name what FreeList and Blocks return.
type (
	Block      = format.Block
	BlockIndex = format.BlockIndex
	State      = format.State
)

const (
	StateFree      = format.StateFree
	StateAllocated = format.StateAllocated
	NoBlock        = format.NoBlock
)

// Geometry of every arena.
const (
	HeapSize      = format.HeapSize
	Quantum       = format.Quantum
	MaxBlockBytes = format.MaxBlockBytes
)

// Addr is the arena offset of the first payload byte of an allocated block.
// It plays the role of a pointer: Acquire hands one out and Release takes
// it back.
type Addr uint16

// NilAddr is never a payload address; Acquire returns it on failure.
const NilAddr Addr = 0

// Index returns the block index addr belongs to, or false if addr is not a
// payload address.
func (addr Addr) Index() (format.BlockIndex, bool) {
	return format.IndexForPayload(int(addr))
}

// Options configures a new Arena. A nil *Options means DefaultOptions.
type Options struct {
	// Logger receives debug records for acquire/release and warnings for
	// rejected releases. Nil uses logger.Default().
	Logger *slog.Logger

	// DisableLiveTracking drops the side table of live blocks. Release then
	// only performs structural address checks.
	DisableLiveTracking bool
}

// DefaultOptions is used when New receives nil.
var DefaultOptions = Options{}
