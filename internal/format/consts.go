// Package format describes the byte layout of an arena: its geometry, the
// block index space, and the two header encodings a block can carry. It is
// kept free of allocator policy so the allocator, printer, and snapshot
// packages all decode the same bytes the same way.
package format

const (
	// HeapSize is the total capacity of an arena in bytes.
	HeapSize = 4096

	// Quantum is the allocation granularity. Every block length is a multiple
	// of Quantum and every block starts on a Quantum boundary.
	Quantum = 16

	// QuantumMask is Quantum - 1, used for rounding.
	QuantumMask = Quantum - 1

	// SlotCount is the number of Quantum-sized slots in an arena.
	SlotCount = HeapSize / Quantum

	// MaxChunks is the largest chunk count an 8-bit header can hold.
	MaxChunks = 0xFF

	// MaxBlockBytes is the longest block the header can describe (255 * 16).
	MaxBlockBytes = MaxChunks * Quantum

	// HeadCell is the absolute offset of the free-list head cell. It lives in
	// byte 0 of slot 0, which is never handed out.
	HeadCell = 0

	// ReservedBytes is the size of slot 0, which only carries the head cell.
	ReservedBytes = Quantum
)

// Header field offsets relative to the first byte of a block.
//
// Allocated block:
//
//	Offset  Size  Description
//	0x00    1     Chunk count (block length / Quantum, header included)
//	0x01    ...   Payload handed to the caller
//
// Free block:
//
//	Offset  Size  Description
//	0x00    1     Previous free block index (0 = none)
//	0x01    1     Chunk count
//	...           Stale payload
//	len-1   1     Next free block index (0 = none)
const (
	AllocChunksOffset = 0x00
	PayloadOffset     = 0x01

	FreePrevOffset   = 0x00
	FreeChunksOffset = 0x01
	FreeNextBackOff  = 1 // next link sits at len-FreeNextBackOff

	// AllocHeaderSize is the per-allocation overhead in bytes.
	AllocHeaderSize = PayloadOffset
)
