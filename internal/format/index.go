package format

import "fmt"

// BlockIndex names a block by the slot it starts in. Index 0 is reserved:
// it is both the "no block" sentinel in links and the slot holding the head
// cell, so usable indices are 1..255.
type BlockIndex uint8

// NoBlock is the end-of-list sentinel.
const NoBlock BlockIndex = 0

// FirstBlock is the lowest usable block index.
const FirstBlock BlockIndex = 1

// Valid reports whether i names a usable slot.
func (i BlockIndex) Valid() bool {
	return i != NoBlock
}

// Offset returns the absolute arena offset of the block's first byte.
func (i BlockIndex) Offset() int {
	return int(i) * Quantum
}

// PayloadAddr returns the absolute offset of the first payload byte an
// allocated block at i hands to its caller.
func (i BlockIndex) PayloadAddr() int {
	return i.Offset() + PayloadOffset
}

func (i BlockIndex) String() string {
	if i == NoBlock {
		return "nil"
	}
	return fmt.Sprintf("#%d", uint8(i))
}

// IndexAt returns the block index whose slot contains absolute offset off.
// ok is false for offsets outside the arena or inside the reserved slot.
func IndexAt(off int) (BlockIndex, bool) {
	if off < ReservedBytes || off >= HeapSize {
		return NoBlock, false
	}
	return BlockIndex(off / Quantum), true
}

// IndexForPayload maps a payload address back to its block index. The
// address must sit exactly one header byte past a slot boundary.
func IndexForPayload(addr int) (BlockIndex, bool) {
	start := addr - PayloadOffset
	if start&QuantumMask != 0 {
		return NoBlock, false
	}
	return IndexAt(start)
}

// Fits reports whether a block of chunks quanta starting at i stays inside
// the arena.
func Fits(i BlockIndex, chunks uint8) bool {
	return chunks != 0 && i.Offset()+int(chunks)*Quantum <= HeapSize
}
