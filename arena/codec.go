package arena

import (
	"github.com/joshuapare/arenakit/internal/format"
)

// Header codec. These helpers hide which byte holds which field; callers
// only ever name a block index. Readers that follow links during traversal
// go through format.DecodeFree so a corrupt header is reported rather than
// turned into a wild offset.

func (a *Arena) head() format.BlockIndex {
	return format.BlockIndex(a.mem[format.HeadCell])
}

func (a *Arena) setHead(i format.BlockIndex) {
	a.mem[format.HeadCell] = byte(i)
}

// freeBlock decodes the free-layout header of block i.
func (a *Arena) freeBlock(i format.BlockIndex) (format.Block, error) {
	b, err := format.DecodeFree(a.mem, i)
	if err != nil {
		return format.Block{}, corruptf("free block %v: %v", i, err)
	}
	return b, nil
}

// blockLen is chunks*Quantum read at the free-layout offset. Only valid for
// blocks currently in free layout.
func (a *Arena) blockLen(i format.BlockIndex) int {
	off := i.Offset() + format.FreeChunksOffset
	format.AssertOffset("blockLen", off)
	return int(a.mem[off]) * format.Quantum
}

func (a *Arena) nextOf(i format.BlockIndex) format.BlockIndex {
	off := i.Offset() + a.blockLen(i) - format.FreeNextBackOff
	format.AssertOffset("nextOf", off)
	return format.BlockIndex(a.mem[off])
}

func (a *Arena) setNext(i, next format.BlockIndex) {
	off := i.Offset() + a.blockLen(i) - format.FreeNextBackOff
	format.AssertOffset("setNext", off)
	a.mem[off] = byte(next)
}

func (a *Arena) prevOf(i format.BlockIndex) format.BlockIndex {
	return format.BlockIndex(a.mem[i.Offset()+format.FreePrevOffset])
}

func (a *Arena) setPrev(i, prev format.BlockIndex) {
	a.mem[i.Offset()+format.FreePrevOffset] = byte(prev)
}

// setChunks writes the chunk count at the free-layout offset.
func (a *Arena) setChunks(i format.BlockIndex, chunks uint8) {
	a.mem[i.Offset()+format.FreeChunksOffset] = chunks
}

// allocatedChunks reads the chunk count at the allocated-layout offset.
func (a *Arena) allocatedChunks(i format.BlockIndex) uint8 {
	return a.mem[i.Offset()+format.AllocChunksOffset]
}

func (a *Arena) setAllocatedChunks(i format.BlockIndex, chunks uint8) {
	a.mem[i.Offset()+format.AllocChunksOffset] = chunks
}

func (a *Arena) allocatedLen(i format.BlockIndex) int {
	return int(a.allocatedChunks(i)) * format.Quantum
}
