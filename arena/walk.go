package arena

import (
	"github.com/joshuapare/arenakit/internal/format"
)

// walkFree visits free blocks in list order until fn returns false. It
// stops with ErrCorrupt on a cycle or an undecodable header.
func (a *Arena) walkFree(fn func(format.Block) bool) error {
	var seen indexSet
	for i := a.head(); i != format.NoBlock; {
		if seen.has(i) {
			return corruptf("free list revisits block %v", i)
		}
		seen.add(i)

		blk, err := a.freeBlock(i)
		if err != nil {
			return err
		}
		if !fn(blk) {
			return nil
		}
		i = blk.Next
	}
	return nil
}

// FreeList returns the free blocks in list order, head first.
func (a *Arena) FreeList() ([]format.Block, error) {
	if a.mem == nil {
		return nil, ErrNotInitialized
	}
	var out []format.Block
	err := a.walkFree(func(b format.Block) bool {
		out = append(out, b)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Blocks scans the arena physically from slot 1 and returns every block in
// address order. A block is free if it is on the free list and allocated
// otherwise; the scan fails unless the blocks tile slots 1..255 exactly.
func (a *Arena) Blocks() ([]format.Block, error) {
	free, err := a.FreeList()
	if err != nil {
		return nil, err
	}
	var onList indexSet
	for _, b := range free {
		onList.add(b.Index)
	}

	var out []format.Block
	for off := format.ReservedBytes; off < format.HeapSize; {
		i := format.BlockIndex(off / format.Quantum)

		var blk format.Block
		if onList.has(i) {
			blk, err = format.DecodeFree(a.mem, i)
		} else {
			blk, err = format.DecodeAllocated(a.mem, i)
		}
		if err != nil {
			return nil, corruptf("block at offset %d: %v", off, err)
		}

		out = append(out, blk)
		off = blk.End()
	}
	return out, nil
}
