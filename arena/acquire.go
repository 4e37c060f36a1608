package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Acquire allocates a block with room for size payload bytes and returns its
// address plus the payload slice.
//
// The block length is size+1 (one header byte) rounded up to the quantum, so
// Acquire(0) still consumes 16 bytes. The free list is searched first-fit in
// list order; any remainder of the chosen block is split off and pushed back
// onto the list head through the same path Release uses.
//
// On exhaustion Acquire returns (NilAddr, nil, ErrNoSpace) and the arena is
// unchanged.
func (a *Arena) Acquire(size int) (Addr, []byte, error) {
	if a.mem == nil {
		return NilAddr, nil, ErrNotInitialized
	}
	a.stats.AcquireCalls++

	if size < 0 {
		a.stats.AcquireFailures++
		return NilAddr, nil, fmt.Errorf("%w: %d", ErrNegativeSize, size)
	}
	if size >= format.MaxBlockBytes {
		a.stats.AcquireFailures++
		return NilAddr, nil, fmt.Errorf("acquire %d bytes: %w", size, ErrTooLarge)
	}

	need := format.BlockBytes(size)
	chunks, ok := format.ChunksFor(need)
	if !ok {
		a.stats.AcquireFailures++
		return NilAddr, nil, fmt.Errorf("acquire %d bytes: %w", size, ErrTooLarge)
	}

	blk, err := a.firstFit(need)
	if err != nil {
		a.stats.AcquireFailures++
		return NilAddr, nil, err
	}
	if !blk.Index.Valid() {
		a.stats.AcquireFailures++
		a.log.Debug("acquire failed", "size", size, "need", need, "head", a.head())
		return NilAddr, nil, ErrNoSpace
	}

	a.unlink(blk)
	a.setAllocatedChunks(blk.Index, chunks)

	if rest := blk.Chunks - chunks; rest > 0 {
		// The remainder is dressed as an allocated block and released, so
		// insertion logic exists in one place only.
		tail := blk.Index + format.BlockIndex(chunks)
		a.setAllocatedChunks(tail, rest)
		a.release(tail)
		a.stats.Splits++
		a.log.Debug("split block", "index", blk.Index, "kept", chunks, "remainder", tail, "remainder_chunks", rest)
	}

	if a.trackLive {
		a.live.add(blk.Index)
	}
	a.stats.BytesAcquired += int64(need)

	addr := Addr(blk.Index.PayloadAddr())
	a.log.Debug("acquire", "size", size, "index", blk.Index, "chunks", chunks, "addr", addr)
	return addr, a.payload(blk.Index), nil
}

// firstFit walks the free list from the head and returns the first block of
// at least need bytes. A zero Block means nothing fits.
func (a *Arena) firstFit(need int) (format.Block, error) {
	var seen indexSet
	for i := a.head(); i != format.NoBlock; {
		if seen.has(i) {
			return format.Block{}, corruptf("free list revisits block %v", i)
		}
		seen.add(i)

		blk, err := a.freeBlock(i)
		if err != nil {
			return format.Block{}, err
		}
		if blk.Len() >= need {
			return blk, nil
		}
		i = blk.Next
	}
	return format.Block{}, nil
}

// unlink splices blk out of the free list, advancing or clearing the head
// cell when blk is the first entry.
func (a *Arena) unlink(blk format.Block) {
	if blk.Prev != format.NoBlock {
		a.setNext(blk.Prev, blk.Next)
	} else {
		a.setHead(blk.Next)
	}
	if blk.Next != format.NoBlock {
		a.setPrev(blk.Next, blk.Prev)
	}
}
