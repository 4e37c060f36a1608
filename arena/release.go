package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/format"
)

// Release returns the block at addr to the free list. The block becomes the
// new list head; neighbours are never merged.
//
// addr must have come from Acquire on this arena and must not have been
// released since. Violations are reported as ErrBadAddress or ErrDoubleFree
// and leave the arena untouched.
func (a *Arena) Release(addr Addr) error {
	if a.mem == nil {
		return ErrNotInitialized
	}

	i, err := a.validate(addr)
	if err != nil {
		a.stats.ReleaseRejected++
		a.log.Warn("release rejected", "addr", addr, "err", err)
		return err
	}

	chunks := a.allocatedChunks(i)
	a.release(i)
	a.live.remove(i)

	a.stats.ReleaseCalls++
	a.stats.BytesReleased += int64(chunks) * format.Quantum
	a.log.Debug("release", "addr", addr, "index", i, "chunks", chunks)
	return nil
}

// release converts allocated block i to free layout and pushes it onto the
// list head. It trusts its caller: both Release (after validation) and the
// split path in Acquire use it.
func (a *Arena) release(i format.BlockIndex) {
	chunks := a.allocatedChunks(i)

	// The chunk count moves to byte 1 before byte 0 is reused for prev.
	a.setChunks(i, chunks)

	old := a.head()
	a.setNext(i, old)
	a.setPrev(i, format.NoBlock)
	if old != format.NoBlock {
		a.setPrev(old, i)
	}
	a.setHead(i)
}

// validate maps addr to a block index and checks that the block can be
// released.
func (a *Arena) validate(addr Addr) (format.BlockIndex, error) {
	i, ok := addr.Index()
	if !ok {
		return format.NoBlock, fmt.Errorf("%w: %d is not a payload address", ErrBadAddress, addr)
	}

	if a.trackLive && !a.live.has(i) {
		if a.onFreeList(i) {
			return format.NoBlock, fmt.Errorf("%w: block %v (addr %d)", ErrDoubleFree, i, addr)
		}
		return format.NoBlock, fmt.Errorf("%w: block %v (addr %d) is not live", ErrBadAddress, i, addr)
	}

	if chunks := a.allocatedChunks(i); !format.Fits(i, chunks) {
		return format.NoBlock, fmt.Errorf("%w: block %v header claims %d chunks", ErrBadAddress, i, chunks)
	}
	return i, nil
}

// onFreeList reports whether i is reachable from the head. A corrupt list
// reports false.
func (a *Arena) onFreeList(i format.BlockIndex) bool {
	found := false
	_ = a.walkFree(func(b format.Block) bool {
		found = b.Index == i
		return !found
	})
	return found
}
