package arena

import (
	"github.com/joshuapare/arenakit/internal/format"
)

// Check verifies the arena invariants and returns an ErrCorrupt describing
// the first violation:
//
//   - the free list has no cycles and every link is a usable index
//   - prev/next links agree (A.next = B implies B.prev = A)
//   - every block fits inside the arena
//   - blocks tile slots 1..255 exactly and every free-list entry starts a
//     block, so live + free + reserved = HeapSize
//   - with live tracking, the live table matches the allocated blocks
func (a *Arena) Check() error {
	if a.mem == nil {
		return ErrNotInitialized
	}

	var linkErr error
	prev := format.NoBlock
	free := 0
	err := a.walkFree(func(b format.Block) bool {
		if got := a.prevOf(b.Index); got != prev {
			linkErr = corruptf("block %v prev=%v, expected %v", b.Index, got, prev)
			return false
		}
		prev = b.Index
		free++
		return true
	})
	if err != nil {
		return err
	}
	if linkErr != nil {
		return linkErr
	}

	blocks, err := a.Blocks()
	if err != nil {
		return err
	}

	total := format.ReservedBytes
	seenFree := 0
	allocated := 0
	for _, b := range blocks {
		total += b.Len()
		switch b.State {
		case format.StateFree:
			seenFree++
		case format.StateAllocated:
			allocated++
			if a.trackLive && !a.live.has(b.Index) {
				return corruptf("allocated block %v missing from live table", b.Index)
			}
		}
	}
	if total != format.HeapSize {
		return corruptf("blocks cover %d bytes, want %d", total, format.HeapSize)
	}
	if seenFree != free {
		return corruptf("%d free-list entries but %d free blocks found by scan", free, seenFree)
	}
	if a.trackLive && a.live.len() != allocated {
		return corruptf("live table holds %d blocks, scan found %d", a.live.len(), allocated)
	}
	return nil
}
