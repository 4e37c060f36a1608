package arena

import (
	"github.com/joshuapare/arenakit/internal/format"
)

// allocatorStats holds running counters since the last Init.
type allocatorStats struct {
	AcquireCalls    int64 // Total Acquire() calls
	AcquireFailures int64 // Acquire() calls that returned an error
	ReleaseCalls    int64 // Successful Release() calls
	ReleaseRejected int64 // Release() calls refused by validation
	Splits          int64 // Blocks split on acquire
	BytesAcquired   int64 // Block bytes handed out (headers included)
	BytesReleased   int64 // Block bytes returned
}

// Stats is a point-in-time view of the arena: running counters plus the
// current layout.
type Stats struct {
	AcquireCalls    int64 `json:"acquire_calls"`
	AcquireFailures int64 `json:"acquire_failures"`
	ReleaseCalls    int64 `json:"release_calls"`
	ReleaseRejected int64 `json:"release_rejected"`
	Splits          int64 `json:"splits"`
	BytesAcquired   int64 `json:"bytes_acquired"`
	BytesReleased   int64 `json:"bytes_released"`

	FreeBlocks  int `json:"free_blocks"`  // Entries on the free list
	FreeBytes   int `json:"free_bytes"`   // Bytes in free blocks
	LargestFree int `json:"largest_free"` // Length of the largest free block
	LiveBlocks  int `json:"live_blocks"`  // Allocated blocks
	LiveBytes   int `json:"live_bytes"`   // Bytes in allocated blocks, headers included
	Reserved    int `json:"reserved"`     // Slot 0 (head cell)
}

// Stats returns counters and layout figures. LiveBytes + FreeBytes +
// Reserved always equals format.HeapSize for a consistent arena.
func (a *Arena) Stats() (Stats, error) {
	if a.mem == nil {
		return Stats{}, ErrNotInitialized
	}

	s := Stats{
		AcquireCalls:    a.stats.AcquireCalls,
		AcquireFailures: a.stats.AcquireFailures,
		ReleaseCalls:    a.stats.ReleaseCalls,
		ReleaseRejected: a.stats.ReleaseRejected,
		Splits:          a.stats.Splits,
		BytesAcquired:   a.stats.BytesAcquired,
		BytesReleased:   a.stats.BytesReleased,
		Reserved:        format.ReservedBytes,
	}

	blocks, err := a.Blocks()
	if err != nil {
		return s, err
	}
	for _, b := range blocks {
		switch b.State {
		case format.StateFree:
			s.FreeBlocks++
			s.FreeBytes += b.Len()
			s.LargestFree = max(s.LargestFree, b.Len())
		case format.StateAllocated:
			s.LiveBlocks++
			s.LiveBytes += b.Len()
		}
	}
	return s, nil
}
