// Package arena implements a fixed-capacity, in-place allocator over a single
// 4 KiB byte arena.
//
// # Overview
//
// All allocator metadata lives inside the arena itself. Byte 0 is the
// free-list head cell, and every block carries its own header. There is no
// side structure for the list: free blocks are threaded together through
// links stored in their own bytes.
//
// # Layout
//
// The arena is split into 256 slots of 16 bytes. A block is a run of one or
// more slots named by the 8-bit index of its first slot; index 0 is reserved
// for the head cell and doubles as the "no block" sentinel.
//
//	Allocated block:  [chunks][payload .................................]
//	Free block:       [prev][chunks][stale ......................][next]
//
// The chunk count moves from byte 0 to byte 1 when a block is released, so
// the block can carry a prev link in byte 0 while it is free.
//
// # Allocation
//
//   - Acquire(n): round n+1 up to 16, take the first free block that fits
//     (list order, most recently freed first), split off any remainder and
//     push it back onto the list.
//   - Release(addr): rewrite the header into free layout and push the block
//     onto the list head. O(1).
//
// Adjacent free blocks are never coalesced, so fragmentation only grows until
// the arena is re-initialised.
//
// # Usage Example
//
//	a := arena.New(nil)
//
//	addr, payload, err := a.Acquire(16)
//	if err != nil {
//	    return err // errors.Is(err, arena.ErrNoSpace) on exhaustion
//	}
//	copy(payload, "hello world")
//
//	if err := a.Release(addr); err != nil {
//	    return err
//	}
//
// # Safety
//
// Release validates the address it is given. With live tracking (the
// default) a 256-bit side table of allocated block indices turns double
// frees and foreign addresses into ErrDoubleFree and ErrBadAddress instead
// of silently corrupting the free list.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Wrap one in Locked when it must be
// shared between goroutines.
package arena
