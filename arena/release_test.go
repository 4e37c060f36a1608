package arena

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

// Test_Release_RewritesHeader checks the allocated-to-free header transition.
func Test_Release_RewritesHeader(t *testing.T) {
	a := newTestArena(t)
	addr, payload, err := a.Acquire(40) // block 1, 3 chunks
	require.NoError(t, err)
	fill(payload, 0xEE)

	require.NoError(t, a.Release(addr))
	mem := a.Bytes()
	require.Equal(t, byte(0), mem[16], "prev of new head")
	require.Equal(t, byte(3), mem[17], "chunk count moved to byte 1")
	require.Equal(t, byte(4), mem[16+48-1], "next points at the old head")
	require.Equal(t, byte(1), mem[format.HeadCell])

	old, err := a.freeBlock(4)
	require.NoError(t, err)
	require.Equal(t, format.BlockIndex(1), old.Prev, "old head links back")
}

// Test_Release_SingleChunkBlock covers a block whose prev, chunks, and next
// all live in one 16-byte slot.
func Test_Release_SingleChunkBlock(t *testing.T) {
	a := newTestArena(t)
	addr, _, err := a.Acquire(0)
	require.NoError(t, err)
	require.NoError(t, a.Release(addr))

	blk, err := a.freeBlock(1)
	require.NoError(t, err)
	require.Equal(t, uint8(1), blk.Chunks)
	require.Equal(t, format.BlockIndex(2), blk.Next)
	require.Equal(t, format.BlockIndex(2), a.nextOf(1))
	require.NoError(t, a.Check())
}

func Test_Release_DoubleFree(t *testing.T) {
	a := newTestArena(t)
	addr, _, err := a.Acquire(10)
	require.NoError(t, err)
	require.NoError(t, a.Release(addr))

	before := append([]byte(nil), a.Bytes()...)
	require.ErrorIs(t, a.Release(addr), ErrDoubleFree)
	require.Equal(t, before, a.Bytes(), "rejected release must not touch the arena")
	require.NoError(t, a.Check())
}

func Test_Release_BadAddresses(t *testing.T) {
	a := newTestArena(t)
	addr, _, err := a.Acquire(10)
	require.NoError(t, err)

	for _, bad := range []Addr{0, 1, 16, addr + 1, addr - 1, format.HeapSize, format.HeapSize + 1} {
		require.ErrorIs(t, a.Release(bad), ErrBadAddress, "addr %d", bad)
	}

	// Slot-aligned address inside the free remainder (block 3) that was
	// never handed out and does not start a free block.
	require.ErrorIs(t, a.Release(49), ErrBadAddress)
	// Block 2 starts the free remainder, so releasing it reads as a double free.
	require.ErrorIs(t, a.Release(33), ErrDoubleFree)

	s, err := a.Stats()
	require.NoError(t, err)
	require.Equal(t, int64(9), s.ReleaseRejected)
	require.Zero(t, s.ReleaseCalls)
	require.NoError(t, a.Check())
}

// Test_Release_WithoutTracking keeps only the structural checks.
func Test_Release_WithoutTracking(t *testing.T) {
	a := New(&Options{DisableLiveTracking: true})
	addr, _, err := a.Acquire(10)
	require.NoError(t, err)
	require.NoError(t, a.Release(addr))

	// Block 1 is now the head: its byte 0 holds prev = 0, which no longer
	// reads as a valid chunk count.
	require.ErrorIs(t, a.Release(addr), ErrBadAddress)
	require.ErrorIs(t, a.Release(addr+3), ErrBadAddress)
	require.NoError(t, a.Check())
}

func Test_Release_LogsRejection(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := New(&Options{Logger: log})

	addr, _, err := a.Acquire(10)
	require.NoError(t, err)
	require.NoError(t, a.Release(addr))
	require.Contains(t, out.String(), "msg=release")

	require.Error(t, a.Release(addr))
	require.Contains(t, out.String(), "level=WARN")
	require.Contains(t, out.String(), "release rejected")
}

// Test_Release_Integrity verifies unrelated releases never touch live data.
func Test_Release_Integrity(t *testing.T) {
	a := newTestArena(t)

	var addrs []Addr
	var payloads [][]byte
	for i := range 10 {
		addr, p, err := a.Acquire(10 + i*7)
		require.NoError(t, err)
		fill(p, byte(i+1))
		addrs = append(addrs, addr)
		payloads = append(payloads, p)
	}

	for i := 0; i < len(addrs); i += 2 {
		require.NoError(t, a.Release(addrs[i]))
	}
	for i := 1; i < len(addrs); i += 2 {
		requireFilled(t, payloads[i], byte(i+1), "block %d", i)
	}
	require.NoError(t, a.Check())
	requireNoOverlap(t, a)
	requireConserved(t, a)
}
