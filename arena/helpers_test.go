package arena

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestArena returns a fresh arena with live tracking enabled.
func newTestArena(t testing.TB) *Arena {
	t.Helper()
	a := New(nil)
	require.NoError(t, a.Check())
	return a
}

// freeIndices returns the free list as block indices, head first.
func freeIndices(t testing.TB, a *Arena) []format.BlockIndex {
	t.Helper()
	blocks, err := a.FreeList()
	require.NoError(t, err)
	out := make([]format.BlockIndex, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Index)
	}
	return out
}

// requireConserved checks that live + free + reserved bytes cover the arena.
func requireConserved(t testing.TB, a *Arena) {
	t.Helper()
	s, err := a.Stats()
	require.NoError(t, err)
	require.Equal(t, format.HeapSize, s.LiveBytes+s.FreeBytes+s.Reserved,
		"live=%d free=%d reserved=%d", s.LiveBytes, s.FreeBytes, s.Reserved)
}

// requireNoOverlap checks that no two allocated blocks share a byte.
func requireNoOverlap(t testing.TB, a *Arena) {
	t.Helper()
	blocks, err := a.Blocks()
	require.NoError(t, err)

	var live []format.Block
	for _, b := range blocks {
		if b.State == format.StateAllocated {
			live = append(live, b)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].Index < live[j].Index })
	for i := 1; i < len(live); i++ {
		require.LessOrEqual(t, live[i-1].End(), live[i].Index.Offset(),
			"blocks %v and %v overlap", live[i-1].Index, live[i].Index)
	}
}

// fill writes a repeating pattern into p.
func fill(p []byte, v byte) {
	for i := range p {
		p[i] = v
	}
}

// requireFilled checks that every byte of p equals v.
func requireFilled(t testing.TB, p []byte, v byte, msgAndArgs ...any) {
	t.Helper()
	for i := range p {
		if p[i] != v {
			require.Failf(t, "payload corrupted", "byte %d = 0x%02x, want 0x%02x %v", i, p[i], v, msgAndArgs)
		}
	}
}
