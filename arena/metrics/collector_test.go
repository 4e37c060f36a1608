package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena"
)

// scenarioC leaves two free blocks ([1, 5]) and one live block.
func scenarioC(t *testing.T) *arena.Arena {
	t.Helper()
	a := arena.New(nil)
	p1, _, err := a.Acquire(20)
	require.NoError(t, err)
	_, _, err = a.Acquire(20)
	require.NoError(t, err)
	require.NoError(t, a.Release(p1))
	return a
}

func TestCollector_Layout(t *testing.T) {
	c := NewCollector("test", scenarioC(t))

	expected := `
# HELP arenakit_arena_free_blocks Number of blocks on the free list.
# TYPE arenakit_arena_free_blocks gauge
arenakit_arena_free_blocks{arena="test"} 2
# HELP arenakit_arena_free_bytes Bytes held by free blocks.
# TYPE arenakit_arena_free_bytes gauge
arenakit_arena_free_bytes{arena="test"} 4048
# HELP arenakit_arena_largest_free_bytes Length of the largest free block.
# TYPE arenakit_arena_largest_free_bytes gauge
arenakit_arena_largest_free_bytes{arena="test"} 4016
# HELP arenakit_arena_live_blocks Number of allocated blocks.
# TYPE arenakit_arena_live_blocks gauge
arenakit_arena_live_blocks{arena="test"} 1
# HELP arenakit_arena_live_bytes Bytes held by allocated blocks, headers included.
# TYPE arenakit_arena_live_bytes gauge
arenakit_arena_live_bytes{arena="test"} 32
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"arenakit_arena_free_blocks",
		"arenakit_arena_free_bytes",
		"arenakit_arena_largest_free_bytes",
		"arenakit_arena_live_blocks",
		"arenakit_arena_live_bytes",
	))
}

func TestCollector_Counters(t *testing.T) {
	a := scenarioC(t)
	_, _, err := a.Acquire(5000)
	require.Error(t, err)
	require.Error(t, a.Release(7))

	expected := `
# HELP arenakit_arena_acquire_total Count of Acquire calls since the last Init.
# TYPE arenakit_arena_acquire_total counter
arenakit_arena_acquire_total{arena="c"} 3
# HELP arenakit_arena_acquire_failures_total Count of Acquire calls that returned an error.
# TYPE arenakit_arena_acquire_failures_total counter
arenakit_arena_acquire_failures_total{arena="c"} 1
# HELP arenakit_arena_release_total Count of successful Release calls.
# TYPE arenakit_arena_release_total counter
arenakit_arena_release_total{arena="c"} 1
# HELP arenakit_arena_release_rejected_total Count of Release calls refused by address validation.
# TYPE arenakit_arena_release_rejected_total counter
arenakit_arena_release_rejected_total{arena="c"} 1
# HELP arenakit_arena_splits_total Count of blocks split on acquire.
# TYPE arenakit_arena_splits_total counter
arenakit_arena_splits_total{arena="c"} 2
# HELP arenakit_arena_acquired_bytes_total Block bytes handed out, headers included.
# TYPE arenakit_arena_acquired_bytes_total counter
arenakit_arena_acquired_bytes_total{arena="c"} 64
# HELP arenakit_arena_released_bytes_total Block bytes returned to the free list.
# TYPE arenakit_arena_released_bytes_total counter
arenakit_arena_released_bytes_total{arena="c"} 32
`
	require.NoError(t, testutil.CollectAndCompare(NewCollector("c", a), strings.NewReader(expected),
		"arenakit_arena_acquire_total",
		"arenakit_arena_acquire_failures_total",
		"arenakit_arena_release_total",
		"arenakit_arena_release_rejected_total",
		"arenakit_arena_splits_total",
		"arenakit_arena_acquired_bytes_total",
		"arenakit_arena_released_bytes_total",
	))
}

func TestCollector_Count(t *testing.T) {
	c := NewCollector("fresh", arena.New(nil))
	require.Equal(t, 12, testutil.CollectAndCount(c))
}

func TestCollector_MultipleArenas(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("one", arena.New(nil))))
	require.NoError(t, reg.Register(NewCollector("two", arena.NewLocked(scenarioC(t)))))

	// The same arena name twice collides on identical descriptors.
	require.Error(t, reg.Register(NewCollector("one", arena.New(nil))))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 2, mf.GetName())
	}
}

type failingSource struct{ err error }

func (f failingSource) Stats() (arena.Stats, error) { return arena.Stats{}, f.err }

func TestCollector_StatsError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCollector("bad", failingSource{err: boom})

	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	var metrics []prometheus.Metric
	for m := range ch {
		metrics = append(metrics, m)
	}
	require.Len(t, metrics, 1)

	var out dto.Metric
	require.ErrorIs(t, metrics[0].Write(&out), boom)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	_, err := reg.Gather()
	require.Error(t, err)
}
