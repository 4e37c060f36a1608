// Package metrics exports arena statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/arenakit/arena"
)

const namespace = "arenakit"
const subsystem = "arena"

// StatsSource is anything that can report arena statistics. Both
// *arena.Arena and *arena.Locked satisfy it; use Locked when the arena is
// shared with other goroutines, since Collect runs on the scrape goroutine.
type StatsSource interface {
	Stats() (arena.Stats, error)
}

// Collector is a prometheus.Collector reading one arena on every scrape.
type Collector struct {
	src StatsSource

	acquireTotal    *prometheus.Desc
	acquireFailures *prometheus.Desc
	releaseTotal    *prometheus.Desc
	releaseRejected *prometheus.Desc
	splitsTotal     *prometheus.Desc
	bytesAcquired   *prometheus.Desc
	bytesReleased   *prometheus.Desc
	freeBlocks      *prometheus.Desc
	freeBytes       *prometheus.Desc
	largestFree     *prometheus.Desc
	liveBlocks      *prometheus.Desc
	liveBytes       *prometheus.Desc
}

// NewCollector returns a collector for src. name becomes the constant
// "arena" label so several arenas can be registered side by side.
func NewCollector(name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"arena": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, metric), help, nil, labels)
	}
	return &Collector{
		src:             src,
		acquireTotal:    desc("acquire_total", "Count of Acquire calls since the last Init."),
		acquireFailures: desc("acquire_failures_total", "Count of Acquire calls that returned an error."),
		releaseTotal:    desc("release_total", "Count of successful Release calls."),
		releaseRejected: desc("release_rejected_total", "Count of Release calls refused by address validation."),
		splitsTotal:     desc("splits_total", "Count of blocks split on acquire."),
		bytesAcquired:   desc("acquired_bytes_total", "Block bytes handed out, headers included."),
		bytesReleased:   desc("released_bytes_total", "Block bytes returned to the free list."),
		freeBlocks:      desc("free_blocks", "Number of blocks on the free list."),
		freeBytes:       desc("free_bytes", "Bytes held by free blocks."),
		largestFree:     desc("largest_free_bytes", "Length of the largest free block."),
		liveBlocks:      desc("live_blocks", "Number of allocated blocks."),
		liveBytes:       desc("live_bytes", "Bytes held by allocated blocks, headers included."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquireTotal
	ch <- c.acquireFailures
	ch <- c.releaseTotal
	ch <- c.releaseRejected
	ch <- c.splitsTotal
	ch <- c.bytesAcquired
	ch <- c.bytesReleased
	ch <- c.freeBlocks
	ch <- c.freeBytes
	ch <- c.largestFree
	ch <- c.liveBlocks
	ch <- c.liveBytes
}

// Collect reads the arena once. A corrupt arena yields a single invalid
// metric carrying the error, which fails the scrape instead of reporting
// stale numbers.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s, err := c.src.Stats()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.freeBlocks, err)
		return
	}

	counter := func(d *prometheus.Desc, v int64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	gauge := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}

	counter(c.acquireTotal, s.AcquireCalls)
	counter(c.acquireFailures, s.AcquireFailures)
	counter(c.releaseTotal, s.ReleaseCalls)
	counter(c.releaseRejected, s.ReleaseRejected)
	counter(c.splitsTotal, s.Splits)
	counter(c.bytesAcquired, s.BytesAcquired)
	counter(c.bytesReleased, s.BytesReleased)
	gauge(c.freeBlocks, s.FreeBlocks)
	gauge(c.freeBytes, s.FreeBytes)
	gauge(c.largestFree, s.LargestFree)
	gauge(c.liveBlocks, s.LiveBlocks)
	gauge(c.liveBytes, s.LiveBytes)
}
