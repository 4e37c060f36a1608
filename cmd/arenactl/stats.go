package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/metrics"
)

var statsProm bool

func init() {
	cmd := newStatsCmd()
	cmd.Flags().BoolVar(&statsProm, "prometheus", false, "Print metrics in the Prometheus text exposition format")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <snapshot>",
		Short: "Show arena usage statistics",
		Long: `The stats command shows how a saved arena is used: live and free block
counts, byte totals, the largest free block, and fragmentation.

Counters such as acquire calls are not persisted in snapshots and read as
zero.

Example:
  arenactl stats arena.qhp
  arenactl stats arena.qhp --json
  arenactl stats arena.qhp --prometheus`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	path := args[0]
	a, err := openArena(path)
	if err != nil {
		return err
	}

	if statsProm {
		return writeProm(a, path)
	}

	s, err := a.Stats()
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(s)
	}

	printInfo("\nArena Statistics: %s\n", path)
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("Layout:\n")
	printInfo("  Capacity: %s (%d slots of %d bytes)\n", humanize.IBytes(arena.HeapSize), arena.HeapSize/arena.Quantum, arena.Quantum)
	printInfo("  Reserved: %s\n", humanize.IBytes(uint64(s.Reserved)))
	printInfo("  Live: %s blocks, %s\n", styleLive.Sprint(humanize.Comma(int64(s.LiveBlocks))), humanize.IBytes(uint64(s.LiveBytes)))
	printInfo("  Free: %s blocks, %s\n", styleFree.Sprint(humanize.Comma(int64(s.FreeBlocks))), humanize.IBytes(uint64(s.FreeBytes)))
	printInfo("  Largest free: %s\n", humanize.IBytes(uint64(s.LargestFree)))
	printInfo("  Fragmentation: %s\n\n", fragmentation(s))

	free, err := a.FreeList()
	if err != nil {
		return err
	}
	printInfo("Free list (head first):\n")
	if len(free) == 0 {
		printInfo("  (empty)\n")
	}
	for _, b := range free {
		printInfo("  %v %s %s\n", b.Index, formatRange(b), humanize.IBytes(uint64(b.Len())))
	}
	return nil
}

// fragmentation is the share of free bytes outside the largest free block.
func fragmentation(s arena.Stats) string {
	if s.FreeBytes == 0 {
		return "n/a"
	}
	pct := 100 * float64(s.FreeBytes-s.LargestFree) / float64(s.FreeBytes)
	return humanize.FtoaWithDigits(pct, 1) + "%"
}

// writeProm registers a collector for a and prints one scrape.
func writeProm(a *arena.Arena, name string) error {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(metrics.NewCollector(name, a)); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to collect metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}
