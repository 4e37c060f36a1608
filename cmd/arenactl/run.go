package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/printer"
	"github.com/joshuapare/arenakit/arena/snapshot"
)

var (
	runOut      string
	runStrict   bool
	runFrom     string
	runFormat   string
	runCharset  string
	runFullSync bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVarP(&runOut, "out", "o", "", "Save a snapshot of the final arena to this file")
	cmd.Flags().BoolVar(&runStrict, "strict", false, "Stop at the first failing operation")
	cmd.Flags().StringVar(&runFrom, "from", "", "Start from this snapshot instead of a fresh arena")
	cmd.Flags().StringVar(&runFormat, "format", string(printer.FormatGrid), "Format for dump operations (grid, hex, json)")
	cmd.Flags().StringVar(&runCharset, "charset", printer.DefaultCharset, "Code page for the hex text gutter")
	cmd.Flags().BoolVar(&runFullSync, "full-sync", false, "Request F_FULLFSYNC when saving on macOS")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script of arena operations",
		Long: `The run command executes an operation script against an arena, one
operation per line. Use - to read the script from stdin.

Operations:
  acquire <n> [as <name>]   allocate n payload bytes (unnamed blocks are p1, p2, ...)
  release <name|addr>       return a block to the free list
  write <name> <text>       store text (NUL-terminated) in a block's payload
  dump <start> <end>        render an inclusive byte range
  check                     verify the arena invariants
  # ...                     comment

Failed operations are reported and the run continues unless --strict is set.

Example:
  arenactl run ops.txt
  arenactl run ops.txt --out arena.qhp
  arenactl run more.txt --from arena.qhp --out arena.qhp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args)
		},
	}
	return cmd
}

// runSummary is the JSON form of a completed run.
type runSummary struct {
	Script   string      `json:"script"`
	Failures int         `json:"failures"`
	Snapshot string      `json:"snapshot,omitempty"`
	Stats    arena.Stats `json:"stats"`
}

func runScript(args []string) error {
	path := args[0]

	var src io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		src = f
	}

	a, err := openArena(runFrom)
	if err != nil {
		return err
	}

	// Operation output is suppressed for --json and --quiet; the summary
	// carries the outcome instead.
	var out io.Writer = os.Stdout
	if jsonOut || quiet {
		out = io.Discard
	}
	r := newScriptRunner(a, out)
	r.strict = runStrict
	r.dump = printer.Options{Format: printer.Format(runFormat), Charset: runCharset}

	printVerbose("Running script: %s\n", path)
	runErr := r.Run(src)

	if runOut != "" && runErr == nil {
		if err := snapshot.Save(runOut, a, &snapshot.SaveOptions{FullSync: runFullSync}); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	stats, err := a.Stats()
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(runSummary{Script: path, Failures: r.failures, Snapshot: runOut, Stats: stats})
	}

	printInfo("\n%s %d live (%s), %d free (%s), %d failed operation(s)\n",
		styleHeading.Sprint("Done:"),
		stats.LiveBlocks, humanize.IBytes(uint64(stats.LiveBytes)),
		stats.FreeBlocks, humanize.IBytes(uint64(stats.FreeBytes)),
		r.failures)
	if runOut != "" {
		printInfo("Snapshot saved to %s\n", runOut)
	}
	return nil
}

// openArena loads the snapshot at path, or returns a fresh arena when path
// is empty.
func openArena(path string) (*arena.Arena, error) {
	if path == "" {
		return arena.New(arenaOptions()), nil
	}
	printVerbose("Loading snapshot: %s\n", path)
	a, err := snapshot.Load(path, arenaOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return a, nil
}
