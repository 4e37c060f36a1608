package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/printer"
)

var demoScenario string

func init() {
	cmd := newDemoCmd()
	cmd.Flags().StringVarP(&demoScenario, "scenario", "s", "a", "Scenario to run (a, b, c, all)")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the demonstration scenarios",
		Long: `The demo command replays the reference scenarios on a fresh arena and
prints every step followed by a grid dump of the first blocks.

Scenarios:
  a    acquire 16, store "hello world", release, re-acquire 5 in the same block
  b    exhaust a fresh arena with one maximal request, then fail a 1-byte one
  c    acquire 16 twice, release both, show LIFO free-list order

Example:
  arenactl demo
  arenactl demo --scenario all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

// scenarioResult is what a scenario reports for JSON output.
type scenarioResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Steps    []string `json:"steps"`
	FreeList []uint8  `json:"free_list"`
	Error    string   `json:"error,omitempty"`
}

type scenario struct {
	name string
	run  func(a *arena.Arena, step func(string, ...any)) error
}

var scenarios = map[string]scenario{
	"a": {"A: release then LIFO reuse", scenarioA},
	"b": {"B: exhaustion", scenarioB},
	"c": {"C: free-list order", scenarioC},
}

func runDemo() error {
	var names []string
	switch key := strings.ToLower(demoScenario); key {
	case "all":
		names = []string{"a", "b", "c"}
	case "a", "b", "c":
		names = []string{key}
	default:
		return fmt.Errorf("unknown scenario: %s (must be a, b, c, or all)", demoScenario)
	}

	var out io.Writer = os.Stdout
	if jsonOut || quiet {
		out = io.Discard
	}

	results := make([]scenarioResult, 0, len(names))
	failed := 0
	for _, key := range names {
		res := playScenario(scenarios[key], out)
		if !res.Passed {
			failed++
		}
		results = append(results, res)
	}

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}

// playScenario runs sc on a fresh arena and writes its narration to out.
func playScenario(sc scenario, out io.Writer) scenarioResult {
	a := arena.New(arenaOptions())
	res := scenarioResult{Name: sc.name}

	fmt.Fprintf(out, "%s\n", styleHeading.Sprint("Scenario "+sc.name))
	step := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		res.Steps = append(res.Steps, msg)
		fmt.Fprintf(out, "  %s\n", msg)
	}

	err := sc.run(a, step)
	if err == nil {
		err = a.Check()
	}

	free, ferr := a.FreeList()
	if ferr == nil {
		for _, b := range free {
			res.FreeList = append(res.FreeList, uint8(b.Index))
		}
	}
	fmt.Fprintf(out, "  free list: %v\n", res.FreeList)
	if derr := printer.New(a, out, printer.DefaultOptions()).PrintRange(0, 4*arena.Quantum-1); derr != nil && err == nil {
		err = fmt.Errorf("dump: %w", derr)
	}

	if err != nil {
		res.Error = err.Error()
		fmt.Fprintf(out, "  %s %v\n\n", styleError.Sprint("FAIL"), err)
		return res
	}
	res.Passed = true
	fmt.Fprintf(out, "  %s\n\n", styleOK.Sprint("PASS"))
	return res
}

// scenarioA is the classic demonstration: a released block is handed back
// by the next request that fits in it.
func scenarioA(a *arena.Arena, step func(string, ...any)) error {
	p, buf, err := a.Acquire(16)
	if err != nil {
		return fmt.Errorf("acquire 16: %w", err)
	}
	step("acquire(16) -> @%d", p)

	copy(buf, "hello world\x00")
	if got := cString(buf); got != "hello world" {
		return fmt.Errorf("read back %q", got)
	}
	step("wrote %q", "hello world")

	if err := a.Release(p); err != nil {
		return fmt.Errorf("release @%d: %w", p, err)
	}
	step("release(@%d)", p)

	q, buf, err := a.Acquire(5)
	if err != nil {
		return fmt.Errorf("acquire 5: %w", err)
	}
	step("acquire(5) -> @%d", q)
	if q != p {
		return fmt.Errorf("expected reuse of @%d, got @%d", p, q)
	}

	copy(buf, "hell\x00")
	if got := cString(buf); got != "hell" {
		return fmt.Errorf("read back %q", got)
	}
	step("wrote %q", "hell")

	if err := a.Release(q); err != nil {
		return fmt.Errorf("release @%d: %w", q, err)
	}
	step("release(@%d)", q)
	return nil
}

// scenarioB fills a fresh arena with its largest possible allocation. A
// 4080-byte request needs 4081 bytes with its header and is refused.
func scenarioB(a *arena.Arena, step func(string, ...any)) error {
	if _, _, err := a.Acquire(arena.MaxBlockBytes); !errors.Is(err, arena.ErrNoSpace) {
		return fmt.Errorf("acquire %d: expected no space, got %v", arena.MaxBlockBytes, err)
	}
	step("acquire(%d) -> no space (block would exceed %d bytes)", arena.MaxBlockBytes, arena.MaxBlockBytes)

	largest := arena.MaxBlockBytes - 1
	p, _, err := a.Acquire(largest)
	if err != nil {
		return fmt.Errorf("acquire %d: %w", largest, err)
	}
	step("acquire(%d) -> @%d", largest, p)

	if _, _, err := a.Acquire(1); !errors.Is(err, arena.ErrNoSpace) {
		return fmt.Errorf("acquire 1: expected no space, got %v", err)
	}
	step("acquire(1) -> no space")
	return nil
}

// scenarioC shows that releases push onto the list head.
func scenarioC(a *arena.Arena, step func(string, ...any)) error {
	p1, _, err := a.Acquire(16)
	if err != nil {
		return err
	}
	step("acquire(16) -> @%d", p1)
	p2, _, err := a.Acquire(16)
	if err != nil {
		return err
	}
	step("acquire(16) -> @%d", p2)

	if err := a.Release(p1); err != nil {
		return err
	}
	step("release(@%d)", p1)
	if err := a.Release(p2); err != nil {
		return err
	}
	step("release(@%d)", p2)

	free, err := a.FreeList()
	if err != nil {
		return err
	}
	i2, _ := p2.Index()
	if len(free) < 2 || free[0].Index != i2 {
		return fmt.Errorf("expected block %v at the list head", i2)
	}
	return nil
}

// cString returns b up to its first NUL.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
