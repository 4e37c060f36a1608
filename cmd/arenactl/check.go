package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena/snapshot"
)

// errCheckFailed is returned after the report has been printed.
var errCheckFailed = errors.New("arena check failed")

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <snapshot>",
		Short: "Verify snapshot integrity and arena invariants",
		Long: `The check command verifies a snapshot's header and checksum, then the
arena invariants: the free list has no cycles, prev/next links agree, and
the blocks tile the arena exactly. It exits non-zero on any failure.

Example:
  arenactl check arena.qhp
  arenactl check arena.qhp --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

func runCheck(args []string) error {
	path := args[0]

	printVerbose("Checking snapshot: %s\n", path)
	a, err := snapshot.Load(path, arenaOptions())
	if err == nil {
		err = a.Check()
	}

	result := map[string]any{
		"file":  path,
		"valid": err == nil,
	}
	if err != nil {
		result["error"] = err.Error()
	}

	if jsonOut {
		if perr := printJSON(result); perr != nil {
			return perr
		}
	} else if err == nil {
		printInfo("%s %s\n", styleOK.Sprint("OK"), path)
	} else {
		printInfo("%s %s: %v\n", styleError.Sprint("FAIL"), path, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", errCheckFailed, path)
	}
	return nil
}
