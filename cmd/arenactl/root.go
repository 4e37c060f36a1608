package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	noColor  bool
	logLevel string
	logDir   string
)

var (
	log      = logger.Discard()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Exercise and inspect a 4 KiB quantum arena allocator",
	Long: `arenactl drives the arenakit allocator: a 4096-byte arena carved into
16-byte slots, with an intrusive doubly linked free list and first-fit
allocation. It can replay the demonstration scenarios, run scripts of
acquire/release operations, and inspect snapshots saved by those scripts.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Allocator log level (debug, info, warn, error); logging is off when empty")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write logs to a daily file in this directory instead of stderr")
}

// setup configures colour and logging from the global flags.
func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	level := logLevel
	if level == "" && verbose {
		level = "debug"
	}
	if level == "" {
		log = logger.Default()
		return nil
	}

	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	l, closer, err := logger.New(logger.Options{
		Enabled: true,
		Output:  os.Stderr,
		LogDir:  logDir,
		Level:   lvl,
	})
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	log, closeLog = l, closer
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// arenaOptions returns the options every command builds arenas with.
func arenaOptions() *arena.Options {
	return &arena.Options{Logger: log}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprint(os.Stderr, styleError.Sprint("Error: "))
	fmt.Fprintf(os.Stderr, format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
