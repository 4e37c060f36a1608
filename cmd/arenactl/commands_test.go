package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena/snapshot"
)

const scenarioCScript = `# two blocks, first released
acquire 16 as first
acquire 16 as second
write second kept
release first
`

// saveScenario runs scenarioCScript and returns the snapshot path.
func saveScenario(t *testing.T) string {
	t.Helper()
	resetFlags()
	snap := filepath.Join(t.TempDir(), "arena.qhp")
	runOut = snap
	_, err := captureOutput(t, func() error {
		return runScript([]string{writeScript(t, scenarioCScript)})
	})
	require.NoError(t, err)
	resetFlags()
	return snap
}

func TestRunCommand(t *testing.T) {
	resetFlags()
	snap := filepath.Join(t.TempDir(), "arena.qhp")
	runOut = snap

	output, err := captureOutput(t, func() error {
		return runScript([]string{writeScript(t, scenarioCScript)})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"acquire 16 -> first @17",
		"acquire 16 -> second @49",
		"release first @17",
		"Done: 1 live (32 B), 2 free (4.0 KiB), 0 failed",
		"Snapshot saved to " + snap,
	})

	a, err := snapshot.Load(snap, nil)
	require.NoError(t, err)
	require.NoError(t, a.Check())
}

func TestRunCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runScript([]string{writeScript(t, "acquire 5000\nacquire 10\n")})
	})
	require.NoError(t, err)
	assertJSON(t, output)
	assertContains(t, output, []string{`"failures": 1`, `"live_blocks": 1`})
	assertNotContains(t, output, []string{"acquire 10 ->"})
}

func TestRunCommand_FromSnapshot(t *testing.T) {
	snap := saveScenario(t)
	runFrom = snap

	output, err := captureOutput(t, func() error {
		return runScript([]string{writeScript(t, "release @49\ncheck\n")})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"release @49 @49", "check ok", "0 live"})
}

func TestRunCommand_StrictFails(t *testing.T) {
	resetFlags()
	runStrict = true
	snap := filepath.Join(t.TempDir(), "never.qhp")
	runOut = snap

	_, err := captureOutput(t, func() error {
		return runScript([]string{writeScript(t, "acquire 4080\n")})
	})
	require.Error(t, err)

	_, statErr := os.Stat(snap)
	require.True(t, os.IsNotExist(statErr), "no snapshot is written for a failed run")
}

func TestDumpCommand(t *testing.T) {
	snap := saveScenario(t)

	tests := []struct {
		name        string
		setup       func()
		wantErr     bool
		wantContain []string
		wantJSON    bool
	}{
		{
			name:        "grid default range",
			setup:       func() {},
			wantContain: []string{"--------dumping bytes 0 through 63\n001|", "--------\n"},
		},
		{
			name:        "hex",
			setup:       func() { dumpFormat, dumpStart, dumpEnd = "hex", 48, 63 },
			wantContain: []string{"0030  02 6b 65 70 74 00", "|.kept."},
		},
		{
			name:        "json flag",
			setup:       func() { jsonOut = true },
			wantJSON:    true,
			wantContain: []string{`"free_list"`, `"allocated"`},
		},
		{
			name:        "block map",
			setup:       func() { dumpBlocks = true },
			wantContain: []string{"BLOCK", "#1", "#3", "#5", "free", "allocated", "prev=nil next=#5"},
		},
		{
			name:    "range past end",
			setup:   func() { dumpEnd = 4096 },
			wantErr: true,
		},
		{
			name:    "unknown charset",
			setup:   func() { dumpFormat, dumpCharset = "hex", "klingon" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			tt.setup()

			output, err := captureOutput(t, func() error {
				return runDump([]string{snap})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestStatsCommand(t *testing.T) {
	snap := saveScenario(t)

	output, err := captureOutput(t, func() error {
		return runStats([]string{snap})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"Capacity: 4.0 KiB (256 slots of 16 bytes)",
		"Live: 1 blocks, 32 B",
		"Free: 2 blocks, 4.0 KiB",
		"Largest free: 3.9 KiB",
		"#1 [16, 48) 32 B",
		"#5 [80, 4096)",
	})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runStats([]string{snap})
	})
	require.NoError(t, err)
	assertJSON(t, output)
	assertContains(t, output, []string{`"free_blocks": 2`, `"live_bytes": 32`})

	resetFlags()
	statsProm = true
	output, err = captureOutput(t, func() error {
		return runStats([]string{snap})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"# TYPE arenakit_arena_free_blocks gauge",
		"arenakit_arena_free_blocks{arena=\"" + snap + "\"} 2",
	})
}

func TestCheckCommand(t *testing.T) {
	snap := saveScenario(t)

	output, err := captureOutput(t, func() error {
		return runCheck([]string{snap})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"OK " + snap})

	// Flip one image byte so the checksum no longer matches.
	data, err := os.ReadFile(snap)
	require.NoError(t, err)
	data[snapshot.HeaderSize+17] ^= 0xFF
	bad := filepath.Join(t.TempDir(), "bad.qhp")
	require.NoError(t, os.WriteFile(bad, data, 0o644))

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runCheck([]string{bad})
	})
	require.ErrorIs(t, err, errCheckFailed)
	assertJSON(t, output)
	assertContains(t, output, []string{`"valid": false`, "checksum mismatch"})
}

func TestDemoCommand(t *testing.T) {
	for _, sc := range []string{"a", "b", "c"} {
		t.Run(sc, func(t *testing.T) {
			resetFlags()
			demoScenario = sc
			output, err := captureOutput(t, runDemo)
			require.NoError(t, err)
			assertContains(t, output, []string{"PASS", "--------dumping bytes 0 through 63"})
			assertNotContains(t, output, []string{"FAIL"})
		})
	}

	resetFlags()
	demoScenario = "all"
	jsonOut = true
	output, err := captureOutput(t, runDemo)
	require.NoError(t, err)
	assertJSON(t, output)
	assertContains(t, output, []string{`"A: release then LIFO reuse"`, `"passed": true`})

	resetFlags()
	demoScenario = "z"
	_, err = captureOutput(t, runDemo)
	require.Error(t, err)
}

func TestDemoScenarioOutput(t *testing.T) {
	resetFlags()
	demoScenario = "c"
	output, err := captureOutput(t, runDemo)
	require.NoError(t, err)
	assertContains(t, output, []string{
		"acquire(16) -> @17",
		"acquire(16) -> @49",
		"release(@17)",
		"release(@49)",
		"free list: [3 1 5]",
	})

	demoScenario = "b"
	output, err = captureOutput(t, runDemo)
	require.NoError(t, err)
	assertContains(t, output, []string{"acquire(4080) -> no space", "acquire(4079) -> @17", "acquire(1) -> no space", "free list: []"})
}

// failingWriter accepts nothing.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPlayScenario_ReportsDumpError(t *testing.T) {
	resetFlags()
	res := playScenario(scenarios["a"], failingWriter{})
	require.False(t, res.Passed)
	require.Contains(t, res.Error, "dump: disk full")
}
