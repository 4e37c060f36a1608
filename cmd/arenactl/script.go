package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/printer"
)

// errSyntax marks a malformed script line. Syntax errors always stop a run.
var errSyntax = errors.New("syntax error")

// scriptRunner executes arena operation scripts line by line:
//
//	acquire <n> [as <name>]
//	release <name|addr>
//	write <name> <text>
//	dump <start> <end>
//	check
//	# comment
//
// Unnamed acquisitions are called p1, p2, ... in order.
type scriptRunner struct {
	a      *arena.Arena
	out    io.Writer
	strict bool
	dump   printer.Options

	names map[string]arena.Addr
	seq   int

	// failures counts operations that returned an error.
	failures int
}

func newScriptRunner(a *arena.Arena, out io.Writer) *scriptRunner {
	return &scriptRunner{
		a:     a,
		out:   out,
		dump:  printer.DefaultOptions(),
		names: make(map[string]arena.Addr),
	}
}

// Run executes every line of src. Operation errors are reported and the run
// continues unless strict is set; syntax errors stop it immediately.
func (r *scriptRunner) Run(src io.Reader) error {
	sc := bufio.NewScanner(src)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		err := r.exec(text)
		if err == nil {
			continue
		}
		if errors.Is(err, errSyntax) {
			return fmt.Errorf("line %d: %w", line, err)
		}
		r.failures++
		fmt.Fprintf(r.out, "%s line %d: %v\n", styleError.Sprint("!"), line, err)
		if r.strict {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func (r *scriptRunner) exec(text string) error {
	fields := strings.Fields(text)
	op, args := strings.ToLower(fields[0]), fields[1:]

	switch op {
	case "acquire", "alloc":
		return r.acquire(args)
	case "release", "free":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: release <name|addr>", errSyntax)
		}
		return r.release(args[0])
	case "write":
		if len(args) < 2 {
			return fmt.Errorf("%w: usage: write <name> <text>", errSyntax)
		}
		// Everything after the name is written verbatim, inner spaces included.
		rest := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
		rest = strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		return r.write(args[0], rest)
	case "dump":
		if len(args) != 2 {
			return fmt.Errorf("%w: usage: dump <start> <end>", errSyntax)
		}
		start, err1 := strconv.Atoi(args[0])
		end, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("%w: dump bounds must be integers", errSyntax)
		}
		return printer.New(r.a, r.out, r.dump).PrintRange(start, end)
	case "check":
		if err := r.a.Check(); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "check %s\n", styleOK.Sprint("ok"))
		return nil
	default:
		return fmt.Errorf("%w: unknown operation %q", errSyntax, fields[0])
	}
}

func (r *scriptRunner) acquire(args []string) error {
	var name string
	switch {
	case len(args) == 1:
		// Generated names are assigned only on success.
	case len(args) == 3 && strings.EqualFold(args[1], "as"):
		name = args[2]
	default:
		return fmt.Errorf("%w: usage: acquire <n> [as <name>]", errSyntax)
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: size %q is not an integer", errSyntax, args[0])
	}

	addr, payload, err := r.a.Acquire(size)
	if err != nil {
		return fmt.Errorf("acquire %d: %w", size, err)
	}
	if name == "" {
		r.seq++
		name = "p" + strconv.Itoa(r.seq)
	}
	r.names[name] = addr
	i, _ := addr.Index()
	fmt.Fprintf(r.out, "acquire %d -> %s @%d (block %v, %d bytes)\n",
		size, styleLive.Sprint(name), addr, i, len(payload)+1)
	return nil
}

// resolve maps a script name, or a bare decimal address, to an Addr.
func (r *scriptRunner) resolve(ref string) (arena.Addr, error) {
	if addr, ok := r.names[ref]; ok {
		return addr, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(ref, "@"), 10, 16)
	if err != nil {
		return arena.NilAddr, fmt.Errorf("unknown name %q", ref)
	}
	return arena.Addr(n), nil
}

func (r *scriptRunner) release(ref string) error {
	addr, err := r.resolve(ref)
	if err != nil {
		return err
	}
	if err := r.a.Release(addr); err != nil {
		return fmt.Errorf("release %s: %w", ref, err)
	}
	fmt.Fprintf(r.out, "release %s @%d\n", styleFree.Sprint(ref), addr)
	return nil
}

func (r *scriptRunner) write(ref, text string) error {
	addr, err := r.resolve(ref)
	if err != nil {
		return err
	}
	payload, err := r.a.Payload(addr)
	if err != nil {
		return fmt.Errorf("write %s: %w", ref, err)
	}
	// Strings are stored NUL-terminated.
	if len(text)+1 > len(payload) {
		return fmt.Errorf("write %s: %d bytes do not fit in a %d-byte payload", ref, len(text)+1, len(payload))
	}
	n := copy(payload, text)
	payload[n] = 0
	fmt.Fprintf(r.out, "write %s %q (%d bytes)\n", ref, text, n+1)
	return nil
}
