// Package printer renders arena byte ranges for human inspection. It only
// reads arena memory; nothing here mutates allocator state.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/buf"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatGrid prints every byte as a zero-padded decimal, one 16-byte
	// slot per line.
	FormatGrid Format = "grid"

	// FormatHex prints offset, hex bytes, and a decoded text gutter.
	FormatHex Format = "hex"

	// FormatJSON prints the block map and free-list order for the range.
	FormatJSON Format = "json"
)

// DefaultCharset is the code page used for the hex text gutter.
const DefaultCharset = "cp437"

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (grid, hex, json).
	// Default: FormatGrid
	Format Format

	// Charset names the code page used to decode the hex text gutter.
	// Default: cp437
	Charset string
}

// DefaultOptions returns the defaults used when Render receives nil.
func DefaultOptions() Options {
	return Options{
		Format:  FormatGrid,
		Charset: DefaultCharset,
	}
}

// Source is the read-only view of an arena the printer needs.
// *arena.Arena satisfies it.
type Source interface {
	Bytes() []byte
	Blocks() ([]arena.Block, error)
	FreeList() ([]arena.Block, error)
}

// Printer writes formatted arena ranges to a writer.
type Printer struct {
	opts   Options
	writer io.Writer
	src    Source
}

// New creates a new Printer.
//
// Example:
//
//	a := arena.New(nil)
//	p := printer.New(a, os.Stdout, printer.DefaultOptions())
//	p.PrintRange(0, 63)
func New(src Source, w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatGrid
	}
	if opts.Charset == "" {
		opts.Charset = DefaultCharset
	}
	return &Printer{opts: opts, writer: w, src: src}
}

// PrintRange renders the inclusive byte range [start, end].
// It requires 0 <= start <= end < arena.HeapSize.
func (p *Printer) PrintRange(start, end int) error {
	if start < 0 || end >= arena.HeapSize {
		return fmt.Errorf("%w: [%d, %d] outside [0, %d)", ErrRange, start, end, arena.HeapSize)
	}
	window, ok := buf.Range(p.src.Bytes(), start, end)
	if !ok {
		return fmt.Errorf("%w: [%d, %d]", ErrRange, start, end)
	}

	switch p.opts.Format {
	case FormatGrid:
		return p.printGrid(window, start, end)
	case FormatHex:
		return p.printHex(window, start)
	case FormatJSON:
		return p.printJSON(start, end)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, p.opts.Format)
	}
}

// Render is a convenience wrapper that returns the rendered range as a
// string. A nil opts means DefaultOptions().
func Render(src Source, start, end int, opts *Options) (string, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	var sb strings.Builder
	if err := New(src, &sb, o).PrintRange(start, end); err != nil {
		return "", err
	}
	return sb.String(), nil
}
