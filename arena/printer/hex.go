package printer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/arenakit/arena"
)

// charsets maps the names accepted in Options.Charset to code pages.
var charsets = map[string]*charmap.Charmap{
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// Charsets lists the accepted Options.Charset names.
func Charsets() []string {
	return []string{"cp437", "cp850", "windows-1252", "iso-8859-1", "latin1"}
}

func lookupCharset(name string) (*charmap.Charmap, error) {
	cm, ok := charsets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return cm, nil
}

// printHex writes one line per slot: absolute offset, hex bytes, and the
// bytes decoded through the configured code page. Rows are aligned to slot
// boundaries, so a range starting mid-slot is padded on the left.
func (p *Printer) printHex(window []byte, start int) error {
	cm, err := lookupCharset(p.opts.Charset)
	if err != nil {
		return err
	}

	var sb strings.Builder
	rowStart := start - start%arena.Quantum
	for row := rowStart; row < start+len(window); row += arena.Quantum {
		var hex, text strings.Builder
		for col := range arena.Quantum {
			off := row + col
			if col == arena.Quantum/2 {
				hex.WriteByte(' ')
			}
			k := off - start
			if k < 0 || k >= len(window) {
				hex.WriteString("   ")
				text.WriteByte(' ')
				continue
			}
			fmt.Fprintf(&hex, "%02x ", window[k])
			text.WriteRune(gutterRune(cm, window[k]))
		}
		fmt.Fprintf(&sb, "%04x  %s |%s|\n", row, hex.String(), text.String())
	}
	_, err = io.WriteString(p.writer, sb.String())
	return err
}

func gutterRune(cm *charmap.Charmap, b byte) rune {
	r := cm.DecodeByte(b)
	if r == 0 || !unicode.IsPrint(r) {
		return '.'
	}
	return r
}
