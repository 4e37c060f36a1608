package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/arenakit/arena"
)

// printGrid writes the classic dump: a banner, then each byte as "%03d|",
// breaking the line at every slot boundary.
func (p *Printer) printGrid(window []byte, start, end int) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--------dumping bytes %d through %d", start, end)
	for k, b := range window {
		if (start+k)%arena.Quantum == 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%03d|", b)
	}
	sb.WriteString("--------\n")
	_, err := io.WriteString(p.writer, sb.String())
	return err
}
