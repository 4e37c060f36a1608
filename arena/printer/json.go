package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/arenakit/arena"
)

// jsonBlock represents one block in JSON format.
type jsonBlock struct {
	Index  uint8  `json:"index"`
	Offset int    `json:"offset"`
	State  string `json:"state"`
	Chunks uint8  `json:"chunks"`
	Bytes  int    `json:"bytes"`
	Prev   *uint8 `json:"prev,omitempty"`
	Next   *uint8 `json:"next,omitempty"`
}

// jsonDump is the document printed for FormatJSON.
type jsonDump struct {
	Start    int         `json:"start"`
	End      int         `json:"end"`
	Head     uint8       `json:"head"`
	FreeList []uint8     `json:"free_list"`
	Blocks   []jsonBlock `json:"blocks"`
}

// printJSON prints every block overlapping [start, end] plus the full
// free-list order.
func (p *Printer) printJSON(start, end int) error {
	blocks, err := p.src.Blocks()
	if err != nil {
		return fmt.Errorf("scan blocks: %w", err)
	}
	free, err := p.src.FreeList()
	if err != nil {
		return fmt.Errorf("walk free list: %w", err)
	}

	doc := jsonDump{
		Start:    start,
		End:      end,
		Head:     p.src.Bytes()[0],
		FreeList: make([]uint8, 0, len(free)),
		Blocks:   make([]jsonBlock, 0),
	}
	for _, b := range free {
		doc.FreeList = append(doc.FreeList, uint8(b.Index))
	}
	for _, b := range blocks {
		if b.End() <= start || b.Index.Offset() > end {
			continue
		}
		jb := jsonBlock{
			Index:  uint8(b.Index),
			Offset: b.Index.Offset(),
			State:  b.State.String(),
			Chunks: b.Chunks,
			Bytes:  b.Len(),
		}
		if b.State == arena.StateFree {
			prev, next := uint8(b.Prev), uint8(b.Next)
			jb.Prev, jb.Next = &prev, &next
		}
		doc.Blocks = append(doc.Blocks, jb)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
