package arena

import (
	"math/bits"

	"github.com/joshuapare/arenakit/internal/format"
)

// indexSet is a bitmap over the 256-entry block index space.
type indexSet [format.SlotCount / 64]uint64

func (s *indexSet) add(i format.BlockIndex) {
	s[i>>6] |= 1 << (i & 63)
}

func (s *indexSet) remove(i format.BlockIndex) {
	s[i>>6] &^= 1 << (i & 63)
}

func (s *indexSet) has(i format.BlockIndex) bool {
	return s[i>>6]&(1<<(i&63)) != 0
}

func (s *indexSet) len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}
