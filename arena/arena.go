package arena

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/arenakit/internal/format"
	"github.com/joshuapare/arenakit/internal/logger"
)

// Arena is a 4 KiB in-place allocator. The zero value is usable after Init;
// New returns an initialised arena.
type Arena struct {
	mem []byte
	log *slog.Logger

	// live records which block indices are currently handed out.
	live      indexSet
	trackLive bool

	stats allocatorStats
}

// New creates an arena holding a single free block that spans slots 1..255.
func New(opts *Options) *Arena {
	a := &Arena{mem: make([]byte, format.HeapSize)}
	a.configure(opts)
	a.Init()
	return a
}

// FromBytes adopts a copy of an existing arena image, such as one read from
// a snapshot. The image must pass Check.
func FromBytes(image []byte, opts *Options) (*Arena, error) {
	if len(image) != format.HeapSize {
		return nil, fmt.Errorf("arena image is %d bytes, want %d: %w", len(image), format.HeapSize, format.ErrTruncated)
	}

	a := &Arena{mem: make([]byte, format.HeapSize)}
	a.configure(opts)
	copy(a.mem, image)

	blocks, err := a.Blocks()
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		if b.State == format.StateAllocated {
			a.live.add(b.Index)
		}
	}
	if err := a.Check(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) configure(opts *Options) {
	if opts == nil {
		opts = &DefaultOptions
	}
	a.log = opts.Logger
	if a.log == nil {
		a.log = logger.Default()
	}
	a.trackLive = !opts.DisableLiveTracking
}

// Init (re)establishes the initial layout: head cell = 1 and one free block
// of 255 chunks with no neighbours. Payload bytes are not cleared. Every
// address issued before Init becomes invalid.
//
// On a zero-value Arena, Init allocates the buffer with default options.
func (a *Arena) Init() {
	if a.mem == nil {
		a.mem = make([]byte, format.HeapSize)
		a.trackLive = true
	}
	if a.log == nil {
		a.log = logger.Default()
	}

	a.setHead(format.FirstBlock)
	// Cannot fail: block 1 with 255 chunks ends exactly at HeapSize.
	_ = format.Encode(a.mem, format.Block{
		Index:  format.FirstBlock,
		State:  format.StateFree,
		Chunks: format.MaxChunks,
		Prev:   format.NoBlock,
		Next:   format.NoBlock,
	})

	a.live = indexSet{}
	a.stats = allocatorStats{}
}

// Initialized reports whether the arena has a buffer to manage.
func (a *Arena) Initialized() bool {
	return a.mem != nil
}

// Bytes exposes the raw arena image. Callers must treat it as read-only.
func (a *Arena) Bytes() []byte {
	return a.mem
}

// Payload returns the payload slice of the live block at addr.
func (a *Arena) Payload(addr Addr) ([]byte, error) {
	if a.mem == nil {
		return nil, ErrNotInitialized
	}
	i, err := a.validate(addr)
	if err != nil {
		return nil, err
	}
	return a.payload(i), nil
}

// payload slices the caller-visible bytes of allocated block i with its
// capacity capped so appends cannot spill into the next block.
func (a *Arena) payload(i format.BlockIndex) []byte {
	start := i.PayloadAddr()
	end := i.Offset() + a.allocatedLen(i)
	return a.mem[start:end:end]
}
