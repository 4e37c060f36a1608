package format

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/buf"
)

// State is the allocation state of a block. The same header bytes mean
// different things in each state, so a Block must always be decoded with
// the state it is known to be in.
type State uint8

const (
	StateFree State = iota + 1
	StateAllocated
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateAllocated:
		return "allocated"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Block is the decoded view of one block header.
//
// Prev and Next are only meaningful for free blocks; they are NoBlock for
// allocated ones.
type Block struct {
	Index  BlockIndex
	State  State
	Chunks uint8
	Prev   BlockIndex
	Next   BlockIndex
}

// Len returns the block length in bytes, header included.
func (b Block) Len() int {
	return int(b.Chunks) * Quantum
}

// End returns the absolute offset one past the block's last byte.
func (b Block) End() int {
	return b.Index.Offset() + b.Len()
}

// Payload returns the caller-visible byte range [start, end) of an
// allocated block.
func (b Block) Payload() (int, int) {
	return b.Index.PayloadAddr(), b.End()
}

// DecodeFree reads the free-block header at i: prev at byte 0, chunk count
// at byte 1, next at the block's last byte.
func DecodeFree(arena []byte, i BlockIndex) (Block, error) {
	chunks, err := readHeader(arena, i, FreeChunksOffset)
	if err != nil {
		return Block{}, err
	}
	off := i.Offset()
	return Block{
		Index:  i,
		State:  StateFree,
		Chunks: chunks,
		Prev:   BlockIndex(arena[off+FreePrevOffset]),
		Next:   BlockIndex(arena[off+int(chunks)*Quantum-FreeNextBackOff]),
	}, nil
}

// DecodeAllocated reads the allocated-block header at i: chunk count at
// byte 0.
func DecodeAllocated(arena []byte, i BlockIndex) (Block, error) {
	chunks, err := readHeader(arena, i, AllocChunksOffset)
	if err != nil {
		return Block{}, err
	}
	return Block{Index: i, State: StateAllocated, Chunks: chunks}, nil
}

// Encode writes b's header into arena using the layout of b.State.
func Encode(arena []byte, b Block) error {
	if len(arena) < HeapSize {
		return fmt.Errorf("block %v: %w", b.Index, ErrTruncated)
	}
	if !b.Index.Valid() || !Fits(b.Index, b.Chunks) {
		return fmt.Errorf("block %v chunks=%d: %w", b.Index, b.Chunks, ErrBadHeader)
	}
	off := b.Index.Offset()
	switch b.State {
	case StateFree:
		arena[off+FreePrevOffset] = byte(b.Prev)
		arena[off+FreeChunksOffset] = b.Chunks
		arena[off+b.Len()-FreeNextBackOff] = byte(b.Next)
	case StateAllocated:
		arena[off+AllocChunksOffset] = b.Chunks
	default:
		return fmt.Errorf("block %v: %w: unknown state %v", b.Index, ErrBadHeader, b.State)
	}
	return nil
}

func readHeader(arena []byte, i BlockIndex, field int) (uint8, error) {
	if len(arena) < HeapSize {
		return 0, fmt.Errorf("block %v: %w", i, ErrTruncated)
	}
	if !i.Valid() {
		return 0, fmt.Errorf("block %v: %w", i, ErrOutOfRange)
	}
	hdr, ok := buf.Slice(arena, i.Offset()+field, 1)
	if !ok {
		return 0, fmt.Errorf("block %v: %w", i, ErrOutOfRange)
	}
	chunks := hdr[0]
	if !Fits(i, chunks) {
		return 0, fmt.Errorf("block %v chunks=%d: %w", i, chunks, ErrBadHeader)
	}
	return chunks, nil
}
