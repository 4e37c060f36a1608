// Package snapshot persists arena images to disk.
//
// A snapshot is a 20-byte little-endian header followed by the raw arena:
//
//	0..3   magic "QHP1"
//	4..5   format version
//	6..7   quantum
//	8..11  arena size
//	12..19 xxhash3 of the image
//	20..   image
//
// Decode rebuilds an arena through arena.FromBytes, so a snapshot whose
// checksum matches but whose free list is broken is still rejected.
package snapshot

import (
	"fmt"

	"github.com/bytedance/gopkg/util/xxhash3"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/buf"
)

const (
	// Magic identifies a snapshot file.
	Magic = "QHP1"

	// Version is the only format version this package writes and reads.
	Version = 1

	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 20

	// Size is the total length of an encoded snapshot.
	Size = HeaderSize + arena.HeapSize
)

const (
	versionOffset  = 4
	quantumOffset  = 6
	sizeOffset     = 8
	checksumOffset = 12
)

// Header is the decoded snapshot header.
type Header struct {
	Version  uint16
	Quantum  uint16
	Size     uint32
	Checksum uint64
}

// Encode serialises the arena image with a header.
func Encode(a *arena.Arena) ([]byte, error) {
	if !a.Initialized() {
		return nil, arena.ErrNotInitialized
	}
	image := a.Bytes()

	out := make([]byte, Size)
	copy(out, Magic)
	buf.PutU16LE(out, versionOffset, Version)
	buf.PutU16LE(out, quantumOffset, arena.Quantum)
	buf.PutU32LE(out, sizeOffset, uint32(len(image)))
	buf.PutU64LE(out, checksumOffset, xxhash3.Hash(image))
	copy(out[HeaderSize:], image)
	return out, nil
}

// ReadHeader validates and decodes the header of b without touching the image.
func ReadHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(b), HeaderSize)
	}
	if string(b[:len(Magic)]) != Magic {
		return Header{}, fmt.Errorf("%w: %q", ErrBadMagic, b[:len(Magic)])
	}

	h := Header{
		Version:  buf.U16LE(b[versionOffset:]),
		Quantum:  buf.U16LE(b[quantumOffset:]),
		Size:     buf.U32LE(b[sizeOffset:]),
		Checksum: buf.U64LE(b[checksumOffset:]),
	}
	if h.Version != Version {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Quantum != arena.Quantum || h.Size != arena.HeapSize {
		return h, fmt.Errorf("%w: quantum %d size %d, want %d/%d",
			ErrGeometry, h.Quantum, h.Size, arena.Quantum, arena.HeapSize)
	}
	return h, nil
}

// Decode verifies b and rebuilds the arena it holds. opts is passed to
// arena.FromBytes.
func Decode(b []byte, opts *arena.Options) (*arena.Arena, error) {
	h, err := ReadHeader(b)
	if err != nil {
		return nil, err
	}
	image, ok := buf.Slice(b, HeaderSize, int(h.Size))
	if !ok {
		return nil, fmt.Errorf("%w: %d image bytes, want %d", ErrTruncated, len(b)-HeaderSize, h.Size)
	}
	if sum := xxhash3.Hash(image); sum != h.Checksum {
		return nil, fmt.Errorf("%w: stored %#016x, computed %#016x", ErrChecksum, h.Checksum, sum)
	}

	a, err := arena.FromBytes(image, opts)
	if err != nil {
		return nil, fmt.Errorf("restore arena: %w", err)
	}
	return a, nil
}
