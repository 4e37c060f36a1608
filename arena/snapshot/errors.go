package snapshot

import "errors"

var (
	// ErrTruncated indicates the input is shorter than header plus image.
	ErrTruncated = errors.New("snapshot: truncated")
	// ErrBadMagic indicates the input does not start with the snapshot magic.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion indicates a format version this build cannot read.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrGeometry indicates a quantum or arena size that differs from this build.
	ErrGeometry = errors.New("snapshot: geometry mismatch")
	// ErrChecksum indicates the image does not match the stored checksum.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
)
