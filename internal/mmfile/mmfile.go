// Package mmfile maps small image files read-only. Unix builds use mmap;
// other platforms read the file into memory.
package mmfile

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned when a file exceeds the caller's size limit.
var ErrTooLarge = errors.New("mmfile: file exceeds limit")

// Mapping is a read-only view of a file. Data must not be used after Close.
type Mapping struct {
	Data  []byte
	unmap func([]byte) error
}

// Close releases the mapping. Calling it more than once is a no-op.
func (m *Mapping) Close() error {
	if m == nil || m.Data == nil {
		return nil
	}
	data := m.Data
	m.Data = nil
	if m.unmap == nil {
		return nil
	}
	return m.unmap(data)
}

func checkSize(path string, size, limit int64) error {
	if limit > 0 && size > limit {
		return fmt.Errorf("%s is %d bytes, limit %d: %w", path, size, limit, ErrTooLarge)
	}
	if size > int64(^uint(0)>>1) {
		return fmt.Errorf("%s is %d bytes: %w", path, size, ErrTooLarge)
	}
	return nil
}
