//go:build unix

package mmfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the file at path read-only. A limit > 0 rejects larger files
// before anything is mapped.
func Map(path string, limit int64) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // the mapping keeps the pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if err := checkSize(path, size, limit); err != nil {
		return nil, err
	}
	if size == 0 {
		return &Mapping{Data: []byte{}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	return &Mapping{Data: data, unmap: unix.Munmap}, nil
}
