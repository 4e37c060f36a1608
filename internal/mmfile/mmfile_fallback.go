//go:build !unix

package mmfile

import "os"

// Map reads the entire file when mmap is not available.
func Map(path string, limit int64) (*Mapping, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := checkSize(path, info.Size(), limit); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{Data: data}, nil
}
