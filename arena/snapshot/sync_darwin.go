//go:build darwin

package snapshot

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data. macOS has no fdatasync; F_FULLFSYNC is used
// when fullsync is requested, fsync otherwise.
func syncFile(f *os.File, fullsync bool) error {
	fd := int(f.Fd())
	if fullsync {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(fd)
}
