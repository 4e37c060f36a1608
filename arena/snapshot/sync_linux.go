//go:build linux || freebsd

package snapshot

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data. fdatasync is sufficient on Linux and FreeBSD;
// fullsync is ignored.
func syncFile(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
