package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/mmfile"
)

// SaveOptions controls durability of Save.
type SaveOptions struct {
	// FullSync requests F_FULLFSYNC on macOS for power-loss durability.
	// Other platforms ignore it.
	FullSync bool

	// Mode is the permission of the written file. Zero means 0o644.
	Mode os.FileMode
}

// Save writes a snapshot of a to path atomically: the image goes to a
// temporary file in the same directory, is synced, and is then renamed
// over path.
func Save(path string, a *arena.Arena, opts *SaveOptions) error {
	if opts == nil {
		opts = &SaveOptions{}
	}
	mode := opts.Mode
	if mode == 0 {
		mode = 0o644
	}

	data, err := Encode(a)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err := syncFile(tmp, opts.FullSync); err != nil {
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	committed = true
	return nil
}

// Load maps the snapshot at path, decodes it, and unmaps it. The returned
// arena owns a private copy of the image.
func Load(path string, opts *arena.Options) (*arena.Arena, error) {
	m, err := mmfile.Map(path, Size)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer m.Close()

	a, err := Decode(m.Data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
