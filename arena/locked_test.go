package arena

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Locked_ConcurrentUse hammers one arena from several goroutines.
// Run with -race to catch unguarded access.
func Test_Locked_ConcurrentUse(t *testing.T) {
	l := NewLocked(New(nil))

	var wg sync.WaitGroup
	errCh := make(chan error, 8)
	for w := range 8 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range 200 {
				addr, p, err := l.Acquire((w*31 + i) % 48)
				if errors.Is(err, ErrNoSpace) {
					continue
				}
				if err != nil {
					errCh <- err
					return
				}
				fill(p, byte(w+1))
				for _, b := range p {
					if b != byte(w+1) {
						errCh <- errors.New("payload overwritten by another goroutine")
						return
					}
				}
				if err := l.Release(addr); err != nil {
					errCh <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	require.NoError(t, l.Check())
	s, err := l.Stats()
	require.NoError(t, err)
	require.Zero(t, s.LiveBlocks)
	require.Equal(t, s.ReleaseCalls, s.AcquireCalls-s.AcquireFailures)
}

func Test_Locked_DoAndInit(t *testing.T) {
	l := NewLocked(New(nil))
	_, _, err := l.Acquire(100)
	require.NoError(t, err)

	var free int
	require.NoError(t, l.Do(func(a *Arena) error {
		blocks, err := a.FreeList()
		free = len(blocks)
		return err
	}))
	require.Equal(t, 1, free)

	l.Init()
	s, err := l.Stats()
	require.NoError(t, err)
	require.Zero(t, s.LiveBlocks)
}
