package arena

import "sync"

// Locked serialises access to an Arena with a single mutex. The free-list
// splices in Acquire and Release are not atomic, so an Arena shared between
// goroutines must only be used through a Locked.
//
// Payload slices returned by Acquire alias arena memory and are not guarded;
// each caller owns its own block.
type Locked struct {
	mu sync.Mutex
	a  *Arena
}

// NewLocked wraps a. Callers must stop using a directly.
func NewLocked(a *Arena) *Locked {
	return &Locked{a: a}
}

func (l *Locked) Init() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Init()
}

func (l *Locked) Acquire(size int) (Addr, []byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Acquire(size)
}

func (l *Locked) Release(addr Addr) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Release(addr)
}

func (l *Locked) Stats() (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

func (l *Locked) Check() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Check()
}

// Do runs fn with the lock held, for sequences that must not interleave
// with other callers (for example, snapshotting).
func (l *Locked) Do(fn func(*Arena) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.a)
}
