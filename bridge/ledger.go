package bridge

import "sync"

// Ledger tracks payload buffers handed to foreign callers, keyed by address.
// A payload is released at most once; unknown addresses are ignored.
type Ledger struct {
	mu   sync.Mutex
	live map[uintptr]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{live: make(map[uintptr]struct{})}
}

// Track records a payload address as owned by the caller.
func (l *Ledger) Track(addr uintptr) {
	if addr == 0 {
		return
	}
	l.mu.Lock()
	l.live[addr] = struct{}{}
	l.mu.Unlock()
}

// Release reports whether addr was outstanding and forgets it.
// The caller frees the memory only when Release returns true.
func (l *Ledger) Release(addr uintptr) bool {
	if addr == 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.live[addr]; !ok {
		return false
	}
	delete(l.live, addr)
	return true
}

// Outstanding returns the number of payloads not yet released.
func (l *Ledger) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}
