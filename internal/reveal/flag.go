package reveal

import (
	"sync"
	"time"
)

// Flag is an in-memory Target: false until revealed, then true forever.
type Flag struct {
	mu      sync.Mutex
	visible bool
	at      time.Time
	now     func() time.Time
}

// NewFlag returns a hidden flag stamping reveal times with now (time.Now when nil).
func NewFlag(now func() time.Time) *Flag {
	if now == nil {
		now = time.Now
	}
	return &Flag{now: now}
}

// Reveal latches the flag. Later calls keep the first reveal time.
func (f *Flag) Reveal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.visible {
		return
	}
	f.visible = true
	if f.now != nil {
		f.at = f.now()
	} else {
		f.at = time.Now()
	}
}

// Visible reports whether the flag has been revealed.
func (f *Flag) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

// RevealedAt returns when the flag latched; zero while hidden.
func (f *Flag) RevealedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.at
}

// Group is a Container over flags in order.
type Group []*Flag

// NewGroup returns n hidden flags sharing the clock now.
func NewGroup(n int, now func() time.Time) Group {
	g := make(Group, n)
	for i := range g {
		g[i] = NewFlag(now)
	}
	return g
}

// Targets implements Container.
func (g Group) Targets() []Target {
	out := make([]Target, len(g))
	for i, f := range g {
		out[i] = f
	}
	return out
}

// AllVisible reports whether every flag latched.
func (g Group) AllVisible() bool {
	for _, f := range g {
		if !f.Visible() {
			return false
		}
	}
	return true
}
