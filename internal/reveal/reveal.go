// Package reveal implements the scroll-triggered, one-shot reveal used by
// the page sections: when a section first crosses the visibility threshold,
// its marked children are flagged visible one after another.
//
// The package is environment neutral. The browser client supplies a Viewport
// backed by IntersectionObserver and Targets backed by DOM elements; tests
// supply in-memory ones.
package reveal

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultThreshold is the intersection ratio that trips a section.
	DefaultThreshold = 0.1
	// DefaultStagger is the delay between consecutive children.
	DefaultStagger = 100 * time.Millisecond
)

// Config tunes a mount.
type Config struct {
	Threshold float64
	Stagger   time.Duration
}

// DefaultConfig is shared by every section unless overridden.
var DefaultConfig = Config{Threshold: DefaultThreshold, Stagger: DefaultStagger}

func (c Config) normalized() Config {
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = DefaultThreshold
	}
	if c.Stagger < 0 {
		c.Stagger = 0
	}
	return c
}

// Target is an element that can be revealed. Reveal must be idempotent and
// must tolerate the element having been detached.
type Target interface {
	Reveal()
}

// Container is a section whose Targets are returned in document order.
type Container interface {
	Targets() []Target
}

// Viewport notifies fn with the container's visible ratio whenever it
// changes around threshold. The returned func stops notifications.
type Viewport interface {
	Observe(c Container, threshold float64, fn func(ratio float64)) (unsubscribe func())
}

// Crossing maps an observer entry to the ratio passed to a Viewport callback.
// Browsers may report a ratio a hair under threshold on the entry that
// crosses it, so an intersecting entry counts as at least threshold. Entries
// that are not intersecting are dropped.
func Crossing(intersecting bool, ratio, threshold float64) (float64, bool) {
	if !intersecting {
		return 0, false
	}
	return max(ratio, threshold), true
}

// Clock schedules f after d.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

// SystemClock schedules on the runtime timer.
type SystemClock struct{}

// AfterFunc runs f immediately for d <= 0, otherwise via time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, f func()) {
	if d <= 0 {
		f()
		return
	}
	time.AfterFunc(d, f)
}

// Mounted is one section registered with a viewport.
type Mounted struct {
	cfg       Config
	container Container
	clock     Clock

	fired       atomic.Bool
	unsubscribe func()
	unsubOnce   sync.Once
	mu          sync.Mutex
}

// Mount registers c with vp. Pair every Mount with Unmount.
func Mount(vp Viewport, c Container, cfg Config, clock Clock) *Mounted {
	if clock == nil {
		clock = SystemClock{}
	}
	m := &Mounted{cfg: cfg.normalized(), container: c, clock: clock}
	unsub := vp.Observe(c, m.cfg.Threshold, m.notify)
	m.mu.Lock()
	m.unsubscribe = unsub
	m.mu.Unlock()
	// The viewport may report synchronously from Observe, before unsubscribe
	// was stored; release the subscription now in that case.
	if m.fired.Load() {
		m.release()
	}
	return m
}

func (m *Mounted) notify(ratio float64) {
	if ratio < m.cfg.Threshold {
		return
	}
	if !m.fired.CompareAndSwap(false, true) {
		return
	}
	m.release()
	for i, t := range m.container.Targets() {
		m.clock.AfterFunc(time.Duration(i)*m.cfg.Stagger, t.Reveal)
	}
}

func (m *Mounted) release() {
	m.mu.Lock()
	unsub := m.unsubscribe
	m.mu.Unlock()
	if unsub == nil {
		return
	}
	m.unsubOnce.Do(unsub)
}

// Unmount stops observation. It is safe to call more than once and whether
// or not the section ever fired. Flips already scheduled still run.
func (m *Mounted) Unmount() {
	m.release()
}

// Fired reports whether the section crossed the threshold.
func (m *Mounted) Fired() bool { return m.fired.Load() }

// Config returns the effective configuration.
func (m *Mounted) Config() Config { return m.cfg }
