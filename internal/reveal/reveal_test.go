package reveal

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []fakeTimer
	seq    int
}

type fakeTimer struct {
	when time.Time
	seq  int
	f    func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.timers = append(c.timers, fakeTimer{when: c.now.Add(d), seq: c.seq, f: f})
}

func (c *fakeClock) Scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Advance moves time forward by d, firing due timers in order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now.Add(d)
	c.mu.Unlock()
	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool {
			if c.timers[i].when.Equal(c.timers[j].when) {
				return c.timers[i].seq < c.timers[j].seq
			}
			return c.timers[i].when.Before(c.timers[j].when)
		})
		if len(c.timers) == 0 || c.timers[0].when.After(end) {
			c.now = end
			c.mu.Unlock()
			return
		}
		next := c.timers[0]
		c.timers = c.timers[1:]
		c.now = next.when
		c.mu.Unlock()
		next.f()
	}
}

type fakeViewport struct {
	mu       sync.Mutex
	fn       func(float64)
	unsubs   int
	sticky   bool // keep notifying after unsubscribe
	syncWith float64
}

func (v *fakeViewport) Observe(_ Container, _ float64, fn func(float64)) func() {
	v.mu.Lock()
	v.fn = fn
	initial := v.syncWith
	v.mu.Unlock()
	if initial > 0 {
		fn(initial)
	}
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.unsubs++
		if !v.sticky {
			v.fn = nil
		}
	}
}

func (v *fakeViewport) Emit(ratio float64) {
	v.mu.Lock()
	fn := v.fn
	v.mu.Unlock()
	if fn != nil {
		fn(ratio)
	}
}

func (v *fakeViewport) Unsubscribes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.unsubs
}

func TestRevealStaggersChildrenInOrder(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	vp := &fakeViewport{}
	group := NewGroup(5, clock.Now)
	cfg := Config{Threshold: 0.1, Stagger: 150 * time.Millisecond}

	m := Mount(vp, group, cfg, clock)
	defer m.Unmount()

	require.False(t, m.Fired())
	vp.Emit(0.25)
	require.True(t, m.Fired())
	require.Equal(t, 1, vp.Unsubscribes(), "observer must be released after the first fire")

	clock.Advance(0)
	require.True(t, group[0].Visible(), "first child reveals without delay")
	require.False(t, group[1].Visible())

	clock.Advance(time.Second)
	require.True(t, group.AllVisible())

	first := group[0].RevealedAt()
	for i, f := range group {
		gap := f.RevealedAt().Sub(first)
		require.GreaterOrEqual(t, gap, time.Duration(i)*cfg.Stagger, "child %d revealed too early", i)
	}
}

func TestRevealIgnoresRatiosBelowThreshold(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	vp := &fakeViewport{}
	group := NewGroup(3, clock.Now)

	m := Mount(vp, group, DefaultConfig, clock)
	defer m.Unmount()

	vp.Emit(0.05)
	clock.Advance(time.Second)
	require.False(t, m.Fired())
	require.Zero(t, vp.Unsubscribes())
	for _, f := range group {
		require.False(t, f.Visible())
	}

	vp.Emit(DefaultThreshold)
	clock.Advance(time.Second)
	require.True(t, group.AllVisible())
}

func TestCrossingEntryJustUnderThresholdFires(t *testing.T) {
	t.Parallel()

	ratio, ok := Crossing(false, 0.5, DefaultThreshold)
	require.False(t, ok)
	require.Zero(t, ratio)

	ratio, ok = Crossing(true, 0.8, DefaultThreshold)
	require.True(t, ok)
	require.Equal(t, 0.8, ratio)

	clock := newFakeClock()
	vp := &fakeViewport{}
	group := NewGroup(2, clock.Now)
	m := Mount(vp, group, DefaultConfig, clock)
	defer m.Unmount()

	ratio, ok = Crossing(true, 0.0999, DefaultThreshold)
	require.True(t, ok)
	vp.Emit(ratio)
	clock.Advance(time.Second)
	require.True(t, m.Fired())
	require.True(t, group.AllVisible())
}

func TestRevealIsOneWay(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	vp := &fakeViewport{sticky: true}
	group := NewGroup(4, clock.Now)

	m := Mount(vp, group, DefaultConfig, clock)
	defer m.Unmount()

	vp.Emit(1)
	clock.Advance(time.Second)
	require.True(t, group.AllVisible())
	scheduled := clock.Scheduled()
	stamps := make([]time.Time, len(group))
	for i, f := range group {
		stamps[i] = f.RevealedAt()
	}

	// leave and re-enter several times on a viewport that ignores unsubscribe
	for i := 0; i < 3; i++ {
		vp.Emit(0)
		vp.Emit(1)
		clock.Advance(time.Second)
	}
	require.Equal(t, scheduled, clock.Scheduled(), "re-entering must not schedule another reveal")
	require.True(t, group.AllVisible())
	for i, f := range group {
		require.Equal(t, stamps[i], f.RevealedAt(), "child %d re-animated", i)
	}
}

func TestUnmountReleasesExactlyOnce(t *testing.T) {
	t.Parallel()

	t.Run("before firing", func(t *testing.T) {
		vp := &fakeViewport{}
		m := Mount(vp, NewGroup(2, nil), DefaultConfig, newFakeClock())
		m.Unmount()
		m.Unmount()
		require.Equal(t, 1, vp.Unsubscribes())
		require.False(t, m.Fired())
	})

	t.Run("after firing", func(t *testing.T) {
		vp := &fakeViewport{}
		m := Mount(vp, NewGroup(2, nil), DefaultConfig, newFakeClock())
		vp.Emit(1)
		m.Unmount()
		require.Equal(t, 1, vp.Unsubscribes())
	})

	t.Run("synchronous first report", func(t *testing.T) {
		clock := newFakeClock()
		vp := &fakeViewport{syncWith: 0.5}
		group := NewGroup(2, clock.Now)
		m := Mount(vp, group, DefaultConfig, clock)
		require.True(t, m.Fired())
		require.Equal(t, 1, vp.Unsubscribes())
		m.Unmount()
		require.Equal(t, 1, vp.Unsubscribes())
		clock.Advance(time.Second)
		require.True(t, group.AllVisible())
	})
}

func TestUnmountMidStaggerLetsPendingFlipsRun(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	vp := &fakeViewport{}
	group := NewGroup(3, clock.Now)
	m := Mount(vp, group, DefaultConfig, clock)

	vp.Emit(1)
	clock.Advance(0)
	m.Unmount()
	require.NotPanics(t, func() { clock.Advance(time.Second) })
	require.True(t, group.AllVisible())
}

func TestConfigNormalization(t *testing.T) {
	t.Parallel()

	m := Mount(&fakeViewport{}, NewGroup(0, nil), Config{Threshold: 3, Stagger: -time.Second}, newFakeClock())
	defer m.Unmount()
	require.Equal(t, DefaultThreshold, m.Config().Threshold)
	require.Zero(t, m.Config().Stagger)
}

func TestSystemClockReveals(t *testing.T) {
	t.Parallel()

	vp := &fakeViewport{}
	group := NewGroup(3, nil)
	m := Mount(vp, group, Config{Threshold: 0.1, Stagger: 5 * time.Millisecond}, nil)
	defer m.Unmount()

	vp.Emit(1)
	require.Eventually(t, group.AllVisible, time.Second, 5*time.Millisecond)
}
