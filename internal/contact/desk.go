package contact

import (
	"sync"
	"time"
)

// DefaultDeskTTL is how long an idle form is kept for its session.
const DefaultDeskTTL = 30 * time.Minute

// Desk keeps one Form per browser session so single-flight holds across
// separate HTTP requests from the same visitor.
type Desk struct {
	newForm func() *Form
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	forms map[string]*Form
}

// NewDesk builds forms with newForm on first use. ttl <= 0 uses DefaultDeskTTL.
func NewDesk(newForm func() *Form, ttl time.Duration) *Desk {
	if ttl <= 0 {
		ttl = DefaultDeskTTL
	}
	return &Desk{newForm: newForm, ttl: ttl, now: time.Now, forms: map[string]*Form{}}
}

// Form returns the form for key, creating it when absent. Forms untouched
// for longer than the TTL and not pending are dropped on the way.
func (d *Desk) Form(key string) *Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweepLocked()
	if f, ok := d.forms[key]; ok {
		return f
	}
	f := d.newForm()
	d.forms[key] = f
	return f
}

// Len returns the number of tracked forms.
func (d *Desk) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.forms)
}

func (d *Desk) sweepLocked() {
	cutoff := d.now().Add(-d.ttl)
	for key, f := range d.forms {
		if f.Busy() {
			continue
		}
		if f.lastTouched().Before(cutoff) {
			delete(d.forms, key)
		}
	}
}
