// Package debounce delays a callback until a burst of events has settled.
package debounce

import (
	"sync"
	"time"
)

// DefaultDuration is the settle time used for search keystrokes.
const DefaultDuration = 200 * time.Millisecond

// Debouncer runs the most recently scheduled function once no new call has
// arrived for the configured duration.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	gen      uint64
}

// New creates a debouncer. A non-positive duration falls back to
// DefaultDuration.
func New(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Debouncer{duration: duration}
}

// Duration returns the settle time.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

// Debounce schedules fn, replacing any pending call. Rapid successive calls
// reset the timer.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.duration, func() {
		// A timer that already fired cannot be stopped; the generation
		// check drops it if it was superseded meanwhile.
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Immediate cancels any pending call and runs fn now.
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Keyed debounces independently per key, e.g. one timer per watched file.
type Keyed struct {
	mu       sync.Mutex
	duration time.Duration
	byKey    map[string]*Debouncer
}

// NewKeyed creates a per-key debouncer.
func NewKeyed(duration time.Duration) *Keyed {
	return &Keyed{duration: duration, byKey: make(map[string]*Debouncer)}
}

// Debounce schedules fn for key.
func (k *Keyed) Debounce(key string, fn func()) {
	k.mu.Lock()
	d, ok := k.byKey[key]
	if !ok {
		d = New(k.duration)
		k.byKey[key] = d
	}
	k.mu.Unlock()
	d.Debounce(fn)
}

// CancelAll drops every pending call.
func (k *Keyed) CancelAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, d := range k.byKey {
		d.Cancel()
	}
}
