// Package clock supplies the instants the dials are computed from and the
// sampler that turns them into progress records on a fixed cadence.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the host's local wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Adjustable runs at the speed of its base clock from a movable origin, so a
// display can be pointed at another date and keep ticking from there.
type Adjustable struct {
	base Clock

	mu     sync.RWMutex
	jumped bool
	// anchor is the base instant at the last jump, target what Now reported
	// at that moment.
	anchor time.Time
	target time.Time
}

// NewAdjustable returns an Adjustable that starts in step with base.
func NewAdjustable(base Clock) *Adjustable {
	return &Adjustable{base: base}
}

// Now returns the jump target advanced by the base time elapsed since the
// jump, or the base clock's instant if the clock has not jumped.
func (a *Adjustable) Now() time.Time {
	a.mu.RLock()
	jumped, anchor, target := a.jumped, a.anchor, a.target
	a.mu.RUnlock()

	now := a.base.Now()
	if !jumped {
		return now
	}
	return target.Add(now.Sub(anchor))
}

// Jump moves the clock so that Now reports to at this instant. Any distance
// from the base clock is allowed.
func (a *Adjustable) Jump(to time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.jumped = true
	a.anchor = a.base.Now()
	a.target = to
}

// Reset puts the clock back in step with its base.
func (a *Adjustable) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.jumped = false
	a.anchor, a.target = time.Time{}, time.Time{}
}

// Jumped reports whether the clock is away from its base.
func (a *Adjustable) Jumped() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.jumped
}

// Manual only moves when told to. It is meant for tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
