package chime

import (
	"sync"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
)

// Detector notices when a cycle's fraction wraps back towards zero, which
// is how a boundary shows up in a stream of progress samples.
type Detector struct {
	cycle calendar.Cycle

	mu     sync.Mutex
	prev   float64
	primed bool
}

// NewDetector watches cycle c.
func NewDetector(c calendar.Cycle) *Detector {
	return &Detector{cycle: c}
}

// Cycle returns the watched cycle.
func (d *Detector) Cycle() calendar.Cycle { return d.cycle }

// Crossed records p and reports whether the watched cycle rolled over since
// the previous sample. A drop of more than half a cycle counts as a wrap;
// smaller drops come from clock adjustments.
func (d *Detector) Crossed(p calendar.Progress) bool {
	cur := p.Fraction(d.cycle)

	d.mu.Lock()
	defer d.mu.Unlock()

	crossed := d.primed && d.prev-cur > 0.5
	d.prev, d.primed = cur, true
	return crossed
}

// Reset forgets the previous sample, so the next one cannot count as a
// wrap. Call it when the clock is moved by hand.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prev, d.primed = 0, false
}
