package clock

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
)

// DefaultInterval is the sampling cadence the dials are refreshed at.
const DefaultInterval = 10 * time.Millisecond

// ErrRunning is returned by Start when the sampler is already running.
var ErrRunning = errors.New("clock: sampler already running")

// Observer receives every progress record the sampler produces. Observers
// are called one record at a time, never concurrently.
type Observer interface {
	Observe(p calendar.Progress)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(p calendar.Progress)

func (f ObserverFunc) Observe(p calendar.Progress) { f(p) }

// Sampler reads a Clock on a fixed cadence and keeps the latest progress
// record. Its lifecycle belongs to the owning view: Start when the view
// opens, Stop when it closes.
type Sampler struct {
	clock     Clock
	interval  time.Duration
	observers []Observer
	logger    *slog.Logger

	stepMu sync.Mutex

	mu     sync.RWMutex
	latest calendar.Progress
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSampler returns a stopped sampler. A non-positive interval selects
// DefaultInterval.
func NewSampler(clk Clock, interval time.Duration, observers ...Observer) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{
		clock:     clk,
		interval:  interval,
		observers: observers,
		logger:    slog.With("component", "sampler"),
	}
}

// Step samples the clock once, records the result and notifies observers.
func (s *Sampler) Step() calendar.Progress {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	return s.step()
}

// Adjust runs change while no sample can be taken, then samples at once.
// No record is taken part way through change.
func (s *Sampler) Adjust(change func()) calendar.Progress {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	change()
	return s.step()
}

func (s *Sampler) step() calendar.Progress {
	p := calendar.Compute(s.clock.Now())

	s.mu.Lock()
	s.latest = p
	s.mu.Unlock()

	for _, o := range s.observers {
		o.Observe(p)
	}
	return p
}

// Latest returns the most recent progress record, or the zero record if
// the sampler has never stepped.
func (s *Sampler) Latest() calendar.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Running reports whether the sampling loop is active.
func (s *Sampler) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cancel != nil
}

// Start takes an immediate sample and then samples every interval until ctx
// is done or Stop is called.
func (s *Sampler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	s.Step()
	s.logger.Debug("sampler started", "interval", s.interval)

	go s.loop(ctx, done)
	return nil
}

func (s *Sampler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Stop ends the sampling loop and waits for it to exit. Stopping a stopped
// sampler is a no-op.
func (s *Sampler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Debug("sampler stopped")
}
