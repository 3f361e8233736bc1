// Package loop drives update and render callbacks from a wall clock.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MaxDelta is the largest frame delta handed to update, in seconds.
const MaxDelta = 0.05

// ErrRunning is returned by Start when the scheduler is already running.
var ErrRunning = errors.New("loop: scheduler already running")

// ClampDelta returns the seconds between last and now, limited to MaxDelta.
// A clock that went backwards yields 0.
func ClampDelta(now, last time.Time) float64 {
	return ClampDeltaTo(now, last, MaxDelta)
}

// ClampDeltaTo is ClampDelta with a custom limit.
func ClampDeltaTo(now, last time.Time, limit float64) float64 {
	dt := now.Sub(last).Seconds()
	if dt < 0 {
		return 0
	}
	if dt > limit {
		return limit
	}
	return dt
}

// Ticker delivers tick timestamps.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock abstracts wall time so tests can drive the scheduler.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithMaxDelta overrides the per-frame delta limit.
func WithMaxDelta(seconds float64) Option {
	return func(s *Scheduler) {
		if seconds > 0 {
			s.maxDelta = seconds
		}
	}
}

// Scheduler calls update then render once per tick on a single goroutine.
// A frame always completes before the next tick is read.
type Scheduler struct {
	interval time.Duration
	maxDelta float64
	update   func(dt float64)
	render   func()
	clock    Clock

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	once    *sync.Once
}

// New creates a scheduler. render may be nil.
func New(interval time.Duration, update func(dt float64), render func(), opts ...Option) *Scheduler {
	s := &Scheduler{
		interval: interval,
		maxDelta: MaxDelta,
		update:   update,
		render:   render,
		clock:    realClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the loop until Stop is called or ctx ends. It blocks.
// Stop yields a nil error; a cancelled context yields ctx.Err().
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunning
	}
	s.running = true
	s.stop = make(chan struct{})
	s.once = &sync.Once{}
	stop := s.stop
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case now := <-ticker.C():
			// A tick that raced with Stop is dropped.
			select {
			case <-stop:
				return nil
			default:
			}
			dt := ClampDeltaTo(now, last, s.maxDelta)
			last = now
			if s.update != nil {
				s.update(dt)
			}
			if s.render != nil {
				s.render()
			}
		}
	}
}

// Stop ends the loop. It is safe to call any number of times.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.once == nil {
		return
	}
	stop := s.stop
	s.once.Do(func() { close(stop) })
}

// Running reports whether Start is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
