package loop

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	start time.Time
	ticks chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ticks: make(chan time.Time),
	}
}

func (f *fakeClock) Now() time.Time                 { return f.start }
func (f *fakeClock) NewTicker(time.Duration) Ticker { return f }
func (f *fakeClock) C() <-chan time.Time            { return f.ticks }
func (f *fakeClock) Stop()                          {}

func (f *fakeClock) at(ms int) time.Time {
	return f.start.Add(time.Duration(ms) * time.Millisecond)
}

// send blocks until the scheduler reads the tick.
func (f *fakeClock) send(ms int) {
	f.ticks <- f.at(ms)
}

// offer reports whether anyone read the tick within wait.
func (f *fakeClock) offer(ms int, wait time.Duration) bool {
	select {
	case f.ticks <- f.at(ms):
		return true
	case <-time.After(wait):
		return false
	}
}

func TestClampDelta(t *testing.T) {
	base := time.Unix(100, 0)
	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"normal frame", base.Add(16 * time.Millisecond), 0.016},
		{"long stall", base.Add(3 * time.Second), MaxDelta},
		{"clock went back", base.Add(-time.Second), 0},
		{"same instant", base, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.now, base); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ClampDelta = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestSchedulerUpdatesThenRenders(t *testing.T) {
	clock := newFakeClock()
	var calls []string
	deltas := make(chan float64, 8)

	s := New(16*time.Millisecond,
		func(dt float64) {
			calls = append(calls, "update")
			deltas <- dt
		},
		func() { calls = append(calls, "render") },
		WithClock(clock),
	)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	clock.send(16)
	if dt := <-deltas; math.Abs(dt-0.016) > 1e-9 {
		t.Errorf("first delta = %v, expected 0.016", dt)
	}
	clock.send(2016)
	if dt := <-deltas; dt != MaxDelta {
		t.Errorf("delta after a stall = %v, expected %v", dt, MaxDelta)
	}

	s.Stop()
	s.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Start returned %v after Stop", err)
	}

	want := []string{"update", "render", "update", "render"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, expected %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, expected %v", calls, want)
		}
	}

	if clock.offer(3000, 50*time.Millisecond) {
		t.Error("a tick was consumed after Stop")
	}
	if s.Running() {
		t.Error("scheduler still reports running")
	}
}

func TestSchedulerContextCancel(t *testing.T) {
	clock := newFakeClock()
	s := New(time.Millisecond, func(float64) {}, nil, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	clock.send(1)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start returned %v, expected context.Canceled", err)
	}
	s.Stop()
}

func TestSchedulerRejectsSecondStart(t *testing.T) {
	clock := newFakeClock()
	s := New(time.Millisecond, func(float64) {}, nil, WithClock(clock))

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()
	clock.send(1) // Start is now inside its loop

	if err := s.Start(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start = %v, expected ErrRunning", err)
	}
	s.Stop()
	<-done
}

func TestStopBeforeStartIsNoop(t *testing.T) {
	s := New(time.Millisecond, nil, nil)
	s.Stop()
	if s.Running() {
		t.Error("scheduler should not be running")
	}
}
