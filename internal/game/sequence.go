package game

import "math"

// Phase is a step of the building entry sequence.
type Phase int

const (
	SequenceIdle Phase = iota
	SequenceWalkIn
	SequenceFadeOut
)

func (p Phase) String() string {
	switch p {
	case SequenceWalkIn:
		return "walk-in"
	case SequenceFadeOut:
		return "fade-out"
	default:
		return "idle"
	}
}

// EntrySequence is the scripted walk into the goal building. It is polled
// every frame; elapsed only grows while the sequence runs.
type EntrySequence struct {
	walk    float64
	fade    float64
	phase   Phase
	elapsed float64
}

// NewEntrySequence creates an idle sequence with the given phase lengths.
func NewEntrySequence(walkSeconds, fadeSeconds float64) *EntrySequence {
	return &EntrySequence{walk: walkSeconds, fade: fadeSeconds}
}

// Start begins the walk-in. It is ignored while already running.
func (s *EntrySequence) Start() {
	if s.phase != SequenceIdle {
		return
	}
	s.phase = SequenceWalkIn
	s.elapsed = 0
}

// Cancel returns to idle without completing.
func (s *EntrySequence) Cancel() {
	s.phase = SequenceIdle
	s.elapsed = 0
}

// Active reports whether the sequence is running.
func (s *EntrySequence) Active() bool {
	return s.phase != SequenceIdle
}

// Phase returns the current phase.
func (s *EntrySequence) Phase() Phase {
	return s.phase
}

// Update advances the sequence and reports whether it just finished.
func (s *EntrySequence) Update(dt float64) bool {
	if s.phase == SequenceIdle {
		return false
	}
	s.elapsed += dt
	if s.phase == SequenceWalkIn && s.elapsed >= s.walk {
		s.phase = SequenceFadeOut
	}
	if s.phase == SequenceFadeOut && s.elapsed >= s.walk+s.fade {
		s.phase = SequenceIdle
		s.elapsed = 0
		return true
	}
	return false
}

// Progress returns overall completion in [0, 1].
func (s *EntrySequence) Progress() float64 {
	total := s.walk + s.fade
	if s.phase == SequenceIdle || total <= 0 {
		return 0
	}
	return math.Min(1, s.elapsed/total)
}

// WalkProgress returns completion of the walk-in in [0, 1].
func (s *EntrySequence) WalkProgress() float64 {
	switch {
	case s.phase == SequenceIdle:
		return 0
	case s.walk <= 0 || s.phase == SequenceFadeOut:
		return 1
	default:
		return math.Min(1, s.elapsed/s.walk)
	}
}

// Fade returns the fade-out amount in [0, 1].
func (s *EntrySequence) Fade() float64 {
	if s.phase != SequenceFadeOut || s.fade <= 0 {
		return 0
	}
	return math.Min(1, (s.elapsed-s.walk)/s.fade)
}
