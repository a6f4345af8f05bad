package game

import (
	"github.com/faid1253/whispersoftheloop/sim"
)

// Step is one element of a timed sequence: either a wait or an action.
type Step struct {
	wait float64
	do   func()
}

// Wait pauses the sequence for the given number of seconds.
func Wait(seconds float64) Step { return Step{wait: seconds} }

// Do runs fn and immediately advances to the next step.
func Do(fn func()) Step { return Step{do: fn} }

type sequence struct {
	steps     []Step
	index     int
	remaining float64
}

// advance consumes dt and reports whether the sequence is finished. Action
// steps run back to back within a single frame.
func (s *sequence) advance(dt float64) bool {
	for s.index < len(s.steps) {
		step := s.steps[s.index]
		if step.do != nil {
			step.do()
			s.index++
			continue
		}
		if s.remaining <= 0 {
			s.remaining = step.wait
		}
		if s.remaining > dt {
			s.remaining -= dt
			return false
		}
		dt -= s.remaining
		s.remaining = 0
		s.index++
	}
	return true
}

// Sequences holds the active timed sequences, keyed by slot. Starting a
// sequence on an occupied slot cancels whatever was running there.
type Sequences struct {
	slots map[string]*sequence
}

// Start begins a sequence on the slot, cancelling any previous occupant.
func (s *Sequences) Start(slot string, steps ...Step) {
	if s.slots == nil {
		s.slots = make(map[string]*sequence)
	}
	s.slots[slot] = &sequence{steps: steps}
}

// Cancel drops the sequence on the slot without running its remaining steps.
func (s *Sequences) Cancel(slot string) {
	delete(s.slots, slot)
}

// Active reports whether a sequence is running on the slot.
func (s *Sequences) Active(slot string) bool {
	_, ok := s.slots[slot]
	return ok
}

// SequenceSystem advances all active sequences each frame.
type SequenceSystem struct {
	Seq sim.Singleton[Sequences]
}

func (s *SequenceSystem) Execute(frame *sim.UpdateFrame) {
	seq := s.Seq.Get()
	for slot, sq := range seq.slots {
		if sq.advance(frame.DeltaTime) {
			delete(seq.slots, slot)
		}
	}
}
