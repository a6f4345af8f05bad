package game

import (
	"log/slog"

	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/sim"
)

// ReceiverSystem drives the per-receiver state machine from this frame's beam
// hits: unlit/inactive, lit/active, latched-active. A lit receiver activates
// together with everything downstream of its chain, then each activation
// toggles that receiver's target Activatables; one-shot receivers latch on
// first activation and never deactivate.
type ReceiverSystem struct {
	Hits sim.Singleton[BeamHits]

	Receivers sim.Query[struct {
		sim.EntityID
		Receiver *Receiver
	}]

	bus    *event.Bus
	logger *slog.Logger

	desired map[sim.EntityID]bool // true when activation came through a chain
}

func NewReceiverSystem(bus *event.Bus, logger *slog.Logger) *ReceiverSystem {
	return &ReceiverSystem{bus: bus, logger: logger}
}

func (s *ReceiverSystem) Execute(frame *sim.UpdateFrame) {
	hits := s.Hits.Get()
	w := frame.World

	// Expand beam hits through receiver chains before applying any
	// transition, so a chained receiver's own unlit state cannot undo what
	// its upstream link demands this frame.
	if s.desired == nil {
		s.desired = make(map[sim.EntityID]bool)
	}
	clear(s.desired)
	for item := range s.Receivers.Iter() {
		if hits.Lit[item.EntityID] {
			s.markDesired(w, item.EntityID, false)
		}
	}

	for item := range s.Receivers.Iter() {
		r := item.Receiver
		lit := hits.Lit[item.EntityID]

		if lit && !r.Lit {
			s.bus.Emit(event.TypeReceiverLit, event.ReceiverLit{Receiver: uint64(item.EntityID)})
		}
		r.Lit = lit

		chained, active := s.desired[item.EntityID]
		s.transition(w, item.EntityID, r, active, chained)
	}
}

func (s *ReceiverSystem) markDesired(w *sim.World, id sim.EntityID, chained bool) {
	if _, seen := s.desired[id]; seen {
		return
	}
	r := sim.Get[Receiver](w, id)
	if r == nil {
		s.logger.Warn("chained receiver missing", "entity", id)
		return
	}
	s.desired[id] = chained
	for _, next := range r.Chained {
		s.markDesired(w, next, true)
	}
}

// transition applies one receiver's activation change and toggles its
// targets. Latched receivers never come back down.
func (s *ReceiverSystem) transition(w *sim.World, id sim.EntityID, r *Receiver, active, chained bool) {
	if !active && r.Latched {
		return
	}
	if active == r.Activated {
		return
	}
	r.Activated = active
	if active && r.OneShot {
		r.Latched = true
	}

	s.toggleTargets(w, id, r)
	if active {
		s.bus.Emit(event.TypeReceiverActivated, event.ReceiverActivated{
			Receiver: uint64(id),
			Latched:  r.Latched,
			Chained:  chained,
		})
	}
}

// toggleTargets inverts the enabled flag on every target Activatable, so a
// receiver can switch things both on and off. Missing targets warn and skip.
func (s *ReceiverSystem) toggleTargets(w *sim.World, id sim.EntityID, r *Receiver) {
	for _, target := range r.Targets {
		a := sim.Get[Activatable](w, target)
		if a == nil {
			s.logger.Warn("receiver target missing", "receiver", id, "target", target)
			continue
		}
		a.Enabled = !a.Enabled
	}
}
