package game

import (
	"log/slog"

	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/progress"
	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

// loopPauseSlot is the sequence slot checkpoints use to pause the clock. One
// slot means a newly reached checkpoint replaces a running pause instead of
// stacking on it.
const loopPauseSlot = "loop-pause"

// TriggerSystem resolves player overlap with fragments and checkpoints.
// Fragments persist their id, grant a loop time bonus and despawn.
// Checkpoints pause the loop clock for their duration, once per loop.
type TriggerSystem struct {
	Clock sim.Singleton[LoopClock]
	Seq   sim.Singleton[Sequences]

	Players sim.Query[struct {
		sim.EntityID
		Transform *Transform
		Collider  *Collider
		Player    *Player
	}]
	Fragments sim.Query[struct {
		sim.EntityID
		Transform *Transform
		Fragment  *Fragment
		Collider  *Collider
	}]
	Checkpoints sim.Query[struct {
		sim.EntityID
		Transform  *Transform
		Checkpoint *Checkpoint
		Collider   *Collider
	}]

	bus    *event.Bus
	store  *progress.Store
	logger *slog.Logger
}

func NewTriggerSystem(bus *event.Bus, store *progress.Store, logger *slog.Logger) *TriggerSystem {
	return &TriggerSystem{bus: bus, store: store, logger: logger}
}

func (s *TriggerSystem) Execute(frame *sim.UpdateFrame) {
	player, ok := s.Players.First()
	if !ok {
		return
	}
	body := phys.Sphere{Center: player.Transform.Pos, Radius: player.Collider.Radius}
	clock := s.Clock.Get()

	for item := range s.Fragments.Iter() {
		if !overlapsSphere(item.Collider.shapeAt(item.Transform.Pos), body) {
			continue
		}
		s.collect(frame, item.EntityID, item.Fragment, clock)
	}

	for item := range s.Checkpoints.Iter() {
		cp := item.Checkpoint
		if cp.Consumed || !overlapsSphere(item.Collider.shapeAt(item.Transform.Pos), body) {
			continue
		}
		cp.Consumed = true
		dur := cp.PauseDuration
		s.Seq.Get().Start(loopPauseSlot,
			Do(clock.Pause),
			Wait(dur),
			Do(clock.Resume),
		)
		s.bus.Emit(event.TypeCheckpointReached, event.CheckpointReached{
			Checkpoint:    uint64(item.EntityID),
			PauseDuration: dur,
		})
	}
}

func (s *TriggerSystem) collect(frame *sim.UpdateFrame, e sim.EntityID, f *Fragment, clock *LoopClock) {
	if s.store.Collect(f.ID) {
		if err := s.store.Save(); err != nil {
			s.logger.Warn("saving fragment progress", "error", err)
		}
	}
	clock.AddTime(f.TimeBonus)
	frame.Commands.Delete(e)

	s.bus.Emit(event.TypeFragmentCollected, event.FragmentCollected{
		Fragment:  uint64(e),
		ID:        f.ID,
		Collected: s.store.Count(),
		Total:     s.store.Total(),
	})
}

func overlapsSphere(shape phys.Shape, body phys.Sphere) bool {
	switch v := shape.(type) {
	case phys.Sphere:
		sum := v.Radius + body.Radius
		return vmath.V3DistSq(v.Center, body.Center) <= sum*sum
	case phys.Box:
		return phys.SphereOverlapsBox(body, v)
	default:
		return false
	}
}
