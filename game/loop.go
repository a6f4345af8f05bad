package game

import (
	"log/slog"

	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

// LoopSystem ticks the countdown clock and orchestrates the loop reset on
// expiry, early completion or the debug reset action. A reset restores the
// authored world state except for what deliberately persists: latched
// receivers, collected fragments and the loop counter.
type LoopSystem struct {
	Clock sim.Singleton[LoopClock]
	Input sim.Singleton[Input]
	Rng   sim.Singleton[Rng]
	Seq   sim.Singleton[Sequences]
	Scene sim.Singleton[Scene]

	Players sim.Query[struct {
		sim.EntityID
		Transform *Transform
		Body      *Body
		Player    *Player
	}]
	Spawns sim.Query[struct {
		Transform *Transform
		Spawn     *PlayerSpawn
	}]
	Activatables sim.Query[struct {
		Activatable *Activatable
	}]
	Receivers sim.Query[struct {
		sim.EntityID
		Receiver *Receiver
	}]
	Mirrors sim.Query[struct {
		Mirror *Mirror
	}]
	Platforms sim.Query[struct {
		Transform *Transform
		Platform  *Platform
	}]
	ResetTriggers sim.Query[struct {
		Trigger *ResetTrigger
	}]
	Checkpoints sim.Query[struct {
		Checkpoint *Checkpoint
	}]
	Randomized sim.Query[struct {
		sim.EntityID
		Transform  *Transform
		Randomized *Randomized
	}]

	bus    *event.Bus
	logger *slog.Logger
}

func NewLoopSystem(bus *event.Bus, logger *slog.Logger) *LoopSystem {
	return &LoopSystem{bus: bus, logger: logger}
}

func (s *LoopSystem) Execute(frame *sim.UpdateFrame) {
	clock := s.Clock.Get()

	if s.Input.Get().DebugReset {
		clock.debugReset = true
	}

	if !clock.Paused && clock.Remaining > 0 {
		clock.Remaining -= frame.DeltaTime
		if clock.Remaining <= 0 {
			clock.Remaining = 0
			clock.expired = true
		}
	}

	if !clock.expired && !clock.earlyReset && !clock.debugReset {
		return
	}

	if clock.expired {
		s.bus.Emit(event.TypeLoopExpired, event.LoopExpired{Loop: clock.Loop})
	}

	s.reset(frame)

	s.bus.Emit(event.TypeLoopReset, event.LoopReset{
		Loop:  clock.Loop,
		Early: clock.earlyReset,
		Debug: clock.debugReset,
	})

	clock.Loop++
	clock.Remaining = clock.Duration
	clock.Paused = false
	clock.expired = false
	clock.earlyReset = false
	clock.debugReset = false
}

func (s *LoopSystem) reset(frame *sim.UpdateFrame) {
	w := frame.World

	// Back to authored state first; latched receivers re-apply on top.
	for item := range s.Activatables.Iter() {
		item.Activatable.Enabled = item.Activatable.Default
	}
	for item := range s.Receivers.Iter() {
		r := item.Receiver
		r.Lit = false
		if r.Latched {
			r.Activated = true
			for _, target := range r.Targets {
				if a := sim.Get[Activatable](w, target); a != nil {
					a.Enabled = !a.Enabled
				}
			}
		} else {
			r.Activated = false
		}
	}

	for item := range s.Mirrors.Iter() {
		item.Mirror.Yaw = item.Mirror.HomeYaw
	}
	for item := range s.Platforms.Iter() {
		item.Transform.Pos.Y = item.Platform.LowY
	}
	for item := range s.ResetTriggers.Iter() {
		item.Trigger.Fired = false
	}
	for item := range s.Checkpoints.Iter() {
		item.Checkpoint.Consumed = false
	}

	s.Seq.Get().Cancel(loopPauseSlot)
	s.reposition(w)
	s.respawnPlayer()
}

// reposition re-places randomized entities inside their spawn areas,
// respecting the area's minimum spacing against already placed entities and
// avoiding solid geometry. An entity's own collider never blocks it.
func (s *LoopSystem) reposition(w *sim.World) {
	placed := map[sim.EntityID][]vmath.Vec3{}
	warned := false

	var solid []phys.Collider
	for _, c := range s.Scene.Get().Colliders {
		if c.Layer != phys.LayerTrigger {
			solid = append(solid, c)
		}
	}

	blockers := make([]phys.Collider, 0, len(solid))
	for item := range s.Randomized.Iter() {
		areaID := item.Randomized.Area
		areaTr := sim.Get[Transform](w, areaID)
		area := sim.Get[SpawnArea](w, areaID)
		if areaTr == nil || area == nil {
			s.logger.Warn("spawn area missing", "entity", item.EntityID, "area", areaID)
			continue
		}

		blockers = blockers[:0]
		for _, c := range solid {
			if c.ID != uint64(item.EntityID) {
				blockers = append(blockers, c)
			}
		}

		p, ok := RandomPoint(s.Rng.Get().R, areaTr.Pos, *area, placed[areaID], blockers)
		if !ok {
			if !warned {
				s.logger.Warn("spawn randomizer exhausted, keeping previous position", "area", areaID)
				warned = true
			}
			continue
		}
		item.Transform.Pos = p
		placed[areaID] = append(placed[areaID], p)
	}
}

func (s *LoopSystem) respawnPlayer() {
	spawn, ok := s.Spawns.First()
	if !ok {
		return
	}
	for item := range s.Players.Iter() {
		item.Transform.Pos = spawn.Transform.Pos
		item.Transform.Yaw = spawn.Transform.Yaw
		item.Transform.Pitch = 0
		item.Body.Vel = vmath.Vec3{}
		item.Body.Grounded = false
		item.Player.CooldownLeft = 0
	}
}
