package game

import (
	"log/slog"

	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

// PlatformSystem moves platforms toward their high height while enabled and
// back to their low height otherwise, clamped at both ends.
type PlatformSystem struct {
	Platforms sim.Query[struct {
		sim.EntityID
		Transform   *Transform
		Platform    *Platform
		Activatable *Activatable
	}]
}

func (s *PlatformSystem) Execute(frame *sim.UpdateFrame) {
	for item := range s.Platforms.Iter() {
		target := item.Platform.LowY
		if item.Activatable.Enabled {
			target = item.Platform.HighY
		}
		item.Transform.Pos.Y = vmath.MoveToward(item.Transform.Pos.Y, target, item.Platform.Speed*frame.DeltaTime)
	}
}

// ResetTriggerSystem completes the loop early when a watched platform rises
// to its threshold height. Each trigger fires once per loop.
type ResetTriggerSystem struct {
	Clock sim.Singleton[LoopClock]

	Triggers sim.Query[struct {
		sim.EntityID
		Trigger *ResetTrigger
	}]

	logger *slog.Logger
}

func NewResetTriggerSystem(logger *slog.Logger) *ResetTriggerSystem {
	return &ResetTriggerSystem{logger: logger}
}

func (s *ResetTriggerSystem) Execute(frame *sim.UpdateFrame) {
	clock := s.Clock.Get()

	for item := range s.Triggers.Iter() {
		t := item.Trigger
		if t.Fired {
			continue
		}
		tr := sim.Get[Transform](frame.World, t.Platform)
		if tr == nil {
			s.logger.Warn("reset trigger platform missing", "trigger", item.EntityID, "platform", t.Platform)
			continue
		}
		if tr.Pos.Y >= t.Threshold {
			t.Fired = true
			clock.CompleteEarly()
		}
	}
}
