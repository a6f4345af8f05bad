package game

import (
	"github.com/faid1253/whispersoftheloop/sim"
)

// MirrorSystem rotates player-controllable mirrors from the held rotate axis.
type MirrorSystem struct {
	Input sim.Singleton[Input]

	Mirrors sim.Query[struct {
		sim.EntityID
		Mirror *Mirror
	}]
}

func (s *MirrorSystem) Execute(frame *sim.UpdateFrame) {
	axis := s.Input.Get().MirrorRotate
	if axis == 0 {
		return
	}
	for item := range s.Mirrors.Iter() {
		if !item.Mirror.Controllable {
			continue
		}
		item.Mirror.Yaw += axis * item.Mirror.RotateSpeed * frame.DeltaTime
	}
}
