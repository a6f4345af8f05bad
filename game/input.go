package game

import (
	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/sim"
)

// InputSystem runs first in the frame and surfaces host-level intents that
// are not owned by any gameplay system.
type InputSystem struct {
	Input sim.Singleton[Input]

	bus *event.Bus
}

func NewInputSystem(bus *event.Bus) *InputSystem {
	return &InputSystem{bus: bus}
}

func (s *InputSystem) Execute(frame *sim.UpdateFrame) {
	if s.Input.Get().Quit {
		s.bus.Emit(event.TypeQuitRequested, nil)
	}
}

// InputFlushSystem clears edge intents at end of frame. Held axes (movement,
// mirror rotation) persist until the host changes them.
type InputFlushSystem struct {
	Input sim.Singleton[Input]
}

func (s *InputFlushSystem) Execute(frame *sim.UpdateFrame) {
	in := s.Input.Get()
	in.Jump = false
	in.ToggleForm = false
	in.DebugReset = false
	in.Quit = false
	in.LookYaw = 0
	in.LookPitch = 0
}
