package sim_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/faid1253/whispersoftheloop/sim"
)

// commandRecorder exposes the frame's command buffer to the test body.
type commandRecorder struct {
	fn func(frame *sim.UpdateFrame)
}

func (s *commandRecorder) Execute(frame *sim.UpdateFrame) {
	s.fn(frame)
}

func runFrame(w *sim.World, fn func(frame *sim.UpdateFrame)) {
	scheduler := sim.NewScheduler(w)
	scheduler.Register(&commandRecorder{fn: fn})
	scheduler.Once(1.0)
}

func TestCommandsSpawn(t *testing.T) {
	w := newTestWorld()

	runFrame(w, func(frame *sim.UpdateFrame) {
		frame.Commands.Spawn(Position{X: 1})
		frame.Commands.Spawn(Position{X: 2}, Velocity{})

		// Not visible until flush.
		assert.Equal(t, 0, sim.Count[Position](w))
	})

	assert.Equal(t, 2, sim.Count[Position](w))
}

func TestCommandsDeleteWinsOverAttach(t *testing.T) {
	w := newTestWorld()
	id := w.Spawn(Position{})

	runFrame(w, func(frame *sim.UpdateFrame) {
		frame.Commands.Attach(id, Health{Current: 1})
		frame.Commands.Delete(id)
	})

	// Delete is applied first; the attach to the dead entity is dropped.
	assert.False(t, sim.Has[Position](w, id))
	assert.False(t, sim.Has[Health](w, id))
}

func TestCommandsAttachDetach(t *testing.T) {
	w := newTestWorld()
	id := w.Spawn(Position{}, Health{Current: 3})

	runFrame(w, func(frame *sim.UpdateFrame) {
		frame.Commands.Detach(id, reflect.TypeFor[Health]())
		frame.Commands.Attach(id, Velocity{DX: 1})
	})

	assert.False(t, sim.Has[Health](w, id))
	assert.True(t, sim.Has[Velocity](w, id))
}

func TestCommandsDeferRunsLast(t *testing.T) {
	w := newTestWorld()

	var countAtDefer int
	runFrame(w, func(frame *sim.UpdateFrame) {
		frame.Commands.Spawn(Position{})
		frame.Commands.Defer(func() {
			countAtDefer = sim.Count[Position](w)
		})
	})

	assert.Equal(t, 1, countAtDefer)
}

func TestDeleteDuringIteration(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 5; i++ {
		w.Spawn(Position{X: float64(i)}, Tagged{})
	}

	q := sim.NewQuery[struct {
		sim.EntityID
		Position *Position
	}](w)

	runFrame(w, func(frame *sim.UpdateFrame) {
		for item := range q.Iter() {
			frame.Commands.Delete(item.EntityID)
		}
	})

	assert.Equal(t, 0, sim.Count[Position](w))
}
