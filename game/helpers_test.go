package game

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/progress"
	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

const testDT = 1.0 / 60

type rig struct {
	w     *sim.World
	sched *sim.Scheduler
	bus   *event.Bus
	store *progress.Store
	in    *Input
	clock *LoopClock
}

func newRig(t *testing.T) *rig {
	t.Helper()

	w := sim.NewWorld()
	sched := sim.NewScheduler(w)
	bus := event.NewBus()
	logger := slog.New(slog.DiscardHandler)
	store := progress.NewStore(filepath.Join(t.TempDir(), "progress.json"), logger)
	store.Load()

	Register(w, sched, Options{
		Bus:         bus,
		Store:       store,
		Logger:      logger,
		Seed:        1,
		LoopSeconds: 90,
	})

	return &rig{
		w:     w,
		sched: sched,
		bus:   bus,
		store: store,
		in:    sim.NewSingleton[Input](w).Get(),
		clock: sim.NewSingleton[LoopClock](w).Get(),
	}
}

func (r *rig) step(frames int) {
	for range frames {
		r.sched.Once(testDT)
	}
}

// collected gathers every event of one type dispatched while fn runs.
func (r *rig) collected(t event.Type, fn func()) []event.Event {
	var got []event.Event
	r.bus.Subscribe(t, func(e event.Event) { got = append(got, e) })
	fn()
	return got
}

func (r *rig) spawnFloor() sim.EntityID {
	return r.w.Spawn(
		Transform{Pos: vmath.V3(0, -0.5, 0)},
		Collider{Layer: phys.LayerGround, Extents: vmath.V3(40, 1, 40)},
	)
}

func (r *rig) spawnPlayer(pos vmath.Vec3) sim.EntityID {
	return r.w.Spawn(
		Transform{Pos: pos},
		Body{},
		Collider{Layer: phys.LayerPlayer, Radius: 0.5},
		Player{MoveSpeed: 6, JumpSpeed: 8, LookSensitivity: 1, ShiftCooldown: 1},
	)
}

func (r *rig) spawnEmitter(pos vmath.Vec3, yaw float64) sim.EntityID {
	return r.w.Spawn(
		Transform{Pos: pos, Yaw: yaw},
		BeamEmitter{Enabled: true, MaxBounces: 8, MaxDistance: 200},
		Beam{},
	)
}

func (r *rig) spawnReceiver(pos vmath.Vec3, recv Receiver) sim.EntityID {
	return r.w.Spawn(
		Transform{Pos: pos},
		Collider{Layer: phys.LayerReceiver, Radius: 0.5},
		recv,
	)
}

func (r *rig) spawnMirror(pos vmath.Vec3, yaw float64) sim.EntityID {
	return r.w.Spawn(
		Transform{Pos: pos},
		Collider{Layer: phys.LayerMirror, Radius: 0.5},
		Mirror{Yaw: yaw, HomeYaw: yaw, RotateSpeed: 1.5, Controllable: true},
	)
}
