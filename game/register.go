package game

import (
	"log/slog"

	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/progress"
	"github.com/faid1253/whispersoftheloop/sim"
)

// EventSystem drains the bus to subscribers at the end of the frame, after
// every gameplay system has published.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Execute(frame *sim.UpdateFrame) {
	s.bus.Drain()
}

// Options carries the shared services and tuning the game systems need.
type Options struct {
	Bus         *event.Bus
	Store       *progress.Store
	Logger      *slog.Logger
	Seed        int64
	LoopSeconds float64
}

// Register sets up components and singletons on the world and registers every
// system on the scheduler. The order is load-bearing: the scene snapshot is
// built before anything raycasts, beams are traced before receivers react,
// receivers before platforms move, and the loop reset runs after triggers so
// a pickup on the final frame still counts.
func Register(w *sim.World, sched *sim.Scheduler, opts Options) {
	RegisterComponents(w)

	sim.NewSingleton[Input](w)
	sim.NewSingleton(w, NewRng(opts.Seed))
	sim.NewSingleton(w, LoopClock{Duration: opts.LoopSeconds, Remaining: opts.LoopSeconds})
	sim.NewSingleton[Scene](w)
	sim.NewSingleton[BeamHits](w)
	sim.NewSingleton[Sequences](w)

	sched.Register(NewInputSystem(opts.Bus))
	sched.Register(&SceneSystem{})
	sched.Register(NewPlayerSystem(opts.Bus))
	sched.Register(&MirrorSystem{})
	sched.Register(&BeamSystem{})
	sched.Register(NewReceiverSystem(opts.Bus, opts.Logger))
	sched.Register(&PlatformSystem{})
	sched.Register(NewResetTriggerSystem(opts.Logger))
	sched.Register(NewTriggerSystem(opts.Bus, opts.Store, opts.Logger))
	sched.Register(NewLoopSystem(opts.Bus, opts.Logger))
	sched.Register(&SequenceSystem{})
	sched.Register(NewEventSystem(opts.Bus))
	sched.Register(&InputFlushSystem{})
}
