package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/faid1253/whispersoftheloop/config"
	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/game"
	"github.com/faid1253/whispersoftheloop/layout"
	"github.com/faid1253/whispersoftheloop/progress"
	"github.com/faid1253/whispersoftheloop/sim"
)

func main() {
	layoutPath := flag.String("layout", "", "Chamber layout JSON. Empty builds the built-in demo chamber.")
	loops := flag.Int("loops", 3, "Stop after this many completed time loops.")
	maxDuration := flag.Duration("duration", 2*time.Minute, "Wall-clock cap on the run.")
	idle := flag.Bool("idle", false, "Skip the scripted input and let the world run untouched.")
	realtime := flag.Bool("realtime", false, "Tick on a wall-clock ticker instead of fixed-step frames.")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	// 1. World, scheduler and shared services
	w := sim.NewWorld()
	sched := sim.NewScheduler(w)
	bus := event.NewBus()
	store := progress.NewStore(cfg.SavePath, logger)
	store.Load()

	game.Register(w, sched, game.Options{
		Bus:         bus,
		Store:       store,
		Logger:      logger,
		Seed:        cfg.Seed,
		LoopSeconds: cfg.LoopSeconds,
	})

	// 2. Chamber
	doc := demoChamber()
	if *layoutPath != "" {
		doc, err = layout.ParseFile(*layoutPath)
		if err != nil {
			logger.Error("loading layout", "error", err)
			os.Exit(1)
		}
	}
	defaults := layout.Defaults{MaxBounces: cfg.BeamMaxBounces, MaxDistance: cfg.BeamMaxDistance}
	if err := layout.Load(w, doc, defaults, logger); err != nil {
		logger.Error("spawning chamber", "error", err)
		os.Exit(1)
	}
	if len(doc.Fragments) > store.Total() {
		store.SetTotal(len(doc.Fragments))
	}
	logger.Info("chamber ready", "name", doc.Name,
		"receivers", sim.Count[game.Receiver](w),
		"fragments", sim.Count[game.Fragment](w))

	// 3. Event wiring
	quit := false
	loopsDone := 0
	bus.Subscribe(event.TypeQuitRequested, func(event.Event) { quit = true })
	bus.Subscribe(event.TypeLoopReset, func(e event.Event) {
		p := e.Payload.(event.LoopReset)
		loopsDone++
		logger.Info("loop reset", "loop", p.Loop, "early", p.Early, "debug", p.Debug)
	})
	bus.Subscribe(event.TypeFragmentCollected, func(e event.Event) {
		p := e.Payload.(event.FragmentCollected)
		logger.Info("fragment collected", "id", p.ID, "collected", p.Collected, "total", p.Total)
	})
	bus.Subscribe(event.TypeReceiverActivated, func(e event.Event) {
		p := e.Payload.(event.ReceiverActivated)
		logger.Info("receiver activated", "receiver", p.Receiver, "latched", p.Latched, "chained", p.Chained)
	})

	// 4. Run
	in := sim.NewSingleton[game.Input](w).Get()
	var script *script
	if !*idle {
		script = demoScript()
	}

	start := time.Now()
	frames, simSeconds := runLoop(sched, in, script, runOptions{
		realtime: *realtime,
		interval: cfg.TickInterval(),
		dt:       1.0 / cfg.TickRate,
		deadline: start.Add(*maxDuration),
		stop:     func() bool { return quit || loopsDone >= *loops },
	})

	// 5. Report
	report := &Report{
		Chamber:            doc.Name,
		Frames:             frames,
		SimSeconds:         simSeconds,
		WallTime:           time.Since(start),
		LoopsCompleted:     loopsDone,
		FragmentsCollected: store.Count(),
		FragmentsTotal:     store.Total(),
		Stats:              sched.Stats(),
	}
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("writing report", "error", err)
		os.Exit(1)
	}
}

// runOptions bounds a run: it ends at the deadline or as soon as stop
// reports true, whichever comes first.
type runOptions struct {
	realtime bool
	interval time.Duration
	dt       float64
	deadline time.Time
	stop     func() bool
}

// runLoop drives the scheduler frame by frame, applying the input script on
// the simulation clock. Realtime mode paces frames on a wall-clock ticker
// with measured deltas; fixed mode advances dt per frame as fast as it can.
func runLoop(sched *sim.Scheduler, in *game.Input, sc *script, opts runOptions) (frames int64, simSeconds float64) {
	frame := func(step float64) {
		if sc != nil {
			sc.apply(in, simSeconds)
		}
		sched.Once(step)
		simSeconds += step
		frames++
	}

	if !opts.realtime {
		for !opts.stop() && time.Now().Before(opts.deadline) {
			frame(opts.dt)
		}
		return frames, simSeconds
	}

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()
	last := time.Now()
	for !opts.stop() && last.Before(opts.deadline) {
		now := <-ticker.C
		frame(now.Sub(last).Seconds())
		last = now
	}
	return frames, simSeconds
}

// demoChamber is a small solvable room: one beam folded by a controllable
// mirror onto a receiver that raises the exit platform, a fragment in a
// randomized yard and a checkpoint that buys time.
func demoChamber() *layout.Document {
	return &layout.Document{
		Name:        "demo",
		PlayerSpawn: layout.Vec{0, 1, 0},
		Geometry: []layout.GeometryDef{
			{Name: "floor", Position: layout.Vec{0, -0.5, 0}, Size: layout.Vec{40, 1, 40}, Layer: "ground"},
			{Name: "dusk-wall", Position: layout.Vec{0, 1.5, 10}, Size: layout.Vec{8, 3, 0.5}, Layer: "shadowBarrier"},
		},
		Emitters: []layout.EmitterDef{
			{Name: "lantern", Position: layout.Vec{-6, 1, 0}},
		},
		Mirrors: []layout.MirrorDef{
			{Name: "fold", Position: layout.Vec{-6, 1, 6}, Yaw: 3 * math.Pi / 4, RotateSpeed: 1.5, Controllable: true},
		},
		Receivers: []layout.ReceiverDef{
			{Name: "gate-eye", Position: layout.Vec{6, 1, 6}, Targets: []string{"lift"}},
		},
		Platforms: []layout.PlatformDef{
			{Name: "lift", Position: layout.Vec{10, 0, 6}, Size: layout.Vec{3, 0.5, 3}, LowY: 0, HighY: 5, Speed: 1},
		},
		ResetTriggers: []layout.ResetTriggerDef{
			{Platform: "lift", Threshold: 5},
		},
		Fragments: []layout.FragmentDef{
			{ID: 1, Position: layout.Vec{0, 1, 3}, TimeBonus: 15, Area: "yard"},
		},
		Checkpoints: []layout.CheckpointDef{
			{Position: layout.Vec{3, 1, 0}, Size: layout.Vec{2, 2, 2}, PauseDuration: 5},
		},
		SpawnAreas: []layout.SpawnAreaDef{
			{Name: "yard", Position: layout.Vec{0, 1, 3}, Extents: layout.Vec{10, 0, 10}, MinSpacing: 2},
		},
	}
}

// script is a list of timed input keyframes, each applied once.
type script struct {
	keys []keyframe
}

type keyframe struct {
	at      float64
	apply   func(*game.Input)
	applied bool
}

func demoScript() *script {
	bindings := game.DefaultBindings()
	press := func(key string) func(*game.Input) {
		return func(in *game.Input) { bindings.Press(in, key) }
	}
	return &script{keys: []keyframe{
		{at: 0, apply: func(in *game.Input) { in.MoveZ = 1 }},
		{at: 2, apply: func(in *game.Input) { in.MoveZ = 0 }},
		{at: 2.5, apply: press("left")},
		{at: 3.5, apply: press("right")},
		{at: 4.5, apply: func(in *game.Input) { in.MirrorRotate = 0 }},
		{at: 5, apply: press("q")},
		{at: 6, apply: press("space")},
		{at: 7, apply: press("q")},
	}}
}

func (s *script) apply(in *game.Input, now float64) {
	for i := range s.keys {
		k := &s.keys[i]
		if !k.applied && now >= k.at {
			k.apply(in)
			k.applied = true
		}
	}
}
