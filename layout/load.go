package layout

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/faid1253/whispersoftheloop/game"
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/sim"
)

// Defaults fills in emitter limits left at zero in the document.
type Defaults struct {
	MaxBounces  int
	MaxDistance float64
}

const (
	defaultMoveSpeed     = 6.0
	defaultJumpSpeed     = 8.0
	defaultLookSens      = 1.0
	defaultShiftCooldown = 1.0
	defaultRadius        = 0.5
	defaultTimeBonus     = 10.0
)

// ParseFile reads and decodes a chamber document.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	return &doc, nil
}

// Load spawns the document's entities into the world. Entities are created
// first, then name references are resolved; an unknown or duplicate name in
// a reference is logged and skipped so a broken link degrades to a no-op
// instead of failing the chamber.
func Load(w *sim.World, doc *Document, def Defaults, logger *slog.Logger) error {
	l := &loader{w: w, def: def, logger: logger, names: map[string]sim.EntityID{}}
	return l.load(doc)
}

type loader struct {
	w      *sim.World
	def    Defaults
	logger *slog.Logger
	names  map[string]sim.EntityID

	mirrorIDs   []sim.EntityID
	receiverIDs []sim.EntityID
	triggerIDs  []sim.EntityID
	fragmentIDs []sim.EntityID
}

func (l *loader) load(doc *Document) error {
	l.spawnPlayer(doc)

	for _, g := range doc.Geometry {
		l.record(g.Name, l.w.Spawn(
			game.Transform{Pos: g.Position.V3()},
			game.Collider{Layer: geometryLayer(g.Layer), Extents: g.Size.V3()},
		))
	}

	for _, e := range doc.Emitters {
		l.record(e.Name, l.w.Spawn(
			game.Transform{Pos: e.Position.V3(), Yaw: e.Yaw, Pitch: e.Pitch},
			game.BeamEmitter{
				Enabled:     !e.Disabled,
				MaxBounces:  orInt(e.MaxBounces, l.def.MaxBounces),
				MaxDistance: orFloat(e.MaxDistance, l.def.MaxDistance),
			},
			game.Beam{},
		))
	}

	for _, m := range doc.Mirrors {
		id := l.w.Spawn(
			game.Transform{Pos: m.Position.V3()},
			game.Collider{Layer: phys.LayerMirror, Radius: orFloat(m.Radius, defaultRadius)},
			game.Mirror{Yaw: m.Yaw, HomeYaw: m.Yaw, RotateSpeed: m.RotateSpeed, Controllable: m.Controllable},
		)
		l.record(m.Name, id)
		l.mirrorIDs = append(l.mirrorIDs, id)
	}

	for _, r := range doc.Receivers {
		if r.Name == "" {
			return fmt.Errorf("receiver without a name at %v", r.Position)
		}
		id := l.w.Spawn(
			game.Transform{Pos: r.Position.V3()},
			game.Collider{Layer: phys.LayerReceiver, Radius: orFloat(r.Radius, defaultRadius)},
			game.Receiver{OneShot: r.OneShot},
		)
		l.record(r.Name, id)
		l.receiverIDs = append(l.receiverIDs, id)
	}

	for _, p := range doc.Platforms {
		if p.Name == "" {
			return fmt.Errorf("platform without a name at %v", p.Position)
		}
		pos := p.Position.V3()
		pos.Y = p.LowY
		l.record(p.Name, l.w.Spawn(
			game.Transform{Pos: pos},
			game.Collider{Layer: phys.LayerGround, Extents: p.Size.V3()},
			game.Platform{LowY: p.LowY, HighY: p.HighY, Speed: p.Speed},
			game.Activatable{Enabled: p.Enabled, Default: p.Enabled},
		))
	}

	for _, t := range doc.ResetTriggers {
		id := l.w.Spawn(game.ResetTrigger{Threshold: t.Threshold})
		l.record(t.Name, id)
		l.triggerIDs = append(l.triggerIDs, id)
	}

	for _, f := range doc.Fragments {
		id := l.w.Spawn(
			game.Transform{Pos: f.Position.V3()},
			game.Collider{Layer: phys.LayerTrigger, Radius: orFloat(f.Radius, defaultRadius)},
			game.Fragment{ID: f.ID, TimeBonus: orFloat(f.TimeBonus, defaultTimeBonus)},
		)
		l.record(f.Name, id)
		l.fragmentIDs = append(l.fragmentIDs, id)
	}

	for _, c := range doc.Checkpoints {
		l.record(c.Name, l.w.Spawn(
			game.Transform{Pos: c.Position.V3()},
			game.Collider{Layer: phys.LayerTrigger, Extents: c.Size.V3()},
			game.Checkpoint{PauseDuration: c.PauseDuration},
		))
	}

	for _, a := range doc.SpawnAreas {
		if a.Name == "" {
			return fmt.Errorf("spawn area without a name at %v", a.Position)
		}
		l.record(a.Name, l.w.Spawn(
			game.Transform{Pos: a.Position.V3()},
			game.SpawnArea{Extents: a.Extents.V3(), MinSpacing: a.MinSpacing, MaxAttempts: a.MaxAttempts},
		))
	}

	l.link(doc)
	return nil
}

func (l *loader) spawnPlayer(doc *Document) {
	spawn := doc.PlayerSpawn.V3()
	l.w.Spawn(game.Transform{Pos: spawn}, game.PlayerSpawn{})

	p := game.Player{
		MoveSpeed:       defaultMoveSpeed,
		JumpSpeed:       defaultJumpSpeed,
		LookSensitivity: defaultLookSens,
		ShiftCooldown:   defaultShiftCooldown,
	}
	radius := defaultRadius
	if o := doc.Player; o != nil {
		p.MoveSpeed = orFloat(o.MoveSpeed, p.MoveSpeed)
		p.JumpSpeed = orFloat(o.JumpSpeed, p.JumpSpeed)
		p.LookSensitivity = orFloat(o.LookSensitivity, p.LookSensitivity)
		p.ShiftCooldown = orFloat(o.ShiftCooldown, p.ShiftCooldown)
		radius = orFloat(o.Radius, radius)
	}
	l.w.Spawn(
		game.Transform{Pos: spawn},
		game.Body{},
		game.Collider{Layer: phys.LayerPlayer, Radius: radius},
		p,
	)
}

// link resolves name references after every entity exists, so wiring is
// independent of document order.
func (l *loader) link(doc *Document) {
	for i, r := range doc.Receivers {
		recv := sim.Get[game.Receiver](l.w, l.receiverIDs[i])
		for _, name := range r.Targets {
			if id, ok := l.resolve("receiver target", name); ok {
				recv.Targets = append(recv.Targets, id)
			}
		}
		for _, name := range r.Chained {
			if id, ok := l.resolve("chained receiver", name); ok {
				recv.Chained = append(recv.Chained, id)
			}
		}
	}

	for i, t := range doc.ResetTriggers {
		if id, ok := l.resolve("reset trigger platform", t.Platform); ok {
			sim.Get[game.ResetTrigger](l.w, l.triggerIDs[i]).Platform = id
		}
	}

	for i, f := range doc.Fragments {
		if f.Area == "" {
			continue
		}
		if id, ok := l.resolve("fragment spawn area", f.Area); ok {
			l.w.Attach(l.fragmentIDs[i], game.Randomized{Area: id})
		}
	}

	for i, m := range doc.Mirrors {
		if m.Area == "" {
			continue
		}
		if id, ok := l.resolve("mirror spawn area", m.Area); ok {
			l.w.Attach(l.mirrorIDs[i], game.Randomized{Area: id})
		}
	}
}

func (l *loader) record(name string, id sim.EntityID) {
	if name == "" {
		return
	}
	if _, dup := l.names[name]; dup {
		l.logger.Warn("duplicate layout name, keeping first", "name", name)
		return
	}
	l.names[name] = id
}

func (l *loader) resolve(kind, name string) (sim.EntityID, bool) {
	id, ok := l.names[name]
	if !ok {
		l.logger.Warn("unresolved layout reference", "kind", kind, "name", name)
	}
	return id, ok
}

func geometryLayer(name string) phys.Layer {
	switch name {
	case "lightBarrier":
		return phys.LayerLightBarrier
	case "shadowBarrier":
		return phys.LayerShadowBarrier
	case "", "ground":
		return phys.LayerGround
	default:
		return phys.LayerDefault
	}
}

func orFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
