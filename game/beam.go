package game

import (
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

// beamSkin offsets a reflected ray off its bounce surface so the next cast
// does not immediately re-hit it.
const beamSkin = 1e-4

// BeamSystem traces every enabled emitter's beam through the scene: mirrors
// reflect, receivers absorb, a Light-form player reflects on a flattened
// normal, a Shadow-form player is transparent, anything else blocks. Lit
// receivers for the frame land in the BeamHits singleton for ReceiverSystem.
type BeamSystem struct {
	Scene sim.Singleton[Scene]
	Hits  sim.Singleton[BeamHits]

	Emitters sim.Query[struct {
		sim.EntityID
		Transform *Transform
		Emitter   *BeamEmitter
		Beam      *Beam
	}]
	Players sim.Query[struct {
		sim.EntityID
		Player *Player
	}]

	colliders []phys.Collider
}

func (s *BeamSystem) Execute(frame *sim.UpdateFrame) {
	hits := s.Hits.Get()
	if hits.Lit == nil {
		hits.Lit = make(map[sim.EntityID]bool)
	}
	clear(hits.Lit)

	scene := s.colliderView()

	for item := range s.Emitters.Iter() {
		item.Beam.Points = item.Beam.Points[:0]
		if !item.Emitter.Enabled {
			continue
		}
		s.trace(frame.World, scene, item.EntityID, item.Transform, item.Emitter, item.Beam, hits)
	}
}

// colliderView returns the scene colliders minus any Shadow-form player,
// which beams pass straight through.
func (s *BeamSystem) colliderView() []phys.Collider {
	scene := s.Scene.Get()

	shadow := map[uint64]bool{}
	for item := range s.Players.Iter() {
		if item.Player.Form == FormShadow {
			shadow[uint64(item.EntityID)] = true
		}
	}
	if len(shadow) == 0 {
		return scene.Colliders
	}

	s.colliders = s.colliders[:0]
	for _, c := range scene.Colliders {
		if shadow[c.ID] {
			continue
		}
		s.colliders = append(s.colliders, c)
	}
	return s.colliders
}

func (s *BeamSystem) trace(w *sim.World, scene []phys.Collider, self sim.EntityID, tr *Transform, em *BeamEmitter, beam *Beam, hits *BeamHits) {
	origin := tr.Pos
	dir := vmath.LookDir(tr.Yaw, tr.Pitch)
	remaining := em.MaxDistance
	bounces := 0
	mask := phys.MaskAll.Without(phys.LayerTrigger)

	beam.Points = append(beam.Points, origin)

	for remaining > 0 {
		hit, ok := phys.RaycastExcluding(scene, phys.Ray{Origin: origin, Dir: dir}, remaining, mask, uint64(self))
		if !ok {
			beam.Points = append(beam.Points, vmath.V3Add(origin, vmath.V3Scale(dir, remaining)))
			return
		}

		beam.Points = append(beam.Points, hit.Point)
		remaining -= hit.Distance
		id := sim.EntityID(hit.ID)

		if sim.Has[Receiver](w, id) {
			hits.Lit[id] = true
			return
		}

		var normal vmath.Vec3
		switch {
		case sim.Has[Mirror](w, id):
			normal = sim.Get[Mirror](w, id).Normal()
		case sim.Has[Player](w, id):
			// Light form only; Shadow players were filtered out of the scene.
			normal = vmath.V3Flatten(hit.Normal)
			if normal == (vmath.Vec3{}) {
				return
			}
		default:
			return
		}

		if bounces >= em.MaxBounces {
			return
		}
		bounces++
		dir = vmath.V3Normalize(vmath.V3Reflect(dir, normal))
		origin = vmath.V3Add(hit.Point, vmath.V3Scale(dir, beamSkin))
	}
}
