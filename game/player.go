package game

import (
	"math"

	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

const (
	gravity    = 20.0
	maxPitch   = math.Pi/2 - 0.01
	groundSnap = 0.1
)

// PlayerSystem is the character controller: look, camera-relative movement,
// gravity, jump, ground snap and the Light/Shadow form shift.
type PlayerSystem struct {
	Input sim.Singleton[Input]
	Scene sim.Singleton[Scene]

	Players sim.Query[struct {
		sim.EntityID
		Transform *Transform
		Body      *Body
		Player    *Player
		Collider  *Collider
	}]

	bus *event.Bus
}

func NewPlayerSystem(bus *event.Bus) *PlayerSystem {
	return &PlayerSystem{bus: bus}
}

func (s *PlayerSystem) Execute(frame *sim.UpdateFrame) {
	in := s.Input.Get()
	scene := s.Scene.Get()
	dt := frame.DeltaTime

	for item := range s.Players.Iter() {
		tr, body, pl := item.Transform, item.Body, item.Player

		tr.Yaw += in.LookYaw * pl.LookSensitivity
		tr.Pitch = vmath.Clamp(tr.Pitch+in.LookPitch*pl.LookSensitivity, -maxPitch, maxPitch)

		if pl.CooldownLeft > 0 {
			pl.CooldownLeft = math.Max(0, pl.CooldownLeft-dt)
		}
		if in.ToggleForm && pl.CooldownLeft == 0 {
			if pl.Form == FormLight {
				pl.Form = FormShadow
			} else {
				pl.Form = FormLight
			}
			pl.CooldownLeft = pl.ShiftCooldown
			s.bus.Emit(event.TypeFormShifted, event.FormShifted{
				Entity: uint64(item.EntityID),
				Shadow: pl.Form == FormShadow,
			})
		}

		// Camera-relative horizontal movement. Vertical velocity is owned by
		// gravity and jumps.
		forward := vmath.YawDir(tr.Yaw)
		right := vmath.V3Cross(forward, vmath.V3(0, 1, 0))
		wish := vmath.V3Add(vmath.V3Scale(right, in.MoveX), vmath.V3Scale(forward, in.MoveZ))
		if vmath.V3MagSq(wish) > 1 {
			wish = vmath.V3Normalize(wish)
		}
		body.Vel.X = wish.X * pl.MoveSpeed
		body.Vel.Z = wish.Z * pl.MoveSpeed
		body.Vel.Y -= gravity * dt

		radius := item.Collider.Radius
		mask := pl.Form.GroundMask()

		// Grounded when a short downward ray from the body center finds
		// standable geometry within the snap margin.
		down := phys.Ray{Origin: tr.Pos, Dir: vmath.V3(0, -1, 0)}
		hit, grounded := phys.RaycastExcluding(scene.Colliders, down, radius+groundSnap, mask, uint64(item.EntityID))
		body.Grounded = grounded && body.Vel.Y <= 0

		if body.Grounded {
			body.Vel.Y = 0
			tr.Pos.Y = hit.Point.Y + radius
		}
		if in.Jump && body.Grounded {
			body.Vel.Y = pl.JumpSpeed
			body.Grounded = false
		}

		s.sweep(scene, tr, body, radius, mask, uint64(item.EntityID), dt)
		tr.Pos = vmath.V3Add(tr.Pos, vmath.V3Scale(body.Vel, dt))
	}
}

// sweep clips horizontal velocity against solid geometry so the controller
// cannot tunnel through walls or the barrier the current form is blocked by.
func (s *PlayerSystem) sweep(scene *Scene, tr *Transform, body *Body, radius float64, mask phys.Mask, self uint64, dt float64) {
	horiz := vmath.V3(body.Vel.X, 0, body.Vel.Z)
	speed := vmath.V3Mag(horiz)
	if speed == 0 {
		return
	}
	dir := vmath.V3Scale(horiz, 1/speed)
	ray := phys.Ray{Origin: tr.Pos, Dir: dir}
	hit, ok := phys.RaycastExcluding(scene.Colliders, ray, radius+speed*dt, mask, self)
	if !ok {
		return
	}
	// Allow travel up to the surface, minus the body radius.
	allowed := math.Max(0, hit.Distance-radius)
	scale := allowed / (speed * dt)
	if scale < 1 {
		body.Vel.X *= scale
		body.Vel.Z *= scale
	}
}
