package game

import (
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

// Transform is position plus view/aim angles.
type Transform struct {
	Pos   vmath.Vec3
	Yaw   float64
	Pitch float64
}

// Body is kinematic state for entities affected by gravity.
type Body struct {
	Vel      vmath.Vec3
	Grounded bool
}

// Collider describes an entity's collision volume. A zero Extents means a
// sphere of Radius; otherwise an axis-aligned box of the given full extents.
// The shape is positioned at the owning Transform each frame.
type Collider struct {
	Layer   phys.Layer
	Extents vmath.Vec3
	Radius  float64
}

func (c Collider) shapeAt(pos vmath.Vec3) phys.Shape {
	if c.Extents == (vmath.Vec3{}) {
		return phys.Sphere{Center: pos, Radius: c.Radius}
	}
	return phys.BoxAt(pos, c.Extents)
}

// Form is the player's Light/Shadow mode. It changes which barrier layer is
// solid and how beams treat the player: Light reflects beams off a flattened
// normal, Shadow lets them pass through.
type Form int

const (
	FormLight Form = iota
	FormShadow
)

func (f Form) String() string {
	if f == FormShadow {
		return "shadow"
	}
	return "light"
}

// GroundMask returns the layers the player stands on and collides with in
// this form. Light is blocked by shadow barriers and passes light barriers;
// Shadow is the inverse.
func (f Form) GroundMask() phys.Mask {
	m := phys.MaskOf(phys.LayerDefault, phys.LayerGround)
	if f == FormLight {
		return m.With(phys.LayerShadowBarrier)
	}
	return m.With(phys.LayerLightBarrier)
}

// Player is the character controller configuration and form state.
type Player struct {
	MoveSpeed       float64
	JumpSpeed       float64
	LookSensitivity float64
	Form            Form
	ShiftCooldown   float64
	CooldownLeft    float64
}

// Mirror reflects beams about its facing plane. Yaw defines the plane
// normal; controllable mirrors respond to the rotate bindings. HomeYaw is
// the authored yaw, restored on loop reset.
type Mirror struct {
	Yaw          float64
	HomeYaw      float64
	RotateSpeed  float64
	Controllable bool
}

// Normal returns the mirror's facing plane normal.
func (m Mirror) Normal() vmath.Vec3 {
	return vmath.YawDir(m.Yaw)
}

// BeamEmitter casts a light beam along its Transform's aim each frame.
type BeamEmitter struct {
	Enabled     bool
	MaxBounces  int
	MaxDistance float64
}

// Beam holds the polyline traced for an emitter this frame, starting at the
// emitter origin. Rewritten every frame; empty while the emitter is disabled.
type Beam struct {
	Points []vmath.Vec3
}

// Receiver is the propagate-and-latch puzzle element. States: unlit/inactive,
// lit/active, latched-active. Activation toggles each target's Activatable
// and recurses into chained receivers. One-shot receivers latch on first
// activation and never deactivate.
type Receiver struct {
	Lit       bool
	Activated bool
	OneShot   bool
	Latched   bool
	Targets   []sim.EntityID
	Chained   []sim.EntityID
}

// Activatable is the enabled flag receivers toggle on their targets.
// Default is the authored state restored on loop reset.
type Activatable struct {
	Enabled bool
	Default bool
}

// Platform moves vertically between LowY and HighY, rising while its
// Activatable is enabled.
type Platform struct {
	LowY  float64
	HighY float64
	Speed float64
}

// ResetTrigger completes the loop early when the watched platform's height
// reaches Threshold.
type ResetTrigger struct {
	Platform  sim.EntityID
	Threshold float64
	Fired     bool
}

// Fragment is a collectible memory fragment. Pickup persists the id and
// grants TimeBonus seconds on the loop clock.
type Fragment struct {
	ID        int
	TimeBonus float64
}

// Checkpoint pauses the loop clock for PauseDuration when entered, once per
// loop.
type Checkpoint struct {
	PauseDuration float64
	Consumed      bool
}

// SpawnArea bounds randomized placement. Entities carrying Randomized are
// re-placed inside their area on loop reset.
type SpawnArea struct {
	Extents     vmath.Vec3
	MinSpacing  float64
	MaxAttempts int
}

// Randomized marks an entity for randomized re-placement on loop reset.
type Randomized struct {
	Area sim.EntityID
}

// PlayerSpawn marks the loop start location.
type PlayerSpawn struct{}

// RegisterComponents registers every game component with a world.
func RegisterComponents(w *sim.World) {
	sim.RegisterComponent[Transform](w)
	sim.RegisterComponent[Body](w)
	sim.RegisterComponent[Collider](w)
	sim.RegisterComponent[Player](w)
	sim.RegisterComponent[Mirror](w)
	sim.RegisterComponent[BeamEmitter](w)
	sim.RegisterComponent[Beam](w)
	sim.RegisterComponent[Receiver](w)
	sim.RegisterComponent[Activatable](w)
	sim.RegisterComponent[Platform](w)
	sim.RegisterComponent[ResetTrigger](w)
	sim.RegisterComponent[Fragment](w)
	sim.RegisterComponent[Checkpoint](w)
	sim.RegisterComponent[SpawnArea](w)
	sim.RegisterComponent[Randomized](w)
	sim.RegisterComponent[PlayerSpawn](w)
}
