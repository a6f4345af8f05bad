package game

import (
	"math/rand/v2"

	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/sim"
)

// Input is the per-frame intent state fed by the host (scripted in the
// headless runner). Move and MirrorRotate are held axes; the rest are edge
// intents cleared by InputFlushSystem at end of frame.
type Input struct {
	MoveX float64 // strafe, -1..1
	MoveZ float64 // forward, -1..1

	LookYaw   float64 // radians this frame
	LookPitch float64

	Jump         bool
	ToggleForm   bool
	MirrorRotate float64 // -1..1 held axis
	DebugReset   bool
	Quit         bool
}

// LoopClock is the countdown governing the time loop.
// States: running, paused, expired (reset fires the same frame).
type LoopClock struct {
	Duration  float64
	Remaining float64
	Paused    bool
	Loop      int

	expired    bool
	earlyReset bool
	debugReset bool
}

// AddTime grants a bonus. Bonuses apply while running or paused, never after
// expiry has fired this frame.
func (c *LoopClock) AddTime(bonus float64) {
	if c.expired {
		return
	}
	c.Remaining += bonus
}

func (c *LoopClock) Pause()  { c.Paused = true }
func (c *LoopClock) Resume() { c.Paused = false }

// CompleteEarly requests a loop reset before the clock runs out, used by
// reset triggers watching platform height.
func (c *LoopClock) CompleteEarly() {
	c.earlyReset = true
}

// Rng is the world randomizer source. Seeded from config so runs replay.
type Rng struct {
	R *rand.Rand
}

func NewRng(seed int64) Rng {
	if seed == 0 {
		seed = rand.Int64()
	}
	return Rng{R: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// Scene is the collider snapshot rebuilt by SceneSystem each frame, used by
// every raycasting system.
type Scene struct {
	Colliders []phys.Collider
}

// BeamHits is the set of receivers lit by beam traces this frame. BeamSystem
// writes it, ReceiverSystem consumes it. Same pattern as a one-frame queue.
type BeamHits struct {
	Lit map[sim.EntityID]bool
}
