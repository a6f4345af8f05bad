package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faid1253/whispersoftheloop/event"
	"github.com/faid1253/whispersoftheloop/sim"
	"github.com/faid1253/whispersoftheloop/vmath"
)

func TestReceiverTogglesTargetWhileLit(t *testing.T) {
	r := newRig(t)
	door := r.w.Spawn(Activatable{Enabled: false, Default: false})
	em := r.spawnEmitter(vmath.V3(0, 1, 0), 0)
	recv := r.spawnReceiver(vmath.V3(0, 1, 6), Receiver{Targets: []sim.EntityID{door}})

	r.step(1)
	require.True(t, sim.Get[Receiver](r.w, recv).Activated)
	assert.True(t, sim.Get[Activatable](r.w, door).Enabled)

	// Beam off: the receiver deactivates and toggles the door back.
	sim.Get[BeamEmitter](r.w, em).Enabled = false
	r.step(1)
	assert.False(t, sim.Get[Receiver](r.w, recv).Lit)
	assert.False(t, sim.Get[Receiver](r.w, recv).Activated)
	assert.False(t, sim.Get[Activatable](r.w, door).Enabled)
}

func TestReceiverOneShotLatches(t *testing.T) {
	r := newRig(t)
	door := r.w.Spawn(Activatable{Enabled: false, Default: false})
	em := r.spawnEmitter(vmath.V3(0, 1, 0), 0)
	recv := r.spawnReceiver(vmath.V3(0, 1, 6), Receiver{OneShot: true, Targets: []sim.EntityID{door}})

	r.step(1)
	require.True(t, sim.Get[Receiver](r.w, recv).Latched)

	sim.Get[BeamEmitter](r.w, em).Enabled = false
	r.step(5)

	got := sim.Get[Receiver](r.w, recv)
	assert.False(t, got.Lit)
	assert.True(t, got.Activated, "latched receivers never deactivate")
	assert.True(t, sim.Get[Activatable](r.w, door).Enabled)
}

func TestReceiverChainActivatesTogether(t *testing.T) {
	r := newRig(t)
	doorA := r.w.Spawn(Activatable{})
	doorB := r.w.Spawn(Activatable{})
	// B is far from any beam and only activates through A's chain.
	b := r.spawnReceiver(vmath.V3(50, 1, 0), Receiver{Targets: []sim.EntityID{doorB}})
	em := r.spawnEmitter(vmath.V3(0, 1, 0), 0)
	a := r.spawnReceiver(vmath.V3(0, 1, 6), Receiver{Targets: []sim.EntityID{doorA}, Chained: []sim.EntityID{b}})

	events := r.collected(event.TypeReceiverActivated, func() { r.step(1) })

	require.True(t, sim.Get[Receiver](r.w, a).Activated)
	require.True(t, sim.Get[Receiver](r.w, b).Activated)
	assert.True(t, sim.Get[Activatable](r.w, doorA).Enabled)
	assert.True(t, sim.Get[Activatable](r.w, doorB).Enabled)

	require.Len(t, events, 2)
	chained := 0
	for _, e := range events {
		if e.Payload.(event.ReceiverActivated).Chained {
			chained++
		}
	}
	assert.Equal(t, 1, chained, "only the downstream link is marked chained")

	// Beam off: the whole chain comes down.
	sim.Get[BeamEmitter](r.w, em).Enabled = false
	r.step(1)
	assert.False(t, sim.Get[Receiver](r.w, a).Activated)
	assert.False(t, sim.Get[Receiver](r.w, b).Activated)
}

func TestReceiverChainCycleTerminates(t *testing.T) {
	r := newRig(t)
	b := r.spawnReceiver(vmath.V3(50, 1, 0), Receiver{})
	r.spawnEmitter(vmath.V3(0, 1, 0), 0)
	a := r.spawnReceiver(vmath.V3(0, 1, 6), Receiver{Chained: []sim.EntityID{b}})
	sim.Get[Receiver](r.w, b).Chained = []sim.EntityID{a}

	r.step(1)

	assert.True(t, sim.Get[Receiver](r.w, a).Activated)
	assert.True(t, sim.Get[Receiver](r.w, b).Activated)
}

func TestReceiverMissingTargetIsSkipped(t *testing.T) {
	r := newRig(t)
	door := r.w.Spawn(Activatable{})
	r.spawnEmitter(vmath.V3(0, 1, 0), 0)
	recv := r.spawnReceiver(vmath.V3(0, 1, 6), Receiver{
		Targets: []sim.EntityID{sim.EntityID(9999), door},
	})

	r.step(1)

	assert.True(t, sim.Get[Receiver](r.w, recv).Activated)
	assert.True(t, sim.Get[Activatable](r.w, door).Enabled, "valid targets still toggle")
}

func TestReceiverLitEventFiresOnce(t *testing.T) {
	r := newRig(t)
	r.spawnEmitter(vmath.V3(0, 1, 0), 0)
	r.spawnReceiver(vmath.V3(0, 1, 6), Receiver{})

	events := r.collected(event.TypeReceiverLit, func() { r.step(10) })

	assert.Len(t, events, 1, "lit edge fires only on the unlit to lit transition")
}
