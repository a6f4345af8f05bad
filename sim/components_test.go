package sim_test

import (
	"github.com/faid1253/whispersoftheloop/sim"
)

// Shared component fixtures for the sim package tests.

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Health struct {
	Current, Max int
}

type Tagged struct{}

func newTestWorld() *sim.World {
	w := sim.NewWorld()
	sim.RegisterComponent[Position](w)
	sim.RegisterComponent[Velocity](w)
	sim.RegisterComponent[Health](w)
	sim.RegisterComponent[Tagged](w)
	return w
}
