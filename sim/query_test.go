package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faid1253/whispersoftheloop/sim"
)

func TestQueryRequiredComponents(t *testing.T) {
	w := newTestWorld()

	w.Spawn(Position{X: 1}, Velocity{DX: 1})
	w.Spawn(Position{X: 2}) // no velocity, must not match
	w.Spawn(Velocity{DX: 3})

	q := sim.NewQuery[struct {
		Position *Position
		Velocity *Velocity
	}](w)

	count := 0
	for item := range q.Iter() {
		count++
		assert.Equal(t, 1.0, item.Position.X)
		assert.Equal(t, 1.0, item.Velocity.DX)
	}
	assert.Equal(t, 1, count)
}

func TestQueryEntityIDField(t *testing.T) {
	w := newTestWorld()
	id := w.Spawn(Position{X: 9})

	q := sim.NewQuery[struct {
		sim.EntityID
		Position *Position
	}](w)

	item, ok := q.First()
	require.True(t, ok)
	assert.Equal(t, id, item.EntityID)
	assert.Equal(t, 9.0, item.Position.X)
}

func TestQueryOptional(t *testing.T) {
	w := newTestWorld()
	w.Spawn(Position{X: 1}, Health{Current: 50})
	w.Spawn(Position{X: 2})

	q := sim.NewQuery[struct {
		Position *Position
		Health   *Health `sim:"optional"`
	}](w)

	withHealth, without := 0, 0
	for item := range q.Iter() {
		if item.Health != nil {
			withHealth++
		} else {
			without++
		}
	}
	assert.Equal(t, 1, withHealth)
	assert.Equal(t, 1, without)
}

func TestQueryMutationThroughPointer(t *testing.T) {
	w := newTestWorld()
	id := w.Spawn(Position{X: 0}, Velocity{DX: 10})

	q := sim.NewQuery[struct {
		Position *Position
		Velocity *Velocity
	}](w)

	for item := range q.Iter() {
		item.Position.X += item.Velocity.DX * 0.5
	}

	assert.Equal(t, 5.0, sim.Get[Position](w, id).X)
}

func TestQueryGet(t *testing.T) {
	w := newTestWorld()
	a := w.Spawn(Position{X: 1}, Velocity{})
	b := w.Spawn(Position{X: 2})

	q := sim.NewQuery[struct {
		Position *Position
		Velocity *Velocity
	}](w)

	item, ok := q.Get(a)
	require.True(t, ok)
	assert.Equal(t, 1.0, item.Position.X)

	_, ok = q.Get(b)
	assert.False(t, ok)
}

func TestQueryCountAndFirstEmpty(t *testing.T) {
	w := newTestWorld()

	q := sim.NewQuery[struct {
		Position *Position
	}](w)

	assert.Equal(t, 0, q.Count())
	_, ok := q.First()
	assert.False(t, ok)
}

func TestQueryNonPointerFieldPanics(t *testing.T) {
	w := newTestWorld()
	assert.Panics(t, func() {
		sim.NewQuery[struct {
			Position Position
		}](w)
	})
}
