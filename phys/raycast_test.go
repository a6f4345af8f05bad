package phys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faid1253/whispersoftheloop/vmath"
)

func TestBoxRaycast(t *testing.T) {
	box := BoxAt(vmath.V3(0, 0, 5), vmath.V3(2, 2, 2))

	t.Run("head on hit", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, 1)}
		dist, normal, ok := box.Raycast(ray)
		require.True(t, ok)
		assert.InDelta(t, 4.0, dist, 1e-9)
		assert.Equal(t, vmath.V3(0, 0, -1), normal)
	})

	t.Run("miss", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(0, 5, 0), Dir: vmath.V3(0, 0, 1)}
		_, _, ok := box.Raycast(ray)
		assert.False(t, ok)
	})

	t.Run("behind origin", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(0, 0, 10), Dir: vmath.V3(0, 0, 1)}
		_, _, ok := box.Raycast(ray)
		assert.False(t, ok)
	})

	t.Run("origin inside hits at zero", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(0, 0, 5), Dir: vmath.V3(0, 0, 1)}
		dist, _, ok := box.Raycast(ray)
		require.True(t, ok)
		assert.Equal(t, 0.0, dist)
	})

	t.Run("axis parallel ray outside slab misses", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(5, 0, 0), Dir: vmath.V3(0, 0, 1)}
		_, _, ok := box.Raycast(ray)
		assert.False(t, ok)
	})

	t.Run("side face normal", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(-5, 0, 5), Dir: vmath.V3(1, 0, 0)}
		dist, normal, ok := box.Raycast(ray)
		require.True(t, ok)
		assert.InDelta(t, 4.0, dist, 1e-9)
		assert.Equal(t, vmath.V3(-1, 0, 0), normal)
	})
}

func TestSphereRaycast(t *testing.T) {
	sphere := Sphere{Center: vmath.V3(0, 0, 10), Radius: 2}

	t.Run("head on hit", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, 1)}
		dist, normal, ok := sphere.Raycast(ray)
		require.True(t, ok)
		assert.InDelta(t, 8.0, dist, 1e-9)
		assert.InDelta(t, -1.0, normal.Z, 1e-9)
	})

	t.Run("miss", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(0, 5, 0), Dir: vmath.V3(0, 0, 1)}
		_, _, ok := sphere.Raycast(ray)
		assert.False(t, ok)
	})

	t.Run("behind origin", func(t *testing.T) {
		ray := Ray{Origin: vmath.V3(0, 0, 20), Dir: vmath.V3(0, 0, 1)}
		_, _, ok := sphere.Raycast(ray)
		assert.False(t, ok)
	})
}

func TestRaycastClosestAndMask(t *testing.T) {
	colliders := []Collider{
		{ID: 1, Layer: LayerDefault, Shape: BoxAt(vmath.V3(0, 0, 10), vmath.V3(2, 2, 2))},
		{ID: 2, Layer: LayerMirror, Shape: BoxAt(vmath.V3(0, 0, 5), vmath.V3(2, 2, 2))},
		{ID: 3, Layer: LayerReceiver, Shape: BoxAt(vmath.V3(0, 0, 20), vmath.V3(2, 2, 2))},
	}
	ray := Ray{Origin: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, 1)}

	t.Run("closest wins", func(t *testing.T) {
		hit, ok := Raycast(colliders, ray, 100, MaskAll)
		require.True(t, ok)
		assert.Equal(t, uint64(2), hit.ID)
	})

	t.Run("mask filters", func(t *testing.T) {
		hit, ok := Raycast(colliders, ray, 100, MaskOf(LayerReceiver))
		require.True(t, ok)
		assert.Equal(t, uint64(3), hit.ID)
	})

	t.Run("max distance", func(t *testing.T) {
		_, ok := Raycast(colliders, ray, 3, MaskAll)
		assert.False(t, ok)
	})

	t.Run("exclusion skips bounce source", func(t *testing.T) {
		hit, ok := RaycastExcluding(colliders, ray, 100, MaskAll, 2)
		require.True(t, ok)
		assert.Equal(t, uint64(1), hit.ID)
	})
}

func TestMask(t *testing.T) {
	m := MaskOf(LayerGround, LayerMirror)
	assert.True(t, m.Contains(LayerGround))
	assert.False(t, m.Contains(LayerReceiver))
	assert.True(t, m.With(LayerReceiver).Contains(LayerReceiver))
	assert.False(t, m.Without(LayerGround).Contains(LayerGround))
}

func TestSphereOverlapsBox(t *testing.T) {
	box := BoxAt(vmath.V3(0, 0, 0), vmath.V3(2, 2, 2))

	assert.True(t, SphereOverlapsBox(Sphere{Center: vmath.V3(1.5, 0, 0), Radius: 1}, box))
	assert.False(t, SphereOverlapsBox(Sphere{Center: vmath.V3(3, 0, 0), Radius: 1}, box))
	assert.True(t, SphereOverlapsBox(Sphere{Center: vmath.V3(0, 0, 0), Radius: 0.1}, box))
}
