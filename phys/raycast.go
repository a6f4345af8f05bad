package phys

import (
	"github.com/faid1253/whispersoftheloop/vmath"
)

// Collider pairs a shape with a layer and the opaque id of whatever owns it.
// The game layer rebuilds collider lists from world state each frame.
type Collider struct {
	ID    uint64
	Layer Layer
	Shape Shape
}

// Hit describes the closest raycast intersection.
type Hit struct {
	ID       uint64
	Layer    Layer
	Point    vmath.Vec3
	Normal   vmath.Vec3
	Distance float64
}

// Raycast returns the closest hit among colliders whose layer is in mask and
// whose entry distance is within maxDist. ok is false when nothing is hit.
func Raycast(colliders []Collider, ray Ray, maxDist float64, mask Mask) (Hit, bool) {
	return raycast(colliders, ray, maxDist, mask, nil)
}

// RaycastExcluding behaves like Raycast but skips colliders with the given
// id. Beam traces use it so a reflected ray does not immediately re-hit the
// surface it just bounced off.
func RaycastExcluding(colliders []Collider, ray Ray, maxDist float64, mask Mask, exclude uint64) (Hit, bool) {
	return raycast(colliders, ray, maxDist, mask, func(c Collider) bool {
		return c.ID == exclude
	})
}

func raycast(colliders []Collider, ray Ray, maxDist float64, mask Mask, skip func(Collider) bool) (Hit, bool) {
	var best Hit
	found := false

	for _, c := range colliders {
		if !mask.Contains(c.Layer) {
			continue
		}
		if skip != nil && skip(c) {
			continue
		}
		dist, normal, ok := c.Shape.Raycast(ray)
		if !ok || dist > maxDist {
			continue
		}
		if found && dist >= best.Distance {
			continue
		}
		best = Hit{
			ID:       c.ID,
			Layer:    c.Layer,
			Point:    vmath.V3Add(ray.Origin, vmath.V3Scale(ray.Dir, dist)),
			Normal:   normal,
			Distance: dist,
		}
		found = true
	}
	return best, found
}
