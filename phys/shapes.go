package phys

import (
	"math"

	"github.com/faid1253/whispersoftheloop/vmath"
)

// Shape is a convex solid that can be raycast and point-tested.
type Shape interface {
	// Raycast returns the entry distance along the ray and the surface
	// normal at the hit point. ok is false when the ray misses.
	Raycast(ray Ray) (dist float64, normal vmath.Vec3, ok bool)
	Contains(p vmath.Vec3) bool
}

// Ray has a unit direction.
type Ray struct {
	Origin vmath.Vec3
	Dir    vmath.Vec3
}

// Box is an axis-aligned box.
type Box struct {
	Min, Max vmath.Vec3
}

// BoxAt builds a box from a center position and full extents.
func BoxAt(center, size vmath.Vec3) Box {
	half := vmath.V3Scale(size, 0.5)
	return Box{
		Min: vmath.V3Sub(center, half),
		Max: vmath.V3Add(center, half),
	}
}

func (b Box) Center() vmath.Vec3 {
	return vmath.V3Scale(vmath.V3Add(b.Min, b.Max), 0.5)
}

func (b Box) Contains(p vmath.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Raycast uses the slab method, tracking which axis produced the entry plane
// so the hit normal falls out of the test.
func (b Box) Raycast(ray Ray) (float64, vmath.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	entryAxis := -1
	entrySign := 0.0

	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Dir.X, ray.Dir.Y, ray.Dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, vmath.Vec3{}, false
			}
			continue
		}

		inv := 1.0 / dir[axis]
		t1 := (lo[axis] - origin[axis]) * inv
		t2 := (hi[axis] - origin[axis]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tmin {
			tmin = t1
			entryAxis = axis
			entrySign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, vmath.Vec3{}, false
		}
	}

	if tmax < 0 {
		return 0, vmath.Vec3{}, false
	}
	if tmin < 0 {
		// Origin inside the box.
		return 0, vmath.V3Scale(ray.Dir, -1), true
	}

	var normal vmath.Vec3
	switch entryAxis {
	case 0:
		normal = vmath.V3(entrySign, 0, 0)
	case 1:
		normal = vmath.V3(0, entrySign, 0)
	case 2:
		normal = vmath.V3(0, 0, entrySign)
	}
	return tmin, normal, true
}

// Sphere is a center/radius solid, used for the player body and pickups.
type Sphere struct {
	Center vmath.Vec3
	Radius float64
}

func (s Sphere) Contains(p vmath.Vec3) bool {
	return vmath.V3DistSq(p, s.Center) <= s.Radius*s.Radius
}

func (s Sphere) Raycast(ray Ray) (float64, vmath.Vec3, bool) {
	oc := vmath.V3Sub(ray.Origin, s.Center)
	b := vmath.V3Dot(oc, ray.Dir)
	c := vmath.V3MagSq(oc) - s.Radius*s.Radius

	disc := b*b - c
	if disc < 0 {
		return 0, vmath.Vec3{}, false
	}

	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return 0, vmath.Vec3{}, false
		}
		// Origin inside the sphere.
		return 0, vmath.V3Scale(ray.Dir, -1), true
	}

	point := vmath.V3Add(ray.Origin, vmath.V3Scale(ray.Dir, t))
	normal := vmath.V3Normalize(vmath.V3Sub(point, s.Center))
	return t, normal, true
}

// SphereOverlapsBox reports trigger-volume overlap against a sphere body.
func SphereOverlapsBox(s Sphere, b Box) bool {
	closest := vmath.Vec3{
		X: vmath.Clamp(s.Center.X, b.Min.X, b.Max.X),
		Y: vmath.Clamp(s.Center.Y, b.Min.Y, b.Max.Y),
		Z: vmath.Clamp(s.Center.Z, b.Min.Z, b.Max.Z),
	}
	return vmath.V3DistSq(closest, s.Center) <= s.Radius*s.Radius
}
