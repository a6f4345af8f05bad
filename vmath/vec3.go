package vmath

import "math"

// Vec3 is a float64 3D vector. The simulation is headless, so there is no
// fixed-point mirror of this type; float64 everywhere keeps the math simple.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

func V3Dist(a, b Vec3) float64 {
	return V3Mag(V3Sub(a, b))
}

func V3DistSq(a, b Vec3) float64 {
	return V3MagSq(V3Sub(a, b))
}

// V3Normalize returns the unit vector, or the zero vector for zero input.
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3Reflect mirrors dir across the plane described by normal:
// reflect = dir - 2*dot(dir, normal)*normal. Normal must be unit length.
func V3Reflect(dir, normal Vec3) Vec3 {
	return V3Sub(dir, V3Scale(normal, 2*V3Dot(dir, normal)))
}

// V3Flatten projects v onto the XZ plane and renormalizes. Returns the zero
// vector when v has no horizontal component (e.g. straight up or down).
func V3Flatten(v Vec3) Vec3 {
	return V3Normalize(Vec3{X: v.X, Z: v.Z})
}

// YawDir converts a yaw angle (radians, 0 = +Z, increasing clockwise when
// viewed from above) into a horizontal unit direction.
func YawDir(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// LookDir converts yaw/pitch angles into a unit direction. Positive pitch
// looks up.
func LookDir(yaw, pitch float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{
		X: math.Sin(yaw) * cp,
		Y: math.Sin(pitch),
		Z: math.Cos(yaw) * cp,
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveToward advances current toward target by at most maxDelta, without
// overshoot.
func MoveToward(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}
