package game

import (
	"math/rand/v2"

	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/vmath"
)

const defaultSpawnAttempts = 16

// RandomPoint rejection-samples a position inside the area centered at
// center. Candidates closer than the area's minimum spacing to any taken
// position, or inside a blocking collider, are rejected and redrawn up to
// the attempt cap. ok is false when every attempt was rejected; callers keep
// the previous position.
func RandomPoint(r *rand.Rand, center vmath.Vec3, area SpawnArea, taken []vmath.Vec3, blockers []phys.Collider) (vmath.Vec3, bool) {
	attempts := area.MaxAttempts
	if attempts <= 0 {
		attempts = defaultSpawnAttempts
	}

	for range attempts {
		p := vmath.V3(
			center.X+(r.Float64()-0.5)*area.Extents.X,
			center.Y+(r.Float64()-0.5)*area.Extents.Y,
			center.Z+(r.Float64()-0.5)*area.Extents.Z,
		)
		if tooClose(p, taken, area.MinSpacing) || blocked(p, blockers) {
			continue
		}
		return p, true
	}
	return vmath.Vec3{}, false
}

func tooClose(p vmath.Vec3, taken []vmath.Vec3, spacing float64) bool {
	if spacing <= 0 {
		return false
	}
	for _, t := range taken {
		if vmath.V3DistSq(p, t) < spacing*spacing {
			return true
		}
	}
	return false
}

func blocked(p vmath.Vec3, blockers []phys.Collider) bool {
	for _, b := range blockers {
		if b.Shape.Contains(p) {
			return true
		}
	}
	return false
}
