// Package layout defines the JSON chamber format and loads documents into a
// simulation world. Puzzle wiring is by name: receivers reference their
// targets and chained receivers by the names given to other entries, and the
// loader resolves those to entity ids.
package layout

import (
	"github.com/faid1253/whispersoftheloop/vmath"
)

// Vec is a position or size triple in document order X, Y, Z.
type Vec [3]float64

func (v Vec) V3() vmath.Vec3 {
	return vmath.V3(v[0], v[1], v[2])
}

// Document is one chamber: static geometry plus the puzzle entities wired up
// by name.
type Document struct {
	Name string `json:"name" jsonschema:"title=Chamber name"`

	PlayerSpawn Vec        `json:"playerSpawn" jsonschema:"description=Loop start position"`
	Player      *PlayerDef `json:"player,omitempty"`

	Geometry      []GeometryDef     `json:"geometry,omitempty"`
	Emitters      []EmitterDef      `json:"emitters,omitempty"`
	Mirrors       []MirrorDef       `json:"mirrors,omitempty"`
	Receivers     []ReceiverDef     `json:"receivers,omitempty"`
	Platforms     []PlatformDef     `json:"platforms,omitempty"`
	ResetTriggers []ResetTriggerDef `json:"resetTriggers,omitempty"`
	Fragments     []FragmentDef     `json:"fragments,omitempty"`
	Checkpoints   []CheckpointDef   `json:"checkpoints,omitempty"`
	SpawnAreas    []SpawnAreaDef    `json:"spawnAreas,omitempty"`
}

// PlayerDef overrides controller tuning. Zero fields keep the defaults.
type PlayerDef struct {
	MoveSpeed       float64 `json:"moveSpeed,omitempty"`
	JumpSpeed       float64 `json:"jumpSpeed,omitempty"`
	LookSensitivity float64 `json:"lookSensitivity,omitempty"`
	ShiftCooldown   float64 `json:"shiftCooldown,omitempty"`
	Radius          float64 `json:"radius,omitempty"`
}

// GeometryDef is a static collision box.
type GeometryDef struct {
	Name     string `json:"name,omitempty"`
	Position Vec    `json:"position"`
	Size     Vec    `json:"size"`
	Layer    string `json:"layer,omitempty" jsonschema:"enum=default,enum=ground,enum=lightBarrier,enum=shadowBarrier"`
}

// EmitterDef is a beam source aimed by yaw and pitch.
type EmitterDef struct {
	Name        string  `json:"name,omitempty"`
	Position    Vec     `json:"position"`
	Yaw         float64 `json:"yaw,omitempty"`
	Pitch       float64 `json:"pitch,omitempty"`
	Disabled    bool    `json:"disabled,omitempty"`
	MaxBounces  int     `json:"maxBounces,omitempty" jsonschema:"description=0 uses the configured default"`
	MaxDistance float64 `json:"maxDistance,omitempty" jsonschema:"description=0 uses the configured default"`
}

// MirrorDef is a beam reflector. Area optionally names a spawn area for
// randomized re-placement on loop reset; the authored yaw is restored either
// way.
type MirrorDef struct {
	Name         string  `json:"name,omitempty"`
	Position     Vec     `json:"position"`
	Yaw          float64 `json:"yaw,omitempty"`
	RotateSpeed  float64 `json:"rotateSpeed,omitempty"`
	Controllable bool    `json:"controllable,omitempty"`
	Radius       float64 `json:"radius,omitempty"`
	Area         string  `json:"area,omitempty"`
}

// ReceiverDef is a beam target. Targets and Chained name other entries.
type ReceiverDef struct {
	Name     string   `json:"name"`
	Position Vec      `json:"position"`
	Radius   float64  `json:"radius,omitempty"`
	OneShot  bool     `json:"oneShot,omitempty"`
	Targets  []string `json:"targets,omitempty" jsonschema:"description=Names of activatable entries to toggle"`
	Chained  []string `json:"chained,omitempty" jsonschema:"description=Names of receivers activated together with this one"`
}

// PlatformDef is a vertically moving platform, named so receivers can toggle
// it.
type PlatformDef struct {
	Name     string  `json:"name"`
	Position Vec     `json:"position"`
	Size     Vec     `json:"size"`
	LowY     float64 `json:"lowY"`
	HighY    float64 `json:"highY"`
	Speed    float64 `json:"speed"`
	Enabled  bool    `json:"enabled,omitempty" jsonschema:"description=Authored state restored on loop reset"`
}

// ResetTriggerDef completes the loop when the named platform reaches the
// threshold height.
type ResetTriggerDef struct {
	Name      string  `json:"name,omitempty"`
	Platform  string  `json:"platform"`
	Threshold float64 `json:"threshold"`
}

// FragmentDef is a collectible. Area optionally names a spawn area for
// randomized re-placement on loop reset.
type FragmentDef struct {
	Name      string  `json:"name,omitempty"`
	ID        int     `json:"id"`
	Position  Vec     `json:"position"`
	Radius    float64 `json:"radius,omitempty"`
	TimeBonus float64 `json:"timeBonus,omitempty"`
	Area      string  `json:"area,omitempty"`
}

// CheckpointDef pauses the loop clock when entered.
type CheckpointDef struct {
	Name          string  `json:"name,omitempty"`
	Position      Vec     `json:"position"`
	Size          Vec     `json:"size"`
	PauseDuration float64 `json:"pauseDuration"`
}

// SpawnAreaDef bounds randomized placement.
type SpawnAreaDef struct {
	Name        string  `json:"name"`
	Position    Vec     `json:"position"`
	Extents     Vec     `json:"extents"`
	MinSpacing  float64 `json:"minSpacing,omitempty"`
	MaxAttempts int     `json:"maxAttempts,omitempty"`
}
