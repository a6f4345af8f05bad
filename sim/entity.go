package sim

// EntityID identifies a live entity. IDs are assigned monotonically and never
// reused within a world, so a stale ID held across a delete simply resolves to
// nothing.
type EntityID uint64

// None is the zero EntityID; no live entity ever has it.
const None EntityID = 0
