package event

// FormShifted reports a player form toggle.
type FormShifted struct {
	Entity uint64
	Shadow bool
}

// ReceiverLit reports a receiver becoming lit this frame.
type ReceiverLit struct {
	Receiver uint64
}

// ReceiverActivated reports a receiver activation and whether it latched.
type ReceiverActivated struct {
	Receiver uint64
	Latched  bool
	Chained  bool
}

// FragmentCollected reports a fragment pickup.
type FragmentCollected struct {
	Fragment  uint64
	ID        int
	Collected int
	Total     int
}

// CheckpointReached reports the player entering a checkpoint volume.
type CheckpointReached struct {
	Checkpoint    uint64
	PauseDuration float64
}

// LoopExpired reports the clock reaching zero; reset follows the same frame.
type LoopExpired struct {
	Loop int
}

// LoopReset reports a completed world reset.
type LoopReset struct {
	Loop  int
	Early bool
	Debug bool
}
