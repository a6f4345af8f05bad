package event

// Type discriminates game events on the bus.
type Type int

const (
	// TypeFormShifted fires when the player toggles between Light and
	// Shadow form. Payload: FormShifted.
	TypeFormShifted Type = iota

	// TypeReceiverLit fires on the frame a receiver transitions to lit.
	// Payload: ReceiverLit.
	TypeReceiverLit

	// TypeReceiverActivated fires when a receiver activates its targets,
	// including chained activations. Payload: ReceiverActivated.
	TypeReceiverActivated

	// TypeFragmentCollected fires when the player picks up a memory
	// fragment. Payload: FragmentCollected.
	TypeFragmentCollected

	// TypeCheckpointReached fires when the player enters an unconsumed
	// checkpoint volume. Payload: CheckpointReached.
	TypeCheckpointReached

	// TypeLoopExpired fires when the loop clock reaches zero.
	// Payload: LoopExpired.
	TypeLoopExpired

	// TypeLoopReset fires after the world has been reset, whether from
	// expiry, early completion, or a debug reset. Payload: LoopReset.
	TypeLoopReset

	// TypeQuitRequested fires when the quit binding is pressed.
	// Payload: none.
	TypeQuitRequested
)

// Event is one bus entry. Payload concrete types live in payloads.go.
type Event struct {
	Type    Type
	Payload any
}
