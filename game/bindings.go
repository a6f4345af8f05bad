package game

// Action is a named input intent. The simulation core has no real input
// devices; the runner translates key names through Bindings and applies
// actions to the Input singleton.
type Action int

const (
	ActionNone Action = iota
	ActionJump
	ActionToggleForm
	ActionMirrorLeft
	ActionMirrorRight
	ActionDebugReset
	ActionQuit
)

// Bindings maps key names to actions.
type Bindings map[string]Action

// DefaultBindings mirrors the prototype's key map: Space=jump, Q=form
// toggle, arrow keys=mirror rotate, R=debug reset, L=quit. Movement (WASD)
// and mouse-look are axes applied directly, not bound actions.
func DefaultBindings() Bindings {
	return Bindings{
		"space": ActionJump,
		"q":     ActionToggleForm,
		"left":  ActionMirrorLeft,
		"right": ActionMirrorRight,
		"r":     ActionDebugReset,
		"l":     ActionQuit,
	}
}

// Press applies a bound key press to the input state. Unknown keys no-op.
func (b Bindings) Press(in *Input, key string) {
	switch b[key] {
	case ActionJump:
		in.Jump = true
	case ActionToggleForm:
		in.ToggleForm = true
	case ActionMirrorLeft:
		in.MirrorRotate = 1
	case ActionMirrorRight:
		in.MirrorRotate = -1
	case ActionDebugReset:
		in.DebugReset = true
	case ActionQuit:
		in.Quit = true
	}
}
