package sim

// System is a behavior that operates on entities with specific components.
// User-defined systems implement this interface and can declare Query and
// Singleton fields, which the scheduler initializes on registration. Any
// other fields persist between frames as system-local state.
type System interface {
	Execute(frame *UpdateFrame)
}
