package sim

// Singleton provides access to a single component instance that is not
// associated with any entity: global game state, configuration, input.
type Singleton[T any] struct {
	world *World
	ptr   *T
}

// NewSingleton returns an accessor for the world-global T, creating it from
// the initializer (or the zero value) when it does not exist yet. The
// singleton is guaranteed to exist in the world after the call.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	t := componentType[T]()
	if _, ok := world.singletonEntry(t); !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		world.addSingleton(t, &value)
	}

	s := &Singleton[T]{}
	s.initWorld(world)
	return s
}

// initWorld binds the accessor to a world. Called by the scheduler through
// the worldBinder interface when a system is registered.
func (s *Singleton[T]) initWorld(w *World) {
	s.world = w
	s.ptr = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.world == nil {
		return
	}
	if v, ok := s.world.singletonEntry(componentType[T]()); ok {
		s.ptr = v.(*T)
	}
}

// Get returns a pointer to the singleton, or nil when it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added to the world.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
