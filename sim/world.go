package sim

import (
	"reflect"
)

// World owns all entity and singleton state for one simulation instance.
// Each World carries its own component registry, so independent worlds can
// coexist without interference.
//
// World is not safe for concurrent use; the scheduler drives it from a single
// goroutine and systems defer structural changes through Commands.
type World struct {
	nextID     EntityID
	stores     map[reflect.Type]componentStore
	singletons map[reflect.Type]any
}

func NewWorld() *World {
	return &World{
		stores:     make(map[reflect.Type]componentStore),
		singletons: make(map[reflect.Type]any),
	}
}

// RegisterComponent registers a component type with the world. Every component
// type must be registered before entities using it are spawned.
func RegisterComponent[T any](w *World) {
	t := componentType[T]()
	if _, ok := w.stores[t]; ok {
		return
	}
	w.stores[t] = newStore[T]()
}

// Spawn creates a new entity holding the provided components. Components may
// be passed by value or pointer; they are stored by value either way.
func (w *World) Spawn(components ...any) EntityID {
	if len(components) == 0 {
		panic("sim: cannot spawn entity without components")
	}
	w.nextID++
	id := w.nextID
	for _, comp := range components {
		w.attach(id, comp)
	}
	return id
}

// Attach adds a component to an existing entity, replacing any previous value
// of the same type.
func (w *World) Attach(e EntityID, comp any) {
	w.attach(e, comp)
}

func (w *World) attach(e EntityID, comp any) {
	t := normalizeType(comp)
	s, ok := w.stores[t]
	if !ok {
		panic("sim: component type " + t.String() + " not registered")
	}
	if !s.insertAny(e, comp) {
		panic("sim: component value for " + t.String() + " must be T or *T")
	}
}

// Detach removes a component of the given type from an entity. Detaching a
// component the entity does not have is a no-op.
func (w *World) Detach(e EntityID, t reflect.Type) {
	if s, ok := w.stores[t]; ok {
		s.removeEntity(e)
	}
}

// Delete removes the entity from every store. Stale IDs are harmless.
func (w *World) Delete(e EntityID) {
	for _, s := range w.stores {
		s.removeEntity(e)
	}
}

// HasComponent reports whether the entity currently holds the component type.
func (w *World) HasComponent(e EntityID, t reflect.Type) bool {
	s, ok := w.stores[t]
	return ok && s.hasEntity(e)
}

func (w *World) storeFor(t reflect.Type) componentStore {
	return w.stores[t]
}

// Get returns a pointer into the entity's component, or nil when the entity
// does not hold one. The pointer is invalidated by structural changes, so it
// must not be retained across a frame boundary.
func Get[T any](w *World, e EntityID) *T {
	s, ok := w.stores[componentType[T]()]
	if !ok {
		return nil
	}
	p, ok := s.getAny(e)
	if !ok {
		return nil
	}
	return p.(*T)
}

// Has reports whether the entity holds a component of type T.
func Has[T any](w *World, e EntityID) bool {
	return w.HasComponent(e, componentType[T]())
}

// Count returns the number of entities holding component T.
func Count[T any](w *World) int {
	s, ok := w.stores[componentType[T]()]
	if !ok {
		return 0
	}
	return s.size()
}

// applyCommands drains a frame's buffered structural changes. Deletes apply
// first so later detaches and attaches to a dead entity are dropped, spawns
// follow, and queued funcs run once the world has settled.
func (w *World) applyCommands(c *Commands) {
	dead := make(map[EntityID]bool, len(c.deletes))
	for _, e := range c.deletes {
		w.Delete(e)
		dead[e] = true
	}
	for _, cmd := range c.detach {
		if !dead[cmd.entity] {
			w.Detach(cmd.entity, cmd.compType)
		}
	}
	for _, cmd := range c.attach {
		if !dead[cmd.entity] {
			w.Attach(cmd.entity, cmd.component)
		}
	}
	for _, cmd := range c.spawns {
		w.Spawn(cmd.components...)
	}
	for _, fn := range c.defers {
		fn()
	}
}

func (w *World) singletonEntry(t reflect.Type) (any, bool) {
	v, ok := w.singletons[t]
	return v, ok
}

func (w *World) addSingleton(t reflect.Type, v any) {
	w.singletons[t] = v
}
