package sim

import (
	"iter"
	"reflect"
)

// Query iterates entities holding a specific combination of components.
// The type parameter T must be a struct whose exported pointer fields name
// the required component types. A field of type EntityID receives the entity
// id, and named pointer fields carrying the `sim:"optional"` tag are filled
// with nil instead of excluding the entity when the component is missing.
type Query[T any] struct {
	world  *World
	fields []queryField
}

type queryField struct {
	index    int
	compType reflect.Type
	optional bool
	isID     bool
}

// NewQuery creates a query bound to the given world. Systems normally declare
// Query fields instead and let the scheduler bind them on registration.
func NewQuery[T any](world *World) *Query[T] {
	q := &Query[T]{}
	q.initWorld(world)
	return q
}

// initWorld binds the query to a world. Called by the scheduler through the
// worldBinder interface when a system is registered.
func (q *Query[T]) initWorld(w *World) {
	q.world = w
	q.fields = q.fields[:0]

	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("sim: Query type parameter must be a struct")
	}

	idType := reflect.TypeFor[EntityID]()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == idType {
			q.fields = append(q.fields, queryField{index: i, isID: true})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("sim: Query struct fields must be component pointers or EntityID")
		}
		if !field.IsExported() && !field.Anonymous {
			panic("sim: Query struct fields must be exported")
		}

		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("sim"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("sim: invalid sim tag value " + tag + " (only \"optional\" is supported)")
			}
		}

		q.fields = append(q.fields, queryField{
			index:    i,
			compType: field.Type.Elem(),
			optional: optional,
		})
	}
}

// Fill populates the result struct for one entity. Returns false when the
// entity is missing a required component.
func (q *Query[T]) Fill(e EntityID, out *T) bool {
	rv := reflect.ValueOf(out).Elem()

	for _, f := range q.fields {
		if f.isID {
			rv.Field(f.index).Set(reflect.ValueOf(e))
			continue
		}

		var comp any
		if s := q.world.storeFor(f.compType); s != nil {
			comp, _ = s.getAny(e)
		}

		if comp == nil {
			if !f.optional {
				return false
			}
			rv.Field(f.index).SetZero()
			continue
		}
		rv.Field(f.index).Set(reflect.ValueOf(comp))
	}
	return true
}

// Get returns the populated result for one entity, or ok=false when it does
// not match the query.
func (q *Query[T]) Get(e EntityID) (T, bool) {
	var result T
	ok := q.Fill(e, &result)
	return result, ok
}

// driver picks the smallest required component store to iterate over.
func (q *Query[T]) driver() componentStore {
	var smallest componentStore
	for _, f := range q.fields {
		if f.isID || f.optional {
			continue
		}
		s := q.world.storeFor(f.compType)
		if s == nil {
			return nil
		}
		if smallest == nil || s.size() < smallest.size() {
			smallest = s
		}
	}
	return smallest
}

// Iter yields a result struct for every matching entity. Component pointers
// point into live storage; structural changes must go through Commands, so
// iteration never observes a half-applied spawn or delete.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		drv := q.driver()
		if drv == nil {
			return
		}
		// Snapshot the id list so a swap-delete during flush cannot skew a
		// nested iteration.
		ids := make([]EntityID, drv.size())
		for i := range ids {
			ids[i] = drv.entityAt(i)
		}
		var result T
		for _, e := range ids {
			if !q.Fill(e, &result) {
				continue
			}
			if !yield(result) {
				return
			}
		}
	}
}

// First returns the first matching entity, for components expected to exist
// at most once (the player, a lone reset trigger).
func (q *Query[T]) First() (T, bool) {
	for item := range q.Iter() {
		return item, true
	}
	var zero T
	return zero, false
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
