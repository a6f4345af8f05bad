package sim

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// componentStore is the type-erased interface over a typed sparse set.
type componentStore interface {
	insertAny(e EntityID, comp any) bool
	removeEntity(e EntityID) bool
	hasEntity(e EntityID) bool
	getAny(e EntityID) (any, bool)
	size() int
	entityAt(i int) EntityID
}

// store holds components of one type in a dense slice, with an int-keyed map
// from entity ID to dense index. Swap-delete keeps the slice packed.
type store[T any] struct {
	index *intmap.Map[EntityID, int]
	ids   []EntityID
	data  []T
}

func newStore[T any]() *store[T] {
	return &store[T]{
		index: intmap.New[EntityID, int](64),
	}
}

func (s *store[T]) insert(e EntityID, comp T) {
	if i, ok := s.index.Get(e); ok {
		s.data[i] = comp
		return
	}
	s.index.Put(e, len(s.ids))
	s.ids = append(s.ids, e)
	s.data = append(s.data, comp)
}

// insertAny accepts a T or a *T, matching how entities are spawned.
func (s *store[T]) insertAny(e EntityID, comp any) bool {
	switch v := comp.(type) {
	case T:
		s.insert(e, v)
	case *T:
		s.insert(e, *v)
	default:
		return false
	}
	return true
}

func (s *store[T]) removeEntity(e EntityID) bool {
	i, ok := s.index.Get(e)
	if !ok {
		return false
	}
	last := len(s.ids) - 1
	if i != last {
		s.ids[i] = s.ids[last]
		s.data[i] = s.data[last]
		s.index.Put(s.ids[i], i)
	}
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	s.index.Del(e)
	return true
}

func (s *store[T]) hasEntity(e EntityID) bool {
	_, ok := s.index.Get(e)
	return ok
}

func (s *store[T]) get(e EntityID) (*T, bool) {
	i, ok := s.index.Get(e)
	if !ok {
		return nil, false
	}
	return &s.data[i], true
}

func (s *store[T]) getAny(e EntityID) (any, bool) {
	p, ok := s.get(e)
	if !ok {
		return nil, false
	}
	return p, true
}

func (s *store[T]) size() int {
	return len(s.ids)
}

func (s *store[T]) entityAt(i int) EntityID {
	return s.ids[i]
}

func componentType[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// normalizeType maps both T and *T to the component type T.
func normalizeType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
