package ecs

import "fmt"

// AnyStore provides type-erased operations so the World can manage every
// store uniformly (destroy cleanup, queries) without knowing T.
type AnyStore interface {
	Name() string
	Has(id EntityID) bool
	Len() int
	Entities() []EntityID
	Clear()

	drop(id EntityID)
}

// Store is a sparse set holding one component type.
// sparse maps a slot index to a position in the dense arrays; dense holds
// the full handle so a stale generation never matches.
type Store[T any] struct {
	world  *World
	name   string
	sparse []int32
	dense  []EntityID
	data   []T
}

// NewStore creates a store for T and registers it with w.
func NewStore[T any](w *World, name string) *Store[T] {
	s := &Store[T]{
		world: w,
		name:  name,
		dense: make([]EntityID, 0, 32),
		data:  make([]T, 0, 32),
	}
	w.register(s)
	return s
}

// Name returns the component name used in diagnostics and save files.
func (s *Store[T]) Name() string { return s.name }

func (s *Store[T]) lookup(id EntityID) (int32, bool) {
	idx := id.Index()
	if int(idx) >= len(s.sparse) {
		return -1, false
	}
	p := s.sparse[idx]
	if p < 0 || s.dense[p] != id {
		return -1, false
	}
	return p, true
}

// Insert attaches or overwrites the component on id.
// Inserting into a dead entity is a pipeline-ordering bug and panics.
func (s *Store[T]) Insert(id EntityID, v T) {
	if !s.world.Alive(id) {
		panic(fmt.Sprintf("ecs: insert %s into dead entity %d", s.name, id))
	}
	if p, ok := s.lookup(id); ok {
		s.data[p] = v
		return
	}
	idx := int(id.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, -1)
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, id)
	s.data = append(s.data, v)
}

// Get returns a copy of the component, if present.
func (s *Store[T]) Get(id EntityID) (T, bool) {
	if p, ok := s.lookup(id); ok {
		return s.data[p], true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer into the store, or nil when absent.
// The pointer is invalidated by the next Insert of a new entity or Remove.
func (s *Store[T]) GetMut(id EntityID) *T {
	if p, ok := s.lookup(id); ok {
		return &s.data[p]
	}
	return nil
}

// Has reports whether id carries this component.
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.lookup(id)
	return ok
}

// Remove detaches the component. Removing from a dead entity panics;
// removing a component the entity does not carry is a no-op.
func (s *Store[T]) Remove(id EntityID) {
	if !s.world.Alive(id) {
		panic(fmt.Sprintf("ecs: remove %s from dead entity %d", s.name, id))
	}
	s.drop(id)
}

func (s *Store[T]) drop(id EntityID) {
	p, ok := s.lookup(id)
	if !ok {
		return
	}
	last := int32(len(s.dense) - 1)
	if p != last {
		moved := s.dense[last]
		s.dense[p] = moved
		s.data[p] = s.data[last]
		s.sparse[moved.Index()] = p
	}
	var zero T
	s.data[last] = zero
	s.dense = s.dense[:last]
	s.data = s.data[:last]
	s.sparse[id.Index()] = -1
}

// Len returns the number of entities carrying this component.
func (s *Store[T]) Len() int { return len(s.dense) }

// Entities returns a snapshot of every entity carrying this component.
func (s *Store[T]) Entities() []EntityID {
	out := make([]EntityID, len(s.dense))
	copy(out, s.dense)
	return out
}

// Each calls fn for a snapshot of the store's entities. fn may insert or
// remove components freely; entities removed before their turn are skipped.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.Entities() {
		if v := s.GetMut(id); v != nil {
			fn(id, v)
		}
	}
}

// Clear removes the component from every entity.
func (s *Store[T]) Clear() {
	for _, id := range s.dense {
		s.sparse[id.Index()] = -1
	}
	clear(s.data)
	s.dense = s.dense[:0]
	s.data = s.data[:0]
}
