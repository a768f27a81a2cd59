// Package entity hands out opaque, generation-checked identifiers for list
// items.
//
// An ID names a slot in a Registry together with the generation the slot had
// when the ID was issued. Removing a value bumps the slot generation, so an ID
// kept around after removal never resolves to whatever later reuses the slot.
package entity

import "fmt"

// ID identifies one value in a Registry. The zero ID is never issued.
type ID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool {
	return id.gen == 0
}

func (id ID) String() string {
	if id.IsZero() {
		return "entity(nil)"
	}
	return fmt.Sprintf("%dv%d", id.index, id.gen)
}

type slot[T any] struct {
	gen   uint32
	live  bool
	value T
}

// Registry is a slot arena keyed by ID. It is not safe for concurrent use.
type Registry[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Insert stores v and returns its new ID.
func (r *Registry[T]) Insert(v T) ID {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot[T]{})
	}
	s := &r.slots[idx]
	s.gen++
	s.live = true
	s.value = v
	r.live++
	return ID{index: idx, gen: s.gen}
}

func (r *Registry[T]) lookup(id ID) (*slot[T], bool) {
	if id.IsZero() || int(id.index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[id.index]
	if !s.live || s.gen != id.gen {
		return nil, false
	}
	return s, true
}

// Get returns the value stored under id.
func (r *Registry[T]) Get(id ID) (T, bool) {
	s, ok := r.lookup(id)
	if !ok {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Contains reports whether id refers to a live value.
func (r *Registry[T]) Contains(id ID) bool {
	_, ok := r.lookup(id)
	return ok
}

// Remove deletes the value stored under id and returns it. Removing a stale
// or unknown ID reports false and changes nothing.
func (r *Registry[T]) Remove(id ID) (T, bool) {
	var zero T
	s, ok := r.lookup(id)
	if !ok {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.live = false
	// Retire the generation now so the old ID stops resolving even before
	// the slot is reused.
	s.gen++
	r.free = append(r.free, id.index)
	r.live--
	return v, true
}

// Len returns the number of live values.
func (r *Registry[T]) Len() int {
	return r.live
}

// Each calls fn for every live value in slot order. fn must not insert into
// or remove from the registry.
func (r *Registry[T]) Each(fn func(ID, T)) {
	for i := range r.slots {
		s := &r.slots[i]
		if s.live {
			fn(ID{index: uint32(i), gen: s.gen}, s.value)
		}
	}
}

// First returns the ID of the live value in the lowest slot.
func (r *Registry[T]) First() (ID, bool) {
	for i := range r.slots {
		if s := &r.slots[i]; s.live {
			return ID{index: uint32(i), gen: s.gen}, true
		}
	}
	return ID{}, false
}
