package oop

import (
	"addy/types"
	"iter"
	"slices"
)

// MemberSet is an insertion-ordered collection of members with unique names.
// The zero value is an empty set.
type MemberSet[T Member] struct {
	items []T
	index map[string]int
}

func (s *MemberSet[T]) add(m T) error {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[m.Name()]; exists {
		return types.Errorf(types.E_DUPLICATE, "member %s already exists", m.Name())
	}
	s.index[m.Name()] = len(s.items)
	s.items = append(s.items, m)
	return nil
}

// Len returns the number of members
func (s *MemberSet[T]) Len() int { return len(s.items) }

// Get looks a member up by name
func (s *MemberSet[T]) Get(name string) (T, bool) {
	i, ok := s.index[name]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Contains reports whether a member is named name
func (s *MemberSet[T]) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Items returns the members in declaration order
func (s *MemberSet[T]) Items() []T { return slices.Clone(s.items) }

// All iterates the members in declaration order
func (s *MemberSet[T]) All() iter.Seq[T] {
	return slices.Values(s.items)
}

// Names returns the member names in declaration order
func (s *MemberSet[T]) Names() []string {
	names := make([]string, len(s.items))
	for i, m := range s.items {
		names[i] = m.Name()
	}
	return names
}
