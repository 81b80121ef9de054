package types

import "iter"

// SetValue represents a collection deduplicated by value equality.
// Iteration follows insertion order.
type SetValue struct {
	t *table
}

// NewSet creates a set from items, dropping duplicates
func NewSet(items ...Value) *SetValue {
	s := &SetValue{t: newTable(len(items))}
	for _, item := range items {
		s.t.put(item, item)
	}
	return s
}

// Len returns the number of elements
func (s *SetValue) Len() int { return s.t.len() }

// Items returns the elements in insertion order
func (s *SetValue) Items() []Value {
	out := make([]Value, 0, s.t.len())
	for _, e := range s.t.entries {
		out = append(out, e.key)
	}
	return out
}

// Add inserts v and reports whether it was absent
func (s *SetValue) Add(v Value) bool { return s.t.put(v, v) }

// Remove deletes v and reports whether it was present
func (s *SetValue) Remove(v Value) bool { return s.t.remove(v) }

// Contains reports whether an element equal to v is present
func (s *SetValue) Contains(v Value) bool {
	_, ok := s.t.find(v)
	return ok
}

func (s *SetValue) Kind() Kind { return KindSet }

func (s *SetValue) Class() ClassID { return KindSet.ClassID() }

func (s *SetValue) String() string { return "{" + joinItems(s.Items()) + "}" }

func (s *SetValue) Clone() Value { return &SetValue{t: s.t.clone(true)} }

func (s *SetValue) IsEmpty() bool { return s.t.len() == 0 }

func (s *SetValue) sealed() {}

// subsetOf reports whether every element of s is in other
func (s *SetValue) subsetOf(other *SetValue) bool {
	if s.Len() > other.Len() {
		return false
	}
	for _, e := range s.t.entries {
		if !other.Contains(e.key) {
			return false
		}
	}
	return true
}

func (s *SetValue) equal(other Value) (bool, error) {
	o, ok := other.(*SetValue)
	if !ok {
		return false, castError(other, "set")
	}
	return s.Len() == o.Len() && s.subsetOf(o), nil
}

// compare only orders equal sets; anything else falls back to text order
func (s *SetValue) compare(other Value) (int, error) {
	if eq, err := s.equal(other); err != nil || !eq {
		return 0, Errorf(E_CAST, "sets are only partially ordered")
	}
	return 0, nil
}

func (s *SetValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	if op == OpContains {
		return NewBool(s.Contains(rhs)), nil
	}
	o, ok := rhs.(*SetValue)
	if !ok {
		return defaultBinary(op, s, rhs)
	}
	switch op {
	case OpAdd, OpOr:
		out := &SetValue{t: s.t.clone(false)}
		for _, e := range o.t.entries {
			out.Add(e.key)
		}
		return out, nil
	case OpSub:
		out := NewSet()
		for _, e := range s.t.entries {
			if !o.Contains(e.key) {
				out.Add(e.key)
			}
		}
		return out, nil
	case OpAnd:
		out := NewSet()
		for _, e := range s.t.entries {
			if o.Contains(e.key) {
				out.Add(e.key)
			}
		}
		return out, nil
	case OpXor:
		out := NewSet()
		for _, e := range s.t.entries {
			if !o.Contains(e.key) {
				out.Add(e.key)
			}
		}
		for _, e := range o.t.entries {
			if !s.Contains(e.key) {
				out.Add(e.key)
			}
		}
		return out, nil
	case OpLt:
		return NewBool(s.Len() < o.Len() && s.subsetOf(o)), nil
	case OpLe:
		return NewBool(s.subsetOf(o)), nil
	case OpGt:
		return NewBool(o.Len() < s.Len() && o.subsetOf(s)), nil
	case OpGe:
		return NewBool(o.subsetOf(s)), nil
	}
	return defaultBinary(op, s, rhs)
}

func (s *SetValue) getProperty(name string) (Value, error) {
	switch name {
	case "size", "empty":
		return sequenceProperty(s, name, s.Len(), nil)
	}
	return nil, propertyError(s, name)
}

func (s *SetValue) enumerate() iter.Seq2[Value, Value] {
	items := s.Items()
	return func(yield func(Value, Value) bool) {
		for _, item := range items {
			if !yield(item, item) {
				return
			}
		}
	}
}
