package types

import (
	"iter"
	"strings"
)

// MapValue represents a Value to Value dictionary.
// Keys are matched by value equality, so 1 and 1.0 address the same slot.
type MapValue struct {
	t *table
}

// NewMap creates a map from key/value pairs; later pairs overwrite earlier ones
func NewMap(pairs ...[2]Value) *MapValue {
	m := &MapValue{t: newTable(len(pairs))}
	for _, p := range pairs {
		m.t.put(p[0], p[1])
	}
	return m
}

// NewEmptyMap creates an empty map
func NewEmptyMap() *MapValue {
	return &MapValue{t: newTable(0)}
}

// Len returns the number of entries
func (m *MapValue) Len() int { return m.t.len() }

// Get looks up a key
func (m *MapValue) Get(key Value) (Value, bool) { return m.t.get(key) }

// Set inserts or overwrites a key
func (m *MapValue) Set(key, val Value) { m.t.put(key, val) }

// Delete removes a key and reports whether it was present
func (m *MapValue) Delete(key Value) bool { return m.t.remove(key) }

// Keys returns the keys in insertion order
func (m *MapValue) Keys() []Value {
	keys := make([]Value, 0, m.t.len())
	for _, e := range m.t.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Entries returns the key/value pairs in insertion order
func (m *MapValue) Entries() [][2]Value {
	pairs := make([][2]Value, 0, m.t.len())
	for _, e := range m.t.entries {
		pairs = append(pairs, [2]Value{e.key, e.val})
	}
	return pairs
}

func (m *MapValue) Kind() Kind { return KindMap }

func (m *MapValue) Class() ClassID { return KindMap.ClassID() }

// String renders {k => v, ...}; the empty map is {=>}
func (m *MapValue) String() string {
	if m.t.len() == 0 {
		return "{=>}"
	}
	parts := make([]string, 0, m.t.len())
	for _, e := range m.t.entries {
		parts = append(parts, e.key.String()+" => "+e.val.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m *MapValue) Clone() Value { return &MapValue{t: m.t.clone(true)} }

func (m *MapValue) IsEmpty() bool { return m.t.len() == 0 }

func (m *MapValue) sealed() {}

func (m *MapValue) equal(other Value) (bool, error) {
	o, ok := other.(*MapValue)
	if !ok {
		return false, castError(other, "map")
	}
	if m.Len() != o.Len() {
		return false, nil
	}
	for _, e := range m.t.entries {
		v, found := o.t.get(e.key)
		if !found || !Equals(e.val, v) {
			return false, nil
		}
	}
	return true, nil
}

func (m *MapValue) compare(other Value) (int, error) {
	if eq, err := m.equal(other); err != nil || !eq {
		return 0, Errorf(E_CAST, "maps are not ordered")
	}
	return 0, nil
}

func (m *MapValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		o, ok := rhs.(*MapValue)
		if !ok {
			return nil, Errorf(E_OPERATOR, "operator %s cannot combine map with %s", op, rhs.Kind())
		}
		out := &MapValue{t: m.t.clone(false)}
		for _, e := range o.t.entries {
			out.t.put(e.key, e.val)
		}
		return out, nil
	case OpContains:
		_, ok := m.t.find(rhs)
		return NewBool(ok), nil
	}
	return defaultBinary(op, m, rhs)
}

func (m *MapValue) getProperty(name string) (Value, error) {
	switch name {
	case "size", "empty":
		return sequenceProperty(m, name, m.Len(), nil)
	case "keys":
		return NewSet(m.Keys()...), nil
	case "values":
		s := NewSet()
		for _, e := range m.t.entries {
			s.Add(e.val)
		}
		return s, nil
	case "entries":
		entries := make([]Value, 0, m.Len())
		for _, e := range m.t.entries {
			entries = append(entries, NewTuple(e.key, e.val))
		}
		return NewList(entries...), nil
	}
	return nil, propertyError(m, name)
}

// getItem reads a key; a missing key yields Void
func (m *MapValue) getItem(key Value) (Value, error) {
	if v, ok := m.t.get(key); ok {
		return v, nil
	}
	return Void, nil
}

func (m *MapValue) setItem(key, v Value) error {
	m.t.put(key, v)
	return nil
}

func (m *MapValue) enumerate() iter.Seq2[Value, Value] {
	pairs := m.Entries()
	return func(yield func(Value, Value) bool) {
		for _, p := range pairs {
			if !yield(p[0], p[1]) {
				return
			}
		}
	}
}
