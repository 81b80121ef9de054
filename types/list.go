package types

import (
	"iter"
	"slices"
)

// ListValue represents an ordered, mutable sequence.
// Lists are shared by reference; Clone makes a deep copy.
type ListValue struct {
	items []Value
}

// NewList creates a list holding a copy of items
func NewList(items ...Value) *ListValue {
	return &ListValue{items: slices.Clone(items)}
}

// NewEmptyList creates an empty list
func NewEmptyList() *ListValue {
	return &ListValue{items: []Value{}}
}

// Len returns the length of the list
func (l *ListValue) Len() int { return len(l.items) }

// Items returns a copy of the elements
func (l *ListValue) Items() []Value { return slices.Clone(l.items) }

// Append adds values at the end
func (l *ListValue) Append(vs ...Value) { l.items = append(l.items, vs...) }

// Insert places v before position i, clamped to [0, Len]
func (l *ListValue) Insert(i int, v Value) {
	i = max(0, min(i, len(l.items)))
	l.items = slices.Insert(l.items, i, v)
}

// RemoveAt deletes the element at i and returns it, or Void when i is out of range
func (l *ListValue) RemoveAt(i int) Value {
	if i < 0 || i >= len(l.items) {
		return Void
	}
	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return v
}

func (l *ListValue) Kind() Kind { return KindList }

func (l *ListValue) Class() ClassID { return KindList.ClassID() }

// String renders [a, b]
func (l *ListValue) String() string {
	return "[" + joinItems(l.items) + "]"
}

func (l *ListValue) Clone() Value { return &ListValue{items: cloneItems(l.items)} }

func (l *ListValue) IsEmpty() bool { return len(l.items) == 0 }

func (l *ListValue) sealed() {}

func (l *ListValue) equal(other Value) (bool, error) {
	items, err := AsSlice(other)
	if err != nil {
		return false, err
	}
	return equalItems(l.items, items), nil
}

func (l *ListValue) compare(other Value) (int, error) {
	items, err := AsSlice(other)
	if err != nil {
		return 0, err
	}
	return compareItems(l.items, items), nil
}

func (l *ListValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		items, err := sameKindItems(op, l, rhs)
		if err != nil {
			return nil, err
		}
		return &ListValue{items: slices.Concat(l.items, items)}, nil
	case OpMul:
		items, err := repeatItems(l.items, rhs)
		if err != nil {
			return nil, err
		}
		return &ListValue{items: items}, nil
	case OpContains:
		return NewBool(containsItem(l.items, rhs)), nil
	}
	return defaultBinary(op, l, rhs)
}

func (l *ListValue) getProperty(name string) (Value, error) {
	return sequenceProperty(l, name, len(l.items), func(i int) Value { return l.items[i] })
}

func (l *ListValue) getItem(index Value) (Value, error) {
	n, err := indexArg(index)
	if err != nil {
		return nil, err
	}
	i, ok := readIndex(n, len(l.items))
	if !ok {
		return Void, nil
	}
	return l.items[i], nil
}

func (l *ListValue) setItem(index, v Value) error {
	n, err := indexArg(index)
	if err != nil {
		return err
	}
	i, err := writeIndex(n, len(l.items))
	if err != nil {
		return err
	}
	l.items[i] = v
	return nil
}

func (l *ListValue) getRange(lo, hi int) (Value, error) {
	lo, hi = clampRange(lo, hi, len(l.items))
	return NewList(l.items[lo:hi]...), nil
}

// setRange replaces the clamped slice with the items of v
func (l *ListValue) setRange(lo, hi int, v Value) error {
	items, err := AsSlice(v)
	if err != nil {
		return err
	}
	lo, hi = clampRange(lo, hi, len(l.items))
	l.items = slices.Replace(l.items, lo, hi, items...)
	return nil
}

func (l *ListValue) enumerate() iter.Seq2[Value, Value] {
	return indexedItems(slices.Clone(l.items))
}
