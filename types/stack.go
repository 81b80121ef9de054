package types

import (
	"iter"
	"slices"
)

// StackValue represents a LIFO sequence.
// Items are stored bottom to top; every view lists them top first.
type StackValue struct {
	items []Value
}

// NewStack creates a stack from items listed top first
func NewStack(items ...Value) *StackValue {
	s := slices.Clone(items)
	slices.Reverse(s)
	return &StackValue{items: s}
}

// Len returns the number of stacked items
func (s *StackValue) Len() int { return len(s.items) }

// Items returns the items top first
func (s *StackValue) Items() []Value {
	out := slices.Clone(s.items)
	slices.Reverse(out)
	return out
}

// Push places v on top
func (s *StackValue) Push(v Value) { s.items = append(s.items, v) }

// Pop removes and returns the top item
func (s *StackValue) Pop() (Value, bool) {
	if len(s.items) == 0 {
		return Void, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Peek returns the top item without removing it
func (s *StackValue) Peek() (Value, bool) {
	if len(s.items) == 0 {
		return Void, false
	}
	return s.items[len(s.items)-1], true
}

func (s *StackValue) Kind() Kind { return KindStack }

func (s *StackValue) Class() ClassID { return KindStack.ClassID() }

func (s *StackValue) String() string { return "stack[" + joinItems(s.Items()) + "]" }

func (s *StackValue) Clone() Value { return &StackValue{items: cloneItems(s.items)} }

func (s *StackValue) IsEmpty() bool { return len(s.items) == 0 }

func (s *StackValue) sealed() {}

func (s *StackValue) equal(other Value) (bool, error) {
	items, err := AsSlice(other)
	if err != nil {
		return false, err
	}
	return equalItems(s.Items(), items), nil
}

func (s *StackValue) compare(other Value) (int, error) {
	items, err := AsSlice(other)
	if err != nil {
		return 0, err
	}
	return compareItems(s.Items(), items), nil
}

func (s *StackValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	if op == OpContains {
		return NewBool(containsItem(s.items, rhs)), nil
	}
	return defaultBinary(op, s, rhs)
}

func (s *StackValue) getProperty(name string) (Value, error) {
	switch name {
	case "size", "empty":
		return sequenceProperty(s, name, len(s.items), nil)
	}
	return nil, propertyError(s, name)
}

func (s *StackValue) enumerate() iter.Seq2[Value, Value] {
	return unkeyedItems(s.Items())
}
