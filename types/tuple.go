package types

import (
	"iter"
	"slices"
)

// TupleValue represents a fixed-size, immutable sequence
type TupleValue struct {
	items []Value
}

// NewTuple creates a tuple holding a copy of items
func NewTuple(items ...Value) TupleValue {
	return TupleValue{items: slices.Clone(items)}
}

// Len returns the number of items
func (t TupleValue) Len() int { return len(t.items) }

// Items returns a copy of the items
func (t TupleValue) Items() []Value { return slices.Clone(t.items) }

func (t TupleValue) Kind() Kind { return KindTuple }

func (t TupleValue) Class() ClassID { return KindTuple.ClassID() }

// String renders (a, b); a single item keeps its trailing comma
func (t TupleValue) String() string {
	if len(t.items) == 1 {
		return "(" + t.items[0].String() + ",)"
	}
	return "(" + joinItems(t.items) + ")"
}

func (t TupleValue) Clone() Value { return TupleValue{items: cloneItems(t.items)} }

func (t TupleValue) IsEmpty() bool { return len(t.items) == 0 }

func (t TupleValue) sealed() {}

func (t TupleValue) equal(other Value) (bool, error) {
	items, err := AsSlice(other)
	if err != nil {
		return false, err
	}
	return equalItems(t.items, items), nil
}

func (t TupleValue) compare(other Value) (int, error) {
	items, err := AsSlice(other)
	if err != nil {
		return 0, err
	}
	return compareItems(t.items, items), nil
}

func (t TupleValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		items, err := sameKindItems(op, t, rhs)
		if err != nil {
			return nil, err
		}
		return TupleValue{items: slices.Concat(t.items, items)}, nil
	case OpMul:
		items, err := repeatItems(t.items, rhs)
		if err != nil {
			return nil, err
		}
		return TupleValue{items: items}, nil
	case OpContains:
		return NewBool(containsItem(t.items, rhs)), nil
	}
	return defaultBinary(op, t, rhs)
}

func (t TupleValue) getProperty(name string) (Value, error) {
	return sequenceProperty(t, name, len(t.items), func(i int) Value { return t.items[i] })
}

func (t TupleValue) getItem(index Value) (Value, error) {
	n, err := indexArg(index)
	if err != nil {
		return nil, err
	}
	i, ok := readIndex(n, len(t.items))
	if !ok {
		return Void, nil
	}
	return t.items[i], nil
}

func (t TupleValue) setItem(Value, Value) error {
	return Errorf(E_IMMUTABLE, "tuples are immutable")
}

func (t TupleValue) getRange(lo, hi int) (Value, error) {
	lo, hi = clampRange(lo, hi, len(t.items))
	return NewTuple(t.items[lo:hi]...), nil
}

func (t TupleValue) setRange(int, int, Value) error {
	return Errorf(E_IMMUTABLE, "tuples are immutable")
}

func (t TupleValue) enumerate() iter.Seq2[Value, Value] {
	return indexedItems(t.items)
}
