package types

import (
	"iter"
	"strings"
)

// Helpers shared by the ordered collections (Tuple, List, Queue, Stack).

func joinItems(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}

func equalItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equals(a[i], b[i]) {
			return false
		}
	}
	return true
}

// compareItems orders lexicographically, then by length
func compareItems(a, b []Value) int {
	for i := range min(len(a), len(b)) {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt64(int64(len(a)), int64(len(b)))
}

func containsItem(items []Value, v Value) bool {
	for _, item := range items {
		if Equals(item, v) {
			return true
		}
	}
	return false
}

func repeatItems(items []Value, times Value) ([]Value, error) {
	n, err := AsInt32(times)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, len(items)*max(int(n), 0))
	for range n {
		out = append(out, items...)
	}
	return out, nil
}

func cloneItems(items []Value) []Value {
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// sameKindItems returns the items of rhs when it is the same collection
// kind as lhs; mixed-kind concatenation is refused
func sameKindItems(op BinaryOperator, lhs, rhs Value) ([]Value, error) {
	if lhs.Kind() != rhs.Kind() {
		return nil, Errorf(E_OPERATOR, "operator %s cannot combine %s with %s", op, lhs.Kind(), rhs.Kind())
	}
	return AsSlice(rhs)
}

func indexedItems(items []Value) iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for i, item := range items {
			if !yield(NewInt(int32(i)), item) {
				return
			}
		}
	}
}

func unkeyedItems(items []Value) iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for _, item := range items {
			if !yield(Void, item) {
				return
			}
		}
	}
}
