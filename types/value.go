package types

import (
	"iter"
	"strings"
)

// Capabilities a variant may implement. The package functions below
// dispatch on them and fall back to the shared defaults when a variant
// does not support an operation.
type (
	equaler interface {
		equal(other Value) (bool, error)
	}
	comparer interface {
		compare(other Value) (int, error)
	}
	unaryOperand interface {
		unary(op UnaryOperator) (Value, error)
	}
	binaryOperand interface {
		binary(op BinaryOperator, rhs Value) (Value, error)
	}
	propertyGetter interface {
		getProperty(name string) (Value, error)
	}
	propertySetter interface {
		setProperty(name string, v Value) error
	}
	itemGetter interface {
		getItem(index Value) (Value, error)
	}
	itemSetter interface {
		setItem(index, v Value) error
	}
	rangeGetter interface {
		getRange(lo, hi int) (Value, error)
	}
	rangeSetter interface {
		setRange(lo, hi int, v Value) error
	}
	enumerator interface {
		enumerate() iter.Seq2[Value, Value]
	}
	checkedEnumerator interface {
		iterate() (iter.Seq2[Value, Value], error)
	}
)

func orVoid(v Value) Value {
	if v == nil {
		return Void
	}
	return v
}

// Unary applies a unary operator to v.
// `?` (not empty) is defined for every value; increments and decrements
// are defined for the numeric tower as v+1 and v-1.
func Unary(op UnaryOperator, v Value) (Value, error) {
	v = orVoid(v)
	switch op {
	case UnaryNotEmpty:
		return NewBool(!v.IsEmpty()), nil
	case UnaryPreInc, UnaryPostInc:
		if v.Kind().IsNumeric() {
			return Binary(OpAdd, v, NewInt(1))
		}
	case UnaryPreDec, UnaryPostDec:
		if v.Kind().IsNumeric() {
			return Binary(OpSub, v, NewInt(1))
		}
	}
	if u, ok := v.(unaryOperand); ok {
		return u.unary(op)
	}
	return nil, unaryError(op, v)
}

// Binary applies a binary operator without any operand conversion.
// Most callers want BinaryOperation instead.
func Binary(op BinaryOperator, lhs, rhs Value) (Value, error) {
	lhs, rhs = orVoid(lhs), orVoid(rhs)
	switch op {
	case OpIfEmpty:
		if lhs.IsEmpty() {
			return rhs, nil
		}
		return lhs, nil
	case OpAndAlso, OpOrElse:
		a, err := AsBool(lhs)
		if err != nil {
			return nil, err
		}
		if a == (op == OpOrElse) {
			return NewBool(a), nil
		}
		b, err := AsBool(rhs)
		if err != nil {
			return nil, err
		}
		return NewBool(b), nil
	}
	if b, ok := lhs.(binaryOperand); ok {
		return b.binary(op, rhs)
	}
	return defaultBinary(op, lhs, rhs)
}

// defaultBinary is the behaviour shared by every variant: the equality
// family works everywhere, anything else is refused
func defaultBinary(op BinaryOperator, lhs, rhs Value) (Value, error) {
	switch op {
	case OpEq, OpNe:
		eq, err := equal(lhs, rhs)
		if err != nil {
			return nil, err
		}
		return NewBool(eq == (op == OpEq)), nil
	case OpIdentical:
		return NewBool(Identical(lhs, rhs)), nil
	case OpNotIdentical:
		return NewBool(!Identical(lhs, rhs)), nil
	}
	return nil, binaryError(op, lhs)
}

// BinaryOperation is the evaluator entry point for binary operators.
// The left operand is first promoted toward the right operand's kind when
// ConversionNeeded says so. A failed conversion during == or != means the
// operands differ rather than an error.
func BinaryOperation(op BinaryOperator, lhs, rhs Value) (Value, error) {
	lhs, rhs = orVoid(lhs), orVoid(rhs)
	result, err := func() (Value, error) {
		if ConversionNeeded(lhs, rhs.Kind(), op) {
			converted, err := ConvertTo(lhs, rhs.Kind())
			if err != nil {
				return nil, err
			}
			lhs = converted
		}
		return Binary(op, lhs, rhs)
	}()
	if err != nil && CodeOf(err) == E_CAST {
		switch op {
		case OpEq:
			return False, nil
		case OpNe:
			return True, nil
		}
	}
	return result, err
}

// UnaryOperation is the evaluator entry point for unary operators
func UnaryOperation(op UnaryOperator, v Value) (Value, error) {
	return Unary(op, v)
}

// ConversionNeeded reports whether v must be converted to target before
// op is applied. Promotion only ever moves up the numeric tower
// (Boolean, Integer, Long, Rational, Float, Decimal, Complex), except that
// `+` with a string operand stringifies the left side. Void and strings
// are never converted.
func ConversionNeeded(v Value, target Kind, op BinaryOperator) bool {
	k := orVoid(v).Kind()
	switch {
	case k == KindString, k == KindVoid:
		return false
	case op == OpAdd && k.IsSequence() && target.IsSequence():
		return false
	}
	switch op {
	case OpIdentical, OpNotIdentical, OpContains, OpStartsWith, OpEndsWith, OpMatches,
		OpIfEmpty, OpAndAlso, OpOrElse:
		return false
	case OpAdd:
		if target == KindString {
			return true
		}
	}
	return k < target && target < KindDate
}

func equal(a, b Value) (bool, error) {
	if e, ok := a.(equaler); ok {
		return e.equal(b)
	}
	return false, castError(b, a.Kind().String())
}

// Equals reports value equality. Operands that cannot be compared are
// unequal; Equals never fails.
func Equals(a, b Value) bool {
	eq, err := equal(orVoid(a), orVoid(b))
	return err == nil && eq
}

// Compare orders a against b. When the operands cannot be ordered it
// falls back to ordinal comparison of their string forms.
func Compare(a, b Value) int {
	a, b = orVoid(a), orVoid(b)
	if c, ok := a.(comparer); ok {
		if n, err := c.compare(b); err == nil {
			return n
		}
	}
	return strings.Compare(a.String(), b.String())
}

// Identical reports equality between values of the same class
func Identical(a, b Value) bool {
	a, b = orVoid(a), orVoid(b)
	return a.Class() == b.Class() && Equals(a, b)
}

// GetProperty reads a named property
func GetProperty(v Value, name string) (Value, error) {
	v = orVoid(v)
	if g, ok := v.(propertyGetter); ok {
		return g.getProperty(name)
	}
	return nil, propertyError(v, name)
}

// SetProperty writes a named property
func SetProperty(v Value, name string, val Value) error {
	v = orVoid(v)
	if s, ok := v.(propertySetter); ok {
		return s.setProperty(name, orVoid(val))
	}
	if g, ok := v.(propertyGetter); ok {
		if _, err := g.getProperty(name); err == nil {
			return Errorf(E_IMMUTABLE, "property %s of %s is read-only", name, v.Kind())
		}
	}
	return propertyError(v, name)
}

// GetItem reads v[index]
func GetItem(v, index Value) (Value, error) {
	v = orVoid(v)
	if g, ok := v.(itemGetter); ok {
		return g.getItem(orVoid(index))
	}
	return nil, indexerError(v)
}

// SetItem writes v[index]
func SetItem(v, index, val Value) error {
	v = orVoid(v)
	if s, ok := v.(itemSetter); ok {
		return s.setItem(orVoid(index), orVoid(val))
	}
	return indexerError(v)
}

// GetRange reads the slice v[lo:hi]; bounds are clamped
func GetRange(v Value, lo, hi int) (Value, error) {
	v = orVoid(v)
	if g, ok := v.(rangeGetter); ok {
		return g.getRange(lo, hi)
	}
	return nil, indexerError(v)
}

// SetRange replaces the slice v[lo:hi] with the items of val
func SetRange(v Value, lo, hi int, val Value) error {
	v = orVoid(v)
	if s, ok := v.(rangeSetter); ok {
		return s.setRange(lo, hi, orVoid(val))
	}
	return indexerError(v)
}

// Enumerate returns a fresh sequence of (key, value) pairs over v.
// Ordered collections key by position, sets by the element itself,
// queues and stacks by Void.
func Enumerate(v Value) (iter.Seq2[Value, Value], error) {
	v = orVoid(v)
	switch e := v.(type) {
	case checkedEnumerator:
		return e.iterate()
	case enumerator:
		return e.enumerate(), nil
	}
	return nil, Errorf(E_ITER, "%s cannot be iterated", v.Kind())
}

// IsEmpty reports whether v is Void or an empty container
func IsEmpty(v Value) bool { return orVoid(v).IsEmpty() }

// Clone copies v: deeply for mutable collections, by identity for scalars
func Clone(v Value) Value { return orVoid(v).Clone() }
