package types

import (
	"math"
	"math/big"
	"strconv"
)

// IntValue represents a 32-bit integer
type IntValue struct {
	val int32
}

// NewInt creates a new IntValue
func NewInt(val int32) IntValue {
	return IntValue{val: val}
}

// Val returns the underlying int32
func (i IntValue) Val() int32 { return i.val }

func (i IntValue) Kind() Kind { return KindInt }

func (i IntValue) Class() ClassID { return KindInt.ClassID() }

func (i IntValue) String() string { return strconv.FormatInt(int64(i.val), 10) }

func (i IntValue) Clone() Value { return i }

func (i IntValue) IsEmpty() bool { return false }

func (i IntValue) sealed() {}

func (i IntValue) widen() LongValue { return NewLongFromInt64(int64(i.val)) }

func (i IntValue) equal(other Value) (bool, error) {
	if other.Kind().IsNumeric() {
		return numericEqual(i, other)
	}
	n, err := AsInt32(other)
	if err != nil {
		return false, err
	}
	return i.val == n, nil
}

func (i IntValue) compare(other Value) (int, error) {
	if other.Kind().IsNumeric() {
		return numericCompare(i, other)
	}
	n, err := AsInt32(other)
	if err != nil {
		return 0, err
	}
	return cmpInt64(int64(i.val), int64(n)), nil
}

func (i IntValue) unary(op UnaryOperator) (Value, error) {
	switch op {
	case UnaryPlus:
		return i, nil
	case UnaryMinus:
		if i.val == math.MinInt32 {
			return NewLong(new(big.Int).Neg(big.NewInt(int64(i.val)))), nil
		}
		return NewInt(-i.val), nil
	case UnaryBitNot:
		return NewInt(^i.val), nil
	}
	return nil, unaryError(op, i)
}

func (i IntValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpMul:
		// repetition is implemented by the sequence
		switch rhs.Kind() {
		case KindString, KindBlob, KindTuple, KindList:
			return Binary(op, rhs, i)
		}
	case OpAdd, OpSub, OpDiv, OpMod, OpPow, OpAnd, OpOr, OpXor, OpShl, OpShr,
		OpLt, OpLe, OpGt, OpGe:
	default:
		return defaultBinary(op, i, rhs)
	}

	n, err := AsInt32(rhs)
	if err != nil {
		if rhs.Kind() == KindLong {
			return Binary(op, i.widen(), rhs)
		}
		return nil, err
	}
	a, b := int64(i.val), int64(n)

	switch op {
	case OpAdd:
		return i.fit(a+b, op, rhs)
	case OpSub:
		return i.fit(a-b, op, rhs)
	case OpMul:
		return i.fit(a*b, op, rhs)
	case OpDiv:
		if b == 0 {
			return nil, NewError(E_DIV)
		}
		return NewRational(big.NewRat(a, b)), nil
	case OpMod:
		if b == 0 {
			return nil, NewError(E_DIV)
		}
		return NewInt(int32(a % b)), nil
	case OpPow:
		r, err := bigPow(big.NewInt(a), n)
		if l, ok := r.(LongValue); ok && err == nil {
			if v, ok := l.int32(); ok {
				return NewInt(v), nil
			}
		}
		return r, err
	case OpAnd:
		return NewInt(i.val & n), nil
	case OpOr:
		return NewInt(i.val | n), nil
	case OpXor:
		return NewInt(i.val ^ n), nil
	case OpShl:
		if n < 0 {
			return nil, Errorf(E_RANGE, "negative shift count %d", n)
		}
		if n > 31 {
			return Binary(op, i.widen(), rhs)
		}
		return i.fit(a<<uint(n), op, rhs)
	case OpShr:
		if n < 0 {
			return nil, Errorf(E_RANGE, "negative shift count %d", n)
		}
		if n > 31 {
			n = 31
		}
		return NewInt(i.val >> uint(n)), nil
	case OpLt:
		return NewBool(a < b), nil
	case OpLe:
		return NewBool(a <= b), nil
	case OpGt:
		return NewBool(a > b), nil
	default:
		return NewBool(a >= b), nil
	}
}

// fit narrows an int64 result back to Integer, or retries the whole
// operation as Long when it does not fit
func (i IntValue) fit(r int64, op BinaryOperator, rhs Value) (Value, error) {
	if r < math.MinInt32 || r > math.MaxInt32 {
		return Binary(op, i.widen(), rhs)
	}
	return NewInt(int32(r)), nil
}

// bigPow raises an integer to an integer power. Negative exponents yield
// the exact Rational.
func bigPow(base *big.Int, exp int32) (Value, error) {
	if exp < 0 {
		if base.Sign() == 0 {
			return nil, NewError(E_DIV)
		}
		den := new(big.Int).Exp(base, big.NewInt(-int64(exp)), nil)
		return NewRational(new(big.Rat).SetFrac(big.NewInt(1), den)), nil
	}
	return NewLong(new(big.Int).Exp(base, big.NewInt(int64(exp)), nil)), nil
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
