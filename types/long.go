package types

import (
	"math"
	"math/big"
)

// LongValue represents an arbitrary-precision integer.
// The wrapped big.Int is never mutated after construction.
type LongValue struct {
	val *big.Int
}

// NewLong wraps x; the caller must not modify x afterwards
func NewLong(x *big.Int) LongValue {
	if x == nil {
		x = new(big.Int)
	}
	return LongValue{val: x}
}

// NewLongFromInt64 creates a LongValue from an int64
func NewLongFromInt64(n int64) LongValue {
	return LongValue{val: big.NewInt(n)}
}

// Val returns a copy of the underlying integer
func (l LongValue) Val() *big.Int { return new(big.Int).Set(l.val) }

func (l LongValue) Kind() Kind { return KindLong }

func (l LongValue) Class() ClassID { return KindLong.ClassID() }

func (l LongValue) String() string { return l.val.String() }

func (l LongValue) Clone() Value { return l }

func (l LongValue) IsEmpty() bool { return false }

func (l LongValue) sealed() {}

func (l LongValue) int32() (int32, bool) {
	if !l.val.IsInt64() {
		return 0, false
	}
	n := l.val.Int64()
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func (l LongValue) equal(other Value) (bool, error) {
	if other.Kind().IsNumeric() {
		return numericEqual(l, other)
	}
	x, err := AsBigInt(other)
	if err != nil {
		return false, err
	}
	return l.val.Cmp(x) == 0, nil
}

func (l LongValue) compare(other Value) (int, error) {
	if other.Kind().IsNumeric() {
		return numericCompare(l, other)
	}
	x, err := AsBigInt(other)
	if err != nil {
		return 0, err
	}
	return l.val.Cmp(x), nil
}

func (l LongValue) unary(op UnaryOperator) (Value, error) {
	switch op {
	case UnaryPlus:
		return l, nil
	case UnaryMinus:
		return NewLong(new(big.Int).Neg(l.val)), nil
	case UnaryBitNot:
		return NewLong(new(big.Int).Not(l.val)), nil
	}
	return nil, unaryError(op, l)
}

func (l LongValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpPow, OpShl, OpShr:
		n, err := AsInt32(rhs)
		if err != nil {
			return nil, err
		}
		switch op {
		case OpPow:
			return bigPow(l.val, n)
		case OpShl:
			if n < 0 {
				return nil, Errorf(E_RANGE, "negative shift count %d", n)
			}
			return NewLong(new(big.Int).Lsh(l.val, uint(n))), nil
		default:
			if n < 0 {
				return nil, Errorf(E_RANGE, "negative shift count %d", n)
			}
			return NewLong(new(big.Int).Rsh(l.val, uint(n))), nil
		}
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpAnd, OpOr, OpXor, OpLt, OpLe, OpGt, OpGe:
	default:
		return defaultBinary(op, l, rhs)
	}

	x, err := AsBigInt(rhs)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return NewLong(new(big.Int).Add(l.val, x)), nil
	case OpSub:
		return NewLong(new(big.Int).Sub(l.val, x)), nil
	case OpMul:
		return NewLong(new(big.Int).Mul(l.val, x)), nil
	case OpDiv:
		if x.Sign() == 0 {
			return nil, NewError(E_DIV)
		}
		return NewRational(new(big.Rat).SetFrac(l.val, x)), nil
	case OpMod:
		if x.Sign() == 0 {
			return nil, NewError(E_DIV)
		}
		return NewLong(new(big.Int).Rem(l.val, x)), nil
	case OpAnd:
		return NewLong(new(big.Int).And(l.val, x)), nil
	case OpOr:
		return NewLong(new(big.Int).Or(l.val, x)), nil
	case OpXor:
		return NewLong(new(big.Int).Xor(l.val, x)), nil
	default:
		return relational(op, l.val.Cmp(x)), nil
	}
}

// relational turns a three-way comparison into the boolean answer for op
func relational(op BinaryOperator, c int) BoolValue {
	switch op {
	case OpLt:
		return NewBool(c < 0)
	case OpLe:
		return NewBool(c <= 0)
	case OpGt:
		return NewBool(c > 0)
	default:
		return NewBool(c >= 0)
	}
}
