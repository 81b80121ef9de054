package types

import "math/big"

// RationalValue represents an exact fraction of two big integers.
// big.Rat keeps it in lowest terms; it is never demoted to an integer
// except by explicit conversion.
type RationalValue struct {
	val *big.Rat
}

// NewRational wraps r; the caller must not modify r afterwards
func NewRational(r *big.Rat) RationalValue {
	if r == nil {
		r = new(big.Rat)
	}
	return RationalValue{val: r}
}

// NewRationalFrac creates num/den in lowest terms
func NewRationalFrac(num, den int64) (RationalValue, error) {
	if den == 0 {
		return RationalValue{}, NewError(E_DIV)
	}
	return NewRational(big.NewRat(num, den)), nil
}

// Val returns a copy of the fraction
func (r RationalValue) Val() *big.Rat { return new(big.Rat).Set(r.val) }

func (r RationalValue) Kind() Kind { return KindRational }

func (r RationalValue) Class() ClassID { return KindRational.ClassID() }

// String always renders both terms, so 2/1 stays distinguishable from 2
func (r RationalValue) String() string { return r.val.String() }

func (r RationalValue) Clone() Value { return r }

func (r RationalValue) IsEmpty() bool { return false }

func (r RationalValue) sealed() {}

func (r RationalValue) equal(other Value) (bool, error) {
	if other.Kind().IsNumeric() {
		return numericEqual(r, other)
	}
	x, err := AsRational(other)
	if err != nil {
		return false, err
	}
	return r.val.Cmp(x) == 0, nil
}

func (r RationalValue) compare(other Value) (int, error) {
	if other.Kind().IsNumeric() {
		return numericCompare(r, other)
	}
	x, err := AsRational(other)
	if err != nil {
		return 0, err
	}
	return r.val.Cmp(x), nil
}

func (r RationalValue) unary(op UnaryOperator) (Value, error) {
	switch op {
	case UnaryPlus:
		return r, nil
	case UnaryMinus:
		return NewRational(new(big.Rat).Neg(r.val)), nil
	}
	return nil, unaryError(op, r)
}

func (r RationalValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpPow:
		n, err := AsInt32(rhs)
		if err != nil {
			return nil, err
		}
		return ratPow(r.val, n)
	case OpAdd, OpSub, OpMul, OpDiv, OpLt, OpLe, OpGt, OpGe:
	default:
		return defaultBinary(op, r, rhs)
	}

	x, err := AsRational(rhs)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return NewRational(new(big.Rat).Add(r.val, x)), nil
	case OpSub:
		return NewRational(new(big.Rat).Sub(r.val, x)), nil
	case OpMul:
		return NewRational(new(big.Rat).Mul(r.val, x)), nil
	case OpDiv:
		if x.Sign() == 0 {
			return nil, NewError(E_DIV)
		}
		return NewRational(new(big.Rat).Quo(r.val, x)), nil
	default:
		return relational(op, r.val.Cmp(x)), nil
	}
}

func (r RationalValue) getProperty(name string) (Value, error) {
	switch name {
	case "num":
		return NewLong(new(big.Int).Set(r.val.Num())), nil
	case "den":
		return NewLong(new(big.Int).Set(r.val.Denom())), nil
	}
	return nil, propertyError(r, name)
}

func ratPow(x *big.Rat, exp int32) (Value, error) {
	e := int64(exp)
	if e < 0 {
		if x.Sign() == 0 {
			return nil, NewError(E_DIV)
		}
		x = new(big.Rat).Inv(x)
		e = -e
	}
	num := new(big.Int).Exp(x.Num(), big.NewInt(e), nil)
	den := new(big.Int).Exp(x.Denom(), big.NewInt(e), nil)
	return NewRational(new(big.Rat).SetFrac(num, den)), nil
}
