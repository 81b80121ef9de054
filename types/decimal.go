package types

import "github.com/shopspring/decimal"

// DecimalPrecision is the number of fractional digits kept by decimal
// division and by conversions that cannot be exact
const DecimalPrecision = 50

// DecimalValue represents an arbitrary-precision decimal number
type DecimalValue struct {
	val decimal.Decimal
}

// NewDecimal creates a new DecimalValue
func NewDecimal(d decimal.Decimal) DecimalValue {
	return DecimalValue{val: d}
}

// ParseDecimal parses a decimal literal such as "1.50"
func ParseDecimal(s string) (DecimalValue, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return DecimalValue{}, Errorf(E_CAST, "invalid decimal %q", s)
	}
	return NewDecimal(d), nil
}

// Val returns the underlying decimal
func (d DecimalValue) Val() decimal.Decimal { return d.val }

func (d DecimalValue) Kind() Kind { return KindDecimal }

func (d DecimalValue) Class() ClassID { return KindDecimal.ClassID() }

func (d DecimalValue) String() string { return d.val.String() }

func (d DecimalValue) Clone() Value { return d }

func (d DecimalValue) IsEmpty() bool { return false }

func (d DecimalValue) sealed() {}

func (d DecimalValue) equal(other Value) (bool, error) {
	if other.Kind().IsNumeric() {
		return numericEqual(d, other)
	}
	x, err := AsDecimal(other)
	if err != nil {
		return false, err
	}
	return d.val.Equal(x), nil
}

func (d DecimalValue) compare(other Value) (int, error) {
	if other.Kind().IsNumeric() {
		return numericCompare(d, other)
	}
	x, err := AsDecimal(other)
	if err != nil {
		return 0, err
	}
	return d.val.Cmp(x), nil
}

func (d DecimalValue) unary(op UnaryOperator) (Value, error) {
	switch op {
	case UnaryPlus:
		return d, nil
	case UnaryMinus:
		return NewDecimal(d.val.Neg()), nil
	}
	return nil, unaryError(op, d)
}

func (d DecimalValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpPow:
		n, err := AsInt32(rhs)
		if err != nil {
			return nil, err
		}
		return decimalPow(d.val, n)
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpLt, OpLe, OpGt, OpGe:
	default:
		return defaultBinary(op, d, rhs)
	}

	x, err := AsDecimal(rhs)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return NewDecimal(d.val.Add(x)), nil
	case OpSub:
		return NewDecimal(d.val.Sub(x)), nil
	case OpMul:
		return NewDecimal(d.val.Mul(x)), nil
	case OpDiv:
		if x.IsZero() {
			return nil, NewError(E_DIV)
		}
		return NewDecimal(d.val.DivRound(x, DecimalPrecision)), nil
	case OpMod:
		if x.IsZero() {
			return nil, NewError(E_DIV)
		}
		return NewDecimal(d.val.Mod(x)), nil
	default:
		return relational(op, d.val.Cmp(x)), nil
	}
}

func decimalPow(base decimal.Decimal, exp int32) (Value, error) {
	if exp >= 0 {
		return NewDecimal(base.Pow(decimal.NewFromInt32(exp))), nil
	}
	if base.IsZero() {
		return nil, NewError(E_DIV)
	}
	den := base.Pow(decimal.NewFromInt32(-exp))
	return NewDecimal(decimal.NewFromInt(1).DivRound(den, DecimalPrecision)), nil
}
