package types

import (
	"math"
	"strconv"
	"strings"
)

// FloatValue represents a 64-bit IEEE floating point number
type FloatValue struct {
	val float64
}

// NewFloat creates a new FloatValue
func NewFloat(f float64) FloatValue {
	return FloatValue{val: f}
}

// Val returns the underlying float64
func (f FloatValue) Val() float64 { return f.val }

func (f FloatValue) Kind() Kind { return KindFloat }

func (f FloatValue) Class() ClassID { return KindFloat.ClassID() }

// String returns the literal representation
func (f FloatValue) String() string {
	return formatFloat(f.val)
}

func (f FloatValue) Clone() Value { return f }

func (f FloatValue) IsEmpty() bool { return false }

func (f FloatValue) sealed() {}

func (f FloatValue) equal(other Value) (bool, error) {
	if other.Kind().IsNumeric() {
		return numericEqual(f, other)
	}
	x, err := AsFloat(other)
	if err != nil {
		return false, err
	}
	return floatEqual(f.val, x), nil
}

func (f FloatValue) compare(other Value) (int, error) {
	if other.Kind().IsNumeric() {
		return numericCompare(f, other)
	}
	x, err := AsFloat(other)
	if err != nil {
		return 0, err
	}
	return compareFloat(f.val, x)
}

func (f FloatValue) unary(op UnaryOperator) (Value, error) {
	switch op {
	case UnaryPlus:
		return f, nil
	case UnaryMinus:
		return NewFloat(-f.val), nil
	}
	return nil, unaryError(op, f)
}

func (f FloatValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpLt, OpLe, OpGt, OpGe:
	default:
		return defaultBinary(op, f, rhs)
	}

	x, err := AsFloat(rhs)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return NewFloat(f.val + x), nil
	case OpSub:
		return NewFloat(f.val - x), nil
	case OpMul:
		return NewFloat(f.val * x), nil
	case OpDiv:
		return NewFloat(f.val / x), nil
	case OpMod:
		return NewFloat(math.Mod(f.val, x)), nil
	case OpPow:
		return NewFloat(math.Pow(f.val, x)), nil
	case OpLt:
		return NewBool(f.val < x), nil
	case OpLe:
		return NewBool(f.val <= x), nil
	case OpGt:
		return NewBool(f.val > x), nil
	default:
		return NewBool(f.val >= x), nil
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// whole numbers keep a decimal point so they read back as floats
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// floatEqual compares with a relative tolerance of a few ulps; NaN equals
// NaN and infinities only equal themselves
func floatEqual(a, b float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	case a == b:
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= scale*1e-15
}

func compareFloat(a, b float64) (int, error) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, Errorf(E_CAST, "NaN is not ordered")
	}
	switch {
	case floatEqual(a, b):
		return 0, nil
	case a < b:
		return -1, nil
	}
	return 1, nil
}
