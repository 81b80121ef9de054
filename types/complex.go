package types

import (
	"math/cmplx"
	"strconv"
)

// ComplexValue represents a complex number with float64 parts
type ComplexValue struct {
	val complex128
}

// NewComplex creates a new ComplexValue
func NewComplex(re, im float64) ComplexValue {
	return ComplexValue{val: complex(re, im)}
}

// Val returns the underlying complex128
func (c ComplexValue) Val() complex128 { return c.val }

func (c ComplexValue) Kind() Kind { return KindComplex }

func (c ComplexValue) Class() ClassID { return KindComplex.ClassID() }

// String renders a+bi in parentheses, dropping a zero part and a unit
// imaginary coefficient
func (c ComplexValue) String() string {
	re, im := real(c.val), imag(c.val)
	var imStr string
	switch im {
	case -1:
		imStr = "-i"
	case 0:
		imStr = "0"
	case 1:
		imStr = "i"
	default:
		imStr = strconv.FormatFloat(im, 'g', -1, 64) + "i"
	}
	if re == 0 {
		return imStr
	}
	reStr := strconv.FormatFloat(re, 'g', -1, 64)
	if im == 0 {
		return reStr
	}
	if im < 0 {
		return "(" + reStr + imStr + ")"
	}
	return "(" + reStr + "+" + imStr + ")"
}

func (c ComplexValue) Clone() Value { return c }

func (c ComplexValue) IsEmpty() bool { return false }

func (c ComplexValue) sealed() {}

func (c ComplexValue) equal(other Value) (bool, error) {
	x, err := AsComplex(other)
	if err != nil {
		return false, err
	}
	return floatEqual(real(c.val), real(x)) && floatEqual(imag(c.val), imag(x)), nil
}

// compare orders complex numbers only when both are real
func (c ComplexValue) compare(other Value) (int, error) {
	return numericCompare(c, other)
}

func (c ComplexValue) unary(op UnaryOperator) (Value, error) {
	switch op {
	case UnaryPlus:
		return c, nil
	case UnaryMinus:
		return ComplexValue{val: -c.val}, nil
	}
	return nil, unaryError(op, c)
}

func (c ComplexValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
	default:
		return defaultBinary(op, c, rhs)
	}

	x, err := AsComplex(rhs)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return ComplexValue{val: c.val + x}, nil
	case OpSub:
		return ComplexValue{val: c.val - x}, nil
	case OpMul:
		return ComplexValue{val: c.val * x}, nil
	case OpDiv:
		return ComplexValue{val: c.val / x}, nil
	default:
		return ComplexValue{val: cmplx.Pow(c.val, x)}, nil
	}
}

func (c ComplexValue) getProperty(name string) (Value, error) {
	switch name {
	case "real":
		return NewFloat(real(c.val)), nil
	case "imag":
		return NewFloat(imag(c.val)), nil
	}
	return nil, propertyError(c, name)
}
