package types

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Views read a value as a host type. Each one fails with E_CAST when the
// value has no such reading. Void reads as zero and false; strings are
// parsed.

// AsBool reads v as a boolean
func AsBool(v Value) (bool, error) {
	switch x := orVoid(v).(type) {
	case VoidValue:
		return false, nil
	case BoolValue:
		return x.val, nil
	case IntValue:
		return x.val != 0, nil
	case LongValue:
		return x.val.Sign() != 0, nil
	case RationalValue:
		return x.val.Sign() != 0, nil
	case FloatValue:
		return x.val != 0, nil
	case DecimalValue:
		return !x.val.IsZero(), nil
	case ComplexValue:
		return x.val != 0, nil
	case StrValue:
		b, err := strconv.ParseBool(strings.TrimSpace(x.val))
		if err != nil {
			return false, castError(v, "bool")
		}
		return b, nil
	}
	return false, castError(v, "bool")
}

// AsInt32 reads v as a 32-bit integer, truncating fractions and failing
// when the value does not fit
func AsInt32(v Value) (int32, error) {
	switch x := orVoid(v).(type) {
	case IntValue:
		return x.val, nil
	case StrValue:
		n, err := strconv.ParseInt(strings.TrimSpace(x.val), 10, 32)
		if err != nil {
			return 0, castError(v, "int")
		}
		return int32(n), nil
	}
	n, err := AsBigInt(v)
	if err != nil {
		return 0, castError(v, "int")
	}
	if !n.IsInt64() || n.Int64() < math.MinInt32 || n.Int64() > math.MaxInt32 {
		return 0, Errorf(E_CAST, "%s does not fit in an int", v)
	}
	return int32(n.Int64()), nil
}

// AsBigInt reads v as an arbitrary-precision integer, truncating toward zero
func AsBigInt(v Value) (*big.Int, error) {
	switch x := orVoid(v).(type) {
	case VoidValue:
		return new(big.Int), nil
	case BoolValue:
		if x.val {
			return big.NewInt(1), nil
		}
		return new(big.Int), nil
	case IntValue:
		return big.NewInt(int64(x.val)), nil
	case LongValue:
		return new(big.Int).Set(x.val), nil
	case RationalValue:
		return new(big.Int).Quo(x.val.Num(), x.val.Denom()), nil
	case FloatValue:
		return floatToBig(v, x.val)
	case DecimalValue:
		return x.val.BigInt(), nil
	case ComplexValue:
		return floatToBig(v, real(x.val))
	case StrValue:
		n, ok := new(big.Int).SetString(strings.TrimSpace(x.val), 10)
		if !ok {
			return nil, castError(v, "long")
		}
		return n, nil
	}
	return nil, castError(v, "long")
}

func floatToBig(v Value, f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, castError(v, "long")
	}
	n, _ := big.NewFloat(math.Trunc(f)).Int(nil)
	return n, nil
}

// AsRational reads v as an exact fraction
func AsRational(v Value) (*big.Rat, error) {
	switch x := orVoid(v).(type) {
	case RationalValue:
		return new(big.Rat).Set(x.val), nil
	case FloatValue:
		return floatToRat(v, x.val)
	case DecimalValue:
		return x.val.Rat(), nil
	case ComplexValue:
		return floatToRat(v, real(x.val))
	case StrValue:
		r, ok := new(big.Rat).SetString(strings.TrimSpace(x.val))
		if !ok {
			return nil, castError(v, "rational")
		}
		return r, nil
	}
	n, err := AsBigInt(v)
	if err != nil {
		return nil, castError(v, "rational")
	}
	return new(big.Rat).SetInt(n), nil
}

func floatToRat(v Value, f float64) (*big.Rat, error) {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return nil, castError(v, "rational")
	}
	return r, nil
}

// AsFloat reads v as a float64
func AsFloat(v Value) (float64, error) {
	switch x := orVoid(v).(type) {
	case VoidValue:
		return 0, nil
	case BoolValue:
		if x.val {
			return 1, nil
		}
		return 0, nil
	case IntValue:
		return float64(x.val), nil
	case LongValue:
		f, _ := new(big.Float).SetInt(x.val).Float64()
		return f, nil
	case RationalValue:
		f, _ := x.val.Float64()
		return f, nil
	case FloatValue:
		return x.val, nil
	case DecimalValue:
		return x.val.InexactFloat64(), nil
	case ComplexValue:
		return real(x.val), nil
	case StrValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(x.val), 64)
		if err != nil {
			return 0, castError(v, "float")
		}
		return f, nil
	}
	return 0, castError(v, "float")
}

// AsDecimal reads v as a decimal; fractions that do not terminate are
// rounded to DecimalPrecision digits
func AsDecimal(v Value) (decimal.Decimal, error) {
	switch x := orVoid(v).(type) {
	case DecimalValue:
		return x.val, nil
	case RationalValue:
		num := decimal.NewFromBigInt(x.val.Num(), 0)
		return num.DivRound(decimal.NewFromBigInt(x.val.Denom(), 0), DecimalPrecision), nil
	case FloatValue:
		return floatToDecimal(v, x.val)
	case ComplexValue:
		return floatToDecimal(v, real(x.val))
	case StrValue:
		d, err := decimal.NewFromString(strings.TrimSpace(x.val))
		if err != nil {
			return decimal.Zero, castError(v, "decimal")
		}
		return d, nil
	}
	n, err := AsBigInt(v)
	if err != nil {
		return decimal.Zero, castError(v, "decimal")
	}
	return decimal.NewFromBigInt(n, 0), nil
}

func floatToDecimal(v Value, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, castError(v, "decimal")
	}
	return decimal.NewFromFloat(f), nil
}

// AsComplex reads v as a complex128
func AsComplex(v Value) (complex128, error) {
	switch x := orVoid(v).(type) {
	case ComplexValue:
		return x.val, nil
	case StrValue:
		c, err := strconv.ParseComplex(strings.TrimSpace(x.val), 128)
		if err != nil {
			return 0, castError(v, "complex")
		}
		return c, nil
	}
	f, err := AsFloat(v)
	if err != nil {
		return 0, castError(v, "complex")
	}
	return complex(f, 0), nil
}

var timeLayouts = []string{DateLayout, time.RFC3339Nano, time.DateOnly}

// AsTime reads v as a timestamp
func AsTime(v Value) (time.Time, error) {
	switch x := orVoid(v).(type) {
	case DateValue:
		return x.val, nil
	case StrValue:
		s := strings.TrimSpace(x.val)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, castError(v, "date")
}

// AsDuration reads v as a time span
func AsDuration(v Value) (time.Duration, error) {
	switch x := orVoid(v).(type) {
	case DurationValue:
		return x.val, nil
	case StrValue:
		d, err := time.ParseDuration(strings.TrimSpace(x.val))
		if err == nil {
			return d, nil
		}
	}
	return 0, castError(v, "duration")
}

// AsBytes reads v as a byte array. Strings give their UTF-8 bytes and
// sequences of integers give one byte per item.
func AsBytes(v Value) ([]byte, error) {
	switch x := orVoid(v).(type) {
	case *BlobValue:
		return x.buf, nil
	case StrValue:
		return []byte(x.val), nil
	case TupleValue, *ListValue, *QueueValue, *StackValue:
		items, _ := AsSlice(x)
		var buf bytes.Buffer
		for _, item := range items {
			n, err := AsInt32(item)
			if err != nil || n < 0 || n > 255 {
				return nil, castError(v, "blob")
			}
			buf.WriteByte(byte(n))
		}
		return buf.Bytes(), nil
	}
	return nil, castError(v, "blob")
}

// AsSlice returns a fresh copy of the items of a sequence: queues front
// first, stacks top first, sets in insertion order, strings one character
// per item and blobs one integer per byte
func AsSlice(v Value) ([]Value, error) {
	switch x := orVoid(v).(type) {
	case TupleValue:
		return x.Items(), nil
	case *ListValue:
		return x.Items(), nil
	case *QueueValue:
		return x.Items(), nil
	case *StackValue:
		return x.Items(), nil
	case *SetValue:
		return x.Items(), nil
	case *BlobValue:
		items := make([]Value, len(x.buf))
		for i, c := range x.buf {
			items[i] = NewInt(int32(c))
		}
		return items, nil
	case StrValue:
		items := make([]Value, 0, len(x.val))
		for _, r := range x.val {
			items = append(items, NewStr(string(r)))
		}
		return items, nil
	}
	return nil, castError(v, "list")
}

// AsFunction reads v as a function
func AsFunction(v Value) (*Function, error) {
	if c, ok := orVoid(v).(ClosureValue); ok {
		return c.fn, nil
	}
	return nil, castError(v, "closure")
}

// ConvertTo converts v to the given kind. It returns v itself when the
// kind already matches, and fails with E_CAST when v has no
// representation in the target kind.
func ConvertTo(v Value, kind Kind) (Value, error) {
	v = orVoid(v)
	if v.Kind() == kind {
		return v, nil
	}
	switch kind {
	case KindBool:
		b, err := AsBool(v)
		if err != nil {
			return nil, err
		}
		return NewBool(b), nil
	case KindInt:
		n, err := AsInt32(v)
		if err != nil {
			return nil, err
		}
		return NewInt(n), nil
	case KindLong:
		n, err := AsBigInt(v)
		if err != nil {
			return nil, err
		}
		return NewLong(n), nil
	case KindRational:
		r, err := AsRational(v)
		if err != nil {
			return nil, err
		}
		return NewRational(r), nil
	case KindFloat:
		f, err := AsFloat(v)
		if err != nil {
			return nil, err
		}
		return NewFloat(f), nil
	case KindDecimal:
		d, err := AsDecimal(v)
		if err != nil {
			return nil, err
		}
		return NewDecimal(d), nil
	case KindComplex:
		c, err := AsComplex(v)
		if err != nil {
			return nil, err
		}
		return ComplexValue{val: c}, nil
	case KindDate:
		t, err := AsTime(v)
		if err != nil {
			return nil, err
		}
		return NewDate(t), nil
	case KindDuration:
		d, err := AsDuration(v)
		if err != nil {
			return nil, err
		}
		return NewDuration(d), nil
	case KindString:
		return NewStr(v.String()), nil
	case KindBlob:
		b, err := AsBytes(v)
		if err != nil {
			return nil, err
		}
		return NewBlob(bytes.Clone(b)), nil
	case KindTuple, KindList, KindSet, KindQueue, KindStack:
		items, err := AsSlice(v)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindTuple:
			return NewTuple(items...), nil
		case KindList:
			return NewList(items...), nil
		case KindSet:
			return NewSet(items...), nil
		case KindQueue:
			return NewQueue(items...), nil
		default:
			return NewStack(items...), nil
		}
	case KindMap:
		if o, ok := v.(*ObjValue); ok {
			m := NewEmptyMap()
			for _, name := range o.order {
				m.Set(NewStr(name), o.fields[name])
			}
			return m, nil
		}
	case KindObject:
		if m, ok := v.(*MapValue); ok {
			o := NewObject(nil)
			for _, e := range m.t.entries {
				o.SetField(e.key.String(), e.val)
			}
			return o, nil
		}
	}
	return nil, castError(v, kind.String())
}
