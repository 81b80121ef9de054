package types

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	bigIntType   = reflect.TypeFor[*big.Int]()
	bigRatType   = reflect.TypeFor[*big.Rat]()
	decimalType  = reflect.TypeFor[decimal.Decimal]()
)

// Native returns the natural host form of v: int32 for Integer, *big.Int
// for Long, []any for sequences, map[any]any for maps, map[string]any for
// objects and the handle for resources
func Native(v Value) any {
	switch x := orVoid(v).(type) {
	case VoidValue:
		return nil
	case BoolValue:
		return x.val
	case IntValue:
		return x.val
	case LongValue:
		return x.Val()
	case RationalValue:
		return x.Val()
	case FloatValue:
		return x.val
	case DecimalValue:
		return x.val
	case ComplexValue:
		return x.val
	case DateValue:
		return x.val
	case DurationValue:
		return x.val
	case StrValue:
		return x.val
	case *BlobValue:
		return x.buf
	case TupleValue, *ListValue, *QueueValue, *StackValue, *SetValue:
		items, _ := AsSlice(x)
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Native(item)
		}
		return out
	case *MapValue:
		out := make(map[any]any, x.Len())
		for _, e := range x.t.entries {
			k := Native(e.key)
			if k != nil && !reflect.TypeOf(k).Comparable() {
				k = e.key.String()
			}
			out[k] = Native(e.val)
		}
		return out
	case *ObjValue:
		out := make(map[string]any, len(x.fields))
		for name, f := range x.fields {
			out[name] = Native(f)
		}
		return out
	case *ResourceValue:
		return x.handle
	case ClosureValue:
		return x.fn
	}
	return v
}

// FromNative maps a host value onto the matching variant. Integers that
// do not fit in 32 bits become Long; byte slices become Blob; other
// slices and arrays become List; structs become objects of an
// anonymous class named after the Go type; anything else is wrapped as
// a Resource.
func FromNative(x any) (Value, error) {
	switch n := x.(type) {
	case nil:
		return Void, nil
	case Value:
		return n, nil
	case bool:
		return NewBool(n), nil
	case string:
		return NewStr(n), nil
	case []byte:
		return NewBlob(n), nil
	case time.Time:
		return NewDate(n), nil
	case time.Duration:
		return NewDuration(n), nil
	case *big.Int:
		if n == nil {
			return Void, nil
		}
		return NewLong(new(big.Int).Set(n)), nil
	case *big.Rat:
		if n == nil {
			return Void, nil
		}
		return NewRational(new(big.Rat).Set(n)), nil
	case decimal.Decimal:
		return NewDecimal(n), nil
	case *Function:
		return NewClosure(n), nil
	case io.Closer:
		return NewResource(n), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return NewInt(int32(i)), nil
		}
		return NewLongFromInt64(i), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt32 {
			return NewInt(int32(u)), nil
		}
		return NewLong(new(big.Int).SetUint64(u)), nil
	case reflect.Float32, reflect.Float64:
		return NewFloat(rv.Float()), nil
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return NewComplex(real(c), imag(c)), nil
	case reflect.String:
		return NewStr(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Void, nil
		}
		items := make([]Value, rv.Len())
		for i := range items {
			item, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return NewList(items...), nil
	case reflect.Map:
		if rv.IsNil() {
			return Void, nil
		}
		m := NewEmptyMap()
		it := rv.MapRange()
		for it.Next() {
			k, err := FromNative(it.Key().Interface())
			if err != nil {
				return nil, err
			}
			val, err := FromNative(it.Value().Interface())
			if err != nil {
				return nil, err
			}
			m.Set(k, val)
		}
		return m, nil
	case reflect.Struct:
		return objectFromStruct(rv)
	}
	return NewResource(x), nil
}

func objectFromStruct(rv reflect.Value) (Value, error) {
	t := rv.Type()
	o := NewObject(PlainClass{ClassID: KindObject.ClassID(), ClassName: t.Name()})
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f, err := FromNative(rv.Field(i).Interface())
		if err != nil {
			return nil, err
		}
		o.SetField(scriptName(sf.Name), f)
	}
	return o, nil
}

// scriptName lowers the first letter of an exported Go name
func scriptName(name string) string {
	c, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(c)) + name[size:]
}

// ToNative marshals v into a host value of type t. Structs are filled
// field by field from an object or map, matching names regardless of the
// case of their first letter; unmatched fields are skipped.
func ToNative(v Value, t reflect.Type) (any, error) {
	v = orVoid(v)
	if t == nil {
		return Native(v), nil
	}
	if reflect.TypeOf(v).AssignableTo(t) && t != reflect.TypeFor[any]() {
		return v, nil
	}
	if r, ok := v.(*ResourceValue); ok && r.handle != nil && reflect.TypeOf(r.handle).AssignableTo(t) {
		return r.handle, nil
	}
	out, err := toNative(v, t)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func toNative(v Value, t reflect.Type) (reflect.Value, error) {
	fail := func() (reflect.Value, error) {
		return reflect.Value{}, Errorf(E_CAST, "cannot marshal %s into %s", v.Kind(), t)
	}
	switch t {
	case timeType:
		x, err := AsTime(v)
		return reflect.ValueOf(x), err
	case durationType:
		x, err := AsDuration(v)
		return reflect.ValueOf(x), err
	case bigIntType:
		x, err := AsBigInt(v)
		return reflect.ValueOf(x), err
	case bigRatType:
		x, err := AsRational(v)
		return reflect.ValueOf(x), err
	case decimalType:
		x, err := AsDecimal(v)
		return reflect.ValueOf(x), err
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Interface:
		n := Native(v)
		if n == nil {
			return out, nil
		}
		if !reflect.TypeOf(n).Implements(t) {
			return fail()
		}
		out.Set(reflect.ValueOf(n))
	case reflect.Bool:
		b, err := AsBool(v)
		if err != nil {
			return fail()
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := AsBigInt(v)
		if err != nil || !n.IsInt64() || out.OverflowInt(n.Int64()) {
			return fail()
		}
		out.SetInt(n.Int64())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := AsBigInt(v)
		if err != nil || !n.IsUint64() || out.OverflowUint(n.Uint64()) {
			return fail()
		}
		out.SetUint(n.Uint64())
	case reflect.Float32, reflect.Float64:
		f, err := AsFloat(v)
		if err != nil {
			return fail()
		}
		out.SetFloat(f)
	case reflect.Complex64, reflect.Complex128:
		c, err := AsComplex(v)
		if err != nil {
			return fail()
		}
		out.SetComplex(c)
	case reflect.String:
		out.SetString(v.String())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			if b, err := AsBytes(v); err == nil {
				out.SetBytes(append([]byte(nil), b...))
				return out, nil
			}
		}
		items, err := AsSlice(v)
		if err != nil {
			return fail()
		}
		out.Set(reflect.MakeSlice(t, len(items), len(items)))
		for i, item := range items {
			e, err := toNative(item, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(e)
		}
	case reflect.Array:
		items, err := AsSlice(v)
		if err != nil {
			return fail()
		}
		for i := range min(len(items), t.Len()) {
			e, err := toNative(items[i], t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(e)
		}
	case reflect.Map:
		pairs, ok := nativePairs(v)
		if !ok {
			return fail()
		}
		out.Set(reflect.MakeMapWithSize(t, len(pairs)))
		for _, p := range pairs {
			k, err := toNative(p[0], t.Key())
			if err != nil {
				return reflect.Value{}, err
			}
			e, err := toNative(p[1], t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(k, e)
		}
	case reflect.Struct:
		pairs, ok := nativePairs(v)
		if !ok {
			return fail()
		}
		for _, p := range pairs {
			key := p[0].String()
			f := out.FieldByNameFunc(func(name string) bool {
				return name == key || name == memberName(key)
			})
			if !f.IsValid() || !f.CanSet() {
				continue
			}
			e, err := toNative(p[1], f.Type())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("field %s: %w", p[0], err)
			}
			f.Set(e)
		}
	case reflect.Pointer:
		if IsVoid(v) {
			return out, nil
		}
		e, err := toNative(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(e)
		out.Set(p)
	default:
		return fail()
	}
	return out, nil
}

// nativePairs lists the named members of an object or the entries of a map
func nativePairs(v Value) ([][2]Value, bool) {
	switch x := v.(type) {
	case *ObjValue:
		pairs := make([][2]Value, 0, len(x.order))
		for _, name := range x.order {
			pairs = append(pairs, [2]Value{NewStr(name), x.fields[name]})
		}
		return pairs, true
	case *MapValue:
		return x.Entries(), true
	}
	return nil, false
}
