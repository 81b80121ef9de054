package types

import (
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestConvertTo(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
		want string
	}{
		{"float truncates", NewFloat(2.7), KindInt, "2"},
		{"rational demotes", NewRational(big.NewRat(4, 2)), KindInt, "2"},
		{"string parses", NewStr(" 42 "), KindInt, "42"},
		{"int widens", NewInt(5), KindLong, "5"},
		{"int to rational", NewInt(5), KindRational, "5/1"},
		{"float to rational", NewFloat(0.75), KindRational, "3/4"},
		{"int to float", NewInt(5), KindFloat, "5.0"},
		{"long to decimal", NewLongFromInt64(12), KindDecimal, "12"},
		{"int to complex", NewInt(3), KindComplex, "3"},
		{"to string", NewList(NewInt(1), NewStr("a")), KindString, "[1, a]"},
		{"string to blob", NewStr("ab"), KindBlob, "b'YWI='"},
		{"list to set", NewList(NewInt(1), NewInt(2), NewInt(2)), KindSet, "{1, 2}"},
		{"string to list", NewStr("ab"), KindList, "[a, b]"},
		{"list to tuple", NewList(NewInt(1)), KindTuple, "(1,)"},
		{"list to stack", NewList(NewInt(1), NewInt(2)), KindStack, "stack[1, 2]"},
		{"blob to list", NewBlob([]byte{9}), KindList, "[9]"},
		{"bool from int", NewInt(2), KindBool, "true"},
		{"void to int", Void, KindInt, "0"},
		{"string to date", NewStr("2024-05-06 07:08:09"), KindDate, "2024-05-06 07:08:09"},
		{"string to duration", NewStr("1h30m"), KindDuration, "1h30m0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertTo(tt.v, tt.kind)
			if err != nil {
				t.Fatalf("ConvertTo(%s, %v): %v", tt.v, tt.kind, err)
			}
			if got.Kind() != tt.kind {
				t.Errorf("kind = %v, want %v", got.Kind(), tt.kind)
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertToFailures(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
	}{
		{NewStr("x"), KindInt},
		{NewInt(1), KindDate},
		{NewLong(new(big.Int).Lsh(big.NewInt(1), 40)), KindInt},
		{True, KindBlob},
		{NewInt(1), KindList},
		{NewList(NewInt(300)), KindBlob},
		{NewComplex(1, 1), KindClosure},
	}
	for _, tt := range tests {
		if _, err := ConvertTo(tt.v, tt.kind); CodeOf(err) != E_CAST {
			t.Errorf("ConvertTo(%s, %v): %v, want E_CAST", tt.v, tt.kind, err)
		}
	}
}

func TestConvertToIdentity(t *testing.T) {
	l := NewList(NewInt(1))
	got, err := ConvertTo(l, KindList)
	if err != nil || got != Value(l) {
		t.Error("converting to the same kind should return the value itself")
	}
}

func TestViews(t *testing.T) {
	third, err := AsDecimal(NewRational(big.NewRat(1, 3)))
	if err != nil || !strings.HasPrefix(third.String(), "0.3333") {
		t.Errorf("AsDecimal(1/3) = %s, %v", third, err)
	}
	if n, err := AsInt32(Void); err != nil || n != 0 {
		t.Errorf("AsInt32(void) = %d, %v", n, err)
	}
	if b, err := AsBool(Void); err != nil || b {
		t.Errorf("AsBool(void) = %v, %v", b, err)
	}
	if _, err := AsBytes(True); CodeOf(err) != E_CAST {
		t.Errorf("AsBytes(bool): %v, want E_CAST", err)
	}
	if f, err := AsFloat(NewStr("2.5")); err != nil || f != 2.5 {
		t.Errorf("AsFloat(\"2.5\") = %v, %v", f, err)
	}
	if c, err := AsComplex(NewInt(2)); err != nil || c != complex(2, 0) {
		t.Errorf("AsComplex(2) = %v, %v", c, err)
	}
	if d, err := AsDuration(NewDuration(time.Second)); err != nil || d != time.Second {
		t.Errorf("AsDuration = %v, %v", d, err)
	}
	fn := &Function{Name: "f"}
	if got, err := AsFunction(NewClosure(fn)); err != nil || got != fn {
		t.Errorf("AsFunction = %v, %v", got, err)
	}
	if _, err := AsFunction(NewInt(1)); CodeOf(err) != E_CAST {
		t.Errorf("AsFunction(int): %v", err)
	}
}

type point struct {
	X, Y  int
	Label string
	Tags  []string
}

func TestFromNative(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
		want string
	}{
		{nil, KindVoid, ""},
		{true, KindBool, "true"},
		{42, KindInt, "42"},
		{int64(1) << 40, KindLong, "1099511627776"},
		{uint16(7), KindInt, "7"},
		{2.5, KindFloat, "2.5"},
		{complex(1, 1), KindComplex, "(1+i)"},
		{"s", KindString, "s"},
		{[]byte("ab"), KindBlob, "b'YWI='"},
		{[]int{1, 2}, KindList, "[1, 2]"},
		{[2]string{"a", "b"}, KindList, "[a, b]"},
		{map[string]int{"a": 1}, KindMap, "{a => 1}"},
		{big.NewRat(1, 2), KindRational, "1/2"},
		{decimal.RequireFromString("1.25"), KindDecimal, "1.25"},
		{90 * time.Minute, KindDuration, "1h30m0s"},
		{point{X: 1, Y: 2, Label: "p"}, KindObject, "<point {x = 1, y = 2, label = p, tags = }>"},
	}
	for _, tt := range tests {
		got, err := FromNative(tt.in)
		if err != nil {
			t.Errorf("FromNative(%#v): %v", tt.in, err)
			continue
		}
		if got.Kind() != tt.kind || got.String() != tt.want {
			t.Errorf("FromNative(%#v) = %v %q, want %v %q", tt.in, got.Kind(), got, tt.kind, tt.want)
		}
	}

	ch := make(chan int)
	r, err := FromNative(ch)
	if err != nil || r.Kind() != KindResource {
		t.Errorf("FromNative(chan) = %v, %v; want a resource", r, err)
	}
}

func TestToNative(t *testing.T) {
	obj := NewObject(nil)
	obj.SetField("x", NewInt(1))
	obj.SetField("Y", NewLongFromInt64(2))
	obj.SetField("label", NewStr("p"))
	obj.SetField("tags", NewList(NewStr("a"), NewStr("b")))
	obj.SetField("ignored", True)

	got, err := ToNative(obj, reflect.TypeFor[point]())
	if err != nil {
		t.Fatal(err)
	}
	want := point{X: 1, Y: 2, Label: "p", Tags: []string{"a", "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToNative(object) mismatch (-want +got):\n%s", diff)
	}

	m := NewMap([2]Value{NewStr("a"), NewInt(1)}, [2]Value{NewStr("b"), NewFloat(2)})
	gotMap, err := ToNative(m, reflect.TypeFor[map[string]int]())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"a": 1, "b": 2}, gotMap); diff != "" {
		t.Errorf("ToNative(map) mismatch (-want +got):\n%s", diff)
	}

	gotSlice, err := ToNative(NewTuple(NewInt(1), NewStr("2")), reflect.TypeFor[[]int64]())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{1, 2}, gotSlice); diff != "" {
		t.Errorf("ToNative(tuple) mismatch (-want +got):\n%s", diff)
	}

	if _, err := ToNative(NewInt(300), reflect.TypeFor[int8]()); CodeOf(err) != E_CAST {
		t.Errorf("overflowing int8: %v, want E_CAST", err)
	}
	n, err := ToNative(NewLongFromInt64(7), reflect.TypeFor[*big.Int]())
	if err != nil || n.(*big.Int).Int64() != 7 {
		t.Errorf("ToNative(*big.Int) = %v, %v", n, err)
	}
	p, err := ToNative(NewInt(3), reflect.TypeFor[*int]())
	if err != nil || *p.(*int) != 3 {
		t.Errorf("ToNative(*int) = %v, %v", p, err)
	}
	s, err := ToNative(NewStr("x"), reflect.TypeFor[any]())
	if err != nil || s != "x" {
		t.Errorf("ToNative(any) = %#v, %v", s, err)
	}
	if diff := cmp.Diff([]any{int32(1), "a"}, Native(NewList(NewInt(1), NewStr("a")))); diff != "" {
		t.Errorf("Native(list) mismatch (-want +got):\n%s", diff)
	}
}
