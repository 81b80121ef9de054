package types

import (
	"math/big"
	"strings"
	"testing"
	"time"
)

func TestConversionNeeded(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		target Kind
		op     BinaryOperator
		want   bool
	}{
		{"int to float", NewInt(1), KindFloat, OpAdd, true},
		{"long to complex", NewLongFromInt64(1), KindComplex, OpMul, true},
		{"bool to int", True, KindInt, OpAnd, true},
		{"float stays", NewFloat(1), KindInt, OpAdd, false},
		{"never past the tower", NewInt(1), KindDate, OpAdd, false},
		{"plus stringifies", NewInt(1), KindString, OpAdd, true},
		{"other ops do not stringify", NewInt(1), KindString, OpMul, false},
		{"strings refuse", NewStr("1"), KindFloat, OpAdd, false},
		{"void refuses", Void, KindInt, OpEq, false},
		{"sequences refuse each other", NewList(), KindTuple, OpAdd, false},
		{"set refuses stack", NewSet(), KindStack, OpAdd, false},
		{"identity ops", NewInt(1), KindFloat, OpIdentical, false},
		{"contains", NewInt(1), KindFloat, OpContains, false},
		{"matches", NewInt(1), KindFloat, OpMatches, false},
		{"if empty", NewInt(1), KindFloat, OpIfEmpty, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversionNeeded(tt.v, tt.target, tt.op); got != tt.want {
				t.Errorf("ConversionNeeded(%v, %v, %s) = %v, want %v", tt.v.Kind(), tt.target, tt.op, got, tt.want)
			}
		})
	}
}

func TestEqualityFallbacks(t *testing.T) {
	// an uncomparable pair is unequal for == and != rather than an error
	eq, err := BinaryOperation(OpEq, NewInt(1), NewStr("x"))
	if err != nil || eq != False {
		t.Errorf(`1 == "x" = %v, %v; want false`, eq, err)
	}
	ne, err := BinaryOperation(OpNe, NewInt(1), NewStr("x"))
	if err != nil || ne != True {
		t.Errorf(`1 != "x" = %v, %v; want true`, ne, err)
	}
	eq, err = BinaryOperation(OpEq, NewDate(time.Unix(0, 0)), NewInt(0))
	if err != nil || eq != False {
		t.Errorf("date == 0 = %v, %v; want false", eq, err)
	}

	if Equals(NewInt(1), NewList()) {
		t.Error("Equals across unrelated kinds should be false")
	}
	if !Equals(NewStr("1"), NewInt(1)) {
		t.Error("a string equals anything with the same text")
	}
	if Equals(Void, NewInt(0)) {
		t.Error("Void only equals Void")
	}
	if !Equals(nil, Void) {
		t.Error("a missing value is Void")
	}

	// ordering falls back to the string forms
	if got := Compare(NewInt(1), NewStr("abc")); got >= 0 {
		t.Errorf(`Compare(1, "abc") = %d, want < 0`, got)
	}
	a, b := NewComplex(1, 1), NewComplex(1, 2)
	if got, want := Compare(a, b), strings.Compare(a.String(), b.String()); got != want {
		t.Errorf("Compare of complex numbers = %d, want text order %d", got, want)
	}
	if got := Compare(NewList(NewInt(1)), NewList(NewInt(1), NewInt(0))); got >= 0 {
		t.Errorf("shorter prefix list should order first, got %d", got)
	}

	id, _ := BinaryOperation(OpIdentical, NewInt(1), NewFloat(1))
	if id != False {
		t.Error("=== requires the same class")
	}
	id, _ = BinaryOperation(OpNotIdentical, NewInt(1), NewInt(1))
	if id != False {
		t.Error("!== of identical integers should be false")
	}
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		op   UnaryOperator
		v    Value
		want string
	}{
		{UnaryNotEmpty, NewStr(""), "false"},
		{UnaryNotEmpty, NewList(NewInt(1)), "true"},
		{UnaryNotEmpty, Void, "false"},
		{UnaryNot, True, "false"},
		{UnaryMinus, NewFloat(1.5), "-1.5"},
		{UnaryMinus, NewRational(big.NewRat(1, 2)), "-1/2"},
		{UnaryBitNot, NewInt(0), "-1"},
		{UnaryPreInc, NewInt(1), "2"},
		{UnaryPostDec, NewFloat(1.5), "0.5"},
		{UnaryPlus, NewDecimal(mustDecimal(t, "2.5").Val()), "2.5"},
	}
	for _, tt := range tests {
		got, err := UnaryOperation(tt.op, tt.v)
		if err != nil {
			t.Errorf("%s%s: %v", tt.op, tt.v, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%s(%s) = %s, want %s", tt.op, tt.v, got, tt.want)
		}
	}

	if _, err := Unary(UnaryMinus, NewStr("x")); CodeOf(err) != E_OPERATOR {
		t.Errorf("-string: %v, want E_OPERATOR", err)
	}
	if _, err := Unary(UnaryPreInc, NewStr("x")); CodeOf(err) != E_OPERATOR {
		t.Errorf("++string: %v, want E_OPERATOR", err)
	}
}

func TestDatesAndDurations(t *testing.T) {
	d := NewDate(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC))
	later, err := BinaryOperation(OpAdd, d, NewInt(1))
	if err != nil || later.String() != "2024-02-01 12:00:00" {
		t.Errorf("date + 1 = %v, %v", later, err)
	}
	span, err := BinaryOperation(OpSub, later, d)
	if err != nil || span.Kind() != KindDuration {
		t.Fatalf("date - date = %v, %v", span, err)
	}
	hours, _ := GetProperty(span, "totalHours")
	if !Equals(hours, NewInt(24)) {
		t.Errorf("span.totalHours = %v, want 24", hours)
	}
	back, err := BinaryOperation(OpAdd, span, d)
	if err != nil || !Equals(back, later) {
		t.Errorf("duration + date = %v, %v", back, err)
	}
	lt, _ := BinaryOperation(OpLt, d, later)
	if lt != True {
		t.Error("dates should be ordered")
	}
	year, _ := GetProperty(d, "year")
	if year.String() != "2024" {
		t.Errorf("year = %v", year)
	}
}
