package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		code  ErrorCode
		value int
		name  string
	}{
		{E_NONE, 0, "E_NONE"},
		{E_CAST, 1, "E_CAST"},
		{E_OPERATOR, 2, "E_OPERATOR"},
		{E_RANGE, 3, "E_RANGE"},
		{E_IMMUTABLE, 4, "E_IMMUTABLE"},
		{E_DUPLICATE, 5, "E_DUPLICATE"},
		{E_MEMBERNF, 6, "E_MEMBERNF"},
		{E_PROPNF, 7, "E_PROPNF"},
		{E_DIV, 8, "E_DIV"},
		{E_ARGS, 9, "E_ARGS"},
		{E_OPAQUE, 10, "E_OPAQUE"},
		{E_DISPOSED, 11, "E_DISPOSED"},
		{E_ITER, 12, "E_ITER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.code) != tt.value {
				t.Errorf("%s: expected value %d, got %d", tt.name, tt.value, int(tt.code))
			}
			if tt.code.String() != tt.name {
				t.Errorf("%s: String() returned %q, expected %q", tt.name, tt.code.String(), tt.name)
			}
			back, ok := ErrorFromString(tt.name)
			if !ok || back != tt.code {
				t.Errorf("ErrorFromString(%q) = %v, %v", tt.name, back, ok)
			}
		})
	}

	if _, ok := ErrorFromString("E_BOGUS"); ok {
		t.Error("ErrorFromString accepted an unknown code")
	}
}

func TestErrorMatching(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Errorf(E_RANGE, "index %d", 9))

	if !errors.Is(err, E_RANGE) {
		t.Error("errors.Is should match the bare code")
	}
	if !errors.Is(err, NewError(E_RANGE)) {
		t.Error("errors.Is should match another *Error with the same code")
	}
	if errors.Is(err, E_CAST) {
		t.Error("errors.Is matched the wrong code")
	}
	if got := CodeOf(err); got != E_RANGE {
		t.Errorf("CodeOf = %v, want E_RANGE", got)
	}
	if got := CodeOf(E_DIV); got != E_DIV {
		t.Errorf("CodeOf(bare code) = %v, want E_DIV", got)
	}
	if got := CodeOf(nil); got != E_NONE {
		t.Errorf("CodeOf(nil) = %v, want E_NONE", got)
	}
	if got := NewError(E_DIV).Error(); got != "Division by zero" {
		t.Errorf("NewError(E_DIV).Error() = %q", got)
	}
}

func TestKindNames(t *testing.T) {
	for k := KindVoid; k < KindCount; k++ {
		back, ok := KindFromString(k.String())
		if !ok || back != k {
			t.Errorf("KindFromString(%q) = %v, %v", k.String(), back, ok)
		}
		if KindOfClass(k.ClassID()) != k {
			t.Errorf("KindOfClass(%d) != %v", k.ClassID(), k)
		}
	}
	if !KindDecimal.IsNumeric() || KindBool.IsNumeric() || KindDate.IsNumeric() {
		t.Error("IsNumeric should cover Integer through Complex only")
	}
	if !KindStack.IsSequence() || KindMap.IsSequence() || KindString.IsSequence() {
		t.Error("IsSequence should cover Tuple, List, Set, Queue and Stack only")
	}
}

func TestOperatorSymbols(t *testing.T) {
	for _, sym := range []string{"+", "**", "&&", "===", "!==", "<=", "startswith", "matches", "??"} {
		op, ok := ParseBinaryOperator(sym)
		if !ok || op.String() != sym {
			t.Errorf("ParseBinaryOperator(%q) = %v, %v", sym, op, ok)
		}
	}
	for _, sym := range []string{"+", "-", "!", "~", "++x", "x--", "?"} {
		op, ok := ParseUnaryOperator(sym)
		if !ok || op.String() != sym {
			t.Errorf("ParseUnaryOperator(%q) = %v, %v", sym, op, ok)
		}
	}
	if !UnaryPostInc.IsPostfix() || UnaryPreInc.IsPostfix() {
		t.Error("IsPostfix mismatch")
	}
	if !OpLe.IsRelational() || OpAdd.IsRelational() {
		t.Error("IsRelational mismatch")
	}
}
