package types

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// StrValue represents an immutable string. Items are one-character
// strings indexed by rune.
type StrValue struct {
	val string
}

// NewStr creates a new string value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// Val returns the raw string
func (s StrValue) Val() string { return s.val }

func (s StrValue) Kind() Kind { return KindString }

func (s StrValue) Class() ClassID { return KindString.ClassID() }

// String returns the raw text; strings are not quoted when rendered
func (s StrValue) String() string { return s.val }

func (s StrValue) Clone() Value { return s }

func (s StrValue) IsEmpty() bool { return s.val == "" }

func (s StrValue) sealed() {}

// Len returns the length in characters
func (s StrValue) Len() int { return utf8.RuneCountInString(s.val) }

func (s StrValue) equal(other Value) (bool, error) {
	return s.val == other.String(), nil
}

func (s StrValue) compare(other Value) (int, error) {
	return strings.Compare(s.val, other.String()), nil
}

func (s StrValue) binary(op BinaryOperator, rhs Value) (Value, error) {
	switch op {
	case OpAdd:
		return NewStr(s.val + rhs.String()), nil
	case OpMul:
		n, err := AsInt32(rhs)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return NewStr(""), nil
		}
		return NewStr(strings.Repeat(s.val, int(n))), nil
	case OpLt, OpLe, OpGt, OpGe:
		return relational(op, strings.Compare(s.val, rhs.String())), nil
	case OpStartsWith:
		return NewBool(strings.HasPrefix(s.val, rhs.String())), nil
	case OpEndsWith:
		return NewBool(strings.HasSuffix(s.val, rhs.String())), nil
	case OpContains:
		return NewBool(strings.Contains(s.val, rhs.String())), nil
	case OpMatches:
		re, err := CompilePattern(rhs.String())
		if err != nil {
			return nil, err
		}
		return NewBool(re.MatchString(s.val)), nil
	}
	return defaultBinary(op, s, rhs)
}

func (s StrValue) getProperty(name string) (Value, error) {
	switch name {
	case "empty":
		return NewBool(s.IsEmpty()), nil
	case "length":
		return NewInt(int32(s.Len())), nil
	}
	return nil, propertyError(s, name)
}

func (s StrValue) getItem(index Value) (Value, error) {
	n, err := indexArg(index)
	if err != nil {
		return nil, err
	}
	runes := []rune(s.val)
	i, ok := readIndex(n, len(runes))
	if !ok {
		return Void, nil
	}
	return NewStr(string(runes[i])), nil
}

func (s StrValue) setItem(Value, Value) error {
	return Errorf(E_IMMUTABLE, "strings are immutable")
}

func (s StrValue) getRange(lo, hi int) (Value, error) {
	runes := []rune(s.val)
	lo, hi = clampRange(lo, hi, len(runes))
	return NewStr(string(runes[lo:hi])), nil
}

func (s StrValue) setRange(int, int, Value) error {
	return Errorf(E_IMMUTABLE, "strings are immutable")
}

func (s StrValue) enumerate() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		i := int32(0)
		for _, r := range s.val {
			if !yield(NewInt(i), NewStr(string(r))) {
				return
			}
			i++
		}
	}
}
