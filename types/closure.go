package types

import (
	"reflect"
	"slices"
	"strings"
)

// Body is an opaque statement tree attached to a function. The value
// model stores bodies but never runs them; an evaluator or the oop
// package's synthesized runner does.
type Body any

// Parameter describes one formal parameter of a function
type Parameter struct {
	Name       string
	ByRef      bool
	VaList     bool  // collects the remaining arguments
	Default    Value // nil when the parameter is required
	CanBeEmpty bool
}

func (p Parameter) String() string {
	var sb strings.Builder
	if p.ByRef {
		sb.WriteString("ref ")
	}
	if p.VaList {
		sb.WriteString("params ")
	}
	sb.WriteString(p.Name)
	if p.Default != nil {
		sb.WriteString(" = ")
		sb.WriteString(p.Default.String())
	}
	return sb.String()
}

func (p Parameter) same(q Parameter) bool {
	return p.Name == q.Name && p.ByRef == q.ByRef && p.VaList == q.VaList &&
		p.CanBeEmpty == q.CanBeEmpty && sameValue(p.Default, q.Default)
}

// Function is a parameter list plus a body
type Function struct {
	Name   string
	Params []Parameter
	Body   Body
}

// Signature renders name(a, b = 1)
func (f *Function) Signature() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports structural identity: same name, same parameters and the
// same body tree
func (f *Function) Equal(g *Function) bool {
	if f == g {
		return true
	}
	if f == nil || g == nil {
		return false
	}
	return f.Name == g.Name &&
		slices.EqualFunc(f.Params, g.Params, Parameter.same) &&
		sameBody(f.Body, g.Body)
}

func sameBody(a, b Body) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func sameValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equals(a, b)
}

// ClosureValue wraps a function so it can be stored and passed around
type ClosureValue struct {
	fn *Function
}

// NewClosure wraps fn
func NewClosure(fn *Function) ClosureValue {
	return ClosureValue{fn: fn}
}

// Function returns the wrapped function
func (c ClosureValue) Function() *Function { return c.fn }

func (c ClosureValue) Kind() Kind { return KindClosure }

func (c ClosureValue) Class() ClassID { return KindClosure.ClassID() }

// String renders function(a, b)
func (c ClosureValue) String() string {
	if c.fn == nil {
		return "function()"
	}
	parts := make([]string, len(c.fn.Params))
	for i, p := range c.fn.Params {
		parts[i] = p.String()
	}
	return "function(" + strings.Join(parts, ", ") + ")"
}

func (c ClosureValue) Clone() Value { return c }

func (c ClosureValue) IsEmpty() bool { return false }

func (c ClosureValue) sealed() {}

func (c ClosureValue) equal(other Value) (bool, error) {
	fn, err := AsFunction(other)
	if err != nil {
		return false, err
	}
	return c.fn.Equal(fn), nil
}
