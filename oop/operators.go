package oop

import "addy/types"

// Operator overloads are ordinary methods with reserved names.

var unaryMethodNames = map[types.UnaryOperator]string{
	types.UnaryPlus:    "__op_plus",
	types.UnaryMinus:   "__op_minus",
	types.UnaryPreInc:  "__op_pre_inc",
	types.UnaryPreDec:  "__op_pre_dec",
	types.UnaryPostInc: "__op_post_inc",
	types.UnaryPostDec: "__op_post_dec",
	types.UnaryBitNot:  "__op_bw_not",
}

var binaryMethodNames = map[types.BinaryOperator]string{
	types.OpAdd:        "__op_add",
	types.OpSub:        "__op_sub",
	types.OpMul:        "__op_mul",
	types.OpDiv:        "__op_div",
	types.OpMod:        "__op_mod",
	types.OpShl:        "__op_shl",
	types.OpShr:        "__op_shr",
	types.OpPow:        "__op_pow",
	types.OpAnd:        "__op_and",
	types.OpOr:         "__op_or",
	types.OpXor:        "__op_xor",
	types.OpEq:         "__op_eq",
	types.OpNe:         "__op_neq",
	types.OpLt:         "__op_lt",
	types.OpGt:         "__op_gt",
	types.OpLe:         "__op_lte",
	types.OpGe:         "__op_gte",
	types.OpStartsWith: "__op_startswith",
	types.OpEndsWith:   "__op_endswith",
	types.OpContains:   "__op_contains",
	types.OpMatches:    "__op_matches",
}

// Overload is an entry of the operator table. Exactly one of Unary and
// Binary is set.
type Overload struct {
	Unary  types.UnaryOperator
	Binary types.BinaryOperator
}

func (o Overload) String() string {
	if o.Unary != types.UnaryNone {
		return o.Unary.String()
	}
	return o.Binary.String()
}

var overloadsByName = func() map[string]Overload {
	m := make(map[string]Overload, len(unaryMethodNames)+len(binaryMethodNames))
	for op, name := range unaryMethodNames {
		m[name] = Overload{Unary: op}
	}
	for op, name := range binaryMethodNames {
		m[name] = Overload{Binary: op}
	}
	return m
}()

// MethodNameOf returns the method overloading op. Operators that cannot
// be overloaded (!, ?, &&, ||, ??, ===, !==) report false.
func MethodNameOf[T types.UnaryOperator | types.BinaryOperator](op T) (string, bool) {
	var name string
	var ok bool
	switch o := any(op).(type) {
	case types.UnaryOperator:
		name, ok = unaryMethodNames[o]
	case types.BinaryOperator:
		name, ok = binaryMethodNames[o]
	}
	return name, ok
}

// OperatorOf is the inverse of MethodNameOf
func OperatorOf(name string) (Overload, bool) {
	o, ok := overloadsByName[name]
	return o, ok
}

// IsOperatorMethod reports whether name is reserved for an operator overload
func IsOperatorMethod(name string) bool {
	_, ok := overloadsByName[name]
	return ok
}
