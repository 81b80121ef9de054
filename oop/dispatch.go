package oop

import "addy/types"

// Invoker is the hook into an evaluator. The class model stores bodies
// but only runs the ones it synthesized; everything else goes through
// an Invoker.
type Invoker interface {
	// CallMethod runs the body of m with self bound as receiver
	CallMethod(m *Method, self types.Value, args []types.Value) (types.Value, error)
	// CallValue calls a callable value such as a closure
	CallValue(callee types.Value, args []types.Value) (types.Value, error)
}

// Dispatcher applies operators the way the evaluator does: instances of
// user classes are given the chance to overload an operator, every other
// value uses the native value operations.
type Dispatcher struct {
	reg *Registry
	inv Invoker
}

// NewDispatcher creates a dispatcher resolving classes in reg and running
// overload bodies through inv
func NewDispatcher(reg *Registry, inv Invoker) *Dispatcher {
	return &Dispatcher{reg: reg, inv: inv}
}

// userClass returns the class of v when v is an instance of a class
// derived from object
func (d *Dispatcher) userClass(v types.Value) *Class {
	if _, ok := v.(*types.ObjValue); !ok {
		return nil
	}
	cls := d.reg.ClassOf(v)
	root, _ := d.reg.ByID(types.KindObject.ClassID())
	if cls == nil || !cls.Inherits(root) {
		return nil
	}
	return cls
}

// Binary applies op. When lhs is a user instance its overload is called;
// without one only ==, != and + with a string right operand fall back to
// the native operation.
func (d *Dispatcher) Binary(op types.BinaryOperator, lhs, rhs types.Value) (types.Value, error) {
	if rhs == nil {
		rhs = types.Void
	}
	if name, ok := MethodNameOf(op); ok {
		if cls := d.userClass(lhs); cls != nil {
			if m, ok := cls.Method(name); ok {
				return d.reg.Call(m, lhs, []types.Value{rhs}, d.inv)
			}
			native := op == types.OpEq || op == types.OpNe ||
				(op == types.OpAdd && rhs.Kind() == types.KindString)
			if !native {
				return nil, types.Errorf(types.E_OPERATOR, "operator %s cannot be applied to %s", op, cls.name)
			}
		}
	}
	return types.BinaryOperation(op, lhs, rhs)
}

// Unary applies op. A user instance must overload it; postfix overloads
// receive a single Void argument.
func (d *Dispatcher) Unary(op types.UnaryOperator, v types.Value) (types.Value, error) {
	if name, ok := MethodNameOf(op); ok {
		if cls := d.userClass(v); cls != nil {
			m, ok := cls.Method(name)
			if !ok {
				return nil, types.Errorf(types.E_OPERATOR, "operator %s cannot be applied to %s", op, cls.name)
			}
			var args []types.Value
			if op.IsPostfix() {
				args = []types.Value{types.Void}
			}
			return d.reg.Call(m, v, args, d.inv)
		}
	}
	return types.UnaryOperation(op, v)
}
