package conformance

import (
	"addy/oop"
	"addy/types"
	"fmt"
)

// apply performs one step. Errors from the value model are returned as
// is so the expectation can inspect their code; malformed steps give
// plain errors that never match an expected code.
func apply(reg *oop.Registry, disp *oop.Dispatcher, step Step, ops []types.Value) (types.Value, error) {
	switch step.Op {
	case "binary":
		if err := arity(step, ops, 2); err != nil {
			return nil, err
		}
		op, ok := types.ParseBinaryOperator(step.Operator)
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", step.Operator)
		}
		return disp.Binary(op, ops[0], ops[1])

	case "unary":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		op, ok := types.ParseUnaryOperator(step.Operator)
		if !ok {
			return nil, fmt.Errorf("unknown unary operator %q", step.Operator)
		}
		return disp.Unary(op, ops[0])

	case "convert":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		kind, ok := types.KindFromString(step.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown kind %q", step.Kind)
		}
		return types.ConvertTo(ops[0], kind)

	case "get_property":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		return types.GetProperty(ops[0], step.Property)

	case "set_property":
		if err := arity(step, ops, 2); err != nil {
			return nil, err
		}
		return ops[0], types.SetProperty(ops[0], step.Property, ops[1])

	case "get_item":
		if err := arity(step, ops, 2); err != nil {
			return nil, err
		}
		return types.GetItem(ops[0], ops[1])

	case "set_item":
		if err := arity(step, ops, 3); err != nil {
			return nil, err
		}
		return ops[0], types.SetItem(ops[0], ops[1], ops[2])

	case "get_range", "set_range":
		n := 3
		if step.Op == "set_range" {
			n = 4
		}
		if err := arity(step, ops, n); err != nil {
			return nil, err
		}
		lo, err := types.AsInt32(ops[1])
		if err != nil {
			return nil, err
		}
		hi, err := types.AsInt32(ops[2])
		if err != nil {
			return nil, err
		}
		if step.Op == "get_range" {
			return types.GetRange(ops[0], int(lo), int(hi))
		}
		return ops[0], types.SetRange(ops[0], int(lo), int(hi), ops[3])

	case "equals":
		if err := arity(step, ops, 2); err != nil {
			return nil, err
		}
		return types.NewBool(types.Equals(ops[0], ops[1])), nil

	case "compare":
		if err := arity(step, ops, 2); err != nil {
			return nil, err
		}
		return types.NewInt(int32(types.Compare(ops[0], ops[1]))), nil

	case "identical":
		if err := arity(step, ops, 2); err != nil {
			return nil, err
		}
		return types.NewBool(types.Identical(ops[0], ops[1])), nil

	case "is_empty":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		return types.NewBool(types.IsEmpty(ops[0])), nil

	case "clone":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		return types.Clone(ops[0]), nil

	case "enumerate":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		seq, err := types.Enumerate(ops[0])
		if err != nil {
			return nil, err
		}
		pairs := types.NewEmptyList()
		for k, v := range seq {
			pairs.Append(types.NewTuple(k, v))
		}
		return pairs, nil

	case "type_of":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		cls := reg.ClassOf(ops[0])
		if cls == nil {
			return nil, types.Errorf(types.E_MEMBERNF, "class %d is not registered", ops[0].Class())
		}
		return types.NewStr(cls.Name()), nil

	case "new":
		cls, err := lookupClass(reg, step.Class)
		if err != nil {
			return nil, err
		}
		return cls.NewInstance()

	case "member":
		cls, err := stepClass(reg, step, ops)
		if err != nil {
			return nil, err
		}
		lookup := cls.GetMember
		if step.Declared {
			lookup = cls.GetDeclaredMember
		}
		m, ok := lookup(step.Member, oop.MemberAll)
		if !ok {
			return nil, types.Errorf(types.E_MEMBERNF, "%s has no member %s", cls.Name(), step.Member)
		}
		return types.NewStr(m.FullName()), nil

	case "inherits":
		cls, err := lookupClass(reg, step.Class)
		if err != nil {
			return nil, err
		}
		super, err := lookupClass(reg, step.Super)
		if err != nil {
			return nil, err
		}
		return types.NewBool(cls.Inherits(super)), nil

	case "instance_of":
		if err := arity(step, ops, 1); err != nil {
			return nil, err
		}
		cls, err := lookupClass(reg, step.Class)
		if err != nil {
			return nil, err
		}
		return types.NewBool(reg.InstanceOf(ops[0], cls)), nil

	case "call":
		cls, err := stepClass(reg, step, ops)
		if err != nil {
			return nil, err
		}
		var m *oop.Method
		if step.Member == cls.Name() {
			m = cls.Constructor()
		} else if found, ok := cls.Method(step.Member); ok {
			m = found
		} else {
			return nil, types.Errorf(types.E_MEMBERNF, "%s has no method %s", cls.Name(), step.Member)
		}
		self := types.Value(types.Void)
		var args []types.Value
		if len(ops) > 0 {
			self, args = ops[0], ops[1:]
		}
		return reg.Call(m, self, args, nil)
	}
	return nil, fmt.Errorf("unknown op %q", step.Op)
}

func arity(step Step, ops []types.Value, n int) error {
	if len(ops) != n {
		return fmt.Errorf("%s takes %d operand(s), got %d", step.Op, n, len(ops))
	}
	return nil
}

func lookupClass(reg *oop.Registry, name string) (*oop.Class, error) {
	cls, ok := reg.Lookup(name)
	if !ok {
		return nil, types.Errorf(types.E_MEMBERNF, "class %s is not defined", name)
	}
	return cls, nil
}

// stepClass is the class named by the step, or else the class of its
// first operand
func stepClass(reg *oop.Registry, step Step, ops []types.Value) (*oop.Class, error) {
	if step.Class != "" {
		return lookupClass(reg, step.Class)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("%s needs a class or an operand", step.Op)
	}
	cls := reg.ClassOf(ops[0])
	if cls == nil {
		return nil, types.Errorf(types.E_MEMBERNF, "class %d is not registered", ops[0].Class())
	}
	return cls, nil
}
