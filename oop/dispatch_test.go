package oop

import (
	"addy/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorMethodNames(t *testing.T) {
	for op, name := range binaryMethodNames {
		got, ok := MethodNameOf(op)
		require.True(t, ok)
		assert.Equal(t, name, got)

		back, ok := OperatorOf(name)
		require.True(t, ok, name)
		assert.Equal(t, Overload{Binary: op}, back)
		assert.True(t, IsOperatorMethod(name))
	}
	for op, name := range unaryMethodNames {
		got, ok := MethodNameOf(op)
		require.True(t, ok)
		assert.Equal(t, name, got)

		back, ok := OperatorOf(name)
		require.True(t, ok, name)
		assert.Equal(t, Overload{Unary: op}, back)
	}

	assert.Len(t, binaryMethodNames, 21)
	assert.Len(t, unaryMethodNames, 7)

	name, _ := MethodNameOf(types.OpLe)
	assert.Equal(t, "__op_lte", name)
	name, _ = MethodNameOf(types.UnaryPostInc)
	assert.Equal(t, "__op_post_inc", name)

	o, _ := OperatorOf("__op_neq")
	assert.Equal(t, "!=", o.String())
	o, _ = OperatorOf("__op_bw_not")
	assert.Equal(t, "~", o.String())
}

func TestOperatorsNotOverloadable(t *testing.T) {
	for _, op := range []types.BinaryOperator{
		types.OpAndAlso, types.OpOrElse, types.OpIdentical, types.OpNotIdentical, types.OpIfEmpty,
	} {
		_, ok := MethodNameOf(op)
		assert.False(t, ok, op.String())
	}
	for _, op := range []types.UnaryOperator{types.UnaryNot, types.UnaryNotEmpty} {
		_, ok := MethodNameOf(op)
		assert.False(t, ok, op.String())
	}
	assert.False(t, IsOperatorMethod("toString"))
}

// vectorInvoker implements the overloads of a two field Vector class
type vectorInvoker struct {
	cls   *Class
	calls []string
}

func (v *vectorInvoker) newVector(x, y int32) *types.ObjValue {
	obj, err := v.cls.NewInstance()
	if err != nil {
		panic(err)
	}
	obj.SetField("x", types.NewInt(x))
	obj.SetField("y", types.NewInt(y))
	return obj
}

func (v *vectorInvoker) CallMethod(m *Method, self types.Value, args []types.Value) (types.Value, error) {
	v.calls = append(v.calls, m.Name())
	obj := self.(*types.ObjValue)
	x, _ := obj.Field("x")
	y, _ := obj.Field("y")
	xi, yi := x.(types.IntValue).Val(), y.(types.IntValue).Val()

	switch m.Name() {
	case "__op_add":
		other, ok := args[0].(*types.ObjValue)
		if !ok {
			return nil, types.Errorf(types.E_CAST, "cannot add %s to a vector", args[0].Kind())
		}
		ox, _ := other.Field("x")
		oy, _ := other.Field("y")
		return v.newVector(xi+ox.(types.IntValue).Val(), yi+oy.(types.IntValue).Val()), nil
	case "__op_minus":
		return v.newVector(-xi, -yi), nil
	case "__op_post_inc":
		if len(args) != 1 || !types.IsVoid(args[0]) {
			return nil, types.Errorf(types.E_ARGS, "postfix overload expects one void argument")
		}
		return v.newVector(xi+1, yi+1), nil
	}
	return nil, types.Errorf(types.E_OPAQUE, "no body for %s", m.Name())
}

func (v *vectorInvoker) CallValue(types.Value, []types.Value) (types.Value, error) {
	return nil, types.Errorf(types.E_OPAQUE, "not callable")
}

func newVectorDispatcher(t *testing.T) (*Dispatcher, *vectorInvoker) {
	t.Helper()
	r := NewRegistry()
	overload := func(name string, params ...string) *Method {
		fn := &types.Function{Body: Script(name)}
		for _, p := range params {
			fn.Params = append(fn.Params, types.Parameter{Name: p})
		}
		return NewMethod(name, ScopePublic, ModStatic, fn)
	}
	cls := define(t, r, NewClassBuilder("Vector").
		Field(
			NewField("x", ScopePublic, ModDefault, Literal{types.NewInt(0)}),
			NewField("y", ScopePublic, ModDefault, Literal{types.NewInt(0)}),
		).
		Method(
			overload("__op_add", "other"),
			overload("__op_minus"),
			overload("__op_post_inc", "unused"),
		))
	inv := &vectorInvoker{cls: cls}
	return NewDispatcher(r, inv), inv
}

func TestDispatcherBinaryOverload(t *testing.T) {
	d, inv := newVectorDispatcher(t)
	a, b := inv.newVector(1, 2), inv.newVector(10, 20)

	got, err := d.Binary(types.OpAdd, a, b)
	require.NoError(t, err)
	assert.Equal(t, "<Vector {x = 11, y = 22}>", got.String())
	assert.Equal(t, []string{"__op_add"}, inv.calls)

	_, err = d.Binary(types.OpAdd, a, types.NewInt(3))
	assert.ErrorIs(t, err, types.E_CAST, "the overload sees the raw operand")
}

func TestDispatcherBinaryFallback(t *testing.T) {
	d, inv := newVectorDispatcher(t)
	a, b := inv.newVector(1, 2), inv.newVector(1, 2)

	tests := []struct {
		name string
		op   types.BinaryOperator
		lhs  types.Value
		rhs  types.Value
		want string
		code types.ErrorCode
	}{
		{"equality is identity", types.OpEq, a, a, "true", types.E_NONE},
		{"distinct instances differ", types.OpEq, a, b, "false", types.E_NONE},
		{"inequality", types.OpNe, a, b, "true", types.E_NONE},
		{"incomparable equality", types.OpEq, a, types.NewInt(1), "false", types.E_NONE},
		{"string concatenation", types.OpAdd, a, types.NewStr("!"), "<Vector {x = 1, y = 2}>!", types.E_NONE},
		{"missing overload", types.OpSub, a, b, "", types.E_OPERATOR},
		{"relational without overload", types.OpLt, a, b, "", types.E_OPERATOR},
		{"identity is never overloaded", types.OpIdentical, a, a, "true", types.E_NONE},
		{"native values", types.OpMul, types.NewInt(6), types.NewInt(7), "42", types.E_NONE},
		{"native left operand", types.OpEq, types.NewInt(1), a, "false", types.E_NONE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Binary(tt.op, tt.lhs, tt.rhs)
			if tt.code != types.E_NONE {
				assert.ErrorIs(t, err, tt.code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
	assert.Empty(t, inv.calls)
}

func TestDispatcherUnary(t *testing.T) {
	d, inv := newVectorDispatcher(t)
	v := inv.newVector(3, 4)

	got, err := d.Unary(types.UnaryMinus, v)
	require.NoError(t, err)
	assert.Equal(t, "<Vector {x = -3, y = -4}>", got.String())

	got, err = d.Unary(types.UnaryPostInc, v)
	require.NoError(t, err, "postfix overloads receive a void argument")
	assert.Equal(t, "<Vector {x = 4, y = 5}>", got.String())

	_, err = d.Unary(types.UnaryPlus, v)
	assert.ErrorIs(t, err, types.E_OPERATOR, "unary overloads have no fallback")

	got, err = d.Unary(types.UnaryNotEmpty, v)
	require.NoError(t, err)
	assert.Equal(t, "true", got.String())

	got, err = d.Unary(types.UnaryMinus, types.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, "-5", got.String())

	assert.Equal(t, []string{"__op_minus", "__op_post_inc"}, inv.calls)
}

func TestDispatcherPredefinedInstances(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r, nil)
	exception, ok := r.Lookup("Exception")
	require.True(t, ok)
	e, err := exception.NewInstance()
	require.NoError(t, err)

	got, err := d.Binary(types.OpEq, e, e)
	require.NoError(t, err)
	assert.Equal(t, "true", got.String())
	_, err = d.Binary(types.OpSub, e, e)
	assert.ErrorIs(t, err, types.E_OPERATOR)

	plain := types.NewObject(types.PlainClass{ClassID: 999, ClassName: "Loose"})
	got, err = d.Binary(types.OpEq, plain, plain)
	require.NoError(t, err, "objects of unknown classes use native operations")
	assert.Equal(t, "true", got.String())
}
