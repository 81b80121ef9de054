package oop

import (
	"addy/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func define(t *testing.T, r *Registry, b *ClassBuilder) *Class {
	t.Helper()
	c, err := r.Define(b)
	require.NoError(t, err)
	return c
}

func memberNames(members []Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name()
	}
	return names
}

func TestDefineAssignsIdentity(t *testing.T) {
	r := NewRegistry()
	point := define(t, r, NewClassBuilder("Point").
		Field(NewField("x", ScopePublic, ModDefault, Literal{types.NewInt(0)})))

	assert.Equal(t, "Point", point.Name())
	assert.Equal(t, types.KindObject, point.Kind())
	assert.Greater(t, int(point.ID()), int(ClassParameterInfo))

	object, ok := r.Lookup("object")
	require.True(t, ok)
	assert.Same(t, object, point.Super())

	byID, ok := r.ByID(point.ID())
	require.True(t, ok)
	assert.Same(t, point, byID)

	x, ok := point.Field("x")
	require.True(t, ok)
	assert.Equal(t, point.ID(), x.Holder())
	assert.Equal(t, "Point::x", x.FullName())

	ctor := point.Constructor()
	require.NotNil(t, ctor)
	assert.Equal(t, "Point", ctor.Name())
	assert.Equal(t, MemberConstructor, ctor.Kind())
	assert.Equal(t, ScopePublic, ctor.Scope())
}

func TestDefineRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		builder func() *ClassBuilder
	}{
		{"field twice", func() *ClassBuilder {
			return NewClassBuilder("A").Field(
				NewField("x", ScopePublic, ModDefault, nil),
				NewField("x", ScopePublic, ModDefault, nil))
		}},
		{"field and method", func() *ClassBuilder {
			return NewClassBuilder("A").
				Field(NewField("go", ScopePublic, ModDefault, nil)).
				Method(NewMethod("go", ScopePublic, ModDefault, nil))
		}},
		{"field clashes with backing field", func() *ClassBuilder {
			return NewClassBuilder("A").
				Field(NewField("__x", ScopePrivate, ModDefault, nil)).
				Property(NewProperty("x", ScopePublic, ModDefault, AccessReadWrite))
		}},
		{"method clashes with event adder", func() *ClassBuilder {
			return NewClassBuilder("A").
				Method(NewMethod("add_changed", ScopePublic, ModDefault, nil)).
				Event(NewEvent("changed", ScopePublic, ModDefault, nil))
		}},
		{"reflector", func() *ClassBuilder {
			return NewClassBuilder("A").
				Property(NewProperty("type", ScopePublic, ModDefault, AccessRead))
		}},
		{"two constructors", func() *ClassBuilder {
			return NewClassBuilder("A").
				Constructor(ScopePublic, nil).
				Constructor(ScopePrivate, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry().Define(tt.builder())
			require.Error(t, err)
			assert.ErrorIs(t, err, types.E_DUPLICATE)
		})
	}
}

func TestDefineRejectsDuplicateClass(t *testing.T) {
	r := NewRegistry()
	define(t, r, NewClassBuilder("A"))

	_, err := r.Define(NewClassBuilder("A"))
	assert.ErrorIs(t, err, types.E_DUPLICATE)

	_, err = r.Define(NewClassBuilder("int"))
	assert.ErrorIs(t, err, types.E_DUPLICATE)
}

func TestBuilderStickyError(t *testing.T) {
	r := NewRegistry()
	exception, _ := r.Lookup("Exception")
	attribute, _ := r.Lookup("Attribute")
	integer, _ := r.Lookup("int")

	tests := []struct {
		name string
		b    *ClassBuilder
	}{
		{"empty name", NewClassBuilder("")},
		{"final super", NewClassBuilder("A").Extends(attribute)},
		{"primitive super", NewClassBuilder("A").Extends(integer)},
		{"nil super", NewClassBuilder("A").Extends(nil)},
		{"static class", NewClassBuilder("A").Modifier(ModStatic)},
		{"misnamed indexer", NewClassBuilder("A").Indexer(NewProperty("items", ScopePublic, ModDefault, AccessRead))},
		{"nil field", NewClassBuilder("A").Field(nil)},
		{"nil method", NewClassBuilder("A").Method(nil)},
		{"nil event", NewClassBuilder("A").Event(nil)},
		{"error survives later calls", NewClassBuilder("A").Extends(attribute).Extends(exception).
			Field(NewField("x", ScopePublic, ModDefault, nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.b.Err())
			_, err := r.Define(tt.b)
			assert.ErrorIs(t, err, types.E_ARGS)
		})
	}
}

func TestDefineConsumesMembers(t *testing.T) {
	r := NewRegistry()
	shared := NewField("x", ScopePublic, ModDefault, nil)
	define(t, r, NewClassBuilder("A").Field(shared))

	_, err := r.Define(NewClassBuilder("B").Field(shared))
	assert.ErrorIs(t, err, types.E_DUPLICATE)
	assert.Equal(t, "A::x", shared.FullName())
}

func TestFailedDefineReleasesMembers(t *testing.T) {
	r := NewRegistry()
	clash := NewField("__x", ScopePrivate, ModDefault, nil)
	prop := NewProperty("x", ScopePublic, ModDefault, AccessReadWrite)
	hello := NewMethod("hello", ScopePublic, ModDefault, nil)

	_, err := r.Define(NewClassBuilder("Draft").Field(clash).Property(prop).Method(hello))
	require.ErrorIs(t, err, types.E_DUPLICATE)
	_, ok := r.Lookup("Draft")
	assert.False(t, ok)
	assert.Equal(t, "x", prop.FullName())
	assert.Equal(t, "__x", clash.FullName())
	assert.Equal(t, types.ClassNone, hello.Holder())
	assert.Nil(t, prop.Reader().Body())

	c := define(t, r, NewClassBuilder("Point").Property(prop).Method(hello))
	assert.Equal(t, "Point::x", prop.FullName())
	assert.Equal(t, "Point::hello", hello.FullName())
	assert.Equal(t, c.ID(), prop.Reader().Holder())
	assert.Equal(t, FieldGet{Field: "__x"}, prop.Reader().Body())
	assert.Equal(t, FieldSet{Field: "__x"}, prop.Writer().Body())

	define(t, r, NewClassBuilder("Other").Field(clash))
	assert.Equal(t, "Other::__x", clash.FullName())
}

func TestDefineRejectsForeignSuper(t *testing.T) {
	other := NewRegistry()
	base := define(t, other, NewClassBuilder("Base"))

	_, err := NewRegistry().Define(NewClassBuilder("Derived").Extends(base))
	assert.ErrorIs(t, err, types.E_ARGS)
}

func TestMemberShadowing(t *testing.T) {
	r := NewRegistry()
	base := define(t, r, NewClassBuilder("Base").
		Field(
			NewField("x", ScopePublic, ModDefault, Literal{types.NewInt(1)}),
			NewField("y", ScopePublic, ModDefault, Literal{types.NewInt(2)}),
		).
		Method(NewMethod("describe", ScopePublic, ModDefault, nil)))
	derived := define(t, r, NewClassBuilder("Derived").
		Extends(base).
		Field(NewField("x", ScopeProtected, ModDefault, Literal{types.NewStr("derived")})))

	m, ok := derived.GetMember("x", MemberAll)
	require.True(t, ok)
	assert.Equal(t, derived.ID(), m.Holder())
	assert.Equal(t, ScopeProtected, m.Scope())

	m, ok = derived.GetMember("y", MemberAll)
	require.True(t, ok)
	assert.Equal(t, base.ID(), m.Holder())

	_, ok = derived.GetDeclaredMember("y", MemberAll)
	assert.False(t, ok)

	m, ok = derived.GetMember("describe", MemberMethod)
	require.True(t, ok)
	assert.Equal(t, MemberMethod, m.Kind())

	_, ok = derived.GetMember("describe", MemberField)
	assert.False(t, ok, "mask excludes methods")

	_, ok = derived.GetMember("missing", MemberAll)
	assert.False(t, ok)

	obj, err := derived.NewInstance()
	require.NoError(t, err)
	x, _ := obj.Field("x")
	assert.Equal(t, "derived", x.String(), "derived initializer wins")
	y, _ := obj.Field("y")
	assert.Equal(t, "2", y.String())
}

func TestGetMemberOrder(t *testing.T) {
	r := NewRegistry()
	c := define(t, r, NewClassBuilder("Grid").
		Indexer(NewAccessorProperty(IndexerName, ScopePublic, ModDefault, Script("return 0;"), nil)).
		Field(NewField("cells", ScopePrivate, ModDefault, nil)).
		Property(NewProperty("width", ScopePublic, ModDefault, AccessRead)).
		Method(NewMethod("clear", ScopePublic, ModDefault, nil)).
		Event(NewEvent("changed", ScopePublic, ModDefault, nil)))

	m, ok := c.GetMember("Grid", MemberAll)
	require.True(t, ok)
	assert.Equal(t, MemberConstructor, m.Kind())

	_, ok = c.GetMember("Grid", MemberMethod)
	assert.False(t, ok, "the constructor is only found with the constructor mask")

	m, ok = c.GetMember(IndexerName, MemberAll)
	require.True(t, ok)
	assert.Equal(t, MemberIndexer, m.Kind())

	declared := memberNames(c.GetDeclaredMembers(MemberAll))
	assert.Equal(t, []string{
		"Grid", IndexerName,
		"cells", "__width", "__changed_handlers",
		"width", "type",
		"__read_[item]", "__read_width", "clear", "add_changed", "remove_changed", "trigger_changed", "__read_type",
		"changed",
	}, declared)

	assert.Equal(t, []string{"width", "type"}, memberNames(c.GetDeclaredMembers(MemberProperty)))
	assert.Equal(t, []string{"changed"}, memberNames(c.GetDeclaredMembers(MemberEvent)))
}

func TestGetMembersWalksChain(t *testing.T) {
	r := NewRegistry()
	base := define(t, r, NewClassBuilder("Base").
		Field(NewField("a", ScopePublic, ModDefault, nil), NewField("b", ScopePublic, ModDefault, nil)))
	derived := define(t, r, NewClassBuilder("Derived").
		Extends(base).
		Field(NewField("b", ScopePublic, ModDefault, nil), NewField("c", ScopePublic, ModDefault, nil)))

	fields := derived.GetMembers(MemberField)
	assert.Equal(t, []string{"b", "c", "a"}, memberNames(fields))
	assert.Equal(t, derived.ID(), fields[0].Holder())

	withCtor := derived.GetMembers(MemberConstructor | MemberField)
	assert.Equal(t, "Derived", withCtor[0].Name())
	assert.Len(t, withCtor, 4, "base constructors are not inherited")
}

func TestInherits(t *testing.T) {
	r := NewRegistry()
	a := define(t, r, NewClassBuilder("A"))
	b := define(t, r, NewClassBuilder("B").Extends(a))
	c := define(t, r, NewClassBuilder("C").Extends(b))
	object, _ := r.Lookup("object")

	assert.True(t, c.Inherits(a))
	assert.True(t, c.Inherits(object))
	assert.False(t, a.Inherits(a), "a class never inherits itself")
	assert.False(t, a.Inherits(c))
	assert.False(t, object.Inherits(object))
	assert.False(t, a.Inherits(nil))

	obj, err := c.NewInstance()
	require.NoError(t, err)
	assert.True(t, r.InstanceOf(obj, c))
	assert.True(t, r.InstanceOf(obj, a))
	assert.False(t, r.InstanceOf(types.NewInt(1), a))

	integer, _ := r.Lookup("int")
	assert.True(t, r.InstanceOf(types.NewInt(1), integer))
}

func TestNewInstance(t *testing.T) {
	r := NewRegistry()
	c := define(t, r, NewClassBuilder("Bag").
		Field(
			NewField("items", ScopePublic, ModDefault, Literal{types.NewList(types.NewInt(1))}),
			NewField("seen", ScopePublic, ModDefault, EmptySet{}),
			NewField("computed", ScopePublic, ModDefault, Expr{Body: Script("1 + 1")}),
			NewField("plain", ScopePublic, ModDefault, nil),
			NewField("count", ScopePublic, ModStatic, Literal{types.NewInt(7)}),
			NewField("secret", ScopePrivate, ModDefault, Literal{types.NewInt(3)}),
		))

	first, err := c.NewInstance()
	require.NoError(t, err)
	second, err := c.NewInstance()
	require.NoError(t, err)

	assert.Equal(t, []string{"items", "seen", "computed", "plain", "secret"}, first.FieldNames())
	assert.Equal(t, c.ID(), first.Class())

	items, _ := first.Field("items")
	items.(*types.ListValue).Append(types.NewInt(2))
	other, _ := second.Field("items")
	assert.Equal(t, "[1]", other.String(), "initializers are cloned per instance")

	seen, _ := first.Field("seen")
	assert.IsType(t, &types.SetValue{}, seen)
	computed, _ := first.Field("computed")
	assert.True(t, types.IsVoid(computed))

	count, ok := c.Field("count")
	require.True(t, ok)
	require.NotNil(t, count.Shared())
	assert.Equal(t, "7", count.Shared().Load().String())

	assert.Equal(t, "<Bag {items = [1, 2], seen = {}, computed = , plain = }>", first.String())
}

func TestNewInstanceRefusals(t *testing.T) {
	r := NewRegistry()
	abstract := define(t, r, NewClassBuilder("Shape").Modifier(ModAbstract))
	_, err := abstract.NewInstance()
	assert.ErrorIs(t, err, types.E_OPERATOR)

	integer, _ := r.Lookup("int")
	_, err = integer.NewInstance()
	assert.ErrorIs(t, err, types.E_CAST)
}

func TestFieldVisible(t *testing.T) {
	r := NewRegistry()
	c := define(t, r, NewClassBuilder("Account").
		Field(
			NewField("owner", ScopePublic, ModDefault, nil),
			NewField("balance", ScopePrivate, ModDefault, nil),
		).
		Property(NewProperty("id", ScopePublic, ModDefault, AccessReadWrite)))

	assert.True(t, c.FieldVisible("owner"))
	assert.False(t, c.FieldVisible("balance"))
	assert.False(t, c.FieldVisible("__id"))
	assert.True(t, c.FieldVisible("extra"))
	assert.False(t, c.FieldVisible("__extra"))
}

func TestMemberSet(t *testing.T) {
	var s MemberSet[*Field]
	require.NoError(t, s.add(NewField("a", ScopePublic, ModDefault, nil)))
	require.NoError(t, s.add(NewField("b", ScopePublic, ModDefault, nil)))
	assert.ErrorIs(t, s.add(NewField("a", ScopePublic, ModDefault, nil)), types.E_DUPLICATE)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, []string{"a", "b"}, s.Names())

	f, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", f.Name())
	_, ok = s.Get("c")
	assert.False(t, ok)

	var names []string
	for f := range s.All() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestFlagsAndNames(t *testing.T) {
	assert.Equal(t, "protected", ScopeProtected.String())
	s, ok := ParseScope("private")
	assert.True(t, ok)
	assert.Equal(t, ScopePrivate, s)
	_, ok = ParseScope("internal")
	assert.False(t, ok)

	m, ok := ParseModifier("")
	assert.True(t, ok)
	assert.Equal(t, ModDefault, m)
	m, ok = ParseModifier("abstract")
	assert.True(t, ok)
	assert.Equal(t, ModAbstract, m)

	assert.True(t, MemberAll.Has(MemberEvent))
	assert.False(t, (MemberField | MemberMethod).Has(MemberProperty))
	assert.Equal(t, "indexer", MemberIndexer.String())
	assert.True(t, AccessReadWrite.Has(AccessWrite))

	assert.Equal(t, "__read_x", ReaderName("x"))
	assert.Equal(t, "__write_x", WriterName("x"))
	assert.Equal(t, "__x", BackingFieldName("x"))
	assert.Equal(t, "__x_handlers", HandlerSetName("x"))
	assert.Equal(t, "add_x", AddHandlerName("x"))
	assert.Equal(t, "remove_x", RemoveHandlerName("x"))
	assert.Equal(t, "trigger_x", TriggerName("x"))
}
