package oop

import (
	"addy/types"
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedClasses(t *testing.T) {
	classes := Predefined()
	require.Len(t, classes, int(ClassParameterInfo)-int(types.KindVoid)+1)

	for i, c := range classes {
		assert.Equal(t, types.ClassID(i+1), c.ID(), c.Name())
	}

	for k := types.KindVoid; k < types.KindCount; k++ {
		c := classes[k-1]
		assert.Equal(t, k.String(), c.Name())
		assert.Equal(t, k.ClassID(), c.ID())
		assert.Equal(t, k, c.Kind())
		assert.Nil(t, c.Super())
		assert.Equal(t, ScopePrivate, c.Constructor().Scope())
		if k == types.KindObject {
			assert.False(t, c.IsPrimitive())
			assert.False(t, c.IsFinal())
		} else {
			assert.True(t, c.IsPrimitive(), c.Name())
			assert.True(t, c.IsFinal(), c.Name())
		}
	}

	names := make([]string, 0, 9)
	for _, c := range classes[types.KindCount-1:] {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{
		"Exception", "Attribute", "TypeInfo", "MemberInfo", "FieldInfo",
		"PropertyInfo", "MethodInfo", "EventInfo", "ParameterInfo",
	}, names)

	classes[0] = nil
	assert.NotNil(t, Predefined()[0], "callers get their own slice")
}

func TestPredefinedShapes(t *testing.T) {
	r := NewRegistry()
	lookup := func(name string) *Class {
		c, ok := r.Lookup(name)
		require.True(t, ok, name)
		return c
	}
	object := lookup("object")
	memberInfo := lookup("MemberInfo")

	exception := lookup("Exception")
	assert.Same(t, object, exception.Super())
	assert.Equal(t, ScopePublic, exception.Constructor().Scope())
	assert.Equal(t, "Exception(name, msg = )", exception.Constructor().Function().Signature())
	for _, name := range []string{"name", "message", "source", "line"} {
		p, ok := exception.Property(name)
		require.True(t, ok, name)
		assert.True(t, p.CanRead())
		assert.False(t, p.CanWrite())
	}
	toString, ok := exception.Method("toString")
	require.True(t, ok)
	assert.False(t, IsSynthesized(toString.Body()))

	for _, name := range []string{"FieldInfo", "PropertyInfo", "MethodInfo", "EventInfo"} {
		c := lookup(name)
		assert.Same(t, memberInfo, c.Super(), name)
		assert.True(t, c.IsFinal(), name)
		assert.True(t, c.Inherits(object))
	}
	assert.Same(t, object, lookup("ParameterInfo").Super())

	prop, ok := lookup("PropertyInfo").Property("fullName")
	require.True(t, ok, "inherited from MemberInfo")
	assert.Equal(t, memberInfo.ID(), prop.Holder())
	assert.Equal(t, "MemberInfo::fullName", prop.FullName())

	typeInfo := lookup("TypeInfo")
	super, ok := typeInfo.Property("superType")
	require.True(t, ok)
	assert.False(t, super.IsAuto())
	assert.False(t, super.CanWrite())
}

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry()
	point := define(t, r, NewClassBuilder("Point"))

	tests := []struct {
		name  string
		value types.Value
		want  string
	}{
		{"void", types.Void, "void"},
		{"nil", nil, "void"},
		{"int", types.NewInt(1), "int"},
		{"string", types.NewStr("s"), "string"},
		{"list", types.NewList(), "list"},
		{"closure", types.NewClosure(&types.Function{}), "closure"},
		{"instance", types.NewObject(point), "Point"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := r.ClassOf(tt.value)
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.Name())
		})
	}

	assert.Nil(t, r.ClassOf(types.NewObject(types.PlainClass{ClassID: 500, ClassName: "Stray"})))

	byID, ok := r.ByID(point.ID())
	require.True(t, ok)
	assert.Same(t, point, byID)
	_, ok = r.ByID(4000)
	assert.False(t, ok)
	_, ok = r.Lookup("Nowhere")
	assert.False(t, ok)

	all := r.Classes()
	assert.Same(t, point, all[len(all)-1])
	assert.Len(t, all, len(Predefined())+1)
}

func TestInstanceOf(t *testing.T) {
	r := NewRegistry()
	animal := define(t, r, NewClassBuilder("Animal"))
	dog := define(t, r, NewClassBuilder("Dog").Extends(animal))
	object, _ := r.Lookup("object")
	integer, _ := r.Lookup("int")

	rex, err := dog.NewInstance()
	require.NoError(t, err)

	assert.True(t, r.InstanceOf(rex, dog))
	assert.True(t, r.InstanceOf(rex, animal))
	assert.True(t, r.InstanceOf(rex, object))
	assert.False(t, r.InstanceOf(rex, integer))
	assert.True(t, r.InstanceOf(types.NewInt(1), integer))
	assert.False(t, r.InstanceOf(types.NewInt(1), object))
	assert.False(t, r.InstanceOf(rex, nil))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	ca := define(t, a, NewClassBuilder("Shared"))
	cb := define(t, b, NewClassBuilder("Shared"))
	assert.Equal(t, ca.ID(), cb.ID(), "ids are allocated per registry")
	assert.NotSame(t, ca, cb)

	objA, _ := a.Lookup("object")
	objB, _ := b.Lookup("object")
	assert.Same(t, objA, objB, "predefined classes are shared")

	_, err := a.Define(NewClassBuilder("Child").Extends(cb))
	assert.ErrorIs(t, err, types.E_ARGS)
}

func TestRegistryLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewRegistry(WithLogger(logger))

	define(t, r, NewClassBuilder("Logged").
		Property(NewProperty("size", ScopePublic, ModDefault, AccessReadWrite)))

	out := buf.String()
	assert.Contains(t, out, "msg=\"defined class\"")
	assert.Contains(t, out, "class=Logged")
	assert.Contains(t, out, "member=__size")
	assert.Contains(t, out, "member=__read_size")
	assert.NotContains(t, out, "class=Exception", "predefined classes are built silently")
}

func TestConcurrentDefine(t *testing.T) {
	r := NewRegistry()
	const n = 32

	var wg sync.WaitGroup
	ids := make([]types.ClassID, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := r.Define(NewClassBuilder(fmt.Sprintf("C%d", i)))
			errs[i] = err
			if err == nil {
				ids[i] = c.ID()
			}
			r.Lookup("object")
			r.Classes()
		}()
	}
	wg.Wait()

	seen := make(map[types.ClassID]bool, n)
	for i := range n {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "id %d handed out twice", ids[i])
		assert.Greater(t, ids[i], ClassParameterInfo)
		seen[ids[i]] = true
		c, ok := r.Lookup(fmt.Sprintf("C%d", i))
		require.True(t, ok)
		assert.Equal(t, ids[i], c.ID())
	}
}
