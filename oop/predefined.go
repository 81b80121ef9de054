package oop

import (
	"addy/types"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// Ids of the predefined classes that follow the primitive ones
const (
	ClassException types.ClassID = types.ClassID(types.KindCount) + iota
	ClassAttribute
	ClassTypeInfo
	ClassMemberInfo
	ClassFieldInfo
	ClassPropertyInfo
	ClassMethodInfo
	ClassEventInfo
	ClassParameterInfo
)

var (
	predefinedOnce    sync.Once
	predefinedClasses []*Class
)

// Predefined returns the classes every registry starts with: one per
// primitive kind, then Exception, Attribute and the reflection classes.
// They are built once and shared by all registries.
func Predefined() []*Class {
	predefinedOnce.Do(func() {
		predefinedClasses = buildPredefined()
	})
	return slices.Clone(predefinedClasses)
}

func buildPredefined() []*Class {
	r := newRegistry(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	define := func(b *ClassBuilder, id types.ClassID, kind types.Kind, super *Class) *Class {
		c, err := r.defineLocked(b, id, kind, super)
		if err != nil {
			panic(fmt.Sprintf("predefined class %s: %v", b.name, err))
		}
		return c
	}

	for k := types.KindVoid; k < types.KindCount; k++ {
		mod := ModFinal
		if k == types.KindObject {
			mod = ModDefault
		}
		b := NewClassBuilder(k.String()).Modifier(mod).Constructor(ScopePrivate, nil)
		define(b, k.ClassID(), k, nil)
	}
	object := r.byName[types.KindObject.String()]

	define(exceptionClass(), ClassException, types.KindObject, object)
	define(attributeClass(), ClassAttribute, types.KindObject, object)
	define(typeInfoClass(), ClassTypeInfo, types.KindObject, object)
	memberInfo := define(memberInfoClass(), ClassMemberInfo, types.KindObject, object)
	define(infoClass("FieldInfo", "sharedValue"), ClassFieldInfo, types.KindObject, memberInfo)
	define(propertyInfoClass(), ClassPropertyInfo, types.KindObject, memberInfo)
	define(infoClass("MethodInfo", "parameters"), ClassMethodInfo, types.KindObject, memberInfo)
	define(infoClass("EventInfo", "parameters"), ClassEventInfo, types.KindObject, memberInfo)
	define(infoClass("ParameterInfo", "name", "byRef", "vaList", "defaultValue", "canBeEmpty", "attributes"),
		ClassParameterInfo, types.KindObject, object)

	return r.order
}

func readOnly(names ...string) []*Property {
	props := make([]*Property, len(names))
	for i, name := range names {
		props[i] = NewProperty(name, ScopePublic, ModDefault, AccessRead)
	}
	return props
}

func toStringMethod() *Method {
	return NewMethod("toString", ScopePublic, ModDefault, &types.Function{
		Params: []types.Parameter{{Name: "format", Default: types.NewStr("")}},
		Body:   Script("return this.name;"),
	})
}

func exceptionClass() *ClassBuilder {
	ctor := &types.Function{
		Params: []types.Parameter{{Name: "name"}, {Name: "msg", Default: types.Void}},
		Body: Script(`if (msg === null) { this.__name = 'Exception'; this.__message = name; }
else { this.__name = ?name; this.__message = msg; }`),
	}
	return NewClassBuilder("Exception").
		Constructor(ScopePublic, ctor).
		Property(readOnly("name", "message", "source", "line")...).
		Method(toStringMethod())
}

func attributeClass() *ClassBuilder {
	ctor := &types.Function{
		Params: []types.Parameter{{Name: "name"}},
		Body:   Script("this.__name = ?name;"),
	}
	return NewClassBuilder("Attribute").
		Modifier(ModFinal).
		Constructor(ScopePublic, ctor).
		Property(readOnly("name")...).
		Method(toStringMethod())
}

// typeEvaluator reads a class name from field and resolves it to its TypeInfo
func typeEvaluator(field string) Script {
	return Script(fmt.Sprintf("var __super = this.%s; if (__super == null) return null; return eval('typeof(' + __super + ')');", field))
}

func typeInfoClass() *ClassBuilder {
	return NewClassBuilder("TypeInfo").
		Modifier(ModFinal).
		Constructor(ScopePrivate, nil).
		Field(NewField("__superType", ScopePrivate, ModDefault, nil)).
		Property(NewAccessorProperty("superType", ScopePublic, ModDefault, typeEvaluator("__superType"), nil)).
		Property(readOnly("modifier", "name", "constructor", "indexer", "fields", "properties", "methods", "events", "attributes")...).
		Method(toStringMethod())
}

func memberInfoClass() *ClassBuilder {
	return NewClassBuilder("MemberInfo").
		Constructor(ScopePrivate, nil).
		Field(NewField("__holder", ScopePrivate, ModDefault, nil)).
		Property(readOnly("scope", "modifier", "name")...).
		Property(
			NewAccessorProperty("fullName", ScopePublic, ModDefault, Script("return this.holder.name + '.' + this.name;"), nil),
			NewAccessorProperty("holder", ScopePublic, ModDefault, typeEvaluator("__holder"), nil),
		).
		Property(readOnly("attributes")...)
}

func propertyInfoClass() *ClassBuilder {
	return NewClassBuilder("PropertyInfo").
		Modifier(ModFinal).
		Constructor(ScopePrivate, nil).
		Property(readOnly("reader", "writer")...).
		Property(
			NewAccessorProperty("canRead", ScopePublic, ModDefault, Script("return this.reader !== null;"), nil),
			NewAccessorProperty("canWrite", ScopePublic, ModDefault, Script("return this.writer !== null;"), nil),
		)
}

// infoClass declares a final reflection class made of read-only properties
func infoClass(name string, props ...string) *ClassBuilder {
	return NewClassBuilder(name).
		Modifier(ModFinal).
		Constructor(ScopePrivate, nil).
		Property(readOnly(props...)...)
}
