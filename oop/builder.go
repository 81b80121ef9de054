package oop

import (
	"addy/types"
	"slices"
)

// ClassBuilder collects the declaration of a class for Registry.Define.
// The first mistake is recorded and every later call is ignored; Define
// then reports it. A builder is consumed by a successful Define; a failed
// Define leaves its members unbound so they can be declared again.
type ClassBuilder struct {
	name     string
	modifier Modifier
	super    *Class
	attrs    []types.Value

	ctor       *Method
	indexer    *Property
	fields     []*Field
	properties []*Property
	methods    []*Method
	events     []*Event

	err error
}

// NewClassBuilder starts the declaration of class name
func NewClassBuilder(name string) *ClassBuilder {
	b := &ClassBuilder{name: name}
	if name == "" {
		b.fail(types.Errorf(types.E_ARGS, "class name is empty"))
	}
	return b
}

func (b *ClassBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error recorded by the builder
func (b *ClassBuilder) Err() error { return b.err }

// Name returns the name of the class being declared
func (b *ClassBuilder) Name() string { return b.name }

// Modifier sets the class modifier (final, abstract...)
func (b *ClassBuilder) Modifier(mod Modifier) *ClassBuilder {
	if b.err != nil {
		return b
	}
	if mod == ModStatic {
		b.fail(types.Errorf(types.E_ARGS, "class %s cannot be static", b.name))
		return b
	}
	b.modifier = mod
	return b
}

// Extends sets the superclass. Without it the class derives from object.
func (b *ClassBuilder) Extends(super *Class) *ClassBuilder {
	if b.err != nil {
		return b
	}
	switch {
	case super == nil:
		b.fail(types.Errorf(types.E_ARGS, "class %s extends nothing", b.name))
	case super.IsFinal():
		b.fail(types.Errorf(types.E_ARGS, "class %s cannot extend final class %s", b.name, super.name))
	case super.IsPrimitive():
		b.fail(types.Errorf(types.E_ARGS, "class %s cannot extend primitive class %s", b.name, super.name))
	default:
		b.super = super
	}
	return b
}

// Attributes attaches attribute values to the class
func (b *ClassBuilder) Attributes(attrs ...types.Value) *ClassBuilder {
	if b.err == nil {
		b.attrs = append(b.attrs, attrs...)
	}
	return b
}

// Constructor declares the constructor. A nil function, or a function
// without a body, does nothing when called.
func (b *ClassBuilder) Constructor(scope Scope, fn *types.Function, attrs ...types.Value) *ClassBuilder {
	if b.err != nil {
		return b
	}
	if b.ctor != nil {
		b.fail(types.Errorf(types.E_DUPLICATE, "class %s already has a constructor", b.name))
		return b
	}
	b.ctor = newConstructor(b.name, scope, fn, attrs...)
	return b
}

func newConstructor(className string, scope Scope, fn *types.Function, attrs ...types.Value) *Method {
	f := types.Function{Body: Empty{}}
	if fn != nil {
		f = *fn
		if f.Body == nil {
			f.Body = Empty{}
		}
	}
	m := NewMethod(className, scope, ModDefault, &f, attrs...)
	m.ctor = true
	return m
}

// Indexer declares the indexer, a property named IndexerName
func (b *ClassBuilder) Indexer(p *Property) *ClassBuilder {
	if b.err != nil {
		return b
	}
	switch {
	case p == nil || !p.IsIndexer():
		b.fail(types.Errorf(types.E_ARGS, "indexer of class %s must be named %s", b.name, IndexerName))
	case b.indexer != nil:
		b.fail(types.Errorf(types.E_DUPLICATE, "class %s already has an indexer", b.name))
	default:
		b.indexer = p
	}
	return b
}

// Field declares fields
func (b *ClassBuilder) Field(fields ...*Field) *ClassBuilder {
	if b.err != nil {
		return b
	}
	if slices.Contains(fields, nil) {
		b.fail(types.Errorf(types.E_ARGS, "nil field in class %s", b.name))
		return b
	}
	b.fields = append(b.fields, fields...)
	return b
}

// Property declares properties. The indexer goes through Indexer.
func (b *ClassBuilder) Property(props ...*Property) *ClassBuilder {
	if b.err != nil {
		return b
	}
	for _, p := range props {
		if p == nil {
			b.fail(types.Errorf(types.E_ARGS, "nil property in class %s", b.name))
			return b
		}
		if p.IsIndexer() {
			if b.Indexer(p); b.err != nil {
				return b
			}
			continue
		}
		b.properties = append(b.properties, p)
	}
	return b
}

// Method declares methods
func (b *ClassBuilder) Method(methods ...*Method) *ClassBuilder {
	if b.err != nil {
		return b
	}
	if slices.Contains(methods, nil) {
		b.fail(types.Errorf(types.E_ARGS, "nil method in class %s", b.name))
		return b
	}
	b.methods = append(b.methods, methods...)
	return b
}

// Event declares events
func (b *ClassBuilder) Event(events ...*Event) *ClassBuilder {
	if b.err != nil {
		return b
	}
	if slices.Contains(events, nil) {
		b.fail(types.Errorf(types.E_ARGS, "nil event in class %s", b.name))
		return b
	}
	b.events = append(b.events, events...)
	return b
}
