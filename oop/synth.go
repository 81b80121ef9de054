package oop

import (
	"addy/types"
	"log/slog"
)

// Bodies of synthesized members. Registry.CallSynthesized runs them; any
// other body is left to the evaluator.

// FieldGet returns an instance field of the receiver
type FieldGet struct{ Field string }

// FieldSet stores the single argument in an instance field of the receiver
type FieldSet struct{ Field string }

// StaticFieldGet returns the shared value of a static field of Class
type StaticFieldGet struct{ Class, Field string }

// StaticFieldSet stores the single argument in a static field of Class
type StaticFieldSet struct{ Class, Field string }

// HandlerAdd adds the single argument to the handler set in Field
type HandlerAdd struct{ Field string }

// HandlerRemove removes the single argument from the handler set in Field
type HandlerRemove struct{ Field string }

// HandlerTrigger calls every handler in Field, in subscription order,
// with the trigger arguments
type HandlerTrigger struct{ Field string }

// TypeOf returns the TypeInfo describing Class
type TypeOf struct{ Class string }

// Empty does nothing and returns Void
type Empty struct{}

// Script is the source text of a predefined scripted member
type Script string

func (FieldGet) synthesized()       {}
func (FieldSet) synthesized()       {}
func (StaticFieldGet) synthesized() {}
func (StaticFieldSet) synthesized() {}
func (HandlerAdd) synthesized()     {}
func (HandlerRemove) synthesized()  {}
func (HandlerTrigger) synthesized() {}
func (TypeOf) synthesized()         {}
func (Empty) synthesized()          {}

type synthesizedBody interface {
	synthesized()
}

// IsSynthesized reports whether body can be run without an evaluator
func IsSynthesized(body types.Body) bool {
	_, ok := body.(synthesizedBody)
	return ok
}

// assemble turns a builder into a frozen class: members are bound to
// the class, derived members are synthesized and static fields get their
// shared storage. On failure the builder's members are released again.
func assemble(id types.ClassID, kind types.Kind, super *Class, b *ClassBuilder, logger *slog.Logger) (*Class, error) {
	c := &Class{
		id:       id,
		name:     b.name,
		kind:     kind,
		modifier: b.modifier,
		super:    super,
		attrs:    b.attrs,
		names:    make(map[string]MemberKind),
	}
	a := &assembler{class: c, logger: logger}
	if err := a.build(b); err != nil {
		a.rollback()
		return nil, err
	}
	return c, nil
}

type assembler struct {
	class  *Class
	logger *slog.Logger
	undo   []func()
}

func (a *assembler) build(b *ClassBuilder) error {
	c := a.class
	ctor := b.ctor
	if ctor == nil {
		ctor = newConstructor(c.name, ScopePublic, nil)
		a.synthesized(ctor)
	}
	if err := a.bind(ctor); err != nil {
		return err
	}
	c.ctor = ctor

	if b.indexer != nil {
		if err := a.property(b.indexer); err != nil {
			return err
		}
	}
	for _, f := range b.fields {
		if err := a.field(f); err != nil {
			return err
		}
	}
	for _, p := range b.properties {
		if err := a.property(p); err != nil {
			return err
		}
	}
	for _, m := range b.methods {
		if err := a.method(m); err != nil {
			return err
		}
	}
	for _, e := range b.events {
		if err := a.event(e); err != nil {
			return err
		}
	}

	reflector := NewAccessorProperty("type", ScopePublic, ModFinal, TypeOf{Class: c.name}, nil)
	if err := a.property(reflector); err != nil {
		return err
	}
	a.synthesized(reflector)
	return nil
}

// bind attaches m to the class under construction
func (a *assembler) bind(m Member) error {
	base := m.base()
	if err := base.bind(a.class); err != nil {
		return err
	}
	a.undo = append(a.undo, base.unbind)
	return nil
}

// rollback releases everything bound or filled in so far, newest first
func (a *assembler) rollback() {
	for i := len(a.undo) - 1; i >= 0; i-- {
		a.undo[i]()
	}
	a.undo = nil
}

func (a *assembler) synthesized(m Member) {
	a.logger.Debug("synthesized member", "class", a.class.name, "member", m.Name(), "kind", m.Kind().String())
}

// declare reserves the member name in the class
func (a *assembler) declare(m Member) error {
	if prev, exists := a.class.names[m.Name()]; exists {
		return types.Errorf(types.E_DUPLICATE, "class %s already declares %s %s", a.class.name, prev, m.Name())
	}
	if err := a.bind(m); err != nil {
		return err
	}
	a.class.names[m.Name()] = m.Kind()
	return nil
}

func (a *assembler) field(f *Field) error {
	if err := a.declare(f); err != nil {
		return err
	}
	if f.IsStatic() {
		f.shared = NewSharedValue(f.Initial())
	}
	return a.class.fields.add(f)
}

func (a *assembler) method(m *Method) error {
	if err := a.declare(m); err != nil {
		return err
	}
	return a.class.methods.add(m)
}

func (a *assembler) property(p *Property) error {
	if p.IsIndexer() {
		if a.class.indexer != nil {
			return types.Errorf(types.E_DUPLICATE, "class %s already has an indexer", a.class.name)
		}
		if err := a.bind(p); err != nil {
			return err
		}
		a.class.indexer = p
	} else {
		if err := a.declare(p); err != nil {
			return err
		}
		if err := a.class.properties.add(p); err != nil {
			return err
		}
	}

	if p.auto {
		a.synthesizeAccessors(p)
	}
	for _, acc := range []*Method{p.reader, p.writer} {
		if acc == nil {
			continue
		}
		if err := a.method(acc); err != nil {
			return err
		}
	}

	if !p.auto {
		return nil
	}
	backing := NewField(BackingFieldName(p.name), ScopePrivate, storageModifier(p.modifier), nil)
	if err := a.field(backing); err != nil {
		return err
	}
	a.synthesized(backing)
	return nil
}

// synthesizeAccessors fills in the bodies of an auto property's accessors
func (a *assembler) synthesizeAccessors(p *Property) {
	backing := BackingFieldName(p.name)
	if p.reader != nil && p.reader.fn.Body == nil {
		reader := p.reader
		a.undo = append(a.undo, func() { reader.fn.Body = nil })
		if p.IsStatic() {
			p.reader.fn.Body = StaticFieldGet{Class: a.class.name, Field: backing}
		} else {
			p.reader.fn.Body = FieldGet{Field: backing}
		}
		a.synthesized(p.reader)
	}
	if p.writer != nil && p.writer.fn.Body == nil {
		writer := p.writer
		a.undo = append(a.undo, func() { writer.fn.Body = nil })
		if p.IsStatic() {
			p.writer.fn.Body = StaticFieldSet{Class: a.class.name, Field: backing}
		} else {
			p.writer.fn.Body = FieldSet{Field: backing}
		}
		a.synthesized(p.writer)
	}
}

func (a *assembler) event(e *Event) error {
	if err := a.declare(e); err != nil {
		return err
	}
	if err := a.class.events.add(e); err != nil {
		return err
	}

	handlers := HandlerSetName(e.name)
	field := NewField(handlers, ScopePrivate, storageModifier(e.modifier), EmptySet{})
	if err := a.field(field); err != nil {
		return err
	}
	a.synthesized(field)

	handlerParam := []types.Parameter{{Name: "handler"}}
	methods := []*Method{
		NewMethod(AddHandlerName(e.name), e.scope, e.modifier,
			&types.Function{Params: handlerParam, Body: HandlerAdd{Field: handlers}}),
		NewMethod(RemoveHandlerName(e.name), e.scope, e.modifier,
			&types.Function{Params: handlerParam, Body: HandlerRemove{Field: handlers}}),
		NewMethod(TriggerName(e.name), ScopePrivate, e.modifier,
			&types.Function{Params: e.params, Body: HandlerTrigger{Field: handlers}}),
	}
	for _, m := range methods {
		if err := a.method(m); err != nil {
			return err
		}
		a.synthesized(m)
	}
	return nil
}
