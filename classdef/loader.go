package classdef

import (
	"addy/oop"
	"addy/types"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse reads a document. Unknown keys are rejected; an empty document
// declares nothing.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and parses the document at path
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load defines the classes declared in the file at path
func Load(r *oop.Registry, path string) ([]*oop.Class, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	classes, err := doc.Define(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return classes, nil
}

// Define registers every class of the document in r and returns them in
// declaration order. A class may extend a class declared later in the
// document; the superclass is defined first.
func (d *Document) Define(r *oop.Registry) ([]*oop.Class, error) {
	decls := make(map[string]*ClassDecl, len(d.Classes))
	for i := range d.Classes {
		c := &d.Classes[i]
		if _, dup := decls[c.Name]; dup {
			return nil, types.Errorf(types.E_DUPLICATE, "class %s is declared twice", c.Name)
		}
		decls[c.Name] = c
	}

	defined := make(map[string]*oop.Class, len(decls))
	visiting := make(map[string]bool)

	var define func(c *ClassDecl) (*oop.Class, error)
	define = func(c *ClassDecl) (*oop.Class, error) {
		if cls, ok := defined[c.Name]; ok {
			return cls, nil
		}
		if visiting[c.Name] {
			return nil, types.Errorf(types.E_ARGS, "class %s inherits from itself", c.Name)
		}
		visiting[c.Name] = true
		defer delete(visiting, c.Name)

		var super *oop.Class
		if c.Extends != "" {
			if parent, ok := decls[c.Extends]; ok {
				s, err := define(parent)
				if err != nil {
					return nil, err
				}
				super = s
			} else if s, ok := r.Lookup(c.Extends); ok {
				super = s
			} else {
				return nil, types.Errorf(types.E_MEMBERNF, "class %s extends unknown class %s", c.Name, c.Extends)
			}
		}

		b, err := c.Builder(r, super)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		cls, err := r.Define(b)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		defined[c.Name] = cls
		return cls, nil
	}

	classes := make([]*oop.Class, 0, len(d.Classes))
	for i := range d.Classes {
		cls, err := define(&d.Classes[i])
		if err != nil {
			return nil, err
		}
		classes = append(classes, cls)
	}
	return classes, nil
}

// Builder converts the declaration to a class builder. A nil super means
// object.
func (c *ClassDecl) Builder(r *oop.Registry, super *oop.Class) (*oop.ClassBuilder, error) {
	mod, err := parseModifier(c.Modifier)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeAll(c.Attributes, r)
	if err != nil {
		return nil, fmt.Errorf("attributes: %w", err)
	}

	b := oop.NewClassBuilder(c.Name).Modifier(mod).Attributes(attrs...)
	if super != nil {
		b.Extends(super)
	}

	if c.Constructor != nil {
		scope, err := parseScope(c.Constructor.Scope)
		if err != nil {
			return nil, fmt.Errorf("constructor: %w", err)
		}
		fn, err := c.Constructor.Function(r)
		if err != nil {
			return nil, fmt.Errorf("constructor: %w", err)
		}
		ctorAttrs, err := decodeAll(c.Constructor.Attributes, r)
		if err != nil {
			return nil, fmt.Errorf("constructor: %w", err)
		}
		b.Constructor(scope, fn, ctorAttrs...)
	}

	if c.Indexer != nil {
		decl := *c.Indexer
		decl.Name = oop.IndexerName
		p, err := decl.Property(r)
		if err != nil {
			return nil, fmt.Errorf("indexer: %w", err)
		}
		b.Indexer(p)
	}

	for _, f := range c.Fields {
		field, err := f.Field(r)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		b.Field(field)
	}
	for _, p := range c.Properties {
		prop, err := p.Property(r)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		b.Property(prop)
	}
	for _, m := range c.Methods {
		method, err := m.Method(r)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		b.Method(method)
	}
	for _, e := range c.Events {
		event, err := e.Event(r)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.Name, err)
		}
		b.Event(event)
	}
	return b, b.Err()
}

// Function builds the function. An empty body stays nil.
func (f *FunctionDecl) Function(r *oop.Registry) (*types.Function, error) {
	params, err := parameters(f.Params, r)
	if err != nil {
		return nil, err
	}
	return &types.Function{Name: f.Name, Params: params, Body: script(f.Body)}, nil
}

// Method builds the method. A method without body is abstract.
func (f *FunctionDecl) Method(r *oop.Registry) (*oop.Method, error) {
	scope, err := parseScope(f.Scope)
	if err != nil {
		return nil, err
	}
	mod, err := parseModifier(f.Modifier)
	if err != nil {
		return nil, err
	}
	fn, err := f.Function(r)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeAll(f.Attributes, r)
	if err != nil {
		return nil, err
	}
	return oop.NewMethod(f.Name, scope, mod, fn, attrs...), nil
}

// Field builds the field with its initializer
func (f *FieldDecl) Field(r *oop.Registry) (*oop.Field, error) {
	scope, err := parseScope(f.Scope)
	if err != nil {
		return nil, err
	}
	mod, err := parseModifier(f.Modifier)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeAll(f.Attributes, r)
	if err != nil {
		return nil, err
	}

	var init oop.Initializer
	count := 0
	if !f.Value.IsZero() {
		v, err := f.Value.Decode(r)
		if err != nil {
			return nil, err
		}
		init = oop.Literal{Value: v}
		count++
	}
	if f.Expr != "" {
		init = oop.Expr{Body: oop.Script(f.Expr)}
		count++
	}
	if f.Set {
		init = oop.EmptySet{}
		count++
	}
	if count > 1 {
		return nil, types.Errorf(types.E_ARGS, "field %s has more than one initializer", f.Name)
	}
	return oop.NewField(f.Name, scope, mod, init, attrs...), nil
}

// Property builds an accessor property when a reader or writer body is
// given, an auto property otherwise
func (p *PropertyDecl) Property(r *oop.Registry) (*oop.Property, error) {
	scope, err := parseScope(p.Scope)
	if err != nil {
		return nil, err
	}
	mod, err := parseModifier(p.Modifier)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeAll(p.Attributes, r)
	if err != nil {
		return nil, err
	}

	if p.Reader != "" || p.Writer != "" {
		if p.Access != "" {
			return nil, types.Errorf(types.E_ARGS, "property %s mixes access with accessor bodies", p.Name)
		}
		return oop.NewAccessorProperty(p.Name, scope, mod, script(p.Reader), script(p.Writer), attrs...), nil
	}

	var access oop.PropertyAccess
	switch p.Access {
	case "", "readwrite":
		access = oop.AccessReadWrite
	case "read":
		access = oop.AccessRead
	case "write":
		access = oop.AccessWrite
	default:
		return nil, types.Errorf(types.E_ARGS, "unknown property access %q", p.Access)
	}
	return oop.NewProperty(p.Name, scope, mod, access, attrs...), nil
}

// Event builds the event
func (e *EventDecl) Event(r *oop.Registry) (*oop.Event, error) {
	scope, err := parseScope(e.Scope)
	if err != nil {
		return nil, err
	}
	mod, err := parseModifier(e.Modifier)
	if err != nil {
		return nil, err
	}
	params, err := parameters(e.Params, r)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeAll(e.Attributes, r)
	if err != nil {
		return nil, err
	}
	return oop.NewEvent(e.Name, scope, mod, params, attrs...), nil
}

func parameters(decls []ParamDecl, r *oop.Registry) ([]types.Parameter, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	params := make([]types.Parameter, len(decls))
	for i, d := range decls {
		params[i] = types.Parameter{Name: d.Name, ByRef: d.ByRef, VaList: d.VaList, CanBeEmpty: d.CanBeEmpty}
		if d.Default.IsZero() {
			continue
		}
		v, err := d.Default.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", d.Name, err)
		}
		params[i].Default = v
	}
	return params, nil
}

func decodeAll(literals []Value, r *oop.Registry) ([]types.Value, error) {
	if len(literals) == 0 {
		return nil, nil
	}
	values := make([]types.Value, len(literals))
	for i, lit := range literals {
		v, err := lit.Decode(r)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func script(src string) types.Body {
	if src == "" {
		return nil
	}
	return oop.Script(src)
}

// parseScope reads a scope keyword; members are public unless told otherwise
func parseScope(s string) (oop.Scope, error) {
	if s == "" {
		return oop.ScopePublic, nil
	}
	scope, ok := oop.ParseScope(s)
	if !ok {
		return scope, types.Errorf(types.E_ARGS, "unknown scope %q", s)
	}
	return scope, nil
}

func parseModifier(s string) (oop.Modifier, error) {
	mod, ok := oop.ParseModifier(s)
	if !ok {
		return mod, types.Errorf(types.E_ARGS, "unknown modifier %q", s)
	}
	return mod, nil
}
