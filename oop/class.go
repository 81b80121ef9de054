package oop

import (
	"addy/types"
	"slices"
	"strings"
)

// Class describes a primitive type or a user-defined class.
// Classes are built by a Registry and never change afterwards, except for
// the SharedValue cells of their static fields.
//
// The superclass is held by pointer since the chain never outlives the
// registry that built it; members point back at their holder by ClassID.
type Class struct {
	id       types.ClassID
	name     string
	kind     types.Kind
	modifier Modifier
	super    *Class
	attrs    []types.Value

	ctor       *Method
	indexer    *Property
	fields     MemberSet[*Field]
	properties MemberSet[*Property]
	methods    MemberSet[*Method]
	events     MemberSet[*Event]

	// names holds every declared field, property, method and event name
	names map[string]MemberKind
}

func (c *Class) ID() types.ClassID { return c.id }
func (c *Class) Name() string { return c.name }
func (c *Class) String() string { return c.name }
func (c *Class) Kind() types.Kind { return c.kind }
func (c *Class) Modifier() Modifier { return c.modifier }
func (c *Class) Super() *Class { return c.super }
func (c *Class) Constructor() *Method { return c.ctor }
func (c *Class) Indexer() *Property { return c.indexer }
func (c *Class) IsPrimitive() bool { return c.kind != types.KindObject }
func (c *Class) IsAbstract() bool { return c.modifier == ModAbstract }
func (c *Class) IsFinal() bool { return c.modifier == ModFinal }
func (c *Class) Attributes() []types.Value { return slices.Clone(c.attrs) }

// Fields returns the declared fields, synthesized ones included
func (c *Class) Fields() *MemberSet[*Field] { return &c.fields }

// Properties returns the declared properties
func (c *Class) Properties() *MemberSet[*Property] { return &c.properties }

// Methods returns the declared methods, accessors included
func (c *Class) Methods() *MemberSet[*Method] { return &c.methods }

// Events returns the declared events
func (c *Class) Events() *MemberSet[*Event] { return &c.events }

// FieldVisible reports whether an instance field is shown when the
// instance is rendered. Declared fields show when public; fields added at
// run time show unless their name starts with "__".
func (c *Class) FieldVisible(name string) bool {
	if f, ok := c.Field(name); ok {
		return f.scope == ScopePublic && !strings.HasPrefix(name, "__")
	}
	return !strings.HasPrefix(name, "__")
}

// GetDeclaredMember finds a member declared by this class itself. The
// constructor is found under the class name and the indexer under
// IndexerName.
func (c *Class) GetDeclaredMember(name string, mask MemberKind) (Member, bool) {
	if mask.Has(MemberConstructor) && name == c.name {
		return c.ctor, true
	}
	if mask.Has(MemberIndexer) && name == IndexerName && c.indexer != nil {
		return c.indexer, true
	}
	if mask.Has(MemberField) {
		if f, ok := c.fields.Get(name); ok {
			return f, true
		}
	}
	if mask.Has(MemberProperty) {
		if p, ok := c.properties.Get(name); ok {
			return p, true
		}
	}
	if mask.Has(MemberMethod) {
		if m, ok := c.methods.Get(name); ok {
			return m, true
		}
	}
	if mask.Has(MemberEvent) {
		if e, ok := c.events.Get(name); ok {
			return e, true
		}
	}
	return nil, false
}

// GetMember finds a member in this class or the nearest superclass
// declaring it. A derived declaration hides the base one.
func (c *Class) GetMember(name string, mask MemberKind) (Member, bool) {
	for k := c; k != nil; k = k.super {
		if m, ok := k.GetDeclaredMember(name, mask); ok {
			return m, true
		}
	}
	return nil, false
}

// GetDeclaredMembers lists the members declared by this class, in the
// order constructor, indexer, fields, properties, methods, events
func (c *Class) GetDeclaredMembers(mask MemberKind) []Member {
	var members []Member
	if mask.Has(MemberConstructor) {
		members = append(members, c.ctor)
	}
	if mask.Has(MemberIndexer) && c.indexer != nil {
		members = append(members, c.indexer)
	}
	if mask.Has(MemberField) {
		for f := range c.fields.All() {
			members = append(members, f)
		}
	}
	if mask.Has(MemberProperty) {
		for p := range c.properties.All() {
			members = append(members, p)
		}
	}
	if mask.Has(MemberMethod) {
		for m := range c.methods.All() {
			members = append(members, m)
		}
	}
	if mask.Has(MemberEvent) {
		for e := range c.events.All() {
			members = append(members, e)
		}
	}
	return members
}

// GetMembers lists the members visible on this class: its own
// constructor, then the declared members of each class up the chain,
// skipping names already hidden by a subclass
func (c *Class) GetMembers(mask MemberKind) []Member {
	var members []Member
	if mask.Has(MemberConstructor) {
		members = append(members, c.ctor)
	}
	seen := make(map[string]bool)
	for k := c; k != nil; k = k.super {
		for _, m := range k.GetDeclaredMembers(mask &^ MemberConstructor) {
			if seen[m.Name()] {
				continue
			}
			seen[m.Name()] = true
			members = append(members, m)
		}
	}
	return members
}

// Field finds a field up the superclass chain
func (c *Class) Field(name string) (*Field, bool) {
	for k := c; k != nil; k = k.super {
		if f, ok := k.fields.Get(name); ok {
			return f, true
		}
	}
	return nil, false
}

// Property finds a property up the superclass chain
func (c *Class) Property(name string) (*Property, bool) {
	for k := c; k != nil; k = k.super {
		if p, ok := k.properties.Get(name); ok {
			return p, true
		}
	}
	return nil, false
}

// Method finds a method up the superclass chain
func (c *Class) Method(name string) (*Method, bool) {
	for k := c; k != nil; k = k.super {
		if m, ok := k.methods.Get(name); ok {
			return m, true
		}
	}
	return nil, false
}

// Event finds an event up the superclass chain
func (c *Class) Event(name string) (*Event, bool) {
	for k := c; k != nil; k = k.super {
		if e, ok := k.events.Get(name); ok {
			return e, true
		}
	}
	return nil, false
}

// Inherits reports whether other is a strict ancestor of c
func (c *Class) Inherits(other *Class) bool {
	if other == nil {
		return false
	}
	for k := c.super; k != nil; k = k.super {
		if k == other {
			return true
		}
	}
	return false
}

// chain returns the classes from the root down to c
func (c *Class) chain() []*Class {
	var classes []*Class
	for k := c; k != nil; k = k.super {
		classes = append(classes, k)
	}
	slices.Reverse(classes)
	return classes
}

// NewInstance creates an object of class c with its instance fields set
// to their initial values. Base classes are initialised first so that a
// derived field initializer wins.
func (c *Class) NewInstance() (*types.ObjValue, error) {
	if c.IsPrimitive() {
		return nil, types.Errorf(types.E_CAST, "cannot instantiate primitive class %s", c.name)
	}
	if c.IsAbstract() {
		return nil, types.Errorf(types.E_OPERATOR, "cannot instantiate abstract class %s", c.name)
	}
	obj := types.NewObject(c)
	for _, k := range c.chain() {
		for f := range k.fields.All() {
			if f.IsStatic() {
				continue
			}
			obj.SetField(f.name, f.Initial())
		}
	}
	return obj, nil
}
