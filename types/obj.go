package types

import (
	"fmt"
	"slices"
	"strings"
)

// ClassRef is the view of a class an object instance needs.
// oop.Class implements it; PlainClass covers anonymous objects.
type ClassRef interface {
	ID() ClassID
	Name() string
	// FieldVisible reports whether a field shows up when the object is rendered
	FieldVisible(name string) bool
}

// PlainClass is the ClassRef of objects built without declared metadata
type PlainClass struct {
	ClassID   ClassID
	ClassName string
}

func (p PlainClass) ID() ClassID { return p.ClassID }

func (p PlainClass) Name() string { return p.ClassName }

func (p PlainClass) FieldVisible(name string) bool { return !strings.HasPrefix(name, "__") }

// ObjectClass is used for anonymous objects; its ID is the one oop assigns to "object"
var ObjectClass ClassRef = PlainClass{ClassID: KindObject.ClassID(), ClassName: "object"}

// ObjValue is an instance of a class: a class handle plus a dynamically
// extensible field map. Objects are compared by identity.
type ObjValue struct {
	class  ClassRef
	fields map[string]Value
	order  []string
}

// NewObject creates an instance of class with no fields
func NewObject(class ClassRef) *ObjValue {
	if class == nil {
		class = ObjectClass
	}
	return &ObjValue{class: class, fields: make(map[string]Value)}
}

// ClassRef returns the class handle of the instance
func (o *ObjValue) ClassRef() ClassRef { return o.class }

// Field reads a field
func (o *ObjValue) Field(name string) (Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// SetField creates or overwrites a field
func (o *ObjValue) SetField(name string, v Value) {
	if _, ok := o.fields[name]; !ok {
		o.order = append(o.order, name)
	}
	o.fields[name] = v
}

// FieldNames returns field names in creation order
func (o *ObjValue) FieldNames() []string { return slices.Clone(o.order) }

func (o *ObjValue) Kind() Kind { return KindObject }

func (o *ObjValue) Class() ClassID { return o.class.ID() }

// String renders <Class {a = 1, b = 2}> listing visible fields only
func (o *ObjValue) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<%s {", o.class.Name())
	first := true
	for _, name := range o.order {
		if !o.class.FieldVisible(name) {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%s = %s", name, o.fields[name])
	}
	sb.WriteString("}>")
	return sb.String()
}

// Clone copies the instance with cloned field values
func (o *ObjValue) Clone() Value {
	c := &ObjValue{class: o.class, fields: make(map[string]Value, len(o.fields)), order: slices.Clone(o.order)}
	for name, v := range o.fields {
		c.fields[name] = v.Clone()
	}
	return c
}

func (o *ObjValue) IsEmpty() bool { return false }

func (o *ObjValue) sealed() {}

func (o *ObjValue) equal(other Value) (bool, error) {
	x, ok := other.(*ObjValue)
	if !ok {
		return false, castError(other, o.class.Name())
	}
	return o == x, nil
}

func (o *ObjValue) compare(other Value) (int, error) {
	if x, ok := other.(*ObjValue); ok && x == o {
		return 0, nil
	}
	return 0, Errorf(E_CAST, "%s instances are not ordered", o.class.Name())
}

// getProperty reads a field; an absent field reads as Void
func (o *ObjValue) getProperty(name string) (Value, error) {
	if v, ok := o.fields[name]; ok {
		return v, nil
	}
	return Void, nil
}

func (o *ObjValue) setProperty(name string, v Value) error {
	o.SetField(name, v)
	return nil
}
