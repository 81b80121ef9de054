package classdef

// Document is a YAML file of class declarations
type Document struct {
	Classes []ClassDecl `yaml:"classes"`
}

// ClassDecl declares one class
type ClassDecl struct {
	Name        string         `yaml:"name"`
	Extends     string         `yaml:"extends,omitempty"`  // defaults to object
	Modifier    string         `yaml:"modifier,omitempty"` // final|abstract
	Attributes  []Value        `yaml:"attributes,omitempty"`
	Constructor *FunctionDecl  `yaml:"constructor,omitempty"`
	Indexer     *PropertyDecl  `yaml:"indexer,omitempty"`
	Fields      []FieldDecl    `yaml:"fields,omitempty"`
	Properties  []PropertyDecl `yaml:"properties,omitempty"`
	Methods     []FunctionDecl `yaml:"methods,omitempty"`
	Events      []EventDecl    `yaml:"events,omitempty"`
}

// ParamDecl declares a formal parameter
type ParamDecl struct {
	Name       string `yaml:"name"`
	ByRef      bool   `yaml:"byref,omitempty"`
	VaList     bool   `yaml:"params,omitempty"`
	Default    Value  `yaml:"default,omitempty"`
	CanBeEmpty bool   `yaml:"can_be_empty,omitempty"`
}

// FunctionDecl declares a method, a constructor or a function literal.
// The body is script source kept as an opaque oop.Script; a method
// without one is abstract.
type FunctionDecl struct {
	Name       string      `yaml:"name,omitempty"`
	Scope      string      `yaml:"scope,omitempty"`    // private|protected|public
	Modifier   string      `yaml:"modifier,omitempty"` // static|final|abstract
	Params     []ParamDecl `yaml:"params,omitempty"`
	Body       string      `yaml:"body,omitempty"`
	Attributes []Value     `yaml:"attributes,omitempty"`
}

// FieldDecl declares a field. At most one of Value and Expr is set; Set
// initialises the field with a fresh empty set.
type FieldDecl struct {
	Name       string  `yaml:"name"`
	Scope      string  `yaml:"scope,omitempty"`
	Modifier   string  `yaml:"modifier,omitempty"`
	Value      Value   `yaml:"value,omitempty"`
	Expr       string  `yaml:"expr,omitempty"`
	Set        bool    `yaml:"set,omitempty"`
	Attributes []Value `yaml:"attributes,omitempty"`
}

// PropertyDecl declares a property. With Reader or Writer it gets those
// scripted accessors, otherwise it is an auto property with the accessors
// listed in Access (read, write or readwrite, the default).
type PropertyDecl struct {
	Name       string  `yaml:"name,omitempty"`
	Scope      string  `yaml:"scope,omitempty"`
	Modifier   string  `yaml:"modifier,omitempty"`
	Access     string  `yaml:"access,omitempty"`
	Reader     string  `yaml:"reader,omitempty"`
	Writer     string  `yaml:"writer,omitempty"`
	Attributes []Value `yaml:"attributes,omitempty"`
}

// EventDecl declares an event
type EventDecl struct {
	Name       string      `yaml:"name"`
	Scope      string      `yaml:"scope,omitempty"`
	Modifier   string      `yaml:"modifier,omitempty"`
	Params     []ParamDecl `yaml:"params,omitempty"`
	Attributes []Value     `yaml:"attributes,omitempty"`
}
