package conformance

import "addy/classdef"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description,omitempty"`
	Classes     []classdef.ClassDecl `yaml:"classes,omitempty"` // defined in a fresh registry per suite
	Tests       []TestCase           `yaml:"tests"`
}

// Step is one operation on the value model
type Step struct {
	Op       string           `yaml:"op"`                 // binary, unary, convert, get_property...
	Operator string           `yaml:"operator,omitempty"` // binary and unary
	Kind     string           `yaml:"kind,omitempty"`     // convert
	Property string           `yaml:"property,omitempty"` // get_property, set_property
	Class    string           `yaml:"class,omitempty"`    // member, inherits, call, new
	Member   string           `yaml:"member,omitempty"`   // member, call
	Super    string           `yaml:"super,omitempty"`    // inherits
	Declared bool             `yaml:"declared,omitempty"` // member: skip inherited members
	Args     []classdef.Value `yaml:"args,omitempty"`
}

// TestCase represents a single test within a suite. When Subject is set
// it is decoded once and passed as the first operand of Before and of
// the test's own step, so the steps share one value.
type TestCase struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Skip        any            `yaml:"skip,omitempty"` // bool or string
	Subject     classdef.Value `yaml:"subject,omitempty"`
	Before      []Step         `yaml:"before,omitempty"`
	Step        `yaml:",inline"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Value  classdef.Value `yaml:"value,omitempty"`  // same kind and Equals; objects by rendering
	Error  string         `yaml:"error,omitempty"`  // E_CAST, E_RANGE, etc.
	Kind   string         `yaml:"kind,omitempty"`   // int, string, list, etc.
	String *string        `yaml:"string,omitempty"` // exact rendering
	Match  string         `yaml:"match,omitempty"`  // regex on the rendering
}

// IsEmpty reports whether nothing is expected
func (e *Expectation) IsEmpty() bool {
	return e.Value.IsZero() && e.Error == "" && e.Kind == "" && e.String == nil && e.Match == ""
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
	case string:
		return true, v
	}
	return false, ""
}
