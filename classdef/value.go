package classdef

import (
	"addy/oop"
	"addy/types"
	"encoding/base64"
	"fmt"
	"math"
	"math/big"

	"gopkg.in/yaml.v3"
)

// Value is a value literal inside a YAML document. Plain scalars stand for
// themselves (int, float, string, bool, null); every other value is a
// mapping with a single key naming its kind:
//
//	{long: "9223372036854775808"}  {rational: "5/2"}  {complex: [1, 2]}
//	{list: [1, {str: x}]}          {map: [[a, 1], [b, 2]]}
//	{object: {class: Point, fields: {x: 1, y: 2}}}
//
// Decoding is deferred until a registry is at hand, so object literals can
// name classes declared by the same document.
type Value struct {
	node *yaml.Node
}

// UnmarshalYAML keeps the node for Decode
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	v.node = n
	return nil
}

// IsZero reports whether the literal was absent. A YAML null never
// reaches UnmarshalYAML, so `key: ~` is absent too; write {void: ~} for an
// explicit Void.
func (v Value) IsZero() bool { return v.node == nil }

// Line returns the source line of the literal, or 0 when absent
func (v Value) Line() int {
	if v.node == nil {
		return 0
	}
	return v.node.Line
}

// Decode builds the value. r resolves the classes named by object
// literals; it may be nil when there are none. An absent literal is Void.
func (v Value) Decode(r *oop.Registry) (types.Value, error) {
	if v.node == nil {
		return types.Void, nil
	}
	return decodeNode(v.node, r)
}

// ParseValue decodes a literal written as YAML text
func ParseValue(src string, r *oop.Registry) (types.Value, error) {
	var v Value
	if err := yaml.Unmarshal([]byte(src), &v); err != nil {
		return nil, fmt.Errorf("parse value literal: %w", err)
	}
	return v.Decode(r)
}

func nodeError(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

func decodeNode(n *yaml.Node, r *oop.Registry) (types.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return decodeNode(n.Alias, r)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, nodeError(n, "value literal must have exactly one kind key, got %d", len(n.Content)/2)
		}
		kind, body := n.Content[0].Value, n.Content[1]
		v, err := decodeKind(kind, body, r)
		if err != nil {
			return nil, fmt.Errorf("%s literal: %w", kind, err)
		}
		return v, nil
	}
	return nil, nodeError(n, "a bare sequence is not a value literal; use {list: [...]}")
}

func decodeScalar(n *yaml.Node) (types.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return types.Void, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return types.NewBool(b), nil
	case "!!int":
		return decodeInteger(n)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return types.NewFloat(f), nil
	}
	return types.NewStr(n.Value), nil
}

// decodeInteger reads an integer scalar. Values beyond 32 bits become Long.
func decodeInteger(n *yaml.Node) (types.Value, error) {
	x, ok := new(big.Int).SetString(n.Value, 0)
	if !ok {
		return nil, nodeError(n, "invalid integer %q", n.Value)
	}
	if x.IsInt64() && x.Int64() >= math.MinInt32 && x.Int64() <= math.MaxInt32 {
		return types.NewInt(int32(x.Int64())), nil
	}
	return types.NewLong(x), nil
}

func scalar(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		return scalar(n.Alias)
	}
	if n.Kind != yaml.ScalarNode {
		return "", nodeError(n, "expected a scalar")
	}
	return n.Value, nil
}

func decodeKind(kind string, n *yaml.Node, r *oop.Registry) (types.Value, error) {
	switch kind {
	case "void":
		return types.Void, nil

	case "bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return types.NewBool(b), nil

	case "int":
		var i int32
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return types.NewInt(i), nil

	case "long":
		s, err := scalar(n)
		if err != nil {
			return nil, err
		}
		x, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, nodeError(n, "invalid integer %q", s)
		}
		return types.NewLong(x), nil

	case "rational":
		s, err := scalar(n)
		if err != nil {
			return nil, err
		}
		x, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, nodeError(n, "invalid fraction %q", s)
		}
		return types.NewRational(x), nil

	case "float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return types.NewFloat(f), nil

	case "decimal":
		s, err := scalar(n)
		if err != nil {
			return nil, err
		}
		return types.ParseDecimal(s)

	case "complex":
		var parts []float64
		if err := n.Decode(&parts); err != nil {
			return nil, err
		}
		if len(parts) != 2 {
			return nil, nodeError(n, "expected [real, imaginary]")
		}
		return types.NewComplex(parts[0], parts[1]), nil

	case "str":
		s, err := scalar(n)
		if err != nil {
			return nil, err
		}
		return types.NewStr(s), nil

	case "date", "duration":
		s, err := scalar(n)
		if err != nil {
			return nil, err
		}
		target := types.KindDate
		if kind == "duration" {
			target = types.KindDuration
		}
		return types.ConvertTo(types.NewStr(s), target)

	case "blob":
		s, err := scalar(n)
		if err != nil {
			return nil, err
		}
		buf, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return types.NewBlob(buf), nil

	case "tuple", "list", "set", "queue", "stack":
		items, err := decodeItems(n, r)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "tuple":
			return types.NewTuple(items...), nil
		case "list":
			return types.NewList(items...), nil
		case "set":
			return types.NewSet(items...), nil
		case "queue":
			return types.NewQueue(items...), nil
		}
		return types.NewStack(items...), nil

	case "map":
		return decodeMap(n, r)

	case "object":
		return decodeObject(n, r)

	case "function":
		var decl FunctionDecl
		if err := n.Decode(&decl); err != nil {
			return nil, err
		}
		fn, err := decl.Function(r)
		if err != nil {
			return nil, err
		}
		return types.NewClosure(fn), nil

	case "resource":
		inner, err := decodeNode(n, r)
		if err != nil {
			return nil, err
		}
		return types.NewResource(types.Native(inner)), nil
	}
	return nil, nodeError(n, "unknown value kind %q", kind)
}

func decodeItems(n *yaml.Node, r *oop.Registry) ([]types.Value, error) {
	if n.Kind == yaml.AliasNode {
		return decodeItems(n.Alias, r)
	}
	if n.Kind != yaml.SequenceNode {
		return nil, nodeError(n, "expected a sequence of values")
	}
	items := make([]types.Value, len(n.Content))
	for i, item := range n.Content {
		v, err := decodeNode(item, r)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

// decodeMap reads [[key, value], ...]. Keys may be any value, which a
// YAML mapping could not express.
func decodeMap(n *yaml.Node, r *oop.Registry) (types.Value, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nodeError(n, "expected a sequence of [key, value] pairs")
	}
	m := types.NewEmptyMap()
	for _, pair := range n.Content {
		kv, err := decodeItems(pair, r)
		if err != nil {
			return nil, err
		}
		if len(kv) != 2 {
			return nil, nodeError(pair, "expected [key, value]")
		}
		m.Set(kv[0], kv[1])
	}
	return m, nil
}

func decodeObject(n *yaml.Node, r *oop.Registry) (types.Value, error) {
	var decl struct {
		Class  string    `yaml:"class"`
		Fields yaml.Node `yaml:"fields"`
	}
	if err := n.Decode(&decl); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nodeError(n, "object of class %s needs a registry", decl.Class)
	}
	cls, ok := r.Lookup(decl.Class)
	if !ok {
		return nil, types.Errorf(types.E_MEMBERNF, "line %d: class %s is not defined", n.Line, decl.Class)
	}
	obj, err := cls.NewInstance()
	if err != nil {
		return nil, err
	}

	fields := &decl.Fields
	if fields.Kind == 0 {
		return obj, nil
	}
	if fields.Kind != yaml.MappingNode {
		return nil, nodeError(fields, "fields must be a mapping")
	}
	for i := 0; i+1 < len(fields.Content); i += 2 {
		v, err := decodeNode(fields.Content[i+1], r)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fields.Content[i].Value, err)
		}
		obj.SetField(fields.Content[i].Value, v)
	}
	return obj, nil
}
