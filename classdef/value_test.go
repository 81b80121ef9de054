package classdef

import (
	"addy/oop"
	"addy/types"
	"strings"
	"testing"
	"time"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind types.Kind
		want string
	}{
		{"bare int", "5", types.KindInt, "5"},
		{"bare big int", "4294967296", types.KindLong, "4294967296"},
		{"bare hex", "0x1F", types.KindInt, "31"},
		{"bare float", "1.5", types.KindFloat, "1.5"},
		{"bare string", "hello", types.KindString, "hello"},
		{"bare bool", "true", types.KindBool, "true"},
		{"bare null", "~", types.KindVoid, ""},
		{"void", "{void: ~}", types.KindVoid, ""},
		{"bool", "{bool: false}", types.KindBool, "false"},
		{"int", "{int: -7}", types.KindInt, "-7"},
		{"long", `{long: "123456789012345678901234567890"}`, types.KindLong, "123456789012345678901234567890"},
		{"small long", "{long: 5}", types.KindLong, "5"},
		{"rational", `{rational: "10/4"}`, types.KindRational, "5/2"},
		{"float", "{float: 2}", types.KindFloat, "2.0"},
		{"float inf", "{float: .inf}", types.KindFloat, "Inf"},
		{"decimal", `{decimal: "1.50"}`, types.KindDecimal, "1.5"},
		{"str of number", "{str: 42}", types.KindString, "42"},
		{"date", `{date: "2024-01-02T03:04:05Z"}`, types.KindDate, "2024-01-02 03:04:05"},
		{"duration", `{duration: "1h30m"}`, types.KindDuration, "1h30m0s"},
		{"blob", `{blob: "AQID"}`, types.KindBlob, "b'AQID'"},
		{"tuple", "{tuple: [1]}", types.KindTuple, "(1,)"},
		{"list", "{list: [1, {str: a}, {list: []}]}", types.KindList, "[1, a, []]"},
		{"set", "{set: [1, 1, 2]}", types.KindSet, "{1, 2}"},
		{"queue", "{queue: [1, 2]}", types.KindQueue, "queue[1, 2]"},
		{"map", "{map: [[a, 1], [{int: 2}, {list: [b]}]]}", types.KindMap, "{a => 1, 2 => [b]}"},
		{"function", "{function: {name: f, params: [{name: a}, {name: b, default: 1}]}}", types.KindClosure, "function(a, b = 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.src, nil)
			if err != nil {
				t.Fatalf("ParseValue(%q) error: %v", tt.src, err)
			}
			if got.Kind() != tt.kind {
				t.Errorf("ParseValue(%q) kind = %s, want %s", tt.src, got.Kind(), tt.kind)
			}
			if got.String() != tt.want {
				t.Errorf("ParseValue(%q) = %q, want %q", tt.src, got.String(), tt.want)
			}
		})
	}
}

func TestParseValueScalars(t *testing.T) {
	c, err := ParseValue("{complex: [1, -2]}", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := types.AsComplex(c); got != complex(1, -2) {
		t.Errorf("complex = %v, want (1-2i)", got)
	}

	d, err := ParseValue(`{duration: "90s"}`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := types.AsDuration(d); got != 90*time.Second {
		t.Errorf("duration = %v, want 1m30s", got)
	}

	s, err := ParseValue("{stack: [1, 2, 3]}", nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.(*types.StackValue).Len() != 3 {
		t.Errorf("stack = %s, want 3 items", s)
	}

	res, err := ParseValue("{resource: {list: [1, 2]}}", nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind() != types.KindResource {
		t.Errorf("resource kind = %s", res.Kind())
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"two keys", "{int: 1, str: a}", "exactly one kind key"},
		{"unknown kind", "{matrix: [1]}", `unknown value kind "matrix"`},
		{"bare sequence", "[1, 2]", "bare sequence"},
		{"bad fraction", `{rational: "1/0"}`, "invalid fraction"},
		{"bad long", `{long: "12x"}`, "invalid integer"},
		{"int overflow", "{int: 4294967296}", "int literal"},
		{"complex arity", "{complex: [1]}", "[real, imaginary]"},
		{"list of scalar", "{list: 1}", "expected a sequence"},
		{"map pair", "{map: [[1, 2, 3]]}", "expected [key, value]"},
		{"object without registry", "{object: {class: Point}}", "needs a registry"},
		{"bad blob", `{blob: "!!"}`, "blob literal"},
		{"bad date", `{date: "yesterday"}`, "date literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue(tt.src, nil)
			if err == nil {
				t.Fatalf("ParseValue(%q) succeeded", tt.src)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseValue(%q) error = %q, want it to mention %q", tt.src, err, tt.want)
			}
		})
	}
}

func TestParseObjectLiteral(t *testing.T) {
	r := oop.NewRegistry()
	b := oop.NewClassBuilder("Point").Field(
		oop.NewField("x", oop.ScopePublic, oop.ModDefault, oop.Literal{Value: types.NewInt(0)}),
		oop.NewField("y", oop.ScopePublic, oop.ModDefault, oop.Literal{Value: types.NewInt(0)}),
	)
	if _, err := r.Define(b); err != nil {
		t.Fatal(err)
	}

	v, err := ParseValue("{object: {class: Point, fields: {y: 2, label: {str: origin}}}}", r)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<Point {x = 0, y = 2, label = origin}>"; v.String() != want {
		t.Errorf("object = %q, want %q", v, want)
	}

	v, err = ParseValue("{object: {class: Point}}", r)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<Point {x = 0, y = 0}>"; v.String() != want {
		t.Errorf("object = %q, want %q", v, want)
	}

	_, err = ParseValue("{object: {class: Missing}}", r)
	if types.CodeOf(err) != types.E_MEMBERNF {
		t.Errorf("unknown class error = %v, want E_MEMBERNF", err)
	}
}
