package trace

import (
	"addy/types"
	"bytes"
	"strings"
	"testing"
)

func TestTracerFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		member  string
		want    bool
	}{
		{"no filters", nil, "__op_add", true},
		{"exact", []string{"Point::__op_add"}, "__op_add", true},
		{"glob", []string{"Point::__op_*"}, "__op_eq", true},
		{"other class", []string{"Vector::*"}, "__op_add", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tr := New(true, tt.filters, &buf)
			tr.Dispatch("Point", tt.member, nil, []types.Value{types.NewInt(1)})
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("traced = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestTracerOutput(t *testing.T) {
	var buf bytes.Buffer
	tr := New(true, nil, &buf)

	tr.Dispatch("Point", "__op_add", types.NewStr("p"), []types.Value{types.NewInt(2), nil})
	tr.Return("Point", "__op_add", types.NewInt(3))
	tr.Error("Point", "__op_sub", types.Errorf(types.E_OPERATOR, "no overload"))
	tr.Error("Point", "__op_mul", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"[TRACE] CALL Point::__op_add self=p args=[2, void]",
		"[TRACE] RETURN Point::__op_add => 3",
		"[TRACE] ERROR Point::__op_sub E_OPERATOR E_OPERATOR: no overload",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTracerDisabled(t *testing.T) {
	var buf bytes.Buffer
	tr := New(false, nil, &buf)
	tr.Dispatch("Point", "__op_add", nil, nil)
	tr.Return("Point", "__op_add", nil)
	if buf.Len() != 0 {
		t.Errorf("disabled tracer wrote %q", buf.String())
	}
}

func TestGlobalTracer(t *testing.T) {
	var buf bytes.Buffer
	Init(true, nil, &buf)
	defer Init(false, nil, nil)

	if !IsEnabled() {
		t.Fatal("expected tracing enabled")
	}
	Dispatch("Exception", "__read_name", nil, nil)
	if !strings.Contains(buf.String(), "Exception::__read_name") {
		t.Errorf("global dispatch not traced: %q", buf.String())
	}
}
