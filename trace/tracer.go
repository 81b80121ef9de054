package trace

import (
	"addy/types"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Tracer records operator-overload dispatches and synthesized member calls
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	globalTracer = New(enabled, filters, writer)
}

// New creates a standalone tracer. A nil writer means stderr.
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks a Class::member name against the glob filters
func (t *Tracer) matchesFilter(fullName string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, fullName); matched {
			return true
		}
	}
	return false
}

func formatArgs(args []types.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = render(arg)
	}
	return strings.Join(parts, ", ")
}

// emit writes one trace line for a Class::member call when the tracer
// is on and the name passes the filters
func (t *Tracer) emit(className, member, event, format string, args ...any) {
	fullName := className + "::" + member
	if !t.enabled || !t.matchesFilter(fullName) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[TRACE] %s %s %s\n", event, fullName, fmt.Sprintf(format, args...))
}

func render(v types.Value) string {
	if v == nil {
		return "void"
	}
	return v.String()
}

// Dispatch logs a call into a class member
func (t *Tracer) Dispatch(className, member string, self types.Value, args []types.Value) {
	t.emit(className, member, "CALL", "self=%s args=[%s]", render(self), formatArgs(args))
}

// Return logs the result of a member call
func (t *Tracer) Return(className, member string, result types.Value) {
	t.emit(className, member, "RETURN", "=> %s", render(result))
}

// Error logs a failed member call
func (t *Tracer) Error(className, member string, err error) {
	if err == nil {
		return
	}
	t.emit(className, member, "ERROR", "%s %s", types.CodeOf(err).String(), err.Error())
}

// Global convenience functions

// Dispatch logs a member call using the global tracer
func Dispatch(className, member string, self types.Value, args []types.Value) {
	if globalTracer != nil {
		globalTracer.Dispatch(className, member, self, args)
	}
}

// Return logs a member return using the global tracer
func Return(className, member string, result types.Value) {
	if globalTracer != nil {
		globalTracer.Return(className, member, result)
	}
}

// Error logs a member failure using the global tracer
func Error(className, member string, err error) {
	if globalTracer != nil {
		globalTracer.Error(className, member, err)
	}
}
