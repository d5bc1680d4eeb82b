package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"hdlc/diag"
	"hdlc/types"
)

// Tracer provides evaluation tracing for debugging
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
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
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

// matchesFilter checks if expression text matches any of the filter patterns
func (t *Tracer) matchesFilter(expr string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, expr); matched {
			return true
		}
	}
	return false
}

func valueString(v types.Value) string {
	if v == nil {
		return "<no value>"
	}
	return v.String()
}

// Select logs the result of evaluating a select or member access
func (t *Tracer) Select(expr string, result types.Value) {
	if !t.enabled || !t.matchesFilter(expr) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] SELECT %s => %s\n", expr, valueString(result))
}

// Store logs a write through an lvalue
func (t *Tracer) Store(expr string, value types.Value) {
	if !t.enabled || !t.matchesFilter(expr) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] STORE %s <= %s\n", expr, valueString(value))
}

// Diagnostic logs a diagnostic raised during evaluation. Operands are
// attached after the diagnostic is raised, so only the code is logged.
func (t *Tracer) Diagnostic(d *diag.Diagnostic) {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] DIAG %s %s @%d..%d\n", d.Severity(), d.Code, d.Range.Start, d.Range.End)
}

// Global convenience functions

// Select logs a select result using the global tracer
func Select(expr string, result types.Value) {
	if globalTracer != nil {
		globalTracer.Select(expr, result)
	}
}

// Store logs an lvalue write using the global tracer
func Store(expr string, value types.Value) {
	if globalTracer != nil {
		globalTracer.Store(expr, value)
	}
}

// Diagnostic logs a diagnostic using the global tracer
func Diagnostic(d *diag.Diagnostic) {
	if globalTracer != nil {
		globalTracer.Diagnostic(d)
	}
}
