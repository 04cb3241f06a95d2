// Package trace implements -D/--debug execution tracing for the Logics
// evaluator: a process-wide, mutex-guarded writer that logs AST node
// evaluations and builtin-function calls. Grounded on the teacher's
// `trace/tracer.go` (same enabled-flag + filters + io.Writer + mutex
// shape), re-pointed at parser.Node emits and builtins.Func calls instead
// of MOO verb calls/returns/exceptions and connection events, which have
// no counterpart in this Language.
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viur-framework/logics/types"
)

// Tracer writes -D/--debug trace lines for node evaluations and builtin
// calls, filtered by emit/function-name glob pattern.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// globalTracer is the process-wide tracer wired to by Init/IsEnabled/Node/
// Call, mirroring the teacher's global-tracer convenience layer.
var globalTracer *Tracer

// Init installs the global tracer. writer defaults to os.Stderr when nil.
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{enabled: enabled, filters: filters, writer: writer}
}

// IsEnabled reports whether the global tracer is installed and enabled.
func IsEnabled() bool {
	return globalTracer != nil && globalTracer.enabled
}

// matchesFilter reports whether name matches any configured glob filter;
// an empty filter set matches everything.
func (t *Tracer) matchesFilter(name string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// Node logs one AST node's evaluation result: emit tag, matched lexeme
// (when present), and the resulting Value.
func (t *Tracer) Node(emit, match string, result types.Value) {
	if !t.enabled || !t.matchesFilter(emit) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if match != "" {
		fmt.Fprintf(t.writer, "[TRACE] %s %q => %s\n", emit, match, result.String())
	} else {
		fmt.Fprintf(t.writer, "[TRACE] %s => %s\n", emit, result.String())
	}
}

// Call logs a builtin function invocation and its result.
func (t *Tracer) Call(name string, args []types.Value, result types.Value) {
	if !t.enabled || !t.matchesFilter(name) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	argStrs := make([]string, len(args))
	for i, a := range args {
		argStrs[i] = a.String()
	}
	fmt.Fprintf(t.writer, "[TRACE] CALL %s(%s) => %s\n", name, strings.Join(argStrs, ", "), result.String())
}

// Node logs to the global tracer, a no-op if none is installed.
func Node(emit, match string, result types.Value) {
	if globalTracer != nil {
		globalTracer.Node(emit, match, result)
	}
}

// Call logs to the global tracer, a no-op if none is installed.
func Call(name string, args []types.Value, result types.Value) {
	if globalTracer != nil {
		globalTracer.Call(name, args, result)
	}
}
