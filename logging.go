package coll

import "time"

// Diagnostic describes a non-fatal internal event: a fail-soft view
// recomputation, an evaluator run, an activity fan-out failure.
type Diagnostic struct {
	Component string
	Op        string
	Expr      string
	Duration  time.Duration
	Err       error
}

// DiagnosticLogger records diagnostics.
type DiagnosticLogger interface {
	LogDiagnostic(Diagnostic)
}

// DiagnosticLoggerFunc adapts a function to DiagnosticLogger.
type DiagnosticLoggerFunc func(Diagnostic)

// LogDiagnostic implements DiagnosticLogger.
func (f DiagnosticLoggerFunc) LogDiagnostic(event Diagnostic) {
	if f != nil {
		f(event)
	}
}

type noopDiagnosticLogger struct{}

func (noopDiagnosticLogger) LogDiagnostic(Diagnostic) {}

// WithDiagnosticLogger attaches a diagnostic logger to the collection.
func WithDiagnosticLogger[T any](logger DiagnosticLogger) Option[T] {
	return func(cfg *config[T]) {
		if logger == nil {
			cfg.logger = noopDiagnosticLogger{}
			return
		}
		cfg.logger = logger
	}
}
