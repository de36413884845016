package coll

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapEvaluationErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "item.flag && missing", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", evalErr.Engine)
	}
	if evalErr.Expr != "item.flag && missing" {
		t.Fatalf("expected expression metadata, got %q", evalErr.Expr)
	}
	if !errors.Is(evalErr.Err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{
		Engine: "expr",
		Err:    base,
	}

	err := wrapEvaluationError("cel", "rule", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" {
		t.Fatalf("expression should be filled, got %q", existing.Expr)
	}
}

func TestEvaluationErrorMessagePrefix(t *testing.T) {
	err := &EvaluationError{Engine: "expr", Expr: "item > 1", Err: errors.New("boom")}
	if !strings.HasPrefix(err.Error(), "coll:") {
		t.Fatalf("expected coll: prefix, got %q", err.Error())
	}

	empty := &EvaluationError{Engine: "cel", Err: errors.New("boom")}
	if !strings.Contains(empty.Error(), "expr=<empty>") {
		t.Fatalf("expected empty expression marker, got %q", empty.Error())
	}
}
