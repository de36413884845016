package coll

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("coll: evaluator not configured")

// Expression operations let callers phrase predicates as expr/CEL/JS source
// instead of closures. On the store they are fail-fast: compile and runtime
// errors surface to the caller and the live snapshot is never touched.

// RemoveWhereExpr removes every element for which expr evaluates to true. The
// expression sees item, index, now, args, and metadata bindings.
func (c *Collection[T]) RemoveWhereExpr(expr string, args map[string]any) (bool, error) {
	matches, err := c.evaluateAll(expr, args)
	if err != nil {
		return false, err
	}
	return c.RemoveWhere(func(_ T, index int) bool {
		return matches[index]
	}), nil
}

// FindExpr returns the first element for which expr evaluates to true.
func (c *Collection[T]) FindExpr(expr string, args map[string]any) (T, bool, error) {
	var zero T
	rule, err := c.compileRule(expr)
	if err != nil {
		return zero, false, err
	}
	for i, item := range c.snap.items {
		ok, err := c.evaluateItem(rule, expr, item, i, args)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// CountExpr returns the number of elements for which expr evaluates to true.
func (c *Collection[T]) CountExpr(expr string, args map[string]any) (int, error) {
	matches, err := c.evaluateAll(expr, args)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, ok := range matches {
		if ok {
			count++
		}
	}
	return count, nil
}

// evaluateAll runs expr against every element of the pre-mutation snapshot
// and returns a per-index match vector.
func (c *Collection[T]) evaluateAll(expr string, args map[string]any) ([]bool, error) {
	rule, err := c.compileRule(expr)
	if err != nil {
		return nil, err
	}
	matches := make([]bool, c.snap.Len())
	for i, item := range c.snap.items {
		ok, err := c.evaluateItem(rule, expr, item, i, args)
		if err != nil {
			return nil, err
		}
		matches[i] = ok
	}
	return matches, nil
}

func (c *Collection[T]) compileRule(expr string) (CompiledRule, error) {
	if expr == "" {
		return nil, fmt.Errorf("coll: expression must not be empty")
	}
	evaluator, err := c.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	return evaluator.Compile(expr)
}

func (c *Collection[T]) evaluateItem(rule CompiledRule, expr string, item T, index int, args map[string]any) (bool, error) {
	ctx := ItemContext{Item: item, Index: index, Args: args}
	engine := evaluatorEngineName(c.cfg.evaluator)
	start := time.Now()
	value, err := rule.Evaluate(ctx)
	duration := time.Since(start)
	if err == nil {
		var coerceErr error
		value, coerceErr = predicateValue(value)
		err = coerceErr
	}
	err = wrapEvaluationError(engine, expr, err)
	c.logger().LogDiagnostic(Diagnostic{
		Component: "expr",
		Op:        engine,
		Expr:      expr,
		Duration:  duration,
		Err:       err,
	})
	if err != nil {
		return false, err
	}
	return value.(bool), nil
}

func (c *Collection[T]) resolveEvaluator() (Evaluator, error) {
	if c.cfg.evaluator != nil {
		return c.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := c.cfg.programCache; cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := c.cfg.functions; registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	c.cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

// predicateValue coerces an evaluator result into a bool. Anything other than
// a bool (or nil, treated as false) is an error: predicates must not rely on
// loose truthiness.
func predicateValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("coll: predicate returned %T, want bool", value)
	}
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "expr"
	}
	switch fmt.Sprintf("%T", e) {
	case "*coll.exprEvaluator":
		return "expr"
	case "*coll.celEvaluator":
		return "cel"
	case "*coll.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
