package coll

// Expression transforms on views use the expression source itself as the
// structural cache key, so identical expressions share cache entries across
// call sites. Unlike the store's expression operations these are fail-soft:
// compile and runtime errors become diagnostics and the empty result for the
// shape.

// FilterExpr returns the elements for which expr evaluates to true.
func (v *View[T]) FilterExpr(expr string) []T {
	return viewResult(v, "filter_expr", expr, nil, func(items []T) ([]T, error) {
		rule, err := v.compileRule(expr)
		if err != nil {
			return nil, err
		}
		var out []T
		for i, item := range items {
			ok, err := evaluateRule(rule, expr, item, i)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

// FindExpr returns the first element for which expr evaluates to true.
func (v *View[T]) FindExpr(expr string) (T, bool) {
	result := viewResult(v, "find_expr", expr, findResult[T]{}, func(items []T) (findResult[T], error) {
		rule, err := v.compileRule(expr)
		if err != nil {
			return findResult[T]{}, err
		}
		for i, item := range items {
			ok, err := evaluateRule(rule, expr, item, i)
			if err != nil {
				return findResult[T]{}, err
			}
			if ok {
				return findResult[T]{item: item, ok: true}, nil
			}
		}
		return findResult[T]{}, nil
	})
	return result.item, result.ok
}

// SomeExpr reports whether any element satisfies expr.
func (v *View[T]) SomeExpr(expr string) bool {
	_, ok := v.FindExpr(expr)
	return ok
}

// EveryExpr reports whether every element satisfies expr. Empty sources and
// evaluation failures both report the vacuous result, true.
func (v *View[T]) EveryExpr(expr string) bool {
	return viewResult(v, "every_expr", expr, true, func(items []T) (bool, error) {
		rule, err := v.compileRule(expr)
		if err != nil {
			return false, err
		}
		for i, item := range items {
			ok, err := evaluateRule(rule, expr, item, i)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	})
}

func (v *View[T]) compileRule(expr string) (CompiledRule, error) {
	if expr == "" {
		return nil, wrapEvaluatorError("view", errNilExpression)
	}
	evaluator := v.evaluator
	if evaluator == nil {
		var exprOpts []ExprEvaluatorOption
		if v.programs != nil {
			exprOpts = append(exprOpts, ExprWithProgramCache(v.programs))
		}
		if v.functions != nil {
			exprOpts = append(exprOpts, ExprWithFunctionRegistry(v.functions))
		}
		evaluator = NewExprEvaluator(exprOpts...)
		v.evaluator = evaluator
	}
	return evaluator.Compile(expr)
}

func evaluateRule[T any](rule CompiledRule, expr string, item T, index int) (bool, error) {
	value, err := rule.Evaluate(ItemContext{Item: item, Index: index})
	if err != nil {
		return false, wrapEvaluationError("", expr, err)
	}
	coerced, err := predicateValue(value)
	if err != nil {
		return false, wrapEvaluationError("", expr, err)
	}
	return coerced.(bool), nil
}
