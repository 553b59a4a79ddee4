package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/tool"
)

// conditionEvaluator resolves condition predicates against run variables,
// delegating the browser-bound kinds to the tool executor. A kind that needs
// the executor while none is configured is a ConditionFailedError, never a
// silent false.
type conditionEvaluator struct {
	tools tool.Executor
}

func (ce *conditionEvaluator) Evaluate(ctx context.Context, cond model.Condition, variables map[string]any) (bool, error) {
	switch cond.Type {
	case model.CONDITION_EQUALS:
		value, ok := variables[cond.Variable]
		return ok && jsonEqual(value, cond.Value), nil
	case model.CONDITION_CONTAINS:
		if value, ok := variables[cond.Variable]; ok {
			if s, ok := value.(string); ok {
				return strings.Contains(s, cond.Substring), nil
			}
		}
		return false, nil
	case model.CONDITION_EXISTS:
		_, ok := variables[cond.Variable]
		return ok, nil
	case model.CONDITION_ELEMENT_EXISTS:
		if ce.tools == nil {
			return false, &ConditionFailedError{Condition: cond.String()}
		}
		return ce.tools.ElementExists(ctx, cond.Selector)
	case model.CONDITION_JAVASCRIPT:
		if ce.tools == nil {
			return false, &ConditionFailedError{Condition: cond.String()}
		}
		result, err := ce.tools.Execute(ctx, "evaluate_js", map[string]any{
			"expression": cond.Expression,
			"bindings":   variables,
		})
		if err != nil {
			return false, &ConditionFailedError{Condition: cond.String()}
		}
		return isTruthy(result), nil
	case model.CONDITION_HTTP_STATUS:
		if ce.tools == nil {
			return false, &ConditionFailedError{Condition: cond.String()}
		}
		result, err := ce.tools.Execute(ctx, "check_http_status", map[string]any{
			"expected": cond.Expected,
		})
		if err != nil {
			return false, &ConditionFailedError{Condition: cond.String()}
		}
		return isTruthy(result), nil
	}
	return false, &ConditionFailedError{Condition: cond.String()}
}

// jsonEqual compares two JSON-shaped values through their canonical
// encoding, so literals and decoded values with differing Go number types
// still match.
func jsonEqual(a, b any) bool {
	da, err := json.Marshal(a)
	if err != nil {
		return false
	}
	db, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}

func isTruthy(result string) bool {
	return strings.EqualFold(strings.TrimSpace(result), "true")
}
