package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/tool"
	"github.com/stretchr/testify/require"
)

func TestConditionEvaluate(t *testing.T) {
	vars := map[string]any{
		"page_loaded": "navigation complete",
		"count":       float64(3),
		"env":         "prod",
	}
	ce := &conditionEvaluator{tools: tool.NewLocalExecutor()}

	for scenario, fn := range map[string]func(t *testing.T){
		"contains matches substring": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_CONTAINS, Variable: "page_loaded", Substring: "complete",
			}, vars)
			require.NoError(t, err)
			require.True(t, met)
		},
		"contains misses substring": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_CONTAINS, Variable: "page_loaded", Substring: "error",
			}, vars)
			require.NoError(t, err)
			require.False(t, met)
		},
		"contains on missing variable is false": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_CONTAINS, Variable: "absent", Substring: "x",
			}, vars)
			require.NoError(t, err)
			require.False(t, met)
		},
		"contains on non-string variable is false": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_CONTAINS, Variable: "count", Substring: "3",
			}, vars)
			require.NoError(t, err)
			require.False(t, met)
		},
		"equals across number types": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_EQUALS, Variable: "count", Value: 3,
			}, vars)
			require.NoError(t, err)
			require.True(t, met)
		},
		"equals on missing variable is false": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_EQUALS, Variable: "absent", Value: "x",
			}, vars)
			require.NoError(t, err)
			require.False(t, met)
		},
		"exists": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_EXISTS, Variable: "env",
			}, vars)
			require.NoError(t, err)
			require.True(t, met)

			met, err = ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_EXISTS, Variable: "absent",
			}, vars)
			require.NoError(t, err)
			require.False(t, met)
		},
		"javascript evaluates against variables": func(t *testing.T) {
			met, err := ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_JAVASCRIPT, Expression: "$.count > 2",
			}, vars)
			require.NoError(t, err)
			require.True(t, met)

			met, err = ce.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_JAVASCRIPT, Expression: "$.count > 5",
			}, vars)
			require.NoError(t, err)
			require.False(t, met)
		},
		"element exists delegates to executor": func(t *testing.T) {
			local := tool.NewLocalExecutor().WithSelector("#login")
			withBrowser := &conditionEvaluator{tools: local}

			met, err := withBrowser.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_ELEMENT_EXISTS, Selector: "#login",
			}, vars)
			require.NoError(t, err)
			require.True(t, met)

			met, err = withBrowser.Evaluate(context.Background(), model.Condition{
				Type: model.CONDITION_ELEMENT_EXISTS, Selector: "#missing",
			}, vars)
			require.NoError(t, err)
			require.False(t, met)
		},
		"browser conditions fail without executor": func(t *testing.T) {
			headless := &conditionEvaluator{}
			for _, cond := range []model.Condition{
				{Type: model.CONDITION_ELEMENT_EXISTS, Selector: "#login"},
				{Type: model.CONDITION_JAVASCRIPT, Expression: "true"},
				{Type: model.CONDITION_HTTP_STATUS, Expected: 200},
			} {
				_, err := headless.Evaluate(context.Background(), cond, vars)
				var condErr *ConditionFailedError
				require.True(t, errors.As(err, &condErr))
			}
		},
		"unknown condition type fails": func(t *testing.T) {
			_, err := ce.Evaluate(context.Background(), model.Condition{Type: "GUESS"}, vars)
			var condErr *ConditionFailedError
			require.True(t, errors.As(err, &condErr))
		},
	} {
		t.Run(scenario, fn)
	}
}
