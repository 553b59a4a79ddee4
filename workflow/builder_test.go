package workflow

import (
	"encoding/json"
	"testing"

	"github.com/gianlucamazza/webagent/model"
	"github.com/stretchr/testify/require"
)

func TestBuilderAssemblesDefinition(t *testing.T) {
	def := NewBuilder("checkout").
		Description("log in and buy").
		Variable("base", "https://shop.example.com").
		Tool("open", "navigate_to", map[string]any{"url": "{$.base}/login"}).
		SetVariable("attempts", "attempts", 0).
		Wait("settle", 500).
		Build()

	require.NotEmpty(t, def.Id)
	require.Equal(t, "checkout", def.Name)
	require.Equal(t, "log in and buy", def.Description)
	require.Equal(t, "https://shop.example.com", def.Variables["base"])
	require.False(t, def.CreatedAt.IsZero())
	require.Len(t, def.Steps, 3)

	open := def.Steps[0]
	require.Equal(t, model.STEP_TYPE_TOOL, open.Type)
	require.NotEmpty(t, open.Call.Id)
	require.Equal(t, "navigate_to", open.Call.Function.Name)

	var args map[string]any
	require.NoError(t, json.Unmarshal([]byte(open.Call.Function.Arguments), &args))
	require.Equal(t, "{$.base}/login", args["url"])

	require.NoError(t, ValidateDefinition(def))
}

func TestBuilderKeepsExplicitId(t *testing.T) {
	def := NewBuilder("fixed").Id("wf-42").Tool("s", "t", nil).Build()
	require.Equal(t, "wf-42", def.Id)
}

func TestBuilderNestedSteps(t *testing.T) {
	body := NewBuilder("body").Tool("visit", "navigate_to", nil).Build().Steps

	def := NewBuilder("crawler").
		Loop("pages", "page", []any{"a", "b"}, body).
		Branch("check",
			model.Condition{Type: model.CONDITION_EXISTS, Variable: "page"},
			body, nil).
		Parallel("fanout", [][]model.Step{body, body}, 2).
		ErrorHandler("recover", "last_error", body, 2).
		Build()

	require.NoError(t, ValidateDefinition(def))
	require.Equal(t, model.STEP_TYPE_LOOP, def.Steps[0].Type)
	require.Equal(t, model.STEP_TYPE_BRANCH, def.Steps[1].Type)
	require.Equal(t, model.STEP_TYPE_PARALLEL, def.Steps[2].Type)
	require.Equal(t, model.STEP_TYPE_ERROR_HANDLER, def.Steps[3].Type)
	require.Len(t, def.Steps[2].Branches, 2)
}
