package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveInputParams(t *testing.T) {
	variables := map[string]any{
		"base": "https://example.com",
		"user": map[string]any{"name": "ada", "id": float64(7)},
		"tags": []any{"a", "b"},
	}

	for scenario, fn := range map[string]func(t *testing.T){
		"plain values pass through": func(t *testing.T) {
			out := ResolveInputParams(variables, map[string]any{"count": 3, "flag": true})
			require.Equal(t, 3, out["count"])
			require.Equal(t, true, out["flag"])
		},
		"token replaced inside a larger string": func(t *testing.T) {
			out := ResolveInputParams(variables, map[string]any{"url": "{$.base}/login"})
			require.Equal(t, "https://example.com/login", out["url"])
		},
		"nested jsonpath lookup": func(t *testing.T) {
			out := ResolveInputParams(variables, map[string]any{"greeting": "hello {$.user.name}"})
			require.Equal(t, "hello ada", out["greeting"])
		},
		"multiple tokens in one string": func(t *testing.T) {
			out := ResolveInputParams(variables, map[string]any{"line": "{$.user.name}@{$.base}"})
			require.Equal(t, "ada@https://example.com", out["line"])
		},
		"unknown path left untouched": func(t *testing.T) {
			out := ResolveInputParams(variables, map[string]any{"url": "{$.missing}/x"})
			require.Equal(t, "{$.missing}/x", out["url"])
		},
		"non jsonpath braces left untouched": func(t *testing.T) {
			out := ResolveInputParams(variables, map[string]any{"tpl": "{name} stays"})
			require.Equal(t, "{name} stays", out["tpl"])
		},
		"nested maps and lists resolved": func(t *testing.T) {
			out := ResolveInputParams(variables, map[string]any{
				"payload": map[string]any{"who": "{$.user.name}"},
				"items":   []any{"{$.base}", "literal"},
			})
			payload := out["payload"].(map[string]any)
			require.Equal(t, "ada", payload["who"])
			items := out["items"].([]any)
			require.Equal(t, []any{"https://example.com", "literal"}, items)
		},
	} {
		t.Run(scenario, fn)
	}
}

func TestChunk(t *testing.T) {
	require.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunk([]int{1, 2, 3, 4, 5}, 2))
	require.Equal(t, [][]int{{1, 2, 3}}, Chunk([]int{1, 2, 3}, 5))
	require.Nil(t, Chunk([]int{}, 2))
	require.Nil(t, Chunk([]int{1}, 0))
}

func TestDeepCopyMap(t *testing.T) {
	original := map[string]any{
		"nested": map[string]any{"k": "v"},
		"list":   []any{1, 2},
	}
	copied := DeepCopyMap(original)

	copied["nested"].(map[string]any)["k"] = "changed"
	copied["list"].([]any)[0] = 99

	require.Equal(t, "v", original["nested"].(map[string]any)["k"])
	require.Equal(t, 1, original["list"].([]any)[0])
}
