package agent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAgentStep(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"full turn with json input": func(t *testing.T) {
			step := parseAgentStep("THOUGHT: open the page\nACTION: navigate_to\nACTION INPUT: {\"url\": \"https://example.com\"}")
			require.Equal(t, "open the page", step.thought)
			require.Equal(t, "navigate_to", step.action)
			input := step.actionInput.(map[string]any)
			require.Equal(t, "https://example.com", input["url"])
		},
		"unparsable input kept as raw string": func(t *testing.T) {
			step := parseAgentStep("ACTION: click_element\nACTION INPUT: the big red button")
			require.Equal(t, "click_element", step.action)
			require.Equal(t, "the big red button", step.actionInput)
		},
		"first match per prefix wins": func(t *testing.T) {
			step := parseAgentStep("THOUGHT: first\nTHOUGHT: second\nACTION: navigate_to\nACTION: click_element\nACTION INPUT: \"a\"\nACTION INPUT: \"b\"")
			require.Equal(t, "first", step.thought)
			require.Equal(t, "navigate_to", step.action)
			require.Equal(t, "a", step.actionInput)
		},
		"action input is not mistaken for action": func(t *testing.T) {
			step := parseAgentStep("ACTION INPUT: {\"x\": 1}\nACTION: tool")
			require.Equal(t, "tool", step.action)
			input := step.actionInput.(map[string]any)
			require.Equal(t, float64(1), input["x"])
		},
		"no prefixes becomes thought-only turn": func(t *testing.T) {
			content := "I am not sure yet what to do."
			step := parseAgentStep(content)
			require.Equal(t, content, step.thought)
			require.Empty(t, step.action)
			require.Nil(t, step.actionInput)
		},
		"surrounding whitespace trimmed": func(t *testing.T) {
			step := parseAgentStep("   THOUGHT:   padded   \n  ACTION:  FINISH  ")
			require.Equal(t, "padded", step.thought)
			require.Equal(t, "FINISH", step.action)
		},
	} {
		t.Run(scenario, fn)
	}
}
