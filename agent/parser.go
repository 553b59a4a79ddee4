package agent

import (
	"encoding/json"
	"strings"
)

const thoughtPrefix = "THOUGHT:"
const actionPrefix = "ACTION:"
const actionInputPrefix = "ACTION INPUT:"

// agentStep is the parsed form of one model turn, discarded after dispatch.
type agentStep struct {
	thought     string
	action      string
	actionInput any
}

// parseAgentStep scans the response line by line for the THOUGHT/ACTION/
// ACTION INPUT prefixes; the first match per prefix wins. The parser is
// deliberately forgiving: an unparsable action input is kept as a raw
// string, and a response with no recognized prefixes becomes a thought-only
// turn.
func parseAgentStep(content string) agentStep {
	var step agentStep
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, actionInputPrefix):
			if step.actionInput != nil {
				continue
			}
			raw := strings.TrimSpace(strings.TrimPrefix(line, actionInputPrefix))
			var value any
			if err := json.Unmarshal([]byte(raw), &value); err != nil {
				value = raw
			}
			step.actionInput = value
		case strings.HasPrefix(line, actionPrefix):
			if len(step.action) == 0 {
				step.action = strings.TrimSpace(strings.TrimPrefix(line, actionPrefix))
			}
		case strings.HasPrefix(line, thoughtPrefix):
			if len(step.thought) == 0 {
				step.thought = strings.TrimSpace(strings.TrimPrefix(line, thoughtPrefix))
			}
		}
	}
	if len(step.thought) == 0 {
		step.thought = content
	}
	return step
}
