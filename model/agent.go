package model

const DEFAULT_AGENT_MAX_ITERATIONS = 10

// AgentTask is one goal handed to the agent loop. Immutable per run.
type AgentTask struct {
	Goal          string `json:"goal"`
	Context       string `json:"context,omitempty"`
	MaxIterations int    `json:"maxIterations"`
}

func NewAgentTask(goal string) AgentTask {
	return AgentTask{
		Goal:          goal,
		MaxIterations: DEFAULT_AGENT_MAX_ITERATIONS,
	}
}

func (t AgentTask) WithContext(context string) AgentTask {
	t.Context = context
	return t
}

func (t AgentTask) WithMaxIterations(max int) AgentTask {
	t.MaxIterations = max
	return t
}

// AgentResponse is the terminal output of one agent loop run.
type AgentResponse struct {
	Success    bool   `json:"success"`
	Result     string `json:"result"`
	Iterations int    `json:"iterations"`
	Error      string `json:"error,omitempty"`
}
