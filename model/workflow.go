package model

import "time"

type StepType string

const STEP_TYPE_TOOL StepType = "TOOL"
const STEP_TYPE_BRANCH StepType = "BRANCH"
const STEP_TYPE_LOOP StepType = "LOOP"
const STEP_TYPE_SET_VARIABLE StepType = "SET_VARIABLE"
const STEP_TYPE_WAIT StepType = "WAIT"
const STEP_TYPE_PARALLEL StepType = "PARALLEL"
const STEP_TYPE_ERROR_HANDLER StepType = "ERROR_HANDLER"

type ConditionType string

const CONDITION_EQUALS ConditionType = "EQUALS"
const CONDITION_CONTAINS ConditionType = "CONTAINS"
const CONDITION_EXISTS ConditionType = "EXISTS"
const CONDITION_ELEMENT_EXISTS ConditionType = "ELEMENT_EXISTS"
const CONDITION_JAVASCRIPT ConditionType = "JAVASCRIPT"
const CONDITION_HTTP_STATUS ConditionType = "HTTP_STATUS"

// WorkflowDefinition is an immutable description of a multi-step automation
// task. It is created once by a builder or loaded from storage and never
// mutated during execution.
type WorkflowDefinition struct {
	Id          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Steps       []Step         `json:"steps"`
	Variables   map[string]any `json:"variables"`
	TimeoutMs   int64          `json:"timeoutMs,omitempty"`
	MaxRetries  uint           `json:"maxRetries"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Step is one unit of declarative work. The Type field discriminates which
// of the per-kind field groups below is meaningful.
type Step struct {
	Type StepType `json:"type"`
	Name string   `json:"name"`

	// TOOL
	Call      *ToolCall `json:"call,omitempty"`
	TimeoutMs int64     `json:"timeoutMs,omitempty"`

	// BRANCH, WAIT
	Condition *Condition `json:"condition,omitempty"`
	ThenSteps []Step     `json:"thenSteps,omitempty"`
	ElseSteps []Step     `json:"elseSteps,omitempty"`

	// LOOP
	Variable      string `json:"variable,omitempty"`
	Items         []any  `json:"items,omitempty"`
	BodySteps     []Step `json:"bodySteps,omitempty"`
	MaxIterations int    `json:"maxIterations,omitempty"`

	// SET_VARIABLE
	Value any `json:"value,omitempty"`

	// PARALLEL
	Branches       [][]Step `json:"branches,omitempty"`
	MaxConcurrency int      `json:"maxConcurrency,omitempty"`

	// ERROR_HANDLER
	ErrorVariable string `json:"errorVariable,omitempty"`
	HandlerSteps  []Step `json:"handlerSteps,omitempty"`
	RetryCount    int    `json:"retryCount,omitempty"`
}

// Condition is a boolean predicate over run state. EQUALS, CONTAINS and
// EXISTS evaluate against workflow variables; ELEMENT_EXISTS, JAVASCRIPT and
// HTTP_STATUS delegate to the tool executor.
type Condition struct {
	Type       ConditionType `json:"type"`
	Variable   string        `json:"variable,omitempty"`
	Value      any           `json:"value,omitempty"`
	Substring  string        `json:"substring,omitempty"`
	Selector   string        `json:"selector,omitempty"`
	Expression string        `json:"expression,omitempty"`
	Expected   int           `json:"expected,omitempty"`
}

func (c Condition) String() string {
	switch c.Type {
	case CONDITION_EQUALS:
		return "equals(" + c.Variable + ")"
	case CONDITION_CONTAINS:
		return "contains(" + c.Variable + "," + c.Substring + ")"
	case CONDITION_EXISTS:
		return "exists(" + c.Variable + ")"
	case CONDITION_ELEMENT_EXISTS:
		return "elementExists(" + c.Selector + ")"
	case CONDITION_JAVASCRIPT:
		return "javascript(" + c.Expression + ")"
	case CONDITION_HTTP_STATUS:
		return "httpStatus"
	}
	return string(c.Type)
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall names one external tool invocation. Arguments is a JSON encoded
// object so the call round-trips unchanged through definitions and provider
// payloads.
type ToolCall struct {
	Id       string       `json:"id"`
	ToolType string       `json:"type"`
	Function FunctionCall `json:"function"`
}
