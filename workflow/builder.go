package workflow

import (
	"encoding/json"
	"time"

	"github.com/gianlucamazza/webagent/model"
	"github.com/google/uuid"
)

// Builder assembles an immutable workflow definition step by step.
type Builder struct {
	id          string
	name        string
	description string
	steps       []model.Step
	variables   map[string]any
	timeoutMs   int64
	maxRetries  uint
}

func NewBuilder(name string) *Builder {
	return &Builder{
		name:       name,
		variables:  make(map[string]any),
		maxRetries: 3,
	}
}

func (b *Builder) Id(id string) *Builder {
	b.id = id
	return b
}

func (b *Builder) Description(description string) *Builder {
	b.description = description
	return b
}

// Tool appends a tool invocation step. args are JSON-encoded into the call;
// string values may carry {$.variable} tokens resolved at execution time.
func (b *Builder) Tool(name string, toolName string, args map[string]any) *Builder {
	encoded, _ := json.Marshal(args)
	b.steps = append(b.steps, model.Step{
		Type: model.STEP_TYPE_TOOL,
		Name: name,
		Call: &model.ToolCall{
			Id:       uuid.NewString(),
			ToolType: "function",
			Function: model.FunctionCall{
				Name:      toolName,
				Arguments: string(encoded),
			},
		},
	})
	return b
}

func (b *Builder) Branch(name string, condition model.Condition, thenSteps []model.Step, elseSteps []model.Step) *Builder {
	b.steps = append(b.steps, model.Step{
		Type:      model.STEP_TYPE_BRANCH,
		Name:      name,
		Condition: &condition,
		ThenSteps: thenSteps,
		ElseSteps: elseSteps,
	})
	return b
}

func (b *Builder) Loop(name string, variable string, items []any, bodySteps []model.Step) *Builder {
	b.steps = append(b.steps, model.Step{
		Type:      model.STEP_TYPE_LOOP,
		Name:      name,
		Variable:  variable,
		Items:     items,
		BodySteps: bodySteps,
	})
	return b
}

func (b *Builder) SetVariable(name string, variable string, value any) *Builder {
	b.steps = append(b.steps, model.Step{
		Type:     model.STEP_TYPE_SET_VARIABLE,
		Name:     name,
		Variable: variable,
		Value:    value,
	})
	return b
}

func (b *Builder) Wait(name string, timeoutMs int64) *Builder {
	b.steps = append(b.steps, model.Step{
		Type:      model.STEP_TYPE_WAIT,
		Name:      name,
		TimeoutMs: timeoutMs,
	})
	return b
}

func (b *Builder) WaitFor(name string, condition model.Condition, timeoutMs int64) *Builder {
	b.steps = append(b.steps, model.Step{
		Type:      model.STEP_TYPE_WAIT,
		Name:      name,
		Condition: &condition,
		TimeoutMs: timeoutMs,
	})
	return b
}

func (b *Builder) Parallel(name string, branches [][]model.Step, maxConcurrency int) *Builder {
	b.steps = append(b.steps, model.Step{
		Type:           model.STEP_TYPE_PARALLEL,
		Name:           name,
		Branches:       branches,
		MaxConcurrency: maxConcurrency,
	})
	return b
}

func (b *Builder) ErrorHandler(name string, errorVariable string, handlerSteps []model.Step, retryCount int) *Builder {
	b.steps = append(b.steps, model.Step{
		Type:          model.STEP_TYPE_ERROR_HANDLER,
		Name:          name,
		ErrorVariable: errorVariable,
		HandlerSteps:  handlerSteps,
		RetryCount:    retryCount,
	})
	return b
}

// Variable sets an initial variable binding.
func (b *Builder) Variable(key string, value any) *Builder {
	b.variables[key] = value
	return b
}

func (b *Builder) TimeoutMs(timeoutMs int64) *Builder {
	b.timeoutMs = timeoutMs
	return b
}

func (b *Builder) MaxRetries(maxRetries uint) *Builder {
	b.maxRetries = maxRetries
	return b
}

// Step appends a custom step.
func (b *Builder) Step(step model.Step) *Builder {
	b.steps = append(b.steps, step)
	return b
}

func (b *Builder) Build() *model.WorkflowDefinition {
	id := b.id
	if len(id) == 0 {
		id = uuid.NewString()
	}
	return &model.WorkflowDefinition{
		Id:          id,
		Name:        b.name,
		Description: b.description,
		Steps:       b.steps,
		Variables:   b.variables,
		TimeoutMs:   b.timeoutMs,
		MaxRetries:  b.maxRetries,
		CreatedAt:   time.Now().UTC(),
	}
}
