package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/gianlucamazza/webagent/logger"
	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/provider"
	"github.com/gianlucamazza/webagent/tool"
	"go.uber.org/zap"
)

const defaultSystemPrompt = `You are an autonomous web browsing agent. Your goal is to accomplish tasks by using the available tools.

Follow this thought process for each step:
1. THOUGHT: Analyze the current situation and decide what to do next
2. ACTION: Choose a tool to use (or FINISH if task is complete)
3. ACTION INPUT: Provide the parameters for the tool
4. OBSERVATION: Observe the result of the action

Available format:
THOUGHT: <your reasoning>
ACTION: <tool_name or FINISH>
ACTION INPUT: <JSON parameters or final answer>

When you have completed the task, use ACTION: FINISH with your final answer in ACTION INPUT.

Be concise but thorough. Think step by step.`

// Orchestrator drives an autonomous reasoning loop: it repeatedly asks the
// language model provider for the next action, dispatches it through the
// tool executor and folds the observation back into the conversation until
// the model finishes or the iteration cap is reached.
//
// A failed tool call is recoverable conversation content the model can
// react to; only a provider-level failure terminates the run.
type Orchestrator struct {
	provider     provider.Provider
	config       provider.Config
	tools        *tool.Registry
	executor     tool.Executor
	systemPrompt string
}

// NewOrchestrator builds an orchestrator. Tool dispatch defaults to the
// in-process local executor until a real one is attached.
func NewOrchestrator(p provider.Provider, config provider.Config, tools *tool.Registry) *Orchestrator {
	return &Orchestrator{
		provider:     p,
		config:       config,
		tools:        tools,
		executor:     tool.NewLocalExecutor(),
		systemPrompt: defaultSystemPrompt,
	}
}

func (o *Orchestrator) WithExecutor(executor tool.Executor) *Orchestrator {
	o.executor = executor
	return o
}

func (o *Orchestrator) WithSystemPrompt(prompt string) *Orchestrator {
	o.systemPrompt = prompt
	return o
}

// Execute runs one task to completion. The response object is always
// returned for the expected terminal outcomes; only provider failures
// surface as errors.
func (o *Orchestrator) Execute(ctx context.Context, task model.AgentTask) (*model.AgentResponse, error) {
	logger.Info("agent starting task", zap.String("goal", task.Goal))

	maxIterations := task.MaxIterations
	if maxIterations <= 0 {
		maxIterations = model.DEFAULT_AGENT_MAX_ITERATIONS
	}

	messages := []provider.Message{provider.SystemMessage(o.systemPrompt)}
	taskDescription := fmt.Sprintf("TASK: %s", task.Goal)
	if len(task.Context) > 0 {
		taskDescription += fmt.Sprintf("\n\nCONTEXT: %s", task.Context)
	}
	messages = append(messages, provider.UserMessage(taskDescription))

	schemas := o.tools.Schemas()
	iterations := 0
	for {
		if iterations >= maxIterations {
			logger.Warn("agent reached max iterations", zap.Int("maxIterations", maxIterations))
			return &model.AgentResponse{
				Success:    false,
				Result:     "Maximum iterations reached",
				Iterations: iterations,
				Error:      "Max iterations exceeded",
			}, nil
		}
		iterations++
		logger.Info("agent iteration", zap.Int("iteration", iterations), zap.Int("maxIterations", maxIterations))

		response, err := o.provider.ChatCompletionWithTools(ctx, messages, schemas, o.config)
		if err != nil {
			return nil, &provider.Error{Provider: o.provider.Name(), Err: err}
		}

		step := parseAgentStep(response.Content)
		logger.Info("agent thought", zap.String("thought", step.thought))

		if len(step.action) == 0 {
			messages = append(messages, provider.AssistantMessage(response.Content))
			continue
		}
		logger.Info("agent action", zap.String("action", step.action))

		if strings.EqualFold(step.action, "FINISH") {
			result := step.thought
			if s, ok := step.actionInput.(string); ok {
				result = s
			}
			logger.Info("agent finished", zap.Int("iterations", iterations))
			return &model.AgentResponse{
				Success:    true,
				Result:     result,
				Iterations: iterations,
			}, nil
		}

		observation := o.dispatch(ctx, step.action, step.actionInput)
		logger.Info("agent observation", zap.String("observation", observation))
		messages = append(messages, provider.AssistantMessage(response.Content))
		messages = append(messages, provider.UserMessage(fmt.Sprintf("OBSERVATION: %s", observation)))
	}
}

// dispatch executes the named tool and renders the outcome, success or
// failure, as observation text.
func (o *Orchestrator) dispatch(ctx context.Context, action string, input any) string {
	args, ok := input.(map[string]any)
	if !ok {
		args = make(map[string]any)
		if input != nil {
			args["input"] = input
		}
	}
	result, err := o.executor.Execute(ctx, action, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}
