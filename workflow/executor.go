package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gianlucamazza/webagent/analytics"
	"github.com/gianlucamazza/webagent/logger"
	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/tool"
	"github.com/gianlucamazza/webagent/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DEFAULT_LOOP_MAX_ITERATIONS = 100
const DEFAULT_PARALLEL_MAX_CONCURRENCY = 5
const DEFAULT_HANDLER_RETRY_COUNT = 3
const waitPollInterval = 100 * time.Millisecond

// RetryPolicy controls per-step error recovery.
type RetryPolicy struct {
	MaxAttempts uint  `json:"maxAttempts"`
	BackoffMs   int64 `json:"backoffMs"`
	Exponential bool  `json:"exponential"`
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BackoffMs:   1000,
		Exponential: true,
	}
}

// Executor interprets a workflow definition one step at a time, retrying
// each step per policy and recording every attempt in the run state. A step
// whose retries are exhausted fails the run; later steps never execute.
type Executor struct {
	tools      tool.Executor
	conditions *conditionEvaluator
}

// NewExecutor builds an executor. tools may be nil; steps and conditions
// that need the collaborator then fail with ErrBrowserNotAvailable or
// ConditionFailedError instead of panicking.
func NewExecutor(tools tool.Executor) *Executor {
	return &Executor{
		tools:      tools,
		conditions: &conditionEvaluator{tools: tools},
	}
}

// Execute runs the definition under the default retry policy.
func (e *Executor) Execute(ctx context.Context, def *model.WorkflowDefinition) (*model.WorkflowState, error) {
	return e.ExecuteWithRetry(ctx, def, DefaultRetryPolicy())
}

// ExecuteWithRetry runs all steps of the definition strictly in order. The
// returned state is always populated, including on step failure; only a
// malformed definition surfaces as an error.
func (e *Executor) ExecuteWithRetry(ctx context.Context, def *model.WorkflowDefinition, policy RetryPolicy) (*model.WorkflowState, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}
	logger.Info("starting workflow execution", zap.String("workflow", def.Name), zap.String("id", def.Id))
	now := time.Now().UTC()
	state := &model.WorkflowState{
		WorkflowId:  def.Id,
		CurrentStep: 0,
		Variables:   util.DeepCopyMap(def.Variables),
		StepResults: make([]model.StepResult, 0, len(def.Steps)),
		StartTime:   now,
		LastUpdate:  now,
		Status:      model.WORKFLOW_STATUS_RUNNING,
	}
	if state.Variables == nil {
		state.Variables = make(map[string]any)
	}
	return e.run(ctx, def, state, policy, 0)
}

// Resume continues a persisted run from its current step, reusing the same
// retry and recording machinery as a fresh execution.
func (e *Executor) Resume(ctx context.Context, def *model.WorkflowDefinition, state *model.WorkflowState) (*model.WorkflowState, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}
	if state == nil {
		return nil, &ValidationError{Message: "state is nil"}
	}
	resumed := cloneState(state)
	resumed.Status = model.WORKFLOW_STATUS_RUNNING
	resumed.LastUpdate = time.Now().UTC()
	logger.Info("resuming workflow execution", zap.String("workflow", def.Name), zap.Int("step", resumed.CurrentStep))
	return e.run(ctx, def, resumed, DefaultRetryPolicy(), resumed.CurrentStep)
}

func (e *Executor) run(ctx context.Context, def *model.WorkflowDefinition, state *model.WorkflowState, policy RetryPolicy, startStep int) (*model.WorkflowState, error) {
	for i := startStep; i < len(def.Steps); i++ {
		step := &def.Steps[i]
		state.CurrentStep = i

		start := time.Now()
		output, err := e.executeStepWithRetry(ctx, step, state, policy)
		result := model.StepResult{
			StepName:        step.Name,
			Success:         err == nil,
			Output:          output,
			ExecutionTimeMs: time.Since(start).Milliseconds(),
			Timestamp:       time.Now().UTC(),
		}
		if err != nil {
			result.Output = nil
			result.Error = err.Error()
			analytics.RecordStepFailure(def.Id, def.Name, step.Name, err.Error())
		} else {
			analytics.RecordStepSuccess(def.Id, def.Name, step.Name, output)
		}
		state.StepResults = append(state.StepResults, result)
		state.LastUpdate = time.Now().UTC()

		if err != nil {
			logger.Error("step failed after retries", zap.String("workflow", def.Name), zap.String("step", step.Name), zap.Error(err))
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				state.Status = model.WORKFLOW_STATUS_CANCELLED
			} else {
				state.Status = model.WORKFLOW_STATUS_FAILED
			}
			return state, nil
		}
	}
	state.Status = model.WORKFLOW_STATUS_COMPLETED
	logger.Info("workflow completed", zap.String("workflow", def.Name), zap.String("id", def.Id))
	return state, nil
}

func (e *Executor) executeStepWithRetry(ctx context.Context, step *model.Step, state *model.WorkflowState, policy RetryPolicy) (any, error) {
	attempts := policy.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}
	for attempt := uint(1); attempt <= attempts; attempt++ {
		output, err := e.executeStep(ctx, step, state, policy)
		if err == nil {
			return output, nil
		}
		logger.Warn("step attempt failed",
			zap.String("step", step.Name),
			zap.Uint("attempt", attempt),
			zap.Uint("maxAttempts", attempts),
			zap.Error(err))
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if attempt < attempts {
			backoff := policy.BackoffMs
			if policy.Exponential {
				backoff = policy.BackoffMs << (attempt - 1)
			}
			select {
			case <-time.After(time.Duration(backoff) * time.Millisecond):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, &MaxRetriesExceededError{StepName: step.Name}
}

func (e *Executor) executeStep(ctx context.Context, step *model.Step, state *model.WorkflowState, policy RetryPolicy) (any, error) {
	switch step.Type {
	case model.STEP_TYPE_TOOL:
		return e.executeToolCall(ctx, step.Call, state.Variables)
	case model.STEP_TYPE_BRANCH:
		return e.executeBranch(ctx, step, state, policy)
	case model.STEP_TYPE_LOOP:
		return e.executeLoop(ctx, step, state)
	case model.STEP_TYPE_SET_VARIABLE:
		state.Variables[step.Variable] = step.Value
		return fmt.Sprintf("Set %s = %v", step.Variable, step.Value), nil
	case model.STEP_TYPE_WAIT:
		return e.executeWait(ctx, step, state)
	case model.STEP_TYPE_PARALLEL:
		return e.executeParallel(ctx, step, state)
	case model.STEP_TYPE_ERROR_HANDLER:
		return e.executeErrorHandler(ctx, step, state)
	}
	return nil, &ValidationError{Message: fmt.Sprintf("step %s has unknown type %s", step.Name, step.Type)}
}

func (e *Executor) executeToolCall(ctx context.Context, call *model.ToolCall, variables map[string]any) (any, error) {
	if e.tools == nil {
		return nil, ErrBrowserNotAvailable
	}
	args := make(map[string]any)
	if len(call.Function.Arguments) > 0 {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, &StepFailedError{StepName: call.Function.Name, Err: err}
		}
	}
	args = util.ResolveInputParams(variables, args)
	result, err := e.tools.Execute(ctx, call.Function.Name, args)
	if err != nil {
		return nil, &StepFailedError{StepName: call.Function.Name, Err: err}
	}
	return result, nil
}

// executeBranch evaluates the condition and recurses into the chosen
// branch with the same retry and recording machinery. The nested results
// are embedded in the step output instead of the run-level history.
func (e *Executor) executeBranch(ctx context.Context, step *model.Step, state *model.WorkflowState, policy RetryPolicy) (any, error) {
	met, err := e.conditions.Evaluate(ctx, *step.Condition, state.Variables)
	if err != nil {
		return nil, err
	}
	branch := "then"
	steps := step.ThenSteps
	if !met {
		branch = "else"
		steps = step.ElseSteps
	}
	nested := make([]model.StepResult, 0, len(steps))
	for i := range steps {
		sub := &steps[i]
		start := time.Now()
		output, err := e.executeStepWithRetry(ctx, sub, state, policy)
		if err != nil {
			return nil, &StepFailedError{StepName: sub.Name, Err: err}
		}
		nested = append(nested, model.StepResult{
			StepName:        sub.Name,
			Success:         true,
			Output:          output,
			ExecutionTimeMs: time.Since(start).Milliseconds(),
			Timestamp:       time.Now().UTC(),
		})
	}
	return map[string]any{
		"condition": met,
		"branch":    branch,
		"results":   nested,
	}, nil
}

// executeLoop binds each item to the iteration variable and runs the body.
// Only tool and set-variable steps are supported inside a loop body; other
// kinds yield a placeholder result. This restriction is intentional.
func (e *Executor) executeLoop(ctx context.Context, step *model.Step, state *model.WorkflowState) (any, error) {
	maxIter := step.MaxIterations
	if maxIter <= 0 {
		maxIter = DEFAULT_LOOP_MAX_ITERATIONS
	}
	results := make([]any, 0, len(step.Items))
	for i, item := range step.Items {
		if i >= maxIter {
			break
		}
		state.Variables[step.Variable] = item
		iterResults := make([]any, 0, len(step.BodySteps))
		for j := range step.BodySteps {
			output, err := e.executeRestrictedStep(ctx, &step.BodySteps[j], state.Variables, "Step skipped in loop")
			if err != nil {
				return nil, err
			}
			iterResults = append(iterResults, output)
		}
		results = append(results, iterResults)
	}
	return results, nil
}

// executeWait polls the optional condition at a fixed interval against the
// live run state. Reaching the timeout is a successful outcome, reported
// only through the output payload.
func (e *Executor) executeWait(ctx context.Context, step *model.Step, state *model.WorkflowState) (any, error) {
	deadline := time.Now().Add(time.Duration(step.TimeoutMs) * time.Millisecond)
	for time.Now().Before(deadline) {
		if step.Condition != nil {
			met, err := e.conditions.Evaluate(ctx, *step.Condition, state.Variables)
			if err != nil {
				return nil, err
			}
			if met {
				return "Condition met", nil
			}
		}
		select {
		case <-time.After(waitPollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return "Timeout reached", nil
}

// executeParallel runs branch sequences concurrently in fork-join batches
// bounded by the concurrency limit. Each branch works on a private variable
// snapshot; after a batch completes the snapshots are merged back in
// ascending branch order, so the highest branch index wins a conflicting
// write. A branch error cancels its batch and no later batch starts.
func (e *Executor) executeParallel(ctx context.Context, step *model.Step, state *model.WorkflowState) (any, error) {
	maxConc := step.MaxConcurrency
	if maxConc <= 0 {
		maxConc = DEFAULT_PARALLEL_MAX_CONCURRENCY
	}
	results := make([]any, 0, len(step.Branches))
	for _, batch := range util.Chunk(step.Branches, maxConc) {
		base := util.DeepCopyMap(state.Variables)
		branchOutputs := make([][]any, len(batch))
		branchVars := make([]map[string]any, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i := range batch {
			i := i
			steps := batch[i]
			vars := util.DeepCopyMap(state.Variables)
			branchVars[i] = vars
			g.Go(func() error {
				outputs := make([]any, 0, len(steps))
				for j := range steps {
					output, err := e.executeRestrictedStep(gctx, &steps[j], vars, "Step skipped in parallel branch")
					if err != nil {
						return err
					}
					outputs = append(outputs, output)
				}
				branchOutputs[i] = outputs
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for i := range batch {
			for k, v := range branchVars[i] {
				if bv, ok := base[k]; !ok || !jsonEqual(bv, v) {
					state.Variables[k] = v
				}
			}
		}
		for _, outputs := range branchOutputs {
			results = append(results, outputs...)
		}
	}
	return results, nil
}

// executeErrorHandler runs the handler steps until none fail, bounded by
// the retry count, whenever the watched variable holds a non-null value.
func (e *Executor) executeErrorHandler(ctx context.Context, step *model.Step, state *model.WorkflowState) (any, error) {
	errVal, ok := state.Variables[step.ErrorVariable]
	if !ok || errVal == nil {
		return "No error to handle", nil
	}
	retries := step.RetryCount
	if retries <= 0 {
		retries = DEFAULT_HANDLER_RETRY_COUNT
	}
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		logger.Info("error handler attempt",
			zap.String("step", step.Name),
			zap.Int("attempt", attempt),
			zap.Int("retries", retries))
		outputs := make([]any, 0, len(step.HandlerSteps))
		lastErr = nil
		for j := range step.HandlerSteps {
			output, err := e.executeRestrictedStep(ctx, &step.HandlerSteps[j], state.Variables, "Handler step executed")
			if err != nil {
				lastErr = err
				break
			}
			outputs = append(outputs, output)
		}
		if lastErr == nil {
			return outputs, nil
		}
	}
	return nil, lastErr
}

// executeRestrictedStep handles the step subset allowed inside loop,
// parallel and handler bodies.
func (e *Executor) executeRestrictedStep(ctx context.Context, step *model.Step, variables map[string]any, skipped string) (any, error) {
	switch step.Type {
	case model.STEP_TYPE_TOOL:
		return e.executeToolCall(ctx, step.Call, variables)
	case model.STEP_TYPE_SET_VARIABLE:
		variables[step.Variable] = step.Value
		return fmt.Sprintf("Set %s", step.Variable), nil
	default:
		return skipped, nil
	}
}

func cloneState(state *model.WorkflowState) *model.WorkflowState {
	cloned := *state
	cloned.Variables = util.DeepCopyMap(state.Variables)
	if cloned.Variables == nil {
		cloned.Variables = make(map[string]any)
	}
	cloned.StepResults = make([]model.StepResult, len(state.StepResults))
	copy(cloned.StepResults, state.StepResults)
	return &cloned
}
