package model

import "time"

type WorkflowStatus string

const WORKFLOW_STATUS_PENDING WorkflowStatus = "PENDING"
const WORKFLOW_STATUS_RUNNING WorkflowStatus = "RUNNING"
const WORKFLOW_STATUS_PAUSED WorkflowStatus = "PAUSED"
const WORKFLOW_STATUS_COMPLETED WorkflowStatus = "COMPLETED"
const WORKFLOW_STATUS_FAILED WorkflowStatus = "FAILED"
const WORKFLOW_STATUS_CANCELLED WorkflowStatus = "CANCELLED"

// StepResult records one top-level step attempt. Nested loop/parallel/branch
// outcomes are embedded inside Output, never flattened into extra entries.
type StepResult struct {
	StepName        string    `json:"stepName"`
	Success         bool      `json:"success"`
	Output          any       `json:"output"`
	Error           string    `json:"error,omitempty"`
	ExecutionTimeMs int64     `json:"executionTimeMs"`
	Timestamp       time.Time `json:"timestamp"`
}

// WorkflowState is the single source of truth during and after a run. It is
// mutated only by the executor and serializes losslessly so a paused run can
// be resumed after a process restart.
type WorkflowState struct {
	WorkflowId  string         `json:"workflowId"`
	CurrentStep int            `json:"currentStep"`
	Variables   map[string]any `json:"variables"`
	StepResults []StepResult   `json:"stepResults"`
	StartTime   time.Time      `json:"startTime"`
	LastUpdate  time.Time      `json:"lastUpdate"`
	Status      WorkflowStatus `json:"status"`
}

// ProgressSummary reports aggregate execution progress for diagnostics.
func (s *WorkflowState) ProgressSummary() map[string]any {
	total := len(s.StepResults)
	successful := 0
	for _, r := range s.StepResults {
		if r.Success {
			successful++
		}
	}
	successRate := 0.0
	if total > 0 {
		successRate = float64(successful) / float64(total)
	}
	return map[string]any{
		"workflowId":         s.WorkflowId,
		"status":             string(s.Status),
		"currentStep":        s.CurrentStep,
		"totalStepsExecuted": total,
		"successfulSteps":    successful,
		"failedSteps":        total - successful,
		"successRate":        successRate,
		"startTime":          s.StartTime.Format(time.RFC3339),
		"lastUpdate":         s.LastUpdate.Format(time.RFC3339),
		"durationSeconds":    int64(s.LastUpdate.Sub(s.StartTime).Seconds()),
		"variablesCount":     len(s.Variables),
	}
}
