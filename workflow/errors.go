package workflow

import (
	"errors"
	"fmt"
)

// ErrBrowserNotAvailable is returned when a step needs the tool executor
// collaborator and none is configured.
var ErrBrowserNotAvailable = errors.New("browser not available")

type StepFailedError struct {
	StepName string
	Err      error
}

func (e *StepFailedError) Error() string {
	return fmt.Sprintf("step execution failed: %s - %v", e.StepName, e.Err)
}

func (e *StepFailedError) Unwrap() error {
	return e.Err
}

type ConditionFailedError struct {
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("conditional evaluation failed: %s", e.Condition)
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workflow validation error: %s", e.Message)
}

type MaxRetriesExceededError struct {
	StepName string
}

func (e *MaxRetriesExceededError) Error() string {
	return fmt.Sprintf("max retries exceeded for step: %s", e.StepName)
}
