package workflow

import (
	"fmt"

	"github.com/gianlucamazza/webagent/model"
)

// ValidateDefinition checks a definition before execution or registration.
func ValidateDefinition(def *model.WorkflowDefinition) error {
	if def == nil {
		return &ValidationError{Message: "definition is nil"}
	}
	if len(def.Name) == 0 {
		return &ValidationError{Message: "workflow name can not be empty"}
	}
	if len(def.Steps) == 0 {
		return &ValidationError{Message: fmt.Sprintf("workflow %s has no steps", def.Name)}
	}
	for i := range def.Steps {
		if err := validateStep(&def.Steps[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(step *model.Step) error {
	if len(step.Name) == 0 {
		return &ValidationError{Message: "step name can not be empty"}
	}
	switch step.Type {
	case model.STEP_TYPE_TOOL:
		if step.Call == nil || len(step.Call.Function.Name) == 0 {
			return &ValidationError{Message: fmt.Sprintf("step %s requires a tool call", step.Name)}
		}
	case model.STEP_TYPE_BRANCH:
		if step.Condition == nil {
			return &ValidationError{Message: fmt.Sprintf("step %s requires a condition", step.Name)}
		}
		for _, nested := range [][]model.Step{step.ThenSteps, step.ElseSteps} {
			for i := range nested {
				if err := validateStep(&nested[i]); err != nil {
					return err
				}
			}
		}
	case model.STEP_TYPE_LOOP:
		if len(step.Variable) == 0 {
			return &ValidationError{Message: fmt.Sprintf("step %s requires an iteration variable", step.Name)}
		}
		for i := range step.BodySteps {
			if err := validateStep(&step.BodySteps[i]); err != nil {
				return err
			}
		}
	case model.STEP_TYPE_SET_VARIABLE:
		if len(step.Variable) == 0 {
			return &ValidationError{Message: fmt.Sprintf("step %s requires a variable name", step.Name)}
		}
	case model.STEP_TYPE_WAIT:
		if step.TimeoutMs <= 0 {
			return &ValidationError{Message: fmt.Sprintf("step %s requires a positive timeout", step.Name)}
		}
	case model.STEP_TYPE_PARALLEL:
		if len(step.Branches) == 0 {
			return &ValidationError{Message: fmt.Sprintf("step %s requires at least one branch", step.Name)}
		}
		for _, branch := range step.Branches {
			for i := range branch {
				if err := validateStep(&branch[i]); err != nil {
					return err
				}
			}
		}
	case model.STEP_TYPE_ERROR_HANDLER:
		if len(step.ErrorVariable) == 0 {
			return &ValidationError{Message: fmt.Sprintf("step %s requires an error variable", step.Name)}
		}
		for i := range step.HandlerSteps {
			if err := validateStep(&step.HandlerSteps[i]); err != nil {
				return err
			}
		}
	default:
		return &ValidationError{Message: fmt.Sprintf("step %s has unknown type %s", step.Name, step.Type)}
	}
	return nil
}
