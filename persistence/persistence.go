package persistence

import (
	"fmt"

	"github.com/gianlucamazza/webagent/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

type NotFoundError struct {
	Key string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no entry found for %s", e.Key)
}

// DefinitionStore persists workflow definitions.
type DefinitionStore interface {
	Save(def *model.WorkflowDefinition) error
	Get(id string) (*model.WorkflowDefinition, error)
	Delete(id string) error
}

// StateStore persists run state snapshots so a paused or failed run can be
// resumed after a process restart.
type StateStore interface {
	Save(state *model.WorkflowState) error
	Get(workflowId string) (*model.WorkflowState, error)
	Delete(workflowId string) error
}
