package inmem

import (
	"errors"
	"testing"
	"time"

	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/persistence"
	"github.com/stretchr/testify/require"
)

func TestDefinitionStore(t *testing.T) {
	store := NewInMemDefinitionStore()

	def := &model.WorkflowDefinition{
		Id:   "wf-1",
		Name: "checkout",
		Steps: []model.Step{
			{Type: model.STEP_TYPE_SET_VARIABLE, Name: "init", Variable: "ready", Value: true},
		},
		Variables: map[string]any{"base": "https://example.com"},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(def))

	loaded, err := store.Get("wf-1")
	require.NoError(t, err)
	require.Equal(t, "checkout", loaded.Name)
	require.Equal(t, "https://example.com", loaded.Variables["base"])
	require.Len(t, loaded.Steps, 1)

	// the store hands back an independent copy
	loaded.Name = "mutated"
	again, err := store.Get("wf-1")
	require.NoError(t, err)
	require.Equal(t, "checkout", again.Name)

	require.NoError(t, store.Delete("wf-1"))
	_, err = store.Get("wf-1")
	var notFound persistence.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "wf-1", notFound.Key)

	require.Error(t, store.Delete("wf-1"))
}

func TestStateStore(t *testing.T) {
	store := NewInMemStateStore()

	_, err := store.Get("absent")
	var notFound persistence.NotFoundError
	require.True(t, errors.As(err, &notFound))

	state := &model.WorkflowState{
		WorkflowId:  "wf-1",
		CurrentStep: 1,
		Variables:   map[string]any{"count": float64(2)},
		StepResults: []model.StepResult{{StepName: "open", Success: true, Output: "ok"}},
		StartTime:   time.Now().UTC().Truncate(time.Second),
		LastUpdate:  time.Now().UTC().Truncate(time.Second),
		Status:      model.WORKFLOW_STATUS_PAUSED,
	}
	require.NoError(t, store.Save(state))

	loaded, err := store.Get("wf-1")
	require.NoError(t, err)
	require.Equal(t, state.Status, loaded.Status)
	require.Equal(t, state.CurrentStep, loaded.CurrentStep)
	require.Equal(t, float64(2), loaded.Variables["count"])
	require.Len(t, loaded.StepResults, 1)

	// save is an upsert
	state.Status = model.WORKFLOW_STATUS_COMPLETED
	require.NoError(t, store.Save(state))
	loaded, err = store.Get("wf-1")
	require.NoError(t, err)
	require.Equal(t, model.WORKFLOW_STATUS_COMPLETED, loaded.Status)

	require.NoError(t, store.Delete("wf-1"))
}
