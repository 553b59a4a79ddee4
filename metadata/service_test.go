package metadata

import (
	"errors"
	"testing"

	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/persistence/inmem"
	"github.com/gianlucamazza/webagent/workflow"
	"github.com/stretchr/testify/require"
)

func sampleDefinition(id string) *model.WorkflowDefinition {
	return workflow.NewBuilder("sample").
		Id(id).
		Tool("open", "navigate_to", map[string]any{"url": "https://example.com"}).
		Build()
}

func TestServiceRegisterAndGet(t *testing.T) {
	store := inmem.NewInMemDefinitionStore()
	service := NewService(store)

	def := sampleDefinition("wf-1")
	require.NoError(t, service.Register(def))

	loaded, err := service.GetDefinition("wf-1")
	require.NoError(t, err)
	require.Equal(t, "sample", loaded.Name)

	// served from cache even after the backing entry is gone
	require.NoError(t, store.Delete("wf-1"))
	cached, err := service.GetDefinition("wf-1")
	require.NoError(t, err)
	require.Equal(t, "sample", cached.Name)
}

func TestServiceRejectsInvalidDefinition(t *testing.T) {
	service := NewService(inmem.NewInMemDefinitionStore())

	err := service.Register(&model.WorkflowDefinition{Id: "wf-2", Name: "empty"})
	var validationErr *workflow.ValidationError
	require.True(t, errors.As(err, &validationErr))

	_, err = service.GetDefinition("wf-2")
	require.Error(t, err)
}

func TestServiceDelete(t *testing.T) {
	store := inmem.NewInMemDefinitionStore()
	service := NewService(store)

	require.NoError(t, service.Register(sampleDefinition("wf-3")))
	require.NoError(t, service.Delete("wf-3"))

	_, err := service.GetDefinition("wf-3")
	require.Error(t, err)

	require.Error(t, service.Delete("wf-3"))
}

func TestServiceGetMissesFallThroughToStore(t *testing.T) {
	store := inmem.NewInMemDefinitionStore()
	require.NoError(t, store.Save(sampleDefinition("wf-4")))

	service := NewService(store)
	loaded, err := service.GetDefinition("wf-4")
	require.NoError(t, err)
	require.Equal(t, "wf-4", loaded.Id)
}
