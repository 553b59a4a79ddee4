package inmem

import (
	"sync"

	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/persistence"
	"github.com/gianlucamazza/webagent/util"
)

var _ persistence.DefinitionStore = new(InMemDefinitionStore)

// InMemDefinitionStore keeps definitions in process memory. Entries are
// stored through the JSON codec so callers get the same round-trip
// semantics as the durable stores.
type InMemDefinitionStore struct {
	mu             sync.RWMutex
	defs           map[string][]byte
	encoderDecoder util.EncoderDecoder[model.WorkflowDefinition]
}

func NewInMemDefinitionStore() *InMemDefinitionStore {
	return &InMemDefinitionStore{
		defs:           make(map[string][]byte),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowDefinition](),
	}
}

func (s *InMemDefinitionStore) Save(def *model.WorkflowDefinition) error {
	data, err := s.encoderDecoder.Encode(*def)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[def.Id] = data
	return nil
}

func (s *InMemDefinitionStore) Get(id string) (*model.WorkflowDefinition, error) {
	s.mu.RLock()
	data, ok := s.defs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, persistence.NotFoundError{Key: id}
	}
	return s.encoderDecoder.Decode(data)
}

func (s *InMemDefinitionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.defs[id]; !ok {
		return persistence.NotFoundError{Key: id}
	}
	delete(s.defs, id)
	return nil
}

var _ persistence.StateStore = new(InMemStateStore)

type InMemStateStore struct {
	mu             sync.RWMutex
	states         map[string][]byte
	encoderDecoder util.EncoderDecoder[model.WorkflowState]
}

func NewInMemStateStore() *InMemStateStore {
	return &InMemStateStore{
		states:         make(map[string][]byte),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowState](),
	}
}

func (s *InMemStateStore) Save(state *model.WorkflowState) error {
	data, err := s.encoderDecoder.Encode(*state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.WorkflowId] = data
	return nil
}

func (s *InMemStateStore) Get(workflowId string) (*model.WorkflowState, error) {
	s.mu.RLock()
	data, ok := s.states[workflowId]
	s.mu.RUnlock()
	if !ok {
		return nil, persistence.NotFoundError{Key: workflowId}
	}
	return s.encoderDecoder.Decode(data)
}

func (s *InMemStateStore) Delete(workflowId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.states[workflowId]; !ok {
		return persistence.NotFoundError{Key: workflowId}
	}
	delete(s.states, workflowId)
	return nil
}
