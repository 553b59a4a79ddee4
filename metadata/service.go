package metadata

import (
	"time"

	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/persistence"
	"github.com/gianlucamazza/webagent/workflow"
	c "github.com/patrickmn/go-cache"
)

// Service validates and serves workflow definitions, caching parsed
// definitions in front of the backing store.
type Service interface {
	Register(def *model.WorkflowDefinition) error
	GetDefinition(id string) (*model.WorkflowDefinition, error)
	Delete(id string) error
}

type serviceImpl struct {
	store persistence.DefinitionStore
	cache *c.Cache
}

func NewService(store persistence.DefinitionStore) Service {
	return &serviceImpl{
		store: store,
		cache: c.New(c.NoExpiration, 10*time.Minute),
	}
}

func (s *serviceImpl) Register(def *model.WorkflowDefinition) error {
	if err := workflow.ValidateDefinition(def); err != nil {
		return err
	}
	if err := s.store.Save(def); err != nil {
		return err
	}
	s.cache.Set(def.Id, def, c.NoExpiration)
	return nil
}

func (s *serviceImpl) GetDefinition(id string) (*model.WorkflowDefinition, error) {
	if cached, found := s.cache.Get(id); found {
		return cached.(*model.WorkflowDefinition), nil
	}
	def, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(id, def, c.NoExpiration)
	return def, nil
}

func (s *serviceImpl) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.cache.Delete(id)
	return nil
}
