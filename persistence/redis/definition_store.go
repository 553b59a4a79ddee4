package redis

import (
	"context"
	"errors"

	rd "github.com/go-redis/redis/v9"
	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/persistence"
	"github.com/gianlucamazza/webagent/util"
)

const WORKFLOW_DEF string = "WF_DEF"

var _ persistence.DefinitionStore = new(redisDefinitionStore)

type redisDefinitionStore struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.WorkflowDefinition]
}

func NewRedisDefinitionStore(conf Config) *redisDefinitionStore {
	return &redisDefinitionStore{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowDefinition](),
	}
}

func (rds *redisDefinitionStore) Save(def *model.WorkflowDefinition) error {
	key := rds.getNamespaceKey(WORKFLOW_DEF, def.Id)
	ctx := context.Background()
	data, err := rds.encoderDecoder.Encode(*def)
	if err != nil {
		return err
	}
	if err := rds.redisClient.Set(ctx, key, data, 0).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rds *redisDefinitionStore) Get(id string) (*model.WorkflowDefinition, error) {
	key := rds.getNamespaceKey(WORKFLOW_DEF, id)
	ctx := context.Background()
	val, err := rds.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, persistence.NotFoundError{Key: id}
		}
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rds.encoderDecoder.Decode([]byte(val))
}

func (rds *redisDefinitionStore) Delete(id string) error {
	key := rds.getNamespaceKey(WORKFLOW_DEF, id)
	ctx := context.Background()
	if err := rds.redisClient.Del(ctx, key).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}
