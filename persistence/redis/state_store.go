package redis

import (
	"context"
	"errors"

	rd "github.com/go-redis/redis/v9"
	"github.com/gianlucamazza/webagent/model"
	"github.com/gianlucamazza/webagent/persistence"
	"github.com/gianlucamazza/webagent/util"
)

const WORKFLOW_STATE string = "WF_STATE"

var _ persistence.StateStore = new(redisStateStore)

type redisStateStore struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.WorkflowState]
}

func NewRedisStateStore(conf Config) *redisStateStore {
	return &redisStateStore{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.WorkflowState](),
	}
}

func (rss *redisStateStore) Save(state *model.WorkflowState) error {
	key := rss.getNamespaceKey(WORKFLOW_STATE, state.WorkflowId)
	ctx := context.Background()
	data, err := rss.encoderDecoder.Encode(*state)
	if err != nil {
		return err
	}
	if err := rss.redisClient.Set(ctx, key, data, 0).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rss *redisStateStore) Get(workflowId string) (*model.WorkflowState, error) {
	key := rss.getNamespaceKey(WORKFLOW_STATE, workflowId)
	ctx := context.Background()
	val, err := rss.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, persistence.NotFoundError{Key: workflowId}
		}
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rss.encoderDecoder.Decode([]byte(val))
}

func (rss *redisStateStore) Delete(workflowId string) error {
	key := rss.getNamespaceKey(WORKFLOW_STATE, workflowId)
	ctx := context.Background()
	if err := rss.redisClient.Del(ctx, key).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}
