package repository

import (
	"context"
	"errors"
	"fmt"

	"bookreviews/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	stateKeyPrefix   = "reviewclient:state:"
	redisServiceName = "review-client"
)

// redisStateStorage хранит снимки состояния в Redis без TTL
type redisStateStorage struct {
	client *redis.Client
}

// NewRedisStateStorage создает Redis хранилище состояния
func NewRedisStateStorage(client *redis.Client) StateStorage {
	return &redisStateStorage{client: client}
}

func stateKey(name string) string {
	return stateKeyPrefix + name
}

func (r *redisStateStorage) Load(ctx context.Context, name string) ([]byte, error) {
	timer := metrics.NewRedisTimer(redisServiceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, stateKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		metrics.RecordRedisError(redisServiceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get client state %s from redis: %w", name, err)
	}

	return data, nil
}

func (r *redisStateStorage) Save(ctx context.Context, name string, value []byte) error {
	timer := metrics.NewRedisTimer(redisServiceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	// 0 - без истечения, состояние живет до явного выхода пользователя
	if err := r.client.Set(ctx, stateKey(name), value, 0).Err(); err != nil {
		metrics.RecordRedisError(redisServiceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set client state %s in redis: %w", name, err)
	}

	return nil
}
