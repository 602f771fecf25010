package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisStore - хранение коллекций в Redis, одна строка на ключ.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) SetItem(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) RemoveItem(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
