package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a plain redis string.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore on an already connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// SetMany writes all entries inside MULTI/EXEC.
func (s *RedisStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, k, v, 0)
		}
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
