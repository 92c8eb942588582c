package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
)

type RedisConfig struct {
	Address  string
	Password string
	Database int
}

type redisStorage struct {
	client *redis.Client
}

// NewRedisStorage is the backend for server-side embedders that share one
// session between replicas. Values are stored without expiry: session
// lifetime is controlled by the service, not the store.
func NewRedisStorage(config RedisConfig) (Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.Database,
	})

	if _, err := client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &redisStorage{client: client}, nil
}

func (s *redisStorage) Get(_ context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(s.storageKey(key)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s from redis: %w", key, err)
	}

	return value, nil
}

func (s *redisStorage) Set(_ context.Context, key string, value []byte) error {
	err := s.client.Set(s.storageKey(key), value, 0).Err()
	if err != nil {
		return fmt.Errorf("set %s in redis: %w", key, err)
	}

	return nil
}

func (s *redisStorage) Delete(_ context.Context, key string) error {
	err := s.client.Del(s.storageKey(key)).Err()
	if err != nil {
		return fmt.Errorf("delete %s from redis: %w", key, err)
	}

	return nil
}

func (s *redisStorage) storageKey(key string) string {
	return fmt.Sprintf("strand:storage:%s", key)
}
