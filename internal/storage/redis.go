package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the slot under the StorageKey key.
type RedisStorage struct {
	client *redis.Client
}

// ConnectRedis connects to addr and verifies the connection.
func ConnectRedis(ctx context.Context, addr, password string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStorage{client: client}, nil
}

// Load gets the slot value.
func (r *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, StorageKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", StorageKey, err)
	}
	return data, nil
}

// Save sets the slot value without expiry.
func (r *RedisStorage) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, StorageKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", StorageKey, err)
	}
	return nil
}

// Clear deletes the slot key.
func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, StorageKey).Err(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", StorageKey, err)
	}
	return nil
}

// Close closes the client.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
