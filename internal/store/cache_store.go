package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

// CacheStore provides helpers around Redis interactions for cached
// day-schedule payloads.
type CacheStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheStore constructs a cache store.
func NewCacheStore(client *redis.Client, logger *zap.Logger) *CacheStore {
	return &CacheStore{client: client, logger: logger}
}

// Get retrieves and unmarshals the cached value into the provided destination.
func (s *CacheStore) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}

	return nil
}

// Set marshals the provided value and stores it with the given TTL.
func (s *CacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// DeleteByPattern removes cached entries matching the provided pattern.
func (s *CacheStore) DeleteByPattern(ctx context.Context, pattern string) error {
	if s.client == nil {
		return nil
	}

	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan pattern %s: %w", pattern, err)
	}

	return nil
}

// Close releases the underlying Redis connection if present.
func (s *CacheStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
