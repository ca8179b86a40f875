// Package cache stores finished reports in Redis, keyed by a hash of the pipeline input.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/hiring-radar/internal/pipeline"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces report keys.
const DefaultPrefix = "hiring-radar:report:"

// kvStore is the subset of Redis the cache needs.
type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
	Close() error
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, value, ttl).Result()
}

func (s *redisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

// ReportCache is a Redis-backed pipeline.ReportCache.
type ReportCache struct {
	store  kvStore
	prefix string
	ttl    time.Duration
}

// New connects to the Redis server at url (redis://host:port/db) and verifies
// the connection.
func New(ctx context.Context, url string, ttl time.Duration) (*ReportCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return newWithStore(&redisStore{client: client}, DefaultPrefix, ttl), nil
}

func newWithStore(store kvStore, prefix string, ttl time.Duration) *ReportCache {
	return &ReportCache{store: store, prefix: prefix, ttl: ttl}
}

// Close closes the Redis client.
func (c *ReportCache) Close() error {
	return c.store.Close()
}

// Get returns the cached report for key, or nil, nil on a miss.
func (c *ReportCache) Get(ctx context.Context, key string) (*pipeline.Report, error) {
	val, ok, err := c.store.Get(ctx, c.prefix+key)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var report pipeline.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		// A report we cannot decode is treated as a miss and dropped.
		_ = c.store.Del(ctx, c.prefix+key)
		return nil, nil
	}
	return &report, nil
}

// Set stores report under key for the configured TTL.
func (c *ReportCache) Set(ctx context.Context, key string, report *pipeline.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := c.store.Set(ctx, c.prefix+key, string(payload), c.ttl); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// TryLock takes a short-lived named lock. It reports false when another holder
// already has it. The lock expires after ttl.
func (c *ReportCache) TryLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := c.store.SetNX(ctx, c.prefix+"lock:"+name, "1", ttl)
	if err != nil {
		return false, fmt.Errorf("failed to take lock %s: %w", name, err)
	}
	return ok, nil
}

// Unlock releases a lock taken with TryLock.
func (c *ReportCache) Unlock(ctx context.Context, name string) error {
	return c.store.Del(ctx, c.prefix+"lock:"+name)
}
