package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-demo/internal/domain/run"
)

// latestKey holds the most recent run record.
const latestKey = "demo:run:latest"

// RunCache defines the interface for run record caching operations.
type RunCache interface {
	// GetLatest retrieves the latest run from cache.
	// Returns nil if nothing is cached.
	GetLatest(ctx context.Context) (*run.Record, error)

	// SetLatest stores the latest run with the configured TTL.
	SetLatest(ctx context.Context, rec *run.Record) error

	// DeleteLatest removes the cached latest run.
	DeleteLatest(ctx context.Context) error
}

// RedisRunCache implements RunCache using Redis as the backing store.
type RedisRunCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisRunCache creates a new Redis-backed run cache.
func NewRedisRunCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisRunCache {
	return &RedisRunCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// GetLatest retrieves the latest run from Redis.
func (c *RedisRunCache) GetLatest(ctx context.Context) (*run.Record, error) {
	data, err := c.client.Get(ctx, latestKey).Bytes()
	if err == redis.Nil {
		c.log.Debug("cache miss", zap.String("key", latestKey))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("key", latestKey), zap.Error(err))
		return nil, err
	}

	var rec run.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		c.log.Error("failed to unmarshal cached run", zap.String("key", latestKey), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("key", latestKey), zap.Int64("id", rec.ID))
	return &rec, nil
}

// SetLatest stores the latest run in Redis with TTL.
func (c *RedisRunCache) SetLatest(ctx context.Context, rec *run.Record) error {
	if rec == nil {
		return fmt.Errorf("cannot cache nil run")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		c.log.Error("failed to marshal run for cache", zap.Int64("id", rec.ID), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, latestKey, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.Int64("id", rec.ID), zap.Error(err))
		return err
	}

	c.log.Debug("cached latest run", zap.Int64("id", rec.ID), zap.Duration("ttl", c.ttl))
	return nil
}

// DeleteLatest removes the latest run from Redis.
func (c *RedisRunCache) DeleteLatest(ctx context.Context) error {
	if err := c.client.Del(ctx, latestKey).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.String("key", latestKey), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.String("key", latestKey))
	return nil
}
