package cache

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

// StatusTypeCache caches status catalog name-to-ID lookups. The catalog is
// tiny and nearly immutable, so entries live long with a jittered TTL.
type StatusTypeCache interface {
	GetStatusID(ctx context.Context, name string) (uint, bool, error)
	SetStatusID(ctx context.Context, name string, id uint) error
	// SetNullMarker caches a short-lived marker indicating the status name was
	// not found in DB, preventing repeated DB lookups (cache penetration
	// protection).
	SetNullMarker(ctx context.Context, name string) error
	Invalidate(ctx context.Context, name string) error
}

const (
	statusKeyPrefix  = "billing:status:"
	baseStatusTTL    = 60 * time.Minute
	statusTTLJitter  = 20 * time.Minute // TTL range: 60-80 min (anti-stampede)
	statusNullTTL    = 2 * time.Minute  // Short TTL for not-found markers
	statusNullMarker = "_null"
)

// RedisStatusTypeCache implements StatusTypeCache using Redis strings.
type RedisStatusTypeCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisStatusTypeCache(client *redis.Client, logger logger.Interface) *RedisStatusTypeCache {
	return &RedisStatusTypeCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisStatusTypeCache) key(name string) string {
	return statusKeyPrefix + name
}

// GetStatusID returns the cached ID for a status name. The boolean reports a
// cache hit; a hit with ID zero means a cached not-found marker.
func (c *RedisStatusTypeCache) GetStatusID(ctx context.Context, name string) (uint, bool, error) {
	val, err := c.client.Get(ctx, c.key(name)).Result()
	if err == redis.Nil {
		return 0, false, nil // Cache miss
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get status from cache: %w", err)
	}

	if val == statusNullMarker {
		return 0, true, nil
	}

	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		c.logger.Warnw("corrupt status cache entry", "name", name, "value", val)
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (c *RedisStatusTypeCache) SetStatusID(ctx context.Context, name string, id uint) error {
	ttl := baseStatusTTL + time.Duration(rand.Int63n(int64(statusTTLJitter)))
	if err := c.client.Set(ctx, c.key(name), strconv.FormatUint(uint64(id), 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache status ID: %w", err)
	}
	return nil
}

func (c *RedisStatusTypeCache) SetNullMarker(ctx context.Context, name string) error {
	if err := c.client.Set(ctx, c.key(name), statusNullMarker, statusNullTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache status null marker: %w", err)
	}
	return nil
}

func (c *RedisStatusTypeCache) Invalidate(ctx context.Context, name string) error {
	if err := c.client.Del(ctx, c.key(name)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate status cache: %w", err)
	}
	return nil
}
