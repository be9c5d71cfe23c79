package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/focusmirror/focusmirror/internal/scoring/application/commands"
)

// RedisScoreCache caches computed weekly score payloads. The engine is
// idempotent, so a cached response only needs invalidating when the
// week's inputs change.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisScoreCache creates a score cache backed by Redis.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisScoreCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisScoreCache{client: client, ttl: ttl, logger: logger}
}

func scoreKey(userID uuid.UUID, weekKey string) string {
	return fmt.Sprintf("focusmirror:score:%s:%s", userID, weekKey)
}

// Get returns the cached result for the week, or nil on a miss. Cache
// errors degrade to a miss.
func (c *RedisScoreCache) Get(ctx context.Context, userID uuid.UUID, weekKey string) *commands.WeeklyScoreResult {
	data, err := c.client.Get(ctx, scoreKey(userID, weekKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		c.logger.Warn("score cache read failed", "error", err)
		return nil
	}

	var result commands.WeeklyScoreResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("score cache payload corrupt", "error", err)
		return nil
	}
	return &result
}

// Set stores the result for the week. Failures are logged, not returned.
func (c *RedisScoreCache) Set(ctx context.Context, userID uuid.UUID, weekKey string, result *commands.WeeklyScoreResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("score cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, scoreKey(userID, weekKey), data, c.ttl).Err(); err != nil {
		c.logger.Warn("score cache write failed", "error", err)
	}
}

// Invalidate drops the cached result for the week.
func (c *RedisScoreCache) Invalidate(ctx context.Context, userID uuid.UUID, weekKey string) {
	if err := c.client.Del(ctx, scoreKey(userID, weekKey)).Err(); err != nil {
		c.logger.Warn("score cache invalidate failed", "error", err)
	}
}

// InvalidateAll drops every cached week for the user, used after
// mutations that can touch historical weeks.
func (c *RedisScoreCache) InvalidateAll(ctx context.Context, userID uuid.UUID) {
	pattern := scoreKey(userID, "*")
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("score cache invalidate failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("score cache scan failed", "error", err)
	}
}
