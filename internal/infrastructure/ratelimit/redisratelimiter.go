package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a sliding window log kept in a sorted set per key, so
// every server instance shares the same counts.
type RedisRateLimiter struct {
	client *redis.Client
	config Config
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, prefix string, config Config) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		config: config,
		prefix: prefix,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := l.getKey(key)
	windowStart := now.Add(-l.config.Window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, l.config.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(l.config.Limit), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.getKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string) string {
	return fmt.Sprintf("%s:ratelimit:%s", l.prefix, identifier)
}
