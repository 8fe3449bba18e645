package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

// keyPrefix namespaces limiter keys inside a shared redis
const keyPrefix = "ratelimit:"

// RedisLimiter is a sliding-log limiter: each request is a member of a sorted set scored by its time
type RedisLimiter struct {
	client       redis.UniversalClient
	timeProvider core.TimeProvider
}

var _ gateway.RateLimiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a redis-backed limiter
func NewRedisLimiter(client redis.UniversalClient, timeProvider core.TimeProvider) *RedisLimiter {
	return &RedisLimiter{client: client, timeProvider: timeProvider}
}

// Allow records the request and reports whether the window still has room
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit entity.RateLimit) (bool, error) {
	if limit.Requests <= 0 || limit.Window <= 0 {
		return true, nil
	}

	now := l.timeProvider.Now()
	windowStart := now.Add(-limit.Window)
	redisKey := keyPrefix + key
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", "("+strconv.FormatInt(windowStart.UnixMilli(), 10))
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	pipe.PExpire(ctx, redisKey, limit.Window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit %s: %w", limit.Name, err)
	}

	if count.Val() < int64(limit.Requests) {
		return true, nil
	}

	// Denied requests do not consume the window
	if err := l.client.ZRem(ctx, redisKey, member).Err(); err != nil {
		return false, fmt.Errorf("rate limit %s: %w", limit.Name, err)
	}
	return false, nil
}
