package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces admission state in a shared Redis instance.
const redisKeyPrefix = "userd:ratelimit:"

// RedisRateLimiter implements the sliding window over Redis sorted sets, for
// deployments where admission state must survive restarts or be shared.
// Scores are unix milliseconds; pruning removes scores at or below the window
// start, matching the in-memory limiter's boundary-inclusive expiry.
type RedisRateLimiter struct {
	client *redis.Client
	window time.Duration
	limit  int
}

// NewRedisRateLimiter creates a Redis-backed limiter.
func NewRedisRateLimiter(client *redis.Client, window time.Duration, limit int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		window: window,
		limit:  limit,
	}
}

// Check implements RateLimiter.
func (r *RedisRateLimiter) Check(ctx context.Context, key string) (Decision, error) {
	now := time.Now()
	windowStart := now.Add(-r.window).UnixMilli()
	rkey := redisKeyPrefix + key

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, rkey)
	oldestCmd := pipe.ZRangeWithScores(ctx, rkey, 0, 0)
	pipe.Expire(ctx, rkey, r.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := int(countCmd.Val())
	if count >= r.limit {
		wait := r.window
		if oldest := oldestCmd.Val(); len(oldest) > 0 {
			oldestAt := time.UnixMilli(int64(oldest[0].Score))
			wait = oldestAt.Add(r.window).Sub(now)
			if wait <= 0 {
				wait = time.Second
			}
		}
		return Decision{Allowed: false, Limit: r.limit, RetryAfter: wait}, nil
	}

	// Record the admitted request only when under the limit, so a saturated
	// window is not extended by rejected traffic.
	err := r.client.ZAdd(ctx, rkey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: fmt.Sprintf("%d:%d", now.UnixMilli(), now.UnixNano()),
	}).Err()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit record failed: %w", err)
	}

	return Decision{Allowed: true, Limit: r.limit, Remaining: r.limit - count - 1}, nil
}
