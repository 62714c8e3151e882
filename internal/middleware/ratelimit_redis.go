package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the counter for KEYS[1] unless it already reached
// ARGV[1], starting a window of ARGV[2] seconds on first use.
// Returns {allowed, remaining, ttl}.
var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = tonumber(redis.call('GET', key) or '0')
local ttl = redis.call('TTL', key)
if ttl < 0 then
	ttl = window
end

if current < limit then
	current = redis.call('INCR', key)
	if current == 1 then
		redis.call('EXPIRE', key, window)
	end
	return {1, limit - current, ttl}
end
return {0, 0, ttl}
`)

// RedisRateLimiter is a fixed-window limiter shared by every replica using the same Redis.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisRateLimiter allows limit requests per key in each window. Keys are
// namespaced by prefix.
func NewRedisRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow counts one attempt for key in the current window.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", key, l.prefix)

	res, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, l.limit, int(l.window.Seconds())).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("rate limit check: %w", err)
	}
	if len(res) != 3 {
		return RateLimitResult{}, fmt.Errorf("rate limit check: unexpected result %v", res)
	}

	return RateLimitResult{
		Allowed:   res[0] == 1,
		Limit:     l.limit,
		Remaining: int(res[1]),
		ResetIn:   time.Duration(res[2]) * time.Second,
	}, nil
}
