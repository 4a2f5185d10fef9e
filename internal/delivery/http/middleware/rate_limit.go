package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Optional sink for rate limit events
	SecurityLogger *security.SecurityLogger
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// LoginRateLimitConfig is applied to the login routes.
func LoginRateLimitConfig(limit int, window time.Duration, sl *security.SecurityLogger) RateLimitConfig {
	return RateLimitConfig{
		Limit:          limit,
		Window:         window,
		KeyPrefix:      "rl:login:",
		SecurityLogger: sl,
	}
}

// PasswordRateLimitConfig is applied to forgot/reset password.
func PasswordRateLimitConfig(limit int, window time.Duration, sl *security.SecurityLogger) RateLimitConfig {
	return RateLimitConfig{
		Limit:          limit,
		Window:         window,
		KeyPrefix:      "rl:password:",
		SecurityLogger: sl,
	}
}

type rateLimiter struct {
	config RateLimitConfig
	client func() *goredis.Client
	store  sync.Map
	now    func() time.Time

	sweepMu   sync.Mutex
	nextSweep time.Time
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return newRateLimiter(config, redis.Client).handle
}

func newRateLimiter(config RateLimitConfig, client func() *goredis.Client) *rateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.Limit <= 0 {
		config.Limit = 10
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	return &rateLimiter{config: config, client: client, now: time.Now}
}

func (rl *rateLimiter) handle(c *gin.Context) {
	fullKey := rl.config.KeyPrefix + rl.config.KeyFunc(c)
	now := rl.now()

	var count int
	var resetAt time.Time

	// Try Redis first
	if client := rl.client(); client != nil {
		var err error
		count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, rl.config.Window)
		if err != nil {
			rl.logError(c, err)
			if rl.config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
			count, resetAt = rl.checkInMemory(fullKey, now)
		}
	} else {
		count, resetAt = rl.checkInMemory(fullKey, now)
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
	c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

	// Check if limit exceeded
	if count > rl.config.Limit {
		retryAfter := int(resetAt.Sub(now).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("Retry-After", strconv.Itoa(retryAfter))

		if rl.config.SecurityLogger != nil {
			rl.config.SecurityLogger.LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				response.RequestID(c),
				c.FullPath(),
			)
		}

		response.Error(c, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
		c.Abort()
		return
	}

	c.Header("X-RateLimit-Remaining", strconv.Itoa(max(rl.config.Limit-count, 0)))
	c.Next()
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// checkInMemory is the fallback when Redis is not configured or failing.
func (rl *rateLimiter) checkInMemory(key string, now time.Time) (int, time.Time) {
	rl.sweep(now)

	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(rl.config.Window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(rl.config.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}

// sweep drops expired fallback entries at most once per window.
func (rl *rateLimiter) sweep(now time.Time) {
	rl.sweepMu.Lock()
	if now.Before(rl.nextSweep) {
		rl.sweepMu.Unlock()
		return
	}
	rl.nextSweep = now.Add(rl.config.Window)
	rl.sweepMu.Unlock()

	rl.store.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			rl.store.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

func (rl *rateLimiter) logError(c *gin.Context, err error) {
	if rl.config.SecurityLogger == nil {
		return
	}
	rl.config.SecurityLogger.Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitTriggered,
		SubjectType: "system",
		IP:          c.ClientIP(),
		RequestID:   response.RequestID(c),
		Details: map[string]interface{}{
			"error_type": "redis_error",
			"error":      err.Error(),
		},
	})
}
