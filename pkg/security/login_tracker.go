package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window the failures are counted in
	BlockDuration time.Duration // how long a block lasts
	KeyPrefix     string        // separates account collections, e.g. "user" or "recruiter"
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		KeyPrefix:     "user",
	}
}

// LoginTracker counts failed logins per email in Redis and blocks the email
// once MaxAttempts is reached. Without Redis it never blocks.
type LoginTracker struct {
	config LoginTrackerConfig
	logger *SecurityLogger
	client func() *goredis.Client
}

func NewLoginTracker(config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	return &LoginTracker{
		config: config,
		logger: logger,
		client: redis.Client,
	}
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func (lt *LoginTracker) failKey(email string) string {
	return "fail:login:" + lt.config.KeyPrefix + ":" + email
}

func (lt *LoginTracker) blockKey(email string) string {
	return "blocked:login:" + lt.config.KeyPrefix + ":" + email
}

// IsBlocked checks if the given email is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	client := lt.client()
	if client == nil {
		return false, nil
	}

	exists, err := client.Exists(ctx, lt.blockKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt counts a failure and reports whether the email is now blocked.
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, error) {
	lt.logger.LogLoginFailed(ctx, email, ip, userAgent, requestID, "invalid_credentials")

	client := lt.client()
	if client == nil {
		return false, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())
	result, err := client.Eval(ctx, incrWithTTLScript, []string{lt.failKey(email)}, ttlSeconds).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment login counter: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected result type from Lua script")
	}

	if int(count) < lt.config.MaxAttempts {
		return false, nil
	}

	if err := client.Set(ctx, lt.blockKey(email), "1", lt.config.BlockDuration).Err(); err != nil {
		return true, fmt.Errorf("failed to set login block: %w", err)
	}
	lt.logger.LogBlockCreated(ctx, "email", email, ip, requestID, int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email string) error {
	client := lt.client()
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, lt.failKey(email)).Err(); err != nil {
		lt.logger.zapLogger.Warn("failed to clear login attempts", zap.Error(err))
		return fmt.Errorf("failed to clear login attempts: %w", err)
	}
	return nil
}
