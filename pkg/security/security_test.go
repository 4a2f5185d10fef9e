package security

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("john@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("j@example.com"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
}

func TestSecurityLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sl := NewSecurityLogger(zap.New(core))

	sl.LogLoginFailed(context.Background(), "john@example.com", "10.0.0.1", "curl", "req-1", "invalid_credentials")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, "login_failed", fields["event"])
		assert.Equal(t, "j***@example.com", fields["subject_value"])
		assert.Equal(t, "req-1", fields["request_id"])
	}
}

func TestLoginTrackerWithoutRedis(t *testing.T) {
	lt := NewLoginTracker(DefaultLoginTrackerConfig(), NewSecurityLogger(zap.NewNop()))
	lt.client = func() *goredis.Client { return nil }
	ctx := context.Background()

	blocked, err := lt.IsBlocked(ctx, "john@example.com")
	assert.NoError(t, err)
	assert.False(t, blocked)

	for i := 0; i < 10; i++ {
		blocked, err = lt.RecordFailedAttempt(ctx, "john@example.com", "10.0.0.1", "", "")
		assert.NoError(t, err)
		assert.False(t, blocked)
	}
	assert.NoError(t, lt.ClearAttempts(ctx, "john@example.com"))
}
