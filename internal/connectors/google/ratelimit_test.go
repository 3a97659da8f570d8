package google

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiterWithConfig_ZeroValues(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{})
	assert.True(t, limiter.Allow(), "defaults must allow an initial request")
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow(), "burst exhausted")
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	limiter := NewRateLimiter()
	require.True(t, limiter.Allow())

	limiter.RecordRateLimitError(30)
	assert.False(t, limiter.Allow(), "backoff must block immediate requests")
}

func TestRateLimiter_WaitRespectsCancellationDuringBackoff(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.RecordRateLimitError(60)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
