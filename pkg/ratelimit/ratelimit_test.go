package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLimiterSpendsWithinBudget(t *testing.T) {
	limiter := NewTokenLimiter(100)

	require.NoError(t, limiter.Wait(context.Background(), 30))
	require.NoError(t, limiter.Wait(context.Background(), 30))
	assert.Equal(t, 40, limiter.GetRemaining())
}

func TestTokenLimiterOversizedRequestCapped(t *testing.T) {
	limiter := NewTokenLimiter(50)

	// A request larger than the whole budget drains one full window.
	require.NoError(t, limiter.Wait(context.Background(), 500))
	assert.Equal(t, 0, limiter.GetRemaining())
}

func TestTokenLimiterWaitRespectsContext(t *testing.T) {
	limiter := NewTokenLimiter(10)
	require.NoError(t, limiter.Wait(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
