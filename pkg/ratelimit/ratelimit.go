package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-minute token budget. Consumers declare how many
// tokens an operation will spend and Wait blocks until the budget allows it.
type TokenLimiter struct {
	mu        sync.Mutex
	maxPerMin int
	remaining int
	windowEnd time.Time
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per minute.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxPerMin: maxPerMinute,
		remaining: maxPerMinute,
		windowEnd: time.Now().Add(time.Minute),
	}
}

// Wait blocks until the given number of tokens can be spent or the context is
// canceled. Requests larger than the whole budget are allowed through one
// full window at a time.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.refillLocked()
		if tokens >= l.maxPerMin {
			tokens = l.maxPerMin
		}
		if l.remaining >= tokens {
			l.remaining -= tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowEnd)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// GetRemaining returns the number of tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	return l.remaining
}

func (l *TokenLimiter) refillLocked() {
	now := time.Now()
	if now.After(l.windowEnd) {
		l.remaining = l.maxPerMin
		l.windowEnd = now.Add(time.Minute)
	}
}
