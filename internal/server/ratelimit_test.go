package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket_Refill(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	b := newTokenBucket(2, 2, start)

	assert.True(t, b.allow(start))
	assert.True(t, b.allow(start))
	assert.False(t, b.allow(start))

	// 2 tokens/s: half a second buys one request.
	assert.True(t, b.allow(start.Add(500*time.Millisecond)))
	assert.False(t, b.allow(start.Add(500*time.Millisecond)))
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{RPS: 1, Burst: 1})
	defer rl.stop()
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))

	now = now.Add(time.Second)
	assert.True(t, rl.allow("10.0.0.1"))
}

func TestRateLimiter_BurstDefaultsToRPS(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{RPS: 3})
	defer rl.stop()
	assert.Equal(t, 3, rl.burst)
	rl.stop() // idempotent
}
