package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterBackoff(t *testing.T) {
	rl := NewRateLimiter(time.Second)
	defer rl.Close()

	assert.Equal(t, time.Second, rl.Interval())

	rl.UpdateRate(true)
	rl.UpdateRate(true)
	assert.Equal(t, 3*time.Second, rl.Interval())

	for i := 0; i < 20; i++ {
		rl.UpdateRate(true)
	}
	assert.Equal(t, (maxBackoff+1)*time.Second, rl.Interval())

	for i := 0; i < 20; i++ {
		rl.UpdateRate(false)
	}
	assert.Equal(t, time.Second, rl.Interval())
}

func TestRateLimiterTickHonoursContext(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, rl.Tick(ctx), context.Canceled)

	fast := NewRateLimiter(time.Millisecond)
	defer fast.Close()
	assert.NoError(t, fast.Tick(context.Background()))
}
