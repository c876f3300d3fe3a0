package util

import (
	"context"
	"time"
)

const maxBackoff = 10

// RateLimiter paces a polling loop. Each reported error stretches the interval by one
// base period, up to maxBackoff periods; each success shrinks it again.
type RateLimiter struct {
	ticker     *time.Ticker
	errorCount int
	baseRate   time.Duration
}

func NewRateLimiter(baseRate time.Duration) *RateLimiter {
	rl := &RateLimiter{}
	rl.baseRate = baseRate
	if baseRate > 0 {
		rl.ticker = time.NewTicker(rl.baseRate)
	}

	return rl
}

// Tick blocks until the next period or until ctx is done.
func (rl *RateLimiter) Tick(ctx context.Context) error {
	if rl.ticker == nil {
		return ctx.Err()
	}
	select {
	case <-rl.ticker.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (rl *RateLimiter) Close() {
	if rl.ticker != nil {
		rl.ticker.Stop()
	}
}

// Interval is the current period between ticks.
func (rl *RateLimiter) Interval() time.Duration {
	if rl.errorCount > 0 {
		return rl.baseRate * time.Duration(rl.errorCount+1)
	}
	return rl.baseRate
}

func (rl *RateLimiter) UpdateRate(isError bool) {

	update := false
	if isError {

		if rl.errorCount < maxBackoff {
			rl.errorCount++
			update = true
		}
	} else if rl.errorCount > 0 {
		rl.errorCount--
		update = true
	}

	if update && rl.ticker != nil {
		rl.ticker.Reset(rl.Interval())
	}
}
