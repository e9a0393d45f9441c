package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// wait blocks for interval spread by a random jitter fraction. Returns false
// when the context is cancelled before the delay passes.
func wait(ctx context.Context, interval time.Duration, jitter float64) bool {
	if jitter < 0 || jitter >= 1 {
		panic("invalid jitter")
	}

	spread := (rand.Float64()*2 - 1) * jitter
	delay := interval + time.Duration(spread*float64(interval))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
