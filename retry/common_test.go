package retry_test

import (
	"testing"
	"testing/synctest"
	"time"
)

// Measurement error allowed when comparing fake-clock delays.
const epsilon = time.Microsecond * 10

func run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Run(name, func(t *testing.T) {
		t.Helper()
		t.Parallel()
		synctest.Test(t, func(t *testing.T) {
			fn(t)
		})
	})
}

// delayFunc returns a helper that asserts fn blocks for delay, give or take
// the jitter fraction.
func delayFunc(t *testing.T, jitter float64) func(delay time.Duration, fn func()) {
	t.Helper()
	return func(delay time.Duration, fn func()) {
		delta := time.Duration(float64(delay) * jitter)
		minDelay := (delay - delta).Truncate(epsilon)
		maxDelay := (delay + delta + epsilon).Truncate(epsilon)

		started := time.Now()
		fn()
		took := time.Since(started).Truncate(epsilon)

		if took < minDelay {
			t.Fatalf("delay %s < min delay %s", took, minDelay)
		}
		if took > maxDelay {
			t.Fatalf("delay %s > max delay %s", took, maxDelay)
		}
	}
}
