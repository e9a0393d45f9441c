package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/teenjuna/ga/internal/testing/require"
	"github.com/teenjuna/ga/retry"
)

func TestExponential(t *testing.T) {
	run(t, "With invalid attempts", func(t *testing.T) {
		require.PanicWithError(t, "attempts can't be < 0", func() {
			_ = retry.Exponential(-1, time.Second, time.Minute)
		})
	})

	run(t, "With invalid interval", func(t *testing.T) {
		require.PanicWithError(t, "minInterval can't be <= 0", func() {
			_ = retry.Exponential(0, 0, time.Minute)
		})
		require.PanicWithError(t, "minInterval can't be >= maxInterval", func() {
			_ = retry.Exponential(0, time.Second, time.Second)
		})
	})

	run(t, "With invalid base", func(t *testing.T) {
		require.PanicWithError(t, "base can't be <= 1", func() {
			_ = retry.Exponential(0, time.Second, time.Minute).WithBase(1)
		})
	})

	run(t, "With invalid jitter", func(t *testing.T) {
		require.PanicWithError(t, "jitter can't be < 0", func() {
			_ = retry.Exponential(0, time.Second, time.Minute).WithJitter(-0.1)
		})
		require.PanicWithError(t, "jitter can't be >= 1", func() {
			_ = retry.Exponential(0, time.Second, time.Minute).WithJitter(1)
		})
	})
}

func TestExponentialAttempt(t *testing.T) {
	run(t, "Finite attempts", func(t *testing.T) {
		p := retry.Exponential(5, time.Second, time.Second*8).WithJitter(0.1)
		f := delayFunc(t, 0.1)
		f(0, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*2, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*4, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*8, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(0, func() { require.Equal(t, p.Attempt(t.Context()), false) })
	})

	run(t, "Interval is capped", func(t *testing.T) {
		p := retry.Exponential(0, time.Second, time.Second*4).WithJitter(0.1)
		f := delayFunc(t, 0.1)
		f(0, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*2, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		for range 10 {
			f(time.Second*4, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		}
	})

	run(t, "Context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		p := retry.Exponential(0, time.Second, time.Second*8).WithJitter(0.1)
		f := delayFunc(t, 0.1)
		f(0, func() { require.Equal(t, p.Attempt(ctx), true) })
		f(time.Second, func() { require.Equal(t, p.Attempt(ctx), true) })
		cancel()
		f(0, func() { require.Equal(t, p.Attempt(ctx), false) })
	})
}

func TestExponentialDerive(t *testing.T) {
	const (
		attempts    = 3
		minInterval = time.Second
		maxInterval = time.Second * 2
	)

	test := func(t *testing.T, p *retry.ExponentialPolicy) {
		for range attempts {
			require.Equal(t, p.Attempt(t.Context()), true)
		}
		require.Equal(t, p.Attempt(t.Context()), false)
	}

	run(t, "Derive before use", func(t *testing.T) {
		p1 := retry.Exponential(attempts, minInterval, maxInterval)
		p2 := p1.Derive().(*retry.ExponentialPolicy)
		test(t, p1)
		test(t, p2)
	})

	run(t, "Derive after use", func(t *testing.T) {
		p1 := retry.Exponential(attempts, minInterval, maxInterval)
		test(t, p1)
		p2 := p1.Derive().(*retry.ExponentialPolicy)
		test(t, p2)
	})
}
