package retry_test

import (
	"context"
	"testing"

	"github.com/teenjuna/ga/internal/testing/require"
	"github.com/teenjuna/ga/retry"
)

func TestImmediate(t *testing.T) {
	run(t, "With infinite attempts", func(t *testing.T) {
		p := retry.Immediate(0)
		require.NotNil(t, p)
	})

	run(t, "With invalid attempts", func(t *testing.T) {
		require.PanicWithError(t, "attempts can't be < 0", func() {
			_ = retry.Immediate(-1)
		})
	})
}

func TestImmediateAttempt(t *testing.T) {
	run(t, "Finite attempts", func(t *testing.T) {
		p := retry.Immediate(2)
		require.Equal(t, p.Attempt(t.Context()), true)
		require.Equal(t, p.Attempt(t.Context()), true)
		require.Equal(t, p.Attempt(t.Context()), false)
	})

	run(t, "Infinite attempts", func(t *testing.T) {
		p := retry.Immediate(0)
		for range 1000 {
			require.Equal(t, p.Attempt(t.Context()), true)
		}
	})

	run(t, "Context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		p := retry.Immediate(0)
		require.Equal(t, p.Attempt(ctx), true)
		cancel()
		require.Equal(t, p.Attempt(ctx), false)
	})
}

func TestImmediateDerive(t *testing.T) {
	run(t, "Derive after use", func(t *testing.T) {
		p1 := retry.Immediate(1)
		require.Equal(t, p1.Attempt(t.Context()), true)
		require.Equal(t, p1.Attempt(t.Context()), false)

		p2 := p1.Derive()
		require.Equal(t, p2.Attempt(t.Context()), true)
		require.Equal(t, p2.Attempt(t.Context()), false)
	})
}
