package retry

import (
	"context"

	"github.com/teenjuna/ga/internal"
)

type ImmediatePolicy struct {
	attempted int
	attempts  int
	infinite  bool
}

var _ internal.RetryPolicy = (*ImmediatePolicy)(nil)

// Immediate returns a policy that retries without waiting. Zero attempts
// means infinite attempts.
func Immediate(attempts int) *ImmediatePolicy {
	if attempts < 0 {
		panic("attempts can't be < 0")
	}
	return &ImmediatePolicy{
		attempts: attempts,
		infinite: attempts == 0,
	}
}

func (r *ImmediatePolicy) Attempt(ctx context.Context) (ok bool) {
	defer func() {
		if ok && !r.infinite {
			r.attempted += 1
		}
	}()

	if !r.infinite && r.attempted >= r.attempts {
		return false
	}

	return ctx.Err() == nil
}

func (r *ImmediatePolicy) Derive() internal.RetryPolicy {
	return Immediate(r.attempts)
}
