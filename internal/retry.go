package internal

import "context"

type RetryPolicy interface {
	Attempt(ctx context.Context) bool
	Derive() RetryPolicy
}
