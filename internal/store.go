package internal

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Store implementations when a key does not exist.
	ErrNotFound = errors.New("key not found")
)

type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, match string) ([]string, error)
	Close() error
}
