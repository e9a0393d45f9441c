package internal

import "context"

type PubSub interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error
	Listen(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
