// Redis-backed key-value storage and pub-sub built on an external Redis
// server.
package redisipc

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/teenjuna/ga/internal"
)

// Client exposes a Redis connection both as a key-value store and as a
// pub-sub transport.
type Client struct {
	rdb    *redis.Client
	logger zerolog.Logger

	mu        sync.Mutex
	pubsub    *redis.PubSub
	callbacks map[string][]func(payload []byte)
}

var (
	_ internal.Store  = (*Client)(nil)
	_ internal.PubSub = (*Client)(nil)
)

func New(addr string, db int, logger zerolog.Logger) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &Client{
		rdb:       rdb,
		logger:    logger.With().Str("component", "redis").Logger(),
		callbacks: make(map[string][]func(payload []byte)),
	}
}

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, key, value, 0).Err()
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, internal.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return value, nil
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Keys scans the database for keys matching the glob pattern. SCAN is used
// instead of KEYS to avoid blocking the server on large databases.
func (c *Client) Keys(ctx context.Context, match string) ([]string, error) {
	keys := make([]string, 0)
	iter := c.rdb.Scan(ctx, 0, match, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *Client) Publish(ctx context.Context, channel string, payload []byte) error {
	c.logger.Debug().Str("channel", channel).Int("bytes", len(payload)).Msg("publishing")
	return c.rdb.Publish(ctx, channel, payload).Err()
}

// Subscribe registers fn for messages on channel. Messages are delivered by
// [Client.Listen].
func (c *Client) Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.callbacks[channel] = append(c.callbacks[channel], fn)
	if c.pubsub == nil {
		c.pubsub = c.rdb.Subscribe(ctx)
	}

	c.logger.Debug().Str("channel", channel).Msg("subscribing")
	return c.pubsub.Subscribe(ctx, channel)
}

// Listen delivers incoming messages to the registered callbacks until the
// context is cancelled or the connection is closed.
func (c *Client) Listen(ctx context.Context) error {
	c.mu.Lock()
	if c.pubsub == nil {
		c.pubsub = c.rdb.Subscribe(ctx)
	}
	ch := c.pubsub.Channel()
	c.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			c.mu.Lock()
			fns := slices.Clone(c.callbacks[msg.Channel])
			c.mu.Unlock()

			for _, fn := range fns {
				fn([]byte(msg.Payload))
			}
		}
	}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := make([]error, 0)
	if c.pubsub != nil {
		if err := c.pubsub.Close(); err != nil {
			errs = append(errs, err)
		}
		c.pubsub = nil
	}
	if err := c.rdb.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
