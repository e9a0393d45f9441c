package ws

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/teenjuna/ga/internal"
)

// Client is a pub-sub client of [Server]. The connection is opened lazily on
// the first operation and dialing is governed by a retry policy.
type Client struct {
	addr   string
	logger zerolog.Logger
	policy internal.RetryPolicy

	mu        sync.Mutex
	conn      *websocket.Conn
	callbacks map[string][]func(payload []byte)
}

var _ internal.PubSub = (*Client)(nil)

func NewClient(addr string, policy internal.RetryPolicy, logger zerolog.Logger) *Client {
	return &Client{
		addr:      addr,
		logger:    logger.With().Str("component", "ws-client").Logger(),
		policy:    policy,
		callbacks: make(map[string][]func(payload []byte)),
	}
}

func (c *Client) Publish(ctx context.Context, channel string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}

	c.logger.Debug().Str("channel", channel).Int("bytes", len(payload)).Msg("publishing")
	return conn.WriteJSON(envelope{Type: typePublish, Channel: channel, Payload: payload})
}

// Subscribe registers fn for messages on channel and announces the
// subscription to the server. Messages are delivered by [Client.Listen].
func (c *Client) Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.callbacks[channel] = append(c.callbacks[channel], fn)

	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}

	c.logger.Debug().Str("channel", channel).Msg("subscribing")
	return conn.WriteJSON(envelope{Type: typeSubscribe, Channel: channel})
}

// Listen reads incoming messages and invokes the callbacks registered for
// their channels until the context is cancelled or the connection fails.
func (c *Client) Listen(ctx context.Context) error {
	c.mu.Lock()
	conn, err := c.connect(ctx)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	// Unblock the read loop when the context is cancelled.
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		if env.Type != typePublish {
			continue
		}

		c.mu.Lock()
		fns := slices.Clone(c.callbacks[env.Channel])
		c.mu.Unlock()

		for _, fn := range fns {
			fn(env.Payload)
		}
	}
}

// Ping opens a dedicated connection, sends a ping and waits for the pong.
func (c *Client) Ping(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url(), err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	} else {
		conn.SetReadDeadline(time.Now().Add(time.Second))
	}

	if err := conn.WriteJSON(envelope{Type: typePing}); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		return fmt.Errorf("pong: %w", err)
	}
	if env.Type != typePong {
		return fmt.Errorf("unexpected reply %q", env.Type)
	}

	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}

// connect dials the server if there is no open connection. The caller must
// hold c.mu. After a successful dial, existing subscriptions are announced
// again so reconnects keep their channels.
func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}

	var lastErr error
	attempt := c.policy.Derive()
	for attempt.Attempt(ctx) {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url(), nil)
		if err != nil {
			lastErr = err
			c.logger.Debug().Err(err).Str("url", c.url()).Msg("dial failed")
			continue
		}

		for channel := range c.callbacks {
			if err := conn.WriteJSON(envelope{Type: typeSubscribe, Channel: channel}); err != nil {
				conn.Close()
				return nil, fmt.Errorf("resubscribe %q: %w", channel, err)
			}
		}

		c.conn = conn
		return conn, nil
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return nil, fmt.Errorf("dial %s: %w", c.url(), lastErr)
}

func (c *Client) url() string {
	u := url.URL{Scheme: "ws", Host: c.addr}
	return u.String()
}
