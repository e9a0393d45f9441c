package ga

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/teenjuna/ga/internal"
	"github.com/teenjuna/ga/internal/memstore"
	"github.com/teenjuna/ga/internal/redisipc"
	"github.com/teenjuna/ga/internal/sqlite"
	"github.com/teenjuna/ga/internal/ws"
	"github.com/teenjuna/ga/serializer"
)

var (
	ErrClosed = errors.New("hub is closed")
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = internal.ErrNotFound
)

// Hub combines a key-value store and a pub-sub transport behind one object.
//
// Two backends exist. The local backend keeps values in process memory (or a
// SQLite file, see [WithFile]) and routes messages through an embedded
// WebSocket broker, see [Hub.Serve]. The Redis backend, selected with
// [WithRedis], delegates both concerns to an external Redis server.
//
// Values round-trip through the configured codec and compression, so anything
// the codec can encode can be stored and published.
type Hub struct {
	cfg    *config
	ser    *serializer.Serializer
	store  internal.Store
	pubsub internal.PubSub
	server *ws.Server

	closing *atomic.Bool
}

func New(options ...Option) (*Hub, error) {
	cfg := newConfig(options...)

	ser := serializer.New(
		serializer.WithCodec(cfg.codec),
		serializer.WithCompression(cfg.compression),
		serializer.WithLevel(cfg.level),
	)

	var (
		store  internal.Store
		pubsub internal.PubSub
		server *ws.Server
	)

	if cfg.redisAddr != "" {
		client := redisipc.New(cfg.redisAddr, cfg.redisDB, cfg.logger)
		store = client
		pubsub = client
	} else {
		if cfg.file != "" {
			s, err := sqlite.New(
				sqlite.WithFile(cfg.file),
				sqlite.WithDurable(cfg.durable),
			)
			if err != nil {
				return nil, fmt.Errorf("open sqlite: %w", err)
			}
			store = s
		} else {
			store = memstore.New()
		}
		pubsub = ws.NewClient(cfg.addr, cfg.retryPolicy, cfg.logger)
		server = ws.NewServer(cfg.addr, cfg.logger)
	}

	hub := Hub{
		cfg:     cfg,
		ser:     ser,
		store:   store,
		pubsub:  pubsub,
		server:  server,
		closing: new(atomic.Bool),
	}

	return &hub, nil
}

// Set serializes value and stores it under key.
func (h *Hub) Set(ctx context.Context, key string, value any) error {
	if h.closing.Load() {
		return ErrClosed
	}

	data, err := h.ser.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}

	if err := h.store.Set(ctx, h.key(key), data); err != nil {
		return err
	}

	h.cfg.metrics.sets.Inc()
	h.cfg.metrics.payloadBytes.Observe(float64(len(data)))

	return nil
}

// Get fetches the value stored under key and deserializes it into dest.
// Returns [ErrNotFound] if the key does not exist.
func (h *Hub) Get(ctx context.Context, key string, dest any) error {
	if h.closing.Load() {
		return ErrClosed
	}

	data, err := h.store.Get(ctx, h.key(key))
	if err != nil {
		return err
	}

	h.cfg.metrics.gets.Inc()

	return h.ser.Unmarshal(data, dest)
}

// Delete removes the given keys. Missing keys are ignored.
func (h *Hub) Delete(ctx context.Context, keys ...string) error {
	if h.closing.Load() {
		return ErrClosed
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = h.key(key)
	}

	if err := h.store.Delete(ctx, prefixed...); err != nil {
		return err
	}

	h.cfg.metrics.deletes.Add(float64(len(keys)))

	return nil
}

// Clear removes every key of the hub's bucket.
func (h *Hub) Clear(ctx context.Context) error {
	if h.closing.Load() {
		return ErrClosed
	}

	keys, err := h.store.Keys(ctx, h.key("*"))
	if err != nil {
		return err
	}

	if err := h.store.Delete(ctx, keys...); err != nil {
		return err
	}

	h.cfg.metrics.deletes.Add(float64(len(keys)))

	return nil
}

// Keys returns all keys of the hub's bucket, without the bucket prefix.
func (h *Hub) Keys(ctx context.Context) ([]string, error) {
	return h.keys(ctx, "*")
}

// Scan returns a sequence of the bucket's keys matching the glob pattern.
func (h *Hub) Scan(ctx context.Context, match string) (iter.Seq[string], error) {
	keys, err := h.keys(ctx, match)
	if err != nil {
		return nil, err
	}
	return slices.Values(keys), nil
}

// SetAll stores every entry of values.
func (h *Hub) SetAll(ctx context.Context, values map[string]any) error {
	for key, value := range values {
		if err := h.Set(ctx, key, value); err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
	}
	return nil
}

// GetAll fetches the given keys and returns them as still-encoded [Raw]
// values. Missing keys are left out of the result.
func (h *Hub) GetAll(ctx context.Context, keys ...string) (map[string]Raw, error) {
	if h.closing.Load() {
		return nil, ErrClosed
	}

	values := make(map[string]Raw, len(keys))
	for _, key := range keys {
		data, err := h.store.Get(ctx, h.key(key))
		if errors.Is(err, ErrNotFound) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("get %q: %w", key, err)
		}
		h.cfg.metrics.gets.Inc()
		values[key] = Raw{data: data, ser: h.ser}
	}

	return values, nil
}

// Publish serializes value and sends it to every subscriber of channel.
func (h *Hub) Publish(ctx context.Context, channel string, value any) error {
	if h.closing.Load() {
		return ErrClosed
	}

	data, err := h.ser.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := h.pubsub.Publish(ctx, h.key(channel), data); err != nil {
		return err
	}

	h.cfg.metrics.published.Inc()
	h.cfg.metrics.payloadBytes.Observe(float64(len(data)))

	return nil
}

// Subscribe registers fn for messages published on channel. Messages are
// delivered by [Hub.Listen].
func (h *Hub) Subscribe(ctx context.Context, channel string, fn func(msg Message)) error {
	if h.closing.Load() {
		return ErrClosed
	}

	return h.pubsub.Subscribe(ctx, h.key(channel), func(payload []byte) {
		h.cfg.metrics.received.Inc()
		fn(Message{
			Channel: channel,
			Raw:     Raw{data: payload, ser: h.ser},
		})
	})
}

// Listen blocks delivering incoming messages to subscribers until the context
// is cancelled or the transport fails.
func (h *Hub) Listen(ctx context.Context) error {
	if h.closing.Load() {
		return ErrClosed
	}
	return h.pubsub.Listen(ctx)
}

// Ping reports whether the hub's transport is reachable.
func (h *Hub) Ping(ctx context.Context) error {
	if h.closing.Load() {
		return ErrClosed
	}
	return h.pubsub.Ping(ctx)
}

// Serve runs the embedded WebSocket broker of the local backend until the
// context is cancelled. The Redis backend has no embedded server.
func (h *Hub) Serve(ctx context.Context) error {
	if h.server == nil {
		return errors.New("redis backend has no embedded server")
	}
	return h.server.Start(ctx)
}

// Addr returns the transport address of the hub. For a serving local backend
// this is the actual listen address, which is useful with ":0" addresses.
func (h *Hub) Addr() string {
	if h.server != nil {
		return h.server.Addr()
	}
	return h.cfg.redisAddr
}

// Close releases the transport and storage. The hub can't be used afterwards.
func (h *Hub) Close() error {
	if h.closing.Swap(true) {
		return ErrClosed
	}

	errs := make([]error, 0)

	if err := h.pubsub.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close transport: %w", err))
	}
	if err := h.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}

	return errors.Join(errs...)
}

func (h *Hub) keys(ctx context.Context, match string) ([]string, error) {
	if h.closing.Load() {
		return nil, ErrClosed
	}

	prefixed, err := h.store.Keys(ctx, h.key(match))
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(prefixed))
	for i, key := range prefixed {
		keys[i] = h.stripKey(key)
	}

	return keys, nil
}

func (h *Hub) key(key string) string {
	if h.cfg.bucket == "" {
		return key
	}
	return h.cfg.bucket + ":" + key
}

func (h *Hub) stripKey(key string) string {
	if h.cfg.bucket == "" {
		return key
	}
	return strings.TrimPrefix(key, h.cfg.bucket+":")
}

// Message is a single pub-sub delivery.
type Message struct {
	// Channel is the channel the message was published on, without the
	// bucket prefix.
	Channel string

	Raw
}

// Raw is a value that has not been deserialized yet.
type Raw struct {
	data []byte
	ser  *serializer.Serializer
}

// Decode deserializes the value into dest.
func (r Raw) Decode(dest any) error {
	return r.ser.Unmarshal(r.data, dest)
}

// Bytes returns the serialized form of the value.
func (r Raw) Bytes() []byte {
	return r.data
}
