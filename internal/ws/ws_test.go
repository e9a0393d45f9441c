package ws_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teenjuna/ga/internal/testing/require"
	"github.com/teenjuna/ga/internal/ws"
	"github.com/teenjuna/ga/retry"
)

func startServer(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	server := ws.NewServer("127.0.0.1:0", zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	return server.Addr()
}

func newClient(t *testing.T, addr string) *ws.Client {
	t.Helper()

	client := ws.NewClient(addr, retry.Fixed(10, time.Millisecond*50), zerolog.Nop())
	t.Cleanup(func() { client.Close() })

	return client
}

func TestPing(t *testing.T) {
	addr := startServer(t)
	client := newClient(t, addr)

	require.NoError(t, client.Ping(t.Context()))
}

func TestPingNoServer(t *testing.T) {
	client := newClient(t, "127.0.0.1:1")

	ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond*100)
	defer cancel()

	require.NotNil(t, client.Ping(ctx))
}

func TestPublishSubscribe(t *testing.T) {
	addr := startServer(t)

	var (
		producer = newClient(t, addr)
		consumer = newClient(t, addr)
		received = make(chan []byte, 1)
	)

	require.NoError(t, consumer.Subscribe(t.Context(), "events", func(payload []byte) {
		received <- payload
	}))

	listenCtx, stopListen := context.WithCancel(t.Context())
	defer stopListen()

	listenDone := make(chan error, 1)
	go func() { listenDone <- consumer.Listen(listenCtx) }()

	require.NoError(t, producer.Publish(t.Context(), "events", []byte("hello")))

	select {
	case payload := <-received:
		require.Equal(t, payload, []byte("hello"))
	case <-time.After(time.Second * 5):
		t.Fatal("no message received")
	}

	stopListen()
	require.NoError(t, <-listenDone)
}

// Messages published on other channels must not reach the subscriber.
func TestChannelIsolation(t *testing.T) {
	addr := startServer(t)

	var (
		producer = newClient(t, addr)
		consumer = newClient(t, addr)
		received = make(chan []byte, 2)
	)

	require.NoError(t, consumer.Subscribe(t.Context(), "wanted", func(payload []byte) {
		received <- payload
	}))

	listenCtx, stopListen := context.WithCancel(t.Context())
	defer stopListen()
	go consumer.Listen(listenCtx)

	require.NoError(t, producer.Publish(t.Context(), "unwanted", []byte("no")))
	require.NoError(t, producer.Publish(t.Context(), "wanted", []byte("yes")))

	select {
	case payload := <-received:
		require.Equal(t, payload, []byte("yes"))
	case <-time.After(time.Second * 5):
		t.Fatal("no message received")
	}
}
