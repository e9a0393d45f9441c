// WebSocket pub-sub transport for the local backend: a broadcast server and a
// reconnecting client.
package ws

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Server is a WebSocket broker that fans published messages out to every
// connection subscribed to the message's channel.
type Server struct {
	addr     string
	logger   zerolog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*serverConn]struct{}

	ready      chan struct{}
	listenAddr string
}

type serverConn struct {
	ws *websocket.Conn

	writeMu  sync.Mutex
	channels map[string]struct{}
}

func NewServer(addr string, logger zerolog.Logger) *Server {
	return &Server{
		addr:   addr,
		logger: logger.With().Str("component", "ws-server").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The broker is a local transport, not a browser endpoint.
				return true
			},
		},
		conns: make(map[*serverConn]struct{}),
		ready: make(chan struct{}),
	}
}

// Start listens on the configured address and serves connections until the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.listenAddr = ln.Addr().String()
	close(s.ready)
	s.logger.Debug().Str("addr", s.listenAddr).Msg("starting")

	srv := &http.Server{Handler: s}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})

	return group.Wait()
}

// Addr blocks until the server is listening and returns the actual listen
// address. Useful when Start was given a ":0" address.
func (s *Server) Addr() string {
	<-s.ready
	return s.listenAddr
}

// ServeHTTP upgrades the connection and runs its read loop.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("upgrade failed")
		return
	}
	defer ws.Close()

	conn := &serverConn{
		ws:       ws,
		channels: make(map[string]struct{}),
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug().Str("remote", ws.RemoteAddr().String()).Msg("connection established")

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	for {
		var env envelope
		if err := ws.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Error().Err(err).Msg("read failed")
			}
			return
		}

		switch env.Type {
		case typePing:
			if err := conn.write(envelope{Type: typePong}); err != nil {
				s.logger.Error().Err(err).Msg("pong failed")
				return
			}
		case typeSubscribe:
			s.mu.Lock()
			conn.channels[env.Channel] = struct{}{}
			s.mu.Unlock()
			s.logger.Debug().Str("channel", env.Channel).Msg("client subscribed")
		case typePublish:
			s.broadcast(env.Channel, env.Payload)
		}
	}
}

func (s *Server) broadcast(channel string, payload []byte) {
	s.mu.Lock()
	conns := make([]*serverConn, 0, len(s.conns))
	for conn := range s.conns {
		if _, ok := conn.channels[channel]; ok {
			conns = append(conns, conn)
		}
	}
	s.mu.Unlock()

	env := envelope{Type: typePublish, Channel: channel, Payload: payload}
	for _, conn := range conns {
		if err := conn.write(env); err != nil {
			s.logger.Error().Err(err).Str("channel", channel).Msg("broadcast failed")
		}
	}
}

func (c *serverConn) write(env envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(env)
}
