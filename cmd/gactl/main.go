// Command gactl runs and inspects a hub: it can serve the embedded message
// broker, check that a broker or Redis server is reachable, and open an
// interactive shell over the hub's store and channels.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/teenjuna/ga"
)

const usage = `usage: gactl [-config path] <command>

commands:
  serve   run the embedded message broker
  ping    check that the transport is reachable
  repl    open an interactive shell (default)
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to a TOML config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if err := run(configPath, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "gactl: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, cmd string) error {
	s := defaultSettings()
	if configPath != "" {
		var err error
		if s, err = loadSettings(configPath); err != nil {
			return err
		}
	}

	options, err := s.options()
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(s.logLevel)

	hub, err := ga.New(append(options, ga.WithLogger(logger))...)
	if err != nil {
		return err
	}
	defer hub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "serve":
		return serve(ctx, hub, logger)
	case "ping":
		return ping(ctx, hub)
	case "repl", "":
		return repl(ctx, hub)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func serve(ctx context.Context, hub *ga.Hub, logger zerolog.Logger) error {
	done := make(chan error, 1)
	go func() { done <- hub.Serve(ctx) }()

	logger.Info().Str("addr", hub.Addr()).Msg("serving")
	return <-done
}

func ping(ctx context.Context, hub *ga.Hub) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := hub.Ping(ctx); err != nil {
		return err
	}

	fmt.Println("pong")
	return nil
}
