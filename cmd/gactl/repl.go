package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/teenjuna/ga"
)

const replHelp = `commands:
  set <key> <value>         store a value
  get <key>                 fetch a value
  delete <key>|all          remove a key, or every key of the bucket
  keys                      list the bucket's keys
  publish <channel> <msg>   send a message to subscribers
  subscribe <channel>       print messages published on a channel
  ping                      check that the transport is reachable
  exit                      quit
`

// repl reads commands from stdin and executes them against the hub until
// "exit" or EOF.
func repl(ctx context.Context, hub *ga.Hub) error {
	var listen sync.Once

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}
		if line != "" {
			if err := execute(ctx, hub, &listen, line); err != nil {
				fmt.Println("error:", err)
			}
		}
		fmt.Print("> ")
	}

	return scanner.Err()
}

func execute(ctx context.Context, hub *ga.Hub, listen *sync.Once, line string) error {
	parts := strings.SplitN(line, " ", 3)
	cmd := parts[0]

	arg := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	switch cmd {
	case "help":
		fmt.Print(replHelp)
		return nil

	case "set":
		if arg(1) == "" || arg(2) == "" {
			return fmt.Errorf("usage: set <key> <value>")
		}
		return hub.Set(ctx, arg(1), arg(2))

	case "get":
		if arg(1) == "" {
			return fmt.Errorf("usage: get <key>")
		}
		var value any
		if err := hub.Get(ctx, arg(1), &value); err != nil {
			return err
		}
		fmt.Println(value)
		return nil

	case "delete":
		if arg(1) == "" {
			return fmt.Errorf("usage: delete <key>|all")
		}
		if arg(1) == "all" {
			return hub.Clear(ctx)
		}
		return hub.Delete(ctx, arg(1))

	case "keys":
		keys, err := hub.Keys(ctx)
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil

	case "publish":
		if arg(1) == "" || arg(2) == "" {
			return fmt.Errorf("usage: publish <channel> <msg>")
		}
		return hub.Publish(ctx, arg(1), arg(2))

	case "subscribe":
		if arg(1) == "" {
			return fmt.Errorf("usage: subscribe <channel>")
		}
		err := hub.Subscribe(ctx, arg(1), func(msg ga.Message) {
			var value any
			if err := msg.Decode(&value); err != nil {
				fmt.Printf("[%s] undecodable message: %v\n", msg.Channel, err)
				return
			}
			fmt.Printf("[%s] %v\n", msg.Channel, value)
		})
		if err != nil {
			return err
		}
		listen.Do(func() {
			go func() {
				if err := hub.Listen(ctx); err != nil {
					fmt.Println("error:", err)
				}
			}()
		})
		return nil

	case "ping":
		if err := hub.Ping(ctx); err != nil {
			return err
		}
		fmt.Println("pong")
		return nil

	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}
