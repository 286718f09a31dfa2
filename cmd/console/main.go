// cmd/console/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"go-tower-arena/internal/console"
	"go-tower-arena/internal/network"
)

func main() {
	addr := flag.String("server", "localhost:2357", "server address, host:port or ws://host:port/ws")
	name := flag.String("name", "console", "player name")
	password := flag.String("password", "", "join password")
	flag.Parse()

	connect := func(ctx context.Context) (*network.Client, network.RegisterResponse, error) {
		var (
			c   *network.Client
			err error
		)
		if strings.HasPrefix(*addr, "ws://") || strings.HasPrefix(*addr, "wss://") {
			c, err = network.DialWebSocket(ctx, *addr)
		} else {
			c, err = network.Dial(ctx, *addr)
		}
		if err != nil {
			return nil, network.RegisterResponse{}, err
		}
		info, err := c.Register(ctx, *name, *password)
		if err != nil {
			c.Close()
			return nil, network.RegisterResponse{}, err
		}
		return c, info, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// stdin — файл или конвейер: построчный режим без TUI
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		c, info, err := connect(dialCtx)
		cancel()
		if err != nil {
			log.Fatalf("[console] %v", err)
		}
		defer c.Close()
		if err := console.RunLines(ctx, c, info.Terrain, os.Stdin, os.Stdout); err != nil {
			log.Fatalf("[console] %v", err)
		}
		return
	}

	log.SetOutput(io.Discard) // журнал сети ломает экран TUI
	p := tea.NewProgram(console.NewModel(connect))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
