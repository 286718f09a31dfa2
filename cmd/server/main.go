// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"go-tower-arena/internal/app"
	"go-tower-arena/internal/clock"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("[server] %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "JSON server config, defaults when empty")
	listen := flag.String("listen", "", "TCP listen address (overrides config)")
	wsAddr := flag.String("ws", "", "websocket gateway address (overrides config)")
	terrain := flag.String("terrain", "", "terrain name (overrides config)")
	maxPlayers := flag.Int("max-players", -1, "player cap, 0 for the terrain slot count")
	password := flag.String("password", "", "join password")
	scoresDir := flag.String("scores", "", "scores directory (overrides config)")
	strict := flag.Bool("strict", false, "panic on invariant violations")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	flag.Parse()

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.ListenAddress = *listen
	}
	if *wsAddr != "" {
		cfg.WebSocketAddress = *wsAddr
	}
	if *terrain != "" {
		cfg.Terrain = *terrain
	}
	if *maxPlayers >= 0 {
		cfg.MaxPlayers = *maxPlayers
	}
	if *password != "" {
		cfg.JoinPassword = *password
	}
	if *scoresDir != "" {
		cfg.ScoresDir = *scoresDir
	}
	if *strict {
		cfg.Strict = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.TowerDefsPath != "" {
		if err := defs.LoadTowerDefinitions(cfg.TowerDefsPath); err != nil {
			return err
		}
	}
	if cfg.CreatureDefsPath != "" {
		if err := defs.LoadCreatureDefinitions(cfg.CreatureDefsPath); err != nil {
			return err
		}
	}

	game, err := app.NewGame(app.Options{
		Terrain:      cfg.Terrain,
		StartingGold: cfg.StartingGold,
		Seed:         cfg.Seed,
		Strict:       cfg.Strict,
	})
	if err != nil {
		return err
	}
	srv := server.New(cfg, game, persistence.NewStore(cfg.ScoresDir))
	clk := clock.New(game, config.TickInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx) })
	if cfg.WebSocketAddress != "" {
		ln, err := net.Listen("tcp", cfg.WebSocketAddress)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.WebSocketAddress, err)
		}
		g.Go(func() error { return srv.ServeWebSocket(ctx, ln) })
	}
	g.Go(func() error { return clk.Run(ctx) })
	g.Go(func() error { return srv.RunBroadcaster(ctx) })

	err = g.Wait()
	log.Printf("[server] stopped after %d ticks", clk.Steps())
	return err
}
