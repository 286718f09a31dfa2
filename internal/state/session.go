// internal/state/session.go
package state

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"go-tower-arena/internal/app"
	"go-tower-arena/internal/clock"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/input"
	"go-tower-arena/internal/network"
	"go-tower-arena/internal/types"
	"go-tower-arena/internal/ui"
)

// session is the game the screens talk to: a local simulation or a
// connection to a server. Screens never care which.
type session interface {
	Controller() input.Controller
	// Events returns what happened since the previous call.
	Events() []event.Event
	Terrain() string
	Solo() bool
	// SetSpeed only applies to solo games.
	SetSpeed(multiplier int) error
	Close()
}

// soloSession runs app.Game in-process with its own clock.
type soloSession struct {
	game   *app.Game
	clock  *clock.Clock
	ctrl   *input.LocalController
	cancel context.CancelFunc
	done   chan struct{}
}

func newSoloSession(terrain, name string) (*soloSession, error) {
	g, err := app.NewGame(app.Options{Terrain: terrain})
	if err != nil {
		return nil, err
	}
	pid, err := g.AddPlayer(name)
	if err != nil {
		return nil, err
	}
	if err := g.Start(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &soloSession{
		game:   g,
		clock:  clock.New(g, config.TickInterval),
		ctrl:   input.NewLocalController(g, pid),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		if err := s.clock.Run(ctx); err != nil {
			log.Printf("[state] clock stopped: %v", err)
		}
	}()
	return s, nil
}

func (s *soloSession) Controller() input.Controller { return s.ctrl }
func (s *soloSession) Events() []event.Event        { return s.game.DrainEvents() }
func (s *soloSession) Terrain() string              { return s.game.Terrain().Name }
func (s *soloSession) Solo() bool                   { return true }

func (s *soloSession) SetSpeed(multiplier int) error {
	return s.clock.SetSpeed(multiplier)
}

func (s *soloSession) Close() {
	s.cancel()
	<-s.done
}

// remoteSession is a registered connection to a server. Broadcasts other
// than snapshots are collected here for the lobby and game screens.
type remoteSession struct {
	client *network.Client
	ctrl   *input.RemoteController
	info   network.RegisterResponse
	cancel context.CancelFunc
	Chat   *ui.ChatLog

	mu       sync.Mutex
	events   []event.Event
	roster   []network.RosterEntry
	started  bool
	gameOver *network.GameOverInfo
	lost     bool
}

// dialSession connects, registers and starts consuming broadcasts.
func dialSession(ctx context.Context, env *Env) (*remoteSession, error) {
	var (
		client *network.Client
		err    error
	)
	if env.WebSocket || strings.HasPrefix(env.ServerAddr, "ws://") || strings.HasPrefix(env.ServerAddr, "wss://") {
		client, err = network.DialWebSocket(ctx, env.ServerAddr)
	} else {
		client, err = network.Dial(ctx, env.ServerAddr)
	}
	if err != nil {
		return nil, err
	}
	info, err := client.Register(ctx, env.Name, env.Password)
	if err != nil {
		client.Close()
		return nil, err
	}
	s := newRemoteSession(client, info)
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		if err := s.ctrl.Run(runCtx); err != nil {
			log.Printf("[state] connection lost: %v", err)
			s.mu.Lock()
			s.lost = true
			s.mu.Unlock()
		}
	}()
	return s, nil
}

func newRemoteSession(client *network.Client, info network.RegisterResponse) *remoteSession {
	s := &remoteSession{
		client: client,
		ctrl:   input.NewRemoteController(client, 5*time.Second),
		info:   info,
		cancel: func() {},
		Chat:   ui.NewChatLog(6),
	}
	s.ctrl.OnMessage = s.onMessage
	return s
}

func (s *remoteSession) onMessage(m *network.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch m.Type {
	case network.TypeSnapshot:
		if m.Snapshot != nil && m.Snapshot.Phase != "lobby" {
			s.started = true
		}
		s.events = append(s.events, m.Events...)
	case network.TypeEvents:
		s.events = append(s.events, m.Events...)
	case network.TypeRoster:
		s.roster = append(s.roster[:0], m.Roster...)
		sort.Slice(s.roster, func(i, j int) bool { return s.roster[i].Slot < s.roster[j].Slot })
	case network.TypeChat:
		if m.Chat != nil {
			s.Chat.Add(chatLine(m.Chat))
		}
	case network.TypeGameStarted:
		s.started = true
		s.Chat.Add("* game started")
	case network.TypeGameOver:
		s.gameOver = m.GameOver
	}
}

func chatLine(c *network.ChatMessage) string {
	if c.To != 0 {
		return fmt.Sprintf("[%s -> you] %s", c.FromName, c.Text)
	}
	return fmt.Sprintf("<%s> %s", c.FromName, c.Text)
}

func (s *remoteSession) Controller() input.Controller { return s.ctrl }

func (s *remoteSession) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.events
	s.events = nil
	return out
}

func (s *remoteSession) Terrain() string { return s.info.Terrain }
func (s *remoteSession) Solo() bool      { return false }

func (s *remoteSession) SetSpeed(int) error {
	return fmt.Errorf("speed is fixed by the server")
}

func (s *remoteSession) Roster() []network.RosterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]network.RosterEntry(nil), s.roster...)
}

func (s *remoteSession) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Lost reports a connection closed by the server or the network.
func (s *remoteSession) Lost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

func (s *remoteSession) PlayerID() types.PlayerID { return s.info.PlayerID }

func (s *remoteSession) Close() {
	s.cancel()
	if err := s.client.Send(&network.Message{Type: network.TypeGoodbye}); err != nil {
		log.Printf("[state] goodbye: %v", err)
	}
	s.client.Close()
}
