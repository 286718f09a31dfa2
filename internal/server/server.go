// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go-tower-arena/internal/app"
	"go-tower-arena/internal/component"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/interfaces"
	"go-tower-arena/internal/network"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/types"
)

// State — состояние сервера в целом.
type State int

const (
	StateLobby State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateLobby:
		return "LOBBY"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	}
	return "UNKNOWN"
}

// Server hosts one match for remote players.
type Server struct {
	cfg   *config.ServerConfig
	game  interfaces.Game
	store *persistence.Store

	terrain string
	matchID string

	mu       sync.RWMutex
	sessions map[types.PlayerID]*session

	nextConn atomic.Uint64
	dirty    chan struct{}

	// только горутина рассылки
	startedSent bool
	overSent    bool

	connMu  sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// New creates a server around an existing game. store may be nil, then no
// scores are saved or served.
func New(cfg *config.ServerConfig, game interfaces.Game, store *persistence.Store) *Server {
	snap := game.Snapshot()
	return &Server{
		cfg:      cfg,
		game:     game,
		store:    store,
		terrain:  snap.Terrain,
		matchID:  snap.MatchID,
		sessions: make(map[types.PlayerID]*session),
		dirty:    make(chan struct{}, 1),
	}
}

// State maps the game phase onto the server lifecycle.
func (s *Server) State() State {
	switch s.game.Phase() {
	case component.PhaseLobby:
		return StateLobby
	case component.PhaseOver:
		return StateFinished
	}
	return StateInProgress
}

// SessionCount returns the number of registered connections.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ListenAndServe listens on the configured TCP address.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections until ctx is cancelled, then closes every session.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Printf("[server] listening on %s, terrain %s, match %s", ln.Addr(), s.terrain, s.matchID)
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			s.shutdown()
			return fmt.Errorf("accept: %w", err)
		}
		if !s.track() {
			conn.Close()
			continue
		}
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, network.NewLineCodec(conn))
		}()
	}
	s.shutdown()
	return nil
}

// track registers a new connection goroutine. It fails once shutdown began,
// Add must not race with Wait.
func (s *Server) track() bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) shutdown() {
	s.connMu.Lock()
	s.closing = true
	s.connMu.Unlock()

	s.mu.RLock()
	for _, c := range s.sessions {
		c.close()
	}
	s.mu.RUnlock()
	s.wg.Wait()
	log.Printf("[server] stopped")
}

// handleConn runs one connection from registration to disconnect.
func (s *Server) handleConn(ctx context.Context, codec network.Codec) {
	connID := s.nextConn.Add(1)
	log.Printf("[server] connection %d from %s", connID, codec.RemoteAddr())

	c, err := s.register(connID, codec)
	if err != nil {
		log.Printf("[server] connection %d refused: %v", connID, err)
		codec.Close()
		return
	}

	go c.writeLoop()
	stop := context.AfterFunc(ctx, c.close)
	defer stop()

	s.readLoop(c)

	c.close()
	s.mu.Lock()
	delete(s.sessions, c.player)
	s.mu.Unlock()
	if err := s.game.RemovePlayer(c.player); err != nil {
		log.Printf("[session %d] remove player: %v", c.conn, err)
	}
	log.Printf("[session %d] player %d %q disconnected", c.conn, c.player, c.name)
	s.broadcastRoster()
	s.markDirty()
}

// register waits for the register message within the registration timeout.
func (s *Server) register(connID uint64, codec network.Codec) (*session, error) {
	codec.SetReadDeadline(time.Now().Add(s.cfg.RegistrationTimeout.Duration))
	m := &network.Message{}
	if err := codec.Decode(m); err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			s.refuse(codec, 0, network.ReasonTimeout)
			return nil, errors.New(network.ReasonTimeout)
		}
		return nil, fmt.Errorf("read registration: %w", err)
	}
	codec.SetReadDeadline(time.Time{})

	if m.Type != network.TypeRegister || m.Register == nil {
		s.refuse(codec, m.ID, "expected register")
		return nil, fmt.Errorf("unexpected %q before registration", m.Type)
	}
	if !s.cfg.CheckPassword(m.Register.Password) {
		s.refuse(codec, m.ID, network.ReasonBadPassword)
		return nil, errors.New(network.ReasonBadPassword)
	}
	if s.cfg.MaxPlayers > 0 && s.SessionCount() >= s.cfg.MaxPlayers {
		s.refuse(codec, m.ID, network.ReasonNoSlot)
		return nil, errors.New(network.ReasonNoSlot)
	}

	pid, err := s.game.AddPlayer(m.Register.Name)
	if err != nil {
		reason := err.Error()
		switch {
		case errors.Is(err, app.ErrGameInProgress):
			reason = network.ReasonGameInProgress
		case errors.Is(err, app.ErrNoSlotAvailable):
			reason = network.ReasonNoSlot
		}
		s.refuse(codec, m.ID, reason)
		return nil, err
	}
	player, _ := s.game.Player(pid)

	c := newSession(connID, pid, player.Name, codec, s.cfg.SendQueueSize, s.cfg.WriteTimeout.Duration)
	c.send(&network.Message{
		Type: network.TypeRegistered,
		ID:   m.ID,
		Registered: &network.RegisterResponse{
			PlayerID: pid,
			MatchID:  s.matchID,
			Terrain:  s.terrain,
			Slot:     player.Slot,
			Team:     player.Team,
		},
	})
	s.mu.Lock()
	s.sessions[pid] = c
	s.mu.Unlock()

	log.Printf("[session %d] registered player %d %q (slot %d, team %d)", connID, pid, player.Name, player.Slot, player.Team)
	s.broadcastRoster()
	s.markDirty()
	return c, nil
}

// refuse answers a failed registration directly, there is no session yet.
func (s *Server) refuse(codec network.Codec, id uint64, reason string) {
	codec.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout.Duration))
	codec.Encode(&network.Message{Type: network.TypeError, ID: id, Error: reason})
}

func (s *Server) readLoop(c *session) {
	for {
		m := &network.Message{}
		if err := c.codec.Decode(m); err != nil {
			select {
			case <-c.closed():
			default:
				log.Printf("[session %d] read: %v", c.conn, err)
			}
			return
		}
		if m.Type == network.TypeGoodbye {
			return
		}
		if reply := s.dispatch(c, m); reply != nil {
			reply.ID = m.ID
			c.send(reply)
		}
	}
}

// markDirty asks the broadcaster for an early flush.
func (s *Server) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// broadcast queues m on every session. The message is shared and must not be
// modified afterwards.
func (s *Server) broadcast(m *network.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.sessions {
		if !c.send(m) {
			log.Printf("[session %d] dropped %s (queue full or closed)", c.conn, m.Type)
		}
	}
}

func (s *Server) sendTo(pid types.PlayerID, m *network.Message) bool {
	s.mu.RLock()
	c, ok := s.sessions[pid]
	s.mu.RUnlock()
	return ok && c.send(m)
}

func (s *Server) broadcastRoster() {
	s.mu.RLock()
	roster := make([]network.RosterEntry, 0, len(s.sessions))
	for _, c := range s.sessions {
		entry := network.RosterEntry{PlayerID: c.player, Name: c.name}
		if p, ok := s.game.Player(c.player); ok {
			entry.Slot, entry.Team = p.Slot, p.Team
		}
		roster = append(roster, entry)
	}
	s.mu.RUnlock()
	sort.Slice(roster, func(i, j int) bool { return roster[i].PlayerID < roster[j].PlayerID })
	s.broadcast(&network.Message{Type: network.TypeRoster, Roster: roster})
}
