// internal/server/broadcast.go
package server

import (
	"context"
	"log"
	"time"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/network"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/snapshot"
)

// RunBroadcaster is the watchdog: every heartbeat it sends a full snapshot
// with the changes drained since the previous flush, whatever players do.
// Between heartbeats it flushes early on the snapshot interval while the game
// runs, and when a command changed something.
func (s *Server) RunBroadcaster(ctx context.Context) error {
	heartbeat := time.NewTicker(s.cfg.HeartbeatInterval.Duration)
	defer heartbeat.Stop()

	var snapC <-chan time.Time
	if d := s.cfg.SnapshotInterval.Duration; d > 0 {
		t := time.NewTicker(d)
		defer t.Stop()
		snapC = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			s.flush(true)
		case <-snapC:
			s.flush(false)
		case <-s.dirty:
			s.flush(false)
		}
	}
}

// flush sends one snapshot message. Without force it is skipped when nothing
// changed and nothing moves. game_started and game_over are sent from here
// only, so they are ordered against the snapshots around them.
func (s *Server) flush(force bool) {
	events := s.game.DrainEvents()
	snap := s.game.Snapshot()
	if !force && len(events) == 0 && snap.Phase != component.PhaseRunning.String() {
		return
	}
	started := snap.Phase != component.PhaseLobby.String() && !s.startedSent
	if started {
		// сигнал старта идёт после последнего снимка лобби
		s.startedSent = true
		log.Printf("[server] game started")
	}
	over := snap.Phase == component.PhaseOver.String() && !s.overSent
	if over {
		// таблица пишется до рассылки, клиент запрашивает её сразу
		s.overSent = true
		s.saveScores(snap)
	}
	if started {
		s.broadcast(&network.Message{Type: network.TypeGameStarted})
	}
	s.broadcast(&network.Message{Type: network.TypeSnapshot, Snapshot: &snap, Events: events})
	if over {
		log.Printf("[server] game over: %s (winner team %d)", snap.Outcome, snap.Winner)
		s.broadcast(&network.Message{Type: network.TypeGameOver, GameOver: &network.GameOverInfo{
			Outcome: snap.Outcome,
			Winner:  snap.Winner,
		}})
	}
}

func (s *Server) saveScores(snap snapshot.Snapshot) {
	if s.store == nil {
		return
	}
	for _, p := range snap.Players {
		if _, err := s.store.SaveScore(snap.Terrain, persistence.Score{Player: p.Name, Value: p.Score}); err != nil {
			log.Printf("[server] save score of %q: %v", p.Name, err)
		}
	}
}
