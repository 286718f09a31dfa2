// internal/server/dispatch.go
package server

import (
	"fmt"
	"log"
	"strings"

	"go-tower-arena/internal/app"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/network"
)

// dispatch turns one wire command into a game mutation and builds the reply.
// A nil reply means fire-and-forget.
func (s *Server) dispatch(c *session, m *network.Message) *network.Message {
	switch m.Type {
	case network.TypePlaceTower:
		if m.Place == nil {
			return badRequest(m)
		}
		id, err := s.game.PlaceTower(c.player, m.Place.Kind, m.Place.X, m.Place.Y)
		r := s.result(c, m, err)
		r.Entity = id
		return resultMessage(r)

	case network.TypeUpgrade:
		if m.Tower == nil {
			return badRequest(m)
		}
		err := s.game.UpgradeTower(c.player, m.Tower.TowerID)
		r := s.result(c, m, err)
		r.Entity = m.Tower.TowerID
		return resultMessage(r)

	case network.TypeSell:
		if m.Tower == nil {
			return badRequest(m)
		}
		refund, err := s.game.SellTower(c.player, m.Tower.TowerID)
		r := s.result(c, m, err)
		r.Value = refund
		return resultMessage(r)

	case network.TypeStartWave:
		if m.Wave == nil {
			return badRequest(m)
		}
		err := s.game.StartWave(c.player, m.Wave.Kind)
		r := s.result(c, m, err)
		r.Status = app.WaveStatus(err)
		return resultMessage(r)

	case network.TypeStartGame:
		err := s.game.Start()
		r := s.result(c, m, err)
		if err == nil {
			log.Printf("[server] start requested by player %d", c.player)
			s.markDirty()
		}
		return resultMessage(r)

	case network.TypePause:
		if m.Pause == nil {
			return badRequest(m)
		}
		return resultMessage(s.result(c, m, s.game.SetPaused(c.player, m.Pause.Paused)))

	case network.TypeChatAll, network.TypeChatOne:
		s.chat(c, m)
		return nil

	case network.TypeScores:
		return s.scores(m)
	}
	return &network.Message{Type: network.TypeError, Error: fmt.Sprintf("unknown message type %q", m.Type)}
}

// result logs rejected commands and wakes the broadcaster after accepted ones.
func (s *Server) result(c *session, m *network.Message, err error) *network.Result {
	if err != nil {
		log.Printf("[session %d] %s rejected: %v", c.conn, m.Type, err)
	} else {
		s.markDirty()
	}
	return network.ResultFor(err)
}

func resultMessage(r *network.Result) *network.Message {
	return &network.Message{Type: network.TypeResult, Result: r}
}

func badRequest(m *network.Message) *network.Message {
	return resultMessage(&network.Result{Code: network.CodeError, Error: fmt.Sprintf("%s without payload", m.Type)})
}

func (s *Server) chat(c *session, m *network.Message) {
	if m.Chat == nil {
		return
	}
	text := strings.TrimSpace(m.Chat.Text)
	if text == "" {
		return
	}
	out := &network.Message{Type: network.TypeChat, Chat: &network.ChatMessage{
		From:     c.player,
		FromName: c.name,
		To:       m.Chat.To,
		Text:     text,
	}}
	if m.Type == network.TypeChatAll || m.Chat.To == 0 {
		out.Chat.To = 0
		s.broadcast(out)
		return
	}
	if !s.sendTo(m.Chat.To, out) {
		log.Printf("[session %d] chat to unknown player %d dropped", c.conn, m.Chat.To)
	}
}

func (s *Server) scores(m *network.Message) *network.Message {
	terrain := s.terrain
	if m.Scores != nil && m.Scores.Terrain != "" {
		terrain = m.Scores.Terrain
	}
	if s.store == nil {
		return &network.Message{Type: network.TypeError, Error: "scores unavailable"}
	}
	if _, ok := defs.TerrainLibrary[terrain]; !ok {
		return &network.Message{Type: network.TypeError, Error: fmt.Sprintf("unknown terrain %q", terrain)}
	}
	list, err := s.store.LoadScores(terrain)
	if err != nil {
		return &network.Message{Type: network.TypeError, Error: err.Error()}
	}
	return &network.Message{Type: network.TypeScores, Scores: &network.ScoresPayload{Terrain: terrain, Scores: list}}
}
