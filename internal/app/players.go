// internal/app/players.go
package app

import (
	"log"
	"strings"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/types"
)

// AddPlayer seats a new player in the lowest free slot. Only possible in the lobby.
func (g *Game) AddPlayer(name string) (types.PlayerID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != component.PhaseLobby {
		return 0, ErrGameInProgress
	}
	slot := -1
	for i, occupant := range g.slots {
		if occupant == 0 {
			slot = i
			break
		}
	}
	if slot < 0 {
		return 0, ErrNoSlotAvailable
	}

	name = strings.TrimSpace(name)
	id := g.nextPlayer
	g.nextPlayer++
	if name == "" {
		name = "player"
	}

	team := g.terrain.Slots[slot].Team
	g.players[id] = &component.Player{
		ID:    id,
		Name:  name,
		Team:  team,
		Slot:  slot,
		Gold:  g.startingGold,
		Lives: g.terrain.StartingLives,
	}
	g.slots[slot] = id
	g.teams[team].Players = append(g.teams[team].Players, id)

	g.events.Append(event.Event{Type: event.PlayerJoined, Player: id, Value: slot, Text: name})
	log.Printf("[game] player %d %q joined slot %d team %d", id, name, slot, team)
	return id, nil
}

// RemovePlayer frees the player's slot and removes their towers without refund.
// The simulation keeps running for the others.
func (g *Game) RemovePlayer(id types.PlayerID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	if !ok {
		return ErrUnknownPlayer
	}

	removed := false
	for _, towerID := range g.ecs.TowerIDs() {
		tower := g.ecs.Towers[towerID]
		if tower.Owner != id {
			continue
		}
		g.grid.SetBlocked(false, tower.Cells()...)
		g.ecs.RemoveEntity(towerID)
		removed = true
	}
	if removed {
		g.reroute()
	}

	g.slots[p.Slot] = 0
	team := g.teams[p.Team]
	for i, pid := range team.Players {
		if pid == id {
			team.Players = append(team.Players[:i], team.Players[i+1:]...)
			break
		}
	}
	delete(g.players, id)
	if len(team.Players) == 0 && (g.phase == component.PhaseRunning || g.phase == component.PhasePaused) && !team.Lost {
		// команда без игроков проигрывает
		team.Lost = true
		g.events.Append(event.Event{Type: event.TeamLost, Value: int(team.ID)})
	}

	g.events.Append(event.Event{Type: event.PlayerLeft, Player: id, Text: p.Name})
	log.Printf("[game] player %d %q left", id, p.Name)
	g.evaluateTerminal()
	return nil
}

// PlayerCount returns how many players are seated.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// Capacity returns the number of slots of the terrain.
func (g *Game) Capacity() int {
	return len(g.slots)
}
