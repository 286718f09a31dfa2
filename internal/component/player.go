// internal/component/player.go
package component

import "go-tower-arena/internal/types"

// Player holds everything the economy and the roster need about one player.
type Player struct {
	ID    types.PlayerID
	Name  string
	Team  types.TeamID
	Slot  int
	Gold  int
	Lives int
	Score int
	Kills int
}

// Alive reports whether the player still has lives.
func (p *Player) Alive() bool {
	return p.Lives > 0
}

// Team aggregates players sharing a victory condition.
type Team struct {
	ID      types.TeamID
	Players []types.PlayerID
	Lost    bool
}
