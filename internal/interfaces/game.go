package interfaces

import (
	"go-tower-arena/internal/component"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/types"
)

// Commands is what one player may ask of a match.
type Commands interface {
	PlaceTower(playerID types.PlayerID, kind defs.TowerKind, x, y int) (types.EntityID, error)
	UpgradeTower(playerID types.PlayerID, towerID types.EntityID) error
	SellTower(playerID types.PlayerID, towerID types.EntityID) (int, error)
	StartWave(playerID types.PlayerID, waveKind int) error
	SetPaused(playerID types.PlayerID, paused bool) error
}

// Game is a match as the server drives it. *app.Game implements it.
type Game interface {
	Commands
	SnapshotSource
	AddPlayer(name string) (types.PlayerID, error)
	RemovePlayer(id types.PlayerID) error
	Player(id types.PlayerID) (component.Player, bool)
	Start() error
	Phase() component.Phase
	Outcome() (component.Outcome, types.TeamID)
	DrainEvents() []event.Event
}
