// internal/app/tower_management.go
package app

import (
	"log"
	"math"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/types"
	"go-tower-arena/pkg/gridmap"
)

// PlaceTower places a tower with its top-left cell at (x, y).
func (g *Game) PlaceTower(playerID types.PlayerID, kind defs.TowerKind, x, y int) (types.EntityID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.canMutate(); err != nil {
		return 0, err
	}
	player, ok := g.players[playerID]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	def, ok := defs.TowerLibrary[kind]
	if !ok {
		return 0, ErrUnknownTowerKind
	}

	cells := component.Footprint(gridmap.Cell{X: x, Y: y}, def.Size)
	if !g.canBuildOn(player, cells) {
		return 0, ErrInvalidPosition
	}
	if player.Gold < def.Price {
		return 0, ErrInsufficientFunds
	}
	if !g.grid.CanPlaceObstacle(cells...) {
		return 0, ErrPathBlocked
	}

	id := g.createTowerEntity(player.ID, &def, cells)
	player.Gold -= def.Price
	g.grid.SetBlocked(true, cells...)
	g.reroute()

	g.events.Append(event.Event{Type: event.TowerPlaced, Player: playerID, Entity: id, Value: def.Price, Text: string(kind)})
	return id, nil
}

// canBuildOn checks bounds, buildable tiles, free cells and the player's zone.
func (g *Game) canBuildOn(player *component.Player, cells []gridmap.Cell) bool {
	zone := g.terrain.Slots[player.Slot].Zone
	for _, c := range cells {
		if !g.grid.InBounds(c) || !g.grid.CanBuild(c) || !zone.Contains(c) {
			return false
		}
	}
	return true
}

func (g *Game) createTowerEntity(owner types.PlayerID, def *defs.TowerDefinition, cells []gridmap.Cell) types.EntityID {
	id := g.ecs.NewEntity()
	origin := cells[0]
	px, py := origin.Center(config.CellSize)
	offset := float64(def.Size-1) * config.CellSize / 2
	g.ecs.Positions[id] = &component.Position{X: px + offset, Y: py + offset}

	g.ecs.Towers[id] = &component.Tower{
		Kind:       def.Kind,
		Owner:      owner,
		Cell:       origin,
		Size:       def.Size,
		Level:      1,
		Price:      def.Price,
		TotalSpent: def.Price,
	}
	g.ecs.Combats[id] = &component.Combat{
		Damage:   def.Damage,
		FireRate: def.FireRate,
		Range:    def.Range,
	}
	return id
}

// UpgradeTower pays the tower's current price and raises its level and stats.
func (g *Game) UpgradeTower(playerID types.PlayerID, towerID types.EntityID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.canMutate(); err != nil {
		return err
	}
	player, ok := g.players[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	tower, ok := g.ecs.Towers[towerID]
	if !ok {
		return ErrTowerNotFound
	}
	if tower.Owner != playerID {
		return ErrNotOwner
	}
	def := defs.TowerLibrary[tower.Kind]
	if tower.Level >= def.MaxLevel {
		return ErrMaxLevelReached
	}
	if player.Gold < tower.Price {
		return ErrInsufficientFunds
	}

	player.Gold -= tower.Price
	tower.TotalSpent += tower.Price
	tower.Price = int(math.Round(float64(tower.Price) * def.Growth.Price))
	tower.Level++

	combat := g.ecs.Combats[towerID]
	combat.Damage = int(math.Floor(float64(combat.Damage) * def.Growth.Damage))
	combat.Range = combat.Range*def.Growth.Range + def.Growth.RangeAdd
	combat.FireRate *= def.Growth.FireRate

	g.events.Append(event.Event{Type: event.TowerUpgraded, Player: playerID, Entity: towerID, Value: tower.Level, Text: string(tower.Kind)})
	return nil
}

// SellTower removes the tower and refunds a share of everything spent on it.
// Returns the refund.
func (g *Game) SellTower(playerID types.PlayerID, towerID types.EntityID) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.canMutate(); err != nil {
		return 0, err
	}
	player, ok := g.players[playerID]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	tower, ok := g.ecs.Towers[towerID]
	if !ok {
		return 0, ErrTowerNotFound
	}
	if tower.Owner != playerID {
		return 0, ErrNotOwner
	}

	refund := int(math.Floor(float64(tower.TotalSpent) * config.SellRefundRate))
	g.invariant(refund <= tower.TotalSpent, "refund %d exceeds total spent %d", refund, tower.TotalSpent)
	player.Gold += refund
	g.grid.SetBlocked(false, tower.Cells()...)
	kind := tower.Kind
	g.ecs.RemoveEntity(towerID)
	g.reroute()

	g.events.Append(event.Event{Type: event.TowerSold, Player: playerID, Entity: towerID, Value: refund, Text: string(kind)})
	return refund, nil
}

// StartWave launches a wave. Kind 0 is the next wave of the terrain sequence,
// kind k >= 1 a bonus wave from defs.WaveKinds.
func (g *Game) StartWave(playerID types.PlayerID, waveKind int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if g.phase != component.PhaseRunning {
		return ErrNotRunning
	}
	if g.WaveSystem.Active() {
		return ErrWaveInProgress
	}

	var wave defs.Wave
	switch {
	case waveKind == 0:
		if g.terrainWave >= len(g.terrain.Waves) {
			return ErrInvalidWave
		}
		wave = g.terrain.Waves[g.terrainWave]
		g.terrainWave++
	case waveKind > 0:
		w, ok := defs.WaveKinds[waveKind]
		if !ok {
			return ErrInvalidWave
		}
		wave = w
	default:
		return ErrInvalidWave
	}

	g.waveSerial++
	g.WaveSystem.Start(g.waveSerial, wave)
	g.events.Append(event.Event{Type: event.WaveStarted, Player: playerID, Value: g.waveSerial, Text: wave.Name})
	log.Printf("[game] player %d started wave %d %q", playerID, g.waveSerial, wave.Name)
	return nil
}
