// internal/input/intent.go
package input

import (
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/types"
)

// Intent is what the input layer forwards: a wish, not a mutation.
type Intent interface {
	intent()
}

// PlaceTowerIntent builds a tower at a cell. An empty Kind uses the kind selected for building.
type PlaceTowerIntent struct {
	Kind defs.TowerKind
	X, Y int
}

// UpgradeIntent upgrades a tower. TowerID 0 means the selected tower.
type UpgradeIntent struct {
	TowerID types.EntityID
}

// SellIntent sells a tower. TowerID 0 means the selected tower.
type SellIntent struct {
	TowerID types.EntityID
}

// SelectIntent selects whatever tower stands on the cell, or clears the selection.
type SelectIntent struct {
	X, Y int
}

// ChooseKindIntent picks the kind used by later placements.
type ChooseKindIntent struct {
	Kind defs.TowerKind
}

type WaveIntent struct {
	Kind int
}

type PauseIntent struct {
	Paused bool
}

func (PlaceTowerIntent) intent() {}
func (UpgradeIntent) intent()    {}
func (SellIntent) intent()       {}
func (SelectIntent) intent()     {}
func (ChooseKindIntent) intent() {}
func (WaveIntent) intent()       {}
func (PauseIntent) intent()      {}
