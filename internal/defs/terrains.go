// internal/defs/terrains.go
package defs

import (
	"fmt"
	"sort"

	"go-tower-arena/internal/types"
	"go-tower-arena/pkg/gridmap"
)

// Rect — прямоугольная зона строительства в клетках, границы включительно.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether c lies inside r. A zero Rect contains every cell.
func (r Rect) Contains(c gridmap.Cell) bool {
	if r == (Rect{}) {
		return true
	}
	return c.X >= r.MinX && c.X <= r.MaxX && c.Y >= r.MinY && c.Y <= r.MaxY
}

// SlotDefinition is a player seat: route index equals slot index.
type SlotDefinition struct {
	Team types.TeamID
	Zone Rect
}

// TerrainDefinition describes a playable map.
type TerrainDefinition struct {
	Name           string
	Layout         []string
	Slots          []SlotDefinition
	StartingLives  int
	StartingGold   int // золото в одиночной игре
	Waves          []Wave
	StarThresholds [3]int // очки для 1, 2 и 3 звёзд
	StarsToUnlock  int
}

// Build parses the layout into a fresh path graph.
func (t TerrainDefinition) Build() (*gridmap.GridMap, error) {
	gm, err := gridmap.Parse(t.Layout)
	if err != nil {
		return nil, fmt.Errorf("terrain %s: %w", t.Name, err)
	}
	if len(gm.Routes) != len(t.Slots) {
		return nil, fmt.Errorf("terrain %s: %d routes for %d slots", t.Name, len(gm.Routes), len(t.Slots))
	}
	return gm, nil
}

// Stars returns how many star thresholds the score reaches.
func (t TerrainDefinition) Stars(score int) int {
	stars := 0
	for _, threshold := range t.StarThresholds {
		if threshold > 0 && score >= threshold {
			stars++
		}
	}
	return stars
}

// TerrainLibrary holds the built-in terrains keyed by name.
var TerrainLibrary = map[string]TerrainDefinition{
	"ElementTD": {
		Name: "ElementTD",
		Layout: []string{
			"##############################",
			"#a............##............b#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#.............##.............#",
			"#A............##............B#",
			"##############################",
		},
		Slots: []SlotDefinition{
			{Team: 1, Zone: Rect{MinX: 1, MinY: 1, MaxX: 13, MaxY: 13}},
			{Team: 1, Zone: Rect{MinX: 16, MinY: 1, MaxX: 28, MaxY: 13}},
		},
		StartingLives:  20,
		StartingGold:   100,
		Waves:          StandardWaves(20),
		StarThresholds: [3]int{200, 600, 1200},
		StarsToUnlock:  0,
	},
	"Spiral": {
		Name: "Spiral",
		Layout: []string{
			"##############################",
			"#a::::::::::::::::::::::::::.#",
			"#..........................:.#",
			"#.::::::::::::::::::::::::.:.#",
			"#.:......................:.:.#",
			"#.:.::::::::::::::::::::.:.:.#",
			"#.:.:..................:.:.:.#",
			"#.:.:.::::::::A:::::::.:.:.:.#",
			"#.:.:..................:.:.:.#",
			"#.:.::::::::::::::::::::.:.:.#",
			"#.:......................:.:.#",
			"#.::::::::::::::::::::::::.:.#",
			"#..........................:.#",
			"#::::::::::::::::::::::::::::#",
			"##############################",
		},
		Slots:          []SlotDefinition{{Team: 1}},
		StartingLives:  20,
		StartingGold:   120,
		Waves:          StandardWaves(25),
		StarThresholds: [3]int{300, 800, 1500},
		StarsToUnlock:  1,
	},
	"Desert": {
		Name: "Desert",
		Layout: []string{
			"##############################",
			"#a,,,,,,,,,,,,##,,,,,,,,,,,,b#",
			"#,,,,,,,,,,,,,##,,,,,,,,,,,,,#",
			"#,,,,,,####,,,##,,,####,,,,,,#",
			"#,,,,,,#..#,,,##,,,#..#,,,,,,#",
			"#,,,,,,#..#,,,##,,,#..#,,,,,,#",
			"#,,,,,,,,,,,,,##,,,,,,,,,,,,,#",
			"#,,,::::::,,,,##,,,,::::::,,,#",
			"#,,,,,,,,,,,,,##,,,,,,,,,,,,,#",
			"#,,,,,,#..#,,,##,,,#..#,,,,,,#",
			"#,,,,,,#..#,,,##,,,#..#,,,,,,#",
			"#,,,,,,####,,,##,,,####,,,,,,#",
			"#,,,,,,,,,,,,,##,,,,,,,,,,,,,#",
			"#,,,,,,,,,,,,A##B,,,,,,,,,,,,#",
			"##############################",
		},
		Slots: []SlotDefinition{
			{Team: 1, Zone: Rect{MinX: 1, MinY: 1, MaxX: 13, MaxY: 13}},
			{Team: 2, Zone: Rect{MinX: 16, MinY: 1, MaxX: 28, MaxY: 13}},
		},
		StartingLives:  15,
		StartingGold:   100,
		Waves:          StandardWaves(30),
		StarThresholds: [3]int{400, 1000, 2000},
		StarsToUnlock:  3,
	},
	"WaterWorld": {
		Name: "WaterWorld",
		Layout: []string{
			"##############################",
			"#a.......~~~~~~~~~~~~.......b#",
			"#........~~~~~~~~~~~~........#",
			"#...~~...~~~~~~~~~~~~...~~...#",
			"#...~~.......~~.........~~...#",
			"#............~~..............#",
			"#~~~~~....~~~~~~~~~.....~~~~~#",
			"#~~~~~..A.~~~~~~~~~..B..~~~~~#",
			"#~~~~~....~~~~~~~~~.....~~~~~#",
			"#............~~..............#",
			"#...~~.......~~.........~~...#",
			"#...~~...~~~~~~~~~~~~...~~...#",
			"#........~~~~~~~~~~~~........#",
			"#.......~~~~~~~~~~~~~~.......#",
			"##############################",
		},
		Slots: []SlotDefinition{
			{Team: 1, Zone: Rect{MinX: 1, MinY: 1, MaxX: 12, MaxY: 13}},
			{Team: 2, Zone: Rect{MinX: 17, MinY: 1, MaxX: 28, MaxY: 13}},
		},
		StartingLives:  10,
		StartingGold:   150,
		Waves:          StandardWaves(30),
		StarThresholds: [3]int{500, 1400, 2600},
		StarsToUnlock:  7,
	},
}

// TerrainNames returns the built-in terrains in unlock order.
func TerrainNames() []string {
	names := make([]string, 0, len(TerrainLibrary))
	for name := range TerrainLibrary {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ui, uj := TerrainLibrary[names[i]].StarsToUnlock, TerrainLibrary[names[j]].StarsToUnlock
		if ui != uj {
			return ui < uj
		}
		return names[i] < names[j]
	})
	return names
}
