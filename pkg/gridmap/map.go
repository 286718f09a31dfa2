// pkg/gridmap/map.go
package gridmap

import (
	"fmt"
	"unicode"
)

// TileKind — вид клетки, влияет только на отрисовку и стоимость прохода.
type TileKind byte

const (
	TileOpen  TileKind = '.'
	TileRoad  TileKind = ':'
	TileSand  TileKind = ','
	TileWall  TileKind = '#'
	TileWater TileKind = '~'
	TileSpawn TileKind = 'S'
	TileGoal  TileKind = 'G'
)

type Tile struct {
	Kind          TileKind
	Passable      bool
	CanPlaceTower bool
	Cost          int // стоимость входа в клетку
}

// Route connects one spawn cell to one goal cell. Terrains register one route per slot.
type Route struct {
	Spawn Cell
	Goal  Cell
}

// GridMap is the path graph: cells are nodes, 4-neighbour adjacency are arcs.
type GridMap struct {
	Width, Height int
	Tiles         []Tile
	Routes        []Route
}

// NewGridMap creates an open map where every tile is passable and buildable.
func NewGridMap(width, height int) *GridMap {
	gm := &GridMap{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	for i := range gm.Tiles {
		gm.Tiles[i] = tileFor(TileOpen)
	}
	return gm
}

func tileFor(kind TileKind) Tile {
	switch kind {
	case TileWall, TileWater:
		return Tile{Kind: kind, Passable: false, CanPlaceTower: false, Cost: 1}
	case TileRoad:
		return Tile{Kind: kind, Passable: true, CanPlaceTower: false, Cost: 1}
	case TileSand:
		return Tile{Kind: kind, Passable: true, CanPlaceTower: true, Cost: 2}
	case TileSpawn, TileGoal:
		return Tile{Kind: kind, Passable: true, CanPlaceTower: false, Cost: 1}
	default:
		return Tile{Kind: TileOpen, Passable: true, CanPlaceTower: true, Cost: 1}
	}
}

// Parse builds a map from an ASCII layout.
//
//	'.' open (buildable)   ':' road (walk only)   ',' sand (buildable, cost 2)
//	'#' wall               '~' water
//	'a'..'h' spawn of route 0..7, 'A'..'H' goal of route 0..7
//
// Every route letter used must have both its spawn and its goal.
func Parse(layout []string) (*GridMap, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("empty layout")
	}
	width := len(layout[0])
	gm := &GridMap{Width: width, Height: len(layout), Tiles: make([]Tile, width*len(layout))}

	spawns := map[int]Cell{}
	goals := map[int]Cell{}
	for y, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, expected %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			ch := rune(row[x])
			c := Cell{X: x, Y: y}
			switch {
			case ch >= 'a' && ch <= 'h':
				spawns[int(ch-'a')] = c
				gm.Tiles[gm.Index(c)] = tileFor(TileSpawn)
			case ch >= 'A' && ch <= 'H':
				goals[int(ch-'A')] = c
				gm.Tiles[gm.Index(c)] = tileFor(TileGoal)
			case unicode.IsSpace(ch):
				return nil, fmt.Errorf("unexpected space at %d,%d", x, y)
			default:
				gm.Tiles[gm.Index(c)] = tileFor(TileKind(ch))
			}
		}
	}

	for i := 0; i < len(spawns); i++ {
		spawn, ok := spawns[i]
		if !ok {
			return nil, fmt.Errorf("route %d has no spawn", i)
		}
		goal, ok := goals[i]
		if !ok {
			return nil, fmt.Errorf("route %d has no goal", i)
		}
		gm.Routes = append(gm.Routes, Route{Spawn: spawn, Goal: goal})
	}
	if len(goals) != len(spawns) {
		return nil, fmt.Errorf("%d goals for %d spawns", len(goals), len(spawns))
	}
	return gm, nil
}

// Index возвращает индекс узла клетки. Используется для разрешения ничьих.
func (gm *GridMap) Index(c Cell) int {
	return c.Y*gm.Width + c.X
}

// InBounds reports whether the cell lies on the map.
func (gm *GridMap) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < gm.Width && c.Y < gm.Height
}

// Tile returns the tile at c. Out-of-bounds cells read as walls.
func (gm *GridMap) Tile(c Cell) Tile {
	if !gm.InBounds(c) {
		return tileFor(TileWall)
	}
	return gm.Tiles[gm.Index(c)]
}

func (gm *GridMap) IsPassable(c Cell) bool {
	return gm.Tile(c).Passable
}

// CanBuild reports whether a tower may stand on c: buildable and not occupied.
func (gm *GridMap) CanBuild(c Cell) bool {
	t := gm.Tile(c)
	return t.Passable && t.CanPlaceTower
}

// SetBlocked marks cells occupied by an obstacle (or frees them).
func (gm *GridMap) SetBlocked(blocked bool, cells ...Cell) {
	for _, c := range cells {
		if !gm.InBounds(c) {
			continue
		}
		t := gm.Tiles[gm.Index(c)]
		t.Passable = !blocked
		gm.Tiles[gm.Index(c)] = t
	}
}

// Neighbors returns the passable neighbours of c in ascending node index order.
func (gm *GridMap) Neighbors(c Cell) []Cell {
	result := make([]Cell, 0, 4)
	for _, d := range directions {
		n := c.Add(d)
		if gm.IsPassable(n) {
			result = append(result, n)
		}
	}
	return result
}

// Clone returns a deep copy of the map.
func (gm *GridMap) Clone() *GridMap {
	clone := &GridMap{
		Width:  gm.Width,
		Height: gm.Height,
		Tiles:  make([]Tile, len(gm.Tiles)),
		Routes: make([]Route, len(gm.Routes)),
	}
	copy(clone.Tiles, gm.Tiles)
	copy(clone.Routes, gm.Routes)
	return clone
}
