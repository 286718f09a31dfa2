package gridmap

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, layout []string) *GridMap {
	t.Helper()
	gm, err := Parse(layout)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return gm
}

func TestParse(t *testing.T) {
	gm := mustParse(t, []string{
		"#####",
		"a...A",
		"#~:,#",
	})
	if gm.Width != 5 || gm.Height != 3 {
		t.Fatalf("Expected 5x3, got %dx%d", gm.Width, gm.Height)
	}
	if len(gm.Routes) != 1 {
		t.Fatalf("Expected 1 route, got %d", len(gm.Routes))
	}
	if gm.Routes[0].Spawn != (Cell{0, 1}) || gm.Routes[0].Goal != (Cell{4, 1}) {
		t.Errorf("Unexpected route %+v", gm.Routes[0])
	}
	tests := []struct {
		name     string
		cell     Cell
		passable bool
		build    bool
		cost     int
	}{
		{"Wall", Cell{0, 0}, false, false, 1},
		{"Open", Cell{1, 1}, true, true, 1},
		{"Water", Cell{1, 2}, false, false, 1},
		{"Road", Cell{2, 2}, true, false, 1},
		{"Sand", Cell{3, 2}, true, true, 2},
		{"Spawn", Cell{0, 1}, true, false, 1},
		{"Outside", Cell{-1, 0}, false, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := gm.Tile(tt.cell)
			if tile.Passable != tt.passable || gm.CanBuild(tt.cell) != tt.build || tile.Cost != tt.cost {
				t.Errorf("Tile %v = %+v, want passable=%v build=%v cost=%d", tt.cell, tile, tt.passable, tt.build, tt.cost)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
	}{
		{"Empty", nil},
		{"Ragged", []string{"a..A", "..."}},
		{"Missing goal", []string{"a..."}},
		{"Missing spawn", []string{"...A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.layout); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestShortestPathStraight(t *testing.T) {
	gm := mustParse(t, []string{"a...A"})
	path, err := gm.ShortestPath(gm.Routes[0].Spawn, gm.Routes[0].Goal)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(path) != 5 {
		t.Fatalf("Expected 5 cells, got %d", len(path))
	}
	for i, c := range path {
		if c != (Cell{i, 0}) {
			t.Errorf("path[%d] = %v", i, c)
		}
	}
}

func TestShortestPathTieBreak(t *testing.T) {
	// Два пути равной стоимости: через верхний и через нижний ряд.
	gm := mustParse(t, []string{
		"...",
		"a#A",
		"...",
	})
	first, err := gm.ShortestPath(gm.Routes[0].Spawn, gm.Routes[0].Goal)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Верхний ряд имеет меньшие индексы узлов.
	want := []Cell{{0, 1}, {0, 0}, {1, 0}, {2, 0}, {2, 1}}
	if len(first) != len(want) {
		t.Fatalf("Expected %v, got %v", want, first)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, first)
		}
	}
	for i := 0; i < 10; i++ {
		again, _ := gm.ShortestPath(gm.Routes[0].Spawn, gm.Routes[0].Goal)
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("Path not deterministic on run %d", i)
			}
		}
	}
}

func TestShortestPathPrefersCheaperTiles(t *testing.T) {
	gm := mustParse(t, []string{
		".....",
		"a,,,A",
	})
	path, err := gm.ShortestPath(gm.Routes[0].Spawn, gm.Routes[0].Goal)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, c := range path[1 : len(path)-1] {
		if c.Y == 1 {
			t.Fatalf("Path crosses sand: %v", path)
		}
	}
}

func TestShortestPathNoPath(t *testing.T) {
	gm := mustParse(t, []string{"a.#.A"})
	if _, err := gm.ShortestPath(gm.Routes[0].Spawn, gm.Routes[0].Goal); !errors.Is(err, ErrNoPath) {
		t.Errorf("Expected ErrNoPath, got %v", err)
	}
}

func TestCanPlaceObstacle(t *testing.T) {
	gm := mustParse(t, []string{
		"a...A",
		".....",
	})
	if !gm.CanPlaceObstacle(Cell{2, 0}) {
		t.Error("Expected detour through second row")
	}
	if gm.CanPlaceObstacle(Cell{2, 0}, Cell{2, 1}) {
		t.Error("Expected wall across both rows to block")
	}
	if gm.CanPlaceObstacle(Cell{0, 0}) {
		t.Error("Spawn cell must never be blocked")
	}
	// Карта не должна измениться после проверки.
	if !gm.IsPassable(Cell{2, 0}) || !gm.IsPassable(Cell{2, 1}) {
		t.Error("Probe left cells blocked")
	}
}

func TestCanPlaceObstacleAllRoutes(t *testing.T) {
	gm := mustParse(t, []string{
		"a..A",
		"####",
		"b..B",
	})
	if gm.CanPlaceObstacle(Cell{1, 2}) {
		t.Error("Blocking second route must be rejected")
	}
	gm.SetBlocked(true, Cell{1, 0})
	if _, err := gm.ShortestPath(gm.Routes[0].Spawn, gm.Routes[0].Goal); err == nil {
		t.Error("Expected first route blocked after SetBlocked")
	}
	gm.SetBlocked(false, Cell{1, 0})
	if _, err := gm.ShortestPath(gm.Routes[0].Spawn, gm.Routes[0].Goal); err != nil {
		t.Errorf("Expected path after unblocking, got %v", err)
	}
}

func TestShortestPathFromBlockedStart(t *testing.T) {
	gm := mustParse(t, []string{"a...A"})
	gm.SetBlocked(true, Cell{1, 0})
	if _, err := gm.ShortestPath(Cell{1, 0}, gm.Routes[0].Goal); err != nil {
		t.Errorf("Creature on a newly blocked cell should still route out: %v", err)
	}
}

func TestActiveArcs(t *testing.T) {
	gm := NewGridMap(3, 3)
	paths := [][]Cell{
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 0}, {1, 0}, {1, 1}},
	}
	arcs := gm.ActiveArcs(paths)
	if len(arcs) != 3 {
		t.Fatalf("Expected 3 distinct arcs, got %d: %v", len(arcs), arcs)
	}
	want := []Arc{
		{From: Cell{0, 0}, To: Cell{1, 0}},
		{From: Cell{1, 0}, To: Cell{2, 0}},
		{From: Cell{1, 0}, To: Cell{1, 1}},
	}
	for i := range want {
		if arcs[i] != want[i] {
			t.Errorf("arcs[%d] = %v, want %v", i, arcs[i], want[i])
		}
	}
}

func TestPixelConversion(t *testing.T) {
	c := Cell{X: 3, Y: 2}
	x, y := c.Center(20)
	if x != 70 || y != 50 {
		t.Errorf("Center = %v,%v", x, y)
	}
	if got := PixelToCell(x, y, 20); got != c {
		t.Errorf("PixelToCell = %v", got)
	}
	if got := PixelToCell(-1, 5, 20); got != (Cell{-1, 0}) {
		t.Errorf("PixelToCell negative = %v", got)
	}
}
