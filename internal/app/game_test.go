package app

import (
	"errors"
	"sync"
	"testing"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/types"
	"go-tower-arena/pkg/gridmap"
)

const dt = 0.04

func registerTerrain(t *testing.T, def defs.TerrainDefinition) {
	t.Helper()
	defs.TerrainLibrary[def.Name] = def
	t.Cleanup(func() { delete(defs.TerrainLibrary, def.Name) })
}

func singleWave(creature string, count int) []defs.Wave {
	return []defs.Wave{{Name: "test", Bonus: 10, Batches: []defs.WaveDefinition{{CreatureID: creature, Count: count, Interval: 100e6}}}}
}

// narrow: единственный коридор, любая башня в нём перекрывает путь.
func narrowTerrain() defs.TerrainDefinition {
	return defs.TerrainDefinition{
		Name:          "test-narrow",
		Layout:        []string{"#####", "a...A", "#.#.#", "#####"},
		Slots:         []defs.SlotDefinition{{Team: 1}},
		StartingLives: 3,
		StartingGold:  20,
		Waves:         singleWave("normal", 1),
	}
}

func wideTerrain() defs.TerrainDefinition {
	return defs.TerrainDefinition{
		Name:          "test-wide",
		Layout:        []string{"#######", "#.....#", "a.....A", "#.....#", "#######"},
		Slots:         []defs.SlotDefinition{{Team: 1}},
		StartingLives: 3,
		StartingGold:  20,
		Waves:         singleWave("swarm", 1),
	}
}

func versusTerrain() defs.TerrainDefinition {
	return defs.TerrainDefinition{
		Name:   "test-versus",
		Layout: []string{"a.....A", ".......", "b.....B"},
		Slots: []defs.SlotDefinition{
			{Team: 1, Zone: defs.Rect{MinX: 0, MinY: 0, MaxX: 6, MaxY: 0}},
			{Team: 2, Zone: defs.Rect{MinX: 0, MinY: 1, MaxX: 6, MaxY: 2}},
		},
		StartingLives: 5,
		StartingGold:  100,
		Waves:         singleWave("normal", 1),
	}
}

func coopTerrain() defs.TerrainDefinition {
	t := versusTerrain()
	t.Name = "test-coop"
	t.Slots = []defs.SlotDefinition{{Team: 1}, {Team: 1}}
	return t
}

func newTestGame(t *testing.T, terrain defs.TerrainDefinition, gold int) (*Game, types.PlayerID) {
	t.Helper()
	registerTerrain(t, terrain)
	g, err := NewGame(Options{Terrain: terrain.Name, StartingGold: gold, Seed: 1, Strict: true})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	id, err := g.AddPlayer("alice")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	return g, id
}

func gold(t *testing.T, g *Game, id types.PlayerID) int {
	t.Helper()
	p, ok := g.Player(id)
	if !ok {
		t.Fatalf("player %d missing", id)
	}
	return p.Gold
}

func runUntilOver(t *testing.T, g *Game, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks && g.Phase() != component.PhaseOver; i++ {
		g.Tick(dt)
	}
	if g.Phase() != component.PhaseOver {
		t.Fatalf("game not over after %d ticks", maxTicks)
	}
}

func TestNewGameUnknownTerrain(t *testing.T) {
	if _, err := NewGame(Options{Terrain: "nowhere"}); err == nil {
		t.Fatal("expected an error for an unknown terrain")
	}
}

func TestPlaceTowerInsufficientFunds(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 20)

	if _, err := g.PlaceTower(alice, defs.TowerCannon, 2, 1); err != nil {
		t.Fatalf("first cannon: %v", err)
	}
	if got := gold(t, g, alice); got != 0 {
		t.Fatalf("gold = %d, want 0", got)
	}
	_, err := g.PlaceTower(alice, defs.TowerCannon, 4, 3)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("second cannon: err = %v, want ErrInsufficientFunds", err)
	}
	if got := gold(t, g, alice); got != 0 {
		t.Errorf("gold changed to %d", got)
	}
	if got := len(g.Snapshot().Towers); got != 1 {
		t.Errorf("towers = %d, want 1", got)
	}
}

func TestPlaceTowerPathBlocked(t *testing.T) {
	g, alice := newTestGame(t, narrowTerrain(), 100)
	before := g.Grid()

	_, err := g.PlaceTower(alice, defs.TowerArcher, 2, 1)
	if !errors.Is(err, ErrPathBlocked) {
		t.Fatalf("err = %v, want ErrPathBlocked", err)
	}
	if got := gold(t, g, alice); got != 100 {
		t.Errorf("gold = %d, want 100", got)
	}
	after := g.Grid()
	for i := range before.Tiles {
		if before.Tiles[i] != after.Tiles[i] {
			t.Fatalf("tile %d changed after a rejected placement", i)
		}
	}
	if len(g.Snapshot().Towers) != 0 {
		t.Error("tower created despite the rejection")
	}

	// тупик в стороне от пути можно застроить
	if _, err := g.PlaceTower(alice, defs.TowerArcher, 1, 2); err != nil {
		t.Errorf("dead end cell: %v", err)
	}
}

func TestPlaceTowerValidation(t *testing.T) {
	g, alice := newTestGame(t, versusTerrain(), 1000)
	bob, err := g.AddPlayer("bob")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.PlaceTower(bob, defs.TowerArcher, 3, 1); err != nil {
		t.Fatalf("bob's tower: %v", err)
	}

	tests := []struct {
		name   string
		player types.PlayerID
		kind   defs.TowerKind
		x, y   int
		want   error
	}{
		{"spawn cell", alice, defs.TowerArcher, 0, 0, ErrInvalidPosition},
		{"out of bounds", alice, defs.TowerArcher, 9, 0, ErrInvalidPosition},
		{"outside own zone", alice, defs.TowerArcher, 3, 2, ErrInvalidPosition},
		{"occupied", bob, defs.TowerArcher, 3, 1, ErrInvalidPosition},
		{"unknown kind", alice, defs.TowerKind("laser"), 3, 0, ErrUnknownTowerKind},
		{"unknown player", 42, defs.TowerArcher, 3, 0, ErrUnknownPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.PlaceTower(tt.player, tt.kind, tt.x, tt.y); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpgradeTower(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 1000)
	id, err := g.PlaceTower(alice, defs.TowerArcher, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := g.UpgradeTower(alice, id); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	s := g.Snapshot()
	got, ok := s.Tower(id)
	if !ok {
		t.Fatal("tower vanished")
	}
	if got.Level != 2 || got.Price != 30 || got.TotalSpent != 30 || got.Damage != 12 {
		t.Errorf("after upgrade: %+v", got)
	}
	if got.Range < 71.99 || got.Range > 72.01 || got.FireRate < 2.39 || got.FireRate > 2.41 {
		t.Errorf("range %v rate %v", got.Range, got.FireRate)
	}
	if left := gold(t, g, alice); left != 970 {
		t.Errorf("gold = %d, want 970", left)
	}

	for got.Level < got.MaxLevel {
		if err := g.UpgradeTower(alice, id); err != nil {
			t.Fatalf("upgrade to %d: %v", got.Level+1, err)
		}
		s = g.Snapshot()
		got, _ = s.Tower(id)
	}
	atMax := got
	goldAtMax := gold(t, g, alice)
	if err := g.UpgradeTower(alice, id); !errors.Is(err, ErrMaxLevelReached) {
		t.Fatalf("err = %v, want ErrMaxLevelReached", err)
	}
	s = g.Snapshot()
	if after, _ := s.Tower(id); after != atMax {
		t.Errorf("stats changed at max level: %+v -> %+v", atMax, after)
	}
	if gold(t, g, alice) != goldAtMax {
		t.Error("gold changed on a rejected upgrade")
	}
}

func TestUpgradeTowerErrors(t *testing.T) {
	g, alice := newTestGame(t, coopTerrain(), 0)
	bob, _ := g.AddPlayer("bob")
	g.players[alice].Gold = 15
	id, err := g.PlaceTower(alice, defs.TowerArcher, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.UpgradeTower(alice, id); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
	if err := g.UpgradeTower(bob, id); !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
	if err := g.UpgradeTower(alice, 999); !errors.Is(err, ErrTowerNotFound) {
		t.Errorf("err = %v, want ErrTowerNotFound", err)
	}
}

func TestSellTower(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 100)
	id, err := g.PlaceTower(alice, defs.TowerArcher, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.UpgradeTower(alice, id); err != nil {
		t.Fatal(err)
	}
	for _, c := range g.RoutePath(0) {
		if c == (gridmap.Cell{X: 3, Y: 2}) {
			t.Fatal("route goes through the tower")
		}
	}

	refund, err := g.SellTower(alice, id)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if refund != 18 {
		t.Errorf("refund = %d, want 18", refund)
	}
	if got := gold(t, g, alice); got != 100-30+18 {
		t.Errorf("gold = %d, want 88", got)
	}
	s := g.Snapshot()
	if _, ok := s.Tower(id); ok {
		t.Error("tower still present after sale")
	}
	if !g.Grid().IsPassable(gridmap.Cell{X: 3, Y: 2}) {
		t.Error("cell still blocked after sale")
	}
	if _, err := g.SellTower(alice, id); !errors.Is(err, ErrTowerNotFound) {
		t.Errorf("second sale: err = %v, want ErrTowerNotFound", err)
	}
}

func TestAddPlayer(t *testing.T) {
	g, _ := newTestGame(t, wideTerrain(), 0)
	if _, err := g.AddPlayer("bob"); !errors.Is(err, ErrNoSlotAvailable) {
		t.Errorf("err = %v, want ErrNoSlotAvailable", err)
	}

	registerTerrain(t, coopTerrain())
	coop, err := NewGame(Options{Terrain: "test-coop"})
	if err != nil {
		t.Fatal(err)
	}
	if err := coop.Start(); !errors.Is(err, ErrNoPlayers) {
		t.Errorf("start without players: %v", err)
	}
	a, _ := coop.AddPlayer("a")
	if err := coop.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := coop.AddPlayer("late"); !errors.Is(err, ErrGameInProgress) {
		t.Errorf("err = %v, want ErrGameInProgress", err)
	}
	p, _ := coop.Player(a)
	if p.Gold != 100 || p.Lives != 5 || p.Slot != 0 {
		t.Errorf("player = %+v", p)
	}
}

func TestStartWave(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 0)

	err := g.StartWave(alice, 0)
	if !errors.Is(err, ErrNotRunning) || WaveStatus(err) != WaveStatusNotRunning {
		t.Fatalf("lobby: err = %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.StartWave(alice, 0); WaveStatus(err) != WaveStatusOK {
		t.Fatalf("start: %v", err)
	}
	err = g.StartWave(alice, 1)
	if !errors.Is(err, ErrWaveInProgress) || WaveStatus(err) != WaveStatusInProgress {
		t.Errorf("second wave: err = %v", err)
	}
	if err := g.StartWave(alice, 99); WaveStatus(err) == WaveStatusOK {
		t.Error("wave kind 99 accepted")
	}
	if err := g.StartWave(alice, -1); WaveStatus(err) == WaveStatusOK {
		t.Error("negative wave kind accepted")
	}
}

func TestWaveInvalidAfterSequence(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 1000)
	g.Start()
	g.StartWave(alice, 0)
	g.WaveSystem.Update(dt)
	for _, id := range g.ecs.CreatureIDs() {
		g.ecs.RemoveEntity(id)
	}
	g.WaveSystem.Cleared()
	if err := g.StartWave(alice, 0); !errors.Is(err, ErrInvalidWave) {
		t.Errorf("err = %v, want ErrInvalidWave once the sequence is exhausted", err)
	}
}

func TestVictory(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 1000)
	if _, err := g.PlaceTower(alice, defs.TowerBallistic, 3, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.StartWave(alice, 0); err != nil {
		t.Fatal(err)
	}

	runUntilOver(t, g, 500)

	outcome, _ := g.Outcome()
	if outcome != component.OutcomeVictory {
		t.Fatalf("outcome = %v, want victory", outcome)
	}
	p, _ := g.Player(alice)
	if p.Kills != 1 || p.Lives != 3 {
		t.Errorf("player = %+v", p)
	}
	if p.Gold != 1000-60+1+10 || p.Score != 11 {
		t.Errorf("gold %d score %d, want 951 and 11", p.Gold, p.Score)
	}

	var seen []event.EventType
	for _, e := range g.DrainEvents() {
		seen = append(seen, e.Type)
	}
	for _, want := range []event.EventType{event.PlayerJoined, event.TowerPlaced, event.WaveStarted, event.CreatureSpawned, event.CreatureKilled, event.WaveCleared, event.GameOver} {
		found := false
		for _, got := range seen {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("event %s missing from %v", want, seen)
		}
	}
}

func TestDefeat(t *testing.T) {
	terrain := wideTerrain()
	terrain.Waves = singleWave("normal", 3)
	g, alice := newTestGame(t, terrain, 0)
	g.Start()
	if err := g.StartWave(alice, 0); err != nil {
		t.Fatal(err)
	}

	runUntilOver(t, g, 500)

	if outcome, _ := g.Outcome(); outcome != component.OutcomeDefeat {
		t.Fatalf("outcome = %v, want defeat", outcome)
	}
	if p, _ := g.Player(alice); p.Lives != 0 {
		t.Errorf("lives = %d, want 0", p.Lives)
	}
	// после конца игры тики ничего не меняют
	tick := g.Snapshot().Tick
	g.Tick(dt)
	if g.Snapshot().Tick != tick {
		t.Error("tick advanced after game over")
	}
}

func TestRerouteOnPlacement(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 1000)
	g.Start()
	g.StartWave(alice, 0)
	g.Tick(dt)
	ids := g.ecs.CreatureIDs()
	if len(ids) != 1 {
		t.Fatalf("creatures = %d, want 1", len(ids))
	}

	blocked := gridmap.Cell{X: 3, Y: 2}
	if _, err := g.PlaceTower(alice, defs.TowerArcher, blocked.X, blocked.Y); err != nil {
		t.Fatal(err)
	}
	for _, c := range g.RoutePath(0) {
		if c == blocked {
			t.Fatal("route path still crosses the tower")
		}
	}
	path := g.ecs.Paths[ids[0]]
	if path.Cells[0] != (gridmap.Cell{X: 1, Y: 2}) {
		t.Errorf("rerouted path starts at %v, want the next waypoint", path.Cells[0])
	}
	for _, c := range path.Remaining() {
		if c == blocked {
			t.Fatal("creature path crosses the tower")
		}
	}
}

func TestArcsFollowReroutedCreatures(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 1000)
	g.Start()
	g.StartWave(alice, 0)
	g.Tick(dt)
	if n := len(g.Snapshot().Arcs); n == 0 {
		t.Fatal("no active arcs with a live creature")
	}

	blocked := gridmap.Cell{X: 3, Y: 2}
	if _, err := g.PlaceTower(alice, defs.TowerArcher, blocked.X, blocked.Y); err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	if len(snap.Creatures) != 1 {
		t.Fatalf("creatures = %d, want 1", len(snap.Creatures))
	}
	path := g.ecs.Paths[g.ecs.CreatureIDs()[0]].Cells
	if len(snap.Arcs) != len(path)-1 {
		t.Fatalf("arcs = %d, want %d for the rerouted path", len(snap.Arcs), len(path)-1)
	}
	for _, a := range snap.Arcs {
		if (a.FromX == blocked.X && a.FromY == blocked.Y) || (a.ToX == blocked.X && a.ToY == blocked.Y) {
			t.Errorf("arc %+v touches the tower", a)
		}
	}
}

func TestConcurrentPlacementSameCell(t *testing.T) {
	for round := 0; round < 20; round++ {
		registerTerrain(t, coopTerrain())
		g, err := NewGame(Options{Terrain: "test-coop", StartingGold: 100})
		if err != nil {
			t.Fatal(err)
		}
		a, _ := g.AddPlayer("a")
		b, _ := g.AddPlayer("b")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, pid := range []types.PlayerID{a, b} {
			wg.Add(1)
			go func(i int, pid types.PlayerID) {
				defer wg.Done()
				_, errs[i] = g.PlaceTower(pid, defs.TowerArcher, 3, 1)
			}(i, pid)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
			} else if !errors.Is(err, ErrInvalidPosition) {
				t.Fatalf("unexpected error %v", err)
			}
		}
		if ok != 1 {
			t.Fatalf("round %d: %d placements succeeded on one cell", round, ok)
		}
	}
}

func TestPause(t *testing.T) {
	g, alice := newTestGame(t, wideTerrain(), 0)
	if err := g.SetPaused(alice, true); !errors.Is(err, ErrNotRunning) {
		t.Errorf("pause in lobby: %v", err)
	}
	g.Start()
	if err := g.SetPaused(alice, true); err != nil {
		t.Fatal(err)
	}
	g.Tick(dt)
	if tick := g.Snapshot().Tick; tick != 0 {
		t.Errorf("tick = %d while paused", tick)
	}
	if _, err := g.PlaceTower(alice, defs.TowerArcher, 2, 1); !errors.Is(err, ErrNotRunning) {
		t.Errorf("place while paused: %v", err)
	}
	if err := g.SetPaused(alice, false); err != nil {
		t.Fatal(err)
	}
	g.Tick(dt)
	if tick := g.Snapshot().Tick; tick != 1 {
		t.Errorf("tick = %d after resume", tick)
	}
	if err := g.SetPaused(99, true); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("unknown player: %v", err)
	}
}

func TestRemovePlayerEndsVersus(t *testing.T) {
	g, alice := newTestGame(t, versusTerrain(), 100)
	bob, _ := g.AddPlayer("bob")
	if _, err := g.PlaceTower(bob, defs.TowerArcher, 3, 1); err != nil {
		t.Fatal(err)
	}
	g.Start()

	if err := g.RemovePlayer(bob); err != nil {
		t.Fatal(err)
	}
	if len(g.Snapshot().Towers) != 0 {
		t.Error("departed player's towers remain")
	}
	outcome, winner := g.Outcome()
	if outcome != component.OutcomeVictory || winner != 1 {
		t.Errorf("outcome = %v winner %d, want victory for team 1", outcome, winner)
	}
	if _, ok := g.Player(alice); !ok {
		t.Error("alice removed too")
	}
	if err := g.RemovePlayer(bob); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("second removal: %v", err)
	}
}

func TestInvariantPanicsInStrictMode(t *testing.T) {
	g, _ := newTestGame(t, wideTerrain(), 0)
	defer func() {
		r := recover()
		var ie *InvariantError
		if err, ok := r.(error); !ok || !errors.As(err, &ie) {
			t.Fatalf("recovered %v, want *InvariantError", r)
		}
	}()
	g.invariant(false, "test %d", 1)
}

func TestInvariantLogsWhenLenient(t *testing.T) {
	g, _ := newTestGame(t, wideTerrain(), 0)
	g.Strict = false
	g.invariant(false, "tolerated")
}
