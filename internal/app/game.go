// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/system"
	"go-tower-arena/internal/types"
	"go-tower-arena/internal/utils"
	"go-tower-arena/pkg/gridmap"
)

// ErrNoPlayers is returned by Start when nobody has joined.
var ErrNoPlayers = errors.New("no players")

// Options configures a new game.
type Options struct {
	Terrain      string
	StartingGold int   // 0 — золото из описания карты
	Seed         int64 // 0 — от текущего времени
	Strict       bool
	EventLimit   int
}

// Game is the single source of truth of a match. Every exported method takes
// the mutex, so commands from different connections and the clock never
// observe each other half-applied.
type Game struct {
	mu      sync.Mutex
	Strict  bool
	MatchID uuid.UUID

	terrain      defs.TerrainDefinition
	grid         *gridmap.GridMap
	ecs          *entity.ECS
	events       *event.Log
	rng          *utils.PRNGService
	startingGold int

	WaveSystem         *system.WaveSystem
	MovementSystem     *system.MovementSystem
	StatusEffectSystem *system.StatusEffectSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	CleanupSystem      *system.CleanupSystem
	VisualEffectSystem *system.VisualEffectSystem

	players    map[types.PlayerID]*component.Player
	teams      map[types.TeamID]*component.Team
	slots      []types.PlayerID // слот -> игрок, 0 если свободен
	nextPlayer types.PlayerID

	phase       component.Phase
	outcome     component.Outcome
	winner      types.TeamID
	waveSerial  int // запущено волн, включая бонусные
	terrainWave int // запущено волн из последовательности карты
	routePaths  [][]gridmap.Cell
	tick        uint64
}

// NewGame builds a game on the named terrain, in the lobby phase.
func NewGame(opts Options) (*Game, error) {
	terrain, ok := defs.TerrainLibrary[opts.Terrain]
	if !ok {
		return nil, fmt.Errorf("unknown terrain %q", opts.Terrain)
	}
	grid, err := terrain.Build()
	if err != nil {
		return nil, err
	}
	if opts.EventLimit == 0 {
		opts.EventLimit = 4096
	}

	ecs := entity.NewECS()
	g := &Game{
		Strict:       opts.Strict,
		MatchID:      uuid.New(),
		terrain:      terrain,
		grid:         grid,
		ecs:          ecs,
		events:       event.NewLog(opts.EventLimit),
		rng:          utils.NewPRNGService(opts.Seed),
		startingGold: opts.StartingGold,
		players:      make(map[types.PlayerID]*component.Player),
		teams:        make(map[types.TeamID]*component.Team),
		slots:        make([]types.PlayerID, len(terrain.Slots)),
		nextPlayer:   1,
		phase:        component.PhaseLobby,
	}
	if g.startingGold <= 0 {
		g.startingGold = terrain.StartingGold
	}
	for _, slot := range terrain.Slots {
		if _, ok := g.teams[slot.Team]; !ok {
			g.teams[slot.Team] = &component.Team{ID: slot.Team}
		}
	}

	g.routePaths = make([][]gridmap.Cell, len(grid.Routes))
	for i, route := range grid.Routes {
		path, err := grid.ShortestPath(route.Spawn, route.Goal)
		if err != nil {
			return nil, fmt.Errorf("terrain %s route %d: %w", terrain.Name, i, err)
		}
		g.routePaths[i] = path
	}

	g.WaveSystem = system.NewWaveSystem(ecs, routeProvider{g}, g.rng, config.CellSize)
	g.MovementSystem = system.NewMovementSystem(ecs, config.CellSize)
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs)
	g.CombatSystem = system.NewCombatSystem(ecs)
	g.ProjectileSystem = system.NewProjectileSystem(ecs)
	g.CleanupSystem = system.NewCleanupSystem(ecs)
	g.VisualEffectSystem = system.NewVisualEffectSystem(ecs)

	log.Printf("[game] match %s created on %s (%d slots, seed %d)", g.MatchID, terrain.Name, len(terrain.Slots), g.rng.Seed())
	return g, nil
}

// Tick advances the simulation by one fixed step. Order matters: waves, then
// movement and effects, then towers on the positions seen before movement,
// then projectiles, then purge, then terminal conditions.
func (g *Game) Tick(deltaTime float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != component.PhaseRunning || deltaTime <= 0 {
		return
	}
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	g.tick++
	g.ecs.GameTime += deltaTime

	for _, id := range g.WaveSystem.Update(deltaTime) {
		c := g.ecs.Creatures[id]
		g.events.Append(event.Event{Type: event.CreatureSpawned, Entity: id, Player: c.Target, Text: c.DefID})
	}

	seen := system.CapturePositions(g.ecs)
	g.MovementSystem.Update(deltaTime)
	g.StatusEffectSystem.Update(deltaTime)

	g.CombatSystem.Update(deltaTime, seen)

	g.ProjectileSystem.Update(deltaTime)

	g.settle(g.CleanupSystem.Update())
	g.VisualEffectSystem.Update(deltaTime)
	if g.WaveSystem.Cleared() {
		g.payWaveBonus()
	}

	g.checkInvariants()
	g.evaluateTerminal()
}

// settle applies kill rewards and arrival damage.
func (g *Game) settle(report system.Report) {
	for _, k := range report.Kills {
		if p, ok := g.players[k.By]; ok {
			p.Gold += k.Reward
			p.Score += k.Reward
			p.Kills++
		}
		g.events.Append(event.Event{Type: event.CreatureKilled, Entity: k.Creature, Player: k.By, Value: k.Reward, Text: k.DefID})
	}
	for _, a := range report.Arrivals {
		if p, ok := g.players[a.Target]; ok && p.Lives > 0 {
			p.Lives -= a.LifeDamage
			if p.Lives < 0 {
				p.Lives = 0
			}
		}
		g.events.Append(event.Event{Type: event.CreatureArrived, Entity: a.Creature, Player: a.Target, Value: a.LifeDamage, Text: a.DefID})
	}
}

func (g *Game) payWaveBonus() {
	bonus := g.WaveSystem.Bonus()
	for _, p := range g.players {
		if p.Alive() {
			p.Gold += bonus
			p.Score += bonus
		}
	}
	g.events.Append(event.Event{Type: event.WaveCleared, Value: g.WaveSystem.Number(), Text: g.WaveSystem.Name()})
}

// evaluateTerminal ends the game on defeat of every team, on the last team
// standing in a versus match, or once the terrain sequence has been cleared.
func (g *Game) evaluateTerminal() {
	if g.phase != component.PhaseRunning && g.phase != component.PhasePaused {
		return
	}

	var contenders, standing []types.TeamID
	for _, id := range g.teamIDs() {
		team := g.teams[id]
		if len(team.Players) == 0 && !team.Lost {
			continue
		}
		contenders = append(contenders, id)
		if !team.Lost && g.teamDefeated(team) {
			team.Lost = true
			g.events.Append(event.Event{Type: event.TeamLost, Value: int(id)})
			log.Printf("[game] team %d lost", id)
		}
		if !team.Lost {
			standing = append(standing, id)
		}
	}

	switch {
	case len(standing) == 0:
		g.finish(component.OutcomeDefeat, 0)
	case len(contenders) > 1 && len(standing) == 1:
		g.finish(component.OutcomeVictory, standing[0])
	case g.terrainWave >= len(g.terrain.Waves) && !g.WaveSystem.Active() && len(g.ecs.Creatures) == 0:
		winner := types.TeamID(0)
		if len(standing) == 1 {
			winner = standing[0]
		}
		g.finish(component.OutcomeVictory, winner)
	}
}

func (g *Game) teamDefeated(team *component.Team) bool {
	for _, pid := range team.Players {
		if p, ok := g.players[pid]; ok && p.Alive() {
			return false
		}
	}
	return true
}

func (g *Game) finish(outcome component.Outcome, winner types.TeamID) {
	g.phase = component.PhaseOver
	g.outcome = outcome
	g.winner = winner
	g.events.Append(event.Event{Type: event.PhaseChanged, Text: g.phase.String()})
	g.events.Append(event.Event{Type: event.GameOver, Value: int(winner), Text: outcome.String()})
	log.Printf("[game] match %s over: %s (team %d)", g.MatchID, outcome, winner)
}

func (g *Game) checkInvariants() {
	for id, h := range g.ecs.Healths {
		g.invariant(h.Value >= 0 && h.Value <= h.Max, "entity %d health %d outside [0,%d]", id, h.Value, h.Max)
		if _, isCreature := g.ecs.Creatures[id]; isCreature {
			g.invariant(h.Value > 0, "dead creature %d survived the purge", id)
		}
	}
	for id, p := range g.players {
		g.invariant(p.Gold >= 0, "player %d has negative gold %d", id, p.Gold)
	}
	for i, path := range g.routePaths {
		g.invariant(len(path) > 0, "route %d has no path", i)
	}
}

// Start moves the game from the lobby to running.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != component.PhaseLobby {
		return ErrGameInProgress
	}
	if len(g.players) == 0 {
		return ErrNoPlayers
	}
	g.setPhase(component.PhaseRunning)
	return nil
}

// SetPaused pauses or resumes a running game.
func (g *Game) SetPaused(playerID types.PlayerID, paused bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	switch {
	case paused && g.phase == component.PhaseRunning:
		g.setPhase(component.PhasePaused)
	case !paused && g.phase == component.PhasePaused:
		g.setPhase(component.PhaseRunning)
	case g.phase != component.PhaseRunning && g.phase != component.PhasePaused:
		return ErrNotRunning
	}
	return nil
}

func (g *Game) setPhase(phase component.Phase) {
	g.phase = phase
	g.events.Append(event.Event{Type: event.PhaseChanged, Text: phase.String()})
	log.Printf("[game] phase %s", phase)
}

// canMutate reports whether tower commands are accepted in the current phase.
func (g *Game) canMutate() error {
	if g.phase == component.PhaseLobby || g.phase == component.PhaseRunning {
		return nil
	}
	return ErrNotRunning
}

// Snapshot returns an immutable copy of the world.
func (g *Game) Snapshot() snapshot.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := snapshot.FromECS(g.ecs, g.grid)
	s.MatchID = g.MatchID.String()
	s.Tick = g.tick
	s.Terrain = g.terrain.Name
	s.Phase = g.phase.String()
	if g.outcome != component.OutcomeNone {
		s.Outcome = g.outcome.String()
	}
	s.Winner = g.winner
	s.Wave = g.terrainWave
	s.TotalWaves = len(g.terrain.Waves)
	s.WaveActive = g.WaveSystem.Active()
	if s.WaveActive {
		s.WaveName = g.WaveSystem.Name()
	}
	for _, id := range g.playerIDs() {
		p := g.players[id]
		s.Players = append(s.Players, snapshot.Player{
			ID: p.ID, Name: p.Name, Team: p.Team, Slot: p.Slot,
			Gold: p.Gold, Lives: p.Lives, Score: p.Score, Kills: p.Kills,
		})
	}
	return s
}

// DrainEvents returns every change since the previous drain.
func (g *Game) DrainEvents() []event.Event {
	return g.events.Drain()
}

// Phase returns the current phase.
func (g *Game) Phase() component.Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Outcome returns the result and the winning team (0 when every survivor won or nobody did).
func (g *Game) Outcome() (component.Outcome, types.TeamID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome, g.winner
}

// Terrain returns the terrain definition the game runs on.
func (g *Game) Terrain() defs.TerrainDefinition {
	return g.terrain
}

// Grid returns a copy of the current path graph, towers included.
func (g *Game) Grid() *gridmap.GridMap {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.grid.Clone()
}

// Player returns a copy of a player.
func (g *Game) Player(id types.PlayerID) (component.Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.players[id]
	if !ok {
		return component.Player{}, false
	}
	return *p, true
}

func (g *Game) playerIDs() []types.PlayerID {
	ids := make([]types.PlayerID, 0, len(g.players))
	for id := range g.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (g *Game) teamIDs() []types.TeamID {
	ids := make([]types.TeamID, 0, len(g.teams))
	for id := range g.teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
