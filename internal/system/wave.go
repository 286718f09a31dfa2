// internal/system/wave.go
package system

import (
	"log"
	"math"
	"sort"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/types"
	"go-tower-arena/internal/utils"
	"go-tower-arena/pkg/gridmap"
)

// SpawnRoute is one route a wave releases creatures on, together with the
// player whose lives the creatures threaten.
type SpawnRoute struct {
	Route  int
	Target types.PlayerID
}

// RouteProvider gives the wave scheduler the live routes and their current paths.
// app.Game implements it over its path cache.
type RouteProvider interface {
	SpawnRoutes() []SpawnRoute
	PathFor(route int, class defs.CreatureClass) []gridmap.Cell
}

// spawnOrder — одно запланированное появление существа.
type spawnOrder struct {
	at     float64 // секунды от старта волны
	batch  defs.WaveDefinition
	serial int
}

// WaveSystem — планировщик волн: очередь появлений с абсолютными временами.
type WaveSystem struct {
	ecs      *entity.ECS
	routes   RouteProvider
	rng      *utils.PRNGService
	cellSize float64

	number  int // номер текущей волны, 0 если волн ещё не было
	name    string
	bonus   int
	queue   []spawnOrder
	elapsed float64
	active  bool
}

func NewWaveSystem(ecs *entity.ECS, routes RouteProvider, rng *utils.PRNGService, cellSize float64) *WaveSystem {
	return &WaveSystem{ecs: ecs, routes: routes, rng: rng, cellSize: cellSize}
}

// Start queues every batch of wave under the given number. Batches run one after
// another: a batch begins StartDelay after the last spawn of the previous one.
func (s *WaveSystem) Start(number int, wave defs.Wave) {
	s.number = number
	s.name = wave.Name
	s.bonus = wave.Bonus
	s.elapsed = 0
	s.queue = s.queue[:0]
	s.active = true

	t := 0.0
	serial := 0
	for _, batch := range wave.Batches {
		t += batch.StartDelay.Seconds()
		for k := 0; k < batch.Count; k++ {
			if k > 0 {
				t += batch.Interval.Seconds()
			}
			s.queue = append(s.queue, spawnOrder{at: t, batch: batch, serial: serial})
			serial++
		}
	}
	sort.SliceStable(s.queue, func(i, j int) bool { return s.queue[i].at < s.queue[j].at })
	log.Printf("[waves] wave %d %q started: %d spawns", number, wave.Name, len(s.queue))
}

// Update releases every spawn whose time has come and returns the new creature IDs.
func (s *WaveSystem) Update(deltaTime float64) []types.EntityID {
	if !s.active {
		return nil
	}
	s.elapsed += deltaTime

	var spawned []types.EntityID
	for len(s.queue) > 0 && s.queue[0].at <= s.elapsed {
		order := s.queue[0]
		s.queue = s.queue[1:]
		spawned = append(spawned, s.spawn(order.batch)...)
	}
	return spawned
}

// Cleared reports, exactly once per wave, that the queue is empty and every
// creature of the wave has been resolved.
func (s *WaveSystem) Cleared() bool {
	if !s.active || len(s.queue) > 0 {
		return false
	}
	for _, c := range s.ecs.Creatures {
		if c.Wave == s.number {
			return false
		}
	}
	s.active = false
	log.Printf("[waves] wave %d cleared", s.number)
	return true
}

// Active reports whether a wave is still spawning or has creatures alive.
func (s *WaveSystem) Active() bool { return s.active }

// Number returns the current (or last) wave number.
func (s *WaveSystem) Number() int { return s.number }

// Bonus returns the gold bonus of the current wave.
func (s *WaveSystem) Bonus() int { return s.bonus }

// Name returns the name of the current wave.
func (s *WaveSystem) Name() string { return s.name }

// Pending returns how many spawns are still queued.
func (s *WaveSystem) Pending() int { return len(s.queue) }

// spawn releases one creature of the batch on every live route.
func (s *WaveSystem) spawn(batch defs.WaveDefinition) []types.EntityID {
	creatureID := batch.CreatureID
	if len(batch.Mix) > 0 {
		creatureID = s.rng.ChooseWeighted(batch.Mix)
	}
	def, ok := defs.CreatureLibrary[creatureID]
	if !ok {
		log.Printf("[waves] unknown creature %q, spawn skipped", creatureID)
		return nil
	}

	scale := batch.HealthScale
	if scale <= 0 {
		scale = 1
	}
	maxHealth := int(math.Round(float64(def.Health) * scale))
	if maxHealth < 1 {
		maxHealth = 1
	}

	var ids []types.EntityID
	for _, route := range s.routes.SpawnRoutes() {
		path := s.routes.PathFor(route.Route, def.Class)
		if len(path) == 0 {
			log.Printf("[waves] route %d has no path, %s not spawned", route.Route, creatureID)
			continue
		}

		id := s.ecs.NewEntity()
		x, y := path[0].Center(s.cellSize)
		cells := make([]gridmap.Cell, len(path))
		copy(cells, path)

		s.ecs.Positions[id] = &component.Position{X: x, Y: y}
		s.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
		s.ecs.Paths[id] = &component.Path{Cells: cells, CurrentIndex: 1}
		s.ecs.Healths[id] = &component.Health{Value: maxHealth, Max: maxHealth}
		s.ecs.Creatures[id] = &component.Creature{
			DefID:      def.ID,
			Class:      def.Class,
			Target:     route.Target,
			Route:      route.Route,
			Wave:       s.number,
			Reward:     def.Reward,
			LifeDamage: def.LifeDamage,
		}
		ids = append(ids, id)
	}
	return ids
}
