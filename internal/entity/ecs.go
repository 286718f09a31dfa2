// internal/entity/ecs.go
package entity

import (
	"sort"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/types"
)

// ECS — хранилище компонентов, ключ — EntityID. Мутирует его только app.Game.
type ECS struct {
	GameTime    float64
	NextID      types.EntityID
	Positions   map[types.EntityID]*component.Position
	Velocities  map[types.EntityID]*component.Velocity
	Paths       map[types.EntityID]*component.Path
	Healths     map[types.EntityID]*component.Health
	Towers      map[types.EntityID]*component.Tower
	Combats     map[types.EntityID]*component.Combat
	Creatures   map[types.EntityID]*component.Creature
	Projectiles map[types.EntityID]*component.Projectile
	SlowEffects map[types.EntityID]*component.SlowEffect
	BurnEffects map[types.EntityID]*component.BurnEffect
	Animations  map[types.EntityID]*component.Animation
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Velocities:  make(map[types.EntityID]*component.Velocity),
		Paths:       make(map[types.EntityID]*component.Path),
		Healths:     make(map[types.EntityID]*component.Health),
		Towers:      make(map[types.EntityID]*component.Tower),
		Combats:     make(map[types.EntityID]*component.Combat),
		Creatures:   make(map[types.EntityID]*component.Creature),
		Projectiles: make(map[types.EntityID]*component.Projectile),
		SlowEffects: make(map[types.EntityID]*component.SlowEffect),
		BurnEffects: make(map[types.EntityID]*component.BurnEffect),
		Animations:  make(map[types.EntityID]*component.Animation),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity deletes every component of id.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Paths, id)
	delete(ecs.Healths, id)
	delete(ecs.Towers, id)
	delete(ecs.Combats, id)
	delete(ecs.Creatures, id)
	delete(ecs.Projectiles, id)
	delete(ecs.SlowEffects, id)
	delete(ecs.BurnEffects, id)
	delete(ecs.Animations, id)
}

// IsAlive reports whether id is a creature with health above zero.
func (ecs *ECS) IsAlive(id types.EntityID) bool {
	if _, ok := ecs.Creatures[id]; !ok {
		return false
	}
	h, ok := ecs.Healths[id]
	return ok && h.Value > 0
}

// Обход map в Go случаен, поэтому системы ходят по отсортированным ключам:
// порядок вставки совпадает с порядком ID.

// CreatureIDs returns creature IDs in insertion order.
func (ecs *ECS) CreatureIDs() []types.EntityID {
	return sortedKeys(ecs.Creatures)
}

// TowerIDs returns tower IDs in insertion order.
func (ecs *ECS) TowerIDs() []types.EntityID {
	return sortedKeys(ecs.Towers)
}

// ProjectileIDs returns projectile IDs in insertion order.
func (ecs *ECS) ProjectileIDs() []types.EntityID {
	return sortedKeys(ecs.Projectiles)
}

// AnimationIDs returns animation IDs in insertion order.
func (ecs *ECS) AnimationIDs() []types.EntityID {
	return sortedKeys(ecs.Animations)
}

func sortedKeys[T any](m map[types.EntityID]T) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
