// internal/system/cleanup.go
package system

import (
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/types"
)

// Kill is a creature removed at 0 health, credited to the tower owner.
type Kill struct {
	Creature types.EntityID
	DefID    string
	By       types.PlayerID
	Reward   int
	Wave     int
}

// Arrival is a creature that reached its goal alive.
type Arrival struct {
	Creature   types.EntityID
	DefID      string
	Target     types.PlayerID
	LifeDamage int
	Wave       int
}

// Report — итог шага очистки для экономики игры.
type Report struct {
	Kills    []Kill
	Arrivals []Arrival
}

// CleanupSystem удаляет мёртвых и дошедших существ и отработавшие снаряды.
type CleanupSystem struct {
	ecs *entity.ECS
}

func NewCleanupSystem(ecs *entity.ECS) *CleanupSystem {
	return &CleanupSystem{ecs: ecs}
}

// Update purges resolved entities in ID order and reports what happened.
func (s *CleanupSystem) Update() Report {
	var report Report
	for _, id := range s.ecs.CreatureIDs() {
		creature := s.ecs.Creatures[id]
		health := s.ecs.Healths[id]
		switch {
		case health == nil || health.Value <= 0:
			report.Kills = append(report.Kills, Kill{
				Creature: id,
				DefID:    creature.DefID,
				By:       creature.KilledBy,
				Reward:   creature.Reward,
				Wave:     creature.Wave,
			})
			s.ecs.RemoveEntity(id)
		case creature.ReachedEnd:
			report.Arrivals = append(report.Arrivals, Arrival{
				Creature:   id,
				DefID:      creature.DefID,
				Target:     creature.Target,
				LifeDamage: creature.LifeDamage,
				Wave:       creature.Wave,
			})
			s.ecs.RemoveEntity(id)
		}
	}

	for _, id := range s.ecs.ProjectileIDs() {
		if s.ecs.Projectiles[id].Resolved {
			s.ecs.RemoveEntity(id)
		}
	}
	return report
}
