// internal/system/movement.go
package system

import (
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/utils"
)

// MovementSystem обновляет позиции существ вдоль их путей
type MovementSystem struct {
	ecs      *entity.ECS
	cellSize float64
}

func NewMovementSystem(ecs *entity.ECS, cellSize float64) *MovementSystem {
	return &MovementSystem{ecs: ecs, cellSize: cellSize}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.CreatureIDs() {
		creature := s.ecs.Creatures[id]
		pos, hasPos := s.ecs.Positions[id]
		path, hasPath := s.ecs.Paths[id]
		if !hasPos || !hasPath || creature.ReachedEnd || !s.ecs.IsAlive(id) {
			continue
		}
		if path.CurrentIndex >= len(path.Cells) {
			creature.ReachedEnd = true
			continue
		}

		target := path.Cells[path.CurrentIndex]
		tx, ty := target.Center(s.cellSize)
		dist := utils.Distance(pos.X, pos.Y, tx, ty)
		moveDistance := CurrentSpeed(s.ecs, id) * deltaTime

		if dist <= moveDistance || dist <= config.WaypointEpsilon {
			pos.X = tx
			pos.Y = ty
			path.CurrentIndex++
			if path.CurrentIndex >= len(path.Cells) {
				creature.ReachedEnd = true
			}
		} else {
			pos.X += (tx - pos.X) / dist * moveDistance
			pos.Y += (ty - pos.Y) / dist * moveDistance
		}
	}
}
