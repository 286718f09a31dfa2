package system

import "go-tower-arena/internal/entity"

// VisualEffectSystem ages animations and drops the finished ones.
// Анимации только для клиента, на исход симуляции не влияют.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

// Update returns how many effects expired during this step.
func (s *VisualEffectSystem) Update(dt float64) int {
	expired := 0
	for _, id := range s.ecs.AnimationIDs() {
		anim := s.ecs.Animations[id]
		if anim.Timer += dt; anim.Timer < anim.Duration {
			continue
		}
		s.ecs.RemoveEntity(id)
		expired++
	}
	return expired
}
