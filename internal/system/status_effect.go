// internal/system/status_effect.go
package system

import "go-tower-arena/internal/entity"

// StatusEffectSystem управляет жизненным циклом эффектов: замедление и горение.
type StatusEffectSystem struct {
	ecs *entity.ECS
}

func NewStatusEffectSystem(ecs *entity.ECS) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs}
}

// Update обрабатывает все активные эффекты.
func (s *StatusEffectSystem) Update(deltaTime float64) {
	for id, effect := range s.ecs.SlowEffects {
		kept := effect.Instances[:0]
		for _, inst := range effect.Instances {
			inst.Timer -= deltaTime
			if inst.Timer > 0 {
				kept = append(kept, inst)
			}
		}
		effect.Instances = kept
		if len(kept) == 0 {
			delete(s.ecs.SlowEffects, id)
		}
	}

	for _, id := range s.ecs.CreatureIDs() {
		effect, ok := s.ecs.BurnEffects[id]
		if !ok {
			continue
		}
		effect.Timer -= deltaTime
		effect.TickTimer -= deltaTime
		if effect.TickTimer <= 0 {
			ApplyDamage(s.ecs, id, effect.DamagePerSec, effect.Source)
			effect.TickTimer += 1.0
		}
		if effect.Timer <= 0 || !s.ecs.IsAlive(id) {
			delete(s.ecs.BurnEffects, id)
		}
	}
}
