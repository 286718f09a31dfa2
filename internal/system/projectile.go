// internal/system/projectile.go
package system

import (
	"go-tower-arena/internal/component"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/types"
	"go-tower-arena/internal/utils"
)

// ProjectileSystem управляет движением снарядов и нанесением урона.
// Снаряды самонаводятся на текущую позицию цели.
type ProjectileSystem struct {
	ecs *entity.ECS
}

func NewProjectileSystem(ecs *entity.ECS) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.ProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		if proj.Resolved {
			continue
		}
		pos := s.ecs.Positions[id]
		if pos == nil {
			proj.Resolved = true
			continue
		}

		proj.Age += deltaTime
		// Цель пропала или уже мертва: снаряд исчезает без эффекта.
		if !Targetable(s.ecs, proj.TargetID) || proj.Age > config.ProjectileMaxAge {
			proj.Resolved = true
			continue
		}

		targetPos := s.ecs.Positions[proj.TargetID]
		dist := utils.Distance(pos.X, pos.Y, targetPos.X, targetPos.Y)
		step := proj.Speed * deltaTime
		if dist <= step || dist < config.HitRadius {
			pos.X, pos.Y = targetPos.X, targetPos.Y
			s.hitTarget(id, proj)
			continue
		}
		pos.X += (targetPos.X - pos.X) / dist * step
		pos.Y += (targetPos.Y - pos.Y) / dist * step
	}
}

func (s *ProjectileSystem) hitTarget(projectileID types.EntityID, proj *component.Projectile) {
	proj.Resolved = true
	ApplyDamage(s.ecs, proj.TargetID, proj.Damage, proj.Owner)
	if proj.Slow != nil {
		ApplySlow(s.ecs, proj.TargetID, proj.Slow.Factor, proj.Slow.Duration)
	}
	if proj.Burn != nil {
		ApplyBurn(s.ecs, proj.TargetID, proj.Burn.DamagePerSec, proj.Burn.Duration, proj.Owner)
	}

	pos := s.ecs.Positions[projectileID]
	animID := s.ecs.NewEntity()
	s.ecs.Animations[animID] = &component.Animation{
		Kind:     component.AnimationHit,
		Tower:    proj.Kind,
		FromX:    pos.X,
		FromY:    pos.Y,
		ToX:      pos.X,
		ToY:      pos.Y,
		Duration: config.AnimationTime,
	}
}
