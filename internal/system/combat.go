// internal/system/combat.go
package system

import (
	"log"
	"math"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/utils"
	"go-tower-arena/internal/types"
)

// Positions — снимок позиций существ, сделанный до шага движения.
type Positions map[types.EntityID]component.Position

// CapturePositions copies the current position of every creature.
func CapturePositions(ecs *entity.ECS) Positions {
	snap := make(Positions, len(ecs.Creatures))
	for id := range ecs.Creatures {
		if pos, ok := ecs.Positions[id]; ok {
			snap[id] = *pos
		}
	}
	return snap
}

// fireFunc performs one shot of a tower at the target.
type fireFunc func(s *CombatSystem, towerID, targetID types.EntityID, def *defs.TowerDefinition, seen Positions)

// behaviors — таблица функций атаки по тегу вида башни.
var behaviors = map[defs.AttackBehavior]fireFunc{
	defs.BehaviorProjectile: fireProjectile,
	defs.BehaviorSplash:     fireSplash,
	defs.BehaviorInstant:    fireInstant,
}

// CombatSystem управляет атакой башен
type CombatSystem struct {
	ecs *entity.ECS
}

func NewCombatSystem(ecs *entity.ECS) *CombatSystem {
	return &CombatSystem{ecs: ecs}
}

// Update lets every tower acquire and fire. Geometry uses seen, the creature
// positions captured before this tick's movement.
func (s *CombatSystem) Update(deltaTime float64, seen Positions) {
	for _, id := range s.ecs.TowerIDs() {
		tower := s.ecs.Towers[id]
		combat, ok := s.ecs.Combats[id]
		if !ok {
			continue
		}

		if !combat.Cool(deltaTime) {
			continue
		}

		def, ok := defs.TowerLibrary[tower.Kind]
		if !ok {
			log.Printf("[combat] no definition for tower kind %q", tower.Kind)
			continue
		}
		fire, ok := behaviors[def.Behavior]
		if !ok {
			continue
		}

		targetID := s.AcquireTarget(id, def.Targets, seen)
		if targetID == 0 {
			// готова к выстрелу, ждём цель
			combat.Idle()
			continue
		}

		towerPos := s.ecs.Positions[id]
		targetPos := seen[targetID]
		tower.Angle = math.Atan2(targetPos.Y-towerPos.Y, targetPos.X-towerPos.X)

		fire(s, id, targetID, &def, seen)
		combat.Fired()
	}
}

// AcquireTarget selects the nearest eligible creature in range. Ties go to the
// lowest remaining health, then to the lowest ID (insertion order).
func (s *CombatSystem) AcquireTarget(towerID types.EntityID, targets defs.TargetClass, seen Positions) types.EntityID {
	towerPos, ok := s.ecs.Positions[towerID]
	combat, hasCombat := s.ecs.Combats[towerID]
	if !ok || !hasCombat {
		return 0
	}

	var best types.EntityID
	bestDist := math.MaxFloat64
	bestHealth := math.MaxInt
	for _, id := range s.ecs.CreatureIDs() {
		if !Targetable(s.ecs, id) || !targets.Matches(s.ecs.Creatures[id].Class) {
			continue
		}
		pos, ok := seen[id]
		if !ok {
			continue
		}
		d := utils.Distance(towerPos.X, towerPos.Y, pos.X, pos.Y)
		if d > combat.Range {
			continue
		}
		h := s.ecs.Healths[id].Value
		if d < bestDist || (d == bestDist && h < bestHealth) {
			best, bestDist, bestHealth = id, d, h
		}
	}
	return best
}

func fireProjectile(s *CombatSystem, towerID, targetID types.EntityID, def *defs.TowerDefinition, _ Positions) {
	tower := s.ecs.Towers[towerID]
	towerPos := s.ecs.Positions[towerID]

	projID := s.ecs.NewEntity()
	s.ecs.Positions[projID] = &component.Position{X: towerPos.X, Y: towerPos.Y}
	s.ecs.Projectiles[projID] = &component.Projectile{
		TowerID:  towerID,
		Owner:    tower.Owner,
		Kind:     tower.Kind,
		TargetID: targetID,
		Speed:    def.ProjectileSpeed,
		Damage:   s.ecs.Combats[towerID].Damage,
		Slow:     def.Slow,
		Burn:     def.Burn,
	}
}

// fireSplash hits every matching creature around the target's position, whether
// or not the target itself is still the nearest one.
func fireSplash(s *CombatSystem, towerID, targetID types.EntityID, def *defs.TowerDefinition, seen Positions) {
	tower := s.ecs.Towers[towerID]
	damage := s.ecs.Combats[towerID].Damage
	center := seen[targetID]

	for _, id := range s.ecs.CreatureIDs() {
		if !Targetable(s.ecs, id) || !def.Targets.Matches(s.ecs.Creatures[id].Class) {
			continue
		}
		pos, ok := seen[id]
		if !ok || utils.Distance(center.X, center.Y, pos.X, pos.Y) > def.SplashRadius {
			continue
		}
		ApplyDamage(s.ecs, id, damage, tower.Owner)
	}
	s.addAnimation(component.Animation{
		Kind:   component.AnimationExplosion,
		Tower:  tower.Kind,
		FromX:  center.X,
		FromY:  center.Y,
		ToX:    center.X,
		ToY:    center.Y,
		Radius: def.SplashRadius,
	})
}

func fireInstant(s *CombatSystem, towerID, targetID types.EntityID, def *defs.TowerDefinition, seen Positions) {
	tower := s.ecs.Towers[towerID]
	towerPos := s.ecs.Positions[towerID]
	target := seen[targetID]

	ApplyDamage(s.ecs, targetID, s.ecs.Combats[towerID].Damage, tower.Owner)
	if def.Slow != nil {
		ApplySlow(s.ecs, targetID, def.Slow.Factor, def.Slow.Duration)
	}
	if def.Burn != nil {
		ApplyBurn(s.ecs, targetID, def.Burn.DamagePerSec, def.Burn.Duration, tower.Owner)
	}
	s.addAnimation(component.Animation{
		Kind:  component.AnimationLightning,
		Tower: tower.Kind,
		FromX: towerPos.X,
		FromY: towerPos.Y,
		ToX:   target.X,
		ToY:   target.Y,
	})
}

func (s *CombatSystem) addAnimation(a component.Animation) {
	id := s.ecs.NewEntity()
	if a.Duration == 0 {
		a.Duration = config.AnimationTime
	}
	s.ecs.Animations[id] = &a
}
