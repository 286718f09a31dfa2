// internal/system/utils.go
package system

import (
	"math"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/types"
)

// Предел замедления: существо никогда не останавливается полностью.
const maxSlowFactor = 0.9

// ApplyDamage наносит урон существу и ограничивает здоровье нулём.
// Возвращает true, если именно этот удар убил существо; тогда убийство
// засчитывается игроку by.
func ApplyDamage(ecs *entity.ECS, entityID types.EntityID, damage int, by types.PlayerID) bool {
	health, ok := ecs.Healths[entityID]
	if !ok || health.Value <= 0 || damage <= 0 {
		return false
	}

	health.Value -= damage
	if health.Value > 0 {
		return false
	}
	health.Value = 0
	if creature, ok := ecs.Creatures[entityID]; ok {
		creature.KilledBy = by
	}
	return true
}

// ApplySlow adds a slow instance. Instances do not stack: the movement
// system only uses the strongest active factor.
func ApplySlow(ecs *entity.ECS, entityID types.EntityID, factor, duration float64) {
	if !ecs.IsAlive(entityID) || factor <= 0 || duration <= 0 {
		return
	}
	if factor > maxSlowFactor {
		factor = maxSlowFactor
	}
	effect, ok := ecs.SlowEffects[entityID]
	if !ok {
		effect = &component.SlowEffect{}
		ecs.SlowEffects[entityID] = effect
	}
	for i := range effect.Instances {
		if effect.Instances[i].Factor == factor {
			effect.Instances[i].Timer = math.Max(effect.Instances[i].Timer, duration)
			return
		}
	}
	effect.Instances = append(effect.Instances, component.SlowInstance{Factor: factor, Timer: duration})
}

// ApplyBurn sets a creature on fire. A weaker burn never replaces a stronger one.
func ApplyBurn(ecs *entity.ECS, entityID types.EntityID, damagePerSec int, duration float64, source types.PlayerID) {
	if !ecs.IsAlive(entityID) || damagePerSec <= 0 || duration <= 0 {
		return
	}
	if current, ok := ecs.BurnEffects[entityID]; ok && current.DamagePerSec > damagePerSec {
		return
	}
	ecs.BurnEffects[entityID] = &component.BurnEffect{
		DamagePerSec: damagePerSec,
		Timer:        duration,
		TickTimer:    1.0,
		Source:       source,
	}
}

// CurrentSpeed returns the creature speed after the strongest slow.
func CurrentSpeed(ecs *entity.ECS, entityID types.EntityID) float64 {
	vel, ok := ecs.Velocities[entityID]
	if !ok {
		return 0
	}
	if slow, ok := ecs.SlowEffects[entityID]; ok {
		return vel.Speed * (1 - slow.Strongest())
	}
	return vel.Speed
}

// Targetable reports whether a creature can still be attacked this tick.
func Targetable(ecs *entity.ECS, entityID types.EntityID) bool {
	if !ecs.IsAlive(entityID) {
		return false
	}
	return !ecs.Creatures[entityID].ReachedEnd
}
