// internal/component/visual.go
package component

import "go-tower-arena/internal/defs"

// AnimationKind — вид визуального эффекта.
type AnimationKind string

const (
	AnimationExplosion AnimationKind = "explosion"
	AnimationLightning AnimationKind = "lightning"
	AnimationHit       AnimationKind = "hit"
)

// Animation is a short-lived visual effect with no effect on the simulation.
type Animation struct {
	Kind         AnimationKind
	Tower        defs.TowerKind
	FromX, FromY float64
	ToX, ToY     float64
	Radius       float64
	Timer        float64 // Сколько времени эффект уже активен
	Duration     float64
}
