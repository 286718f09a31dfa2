// internal/defs/types.go
package defs

import "image/color"

// TargetClass — какие существа может атаковать башня. Битовая маска.
type TargetClass uint8

const (
	TargetGround TargetClass = 1 << iota
	TargetAir
	TargetBoth = TargetGround | TargetAir
)

// Matches reports whether a creature of class c can be hit by a tower filtering on t.
func (t TargetClass) Matches(c CreatureClass) bool {
	switch c {
	case ClassAir:
		return t&TargetAir != 0
	default:
		return t&TargetGround != 0
	}
}

func (t TargetClass) String() string {
	switch t {
	case TargetGround:
		return "ground"
	case TargetAir:
		return "air"
	case TargetBoth:
		return "both"
	}
	return "none"
}

// CreatureClass — наземное или летающее существо.
type CreatureClass string

const (
	ClassGround CreatureClass = "ground"
	ClassAir    CreatureClass = "air"
)

// AttackBehavior selects the fire function of a tower kind.
type AttackBehavior string

const (
	BehaviorProjectile AttackBehavior = "PROJECTILE" // самонаводящийся снаряд
	BehaviorSplash     AttackBehavior = "SPLASH"     // мгновенный урон по площади вокруг цели
	BehaviorInstant    AttackBehavior = "INSTANT"    // мгновенный удар по цели (молния)
)

// Visuals contains parameters for rendering.
type Visuals struct {
	Color        color.RGBA `json:"color"`
	RadiusFactor float64    `json:"radius_factor"`
}
