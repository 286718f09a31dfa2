// internal/defs/towers.go
package defs

import (
	"fmt"
	"image/color"
	"sort"
)

// TowerKind is the closed set of tower variants.
type TowerKind string

const (
	TowerArcher    TowerKind = "archer"
	TowerCannon    TowerKind = "cannon"
	TowerIce       TowerKind = "ice"
	TowerFire      TowerKind = "fire"
	TowerElectric  TowerKind = "electric"
	TowerAntiAir   TowerKind = "anti-air"
	TowerAir       TowerKind = "air"
	TowerBallistic TowerKind = "ballistic"
)

// Growth — коэффициенты роста характеристик при каждом улучшении.
type Growth struct {
	Price    float64 `json:"price"`
	Damage   float64 `json:"damage"`
	Range    float64 `json:"range"`
	RangeAdd float64 `json:"range_add"` // прибавка к радиусу после умножения
	FireRate float64 `json:"fire_rate"`
}

// SlowDef describes the slow a projectile applies on hit.
type SlowDef struct {
	Factor   float64 `json:"factor"` // доля потерянной скорости
	Duration float64 `json:"duration"`
}

// BurnDef describes a damage-over-time effect.
type BurnDef struct {
	DamagePerSec int     `json:"damage_per_sec"`
	Duration     float64 `json:"duration"`
}

// TowerDefinition holds all the static data for a specific kind of tower.
type TowerDefinition struct {
	Kind            TowerKind      `json:"kind"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Size            int            `json:"size"` // сторона в клетках
	Price           int            `json:"price"`
	Damage          int            `json:"damage"`
	Range           float64        `json:"range"`     // пиксели
	FireRate        float64        `json:"fire_rate"` // выстрелов в секунду
	Targets         TargetClass    `json:"targets"`
	MaxLevel        int            `json:"max_level"`
	Behavior        AttackBehavior `json:"behavior"`
	ProjectileSpeed float64        `json:"projectile_speed,omitempty"`
	SplashRadius    float64        `json:"splash_radius,omitempty"`
	Slow            *SlowDef       `json:"slow,omitempty"`
	Burn            *BurnDef       `json:"burn,omitempty"`
	Growth          Growth         `json:"growth"`
	Visuals         Visuals        `json:"visuals"`
}

// Validate checks the invariants every tower kind must satisfy.
func (d TowerDefinition) Validate() error {
	switch {
	case d.Kind == "":
		return fmt.Errorf("tower definition without kind")
	case d.Price <= 0 || d.Damage < 0 || d.Range <= 0 || d.FireRate <= 0:
		return fmt.Errorf("tower %s: price, range and fire rate must be positive", d.Kind)
	case d.MaxLevel < 1:
		return fmt.Errorf("tower %s: max level must be at least 1", d.Kind)
	case d.Size < 1:
		return fmt.Errorf("tower %s: size must be at least 1", d.Kind)
	case d.Growth.Price < 1 || d.Growth.Damage < 1 || d.Growth.Range < 1 || d.Growth.FireRate < 1 || d.Growth.RangeAdd < 0:
		return fmt.Errorf("tower %s: growth coefficients must not shrink stats", d.Kind)
	case d.Behavior == BehaviorSplash && d.SplashRadius <= 0:
		return fmt.Errorf("tower %s: splash tower without radius", d.Kind)
	case d.Behavior == BehaviorProjectile && d.ProjectileSpeed <= 0:
		return fmt.Errorf("tower %s: projectile tower without projectile speed", d.Kind)
	case d.Behavior != BehaviorProjectile && d.Behavior != BehaviorSplash && d.Behavior != BehaviorInstant:
		return fmt.Errorf("tower %s: unknown behavior %q", d.Kind, d.Behavior)
	}
	return nil
}

// TowerKinds returns every known kind sorted by price, then name.
func TowerKinds() []TowerKind {
	kinds := make([]TowerKind, 0, len(TowerLibrary))
	for k := range TowerLibrary {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		pi, pj := TowerLibrary[kinds[i]].Price, TowerLibrary[kinds[j]].Price
		if pi != pj {
			return pi < pj
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}

var baselineGrowth = Growth{Price: 2, Damage: 1.5, Range: 1.2, FireRate: 1.2}

// TowerLibrary is the lookup table of tower kinds. LoadTowerDefinitions may override entries.
var TowerLibrary = map[TowerKind]TowerDefinition{
	TowerArcher: {
		Kind: TowerArcher, Name: "Archer", Size: 1,
		Description: "Cheap and quick, hits ground and air.",
		Price: 15, Damage: 8, Range: 60, FireRate: 2, Targets: TargetBoth, MaxLevel: 5,
		Behavior: BehaviorProjectile, ProjectileSpeed: 240,
		Growth:  baselineGrowth,
		Visuals: Visuals{Color: color.RGBA{139, 90, 43, 255}, RadiusFactor: 0.45},
	},
	TowerCannon: {
		Kind: TowerCannon, Name: "Cannon", Size: 1,
		Description: "Slow but heavy, splashes ground creatures only.",
		Price: 20, Damage: 15, Range: 40, FireRate: 1, Targets: TargetGround, MaxLevel: 4,
		Behavior: BehaviorSplash, SplashRadius: 20,
		Growth:  baselineGrowth,
		Visuals: Visuals{Color: color.RGBA{64, 64, 64, 255}, RadiusFactor: 0.5},
	},
	TowerIce: {
		Kind: TowerIce, Name: "Ice", Size: 1,
		Description: "Slows whatever it hits.",
		Price: 50, Damage: 20, Range: 50, FireRate: 2, Targets: TargetBoth, MaxLevel: 5,
		Behavior: BehaviorProjectile, ProjectileSpeed: 180,
		Slow:    &SlowDef{Factor: 0.4, Duration: 2},
		Growth:  Growth{Price: 2, Damage: 1.5, Range: 1, RangeAdd: 10, FireRate: 1.2},
		Visuals: Visuals{Color: color.RGBA{120, 200, 255, 255}, RadiusFactor: 0.45},
	},
	TowerFire: {
		Kind: TowerFire, Name: "Fire", Size: 1,
		Description: "Sets ground creatures on fire.",
		Price: 40, Damage: 10, Range: 50, FireRate: 1.5, Targets: TargetGround, MaxLevel: 5,
		Behavior: BehaviorProjectile, ProjectileSpeed: 200,
		Burn:    &BurnDef{DamagePerSec: 6, Duration: 3},
		Growth:  Growth{Price: 2, Damage: 1.5, Range: 1.1, FireRate: 1.2},
		Visuals: Visuals{Color: color.RGBA{230, 80, 30, 255}, RadiusFactor: 0.45},
	},
	TowerElectric: {
		Kind: TowerElectric, Name: "Electric", Size: 1,
		Description: "Strikes instantly, ground and air.",
		Price: 70, Damage: 25, Range: 45, FireRate: 0.8, Targets: TargetBoth, MaxLevel: 5,
		Behavior: BehaviorInstant,
		Growth:   Growth{Price: 2, Damage: 1.5, Range: 1.1, FireRate: 1.25},
		Visuals:  Visuals{Color: color.RGBA{250, 230, 60, 255}, RadiusFactor: 0.45},
	},
	TowerAntiAir: {
		Kind: TowerAntiAir, Name: "Anti-air", Size: 1,
		Description: "Heavy flak against flying creatures.",
		Price: 40, Damage: 30, Range: 80, FireRate: 1, Targets: TargetAir, MaxLevel: 5,
		Behavior: BehaviorProjectile, ProjectileSpeed: 300,
		Growth:  Growth{Price: 2, Damage: 1.6, Range: 1.1, FireRate: 1.2},
		Visuals: Visuals{Color: color.RGBA{90, 110, 60, 255}, RadiusFactor: 0.5},
	},
	TowerAir: {
		Kind: TowerAir, Name: "Air", Size: 1,
		Description: "Rapid gusts against flying creatures.",
		Price: 30, Damage: 6, Range: 60, FireRate: 4, Targets: TargetAir, MaxLevel: 5,
		Behavior: BehaviorProjectile, ProjectileSpeed: 260,
		Growth:  Growth{Price: 2, Damage: 1.4, Range: 1.1, FireRate: 1.3},
		Visuals: Visuals{Color: color.RGBA{220, 220, 240, 255}, RadiusFactor: 0.4},
	},
	TowerBallistic: {
		Kind: TowerBallistic, Name: "Ballistic", Size: 1,
		Description: "Very long range, ground only.",
		Price: 60, Damage: 45, Range: 120, FireRate: 0.5, Targets: TargetGround, MaxLevel: 5,
		Behavior: BehaviorProjectile, ProjectileSpeed: 160,
		Growth:  Growth{Price: 2, Damage: 1.5, Range: 1.15, FireRate: 1.1},
		Visuals: Visuals{Color: color.RGBA{150, 40, 40, 255}, RadiusFactor: 0.55},
	},
}
