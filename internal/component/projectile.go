// internal/component/projectile.go
package component

import (
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/types"
)

// Projectile представляет летящий снаряд. Цель хранится только по ID
// и заново ищется в мире при каждом обновлении.
type Projectile struct {
	TowerID  types.EntityID
	Owner    types.PlayerID
	Kind     defs.TowerKind
	TargetID types.EntityID
	Speed    float64
	Damage   int
	Slow     *defs.SlowDef
	Burn     *defs.BurnDef
	Age      float64
	Resolved bool
}
