package component

import (
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/types"
)

// Creature представляет существо, идущее от точки появления к цели.
type Creature struct {
	DefID      string
	Class      defs.CreatureClass
	Target     types.PlayerID // игрок, на чей маршрут выпущено существо
	Route      int
	Wave       int
	Reward     int
	LifeDamage int
	ReachedEnd bool           // дошло до цели в этом тике
	KilledBy   types.PlayerID // владелец башни, нанёсшей последний удар
}
