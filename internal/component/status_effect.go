// internal/component/status_effect.go
package component

import "go-tower-arena/internal/types"

// SlowInstance is one active slow: Factor is the share of speed removed.
type SlowInstance struct {
	Factor float64
	Timer  float64
}

// SlowEffect indicates that an entity is slowed. Instances never stack:
// only the strongest one applies.
type SlowEffect struct {
	Instances []SlowInstance
}

// Strongest returns the largest active slow factor, 0 if none.
func (s *SlowEffect) Strongest() float64 {
	strongest := 0.0
	for _, inst := range s.Instances {
		if inst.Factor > strongest {
			strongest = inst.Factor
		}
	}
	return strongest
}

// BurnEffect — урон со временем от огненной башни.
type BurnEffect struct {
	DamagePerSec int
	Timer        float64
	TickTimer    float64
	Source       types.PlayerID
}
