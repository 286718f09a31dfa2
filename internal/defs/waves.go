// internal/defs/waves.go
package defs

import (
	"fmt"
	"time"
)

// WeightedCreature is one entry of a mixed batch: Weight is the relative spawn chance.
type WeightedCreature struct {
	CreatureID string `json:"creature_id"`
	Weight     int    `json:"weight"`
}

// WaveDefinition описывает одну партию существ внутри волны.
type WaveDefinition struct {
	CreatureID  string             `json:"creature_id"`
	Mix         []WeightedCreature `json:"mix,omitempty"` // если задано, вид выбирается случайно для каждого существа
	Count       int                `json:"count"`
	Interval    time.Duration      `json:"interval"`
	StartDelay  time.Duration      `json:"start_delay"`
	HealthScale float64            `json:"health_scale,omitempty"` // 0 означает 1
}

// Wave is an ordered list of batches released one after another.
type Wave struct {
	Name    string           `json:"name"`
	Batches []WaveDefinition `json:"batches"`
	Bonus   int              `json:"bonus"` // золото каждому живому игроку после зачистки
}

// Validate checks that every batch references a known creature and has a positive count.
func (w Wave) Validate() error {
	if len(w.Batches) == 0 {
		return fmt.Errorf("wave %q has no batches", w.Name)
	}
	for i, b := range w.Batches {
		if b.Count <= 0 {
			return fmt.Errorf("wave %q batch %d: count must be positive", w.Name, i)
		}
		if b.Interval < 0 || b.StartDelay < 0 {
			return fmt.Errorf("wave %q batch %d: negative timing", w.Name, i)
		}
		if len(b.Mix) == 0 {
			if _, ok := CreatureLibrary[b.CreatureID]; !ok {
				return fmt.Errorf("wave %q batch %d: unknown creature %q", w.Name, i, b.CreatureID)
			}
		}
		for _, m := range b.Mix {
			if _, ok := CreatureLibrary[m.CreatureID]; !ok {
				return fmt.Errorf("wave %q batch %d: unknown creature %q", w.Name, i, m.CreatureID)
			}
		}
	}
	return nil
}

// WaveKinds are the bonus waves a player may launch explicitly (wave kind 1..N).
var WaveKinds = map[int]Wave{
	1: {Name: "Swarm", Bonus: 10, Batches: []WaveDefinition{
		{CreatureID: "swarm", Count: 30, Interval: 200 * time.Millisecond},
	}},
	2: {Name: "Air raid", Bonus: 15, Batches: []WaveDefinition{
		{CreatureID: "flyer", Count: 12, Interval: 600 * time.Millisecond},
	}},
	3: {Name: "Brutes", Bonus: 20, Batches: []WaveDefinition{
		{CreatureID: "tough", Count: 6, Interval: 1500 * time.Millisecond},
	}},
	4: {Name: "Warlord", Bonus: 60, Batches: []WaveDefinition{
		{CreatureID: "boss", Count: 1, StartDelay: time.Second},
	}},
}

// StandardWaves строит последовательность волн с нарастающей сложностью.
// После шестой волны появляются смешанные партии, каждая десятая волна — босс.
func StandardWaves(n int) []Wave {
	waves := make([]Wave, 0, n)
	for i := 1; i <= n; i++ {
		scale := 1 + 0.15*float64(i-1)
		w := Wave{Name: fmt.Sprintf("Wave %d", i), Bonus: 20 + 5*i}
		switch {
		case i%10 == 0:
			w.Batches = []WaveDefinition{
				{CreatureID: "normal", Count: 8, Interval: 600 * time.Millisecond, HealthScale: scale},
				{CreatureID: "boss", Count: 1, StartDelay: 2 * time.Second, HealthScale: scale / 2},
			}
		case i%5 == 0:
			w.Batches = []WaveDefinition{
				{CreatureID: "flyer", Count: 6 + i/2, Interval: 700 * time.Millisecond, HealthScale: scale},
			}
		case i > 6:
			w.Batches = []WaveDefinition{
				{Mix: []WeightedCreature{{"normal", 5}, {"fast", 3}, {"tough", 1}, {"flyer", 1}},
					Count: 8 + i, Interval: 600 * time.Millisecond, HealthScale: scale},
			}
		case i%3 == 0:
			w.Batches = []WaveDefinition{
				{CreatureID: "fast", Count: 6 + i, Interval: 500 * time.Millisecond, HealthScale: scale},
			}
		default:
			w.Batches = []WaveDefinition{
				{CreatureID: "normal", Count: 5 + 2*i, Interval: 800 * time.Millisecond, HealthScale: scale},
			}
		}
		waves = append(waves, w)
	}
	return waves
}
