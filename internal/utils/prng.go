// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"go-tower-arena/internal/defs"
)

// PRNGService is the only source of randomness of a match. The same seed
// replays the same spawn mix.
type PRNGService struct {
	rng  *rand.Rand
	seed int64
}

// NewPRNGService seeds a generator; seed 0 takes the current time.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the effective seed, for logs and replays.
func (s *PRNGService) Seed() int64 { return s.seed }

// ChooseWeighted draws a creature kind from a mixed batch. Entries with a
// non-positive weight are never drawn; if no weight is positive the first
// entry wins.
func (s *PRNGService) ChooseWeighted(entries []defs.WeightedCreature) string {
	if len(entries) == 0 {
		return ""
	}
	total := 0
	for _, e := range entries {
		total += max(e.Weight, 0)
	}
	if total == 0 {
		return entries[0].CreatureID
	}

	r := s.rng.Intn(total)
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if r < e.Weight {
			return e.CreatureID
		}
		r -= e.Weight
	}
	return entries[len(entries)-1].CreatureID
}
