package utils

import (
	"testing"

	"go-tower-arena/internal/defs"
)

func TestChooseWeightedDeterministic(t *testing.T) {
	mix := []defs.WeightedCreature{{CreatureID: "normal", Weight: 5}, {CreatureID: "fast", Weight: 3}, {CreatureID: "tough", Weight: 1}}
	a := NewPRNGService(42)
	b := NewPRNGService(42)
	for i := 0; i < 50; i++ {
		if x, y := a.ChooseWeighted(mix), b.ChooseWeighted(mix); x != y {
			t.Fatalf("draw %d: %s != %s for the same seed", i, x, y)
		}
	}
}

func TestChooseWeightedEdgeCases(t *testing.T) {
	p := NewPRNGService(1)
	if got := p.ChooseWeighted(nil); got != "" {
		t.Errorf("empty mix: got %q", got)
	}
	zero := []defs.WeightedCreature{{CreatureID: "swarm", Weight: 0}, {CreatureID: "boss", Weight: 0}}
	if got := p.ChooseWeighted(zero); got != "swarm" {
		t.Errorf("zero weights: got %q, want first entry", got)
	}
	only := []defs.WeightedCreature{{CreatureID: "flyer", Weight: 0}, {CreatureID: "fast", Weight: 7}}
	for i := 0; i < 20; i++ {
		if got := p.ChooseWeighted(only); got != "fast" {
			t.Fatalf("got %q, want fast", got)
		}
	}
}

func TestMath(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance = %v", got)
	}
	if got := Clamp01(1.7); got != 1 {
		t.Errorf("Clamp01(1.7) = %v", got)
	}
	if got := Clamp01(-0.2); got != 0 {
		t.Errorf("Clamp01(-0.2) = %v", got)
	}
	tests := []struct {
		v, total int
		want     float64
	}{
		{30, 60, 0.5}, {90, 60, 1}, {-5, 60, 0}, {5, 0, 0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.v, tt.total); got != tt.want {
			t.Errorf("Ratio(%d, %d) = %v, want %v", tt.v, tt.total, got, tt.want)
		}
	}
}

func TestSeed(t *testing.T) {
	if got := NewPRNGService(99).Seed(); got != 99 {
		t.Errorf("Seed = %d", got)
	}
	if NewPRNGService(0).Seed() == 0 {
		t.Error("seed 0 was not replaced")
	}
}
