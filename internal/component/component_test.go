package component

import (
	"testing"

	"go-tower-arena/pkg/gridmap"
)

func TestCombatCooldown(t *testing.T) {
	c := &Combat{FireRate: 2}
	if !c.Cool(0.1) {
		t.Fatal("fresh tower should be ready")
	}
	c.Fired()
	if c.Cool(0.25) {
		t.Fatal("ready after 0.25s at 2 shots/s")
	}
	if !c.Cool(0.3) {
		t.Fatal("not ready after 0.55s")
	}
	// перелёт переносится в следующий период
	c.Fired()
	if got := c.FireCooldown; got < 0.44 || got > 0.46 {
		t.Errorf("cooldown = %v, want 0.45", got)
	}
	c.Idle()
	if !c.Cool(0) {
		t.Error("idle tower should be ready")
	}
}

func TestPathRemaining(t *testing.T) {
	p := &Path{Cells: []gridmap.Cell{{X: 0}, {X: 1}, {X: 2}}, CurrentIndex: 1}
	if got := len(p.Remaining()); got != 2 {
		t.Errorf("remaining %d, want 2", got)
	}
	p.CurrentIndex = 3
	if p.Remaining() != nil {
		t.Error("finished path should have nothing left")
	}
}

func TestSlowStrongest(t *testing.T) {
	tests := []struct {
		name string
		in   []SlowInstance
		want float64
	}{
		{"none", nil, 0},
		{"single", []SlowInstance{{Factor: 0.3}}, 0.3},
		{"max wins", []SlowInstance{{Factor: 0.3}, {Factor: 0.5}, {Factor: 0.1}}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SlowEffect{Instances: tt.in}
			if got := s.Strongest(); got != tt.want {
				t.Errorf("Strongest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFootprint(t *testing.T) {
	cells := Footprint(gridmap.Cell{X: 3, Y: 4}, 2)
	want := []gridmap.Cell{{X: 3, Y: 4}, {X: 4, Y: 4}, {X: 3, Y: 5}, {X: 4, Y: 5}}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells", len(cells))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, cells[i], want[i])
		}
	}
	if got := len(Footprint(gridmap.Cell{}, 0)); got != 1 {
		t.Errorf("size 0 footprint has %d cells", got)
	}
}

func TestStrings(t *testing.T) {
	if PhasePaused.String() != "paused" || Phase(9).String() != "unknown" {
		t.Error("phase names")
	}
	if OutcomeVictory.String() != "victory" || OutcomeNone.String() != "none" {
		t.Error("outcome names")
	}
	if (&Player{Lives: 0}).Alive() {
		t.Error("player with no lives is alive")
	}
}
