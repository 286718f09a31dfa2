package snapshot

import (
	"testing"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/entity"
	"go-tower-arena/pkg/gridmap"
)

func TestFromECS(t *testing.T) {
	grid, err := gridmap.Parse([]string{
		"a...A",
	})
	if err != nil {
		t.Fatal(err)
	}
	ecs := entity.NewECS()

	tower := ecs.NewEntity()
	ecs.Towers[tower] = &component.Tower{Kind: defs.TowerIce, Owner: 2, Cell: gridmap.Cell{X: 2, Y: 0}, Size: 1, Level: 1, Price: 50, TotalSpent: 50}
	ecs.Positions[tower] = &component.Position{X: 50, Y: 10}
	ecs.Combats[tower] = &component.Combat{Damage: 20, Range: 50, FireRate: 2}

	creature := ecs.NewEntity()
	ecs.Creatures[creature] = &component.Creature{DefID: "normal", Class: defs.ClassGround, Target: 2}
	ecs.Positions[creature] = &component.Position{X: 20, Y: 10}
	ecs.Healths[creature] = &component.Health{Value: 30, Max: 60}
	ecs.Paths[creature] = &component.Path{Cells: []gridmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, CurrentIndex: 1}
	ecs.SlowEffects[creature] = &component.SlowEffect{Instances: []component.SlowInstance{{Factor: 0.4, Timer: 1}}}

	proj := ecs.NewEntity()
	ecs.Projectiles[proj] = &component.Projectile{Kind: defs.TowerIce, TargetID: creature}
	ecs.Positions[proj] = &component.Position{X: 45, Y: 10}

	s := FromECS(ecs, grid)

	if len(s.Towers) != 1 || s.Towers[0].MaxLevel != defs.TowerLibrary[defs.TowerIce].MaxLevel || s.Towers[0].Damage != 20 {
		t.Errorf("towers = %+v", s.Towers)
	}
	if len(s.Creatures) != 1 || !s.Creatures[0].Slowed || s.Creatures[0].Burning || s.Creatures[0].Health != 30 {
		t.Errorf("creatures = %+v", s.Creatures)
	}
	if len(s.Projectiles) != 1 || s.Projectiles[0].Target != creature {
		t.Errorf("projectiles = %+v", s.Projectiles)
	}
	if len(s.Arcs) != 2 {
		t.Fatalf("arcs = %+v, want 2", s.Arcs)
	}
	if s.Arcs[0].FromX != 0 || s.Arcs[1].ToX != 2 {
		t.Errorf("arcs out of order: %+v", s.Arcs)
	}

	// мутация мира не меняет снимок
	ecs.Healths[creature].Value = 1
	if s.Creatures[0].Health != 30 {
		t.Error("snapshot shares state with the world")
	}

	if _, ok := s.TowerAt(2, 0); !ok {
		t.Error("TowerAt(2,0) not found")
	}
	if _, ok := s.TowerAt(3, 0); ok {
		t.Error("TowerAt(3,0) found a tower")
	}
	if c, ok := s.Creature(creature); !ok || c.Kind != "normal" {
		t.Errorf("Creature lookup = %+v, %v", c, ok)
	}
}
