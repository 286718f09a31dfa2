package entity

import (
	"testing"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/types"
)

func TestNewEntityIsMonotonic(t *testing.T) {
	ecs := NewECS()
	prev := types.EntityID(0)
	for i := 0; i < 5; i++ {
		id := ecs.NewEntity()
		if id <= prev {
			t.Fatalf("Expected increasing IDs, got %d after %d", id, prev)
		}
		prev = id
	}
}

func TestRemoveEntity(t *testing.T) {
	ecs := NewECS()
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{X: 1, Y: 2}
	ecs.Creatures[id] = &component.Creature{DefID: "normal"}
	ecs.Healths[id] = &component.Health{Value: 10, Max: 10}
	ecs.SlowEffects[id] = &component.SlowEffect{}

	if !ecs.IsAlive(id) {
		t.Fatal("Expected creature alive")
	}
	ecs.RemoveEntity(id)
	if _, ok := ecs.Positions[id]; ok {
		t.Error("Position not removed")
	}
	if _, ok := ecs.SlowEffects[id]; ok {
		t.Error("Slow effect not removed")
	}
	if ecs.IsAlive(id) {
		t.Error("Removed creature reported alive")
	}
}

func TestIsAliveRequiresHealth(t *testing.T) {
	ecs := NewECS()
	id := ecs.NewEntity()
	ecs.Creatures[id] = &component.Creature{}
	ecs.Healths[id] = &component.Health{Value: 0, Max: 10}
	if ecs.IsAlive(id) {
		t.Error("Creature with 0 health reported alive")
	}
}

func TestSortedIDs(t *testing.T) {
	ecs := NewECS()
	var ids []types.EntityID
	for i := 0; i < 20; i++ {
		id := ecs.NewEntity()
		ecs.Creatures[id] = &component.Creature{}
		ids = append(ids, id)
	}
	got := ecs.CreatureIDs()
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("Expected insertion order %v, got %v", ids, got)
		}
	}
}
