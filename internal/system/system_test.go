package system

import (
	"math"
	"testing"
	"time"

	"go-tower-arena/internal/component"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/types"
	"go-tower-arena/internal/utils"
	"go-tower-arena/pkg/gridmap"
)

const testCell = 20.0

func addCreature(ecs *entity.ECS, x, y float64, health int, class defs.CreatureClass) types.EntityID {
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{X: x, Y: y}
	ecs.Velocities[id] = &component.Velocity{Speed: 40}
	ecs.Healths[id] = &component.Health{Value: health, Max: health}
	ecs.Creatures[id] = &component.Creature{DefID: "normal", Class: class, Reward: 5, LifeDamage: 1, Wave: 1}
	return id
}

func addTower(ecs *entity.ECS, kind defs.TowerKind, x, y float64, owner types.PlayerID) types.EntityID {
	def := defs.TowerLibrary[kind]
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{X: x, Y: y}
	ecs.Towers[id] = &component.Tower{Kind: kind, Owner: owner, Size: 1, Level: 1, Price: def.Price, TotalSpent: def.Price}
	ecs.Combats[id] = &component.Combat{Damage: def.Damage, FireRate: def.FireRate, Range: def.Range}
	return id
}

func addProjectile(ecs *entity.ECS, x, y float64, target types.EntityID, damage int) types.EntityID {
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{X: x, Y: y}
	ecs.Projectiles[id] = &component.Projectile{TargetID: target, Speed: 200, Damage: damage, Owner: 1, Kind: defs.TowerArcher}
	return id
}

func TestApplyDamageClampsAndCredits(t *testing.T) {
	ecs := entity.NewECS()
	id := addCreature(ecs, 0, 0, 100, defs.ClassGround)

	for i, want := range []int{60, 20} {
		if killed := ApplyDamage(ecs, id, 40, 7); killed {
			t.Fatalf("hit %d reported a kill", i+1)
		}
		if got := ecs.Healths[id].Value; got != want {
			t.Fatalf("after hit %d health = %d, want %d", i+1, got, want)
		}
	}
	if !ApplyDamage(ecs, id, 40, 7) {
		t.Fatal("third hit should kill")
	}
	if got := ecs.Healths[id].Value; got != 0 {
		t.Errorf("health = %d, want clamped to 0", got)
	}
	if got := ecs.Creatures[id].KilledBy; got != 7 {
		t.Errorf("KilledBy = %d, want 7", got)
	}
	if ApplyDamage(ecs, id, 40, 9) {
		t.Error("a dead creature cannot be killed twice")
	}
	if got := ecs.Creatures[id].KilledBy; got != 7 {
		t.Errorf("kill credit moved to %d", got)
	}
}

func TestSlowsDoNotStack(t *testing.T) {
	ecs := entity.NewECS()
	id := addCreature(ecs, 0, 0, 100, defs.ClassGround)

	ApplySlow(ecs, id, 0.3, 2)
	ApplySlow(ecs, id, 0.5, 1)
	if got := CurrentSpeed(ecs, id); math.Abs(got-20) > 1e-9 {
		t.Errorf("speed = %v, want 20 (strongest slow only)", got)
	}

	effects := NewStatusEffectSystem(ecs)
	effects.Update(1.2)
	if got := CurrentSpeed(ecs, id); math.Abs(got-28) > 1e-9 {
		t.Errorf("after the strong slow expired speed = %v, want 28", got)
	}
	effects.Update(1.0)
	if _, ok := ecs.SlowEffects[id]; ok {
		t.Error("slow effect should be gone after every instance expired")
	}
	if got := CurrentSpeed(ecs, id); got != 40 {
		t.Errorf("speed = %v, want base 40", got)
	}
}

func TestApplySlowCapsFactor(t *testing.T) {
	ecs := entity.NewECS()
	id := addCreature(ecs, 0, 0, 100, defs.ClassGround)
	ApplySlow(ecs, id, 1.0, 1)
	if got := CurrentSpeed(ecs, id); got <= 0 {
		t.Errorf("speed = %v, creature must keep moving", got)
	}
}

func TestBurn(t *testing.T) {
	ecs := entity.NewECS()
	id := addCreature(ecs, 0, 0, 60, defs.ClassGround)
	ApplyBurn(ecs, id, 6, 3, 2)
	ApplyBurn(ecs, id, 3, 10, 4)
	if got := ecs.BurnEffects[id].Source; got != 2 {
		t.Fatalf("weaker burn replaced the stronger one (source %d)", got)
	}

	effects := NewStatusEffectSystem(ecs)
	effects.Update(1.0)
	if got := ecs.Healths[id].Value; got != 54 {
		t.Errorf("health after one burn tick = %d, want 54", got)
	}
	effects.Update(1.0)
	effects.Update(1.0)
	if got := ecs.Healths[id].Value; got != 42 {
		t.Errorf("health after burn = %d, want 42", got)
	}
	if _, ok := ecs.BurnEffects[id]; ok {
		t.Error("burn should have expired")
	}
}

func TestMovementReachesEnd(t *testing.T) {
	ecs := entity.NewECS()
	id := addCreature(ecs, 10, 10, 50, defs.ClassGround)
	ecs.Paths[id] = &component.Path{Cells: []gridmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, CurrentIndex: 1}
	movement := NewMovementSystem(ecs, testCell)

	movement.Update(0.25)
	if pos := ecs.Positions[id]; math.Abs(pos.X-20) > 1e-9 || pos.Y != 10 {
		t.Fatalf("position = %+v, want (20,10)", *pos)
	}
	movement.Update(0.25)
	if got := ecs.Paths[id].CurrentIndex; got != 2 {
		t.Fatalf("waypoint index = %d, want 2", got)
	}
	movement.Update(0.5)
	if !ecs.Creatures[id].ReachedEnd {
		t.Fatal("creature should have reached the goal")
	}
	if pos := ecs.Positions[id]; pos.X != 50 {
		t.Errorf("final x = %v, want 50", pos.X)
	}
}

func TestMovementHonoursSlow(t *testing.T) {
	ecs := entity.NewECS()
	id := addCreature(ecs, 10, 10, 50, defs.ClassGround)
	ecs.Paths[id] = &component.Path{Cells: []gridmap.Cell{{X: 0, Y: 0}, {X: 5, Y: 0}}, CurrentIndex: 1}
	ApplySlow(ecs, id, 0.5, 5)

	NewMovementSystem(ecs, testCell).Update(0.25)
	if got := ecs.Positions[id].X; math.Abs(got-15) > 1e-9 {
		t.Errorf("x = %v, want 15", got)
	}
}

func TestAcquireTarget(t *testing.T) {
	ecs := entity.NewECS()
	tower := addTower(ecs, defs.TowerBallistic, 0, 0, 1)
	ecs.Combats[tower].Range = 60

	far := addCreature(ecs, 100, 0, 10, defs.ClassGround)
	healthy := addCreature(ecs, 30, 0, 50, defs.ClassGround)
	weak := addCreature(ecs, 0, 30, 20, defs.ClassGround)
	flyer := addCreature(ecs, 10, 0, 5, defs.ClassAir)
	seen := CapturePositions(ecs)

	combat := NewCombatSystem(ecs)
	if got := combat.AcquireTarget(tower, defs.TargetGround, seen); got != weak {
		t.Errorf("ground target = %d, want %d (same distance, lower health)", got, weak)
	}
	if got := combat.AcquireTarget(tower, defs.TargetAir, seen); got != flyer {
		t.Errorf("air target = %d, want %d", got, flyer)
	}
	if got := combat.AcquireTarget(tower, defs.TargetBoth, seen); got != flyer {
		t.Errorf("any target = %d, want nearest %d", got, flyer)
	}

	ecs.Healths[weak].Value = 50
	if got := combat.AcquireTarget(tower, defs.TargetGround, seen); got != healthy {
		t.Errorf("full tie = %d, want lowest id %d", got, healthy)
	}
	_ = far
}

func TestCombatUsesPreMovementPositions(t *testing.T) {
	ecs := entity.NewECS()
	tower := addTower(ecs, defs.TowerArcher, 0, 0, 1)
	ecs.Combats[tower].Range = 40
	creature := addCreature(ecs, 30, 0, 50, defs.ClassGround)
	seen := CapturePositions(ecs)
	ecs.Positions[creature].X = 55 // ушло из радиуса во время движения

	combat := NewCombatSystem(ecs)
	combat.Update(0.04, seen)
	if got := len(ecs.Projectiles); got != 1 {
		t.Fatalf("projectiles = %d, want 1", got)
	}
	if got := ecs.Combats[tower].FireCooldown; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("cooldown = %v, want 0.5", got)
	}

	combat.Update(0.04, seen)
	if got := len(ecs.Projectiles); got != 1 {
		t.Errorf("tower fired during cooldown: %d projectiles", got)
	}

	ecs.Combats[tower].FireCooldown = 0
	combat.Update(0.04, CapturePositions(ecs))
	if got := len(ecs.Projectiles); got != 1 {
		t.Errorf("tower fired at a creature out of range")
	}
}

func TestSplash(t *testing.T) {
	ecs := entity.NewECS()
	addTower(ecs, defs.TowerCannon, 0, 0, 3)
	target := addCreature(ecs, 30, 0, 60, defs.ClassGround)
	neighbour := addCreature(ecs, 45, 0, 60, defs.ClassGround)
	flyer := addCreature(ecs, 30, 5, 60, defs.ClassAir)
	outside := addCreature(ecs, 75, 0, 60, defs.ClassGround)

	NewCombatSystem(ecs).Update(0.04, CapturePositions(ecs))

	tests := []struct {
		name string
		id   types.EntityID
		want int
	}{
		{"target", target, 45},
		{"neighbour in radius", neighbour, 45},
		{"flyer ignored", flyer, 60},
		{"outside radius", outside, 60},
	}
	for _, tt := range tests {
		if got := ecs.Healths[tt.id].Value; got != tt.want {
			t.Errorf("%s: health = %d, want %d", tt.name, got, tt.want)
		}
	}
	if len(ecs.Projectiles) != 0 {
		t.Error("splash towers do not emit projectiles")
	}
	if len(ecs.Animations) != 1 {
		t.Errorf("animations = %d, want one explosion", len(ecs.Animations))
	}
}

func TestInstantStrike(t *testing.T) {
	ecs := entity.NewECS()
	addTower(ecs, defs.TowerElectric, 0, 0, 1)
	target := addCreature(ecs, 20, 0, 60, defs.ClassAir)

	NewCombatSystem(ecs).Update(0.04, CapturePositions(ecs))
	if got := ecs.Healths[target].Value; got != 35 {
		t.Errorf("health = %d, want 35", got)
	}
}

func TestProjectileHoming(t *testing.T) {
	ecs := entity.NewECS()
	target := addCreature(ecs, 10, 0, 50, defs.ClassGround)
	proj := addProjectile(ecs, 0, 0, target, 20)
	ecs.Projectiles[proj].Slow = &defs.SlowDef{Factor: 0.4, Duration: 2}
	projectiles := NewProjectileSystem(ecs)

	projectiles.Update(0.04)
	if got := ecs.Positions[proj].X; math.Abs(got-8) > 1e-9 {
		t.Fatalf("projectile x = %v, want 8", got)
	}
	projectiles.Update(0.04)
	if !ecs.Projectiles[proj].Resolved {
		t.Fatal("projectile should have hit")
	}
	if got := ecs.Healths[target].Value; got != 30 {
		t.Errorf("health = %d, want 30", got)
	}
	if _, ok := ecs.SlowEffects[target]; !ok {
		t.Error("hit should apply the slow")
	}
}

func TestProjectileTargetVanished(t *testing.T) {
	ecs := entity.NewECS()
	dead := addCreature(ecs, 5, 0, 50, defs.ClassGround)
	ecs.Healths[dead].Value = 0
	p1 := addProjectile(ecs, 0, 0, dead, 20)
	p2 := addProjectile(ecs, 0, 0, 999, 20)

	NewProjectileSystem(ecs).Update(0.04)
	if !ecs.Projectiles[p1].Resolved || !ecs.Projectiles[p2].Resolved {
		t.Fatal("projectiles without a live target must resolve")
	}
	if got := ecs.Healths[dead].Value; got != 0 {
		t.Errorf("health = %d", got)
	}
	NewCleanupSystem(ecs).Update()
	if len(ecs.Projectiles) != 0 {
		t.Errorf("resolved projectiles left: %d", len(ecs.Projectiles))
	}
}

func TestRepeatedHitsOnOneCreature(t *testing.T) {
	ecs := entity.NewECS()
	target := addCreature(ecs, 0, 0, 100, defs.ClassGround)
	for i := 0; i < 4; i++ {
		addProjectile(ecs, 0, 0, target, 40)
	}

	NewProjectileSystem(ecs).Update(0.04)
	if got := ecs.Healths[target].Value; got != 0 {
		t.Fatalf("health = %d, want 0", got)
	}
	report := NewCleanupSystem(ecs).Update()
	if len(report.Kills) != 1 || report.Kills[0].Creature != target {
		t.Fatalf("kills = %+v", report.Kills)
	}
	if _, ok := ecs.Creatures[target]; ok {
		t.Error("dead creature not purged")
	}
	if len(ecs.Projectiles) != 0 {
		t.Error("the extra projectile should have been discarded")
	}
}

func TestCleanupReport(t *testing.T) {
	ecs := entity.NewECS()
	dead := addCreature(ecs, 0, 0, 10, defs.ClassGround)
	ApplyDamage(ecs, dead, 10, 2)
	arrived := addCreature(ecs, 0, 0, 10, defs.ClassGround)
	ecs.Creatures[arrived].ReachedEnd = true
	ecs.Creatures[arrived].Target = 4
	alive := addCreature(ecs, 0, 0, 10, defs.ClassGround)

	report := NewCleanupSystem(ecs).Update()
	if len(report.Kills) != 1 || report.Kills[0].By != 2 || report.Kills[0].Reward != 5 {
		t.Errorf("kills = %+v", report.Kills)
	}
	if len(report.Arrivals) != 1 || report.Arrivals[0].Target != 4 || report.Arrivals[0].LifeDamage != 1 {
		t.Errorf("arrivals = %+v", report.Arrivals)
	}
	if _, ok := ecs.Creatures[alive]; !ok {
		t.Error("live creature was purged")
	}
	if len(ecs.Creatures) != 1 {
		t.Errorf("creatures left = %d, want 1", len(ecs.Creatures))
	}
}

type fakeRoutes struct {
	routes []SpawnRoute
	path   []gridmap.Cell
}

func (f *fakeRoutes) SpawnRoutes() []SpawnRoute { return f.routes }

func (f *fakeRoutes) PathFor(route int, class defs.CreatureClass) []gridmap.Cell {
	if class == defs.ClassAir {
		return []gridmap.Cell{f.path[0], f.path[len(f.path)-1]}
	}
	return f.path
}

func TestWaveSchedule(t *testing.T) {
	ecs := entity.NewECS()
	routes := &fakeRoutes{
		routes: []SpawnRoute{{Route: 0, Target: 1}},
		path:   []gridmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	}
	waves := NewWaveSystem(ecs, routes, utils.NewPRNGService(1), testCell)
	waves.Start(1, defs.Wave{Name: "test", Bonus: 10, Batches: []defs.WaveDefinition{
		{CreatureID: "normal", Count: 3, Interval: 500 * time.Millisecond, StartDelay: time.Second, HealthScale: 1.5},
	}})

	counts := []int{0, 1, 1, 1, 0}
	for step, want := range counts {
		if got := len(waves.Update(0.5)); got != want {
			t.Fatalf("step %d: spawned %d, want %d", step, got, want)
		}
	}
	if waves.Pending() != 0 {
		t.Fatalf("pending = %d", waves.Pending())
	}
	for _, id := range ecs.CreatureIDs() {
		if got := ecs.Healths[id].Max; got != 90 {
			t.Errorf("max health = %d, want 90", got)
		}
		if c := ecs.Creatures[id]; c.Target != 1 || c.Wave != 1 {
			t.Errorf("creature = %+v", *c)
		}
		if pos := ecs.Positions[id]; pos.X != 10 || pos.Y != 10 {
			t.Errorf("spawn position = %+v", *pos)
		}
	}

	if waves.Cleared() {
		t.Fatal("wave cleared while creatures are alive")
	}
	for _, id := range ecs.CreatureIDs() {
		ecs.RemoveEntity(id)
	}
	if !waves.Cleared() {
		t.Fatal("wave should be cleared")
	}
	if waves.Cleared() {
		t.Error("cleared must fire once")
	}
	if waves.Active() {
		t.Error("wave still active")
	}
}

func TestWaveSpawnsOnEveryRoute(t *testing.T) {
	ecs := entity.NewECS()
	routes := &fakeRoutes{
		routes: []SpawnRoute{{Route: 0, Target: 1}, {Route: 1, Target: 2}},
		path:   []gridmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	}
	waves := NewWaveSystem(ecs, routes, utils.NewPRNGService(1), testCell)
	waves.Start(2, defs.Wave{Batches: []defs.WaveDefinition{{CreatureID: "flyer", Count: 1}}})

	ids := waves.Update(0.04)
	if len(ids) != 2 {
		t.Fatalf("spawned %d, want one per route", len(ids))
	}
	if got := ecs.Creatures[ids[1]].Target; got != 2 {
		t.Errorf("second creature target = %d", got)
	}
	if got := len(ecs.Paths[ids[0]].Cells); got != 2 {
		t.Errorf("flyer path has %d cells, want a straight line", got)
	}
}

func TestVisualEffectsExpire(t *testing.T) {
	ecs := entity.NewECS()
	id := ecs.NewEntity()
	ecs.Animations[id] = &component.Animation{Kind: component.AnimationHit, Duration: 0.3}
	fx := NewVisualEffectSystem(ecs)
	if n := fx.Update(0.2); n != 0 {
		t.Fatalf("expired %d animations too early", n)
	}
	if n := fx.Update(0.2); n != 1 {
		t.Errorf("expired %d, want 1", n)
	}
	if _, ok := ecs.Animations[id]; ok {
		t.Error("animation should have expired")
	}
}
