// internal/snapshot/snapshot.go
package snapshot

import (
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/entity"
	"go-tower-arena/internal/types"
	"go-tower-arena/pkg/gridmap"
)

// Snapshot is an immutable copy of the world. Slices are sorted by ID and
// share nothing with the game, so it may cross goroutines freely.
type Snapshot struct {
	MatchID    string       `json:"match_id"`
	Tick       uint64       `json:"tick"`
	Time       float64      `json:"time"`
	Terrain    string       `json:"terrain"`
	Phase      string       `json:"phase"`
	Outcome    string       `json:"outcome,omitempty"`
	Winner     types.TeamID `json:"winner,omitempty"`
	Wave       int          `json:"wave"`
	TotalWaves int          `json:"total_waves"`
	WaveActive bool         `json:"wave_active"`
	WaveName   string       `json:"wave_name,omitempty"`

	Towers      []Tower      `json:"towers"`
	Creatures   []Creature   `json:"creatures"`
	Projectiles []Projectile `json:"projectiles"`
	Animations  []Animation  `json:"animations,omitempty"`
	Players     []Player     `json:"players"`
	Arcs        []Arc        `json:"arcs,omitempty"`
}

type Tower struct {
	ID         types.EntityID `json:"id"`
	Kind       defs.TowerKind `json:"kind"`
	Owner      types.PlayerID `json:"owner"`
	CellX      int            `json:"cell_x"`
	CellY      int            `json:"cell_y"`
	Size       int            `json:"size"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Level      int            `json:"level"`
	MaxLevel   int            `json:"max_level"`
	Price      int            `json:"price"` // цена следующего улучшения
	TotalSpent int            `json:"total_spent"`
	Damage     int            `json:"damage"`
	Range      float64        `json:"range"`
	FireRate   float64        `json:"fire_rate"`
	Angle      float64        `json:"angle"`
}

type Creature struct {
	ID        types.EntityID     `json:"id"`
	Kind      string             `json:"kind"`
	Class     defs.CreatureClass `json:"class"`
	X         float64            `json:"x"`
	Y         float64            `json:"y"`
	Health    int                `json:"health"`
	MaxHealth int                `json:"max_health"`
	Target    types.PlayerID     `json:"target"`
	Slowed    bool               `json:"slowed,omitempty"`
	Burning   bool               `json:"burning,omitempty"`
}

type Projectile struct {
	ID     types.EntityID `json:"id"`
	Kind   defs.TowerKind `json:"kind"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Target types.EntityID `json:"target"`
}

type Animation struct {
	Kind     string         `json:"kind"`
	Tower    defs.TowerKind `json:"tower"`
	FromX    float64        `json:"from_x"`
	FromY    float64        `json:"from_y"`
	ToX      float64        `json:"to_x"`
	ToY      float64        `json:"to_y"`
	Radius   float64        `json:"radius,omitempty"`
	Progress float64        `json:"progress"` // 0..1
}

type Player struct {
	ID    types.PlayerID `json:"id"`
	Name  string         `json:"name"`
	Team  types.TeamID   `json:"team"`
	Slot  int            `json:"slot"`
	Gold  int            `json:"gold"`
	Lives int            `json:"lives"`
	Score int            `json:"score"`
	Kills int            `json:"kills"`
}

// Arc is an active path arc in cell coordinates.
type Arc struct {
	FromX int `json:"from_x"`
	FromY int `json:"from_y"`
	ToX   int `json:"to_x"`
	ToY   int `json:"to_y"`
}

// FromECS copies entities out of the arena. Player and match fields are left
// for the caller. grid may be nil, then no arcs are reported.
func FromECS(ecs *entity.ECS, grid *gridmap.GridMap) Snapshot {
	s := Snapshot{Time: ecs.GameTime}

	for _, id := range ecs.TowerIDs() {
		t := ecs.Towers[id]
		tw := Tower{
			ID:         id,
			Kind:       t.Kind,
			Owner:      t.Owner,
			CellX:      t.Cell.X,
			CellY:      t.Cell.Y,
			Size:       t.Size,
			Level:      t.Level,
			MaxLevel:   defs.TowerLibrary[t.Kind].MaxLevel,
			Price:      t.Price,
			TotalSpent: t.TotalSpent,
			Angle:      t.Angle,
		}
		if pos, ok := ecs.Positions[id]; ok {
			tw.X, tw.Y = pos.X, pos.Y
		}
		if c, ok := ecs.Combats[id]; ok {
			tw.Damage, tw.Range, tw.FireRate = c.Damage, c.Range, c.FireRate
		}
		s.Towers = append(s.Towers, tw)
	}

	var paths [][]gridmap.Cell
	for _, id := range ecs.CreatureIDs() {
		c := ecs.Creatures[id]
		cr := Creature{ID: id, Kind: c.DefID, Class: c.Class, Target: c.Target}
		if pos, ok := ecs.Positions[id]; ok {
			cr.X, cr.Y = pos.X, pos.Y
		}
		if h, ok := ecs.Healths[id]; ok {
			cr.Health, cr.MaxHealth = h.Value, h.Max
		}
		_, cr.Slowed = ecs.SlowEffects[id]
		_, cr.Burning = ecs.BurnEffects[id]
		s.Creatures = append(s.Creatures, cr)

		// после перестройки пути CurrentIndex == 0: путь начинается со следующей точки
		if p, ok := ecs.Paths[id]; ok && c.Class == defs.ClassGround {
			paths = append(paths, p.Cells[max(p.CurrentIndex-1, 0):])
		}
	}

	for _, id := range ecs.ProjectileIDs() {
		p := ecs.Projectiles[id]
		pr := Projectile{ID: id, Kind: p.Kind, Target: p.TargetID}
		if pos, ok := ecs.Positions[id]; ok {
			pr.X, pr.Y = pos.X, pos.Y
		}
		s.Projectiles = append(s.Projectiles, pr)
	}

	for _, id := range ecs.AnimationIDs() {
		a := ecs.Animations[id]
		progress := 1.0
		if a.Duration > 0 {
			progress = a.Timer / a.Duration
		}
		s.Animations = append(s.Animations, Animation{
			Kind:     string(a.Kind),
			Tower:    a.Tower,
			FromX:    a.FromX,
			FromY:    a.FromY,
			ToX:      a.ToX,
			ToY:      a.ToY,
			Radius:   a.Radius,
			Progress: progress,
		})
	}

	if grid != nil {
		for _, arc := range grid.ActiveArcs(paths) {
			s.Arcs = append(s.Arcs, Arc{FromX: arc.From.X, FromY: arc.From.Y, ToX: arc.To.X, ToY: arc.To.Y})
		}
	}
	return s
}

// Tower looks a tower up by ID.
func (s *Snapshot) Tower(id types.EntityID) (Tower, bool) {
	for _, t := range s.Towers {
		if t.ID == id {
			return t, true
		}
	}
	return Tower{}, false
}

// TowerAt returns the tower covering the cell.
func (s *Snapshot) TowerAt(x, y int) (Tower, bool) {
	for _, t := range s.Towers {
		if x >= t.CellX && x < t.CellX+t.Size && y >= t.CellY && y < t.CellY+t.Size {
			return t, true
		}
	}
	return Tower{}, false
}

// Player looks a player up by ID.
func (s *Snapshot) Player(id types.PlayerID) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Creature looks a creature up by ID.
func (s *Snapshot) Creature(id types.EntityID) (Creature, bool) {
	for _, c := range s.Creatures {
		if c.ID == id {
			return c, true
		}
	}
	return Creature{}, false
}
