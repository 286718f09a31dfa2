// pkg/render/grid_renderer.go
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/types"
	"go-tower-arena/internal/utils"
	"go-tower-arena/pkg/gridmap"
)

// GridRenderer draws a terrain and the entities of a snapshot on top of it.
// The terrain is pre-rendered once, entities every frame.
type GridRenderer struct {
	grid     *gridmap.GridMap
	cellSize float64
	offsetX  float64
	offsetY  float64
	face     font.Face
	mapImage *ebiten.Image
}

func NewGridRenderer(grid *gridmap.GridMap, cellSize, offsetX, offsetY float64, face font.Face) *GridRenderer {
	r := &GridRenderer{
		grid:     grid,
		cellSize: cellSize,
		offsetX:  offsetX,
		offsetY:  offsetY,
		face:     face,
	}
	w, h := r.Size()
	r.mapImage = ebiten.NewImage(max(1, int(w)), max(1, int(h)))
	r.RenderMapImage()
	return r
}

// Size returns the map size in pixels.
func (r *GridRenderer) Size() (float64, float64) {
	return float64(r.grid.Width) * r.cellSize, float64(r.grid.Height) * r.cellSize
}

// RenderMapImage redraws the static terrain.
func (r *GridRenderer) RenderMapImage() {
	r.mapImage.Clear()
	cs := float32(r.cellSize)
	for y := 0; y < r.grid.Height; y++ {
		for x := 0; x < r.grid.Width; x++ {
			c := gridmap.Cell{X: x, Y: y}
			fill := TileColor(r.grid.Tile(c).Kind)
			px, py := float32(x)*cs, float32(y)*cs
			vector.DrawFilledRect(r.mapImage, px, py, cs, cs, fill, false)
			vector.StrokeRect(r.mapImage, px, py, cs, cs, config.StrokeWidth, LightenColor(fill, 25), false)
		}
	}
}

// ScreenToCell converts a screen position to a cell, reporting false outside the map.
func (r *GridRenderer) ScreenToCell(sx, sy int) (gridmap.Cell, bool) {
	return ScreenToCell(float64(sx)-r.offsetX, float64(sy)-r.offsetY, r.cellSize, r.grid.Width, r.grid.Height)
}

// ScreenToCell converts map-relative pixels to a cell of a w x h grid.
func ScreenToCell(x, y, cellSize float64, w, h int) (gridmap.Cell, bool) {
	if x < 0 || y < 0 {
		return gridmap.Cell{}, false
	}
	c := gridmap.PixelToCell(x, y, cellSize)
	if c.X >= w || c.Y >= h {
		return gridmap.Cell{}, false
	}
	return c, true
}

func (r *GridRenderer) pt(x, y float64) (float32, float32) {
	return float32(x + r.offsetX), float32(y + r.offsetY)
}

// Draw renders the map, arcs, towers, creatures, projectiles and animations.
func (r *GridRenderer) Draw(screen *ebiten.Image, snap *snapshot.Snapshot, selected types.EntityID, me types.PlayerID) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.offsetX, r.offsetY)
	screen.DrawImage(r.mapImage, op)

	half := r.cellSize / 2
	for _, a := range snap.Arcs {
		x0, y0 := r.pt(float64(a.FromX)*r.cellSize+half, float64(a.FromY)*r.cellSize+half)
		x1, y1 := r.pt(float64(a.ToX)*r.cellSize+half, float64(a.ToY)*r.cellSize+half)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, config.ArcColor, true)
	}

	for i := range snap.Towers {
		r.drawTower(screen, &snap.Towers[i], snap.Towers[i].ID == selected, snap.Towers[i].Owner == me)
	}
	for i := range snap.Creatures {
		r.drawCreature(screen, &snap.Creatures[i])
	}
	for _, p := range snap.Projectiles {
		x, y := r.pt(p.X, p.Y)
		vector.DrawFilledCircle(screen, x, y, 2.5, towerColor(p.Kind), true)
	}
	for _, a := range snap.Animations {
		r.drawAnimation(screen, a)
	}
}

func towerColor(kind defs.TowerKind) color.RGBA {
	if def, ok := defs.TowerLibrary[kind]; ok {
		return def.Visuals.Color
	}
	return config.DisabledColor
}

func (r *GridRenderer) drawTower(screen *ebiten.Image, t *snapshot.Tower, selected, mine bool) {
	cs := float32(r.cellSize)
	x, y := r.pt(float64(t.CellX)*r.cellSize, float64(t.CellY)*r.cellSize)
	size := cs * float32(t.Size)
	fill := towerColor(t.Kind)
	if !mine {
		fill = DarkenColor(fill)
	}
	vector.DrawFilledRect(screen, x+1, y+1, size-2, size-2, fill, false)

	// ствол по углу прицеливания
	cx, cy := r.pt(t.X, t.Y)
	l := size * 0.45
	vector.StrokeLine(screen, cx, cy, cx+l*float32(math.Cos(t.Angle)), cy+l*float32(math.Sin(t.Angle)), 2, config.TextDarkColor, true)

	if t.Level > 1 {
		text.Draw(screen, fmt.Sprint(t.Level), r.face, int(x)+2, int(y+size)-2, config.TextLightColor)
	}
	if selected {
		vector.StrokeRect(screen, x, y, size, size, 2, config.SelectionColor, false)
		vector.StrokeCircle(screen, cx, cy, float32(t.Range), 1, config.SelectionColor, true)
	}
}

func (r *GridRenderer) drawCreature(screen *ebiten.Image, c *snapshot.Creature) {
	def := defs.CreatureLibrary[c.Kind]
	radius := float32(r.cellSize * def.Visuals.RadiusFactor)
	if radius <= 0 {
		radius = float32(r.cellSize * 0.3)
	}
	x, y := r.pt(c.X, c.Y)
	fill := def.Visuals.Color
	if fill.A == 0 {
		fill = config.TextLightColor
	}
	vector.DrawFilledCircle(screen, x, y, radius, fill, true)
	if c.Class == defs.ClassAir {
		vector.StrokeCircle(screen, x, y, radius+1.5, 1, config.TextLightColor, true)
	}
	if c.Slowed {
		vector.StrokeCircle(screen, x, y, radius+3, 1.5, config.SlowedColor, true)
	}
	if c.Burning {
		vector.DrawFilledCircle(screen, x, y-radius, 2, color.RGBA{255, 120, 0, 255}, true)
	}

	if c.MaxHealth > 0 && c.Health < c.MaxHealth {
		ratio := utils.Ratio(c.Health, c.MaxHealth)
		w := radius * 2
		vector.DrawFilledRect(screen, x-radius, y-radius-5, w, 3, config.HealthBackColor, false)
		vector.DrawFilledRect(screen, x-radius, y-radius-5, w*float32(ratio), 3, HealthColor(ratio), false)
	}
}

func (r *GridRenderer) drawAnimation(screen *ebiten.Image, a snapshot.Animation) {
	clr := towerColor(a.Tower)
	clr.A = uint8(255 * (1 - math.Min(1, a.Progress)))
	x1, y1 := r.pt(a.ToX, a.ToY)
	switch a.Kind {
	case "explosion":
		radius := float32(a.Radius * (0.3 + 0.7*a.Progress))
		vector.StrokeCircle(screen, x1, y1, radius, 2, clr, true)
	case "lightning":
		x0, y0 := r.pt(a.FromX, a.FromY)
		mx, my := (x0+x1)/2+float32(4*math.Sin(a.Progress*20)), (y0+y1)/2
		vector.StrokeLine(screen, x0, y0, mx, my, 2, clr, true)
		vector.StrokeLine(screen, mx, my, x1, y1, 2, clr, true)
	default:
		vector.DrawFilledCircle(screen, x1, y1, float32(3*(1-a.Progress)+1), clr, true)
	}
}
