// internal/ui/tower_bar.go
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
)

const (
	slotWidth  = 92
	slotHeight = 36
	slotGap    = 4
)

// TowerBar is the build menu: one slot per tower kind, cheapest first.
// Number keys 1..8 pick the same slots.
type TowerBar struct {
	X, Y  float32
	Kinds []defs.TowerKind
}

func NewTowerBar(x, y float32) *TowerBar {
	return &TowerBar{X: x, Y: y, Kinds: defs.TowerKinds()}
}

func (b *TowerBar) slot(i int) Rect {
	return Rect{X: b.X + float32(i*(slotWidth+slotGap)), Y: b.Y, W: slotWidth, H: slotHeight}
}

// KindAt returns the kind under a click.
func (b *TowerBar) KindAt(x, y int) (defs.TowerKind, bool) {
	for i, k := range b.Kinds {
		if b.slot(i).Contains(x, y) {
			return k, true
		}
	}
	return "", false
}

// KindForKey maps a 1-based slot number to its kind.
func (b *TowerBar) KindForKey(n int) (defs.TowerKind, bool) {
	if n < 1 || n > len(b.Kinds) {
		return "", false
	}
	return b.Kinds[n-1], true
}

func (b *TowerBar) Draw(screen *ebiten.Image, face font.Face, selected defs.TowerKind, gold int) {
	for i, k := range b.Kinds {
		def := defs.TowerLibrary[k]
		r := b.slot(i)
		bg := config.PanelColor
		if gold < def.Price {
			bg = config.DisabledColor
		}
		vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, bg, false)
		vector.DrawFilledRect(screen, r.X+4, r.Y+4, 10, 10, def.Visuals.Color, false)
		border := config.TextLightColor
		width := float32(1)
		if k == selected {
			border, width = config.SelectionColor, 2
		}
		vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, width, border, false)
		text.Draw(screen, fmt.Sprintf("%d %s", i+1, def.Name), face, int(r.X)+18, int(r.Y)+13, config.TextLightColor)
		text.Draw(screen, fmt.Sprintf("%d g", def.Price), face, int(r.X)+18, int(r.Y)+29, config.StarColor)
	}
}
