// internal/ui/terrain_button.go
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
)

// TerrainButton is one entry of the terrain menu: name, best stars, lock.
type TerrainButton struct {
	*Button
	Terrain       string
	Stars         int
	StarsToUnlock int
	Best          int
}

func NewTerrainButton(rect Rect, terrain string, stars, starsToUnlock, best int, unlocked bool) *TerrainButton {
	b := &TerrainButton{
		Button:        NewButton(rect, terrain),
		Terrain:       terrain,
		Stars:         stars,
		StarsToUnlock: starsToUnlock,
		Best:          best,
	}
	b.Enabled = unlocked
	if !unlocked {
		b.Text = fmt.Sprintf("%s  (%d stars)", terrain, starsToUnlock)
	}
	return b
}

func (b *TerrainButton) Draw(screen *ebiten.Image, face font.Face, mx, my int) {
	b.Button.Draw(screen, face, mx, my)
	if !b.Enabled {
		return
	}
	for i := 0; i < 3; i++ {
		cx := b.Rect.X + b.Rect.W + 14 + float32(i*18)
		cy := b.Rect.Y + b.Rect.H/2
		if i < b.Stars {
			vector.DrawFilledCircle(screen, cx, cy, 6, config.StarColor, true)
		}
		vector.StrokeCircle(screen, cx, cy, 6, 1, config.StarColor, true)
	}
	if b.Best > 0 {
		text.Draw(screen, fmt.Sprintf("best %d", b.Best), face, int(b.Rect.X+b.Rect.W)+70, int(b.Rect.Y+b.Rect.H/2)+4, config.TextLightColor)
	}
}
