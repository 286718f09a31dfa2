// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator is a pulsing dot: connection state in remote games,
// wave state in solo games.
type StateIndicator struct {
	X, Y       float32
	Radius     float32
	LastChange time.Time
	color      color.RGBA
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{X: x, Y: y, Radius: radius}
}

// SetColor changes the colour and restarts the pulse when it differs.
func (i *StateIndicator) SetColor(c color.RGBA) {
	if c != i.color {
		i.color = c
		i.LastChange = time.Now()
	}
}

func (i *StateIndicator) Draw(screen *ebiten.Image) {
	elapsed := time.Since(i.LastChange).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	r := i.Radius * float32(scale)
	vector.DrawFilledCircle(screen, i.X, i.Y, r, i.color, true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}
