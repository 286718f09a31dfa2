// internal/ui/speed_button.go
package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-tower-arena/internal/config"
)

// SpeedButton cycles the solo game speed through config.GameSpeeds.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	CurrentState  int
}

func NewSpeedButton(x, y, size float32) *SpeedButton {
	return &SpeedButton{X: x, Y: y, Size: size}
}

// Speed returns the multiplier of the current state.
func (b *SpeedButton) Speed() int {
	return config.GameSpeeds[b.CurrentState]
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(config.GameSpeeds)
	b.LastClickTime = time.Now()
}

// IsClicked использует круг для попадания, форма сложная.
func (b *SpeedButton) IsClicked(x, y int) bool {
	dx, dy := float32(x)-b.X, float32(y)-b.Y
	return dx*dx+dy*dy <= (b.Size*1.5)*(b.Size*1.5)
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)
	clr := config.SpeedButtonColors[b.CurrentState%len(config.SpeedButtonColors)]

	height := size * 1.2
	width := size
	offset := width * 0.8
	drawTriangle(screen, b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2, clr)
	drawTriangle(screen, b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2, clr)
}

// Label is the text shown next to the button.
func (b *SpeedButton) Label() string {
	return fmt.Sprintf("x%d", b.Speed())
}

func drawTriangle(screen *ebiten.Image, x1, y1, x2, y2, x3, y3 float32, clr color.Color) {
	var path vector.Path
	path.MoveTo(x1, y1)
	path.LineTo(x2, y2)
	path.LineTo(x3, y3)
	path.Close()

	r, g, b, a := clr.RGBA()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	screen.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})

	vector.StrokeLine(screen, x1, y1, x2, y2, 1, color.White, true)
	vector.StrokeLine(screen, x2, y2, x3, y3, 1, color.White, true)
	vector.StrokeLine(screen, x3, y3, x1, y1, 1, color.White, true)
}

var white *ebiten.Image

func whitePixel() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	}
	return white
}
