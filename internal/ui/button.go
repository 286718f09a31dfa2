// internal/ui/button.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
)

// Rect — прямоугольная область экрана.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= r.X && fx < r.X+r.W && fy >= r.Y && fy < r.Y+r.H
}

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect     Rect
	Text     string
	Enabled  bool
	BgColor  color.Color
	HovColor color.Color
}

// NewButton создает новую кнопку.
func NewButton(rect Rect, label string) *Button {
	return &Button{
		Rect:     rect,
		Text:     label,
		Enabled:  true,
		BgColor:  config.ButtonColor,
		HovColor: config.ButtonHoverColor,
	}
}

// IsClicked checks a click position against an enabled button.
func (b *Button) IsClicked(x, y int) bool {
	return b.Enabled && b.Rect.Contains(x, y)
}

// Draw отрисовывает кнопку. hover — координаты курсора.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, mx, my int) {
	bg := b.BgColor
	switch {
	case !b.Enabled:
		bg = config.DisabledColor
	case b.Rect.Contains(mx, my):
		bg = b.HovColor
	}
	vector.DrawFilledRect(screen, b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, bg, false)
	vector.StrokeRect(screen, b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, 1, config.TextLightColor, false)
	DrawCentered(screen, face, b.Text, b.Rect.X+b.Rect.W/2, b.Rect.Y+b.Rect.H/2, config.TextLightColor)
}

// DrawCentered draws a line of text centred on (cx, cy).
func DrawCentered(screen *ebiten.Image, face font.Face, s string, cx, cy float32, clr color.Color) {
	bounds := text.BoundString(face, s)
	w, h := bounds.Dx(), bounds.Dy()
	text.Draw(screen, s, face, int(cx)-w/2, int(cy)+h/2-1, clr)
}
