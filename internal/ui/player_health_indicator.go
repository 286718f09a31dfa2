// internal/ui/player_health_indicator.go
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/types"
)

const (
	healthCols          = 10
	healthCircleRadius  = 4.0
	healthCircleSpacing = 2.0
	playerRowHeight     = 30
)

// PlayerHealthIndicator lists every player: name, gold, score and lives as circles.
type PlayerHealthIndicator struct {
	X, Y     float32
	MaxLives int
}

func NewPlayerHealthIndicator(x, y float32, maxLives int) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y, MaxLives: maxLives}
}

func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, face font.Face, players []snapshot.Player, me types.PlayerID) {
	for row, p := range players {
		y := i.Y + float32(row*playerRowHeight)
		clr := config.TextLightColor
		if p.ID == me {
			clr = config.StarColor
		}
		label := fmt.Sprintf("%-10s T%d  gold %-5d score %-5d", p.Name, p.Team, p.Gold, p.Score)
		text.Draw(screen, label, face, int(i.X), int(y)+10, clr)
		i.drawLives(screen, face, i.X, y+16, p.Lives)
	}
}

// drawLives рисует жизни кружками; сверх MaxLives — числом.
func (i *PlayerHealthIndicator) drawLives(screen *ebiten.Image, face font.Face, x, y float32, lives int) {
	slots := min(i.MaxLives, healthCols)
	if slots <= 0 {
		slots = healthCols
	}
	half := i.MaxLives / 2
	for j := 0; j < slots; j++ {
		cx := x + healthCircleRadius + float32(j)*(healthCircleRadius*2+healthCircleSpacing)
		cy := y + healthCircleRadius
		fill := config.HealthBackColor
		switch {
		case j < lives && lives <= half:
			fill = config.GoalColor
		case j < lives:
			fill = config.HealthBarColor
		}
		vector.DrawFilledCircle(screen, cx, cy, healthCircleRadius, fill, true)
		vector.StrokeCircle(screen, cx, cy, healthCircleRadius, 1, config.TextLightColor, true)
	}
	if lives > slots || i.MaxLives > slots {
		tx := x + float32(slots)*(healthCircleRadius*2+healthCircleSpacing) + 4
		text.Draw(screen, fmt.Sprintf("%d", lives), face, int(tx), int(y)+8, config.TextLightColor)
	}
}
