// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

const (
	CellSize     = 20.0 // пикселей на клетку
	TickRate     = 25   // тиков симуляции в секунду
	TickInterval = time.Second / TickRate
	MaxDeltaTime = 0.06

	DefaultPort    = 2357
	StartingGold   = 1000 // золото игрока в сетевой игре
	SellRefundRate = 0.6
	ScoreboardSize = 10

	HitRadius        = 4.0 // снаряд засчитывается ближе этого расстояния
	ProjectileMaxAge = 5.0 // секунд полёта до самоуничтожения
	AnimationTime    = 0.3
	WaypointEpsilon  = 0.5

	ScreenWidth  = 800
	ScreenHeight = 440
	HUDHeight    = 140
	StrokeWidth  = 1.0
)

// Скорости ускорения одиночной игры.
var GameSpeeds = []int{1, 2, 4}

// Unlocking thresholds of terrains in unlock order.
var UnlockStars = []int{0, 1, 3, 7}

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	OpenColor        = color.RGBA{70, 100, 120, 220}
	RoadColor        = color.RGBA{150, 130, 100, 220}
	SandColor        = color.RGBA{194, 178, 128, 255}
	WallColor        = color.RGBA{60, 60, 70, 255}
	WaterColor       = color.RGBA{30, 80, 160, 255}
	SpawnColor       = color.RGBA{0, 255, 0, 255}
	GoalColor        = color.RGBA{255, 0, 0, 255}
	ArcColor         = color.RGBA{255, 255, 0, 96}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDarkColor    = color.RGBA{20, 20, 30, 255}
	HealthBarColor   = color.RGBA{50, 205, 50, 255}
	HealthBackColor  = color.RGBA{90, 20, 20, 255}
	SelectionColor   = color.RGBA{255, 255, 255, 200}
	SlowedColor      = color.RGBA{120, 200, 255, 255}
	PanelColor       = color.RGBA{35, 35, 50, 240}
	ButtonColor      = color.RGBA{70, 130, 180, 220}
	ButtonHoverColor = color.RGBA{100, 160, 210, 230}
	DisabledColor    = color.RGBA{90, 90, 90, 200}
	StarColor        = color.RGBA{255, 215, 0, 255}
	// Цвета кнопки скорости: x1, x2, x4
	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},
		color.RGBA{220, 60, 60, 220},
		color.RGBA{194, 178, 128, 255},
	}
)
