// pkg/render/color.go
package render

import (
	"image/color"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/utils"
	"go-tower-arena/pkg/gridmap"
)

// TileColor returns the background colour of a tile kind.
func TileColor(kind gridmap.TileKind) color.RGBA {
	switch kind {
	case gridmap.TileRoad:
		return config.RoadColor
	case gridmap.TileSand:
		return config.SandColor
	case gridmap.TileWall:
		return config.WallColor
	case gridmap.TileWater:
		return config.WaterColor
	case gridmap.TileSpawn:
		return config.SpawnColor
	case gridmap.TileGoal:
		return config.GoalColor
	}
	return config.OpenColor
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor adds the same amount to every channel, saturating at 255.
func LightenColor(c color.RGBA, amount int) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+amount)),
		G: uint8(min(255, int(c.G)+amount)),
		B: uint8(min(255, int(c.B)+amount)),
		A: c.A,
	}
}

// HealthColor fades from green to red as the ratio drops.
func HealthColor(ratio float64) color.RGBA {
	ratio = utils.Clamp01(ratio)
	return color.RGBA{R: uint8(255 * (1 - ratio)), G: uint8(205 * ratio), B: 50, A: 255}
}
