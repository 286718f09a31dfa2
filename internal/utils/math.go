// internal/utils/math.go
package utils

import "math"

// Distance — евклидово расстояние между двумя точками в пикселях.
func Distance(ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp01 ограничивает t отрезком [0, 1].
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Ratio returns value/total clamped to [0, 1], 0 for a non-positive total.
func Ratio(value, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Clamp01(float64(value) / float64(total))
}
