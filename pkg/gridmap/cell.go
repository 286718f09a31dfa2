// pkg/gridmap/cell.go
package gridmap

import (
	"math"

	"go-tower-arena/pkg/utils"
)

// Cell — клетка сетки в координатах столбец/строка.
type Cell struct {
	X, Y int
}

// Arc is a directed adjacency between two neighbouring cells.
type Arc struct {
	From, To Cell
}

// Четыре соседа в фиксированном порядке: вверх, влево, вправо, вниз.
// Порядок совпадает с возрастанием индекса узла, это важно для детерминизма.
var directions = [4]Cell{
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
}

// Add возвращает сумму двух клеток.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Manhattan returns the L1 distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return utils.Abs(c.X-o.X) + utils.Abs(c.Y-o.Y)
}

// Center возвращает центр клетки в пикселях.
func (c Cell) Center(cellSize float64) (float64, float64) {
	return float64(c.X)*cellSize + cellSize/2, float64(c.Y)*cellSize + cellSize/2
}

// PixelToCell возвращает клетку, содержащую точку (x, y).
func PixelToCell(x, y, cellSize float64) Cell {
	return Cell{X: int(math.Floor(x / cellSize)), Y: int(math.Floor(y / cellSize))}
}

