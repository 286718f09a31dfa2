// component/tower.go
package component

import (
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/types"
	"go-tower-arena/pkg/gridmap"
)

type Tower struct {
	Kind       defs.TowerKind
	Owner      types.PlayerID
	Cell       gridmap.Cell // верхняя левая клетка
	Size       int          // сторона в клетках
	Level      int
	Price      int // цена следующего улучшения
	TotalSpent int
	Angle      float64 // направление последнего выстрела, для отрисовки
}

// Cells returns every cell the tower covers.
func (t *Tower) Cells() []gridmap.Cell {
	return Footprint(t.Cell, t.Size)
}

// Footprint returns the size x size block of cells starting at origin.
func Footprint(origin gridmap.Cell, size int) []gridmap.Cell {
	if size < 1 {
		size = 1
	}
	cells := make([]gridmap.Cell, 0, size*size)
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			cells = append(cells, gridmap.Cell{X: origin.X + dx, Y: origin.Y + dy})
		}
	}
	return cells
}
