// internal/component/movement.go
package component

import "go-tower-arena/pkg/gridmap"

// Position — компонент позиции в пикселях
type Position struct {
	X, Y float64
}

// Velocity — базовая скорость существа, пикселей в секунду
type Velocity struct {
	Speed float64
}

// Path is the waypoint list a creature walks. CurrentIndex points at the next waypoint.
type Path struct {
	Cells        []gridmap.Cell
	CurrentIndex int
}

// Remaining returns the waypoints not yet reached.
func (p *Path) Remaining() []gridmap.Cell {
	if p.CurrentIndex >= len(p.Cells) {
		return nil
	}
	return p.Cells[p.CurrentIndex:]
}
