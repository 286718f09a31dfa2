// pkg/gridmap/pathfinding.go
package gridmap

import (
	"container/heap"
	"errors"
	"sort"
)

// ErrNoPath is returned when the goal cannot be reached.
var ErrNoPath = errors.New("no path")

// ShortestPath находит путь минимальной стоимости от from до goal (Дейкстра).
// При равной стоимости выбирается узел с меньшим индексом, поэтому результат
// детерминирован. Проходимость стартовой клетки не проверяется: существо,
// стоящее на только что занятой клетке, должно иметь возможность уйти с неё.
func (gm *GridMap) ShortestPath(from, goal Cell) ([]Cell, error) {
	if !gm.InBounds(from) || !gm.InBounds(goal) || !gm.IsPassable(goal) {
		return nil, ErrNoPath
	}

	n := gm.Width * gm.Height
	cost := make([]int, n)
	parent := make([]int, n)
	done := make([]bool, n)
	for i := range cost {
		cost[i] = -1
		parent[i] = -1
	}

	start := gm.Index(from)
	target := gm.Index(goal)
	cost[start] = 0

	pq := &PriorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &Node{Cell: from, Index: start, Cost: 0})
	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if done[current.Index] {
			continue
		}
		done[current.Index] = true
		if current.Index == target {
			return gm.reconstructPath(parent, target), nil
		}
		for _, neighbor := range gm.Neighbors(current.Cell) {
			ni := gm.Index(neighbor)
			if done[ni] {
				continue
			}
			newCost := current.Cost + gm.Tile(neighbor).Cost
			switch {
			case cost[ni] < 0 || newCost < cost[ni]:
				cost[ni] = newCost
				parent[ni] = current.Index
				heap.Push(pq, &Node{Cell: neighbor, Index: ni, Cost: newCost})
			case newCost == cost[ni] && current.Index < parent[ni]:
				parent[ni] = current.Index
			}
		}
	}
	return nil, ErrNoPath
}

func (gm *GridMap) reconstructPath(parent []int, target int) []Cell {
	path := []Cell{}
	for i := target; i >= 0; i = parent[i] {
		path = append(path, Cell{X: i % gm.Width, Y: i / gm.Width})
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// CanPlaceObstacle reports whether every route keeps a spawn-to-goal path
// once the given cells are blocked. The map is left unchanged.
func (gm *GridMap) CanPlaceObstacle(cells ...Cell) bool {
	saved := make([]Tile, len(cells))
	for i, c := range cells {
		saved[i] = gm.Tile(c)
	}
	gm.SetBlocked(true, cells...)
	defer func() {
		for i, c := range cells {
			if gm.InBounds(c) {
				gm.Tiles[gm.Index(c)] = saved[i]
			}
		}
	}()

	for _, route := range gm.Routes {
		for _, c := range cells {
			if c == route.Spawn || c == route.Goal {
				return false
			}
		}
		if _, err := gm.ShortestPath(route.Spawn, route.Goal); err != nil {
			return false
		}
	}
	return true
}

// ActiveArcs collects the distinct arcs used by the given paths, sorted by
// source then destination node index.
func (gm *GridMap) ActiveArcs(paths [][]Cell) []Arc {
	seen := make(map[Arc]struct{})
	for _, path := range paths {
		for i := 1; i < len(path); i++ {
			seen[Arc{From: path[i-1], To: path[i]}] = struct{}{}
		}
	}
	arcs := make([]Arc, 0, len(seen))
	for a := range seen {
		arcs = append(arcs, a)
	}
	sort.Slice(arcs, func(i, j int) bool {
		fi, fj := gm.Index(arcs[i].From), gm.Index(arcs[j].From)
		if fi != fj {
			return fi < fj
		}
		return gm.Index(arcs[i].To) < gm.Index(arcs[j].To)
	})
	return arcs
}

// PriorityQueue для Дейкстры: сначала стоимость, затем индекс узла.
type PriorityQueue []*Node

type Node struct {
	Cell  Cell
	Index int
	Cost  int
}

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Index < pq[j].Index
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
