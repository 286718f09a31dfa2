// internal/app/routes.go
package app

import (
	"log"

	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/system"
	"go-tower-arena/pkg/gridmap"
)

// routeProvider exposes the path cache to the wave scheduler. It is only
// called from Tick, with the game mutex held.
type routeProvider struct {
	g *Game
}

// SpawnRoutes returns the routes of the seated players who still have lives.
func (r routeProvider) SpawnRoutes() []system.SpawnRoute {
	var routes []system.SpawnRoute
	for slot, pid := range r.g.slots {
		if p, ok := r.g.players[pid]; ok && p.Alive() {
			routes = append(routes, system.SpawnRoute{Route: slot, Target: pid})
		}
	}
	return routes
}

// PathFor returns the current path of a route. Flyers go straight from spawn to goal.
func (r routeProvider) PathFor(route int, class defs.CreatureClass) []gridmap.Cell {
	if route < 0 || route >= len(r.g.grid.Routes) {
		return nil
	}
	if class == defs.ClassAir {
		rt := r.g.grid.Routes[route]
		return []gridmap.Cell{rt.Spawn, rt.Goal}
	}
	return r.g.routePaths[route]
}

// reroute recomputes every route after a topology change and sends ground
// creatures on fresh paths starting at their next waypoint.
func (g *Game) reroute() {
	for i, route := range g.grid.Routes {
		path, err := g.grid.ShortestPath(route.Spawn, route.Goal)
		g.invariant(err == nil, "route %d lost its path after a topology change", i)
		if err == nil {
			g.routePaths[i] = path
		}
	}

	for _, id := range g.ecs.CreatureIDs() {
		creature := g.ecs.Creatures[id]
		path, ok := g.ecs.Paths[id]
		if !ok || creature.Class != defs.ClassGround || creature.ReachedEnd || path.CurrentIndex >= len(path.Cells) {
			continue
		}
		if creature.Route < 0 || creature.Route >= len(g.grid.Routes) {
			continue
		}
		from := path.Cells[path.CurrentIndex]
		fresh, err := g.grid.ShortestPath(from, g.grid.Routes[creature.Route].Goal)
		if err != nil {
			log.Printf("[game] creature %d is cut off at %v, keeps its old path", id, from)
			continue
		}
		path.Cells = fresh
		path.CurrentIndex = 0
	}
}

// RoutePath returns a copy of the current ground path of a route.
func (g *Game) RoutePath(route int) []gridmap.Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	if route < 0 || route >= len(g.routePaths) {
		return nil
	}
	return append([]gridmap.Cell(nil), g.routePaths[route]...)
}
