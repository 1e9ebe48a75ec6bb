package heuristic

import (
	"math"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/search"
)

// hopsProvider estimates the lightest edge weight times the hop count to the
// destination. That never overestimates and changes by at most one edge
// weight per edge, so it is admissible and consistent.
type hopsProvider struct{}

func (hopsProvider) Name() string { return "hops" }

func (hopsProvider) Table(g *search.Graph, _, destination string) search.Heuristic {
	labels := g.Labels()
	h := make(search.Heuristic, len(labels))
	for _, l := range labels {
		h[l] = 0
	}
	if !g.Has(destination) {
		return h
	}

	minW := math.Inf(1)
	for _, l := range labels {
		for _, e := range g.Neighbors(l) {
			minW = math.Min(minW, e.Weight)
		}
	}
	if math.IsInf(minW, 1) {
		return h
	}

	depth := map[string]int{destination: 0}
	queue := []string{destination}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.Neighbors(cur) {
			if _, seen := depth[e.To]; seen {
				continue
			}
			depth[e.To] = depth[cur] + 1
			h[e.To] = float64(depth[e.To]) * minW
			queue = append(queue, e.To)
		}
	}
	return h
}

// distanceProvider returns the exact shortest distance to the destination,
// the perfect heuristic. Nodes that cannot reach it get 0.
type distanceProvider struct{}

func (distanceProvider) Name() string { return "distance" }

func (distanceProvider) Table(g *search.Graph, _, destination string) search.Heuristic {
	labels := g.Labels()
	h := make(search.Heuristic, len(labels))
	for l, d := range distancesFrom(g, destination) {
		if math.IsInf(d, 1) {
			d = 0
		}
		h[l] = d
	}
	return h
}

// distancesFrom returns the distance from one source to every node; the
// engine's uniform-cost search stops at its goal.
func distancesFrom(g *search.Graph, from string) map[string]float64 {
	labels := g.Labels()
	dist := make(map[string]float64, len(labels))
	for _, l := range labels {
		dist[l] = math.Inf(1)
	}
	if !g.Has(from) {
		return dist
	}
	dist[from] = 0
	done := make(map[string]bool, len(labels))
	for range labels {
		cur, best := "", math.Inf(1)
		for _, l := range labels {
			if !done[l] && dist[l] < best {
				cur, best = l, dist[l]
			}
		}
		if cur == "" {
			break
		}
		done[cur] = true
		for _, e := range g.Neighbors(cur) {
			if nd := best + e.Weight; nd < dist[e.To] {
				dist[e.To] = nd
			}
		}
	}
	return dist
}
