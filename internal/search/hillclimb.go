package search

import "github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"

// hillClimbing walks from the start to the unvisited neighbour with the
// lowest heuristic, as long as that strictly improves on the current state.
type hillClimbing struct {
	tag      string
	maxSteps int
}

func (hc hillClimbing) Run(g *Graph, start, goal string, h Heuristic, sink Sink) Node {
	out := emitter{sink: sink, tag: hc.tag}
	tree := NewTree()
	current := tree.Root(start, 0)
	visited := map[string]struct{}{start: {}}
	withH := func(n Node) func(*apptype.Event) {
		return func(ev *apptype.Event) { ev.Heuristic = apptype.FloatPtr(h.Of(n.State())) }
	}

	for step := 1; step <= hc.maxSteps; step++ {
		out.exploring(current, step, -1, withH(current))
		if current.State() == goal {
			out.found(current, step, withH(current))
			return current
		}

		var best Edge
		ok := false
		for _, e := range g.Neighbors(current.State()) {
			if _, seen := visited[e.To]; seen {
				continue
			}
			if !ok || h.Of(e.To) < h.Of(best.To) {
				best, ok = e, true
			}
		}
		if !ok {
			out.noPath(step, ReasonNoUnvisited)
			return Node{}
		}
		if h.Of(best.To) >= h.Of(current.State()) {
			out.emit(apptype.Event{
				Type:      apptype.EventLocalOptimum,
				Node:      current.State(),
				Step:      apptype.IntPtr(step),
				Heuristic: apptype.FloatPtr(h.Of(current.State())),
			})
			out.noPath(step, ReasonLocalOptimum)
			return Node{}
		}

		next := tree.Child(current, best)
		visited[best.To] = struct{}{}
		out.emit(apptype.Event{
			Type:      apptype.EventMoveToNeighbor,
			Node:      best.To,
			Parent:    current.State(),
			Step:      apptype.IntPtr(step),
			Cost:      apptype.FloatPtr(next.Cost()),
			Heuristic: apptype.FloatPtr(h.Of(best.To)),
		})
		current = next
	}
	out.noPath(hc.maxSteps, ReasonMaxSteps)
	return Node{}
}
