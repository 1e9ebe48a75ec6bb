package search

import "github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"

// policy parameterizes the shared best-first loop.
type policy struct {
	rootCost  func(start string, h Heuristic) float64
	childCost func(parent Node, e Edge, h Heuristic) float64
	priority  func(n Node, h Heuristic) float64
	annotate  func(ev *apptype.Event, n Node, h Heuristic)
}

var uniformCost = policy{
	rootCost:  func(string, Heuristic) float64 { return 0 },
	childCost: func(p Node, e Edge, _ Heuristic) float64 { return p.Cost() + e.Weight },
	priority:  func(n Node, _ Heuristic) float64 { return n.Cost() },
}

// greedy orders by h alone. Its cost carries h of the current state:
// child = parent - h(parent) + w + h(child).
var greedy = policy{
	rootCost: func(start string, h Heuristic) float64 { return h.Of(start) },
	childCost: func(p Node, e Edge, h Heuristic) float64 {
		return p.Cost() - h.Of(p.State()) + e.Weight + h.Of(e.To)
	},
	priority: func(n Node, h Heuristic) float64 { return h.Of(n.State()) },
	annotate: func(ev *apptype.Event, n Node, h Heuristic) {
		ev.Heuristic = apptype.FloatPtr(h.Of(n.State()))
	},
}

var aStar = policy{
	rootCost:  func(string, Heuristic) float64 { return 0 },
	childCost: func(p Node, e Edge, _ Heuristic) float64 { return p.Cost() + e.Weight },
	priority:  func(n Node, h Heuristic) float64 { return n.Cost() + h.Of(n.State()) },
	annotate: func(ev *apptype.Event, n Node, h Heuristic) {
		g, hv := n.Cost(), h.Of(n.State())
		ev.GCost = apptype.FloatPtr(g)
		ev.HCost = apptype.FloatPtr(hv)
		ev.FCost = apptype.FloatPtr(g + hv)
	},
}

// bestFirst is the priority-frontier search shared by Dijkstra, greedy
// best-first and A*. reached holds the best cost per state; a child is pushed
// only when unseen or strictly cheaper, and the goal is tested at dequeue.
type bestFirst struct {
	tag    string
	policy policy
}

func (b bestFirst) Run(g *Graph, start, goal string, h Heuristic, sink Sink) Node {
	out := emitter{sink: sink, tag: b.tag}
	tree := NewTree()
	if start == goal {
		return trivial(out, tree.Root(start, 0), 0)
	}
	with := func(n Node) func(*apptype.Event) {
		if b.policy.annotate == nil {
			return nil
		}
		return func(ev *apptype.Event) { b.policy.annotate(ev, n, h) }
	}

	root := tree.Root(start, b.policy.rootCost(start, h))
	front := &priorityQueue{}
	front.push(root, b.policy.priority(root, h))
	reached := map[string]float64{start: root.Cost()}
	step := 0
	for front.len() > 0 {
		node := front.pop()
		if node.Cost() > reached[node.State()] {
			continue // superseded by a cheaper entry
		}
		step++
		out.exploring(node, step, front.len(), with(node))
		if node.State() == goal {
			out.found(node, step, with(node))
			return node
		}

		for _, e := range g.Neighbors(node.State()) {
			cost := b.policy.childCost(node, e, h)
			if best, seen := reached[e.To]; seen && cost >= best {
				continue
			}
			reached[e.To] = cost
			child := tree.ChildWithCost(node, e, cost)
			front.push(child, b.policy.priority(child, h))
			out.added(child, step, with(child))
		}
	}
	out.noPath(step, ReasonExhausted)
	return Node{}
}
