package search

// uninformed is breadth-first or depth-first search depending on the
// frontier discipline. States are marked reached when discovered and the goal
// test runs when a child is generated.
type uninformed struct {
	tag         string
	newFrontier func() frontier
}

func (u uninformed) Run(g *Graph, start, goal string, _ Heuristic, sink Sink) Node {
	out := emitter{sink: sink, tag: u.tag}
	tree := NewTree()
	root := tree.Root(start, 0)
	if start == goal {
		return trivial(out, root, 0)
	}

	front := u.newFrontier()
	front.push(root)
	reached := map[string]struct{}{start: {}}
	step := 0
	for front.len() > 0 {
		node := front.pop()
		step++
		out.exploring(node, step, front.len(), nil)

		for _, e := range g.Neighbors(node.State()) {
			if e.To == goal {
				child := tree.Child(node, e)
				out.found(child, step+1, nil)
				return child
			}
			if _, seen := reached[e.To]; seen {
				continue
			}
			reached[e.To] = struct{}{}
			child := tree.Child(node, e)
			front.push(child)
			out.added(child, step, nil)
		}
	}
	out.noPath(step, ReasonExhausted)
	return Node{}
}
