package search

import "math"

type record struct {
	state     string
	parent    int
	cost      float64
	action    Edge
	hasAction bool
}

// Tree is the arena holding every search node created during one run.
// Nodes refer to their parent by index, so the tree is acyclic by
// construction and is released as a whole when the run ends.
type Tree struct {
	records []record
}

func NewTree() *Tree { return &Tree{} }

// Node is a handle into a Tree. The zero Node means "none".
type Node struct {
	tree *Tree
	idx  int
}

// Root adds a parentless node.
func (t *Tree) Root(state string, cost float64) Node {
	t.records = append(t.records, record{state: state, parent: -1, cost: cost})
	return Node{tree: t, idx: len(t.records) - 1}
}

// Child adds a node reached from parent over e, with cost parent+weight.
func (t *Tree) Child(parent Node, e Edge) Node {
	return t.ChildWithCost(parent, e, parent.Cost()+e.Weight)
}

// ChildWithCost adds a node reached from parent over e with an explicit cost.
func (t *Tree) ChildWithCost(parent Node, e Edge, cost float64) Node {
	t.records = append(t.records, record{
		state:     e.To,
		parent:    parent.idx,
		cost:      cost,
		action:    e,
		hasAction: true,
	})
	return Node{tree: t, idx: len(t.records) - 1}
}

func (n Node) Valid() bool { return n.tree != nil }

func (n Node) rec() *record { return &n.tree.records[n.idx] }

func (n Node) State() string { return n.rec().state }

func (n Node) Cost() float64 { return n.rec().cost }

// Parent returns the parent handle, or none at the root.
func (n Node) Parent() Node {
	p := n.rec().parent
	if p < 0 {
		return Node{}
	}
	return Node{tree: n.tree, idx: p}
}

// Action returns the edge that produced n; false at the root.
func (n Node) Action() (Edge, bool) {
	r := n.rec()
	return r.action, r.hasAction
}

// Reconstruct walks parent links from n back to the root and returns the
// states in source-to-goal order together with n's path cost. A none node
// yields an empty path and +Inf.
func Reconstruct(n Node) ([]string, float64) {
	if !n.Valid() {
		return []string{}, math.Inf(1)
	}
	var path []string
	for cur := n; cur.Valid(); cur = cur.Parent() {
		path = append(path, cur.State())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, n.Cost()
}
