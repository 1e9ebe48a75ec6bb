package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
)

// Edge is one adjacency entry: the neighbour label and the edge weight.
type Edge struct {
	To     string
	Weight float64
}

// Graph is an undirected weighted graph keyed by node label. Adjacency lists
// keep insertion order and parallel edges. A Graph is immutable once built.
type Graph struct {
	labels []string
	adj    map[string][]Edge
	byID   map[string]string
	edges  int
}

// Build normalizes caller-supplied node and edge lists into a Graph.
func Build(nodes []apptype.NodeSpec, edges []apptype.EdgeSpec) (*Graph, error) {
	g := &Graph{
		labels: make([]string, 0, len(nodes)),
		adj:    make(map[string][]Edge, len(nodes)),
		byID:   make(map[string]string, len(nodes)),
	}
	for i, n := range nodes {
		id := strings.TrimSpace(n.ID.String())
		if id == "" {
			return nil, malformed("node %d has no id", i)
		}
		if n.Label == "" {
			return nil, malformed("node %q has an empty label", id)
		}
		if _, dup := g.byID[id]; dup {
			return nil, malformed("duplicate node id %q", id)
		}
		if _, dup := g.adj[n.Label]; dup {
			return nil, malformed("duplicate node label %q", n.Label)
		}
		g.byID[id] = n.Label
		g.adj[n.Label] = nil
		g.labels = append(g.labels, n.Label)
	}
	for i, e := range edges {
		from, ok := g.byID[strings.TrimSpace(e.From.String())]
		if !ok {
			return nil, malformed("edge %d references unknown node id %q", i, e.From)
		}
		to, ok := g.byID[strings.TrimSpace(e.To.String())]
		if !ok {
			return nil, malformed("edge %d references unknown node id %q", i, e.To)
		}
		w, err := ParseWeight(e.Label.String())
		if err != nil {
			return nil, malformed("edge %d (%s-%s): %v", i, from, to, err)
		}
		g.adj[from] = append(g.adj[from], Edge{To: to, Weight: w})
		g.adj[to] = append(g.adj[to], Edge{To: from, Weight: w})
		g.edges++
	}
	return g, nil
}

// ParseWeight parses an edge label. Blank labels weigh 1; anything that is not
// a finite non-negative number is rejected.
func ParseWeight(label string) (float64, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return 1, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("weight %q is not a number", label)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, malformed("weight %q must be a finite non-negative number", label)
	}
	return w, nil
}

// Neighbors returns the adjacency list of label in insertion order.
func (g *Graph) Neighbors(label string) []Edge { return g.adj[label] }

// Has reports whether label names a node.
func (g *Graph) Has(label string) bool {
	_, ok := g.adj[label]
	return ok
}

// Label resolves a caller node id to its label.
func (g *Graph) Label(id string) (string, bool) {
	l, ok := g.byID[strings.TrimSpace(id)]
	return l, ok
}

// Labels returns node labels in declaration order.
func (g *Graph) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

func (g *Graph) NodeCount() int { return len(g.labels) }

func (g *Graph) EdgeCount() int { return g.edges }
