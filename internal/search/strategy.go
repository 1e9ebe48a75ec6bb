package search

import (
	"strings"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
)

// Heuristic maps a label to its estimated remaining cost. Missing labels
// estimate 0. The engine only reads it; callers supply it.
type Heuristic map[string]float64

func (h Heuristic) Of(label string) float64 { return h[label] }

// Strategy is one search procedure. Run pushes its events into sink in order
// and returns the goal node, or the zero Node when it gives up.
type Strategy interface {
	Run(g *Graph, start, goal string, h Heuristic, sink Sink) Node
}

// Terminal reasons carried by no_path events.
const (
	ReasonExhausted    = "Search space exhausted"
	ReasonNoUnvisited  = "No unvisited neighbors available"
	ReasonLocalOptimum = "Local optimum reached - no better neighbors"
	ReasonMaxSteps     = "Maximum steps reached"
)

// MaxHillClimbingSteps bounds the hill climbing walk.
const MaxHillClimbingSteps = 100

// Algorithm is a registered strategy with its identifiers.
type Algorithm struct {
	ID          string
	Tag         string
	Name        string
	Informed    bool
	Optimal     bool
	Description string
	Strategy    Strategy
}

// Info is the transport view of the algorithm.
func (a Algorithm) Info() apptype.AlgorithmInfo {
	return apptype.AlgorithmInfo{
		ID:          a.ID,
		Name:        a.Name,
		Informed:    a.Informed,
		Optimal:     a.Optimal,
		Description: a.Description,
	}
}

var registry = []Algorithm{
	{
		ID: "bfs", Tag: "BFS", Name: "Breadth-First Search",
		Description: "FIFO frontier; fewest edges, ignores weights when ordering.",
		Strategy:    uninformed{tag: "BFS", newFrontier: func() frontier { return &fifo{} }},
	},
	{
		ID: "dfs", Tag: "DFS", Name: "Depth-First Search",
		Description: "LIFO frontier; follows one branch as deep as it goes.",
		Strategy:    uninformed{tag: "DFS", newFrontier: func() frontier { return &lifo{} }},
	},
	{
		ID: "dijkstra", Tag: "Dijkstra", Name: "Dijkstra's Algorithm", Optimal: true,
		Description: "Uniform-cost search ordered by accumulated path cost.",
		Strategy:    bestFirst{tag: "Dijkstra", policy: uniformCost},
	},
	{
		ID: "best_first", Tag: "Best-First", Name: "Best-First Search", Informed: true,
		Description: "Greedy search ordered by the heuristic estimate alone.",
		Strategy:    bestFirst{tag: "Best-First", policy: greedy},
	},
	{
		ID: "a_star", Tag: "A*", Name: "A* Search", Informed: true, Optimal: true,
		Description: "Ordered by path cost plus heuristic; optimal with a consistent heuristic.",
		Strategy:    bestFirst{tag: "A*", policy: aStar},
	},
	{
		ID: "hill_climbing", Tag: "Hill Climbing", Name: "Hill Climbing Search", Informed: true,
		Description: "Moves to the best unvisited neighbour while the heuristic improves; may stop at a local optimum.",
		Strategy:    hillClimbing{tag: "Hill Climbing", maxSteps: MaxHillClimbingSteps},
	},
}

// NormalizeID trims and lower-cases an algorithm id.
func NormalizeID(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

// Lookup finds an algorithm by id.
func Lookup(id string) (Algorithm, bool) {
	id = NormalizeID(id)
	for _, a := range registry {
		if a.ID == id {
			return a, true
		}
	}
	return Algorithm{}, false
}

// Algorithms returns every registered algorithm in a stable order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(registry))
	copy(out, registry)
	return out
}

// trivial handles start == goal: one exploring step that is also the goal.
func trivial(out emitter, root Node, frontierSize int) Node {
	out.exploring(root, 1, frontierSize, nil)
	out.found(root, 1, nil)
	return root
}
