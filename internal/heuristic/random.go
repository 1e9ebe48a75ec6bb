package heuristic

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/search"
)

// randomProvider assigns 0 to the destination and a uniform value in [1,10)
// to every other node; the source never goes below 2. The values carry no
// information about the graph, so A* is not guaranteed optimal with them.
type randomProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newRandom(seed uint64) *randomProvider {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomProvider{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *randomProvider) Name() string { return "random" }

func (p *randomProvider) Table(g *search.Graph, source, destination string) search.Heuristic {
	p.mu.Lock()
	defer p.mu.Unlock()

	h := make(search.Heuristic, g.NodeCount())
	for _, l := range g.Labels() {
		if l == destination {
			h[l] = 0
			continue
		}
		h[l] = 1 + 9*p.rng.Float64()
	}
	if source != destination {
		h[source] = math.Max(h[source], 2)
	}
	return h
}
