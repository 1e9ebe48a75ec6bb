package heuristic

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/search"
)

// Provider builds the heuristic table handed to informed strategies.
// Implementations should be concurrency-safe.
type Provider interface {
	// Name returns the provider name (e.g., "random", "distance").
	Name() string
	// Table returns one estimate per node label of g for reaching destination.
	Table(g *search.Graph, source, destination string) search.Heuristic
}

// Names lists the accepted provider names.
func Names() []string { return []string{"random", "zero", "hops", "distance"} }

// New constructs a provider by name. An empty name selects "random".
// seed only affects the random provider; 0 seeds from the clock.
func New(name string, seed uint64) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "random":
		return newRandom(seed), nil
	case "zero", "none":
		return zeroProvider{}, nil
	case "hops", "hop":
		return hopsProvider{}, nil
	case "distance", "exact", "dijkstra":
		return distanceProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown heuristic provider %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}

type zeroProvider struct{}

func (zeroProvider) Name() string { return "zero" }

func (zeroProvider) Table(g *search.Graph, _, _ string) search.Heuristic {
	h := make(search.Heuristic, g.NodeCount())
	for _, l := range g.Labels() {
		h[l] = 0
	}
	return h
}
