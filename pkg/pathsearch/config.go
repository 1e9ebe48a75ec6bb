package pathsearch

import "log/slog"

// Default request limits.
const (
	DefaultMaxNodes     = 20
	DefaultMaxEdges     = 50
	DefaultAlgorithm    = "bfs"
	DefaultStreamBuffer = 16
)

// Config exposes the knobs of the library-first Service.
type Config struct {
	MaxNodes          int
	MaxEdges          int
	DefaultAlgorithm  string
	HeuristicProvider string
	HeuristicSeed     uint64
	StreamBuffer      int
	Logger            *slog.Logger
}

// DefaultConfig returns a Config with the stock limits and the random
// heuristic provider.
func DefaultConfig() *Config {
	return &Config{
		MaxNodes:          DefaultMaxNodes,
		MaxEdges:          DefaultMaxEdges,
		DefaultAlgorithm:  DefaultAlgorithm,
		HeuristicProvider: "random",
		StreamBuffer:      DefaultStreamBuffer,
	}
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.MaxNodes <= 0 {
		out.MaxNodes = DefaultMaxNodes
	}
	if out.MaxEdges <= 0 {
		out.MaxEdges = DefaultMaxEdges
	}
	if out.DefaultAlgorithm == "" {
		out.DefaultAlgorithm = DefaultAlgorithm
	}
	if out.StreamBuffer < 0 {
		out.StreamBuffer = 0
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.DiscardHandler)
	}
	return out
}
