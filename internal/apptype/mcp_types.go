package apptype

// SolvePathArgs represents the arguments for the solve_path tool
type SolvePathArgs struct {
	Nodes        []NodeSpec         `json:"nodes" jsonschema:"Graph nodes, at most 20."`
	Edges        []EdgeSpec         `json:"edges" jsonschema:"Undirected weighted edges, at most 50."`
	Source       StringOrNumber     `json:"source" jsonschema:"Id of the start node."`
	Destination  StringOrNumber     `json:"destination" jsonschema:"Id of the goal node."`
	Algorithm    string             `json:"algorithm,omitempty" jsonschema:"One of bfs, dfs, dijkstra, best_first, a_star, hill_climbing (default bfs)."`
	Heuristic    map[string]float64 `json:"heuristic,omitempty" jsonschema:"Optional label to estimate table for informed algorithms. Generated when omitted."`
	IncludeSteps bool               `json:"includeSteps,omitempty" jsonschema:"Return the full exploration trace alongside the result."`
}

// Request converts the tool arguments into a SearchRequest.
func (a SolvePathArgs) Request() SearchRequest {
	return SearchRequest{
		Nodes:       a.Nodes,
		Edges:       a.Edges,
		Source:      a.Source,
		Destination: a.Destination,
		Algorithm:   a.Algorithm,
		Heuristic:   a.Heuristic,
	}
}

// SolvePathResult is the structured output of solve_path
type SolvePathResult struct {
	Result Result  `json:"result"`
	Steps  []Event `json:"steps,omitempty"`
}

// ListAlgorithmsArgs takes no parameters
type ListAlgorithmsArgs struct{}

type AlgorithmsResult struct {
	Algorithms []AlgorithmInfo `json:"algorithms"`
}

// Health
type HealthArgs struct{}

type HealthResult struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	Revision          string `json:"revision,omitempty"`
	BuildDate         string `json:"buildDate,omitempty"`
	Algorithms        int    `json:"algorithms"`
	HeuristicProvider string `json:"heuristicProvider"`
	MaxNodes          int    `json:"maxNodes"`
	MaxEdges          int    `json:"maxEdges"`
}
