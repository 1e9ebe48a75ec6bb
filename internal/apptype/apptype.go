package apptype

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringOrNumber holds a scalar that callers may send either as a JSON string
// or as a JSON number. Graph editors emit numeric node ids while edge weights
// usually arrive as text; both are kept in their textual form.
type StringOrNumber string

// UnmarshalJSON accepts strings, numbers and null.
func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*s = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringOrNumber(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", raw)
	}
	*s = StringOrNumber(n.String())
	return nil
}

func (s StringOrNumber) String() string { return string(s) }

// NodeSpec is a graph node as supplied by the caller.
type NodeSpec struct {
	ID    StringOrNumber `json:"id" jsonschema:"Node identifier referenced by edges, source and destination."`
	Label string         `json:"label" validate:"required" jsonschema:"Unique node label used in paths and events."`
}

// EdgeSpec is an undirected, weighted edge. Label carries the weight as text;
// an empty label means weight 1.
type EdgeSpec struct {
	From  StringOrNumber `json:"from" jsonschema:"Id of one endpoint."`
	To    StringOrNumber `json:"to" jsonschema:"Id of the other endpoint."`
	Label StringOrNumber `json:"label,omitempty" jsonschema:"Edge weight as a decimal string; empty means 1."`
}

// GraphSpec groups the node and edge lists of one request.
type GraphSpec struct {
	Nodes []NodeSpec `json:"nodes"`
	Edges []EdgeSpec `json:"edges"`
}

// SearchRequest is the transport-level request: source and destination are
// node ids that still need to be resolved to labels.
type SearchRequest struct {
	Nodes       []NodeSpec         `json:"nodes" validate:"required,min=1,dive"`
	Edges       []EdgeSpec         `json:"edges" validate:"required,min=1"`
	Source      StringOrNumber     `json:"source" validate:"required"`
	Destination StringOrNumber     `json:"destination" validate:"required"`
	Algorithm   string             `json:"algorithm,omitempty"`
	Heuristic   map[string]float64 `json:"heuristic,omitempty"`
}

// Graph returns the graph part of the request.
func (r SearchRequest) Graph() GraphSpec {
	return GraphSpec{Nodes: r.Nodes, Edges: r.Edges}
}

// AlgorithmInfo describes one registered search strategy.
type AlgorithmInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Informed    bool   `json:"informed"`
	Optimal     bool   `json:"optimal"`
	Description string `json:"description"`
}
