// Package graphfile loads search requests from graph definition files.
//
// Two formats are understood. JSON files hold a SearchRequest exactly as the
// HTTP API accepts it. HCL files describe the same data with blocks:
//
//	source      = 1
//	destination = 4
//	algorithm   = "a_star"
//	heuristic   = { A = 3, B = 1 }
//
//	node "A" { id = 1 }
//	node "B" { id = 2 }
//	edge {
//	  from   = 1
//	  to     = 2
//	  weight = 4
//	}
package graphfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

type hclGraphFile struct {
	Source      *cty.Value `hcl:"source,optional"`
	Destination *cty.Value `hcl:"destination,optional"`
	Algorithm   *string    `hcl:"algorithm,optional"`
	Heuristic   *cty.Value `hcl:"heuristic,optional"`
	Nodes       []*hclNode `hcl:"node,block"`
	Edges       []*hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	Label string    `hcl:"label,label"`
	ID    cty.Value `hcl:"id"`
}

type hclEdge struct {
	From   cty.Value  `hcl:"from"`
	To     cty.Value  `hcl:"to"`
	Weight *cty.Value `hcl:"weight,optional"`
}

// Load reads path and picks the decoder from its extension.
func Load(path string) (apptype.SearchRequest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return apptype.SearchRequest{}, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return ParseHCL(src, path)
	case ".json":
		return ParseJSON(src, path)
	}
	return apptype.SearchRequest{}, fmt.Errorf("unsupported graph file extension %q (want .hcl or .json)", filepath.Ext(path))
}

// ParseJSON decodes a SearchRequest document.
func ParseJSON(src []byte, filename string) (apptype.SearchRequest, error) {
	var req apptype.SearchRequest
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return apptype.SearchRequest{}, fmt.Errorf("failed to decode JSON graph file %s: %w", filename, err)
	}
	return req, nil
}

// ParseHCL decodes an HCL graph definition.
func ParseHCL(src []byte, filename string) (apptype.SearchRequest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return apptype.SearchRequest{}, fmt.Errorf("failed to parse HCL graph file %s: %s", filename, diags.Error())
	}

	var parsed hclGraphFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return apptype.SearchRequest{}, fmt.Errorf("failed to decode HCL graph file %s: %s", filename, diags.Error())
	}

	req := apptype.SearchRequest{
		Nodes: make([]apptype.NodeSpec, 0, len(parsed.Nodes)),
		Edges: make([]apptype.EdgeSpec, 0, len(parsed.Edges)),
	}
	for _, n := range parsed.Nodes {
		id, err := scalar(n.ID)
		if err != nil {
			return apptype.SearchRequest{}, fmt.Errorf("%s: node %q id: %w", filename, n.Label, err)
		}
		req.Nodes = append(req.Nodes, apptype.NodeSpec{ID: id, Label: n.Label})
	}
	for i, e := range parsed.Edges {
		from, err := scalar(e.From)
		if err != nil {
			return apptype.SearchRequest{}, fmt.Errorf("%s: edge %d from: %w", filename, i, err)
		}
		to, err := scalar(e.To)
		if err != nil {
			return apptype.SearchRequest{}, fmt.Errorf("%s: edge %d to: %w", filename, i, err)
		}
		var weight apptype.StringOrNumber
		if e.Weight != nil {
			if weight, err = scalar(*e.Weight); err != nil {
				return apptype.SearchRequest{}, fmt.Errorf("%s: edge %d weight: %w", filename, i, err)
			}
		}
		req.Edges = append(req.Edges, apptype.EdgeSpec{From: from, To: to, Label: weight})
	}

	var err error
	if parsed.Source != nil {
		if req.Source, err = scalar(*parsed.Source); err != nil {
			return apptype.SearchRequest{}, fmt.Errorf("%s: source: %w", filename, err)
		}
	}
	if parsed.Destination != nil {
		if req.Destination, err = scalar(*parsed.Destination); err != nil {
			return apptype.SearchRequest{}, fmt.Errorf("%s: destination: %w", filename, err)
		}
	}
	if parsed.Algorithm != nil {
		req.Algorithm = *parsed.Algorithm
	}
	if parsed.Heuristic != nil && !parsed.Heuristic.IsNull() {
		table, err := convert.Convert(*parsed.Heuristic, cty.Map(cty.Number))
		if err != nil {
			return apptype.SearchRequest{}, fmt.Errorf("%s: heuristic: %w", filename, err)
		}
		if err := gocty.FromCtyValue(table, &req.Heuristic); err != nil {
			return apptype.SearchRequest{}, fmt.Errorf("%s: heuristic: %w", filename, err)
		}
	}
	return req, nil
}

// scalar turns an HCL string or number into the textual form the rest of the
// request uses.
func scalar(v cty.Value) (apptype.StringOrNumber, error) {
	if v.IsNull() {
		return "", nil
	}
	if !v.IsKnown() {
		return "", fmt.Errorf("value is not known")
	}
	switch v.Type() {
	case cty.String:
		return apptype.StringOrNumber(v.AsString()), nil
	case cty.Number:
		return apptype.StringOrNumber(v.AsBigFloat().Text('f', -1)), nil
	}
	return "", fmt.Errorf("expected string or number, got %s", v.Type().FriendlyName())
}

// Endpoint resolves a command-line reference to a node id. A reference that
// matches an id is returned as is; otherwise a matching label yields that
// node's id.
func Endpoint(req apptype.SearchRequest, ref string) apptype.StringOrNumber {
	for _, n := range req.Nodes {
		if n.ID.String() == ref {
			return n.ID
		}
	}
	for _, n := range req.Nodes {
		if n.Label == ref {
			return n.ID
		}
	}
	return apptype.StringOrNumber(ref)
}
