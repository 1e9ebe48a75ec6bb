package graphfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHCL = `
source      = 1
destination = "4"
algorithm   = "a_star"
heuristic   = { A = 3, B = 1.5, C = 1, D = 0 }

node "A" { id = 1 }
node "B" { id = 2 }
node "C" { id = 3 }
node "D" { id = "4" }

edge {
  from   = 1
  to     = 2
  weight = 4
}
edge {
  from   = 2
  to     = 3
  weight = "0.5"
}
edge {
  from = 3
  to   = 4
}
`

func TestParseHCL(t *testing.T) {
	req, err := ParseHCL([]byte(sampleHCL), "sample.hcl")
	require.NoError(t, err)

	assert.Equal(t, []apptype.NodeSpec{
		{ID: "1", Label: "A"}, {ID: "2", Label: "B"}, {ID: "3", Label: "C"}, {ID: "4", Label: "D"},
	}, req.Nodes)
	assert.Equal(t, []apptype.EdgeSpec{
		{From: "1", To: "2", Label: "4"},
		{From: "2", To: "3", Label: "0.5"},
		{From: "3", To: "4", Label: ""},
	}, req.Edges)
	assert.Equal(t, apptype.StringOrNumber("1"), req.Source)
	assert.Equal(t, apptype.StringOrNumber("4"), req.Destination)
	assert.Equal(t, "a_star", req.Algorithm)
	assert.Equal(t, map[string]float64{"A": 3, "B": 1.5, "C": 1, "D": 0}, req.Heuristic)
}

func TestParseHCL_Minimal(t *testing.T) {
	req, err := ParseHCL([]byte(`node "A" { id = 1 }`), "min.hcl")
	require.NoError(t, err)
	assert.Len(t, req.Nodes, 1)
	assert.Empty(t, req.Edges)
	assert.Empty(t, req.Source)
	assert.Empty(t, req.Algorithm)
	assert.Nil(t, req.Heuristic)
}

func TestParseHCL_Errors(t *testing.T) {
	cases := map[string]string{
		"syntax":      `node "A" {`,
		"missing id":  `node "A" {}`,
		"bool id":     `node "A" { id = true }`,
		"unknown key": `colour = "red"`,
		"heuristic":   `heuristic = { A = "far" }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHCL([]byte(src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	hclPath := filepath.Join(dir, "graph.hcl")
	require.NoError(t, os.WriteFile(hclPath, []byte(sampleHCL), 0o600))
	req, err := Load(hclPath)
	require.NoError(t, err)
	assert.Len(t, req.Nodes, 4)

	jsonPath := filepath.Join(dir, "graph.json")
	doc := `{"nodes":[{"id":1,"label":"A"},{"id":2,"label":"B"}],"edges":[{"from":1,"to":2,"label":"3"}],"source":1,"destination":2,"algorithm":"dfs"}`
	require.NoError(t, os.WriteFile(jsonPath, []byte(doc), 0o600))
	req, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "dfs", req.Algorithm)
	assert.Equal(t, apptype.StringOrNumber("2"), req.Destination)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "graph.txt"), []byte("x"), 0o600))
	_, err = Load(filepath.Join(dir, "graph.txt"))
	assert.ErrorContains(t, err, "unsupported graph file extension")

	_, err = Load(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestParseJSON_RejectsUnknownFields(t *testing.T) {
	_, err := ParseJSON([]byte(`{"nodes":[],"vertices":[]}`), "x.json")
	assert.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	req := apptype.SearchRequest{Nodes: []apptype.NodeSpec{{ID: "1", Label: "A"}, {ID: "2", Label: "1x"}}}
	assert.Equal(t, apptype.StringOrNumber("1"), Endpoint(req, "1"))
	assert.Equal(t, apptype.StringOrNumber("2"), Endpoint(req, "1x"))
	assert.Equal(t, apptype.StringOrNumber("1"), Endpoint(req, "A"))
	assert.Equal(t, apptype.StringOrNumber("Z"), Endpoint(req, "Z"))
}
